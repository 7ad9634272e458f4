package server

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics tracks predictions served by the form and the API
type Metrics struct {
	predictions        *prometheus.CounterVec
	predictionDuration prometheus.Histogram
	validationFailures *prometheus.CounterVec
	engagementRate     prometheus.Histogram
}

// NewMetrics creates metrics registered with the default registry
func NewMetrics() *Metrics {
	return NewMetricsWithRegistry(prometheus.DefaultRegisterer)
}

// NewMetricsWithRegistry creates metrics with a custom registry. A nil
// registerer leaves them unregistered.
func NewMetricsWithRegistry(registerer prometheus.Registerer) *Metrics {
	m := &Metrics{
		predictions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "growthcast_predictions_total",
			Help: "Predictions served, by influencer category",
		}, []string{"category", "source"}),
		predictionDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "growthcast_prediction_duration_seconds",
			Help:    "Time spent running the prediction pipeline",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
		}),
		validationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "growthcast_validation_failures_total",
			Help: "Submissions rejected by input validation",
		}, []string{"source"}),
		engagementRate: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "growthcast_engagement_rate_percent",
			Help:    "Engagement rate of submitted accounts",
			Buckets: []float64{0.5, 1, 2, 3, 5, 8, 13, 21, 50, 100},
		}),
	}

	if registerer != nil {
		registerer.MustRegister(m.predictions)
		registerer.MustRegister(m.predictionDuration)
		registerer.MustRegister(m.validationFailures)
		registerer.MustRegister(m.engagementRate)
	}

	return m
}

// ObservePrediction records a completed prediction
func (m *Metrics) ObservePrediction(source, category string, seconds, rate float64) {
	m.predictions.WithLabelValues(category, source).Inc()
	m.predictionDuration.Observe(seconds)
	m.engagementRate.Observe(rate)
}

// ObserveValidationFailure records a rejected submission
func (m *Metrics) ObserveValidationFailure(source string) {
	m.validationFailures.WithLabelValues(source).Inc()
}
