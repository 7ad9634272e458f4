package model

import (
	"github.com/growthcast/growthcast/internal/features"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Regressor maps a raw feature vector to one continuous prediction.
type Regressor interface {
	Predict(v features.Vector) float64
}

// Scaler standardizes a feature vector with statistics fixed at training time.
type Scaler interface {
	Transform(v features.Vector) features.Vector
}

// Clusterer assigns a standardized feature vector to a cluster id.
type Clusterer interface {
	Predict(v features.Vector) int
}

// LinearRegressor is a fitted linear model.
type LinearRegressor struct {
	coef      *mat.VecDense
	intercept float64
}

// NewLinearRegressor builds a regressor from its weights and bias.
func NewLinearRegressor(coefficients []float64, intercept float64) *LinearRegressor {
	return &LinearRegressor{
		coef:      mat.NewVecDense(len(coefficients), append([]float64(nil), coefficients...)),
		intercept: intercept,
	}
}

func (r *LinearRegressor) Predict(v features.Vector) float64 {
	x := mat.NewVecDense(features.Dimensions, v.Slice())
	return mat.Dot(r.coef, x) + r.intercept
}

// StandardScaler subtracts the training mean and divides by the training
// standard deviation. A zero deviation is treated as 1, which leaves
// constant columns centered but unscaled.
type StandardScaler struct {
	mean  []float64
	scale []float64
}

// NewStandardScaler builds a scaler from per-feature statistics.
func NewStandardScaler(mean, scale []float64) *StandardScaler {
	s := &StandardScaler{
		mean:  append([]float64(nil), mean...),
		scale: append([]float64(nil), scale...),
	}
	for i, sd := range s.scale {
		if sd == 0 {
			s.scale[i] = 1
		}
	}
	return s
}

func (s *StandardScaler) Transform(v features.Vector) features.Vector {
	values := v.Slice()
	floats.Sub(values, s.mean)
	floats.Div(values, s.scale)
	out, _ := features.FromSlice(values)
	return out
}

// KMeans assigns the id of the nearest centroid. Ties go to the lower id.
type KMeans struct {
	centroids [][]float64
}

// NewKMeans builds a nearest-centroid classifier.
func NewKMeans(centroids [][]float64) *KMeans {
	cs := make([][]float64, len(centroids))
	for i, c := range centroids {
		cs[i] = append([]float64(nil), c...)
	}
	return &KMeans{centroids: cs}
}

func (k *KMeans) Predict(v features.Vector) int {
	x := v.Slice()
	best, bestDist := 0, 0.0
	for i, c := range k.centroids {
		d := floats.Distance(x, c, 2)
		if i == 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// Clusters returns the number of fitted centers.
func (k *KMeans) Clusters() int {
	return len(k.centroids)
}
