// Package cluster assigns an influencer tier from the standardized feature
// vector.
package cluster

import (
	"github.com/growthcast/growthcast/internal/features"
	"github.com/growthcast/growthcast/internal/model"
)

// Classifier standardizes a raw feature vector with the scaler fitted during
// training, then asks the cluster model for the nearest center.
type Classifier struct {
	scaler model.Scaler
	model  model.Clusterer
}

// NewClassifier pairs a scaler with the cluster model it was fitted with.
func NewClassifier(scaler model.Scaler, m model.Clusterer) *Classifier {
	return &Classifier{scaler: scaler, model: m}
}

// Classify returns the tier for a raw, unscaled feature vector.
func (c *Classifier) Classify(v features.Vector) Tier {
	return TierFromID(c.model.Predict(c.scaler.Transform(v)))
}
