package cluster

import (
	"testing"

	"github.com/growthcast/growthcast/internal/features"
	"github.com/growthcast/growthcast/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestTierFromID(t *testing.T) {
	tests := []struct {
		id    int
		kind  Kind
		label string
	}{
		{id: 0, kind: KindMicro, label: "Micro Influencer"},
		{id: 1, kind: KindMidTier, label: "Mid-tier"},
		{id: 2, kind: KindCelebrity, label: "Celebrity"},
		{id: 5, kind: KindUnmapped, label: "Group 5"},
		{id: -1, kind: KindUnmapped, label: "Group -1"},
		{id: 3, kind: KindUnmapped, label: "Group 3"},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			tier := TierFromID(tt.id)
			assert.Equal(t, tt.kind, tier.Kind)
			assert.Equal(t, tt.id, tier.ID)
			assert.Equal(t, tt.label, tier.Label())
			assert.Equal(t, tt.kind != KindUnmapped, tier.Known())
		})
	}
}

func TestLabelIsTotal(t *testing.T) {
	for id := -50; id <= 50; id++ {
		assert.NotEmpty(t, TierFromID(id).Label())
	}
}

func TestParseLabel(t *testing.T) {
	assert.Equal(t, Tier{Kind: KindMidTier, ID: 1}, ParseLabel("Mid-tier"))
	assert.Equal(t, Tier{Kind: KindCelebrity, ID: 2}, ParseLabel("Celebrity"))
	assert.False(t, ParseLabel("Group 5").Known())
	assert.False(t, ParseLabel("").Known())
}

// recordingClusterer captures the vector it was asked to classify.
type recordingClusterer struct {
	id   int
	seen features.Vector
}

func (r *recordingClusterer) Predict(v features.Vector) int {
	r.seen = v
	return r.id
}

func TestClassifierScalesBeforeAssigning(t *testing.T) {
	scaler := model.NewStandardScaler([]float64{10, 10, 10, 1}, []float64{2, 2, 2, 1})
	clusterer := &recordingClusterer{id: 1}
	c := NewClassifier(scaler, clusterer)

	tier := c.Classify(features.Vector{AvgLikes: 14, NewPostAvgLikes: 12, Posts: 10, EngagementRate: 3})

	assert.Equal(t, "Mid-tier", tier.Label())
	assert.Equal(t, features.Vector{AvgLikes: 2, NewPostAvgLikes: 1, Posts: 0, EngagementRate: 2}, clusterer.seen)
}

func TestClassifierUnmappedCluster(t *testing.T) {
	c := NewClassifier(model.NewStandardScaler([]float64{0, 0, 0, 0}, []float64{1, 1, 1, 1}), &recordingClusterer{id: 5})
	assert.Equal(t, "Group 5", c.Classify(features.Vector{}).Label())
}

func TestClassifierWithKMeans(t *testing.T) {
	scaler := model.NewStandardScaler([]float64{100, 100, 100, 2}, []float64{100, 100, 100, 2})
	kmeans := model.NewKMeans([][]float64{
		{-0.5, -0.5, -0.5, 0},
		{1, 1, 1, 0},
		{10, 10, 2, 0},
	})
	c := NewClassifier(scaler, kmeans)

	assert.Equal(t, KindMicro, c.Classify(features.New(40, 50, 60, 2)).Kind)
	assert.Equal(t, KindMidTier, c.Classify(features.New(210, 190, 200, 2)).Kind)
	assert.Equal(t, KindCelebrity, c.Classify(features.New(1100, 1050, 300, 2)).Kind)
}
