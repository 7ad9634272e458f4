// Package predictor runs the full form pipeline: engagement rate, scaled
// follower and likes estimates, cluster tier and recommendation.
package predictor

import (
	"context"
	"time"

	"github.com/growthcast/growthcast/internal/cluster"
	"github.com/growthcast/growthcast/internal/engagement"
	"github.com/growthcast/growthcast/internal/features"
	"github.com/growthcast/growthcast/internal/forecast"
	"github.com/growthcast/growthcast/internal/model"
	"github.com/growthcast/growthcast/internal/recommend"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Input is the six form fields plus the horizon slider.
type Input struct {
	AvgLikes         int64 `json:"avg_likes" yaml:"avg_likes" validate:"gte=0"`
	NewPostAvgLikes  int64 `json:"new_post_avg_like" yaml:"new_post_avg_like" validate:"gte=0"`
	Posts            int64 `json:"posts" yaml:"posts" validate:"gte=1"`
	TotalEngagements int64 `json:"total_engagements" yaml:"total_engagements" validate:"gte=0"`
	Followers        int64 `json:"followers_60" yaml:"followers_60" validate:"gte=1"`
	PostsInWindow    int64 `json:"posts_60" yaml:"posts_60" validate:"gte=1"`
	Years            int   `json:"years" yaml:"years" validate:"gte=1,lte=5"`
}

// DefaultInput returns the form's initial state.
func DefaultInput() Input {
	return Input{
		Posts:         1,
		Followers:     1,
		PostsInWindow: 1,
		Years:         forecast.DefaultHorizon,
	}
}

// EngagementRate is the 60-day rate for the input's counts.
func (in Input) EngagementRate() float64 {
	return engagement.ComputeRate(in.TotalEngagements, in.Followers, in.PostsInWindow)
}

// SummaryItem is one bar of the input summary chart.
type SummaryItem struct {
	Label string `json:"label" yaml:"label"`
	Value int64  `json:"value" yaml:"value"`
}

// Summary lists the six raw inputs in display order.
func (in Input) Summary() []SummaryItem {
	return []SummaryItem{
		{Label: "Average Likes", Value: in.AvgLikes},
		{Label: "Recent Post Likes", Value: in.NewPostAvgLikes},
		{Label: "Total Posts", Value: in.Posts},
		{Label: "60-Day Engagements", Value: in.TotalEngagements},
		{Label: "Followers", Value: in.Followers},
		{Label: "Posts in 60 Days", Value: in.PostsInWindow},
	}
}

// Result is everything the presenter renders for one submission.
type Result struct {
	Input          Input                    `json:"input" yaml:"input"`
	EngagementRate float64                  `json:"engagement_rate" yaml:"engagement_rate"`
	Features       features.Vector          `json:"features" yaml:"features"`
	Estimate       forecast.Estimate        `json:"estimate" yaml:"estimate"`
	ClusterID      int                      `json:"cluster_id" yaml:"cluster_id"`
	Category       string                   `json:"category" yaml:"category"`
	Recommendation recommend.Recommendation `json:"recommendation" yaml:"recommendation"`
	Note           string                   `json:"note" yaml:"note"`
	Summary        []SummaryItem            `json:"summary" yaml:"summary"`
}

// Service runs predictions against one loaded model store.
type Service struct {
	engine     *forecast.Engine
	classifier *cluster.Classifier
	store      *model.Store
}

// New wires the pipeline over store.
func New(store *model.Store, params forecast.Params) *Service {
	return &Service{
		engine:     forecast.NewEngine(store.Followers(), store.Likes(), params),
		classifier: cluster.NewClassifier(store.Scaler(), store.Cluster()),
		store:      store,
	}
}

// Store returns the model store the service reads from.
func (s *Service) Store() *model.Store {
	return s.store
}

// Predict validates in and runs the pipeline synchronously. Invalid input
// returns a *ValidationError and nothing is computed.
func (s *Service) Predict(ctx context.Context, in Input) (*Result, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	rate := in.EngagementRate()
	vec := features.New(in.AvgLikes, in.NewPostAvgLikes, in.Posts, rate)

	estimate, err := s.engine.PredictAndScale(vec, in.Years, in.Followers, rate)
	if err != nil {
		return nil, err
	}

	tier := s.classifier.Classify(vec)
	rec := recommend.ForTier(tier)

	loggerFrom(ctx).Debug().
		Int("years", in.Years).
		Float64("engagement_rate", rate).
		Int64("followers", estimate.Followers).
		Int64("likes", estimate.Likes).
		Str("category", tier.Label()).
		Dur("duration", time.Since(start)).
		Msg("Prediction completed")

	return &Result{
		Input:          in,
		EngagementRate: rate,
		Features:       vec,
		Estimate:       estimate,
		ClusterID:      tier.ID,
		Category:       tier.Label(),
		Recommendation: rec,
		Note:           recommend.GrowthNote,
		Summary:        in.Summary(),
	}, nil
}

// loggerFrom prefers a request-scoped logger and falls back to the global one.
func loggerFrom(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return &log.Logger
}
