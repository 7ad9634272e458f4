package predictor

import (
	"context"
	"testing"

	"github.com/growthcast/growthcast/internal/features"
	"github.com/growthcast/growthcast/internal/forecast"
	"github.com/growthcast/growthcast/internal/model"
	"github.com/growthcast/growthcast/internal/recommend"
	_ "github.com/growthcast/growthcast/internal/testhelper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedRegressor float64

func (f fixedRegressor) Predict(features.Vector) float64 { return float64(f) }

type fixedClusterer int

func (f fixedClusterer) Predict(features.Vector) int { return int(f) }

func identityScaler() model.Scaler {
	return model.NewStandardScaler([]float64{0, 0, 0, 0}, []float64{1, 1, 1, 1})
}

func newStubService(followers, likes float64, clusterID int) *Service {
	store := model.NewStore(fixedRegressor(followers), fixedRegressor(likes), identityScaler(), fixedClusterer(clusterID))
	return New(store, forecast.DefaultParams())
}

func scenarioA() Input {
	return Input{
		AvgLikes:         50,
		NewPostAvgLikes:  40,
		Posts:            20,
		TotalEngagements: 500,
		Followers:        1000,
		PostsInWindow:    10,
		Years:            3,
	}
}

func TestPredictScenarioA(t *testing.T) {
	svc := newStubService(1e6, 1e6, 0)

	result, err := svc.Predict(context.Background(), scenarioA())
	require.NoError(t, err)

	assert.InDelta(t, 5.0, result.EngagementRate, 1e-9)
	assert.Equal(t, features.Vector{AvgLikes: 50, NewPostAvgLikes: 40, Posts: 20, EngagementRate: result.EngagementRate}, result.Features)
	assert.Equal(t, int64(6000), result.Estimate.Followers)
	assert.Equal(t, int64(150), result.Estimate.Likes)
	assert.Equal(t, 3, result.Estimate.Horizon)
	assert.Equal(t, "Micro Influencer", result.Category)
	assert.True(t, result.Recommendation.Known)
	assert.Equal(t, recommend.GrowthNote, result.Note)
}

func TestPredictScenarioB(t *testing.T) {
	svc := newStubService(90_000, 90_000, 1)
	in := Input{AvgLikes: 3, NewPostAvgLikes: 2, Posts: 1, TotalEngagements: 0, Followers: 1, PostsInWindow: 1, Years: 5}

	result, err := svc.Predict(context.Background(), in)
	require.NoError(t, err)

	assert.Zero(t, result.EngagementRate)
	assert.Equal(t, int64(0), result.Estimate.LikesCeiling)
	assert.Equal(t, int64(0), result.Estimate.Likes)
	assert.Equal(t, int64(10), result.Estimate.Followers)
	assert.Equal(t, "Mid-tier", result.Category)
}

func TestPredictScenarioC(t *testing.T) {
	svc := newStubService(100, 100, 5)

	result, err := svc.Predict(context.Background(), scenarioA())
	require.NoError(t, err)

	assert.Equal(t, 5, result.ClusterID)
	assert.Equal(t, "Group 5", result.Category)
	assert.Equal(t, recommend.Fallback, result.Recommendation.Text)
	assert.False(t, result.Recommendation.Known)
}

func TestPredictSummaryOrder(t *testing.T) {
	svc := newStubService(0, 0, 2)

	result, err := svc.Predict(context.Background(), scenarioA())
	require.NoError(t, err)

	require.Len(t, result.Summary, 6)
	assert.Equal(t, SummaryItem{Label: "Average Likes", Value: 50}, result.Summary[0])
	assert.Equal(t, SummaryItem{Label: "Recent Post Likes", Value: 40}, result.Summary[1])
	assert.Equal(t, SummaryItem{Label: "Total Posts", Value: 20}, result.Summary[2])
	assert.Equal(t, SummaryItem{Label: "60-Day Engagements", Value: 500}, result.Summary[3])
	assert.Equal(t, SummaryItem{Label: "Followers", Value: 1000}, result.Summary[4])
	assert.Equal(t, SummaryItem{Label: "Posts in 60 Days", Value: 10}, result.Summary[5])
}

func TestPredictRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Input)
		field  string
		msg    string
	}{
		{name: "negative avg likes", mutate: func(in *Input) { in.AvgLikes = -1 }, field: "avg_likes", msg: "avg_likes must be greater than or equal to 0"},
		{name: "negative recent likes", mutate: func(in *Input) { in.NewPostAvgLikes = -5 }, field: "new_post_avg_like"},
		{name: "zero posts", mutate: func(in *Input) { in.Posts = 0 }, field: "posts", msg: "posts must be greater than or equal to 1"},
		{name: "negative engagements", mutate: func(in *Input) { in.TotalEngagements = -1 }, field: "total_engagements"},
		{name: "zero followers", mutate: func(in *Input) { in.Followers = 0 }, field: "followers_60"},
		{name: "zero posts in window", mutate: func(in *Input) { in.PostsInWindow = 0 }, field: "posts_60"},
		{name: "horizon too short", mutate: func(in *Input) { in.Years = 0 }, field: "years"},
		{name: "horizon too long", mutate: func(in *Input) { in.Years = 6 }, field: "years", msg: "years must be less than or equal to 5"},
	}

	svc := newStubService(1, 1, 0)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := scenarioA()
			tt.mutate(&in)

			result, err := svc.Predict(context.Background(), in)
			require.Error(t, err)
			assert.Nil(t, result)
			assert.True(t, IsValidationError(err))

			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			require.Len(t, ve.Issues, 1)
			assert.Equal(t, tt.field, ve.Issues[0].Field)
			assert.Equal(t, "VALIDATION_ERROR", ve.Code())
			if tt.msg != "" {
				assert.Equal(t, tt.msg, ve.Issues[0].Message)
			}
		})
	}
}

func TestValidateCollectsEveryIssue(t *testing.T) {
	in := Input{AvgLikes: -1, Posts: 0, Followers: 0, PostsInWindow: 0, Years: 9}

	err := in.Validate()
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Len(t, ve.Issues, 5)
	assert.Contains(t, ve.Error(), "avg_likes must be greater than or equal to 0; ")
}

func TestDefaultInputIsValid(t *testing.T) {
	in := DefaultInput()
	assert.NoError(t, in.Validate())
	assert.Equal(t, 3, in.Years)
	assert.Zero(t, in.EngagementRate())
}

func TestPredictWithBundledModels(t *testing.T) {
	store, err := model.Load(model.DefaultPaths("../../models"))
	require.NoError(t, err)
	svc := New(store, forecast.DefaultParams())

	for years := forecast.MinHorizon; years <= forecast.MaxHorizon; years++ {
		in := scenarioA()
		in.Years = years

		result, err := svc.Predict(context.Background(), in)
		require.NoError(t, err)
		assert.LessOrEqual(t, result.Estimate.Followers, int64(1000*2*years))
		assert.LessOrEqual(t, result.Estimate.Likes, result.Estimate.LikesCeiling)
		assert.GreaterOrEqual(t, result.Estimate.Likes, int64(0))
		assert.NotEmpty(t, result.Category)
	}

	first, err := svc.Predict(context.Background(), scenarioA())
	require.NoError(t, err)
	second, err := svc.Predict(context.Background(), scenarioA())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
