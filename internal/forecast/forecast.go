// Package forecast turns raw regressor outputs into follower and likes
// estimates for a chosen horizon.
//
// The regressors were trained against a ten-year baseline, so raw outputs are
// rescaled linearly to the requested number of years and then clamped by two
// heuristic ceilings derived from the account's current size and engagement.
// Changing any of Params changes what the numbers mean, not only how they are
// displayed.
package forecast

import (
	"errors"
	"fmt"
	"math"

	"github.com/growthcast/growthcast/internal/features"
	"github.com/growthcast/growthcast/internal/model"
)

const (
	// MinHorizon and MaxHorizon bound the projection in years.
	MinHorizon = 1
	MaxHorizon = 5
	// DefaultHorizon is the slider's initial position.
	DefaultHorizon = 3
)

var (
	ErrHorizonOutOfRange = fmt.Errorf("horizon must be between %d and %d years", MinHorizon, MaxHorizon)
	ErrInvalidBaseline   = errors.New("follower baseline must be at least 1")
)

// Params holds the scaling heuristics.
type Params struct {
	// BaselineYears is the horizon the regressors' raw outputs correspond to.
	BaselineYears float64
	// FollowerGrowthFactor caps followers at baseline*factor per projected year.
	FollowerGrowthFactor float64
	// FloorAtZero clamps negative estimates to zero after the ceilings apply.
	FloorAtZero bool
}

// DefaultParams returns the heuristics the bundled models were trained for.
func DefaultParams() Params {
	return Params{
		BaselineYears:        10,
		FollowerGrowthFactor: 2,
		FloorAtZero:          true,
	}
}

// Estimate is the clamped projection for one request.
type Estimate struct {
	Followers int64 `json:"followers" yaml:"followers"`
	Likes     int64 `json:"likes" yaml:"likes"`
	Horizon   int   `json:"horizon_years" yaml:"horizon_years"`

	RawFollowers    float64 `json:"raw_followers" yaml:"raw_followers"`
	RawLikes        float64 `json:"raw_likes" yaml:"raw_likes"`
	FollowerCeiling int64   `json:"follower_ceiling" yaml:"follower_ceiling"`
	LikesCeiling    int64   `json:"likes_ceiling" yaml:"likes_ceiling"`
}

// Engine applies both regressors and the scaling rules. It holds no mutable
// state and may be shared between goroutines.
type Engine struct {
	followers model.Regressor
	likes     model.Regressor
	params    Params
}

// NewEngine creates an engine over the two regressors.
func NewEngine(followers, likes model.Regressor, params Params) *Engine {
	return &Engine{followers: followers, likes: likes, params: params}
}

// PredictAndScale projects followers and likes horizon years ahead.
// followersBaseline is the current follower count and ratePercent the
// 60-day engagement rate the features were built with.
func (e *Engine) PredictAndScale(v features.Vector, horizon int, followersBaseline int64, ratePercent float64) (Estimate, error) {
	if horizon < MinHorizon || horizon > MaxHorizon {
		return Estimate{}, fmt.Errorf("%w: got %d", ErrHorizonOutOfRange, horizon)
	}
	if followersBaseline < 1 {
		return Estimate{}, fmt.Errorf("%w: got %d", ErrInvalidBaseline, followersBaseline)
	}

	rawFollowers := finite(e.followers.Predict(v))
	rawLikes := finite(e.likes.Predict(v))

	years := float64(horizon)
	followerCeiling := float64(followersBaseline) * e.params.FollowerGrowthFactor * years
	likesCeiling := math.Floor(float64(followersBaseline) * (ratePercent / 100) * years)

	followers := math.Min(e.rescale(rawFollowers, years), followerCeiling)
	likes := math.Min(e.rescale(rawLikes, years), likesCeiling)

	if e.params.FloorAtZero {
		followers = math.Max(followers, 0)
		likes = math.Max(likes, 0)
	}

	return Estimate{
		Followers:       toInt(followers),
		Likes:           toInt(likes),
		Horizon:         horizon,
		RawFollowers:    rawFollowers,
		RawLikes:        rawLikes,
		FollowerCeiling: toInt(followerCeiling),
		LikesCeiling:    toInt(likesCeiling),
	}, nil
}

func (e *Engine) rescale(raw, years float64) float64 {
	return math.Floor(raw / e.params.BaselineYears * years)
}

// finite maps NaN and infinities from a degenerate model to zero.
func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func toInt(v float64) int64 {
	switch {
	case v >= math.MaxInt64:
		return math.MaxInt64
	case v <= math.MinInt64:
		return math.MinInt64
	}
	return int64(v)
}
