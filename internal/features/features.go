package features

import "fmt"

// Names is the column order the trained models expect. It must never be
// reordered: regressors, scaler and centroids are all indexed by position.
var Names = [Dimensions]string{
	"avg_likes",
	"new_post_avg_like",
	"posts",
	"60_day_eng_rate",
}

// Dimensions is the length of every feature vector.
const Dimensions = 4

// Vector is the model input built fresh for each prediction request.
type Vector struct {
	AvgLikes        float64 `json:"avg_likes" yaml:"avg_likes"`
	NewPostAvgLikes float64 `json:"new_post_avg_like" yaml:"new_post_avg_like"`
	Posts           float64 `json:"posts" yaml:"posts"`
	EngagementRate  float64 `json:"60_day_eng_rate" yaml:"60_day_eng_rate"`
}

// New builds a vector from raw form values and a 60-day engagement rate percentage.
func New(avgLikes, newPostAvgLikes, posts int64, engagementRate float64) Vector {
	return Vector{
		AvgLikes:        float64(avgLikes),
		NewPostAvgLikes: float64(newPostAvgLikes),
		Posts:           float64(posts),
		EngagementRate:  engagementRate,
	}
}

// Slice returns the values in model column order.
func (v Vector) Slice() []float64 {
	return []float64{v.AvgLikes, v.NewPostAvgLikes, v.Posts, v.EngagementRate}
}

// FromSlice is the inverse of Slice.
func FromSlice(values []float64) (Vector, error) {
	if len(values) != Dimensions {
		return Vector{}, fmt.Errorf("expected %d feature values, got %d", Dimensions, len(values))
	}
	return Vector{
		AvgLikes:        values[0],
		NewPostAvgLikes: values[1],
		Posts:           values[2],
		EngagementRate:  values[3],
	}, nil
}

// CheckNames reports whether names matches the fixed column order. An empty
// list is accepted since older exports do not record column names.
func CheckNames(names []string) error {
	if len(names) == 0 {
		return nil
	}
	if len(names) != Dimensions {
		return fmt.Errorf("expected %d feature names, got %d", Dimensions, len(names))
	}
	for i, name := range names {
		if name != Names[i] {
			return fmt.Errorf("feature %d is %q, expected %q", i, name, Names[i])
		}
	}
	return nil
}
