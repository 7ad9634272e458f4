package features

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVectorSliceOrder(t *testing.T) {
	v := New(50, 40, 20, 5)
	assert.Equal(t, []float64{50, 40, 20, 5}, v.Slice())
}

func TestFromSlice(t *testing.T) {
	v, err := FromSlice([]float64{1, 2, 3, 4})
	require.NoError(t, err)
	assert.Equal(t, Vector{AvgLikes: 1, NewPostAvgLikes: 2, Posts: 3, EngagementRate: 4}, v)

	_, err = FromSlice([]float64{1, 2, 3})
	assert.Error(t, err)
}

func TestCheckNames(t *testing.T) {
	tests := []struct {
		name    string
		names   []string
		wantErr bool
	}{
		{name: "empty accepted", names: nil},
		{name: "exact order", names: Names[:]},
		{name: "reordered", names: []string{"new_post_avg_like", "avg_likes", "posts", "60_day_eng_rate"}, wantErr: true},
		{name: "too short", names: []string{"avg_likes"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckNames(tt.names)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
