// Package engagement derives the 60-day engagement rate shown next to the form.
package engagement

import "fmt"

// ComputeRate returns total engagements per follower per post as a percentage.
//
// A non-positive follower or post count yields 0 rather than an error, so a
// missing denominator reads as zero engagement.
func ComputeRate(totalEngagements, followers, postsInWindow int64) float64 {
	if followers <= 0 || postsInWindow <= 0 {
		return 0
	}
	return float64(totalEngagements) / (float64(followers) * float64(postsInWindow)) * 100
}

// Format renders a rate the way the form displays it.
func Format(rate float64) string {
	return fmt.Sprintf("%.2f%%", rate)
}
