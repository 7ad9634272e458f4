// Package recommend selects the advice block shown for an influencer tier.
package recommend

import (
	"strings"

	"github.com/growthcast/growthcast/internal/cluster"
)

// Recommendation is a fixed block of advice.
type Recommendation struct {
	Tier  string   `json:"tier" yaml:"tier"`
	Tips  []string `json:"tips,omitempty" yaml:"tips,omitempty"`
	Text  string   `json:"text" yaml:"text"`
	Known bool     `json:"known" yaml:"known"`
}

// Fallback is shown for any category without a dedicated advice block.
const Fallback = "Unable to generate recommendations for this category."

// GrowthNote accompanies every prediction.
const GrowthNote = "Your predicted followers and likes are based on your current statistics such as " +
	"engagement, post activity, and follower count. However, social media growth also heavily " +
	"depends on content quality, consistency, and creativity. If you're aiming for better growth, " +
	"consider improving your content style, using trending formats, and engaging actively with your audience!"

var (
	microTips = []string{
		"Post more frequently to increase visibility.",
		"Engage more with your audience through replies and comments.",
		"Try targeted content strategies to boost engagement.",
		"Focus on growing authentic followers through niche value.",
	}
	midTierTips = []string{
		"Collaborate with other creators or brands to expand your reach.",
		"Analyze your top-performing content and replicate that style.",
		"Try experimenting with new formats (Reels, Stories).",
		"Maintain consistent posting schedules.",
	}
	celebrityTips = []string{
		"Continue high-quality content delivery to retain your audience.",
		"Consider expanding to other platforms for wider reach.",
		"Invest in personal branding and storytelling.",
		"Use data insights to understand what your audience loves most.",
	}
)

// ForTier returns the advice for a tier.
func ForTier(tier cluster.Tier) Recommendation {
	var tips []string
	switch tier.Kind {
	case cluster.KindMicro:
		tips = microTips
	case cluster.KindMidTier:
		tips = midTierTips
	case cluster.KindCelebrity:
		tips = celebrityTips
	case cluster.KindUnmapped:
		return Recommendation{Tier: tier.Label(), Text: Fallback}
	}

	return Recommendation{
		Tier:  tier.Label(),
		Tips:  append([]string(nil), tips...),
		Text:  bulletList(tips),
		Known: true,
	}
}

// Recommend looks advice up by category label.
func Recommend(label string) Recommendation {
	rec := ForTier(cluster.ParseLabel(label))
	rec.Tier = label
	return rec
}

func bulletList(items []string) string {
	return "- " + strings.Join(items, "\n- ")
}
