package cluster

import "fmt"

// Kind is the closed set of influencer tiers plus the fallback for ids the
// label table does not cover.
type Kind int

const (
	KindUnmapped Kind = iota
	KindMicro
	KindMidTier
	KindCelebrity
)

// Tier is a cluster assignment. ID is always the id the model produced.
type Tier struct {
	Kind Kind
	ID   int
}

// Cluster ids fixed by the training run.
const (
	MicroID     = 0
	MidTierID   = 1
	CelebrityID = 2
)

var labels = map[Kind]string{
	KindMicro:     "Micro Influencer",
	KindMidTier:   "Mid-tier",
	KindCelebrity: "Celebrity",
}

// TierFromID maps a cluster id to its tier. The mapping is total.
func TierFromID(id int) Tier {
	switch id {
	case MicroID:
		return Tier{Kind: KindMicro, ID: id}
	case MidTierID:
		return Tier{Kind: KindMidTier, ID: id}
	case CelebrityID:
		return Tier{Kind: KindCelebrity, ID: id}
	default:
		return Tier{Kind: KindUnmapped, ID: id}
	}
}

// Label is the human readable category. Unmapped ids render as "Group N".
func (t Tier) Label() string {
	if label, ok := labels[t.Kind]; ok {
		return label
	}
	return fmt.Sprintf("Group %d", t.ID)
}

func (t Tier) String() string {
	return t.Label()
}

// Known reports whether the tier is one of the three labelled clusters.
func (t Tier) Known() bool {
	return t.Kind != KindUnmapped
}

// ParseLabel is the inverse of Label for the three known tiers. Any other
// text yields an unmapped tier with ID -1.
func ParseLabel(label string) Tier {
	for kind, l := range labels {
		if l == label {
			return Tier{Kind: kind, ID: idFor(kind)}
		}
	}
	return Tier{Kind: KindUnmapped, ID: -1}
}

func idFor(kind Kind) int {
	switch kind {
	case KindMicro:
		return MicroID
	case KindMidTier:
		return MidTierID
	case KindCelebrity:
		return CelebrityID
	}
	return -1
}
