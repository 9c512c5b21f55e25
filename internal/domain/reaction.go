package domain

import (
	"fmt"
	"math"
	"time"
)

// ReactionType is one of the five fixed reaction categories.
// The empty string means no active reaction.
type ReactionType string

const (
	ReactionNone      ReactionType = ""
	ReactionResonate  ReactionType = "resonate"
	ReactionSupport   ReactionType = "support"
	ReactionLearn     ReactionType = "learn"
	ReactionChallenge ReactionType = "challenge"
	ReactionAmplify   ReactionType = "amplify"
)

// AllReactionTypes lists the five reaction categories.
var AllReactionTypes = []ReactionType{
	ReactionResonate,
	ReactionSupport,
	ReactionLearn,
	ReactionChallenge,
	ReactionAmplify,
}

// ParseReactionType validates a reaction type received from a caller.
func ParseReactionType(s string) (ReactionType, error) {
	for _, t := range AllReactionTypes {
		if string(t) == s {
			return t, nil
		}
	}
	return ReactionNone, fmt.Errorf("unknown reaction type [%s]", s)
}

// ReactionCounts holds a thread's per-type reaction counters.
type ReactionCounts map[ReactionType]int64

// NewReactionCounts returns counts with every type at zero.
func NewReactionCounts() ReactionCounts {
	c := make(ReactionCounts, len(AllReactionTypes))
	for _, t := range AllReactionTypes {
		c[t] = 0
	}
	return c
}

// Total sums all reaction counters.
func (c ReactionCounts) Total() int64 {
	var total int64
	for _, n := range c {
		total += n
	}
	return total
}

// Clone returns an independent copy of the counts.
func (c ReactionCounts) Clone() ReactionCounts {
	out := make(ReactionCounts, len(c))
	for t, n := range c {
		out[t] = n
	}
	return out
}

// baseWeights are the fixed per-type ranking-impact weights. Amplify is
// the strongest positive signal, challenge the weakest.
var baseWeights = map[ReactionType]float64{
	ReactionResonate:  1.0,
	ReactionSupport:   0.8,
	ReactionLearn:     0.6,
	ReactionChallenge: 0.4,
	ReactionAmplify:   1.5,
}

// BaseWeight returns the fixed ranking-impact weight for a reaction type.
func BaseWeight(t ReactionType) float64 {
	return baseWeights[t]
}

// affinityAdjustments are the per-type emotion-affinity deltas applied
// when a reaction is added. Challenge is the only type that reduces
// affinity, modeling disagreement.
var affinityAdjustments = map[ReactionType]float64{
	ReactionResonate:  0.10,
	ReactionSupport:   0.08,
	ReactionLearn:     0.05,
	ReactionChallenge: -0.02,
	ReactionAmplify:   0.12,
}

// AffinityAdjustment returns the emotion-affinity delta for a reaction type.
func AffinityAdjustment(t ReactionType) float64 {
	return affinityAdjustments[t]
}

const (
	impactHalfLifeHours = 24.0
	impactTimeFloor     = 0.1
)

// ImpactScore computes the ranking-impact of adding a reaction:
// baseWeight * timeFactor * authorityFactor. The time factor halves
// every 24h of thread age with a floor of 0.1, so late reactions to old
// threads still register. Authority is the reacting user's authority in
// [0, 1].
func ImpactScore(t ReactionType, threadCreatedAt time.Time, authority float64, now time.Time) float64 {
	ageHours := now.Sub(threadCreatedAt).Hours()
	if ageHours < 0 {
		ageHours = 0
	}

	timeFactor := math.Exp(-math.Ln2 * ageHours / impactHalfLifeHours)
	if timeFactor < impactTimeFloor {
		timeFactor = impactTimeFloor
	}

	authorityFactor := 1 + authority*0.5

	return BaseWeight(t) * timeFactor * authorityFactor
}
