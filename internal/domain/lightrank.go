package domain

import "math"

// Light ranker weights. The light stage is the only one allowed to
// touch the full candidate pool, so the score must stay cheap: a single
// weighted sum over precomputed features.
const (
	lightRecencyWeight = 0.25

	lightTotalReactionsWeight   = 0.15
	lightReactionsPerHourWeight = 0.10
	lightReplyCountWeight       = 0.08

	lightFollowingBonus  = 0.30
	lightMutualPerConn   = 0.05
	lightMutualBonusCap  = 0.15

	lightQualityWeight  = 0.15
	lightToxicityWeight = 0.20
	lightSpamWeight     = 0.25

	lightAlignmentWeight  = 0.12
	lightConfidenceWeight = 0.08

	lightSourceScoreWeight = 0.05

	lightRecencyHalfLifeHours = 24.0
)

// LightScore computes the cheap first-pass score for a candidate.
func LightScore(fv FeatureVector, sourceScore float64) float64 {
	score := math.Exp(-fv.AgeHours/lightRecencyHalfLifeHours) * lightRecencyWeight

	score += math.Log1p(float64(fv.TotalReactions)) * lightTotalReactionsWeight
	score += math.Log1p(fv.ReactionsPerHour) * lightReactionsPerHourWeight
	score += math.Log1p(float64(fv.ReplyCount)) * lightReplyCountWeight

	if fv.IsFollowing {
		score += lightFollowingBonus
	}
	mutualBonus := float64(fv.MutualConnections) * lightMutualPerConn
	if mutualBonus > lightMutualBonusCap {
		mutualBonus = lightMutualBonusCap
	}
	score += mutualBonus

	score += fv.QualityScore * lightQualityWeight
	score -= fv.ToxicityScore * lightToxicityWeight
	score -= fv.SpamScore * lightSpamWeight

	score += fv.EmotionAlignment * lightAlignmentWeight
	score += fv.EmotionConfidence * lightConfidenceWeight

	score += sourceScore * lightSourceScoreWeight

	return score
}
