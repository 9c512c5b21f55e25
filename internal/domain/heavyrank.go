package domain

import "math"

// HeavyRanker is the second-stage scoring model. It is deliberately an
// interface so a trained model can replace the hand-specified formula
// without touching pipeline orchestration or diversity filtering.
type HeavyRanker interface {
	Score(fv FeatureVector) float64
}

// PredictorWeights combines the four bounded predictor probabilities
// into a single heavy score.
type PredictorWeights struct {
	Engagement       float64
	DwellTime        float64
	PositiveReaction float64
	Share            float64
}

// DefaultPredictorWeights returns the standard predictor combination.
func DefaultPredictorWeights() PredictorWeights {
	return PredictorWeights{
		Engagement:       0.35,
		DwellTime:        0.25,
		PositiveReaction: 0.20,
		Share:            0.20,
	}
}

// WeightedHeavyRanker is a deterministic, explainable scoring model
// standing in for a learned one: four hand-specified predictors, each
// clamped to [0, 1], combined by fixed weights.
type WeightedHeavyRanker struct {
	Weights PredictorWeights
}

var _ HeavyRanker = WeightedHeavyRanker{}

func (r WeightedHeavyRanker) Score(fv FeatureVector) float64 {
	return r.Weights.Engagement*engagementProbability(fv) +
		r.Weights.DwellTime*dwellTimeProbability(fv) +
		r.Weights.PositiveReaction*positiveReactionProbability(fv) +
		r.Weights.Share*shareProbability(fv)
}

// engagementProbability estimates the chance the user interacts with
// the item at all.
func engagementProbability(fv FeatureVector) float64 {
	p := 0.1

	if fv.IsFollowing {
		p += 0.3
	}
	mutualBonus := float64(fv.MutualConnections) * 0.04
	if mutualBonus > 0.2 {
		mutualBonus = 0.2
	}
	p += mutualBonus

	if fv.HasHashtags {
		p += 0.05
	}
	if fv.TextLength >= qualityLengthMin && fv.TextLength <= qualityLengthMax {
		p += 0.05
	}

	p += fv.EmotionAlignment * 0.2
	p += fv.EmotionConfidence * 0.1
	p += fv.QualityScore * 0.15
	p -= fv.ToxicityScore * 0.3

	if fv.IsActiveHour {
		p += 0.1
	}

	return Clamp01(p)
}

// dwellTimeProbability estimates the chance the user reads the item in
// full rather than scrolling past.
func dwellTimeProbability(fv FeatureVector) float64 {
	p := 0.1

	if fv.TextLength >= qualityLengthMin && fv.TextLength <= qualityLengthMax {
		p += 0.25
	}
	if fv.HasLink {
		p += 0.05
	}

	p += fv.EmotionAlignment * 0.2
	p += fv.EmotionIntensity * 0.05
	p += fv.QualityScore * 0.2
	p -= fv.SpamScore * 0.25

	if fv.IsFollowing {
		p += 0.1
	}

	return Clamp01(p)
}

// positiveReactionProbability estimates the chance the user reacts
// positively (resonate, support, amplify).
func positiveReactionProbability(fv FeatureVector) float64 {
	p := 0.1

	p += fv.EmotionAlignment * 0.3
	p += fv.EmotionConfidence * 0.15
	p += fv.QualityScore * 0.15
	p -= fv.ToxicityScore * 0.3

	if fv.IsFollowing {
		p += 0.2
	}
	mutualBonus := float64(fv.MutualConnections) * 0.03
	if mutualBonus > 0.1 {
		mutualBonus = 0.1
	}
	p += mutualBonus

	return Clamp01(p)
}

// shareProbability estimates the chance the user amplifies the item to
// their own audience. Driven mostly by how fast it is already moving.
func shareProbability(fv FeatureVector) float64 {
	p := 0.05

	velocityBonus := math.Log1p(fv.EngagementVelocity) * 0.15
	if velocityBonus > 0.3 {
		velocityBonus = 0.3
	}
	p += velocityBonus

	if fv.HasHashtags {
		p += 0.1
	}
	if fv.IsFollowing {
		p += 0.1
	}

	p += fv.EmotionAlignment * 0.15
	p += fv.QualityScore * 0.2
	p -= fv.SpamScore * 0.3

	return Clamp01(p)
}
