package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLightScore(t *testing.T) {
	base := FeatureVector{AgeHours: 12, QualityScore: 0.5}

	t.Run("following_outranks_not_following", func(t *testing.T) {
		followed := base
		followed.IsFollowing = true
		assert.Greater(t, LightScore(followed, 0.5), LightScore(base, 0.5))
	})

	t.Run("fresher_outranks_older", func(t *testing.T) {
		fresh, old := base, base
		fresh.AgeHours = 1
		old.AgeHours = 48
		assert.Greater(t, LightScore(fresh, 0.5), LightScore(old, 0.5))
	})

	t.Run("mutual_connection_bonus_is_capped", func(t *testing.T) {
		three, ten := base, base
		three.MutualConnections = 3
		ten.MutualConnections = 10
		assert.InDelta(t, LightScore(three, 0.5), LightScore(ten, 0.5), 0.0001)
	})

	t.Run("spam_and_toxicity_penalize", func(t *testing.T) {
		dirty := base
		dirty.ToxicityScore = 0.9
		dirty.SpamScore = 0.9
		assert.Less(t, LightScore(dirty, 0.5), LightScore(base, 0.5))
	})

	t.Run("alignment_raises_score", func(t *testing.T) {
		aligned := base
		aligned.EmotionAlignment = 1
		assert.Greater(t, LightScore(aligned, 0.5), LightScore(base, 0.5))
	})

	t.Run("engagement_uses_log_damping", func(t *testing.T) {
		ten, thousand := base, base
		ten.TotalReactions = 10
		thousand.TotalReactions = 1000
		gain := LightScore(thousand, 0.5) - LightScore(ten, 0.5)
		assert.Greater(t, gain, 0.0)
		assert.Less(t, gain, 1.0)
	})
}

func TestWeightedHeavyRanker_Score(t *testing.T) {
	ranker := WeightedHeavyRanker{Weights: DefaultPredictorWeights()}

	t.Run("score_bounded_even_for_extreme_features", func(t *testing.T) {
		extreme := FeatureVector{
			IsFollowing:        true,
			MutualConnections:  1000,
			HasHashtags:        true,
			TextLength:         100,
			EmotionAlignment:   1,
			EmotionConfidence:  1,
			EmotionIntensity:   2.5,
			QualityScore:       1,
			EngagementVelocity: 10000,
			HasLink:            true,
			IsActiveHour:       true,
		}
		score := ranker.Score(extreme)
		assert.GreaterOrEqual(t, score, 0.0)
		assert.LessOrEqual(t, score, 1.0)
	})

	t.Run("zero_features_give_low_nonzero_score", func(t *testing.T) {
		score := ranker.Score(FeatureVector{})
		assert.Greater(t, score, 0.0)
		assert.Less(t, score, 0.2)
	})

	t.Run("aligned_beats_unaligned", func(t *testing.T) {
		aligned := FeatureVector{EmotionAlignment: 0.9, QualityScore: 0.5}
		unaligned := FeatureVector{EmotionAlignment: 0.0, QualityScore: 0.5}
		assert.Greater(t, ranker.Score(aligned), ranker.Score(unaligned))
	})
}
