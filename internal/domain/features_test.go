package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestExtractFeatures(t *testing.T) {
	now := time.Date(2026, 2, 10, 14, 0, 0, 0, time.UTC)

	candidate := Candidate{
		Thread: Thread{
			ID:       "t1",
			AuthorID: "author1",
			Text:     "A thoughtful post about community gardens, long enough to land in the quality sweet spot.",
			Hashtags: []string{"#gardens"},
			Emotion:  EmotionLabel{Primary: EmotionJoy, Confidence: 0.8, Intensity: 1.2},
			Reactions: ReactionCounts{
				ReactionResonate: 6,
				ReactionSupport:  2,
			},
			ReplyCount: 4,
			ShareCount: 2,
			CreatedAt:  now.Add(-2 * time.Hour),
		},
		Source:      SourceInNetwork,
		SourceScore: 0.9,
	}
	social := SocialContext{
		IsFollowing:          true,
		MutualConnections:    3,
		AuthorFollowerCount:  500,
		AuthorEngagementRate: 0.1,
		ActiveHours:          []int{13, 14, 15},
	}
	profile := EmotionProfile{EmotionJoy: 0.9, EmotionTrust: 0.6}

	fv := ExtractFeatures(candidate, social, profile, now)

	assert.InDelta(t, 2.0, fv.AgeHours, 0.0001)
	assert.Equal(t, 14, fv.HourOfDay)
	assert.Equal(t, len(candidate.Thread.Text), fv.TextLength)
	assert.Equal(t, 1, fv.HashtagCount)
	assert.True(t, fv.HasHashtags)
	assert.False(t, fv.HasLink)

	assert.Equal(t, int64(8), fv.TotalReactions)
	assert.InDelta(t, 4.0, fv.ReactionsPerHour, 0.0001)
	assert.InDelta(t, 7.0, fv.EngagementVelocity, 0.0001)

	assert.True(t, fv.IsFollowing)
	assert.Equal(t, 3, fv.MutualConnections)
	assert.True(t, fv.IsActiveHour)

	assert.InDelta(t, 0.8, fv.EmotionConfidence, 0.0001)
	// Joy is the profile's top-ranked emotion.
	assert.InDelta(t, 1.0/1.5, fv.EmotionAlignment, 0.0001)

	// In sweet spot, one hashtag, >1 reaction per hour.
	assert.InDelta(t, 1.0, fv.QualityScore, 0.0001)
}

func TestExtractFeatures_EdgeCases(t *testing.T) {
	now := time.Date(2026, 2, 10, 14, 0, 0, 0, time.UTC)

	t.Run("future_thread_age_clamped_to_zero", func(t *testing.T) {
		c := Candidate{Thread: Thread{Text: "hi", CreatedAt: now.Add(time.Hour)}}
		fv := ExtractFeatures(c, SocialContext{}, NewEmotionProfile(), now)
		assert.Equal(t, 0.0, fv.AgeHours)
	})

	t.Run("young_thread_rate_uses_one_hour_floor", func(t *testing.T) {
		c := Candidate{Thread: Thread{
			Text:      "hi",
			Reactions: ReactionCounts{ReactionResonate: 10},
			CreatedAt: now.Add(-time.Minute),
		}}
		fv := ExtractFeatures(c, SocialContext{}, NewEmotionProfile(), now)
		assert.InDelta(t, 10.0, fv.ReactionsPerHour, 0.0001)
	})

	t.Run("link_detection", func(t *testing.T) {
		c := Candidate{Thread: Thread{Text: "see https://example.com", CreatedAt: now}}
		fv := ExtractFeatures(c, SocialContext{}, NewEmotionProfile(), now)
		assert.True(t, fv.HasLink)
	})
}

func TestQualityScore(t *testing.T) {
	cases := []struct {
		name string
		fv   FeatureVector
		want float64
	}{
		{
			name: "all_signals",
			fv:   FeatureVector{TextLength: 100, HashtagCount: 2, ReactionsPerHour: 2},
			want: 1.0,
		},
		{
			name: "too_short",
			fv:   FeatureVector{TextLength: 10, HashtagCount: 2, ReactionsPerHour: 2},
			want: 0.6,
		},
		{
			name: "too_long",
			fv:   FeatureVector{TextLength: 300, HashtagCount: 0, ReactionsPerHour: 0},
			want: 0,
		},
		{
			name: "hashtag_spam_gets_no_bonus",
			fv:   FeatureVector{TextLength: 100, HashtagCount: 8, ReactionsPerHour: 0},
			want: 0.4,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, qualityScore(tc.fv), 0.0001)
		})
	}
}
