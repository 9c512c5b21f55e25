package command

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resonance-social/feed-engine/internal/domain"
)

func testGetFeedConfig() GetFeedConfig {
	return GetFeedConfig{
		DefaultLimit:        30,
		MaxLimit:            100,
		CandidateMultiplier: 10,
	}
}

func newTestGetFeed(content *stubContent, graph *stubGraph) *GetFeed {
	profiles := &stubProfiles{}
	classifier := fixedLabelClassifier{label: domain.EmotionLabel{
		Primary: domain.EmotionJoy, Confidence: 0.6, Intensity: 1,
	}}

	return NewGetFeed(
		NewGenerateCandidates(content, graph, profiles, testGenerateCandidatesConfig()),
		NewRankCandidates(graph, profiles, testHeavyRanker(), testRankCandidatesConfig()),
		NewDefaultFeed(classifier),
		nil,
		testGetFeedConfig(),
	)
}

func TestGetFeed_Execute(t *testing.T) {
	now := time.Now()

	t.Run("serves_ranked_feed", func(t *testing.T) {
		content := &stubContent{
			recent: []domain.Thread{
				testThread("t1", "a1", domain.EmotionJoy, now),
				testThread("t2", "a2", domain.EmotionTrust, now),
			},
		}

		cmd := newTestGetFeed(content, &stubGraph{})
		result, err := cmd.Execute(context.Background(), GetFeedRequest{UserID: "u1", Limit: 10})

		require.NoError(t, err)
		assert.False(t, result.Fallback)
		assert.Len(t, result.Items, 2)
		assert.False(t, result.GeneratedAt.IsZero())
	})

	t.Run("empty_pipeline_serves_fallback", func(t *testing.T) {
		cmd := newTestGetFeed(&stubContent{}, &stubGraph{})

		result, err := cmd.Execute(context.Background(), GetFeedRequest{UserID: "u1", Limit: 10})

		require.NoError(t, err)
		assert.True(t, result.Fallback)
		require.NotEmpty(t, result.Items)
		for _, item := range result.Items {
			assert.Equal(t, domain.SourceFallback, item.Candidate.Source)
			assert.NotEmpty(t, item.Candidate.Thread.Text)
			assert.NotEqual(t, domain.Emotion(""), item.Candidate.Thread.Emotion.Primary)
		}
	})

	t.Run("all_sources_failing_serves_fallback_not_error", func(t *testing.T) {
		content := &stubContent{
			byAuthorsErr:  errors.New("down"),
			byTopicsErr:   errors.New("down"),
			byEmotionsErr: errors.New("down"),
			recentErr:     errors.New("down"),
		}

		cmd := newTestGetFeed(content, &stubGraph{})
		result, err := cmd.Execute(context.Background(), GetFeedRequest{UserID: "u1", Limit: 10})

		require.NoError(t, err)
		assert.True(t, result.Fallback)
		assert.NotEmpty(t, result.Items)
	})

	t.Run("zero_limit_uses_default", func(t *testing.T) {
		cmd := newTestGetFeed(&stubContent{}, &stubGraph{})

		result, err := cmd.Execute(context.Background(), GetFeedRequest{UserID: "u1"})

		require.NoError(t, err)
		assert.True(t, result.Fallback)
		assert.NotEmpty(t, result.Items)
	})

	t.Run("limit_capped_at_max", func(t *testing.T) {
		var recent []domain.Thread
		for i := 0; i < 150; i++ {
			recent = append(recent, testThread(
				string(rune('a'+i%26))+string(rune('0'+i/26)), "author"+string(rune('a'+i%26)), domain.EmotionJoy, now))
		}
		content := &stubContent{recent: recent}

		cmd := newTestGetFeed(content, &stubGraph{})
		result, err := cmd.Execute(context.Background(), GetFeedRequest{UserID: "u1", Limit: 500})

		require.NoError(t, err)
		assert.LessOrEqual(t, len(result.Items), 100)
	})
}

func TestDefaultFeed_Items(t *testing.T) {
	classifier := fixedLabelClassifier{label: domain.EmotionLabel{
		Primary: domain.EmotionJoy, Confidence: 0.6, Intensity: 1,
	}}
	feed := NewDefaultFeed(classifier)

	t.Run("respects_limit", func(t *testing.T) {
		items := feed.Items(context.Background(), 3)
		assert.Len(t, items, 3)
	})

	t.Run("items_are_scored_and_ordered", func(t *testing.T) {
		items := feed.Items(context.Background(), 8)
		require.NotEmpty(t, items)
		for i := 1; i < len(items); i++ {
			assert.Greater(t, items[i-1].FinalScore, items[i].FinalScore)
		}
	})

	t.Run("items_carry_synthetic_engagement", func(t *testing.T) {
		items := feed.Items(context.Background(), 1)
		require.Len(t, items, 1)
		assert.Greater(t, items[0].Candidate.Thread.Reactions.Total(), int64(0))
	})
}
