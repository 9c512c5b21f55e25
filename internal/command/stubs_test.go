package command

import (
	"context"
	"time"

	"github.com/resonance-social/feed-engine/internal/datasources"
	"github.com/resonance-social/feed-engine/internal/domain"
)

// stubContent serves canned thread lists per retrieval strategy.
type stubContent struct {
	byAuthors  []domain.Thread
	byEmotions []domain.Thread
	byTopics   []domain.Thread
	recent     []domain.Thread
	byID       map[string]domain.Thread

	byAuthorsErr  error
	byEmotionsErr error
	byTopicsErr   error
	recentErr     error
	fetchErr      error
}

func (s *stubContent) ListThreadsByAuthors(
	_ context.Context, _ []string, _ time.Time, limit int,
) ([]domain.Thread, error) {
	return capThreads(s.byAuthors, limit), s.byAuthorsErr
}

func (s *stubContent) ListThreadsByEmotions(
	_ context.Context, _ []domain.Emotion, _ float64, _ time.Time, limit int,
) ([]domain.Thread, error) {
	return capThreads(s.byEmotions, limit), s.byEmotionsErr
}

func (s *stubContent) ListThreadsByTopics(
	_ context.Context, _ []string, _ time.Time, limit int,
) ([]domain.Thread, error) {
	return capThreads(s.byTopics, limit), s.byTopicsErr
}

func (s *stubContent) ListRecentThreads(
	_ context.Context, _ time.Time, limit int,
) ([]domain.Thread, error) {
	return capThreads(s.recent, limit), s.recentErr
}

func (s *stubContent) FetchThreadsByID(_ context.Context, ids []string) ([]domain.Thread, error) {
	if s.fetchErr != nil {
		return nil, s.fetchErr
	}
	var threads []domain.Thread
	for _, id := range ids {
		if t, ok := s.byID[id]; ok {
			threads = append(threads, t)
		}
	}
	return threads, nil
}

func capThreads(threads []domain.Thread, limit int) []domain.Thread {
	if len(threads) > limit {
		return threads[:limit]
	}
	return threads
}

// stubGraph serves canned social-graph data.
type stubGraph struct {
	datasources.NullUserGraph

	following    []string
	blocked      []string
	topics       []string
	mutuals      map[string]int
	stats        map[string]domain.AuthorStats
	authority    float64
	activeHours  []int
	followingErr error
	authorityErr error
}

func (s *stubGraph) ListFollowing(_ context.Context, _ string) ([]string, error) {
	return s.following, s.followingErr
}

func (s *stubGraph) ListBlockedUsers(_ context.Context, _ string) ([]string, error) {
	return s.blocked, nil
}

func (s *stubGraph) ListInterestTopics(_ context.Context, _ string) ([]string, error) {
	return s.topics, nil
}

func (s *stubGraph) MutualConnectionCount(_ context.Context, _, otherID string) (int, error) {
	return s.mutuals[otherID], nil
}

func (s *stubGraph) GetAuthorStats(_ context.Context, authorID string) (domain.AuthorStats, error) {
	return s.stats[authorID], nil
}

func (s *stubGraph) GetUserAuthority(_ context.Context, _ string) (float64, error) {
	return s.authority, s.authorityErr
}

func (s *stubGraph) ListActiveHours(_ context.Context, _ string) ([]int, error) {
	return s.activeHours, nil
}

// stubProfiles serves one profile and records affinity adjustments.
type stubProfiles struct {
	profile    domain.EmotionProfile
	profileErr error
	adjustErr  error

	adjusted []affinityAdjustment
}

type affinityAdjustment struct {
	userID  string
	emotion domain.Emotion
	delta   float64
}

func (s *stubProfiles) GetEmotionProfile(_ context.Context, _ string) (domain.EmotionProfile, error) {
	if s.profileErr != nil {
		return nil, s.profileErr
	}
	if s.profile == nil {
		return domain.NewEmotionProfile(), nil
	}
	return s.profile, nil
}

func (s *stubProfiles) AdjustAffinity(
	_ context.Context, userID string, emotion domain.Emotion, delta float64,
) error {
	if s.adjustErr != nil {
		return s.adjustErr
	}
	s.adjusted = append(s.adjusted, affinityAdjustment{userID: userID, emotion: emotion, delta: delta})
	return nil
}

// stubBroadcaster records updates and optionally fails delivery.
type stubBroadcaster struct {
	err     error
	updates []datasources.ReactionUpdate
}

func (s *stubBroadcaster) BroadcastReactionUpdate(_ context.Context, update datasources.ReactionUpdate) error {
	if s.err != nil {
		return s.err
	}
	s.updates = append(s.updates, update)
	return nil
}

// fixedLabelClassifier labels everything with the same emotion.
type fixedLabelClassifier struct {
	label domain.EmotionLabel
}

func (c fixedLabelClassifier) Classify(_ string) domain.EmotionLabel {
	return c.label
}

// testThread builds a minimal thread for pipeline tests.
func testThread(id, authorID string, emotion domain.Emotion, createdAt time.Time) domain.Thread {
	return domain.Thread{
		ID:        id,
		AuthorID:  authorID,
		Text:      "thread " + id + " body text that is comfortably long enough to rank",
		Hashtags:  []string{"#test"},
		Emotion:   domain.EmotionLabel{Primary: emotion, Confidence: 0.7, Intensity: 1},
		Reactions: domain.NewReactionCounts(),
		CreatedAt: createdAt,
	}
}
