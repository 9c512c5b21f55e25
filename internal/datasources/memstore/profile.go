package memstore

import (
	"context"
	"sync"

	"github.com/resonance-social/feed-engine/internal/datasources"
	"github.com/resonance-social/feed-engine/internal/domain"
)

var _ datasources.EmotionProfileStore = (*ProfileStore)(nil)

// ProfileStore keeps emotion profiles in memory under a single mutex.
type ProfileStore struct {
	mu       sync.Mutex
	profiles map[string]domain.EmotionProfile
}

func NewProfileStore() *ProfileStore {
	return &ProfileStore{profiles: make(map[string]domain.EmotionProfile)}
}

func (s *ProfileStore) GetEmotionProfile(_ context.Context, userID string) (domain.EmotionProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	profile, ok := s.profiles[userID]
	if !ok {
		return domain.NewEmotionProfile(), nil
	}

	out := make(domain.EmotionProfile, len(profile))
	for e, w := range profile {
		out[e] = w
	}
	return out, nil
}

func (s *ProfileStore) AdjustAffinity(
	_ context.Context, userID string, emotion domain.Emotion, delta float64,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	profile, ok := s.profiles[userID]
	if !ok {
		profile = domain.NewEmotionProfile()
		s.profiles[userID] = profile
	}

	profile[emotion] = domain.Clamp01(profile[emotion] + delta)
	return nil
}
