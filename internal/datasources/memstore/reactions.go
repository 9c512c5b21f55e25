// Package memstore provides in-memory reaction and emotion-profile
// stores guarded by per-key locks. Suitable for tests and single-node
// deployments; production uses the redis or mysql drivers.
package memstore

import (
	"context"
	"sync"

	"github.com/resonance-social/feed-engine/internal/datasources"
	"github.com/resonance-social/feed-engine/internal/domain"
)

var _ datasources.ReactionStore = (*ReactionStore)(nil)

// ReactionStore keeps reaction state per thread behind a per-thread
// mutex: transitions for one thread serialize, distinct threads
// proceed in parallel.
type ReactionStore struct {
	mu      sync.Mutex
	threads map[string]*threadState
}

type threadState struct {
	mu        sync.Mutex
	reactions map[string]domain.ReactionType
	counts    domain.ReactionCounts
}

func NewReactionStore() *ReactionStore {
	return &ReactionStore{threads: make(map[string]*threadState)}
}

func (s *ReactionStore) threadState(threadID string) *threadState {
	s.mu.Lock()
	defer s.mu.Unlock()

	ts, ok := s.threads[threadID]
	if !ok {
		ts = &threadState{
			reactions: make(map[string]domain.ReactionType),
			counts:    domain.NewReactionCounts(),
		}
		s.threads[threadID] = ts
	}
	return ts
}

func (s *ReactionStore) ToggleReaction(
	_ context.Context, userID, threadID string, reaction domain.ReactionType,
) (datasources.ReactionToggle, error) {
	ts := s.threadState(threadID)
	ts.mu.Lock()
	defer ts.mu.Unlock()

	previous := ts.reactions[userID]
	toggle := datasources.ReactionToggle{Previous: previous}

	switch previous {
	case reaction:
		delete(ts.reactions, userID)
		ts.counts[reaction]--
		toggle.Current = domain.ReactionNone

	case domain.ReactionNone:
		ts.reactions[userID] = reaction
		ts.counts[reaction]++
		toggle.Current = reaction

	default:
		ts.counts[previous]--
		ts.reactions[userID] = reaction
		ts.counts[reaction]++
		toggle.Current = reaction
	}

	toggle.Counts = ts.counts.Clone()
	return toggle, nil
}

func (s *ReactionStore) GetReactionCounts(_ context.Context, threadID string) (domain.ReactionCounts, error) {
	ts := s.threadState(threadID)
	ts.mu.Lock()
	defer ts.mu.Unlock()

	return ts.counts.Clone(), nil
}

// ActiveReaction reports the user's current reaction on a thread,
// exposed for tests asserting the one-active-reaction invariant.
func (s *ReactionStore) ActiveReaction(userID, threadID string) domain.ReactionType {
	ts := s.threadState(threadID)
	ts.mu.Lock()
	defer ts.mu.Unlock()

	return ts.reactions[userID]
}
