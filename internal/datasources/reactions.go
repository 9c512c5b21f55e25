package datasources

import (
	"context"

	"github.com/resonance-social/feed-engine/internal/domain"
)

// ReactionToggle is the outcome of one atomic reaction transition.
// Previous is the reaction active before the transition (ReactionNone
// if there was none); Current is the reaction active after it.
type ReactionToggle struct {
	Previous domain.ReactionType
	Current  domain.ReactionType
	Counts   domain.ReactionCounts
}

// Added reports whether the transition left a new reaction active.
func (t ReactionToggle) Added() bool {
	return t.Current != domain.ReactionNone
}

// ReactionStore holds per-thread reaction state and counters.
//
// ToggleReaction must apply the full state machine for one
// (user, thread) pair as a single atomic operation: same type toggles
// off, a different type swaps, otherwise the reaction is added. At most
// one active reaction per (user, thread) may be observable at any
// point, including mid-swap. Transitions for distinct pairs are
// independent and may proceed in parallel.
type ReactionStore interface {
	ReactionToggler
	ReactionCountsGetter
}

type ReactionToggler interface {
	ToggleReaction(ctx context.Context, userID, threadID string, t domain.ReactionType) (ReactionToggle, error)
}

type ReactionCountsGetter interface {
	GetReactionCounts(ctx context.Context, threadID string) (domain.ReactionCounts, error)
}
