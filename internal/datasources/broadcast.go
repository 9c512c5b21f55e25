package datasources

import (
	"context"
	"time"

	"github.com/resonance-social/feed-engine/internal/domain"
)

// ReactionUpdate is emitted after every successful reaction transition
// for delivery to interested subscribers.
type ReactionUpdate struct {
	ID       string                `json:"id"`
	ThreadID string                `json:"thread_id"`
	UserID   string                `json:"user_id"`
	Type     domain.ReactionType   `json:"reaction_type"`
	Counts   domain.ReactionCounts `json:"new_counts"`
	At       time.Time             `json:"at"`
}

// Broadcaster delivers reaction updates to subscribers. Delivery
// failures must not roll back the already-applied counter change.
type Broadcaster interface {
	BroadcastReactionUpdate(ctx context.Context, update ReactionUpdate) error
}

// NullBroadcaster discards all updates.
type NullBroadcaster struct{}

var _ Broadcaster = NullBroadcaster{}

func (NullBroadcaster) BroadcastReactionUpdate(_ context.Context, _ ReactionUpdate) error {
	return nil
}
