package redisstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/resonance-social/feed-engine/internal/datasources"
)

// DefaultUpdateChannel is the pub/sub channel reaction updates publish to.
const DefaultUpdateChannel = "reaction.updates"

var _ datasources.Broadcaster = (*Broadcaster)(nil)

// Broadcaster publishes reaction updates on a Redis pub/sub channel for
// delivery to interested subscribers (real-time transports, analytics).
type Broadcaster struct {
	rdb     *redis.Client
	channel string
}

func NewBroadcaster(rdb *redis.Client, channel string) *Broadcaster {
	if channel == "" {
		channel = DefaultUpdateChannel
	}
	return &Broadcaster{rdb: rdb, channel: channel}
}

func (b *Broadcaster) BroadcastReactionUpdate(ctx context.Context, update datasources.ReactionUpdate) error {
	raw, err := json.Marshal(update)
	if err != nil {
		return fmt.Errorf("marshalling reaction update: %w", err)
	}
	if err := b.rdb.Publish(ctx, b.channel, raw).Err(); err != nil {
		return fmt.Errorf("publishing reaction update: %w", err)
	}
	return nil
}
