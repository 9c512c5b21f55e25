package redisstore

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/resonance-social/feed-engine/internal/datasources"
	"github.com/resonance-social/feed-engine/internal/domain"
)

var _ datasources.ReactionStore = (*ReactionStore)(nil)

// ReactionStore holds reaction state in two hashes per thread: one
// mapping user to active reaction type, one holding per-type counters.
type ReactionStore struct {
	rdb *redis.Client
}

func NewReactionStore(rdb *redis.Client) *ReactionStore {
	return &ReactionStore{rdb: rdb}
}

// toggleScript applies the full reaction state machine server-side so
// the transition, its counter increments, and the resulting counts are
// one atomic operation. Returns {previous, current, HGETALL counts...}.
var toggleScript = redis.NewScript(`
local prev = redis.call('HGET', KEYS[1], ARGV[1])
if prev == ARGV[2] then
  redis.call('HDEL', KEYS[1], ARGV[1])
  redis.call('HINCRBY', KEYS[2], ARGV[2], -1)
  return {prev, '', unpack(redis.call('HGETALL', KEYS[2]))}
end
if prev then
  redis.call('HINCRBY', KEYS[2], prev, -1)
end
redis.call('HSET', KEYS[1], ARGV[1], ARGV[2])
redis.call('HINCRBY', KEYS[2], ARGV[2], 1)
return {prev or '', ARGV[2], unpack(redis.call('HGETALL', KEYS[2]))}
`)

func reactionsKey(threadID string) string { return "thread:" + threadID + ":reactions" }
func countsKey(threadID string) string    { return "thread:" + threadID + ":counts" }

func (s *ReactionStore) ToggleReaction(
	ctx context.Context, userID, threadID string, reaction domain.ReactionType,
) (datasources.ReactionToggle, error) {
	res, err := toggleScript.Run(ctx, s.rdb,
		[]string{reactionsKey(threadID), countsKey(threadID)},
		userID, string(reaction),
	).Slice()
	if err != nil {
		return datasources.ReactionToggle{}, fmt.Errorf("running reaction toggle script: %w", err)
	}
	if len(res) < 2 {
		return datasources.ReactionToggle{}, fmt.Errorf("unexpected toggle script result of length %d", len(res))
	}

	toggle := datasources.ReactionToggle{
		Previous: domain.ReactionType(asString(res[0])),
		Current:  domain.ReactionType(asString(res[1])),
		Counts:   domain.NewReactionCounts(),
	}

	for i := 2; i+1 < len(res); i += 2 {
		t := domain.ReactionType(asString(res[i]))
		n, err := strconv.ParseInt(asString(res[i+1]), 10, 64)
		if err != nil {
			return datasources.ReactionToggle{}, fmt.Errorf("parsing counter for %s: %w", t, err)
		}
		if n < 0 {
			n = 0
		}
		toggle.Counts[t] = n
	}

	return toggle, nil
}

func (s *ReactionStore) GetReactionCounts(ctx context.Context, threadID string) (domain.ReactionCounts, error) {
	raw, err := s.rdb.HGetAll(ctx, countsKey(threadID)).Result()
	if err != nil {
		return nil, fmt.Errorf("reading thread counters: %w", err)
	}

	counts := domain.NewReactionCounts()
	for t, v := range raw {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parsing counter for %s: %w", t, err)
		}
		if n < 0 {
			n = 0
		}
		counts[domain.ReactionType(t)] = n
	}

	return counts, nil
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}
