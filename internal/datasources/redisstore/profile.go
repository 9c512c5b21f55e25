package redisstore

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/resonance-social/feed-engine/internal/datasources"
	"github.com/resonance-social/feed-engine/internal/domain"
)

var _ datasources.EmotionProfileStore = (*ProfileStore)(nil)

// ProfileStore holds per-user emotion affinities in one hash per user.
type ProfileStore struct {
	rdb *redis.Client
}

func NewProfileStore(rdb *redis.Client) *ProfileStore {
	return &ProfileStore{rdb: rdb}
}

// adjustScript applies a delta to one affinity weight and clamps the
// result to [0, 1] server-side, so concurrent feedback updates never
// drive a weight out of range.
var adjustScript = redis.NewScript(`
local cur = tonumber(redis.call('HGET', KEYS[1], ARGV[1]))
if cur == nil then cur = tonumber(ARGV[3]) end
cur = cur + tonumber(ARGV[2])
if cur < 0 then cur = 0 end
if cur > 1 then cur = 1 end
redis.call('HSET', KEYS[1], ARGV[1], cur)
return tostring(cur)
`)

func profileKey(userID string) string { return "user:" + userID + ":emotion_profile" }

func (s *ProfileStore) GetEmotionProfile(ctx context.Context, userID string) (domain.EmotionProfile, error) {
	raw, err := s.rdb.HGetAll(ctx, profileKey(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("reading emotion profile: %w", err)
	}

	profile := domain.NewEmotionProfile()
	for e, v := range raw {
		weight, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("parsing affinity for %s: %w", e, err)
		}
		profile[domain.Emotion(e)] = domain.Clamp01(weight)
	}

	return profile, nil
}

func (s *ProfileStore) AdjustAffinity(
	ctx context.Context, userID string, emotion domain.Emotion, delta float64,
) error {
	err := adjustScript.Run(ctx, s.rdb,
		[]string{profileKey(userID)},
		string(emotion),
		strconv.FormatFloat(delta, 'f', -1, 64),
		strconv.FormatFloat(domain.DefaultAffinity, 'f', -1, 64),
	).Err()
	if err != nil {
		return fmt.Errorf("adjusting affinity for %s: %w", emotion, err)
	}
	return nil
}
