package datasources

import (
	"context"

	"github.com/resonance-social/feed-engine/internal/domain"
)

// EmotionProfileStore reads and writes per-user emotion affinities.
// The reaction engine is the sole writer; feature extraction only reads.
type EmotionProfileStore interface {
	EmotionProfileGetter
	AffinityAdjuster
}

type EmotionProfileGetter interface {
	GetEmotionProfile(ctx context.Context, userID string) (domain.EmotionProfile, error)
}

// AffinityAdjuster applies a delta to one emotion's affinity weight,
// clamped to [0, 1] at the storage layer.
type AffinityAdjuster interface {
	AdjustAffinity(ctx context.Context, userID string, emotion domain.Emotion, delta float64) error
}
