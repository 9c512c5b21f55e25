package app

import (
	"time"

	"github.com/resonance-social/feed-engine/internal/command"
)

// DefaultGenerateCandidatesConfig returns the default config for candidate retrieval.
func DefaultGenerateCandidatesConfig() command.GenerateCandidatesConfig {
	return command.GenerateCandidatesConfig{
		FanoutTimeout: 2 * time.Second,

		InNetworkShare:       0.45,
		OutOfNetworkShare:    0.35,
		EmotionAffinityShare: 0.15,
		TrendingShare:        0.05,

		InNetworkWindow:       72 * time.Hour,
		OutOfNetworkWindow:    48 * time.Hour,
		EmotionAffinityWindow: 24 * time.Hour,
		TrendingWindow:        12 * time.Hour,

		AffinityMinConfidence: 0.6,
		DominantEmotionCount:  3,
	}
}

// DefaultRankCandidatesConfig returns the default config for the ranking pipeline.
func DefaultRankCandidatesConfig() command.RankCandidatesConfig {
	return command.RankCandidatesConfig{
		HeavySurvivors: 200,
		Parallelism:    16,
	}
}

// DefaultGetFeedConfig returns the default config for feed orchestration.
func DefaultGetFeedConfig() command.GetFeedConfig {
	return command.GetFeedConfig{
		DefaultLimit:        30,
		MaxLimit:            100,
		CandidateMultiplier: 10,
	}
}
