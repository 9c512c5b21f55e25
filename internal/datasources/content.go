package datasources

import (
	"context"
	"time"

	"github.com/resonance-social/feed-engine/internal/domain"
)

// ContentRepository combines the thread queries candidate generation
// and the reaction engine need from the content store.
type ContentRepository interface {
	ThreadsByAuthorsLister
	ThreadsByEmotionsLister
	ThreadsByTopicsLister
	RecentThreadsLister
	ThreadFetcher
}

type ThreadsByAuthorsLister interface {
	ListThreadsByAuthors(ctx context.Context, authorIDs []string, since time.Time, limit int) ([]domain.Thread, error)
}

type ThreadsByEmotionsLister interface {
	ListThreadsByEmotions(
		ctx context.Context,
		emotions []domain.Emotion,
		minConfidence float64,
		since time.Time,
		limit int,
	) ([]domain.Thread, error)
}

type ThreadsByTopicsLister interface {
	ListThreadsByTopics(ctx context.Context, topics []string, since time.Time, limit int) ([]domain.Thread, error)
}

type RecentThreadsLister interface {
	ListRecentThreads(ctx context.Context, since time.Time, limit int) ([]domain.Thread, error)
}

type ThreadFetcher interface {
	FetchThreadsByID(ctx context.Context, ids []string) ([]domain.Thread, error)
}
