package command

import (
	"context"
	"time"

	"github.com/resonance-social/feed-engine/internal/domain"
	"github.com/resonance-social/feed-engine/internal/metrics"
)

// GetFeedRequest is the request for the GetFeed command.
type GetFeedRequest struct {
	UserID string
	Limit  int
}

// GetFeedResult is a ranked feed page. Fallback is true when the
// pipeline produced nothing and the default feed was served instead.
type GetFeedResult struct {
	Items       []domain.RankedResult
	Fallback    bool
	GeneratedAt time.Time
}

// GetFeedConfig holds orchestration parameters.
type GetFeedConfig struct {
	// DefaultLimit is used when the request does not specify a page size.
	DefaultLimit int

	// MaxLimit caps the page size a caller may request.
	MaxLimit int

	// CandidateMultiplier is how many candidates to retrieve per
	// requested feed item, giving ranking a pool to cut down.
	CandidateMultiplier int
}

// GetFeed orchestrates candidate generation and ranking into a feed
// page. It never fails the caller: an empty or errored pipeline falls
// back to the default feed.
type GetFeed struct {
	Generate *GenerateCandidates
	Rank     *RankCandidates
	Default  *DefaultFeed
	Metrics  *metrics.Metrics
	Config   GetFeedConfig
}

// NewGetFeed creates a properly initialized GetFeed command.
func NewGetFeed(
	generate *GenerateCandidates,
	rank *RankCandidates,
	defaultFeed *DefaultFeed,
	m *metrics.Metrics,
	config GetFeedConfig,
) *GetFeed {
	return &GetFeed{
		Generate: generate,
		Rank:     rank,
		Default:  defaultFeed,
		Metrics:  m,
		Config:   config,
	}
}

// Execute returns a ranked feed for the user, falling back to the
// default feed when the pipeline yields nothing.
func (c *GetFeed) Execute(ctx context.Context, req GetFeedRequest) (GetFeedResult, error) {
	logger := domain.LoggerFromContext(ctx)

	c.Metrics.IncFeedRequests()
	start := time.Now()
	defer func() { c.Metrics.ObserveFeedDuration(time.Since(start).Seconds()) }()

	limit := req.Limit
	if limit <= 0 {
		limit = c.Config.DefaultLimit
	}
	if limit > c.Config.MaxLimit {
		limit = c.Config.MaxLimit
	}

	candidates, err := c.Generate.Execute(ctx, GenerateCandidatesRequest{
		UserID: req.UserID,
		Limit:  limit * c.Config.CandidateMultiplier,
	})
	if err != nil {
		logger.ErrorContext(ctx, "candidate generation failed, serving default feed", "error", err)
		return c.fallback(ctx, limit), nil
	}

	items, err := c.Rank.Execute(ctx, RankCandidatesRequest{
		UserID:     req.UserID,
		Candidates: candidates,
		Limit:      limit,
	})
	if err != nil {
		logger.ErrorContext(ctx, "ranking failed, serving default feed", "error", err)
		return c.fallback(ctx, limit), nil
	}

	if len(items) == 0 {
		logger.InfoContext(ctx, "empty feed pipeline result, serving default feed",
			"userID", req.UserID)
		return c.fallback(ctx, limit), nil
	}

	return GetFeedResult{Items: items, GeneratedAt: time.Now()}, nil
}

func (c *GetFeed) fallback(ctx context.Context, limit int) GetFeedResult {
	c.Metrics.IncFeedFallbacks()
	return GetFeedResult{
		Items:       c.Default.Items(ctx, limit),
		Fallback:    true,
		GeneratedAt: time.Now(),
	}
}
