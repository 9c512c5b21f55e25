package command

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/resonance-social/feed-engine/internal/datasources"
	"github.com/resonance-social/feed-engine/internal/domain"
)

// GenerateCandidatesRequest is the request for the GenerateCandidates command.
type GenerateCandidatesRequest struct {
	UserID string
	Limit  int
}

// GenerateCandidatesConfig holds retrieval quotas and windows for the
// four candidate sources.
type GenerateCandidatesConfig struct {
	// FanoutTimeout bounds the parallel fan-out; straggling sources are
	// treated as empty rather than blocking the request.
	FanoutTimeout time.Duration

	InNetworkShare       float64
	OutOfNetworkShare    float64
	EmotionAffinityShare float64
	TrendingShare        float64

	InNetworkWindow       time.Duration
	OutOfNetworkWindow    time.Duration
	EmotionAffinityWindow time.Duration
	TrendingWindow        time.Duration

	// AffinityMinConfidence is the confidence floor for the
	// emotion-affinity source.
	AffinityMinConfidence float64

	// DominantEmotionCount is how many of the user's top emotions seed
	// the affinity source's compatibility set.
	DominantEmotionCount int
}

// GenerateCandidates retrieves threads from four independent sources in
// parallel and merges them into one deduplicated, source-interleaved
// candidate pool. A failing source degrades to an empty contribution;
// total failure is handled one level up.
type GenerateCandidates struct {
	Content  datasources.ContentRepository
	Graph    datasources.UserGraph
	Profiles datasources.EmotionProfileGetter
	Config   GenerateCandidatesConfig
}

// NewGenerateCandidates creates a properly initialized GenerateCandidates command.
func NewGenerateCandidates(
	content datasources.ContentRepository,
	graph datasources.UserGraph,
	profiles datasources.EmotionProfileGetter,
	config GenerateCandidatesConfig,
) *GenerateCandidates {
	return &GenerateCandidates{
		Content:  content,
		Graph:    graph,
		Profiles: profiles,
		Config:   config,
	}
}

// Execute returns at most req.Limit candidates.
func (c *GenerateCandidates) Execute(
	ctx context.Context, req GenerateCandidatesRequest,
) ([]domain.Candidate, error) {
	logger := domain.LoggerFromContext(ctx)

	following, err := c.Graph.ListFollowing(ctx, req.UserID)
	if err != nil {
		logger.WarnContext(ctx, "failed to list following, in-network source will be empty", "error", err)
		following = nil
	}
	blocked, err := c.Graph.ListBlockedUsers(ctx, req.UserID)
	if err != nil {
		logger.WarnContext(ctx, "failed to list blocked users", "error", err)
		blocked = nil
	}

	fanoutCtx, cancel := context.WithTimeout(ctx, c.Config.FanoutTimeout)
	defer cancel()

	sources := []struct {
		name  domain.CandidateSource
		quota int
		fetch func(ctx context.Context, quota int) ([]domain.Candidate, error)
	}{
		{domain.SourceInNetwork, quota(req.Limit, c.Config.InNetworkShare), func(ctx context.Context, q int) ([]domain.Candidate, error) {
			return c.inNetwork(ctx, following, q)
		}},
		{domain.SourceOutOfNetwork, quota(req.Limit, c.Config.OutOfNetworkShare), func(ctx context.Context, q int) ([]domain.Candidate, error) {
			return c.outOfNetwork(ctx, req.UserID, following, q)
		}},
		{domain.SourceEmotionAffinity, quota(req.Limit, c.Config.EmotionAffinityShare), func(ctx context.Context, q int) ([]domain.Candidate, error) {
			return c.emotionAffinity(ctx, req.UserID, q)
		}},
		{domain.SourceTrending, quota(req.Limit, c.Config.TrendingShare), func(ctx context.Context, q int) ([]domain.Candidate, error) {
			return c.trending(ctx, q)
		}},
	}

	buckets := make([][]domain.Candidate, len(sources))
	grp, grpCtx := errgroup.WithContext(fanoutCtx)
	for i, src := range sources {
		i, src := i, src
		grp.Go(func() error {
			candidates, err := src.fetch(grpCtx, src.quota)
			if err != nil {
				// Source failure is isolated: contribute nothing, never abort.
				logger.WarnContext(ctx, "candidate source failed",
					"source", string(src.name), "error", err)
				return nil
			}
			buckets[i] = candidates
			return nil
		})
	}
	_ = grp.Wait()

	merged := interleave(buckets)
	merged = filterBlocked(merged, blocked)
	if len(merged) > req.Limit {
		merged = merged[:req.Limit]
	}

	return merged, nil
}

func (c *GenerateCandidates) inNetwork(
	ctx context.Context, following []string, limit int,
) ([]domain.Candidate, error) {
	if len(following) == 0 {
		return nil, nil
	}

	threads, err := c.Content.ListThreadsByAuthors(ctx, following, time.Now().Add(-c.Config.InNetworkWindow), limit)
	if err != nil {
		return nil, err
	}
	return candidatesByRank(threads, domain.SourceInNetwork), nil
}

func (c *GenerateCandidates) outOfNetwork(
	ctx context.Context, userID string, following []string, limit int,
) ([]domain.Candidate, error) {
	topics, err := c.Graph.ListInterestTopics(ctx, userID)
	if err != nil {
		return nil, err
	}

	threads, err := c.Content.ListThreadsByTopics(ctx, topics, time.Now().Add(-c.Config.OutOfNetworkWindow), limit)
	if err != nil {
		return nil, err
	}

	// Out-of-network means exactly that: drop anything from followed authors.
	followed := make(map[string]bool, len(following))
	for _, id := range following {
		followed[id] = true
	}
	filtered := threads[:0:0]
	for _, t := range threads {
		if !followed[t.AuthorID] {
			filtered = append(filtered, t)
		}
	}

	return candidatesByRank(filtered, domain.SourceOutOfNetwork), nil
}

func (c *GenerateCandidates) emotionAffinity(
	ctx context.Context, userID string, limit int,
) ([]domain.Candidate, error) {
	profile, err := c.Profiles.GetEmotionProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	seen := make(map[domain.Emotion]bool)
	var compatible []domain.Emotion
	for _, dominant := range profile.Dominant(c.Config.DominantEmotionCount) {
		for _, e := range domain.CompatibleEmotions(dominant) {
			if !seen[e] {
				seen[e] = true
				compatible = append(compatible, e)
			}
		}
	}

	threads, err := c.Content.ListThreadsByEmotions(
		ctx, compatible, c.Config.AffinityMinConfidence,
		time.Now().Add(-c.Config.EmotionAffinityWindow), limit,
	)
	if err != nil {
		return nil, err
	}

	candidates := make([]domain.Candidate, 0, len(threads))
	for _, t := range threads {
		candidates = append(candidates, domain.Candidate{
			Thread:      t,
			Source:      domain.SourceEmotionAffinity,
			SourceScore: t.Emotion.Confidence,
		})
	}
	return candidates, nil
}

func (c *GenerateCandidates) trending(ctx context.Context, limit int) ([]domain.Candidate, error) {
	threads, err := c.Content.ListRecentThreads(ctx, time.Now().Add(-c.Config.TrendingWindow), limit)
	if err != nil {
		return nil, err
	}
	return candidatesByRank(threads, domain.SourceTrending), nil
}

// candidatesByRank assigns source scores by list position: the source
// already ordered threads by its own relevance, so score decays
// linearly from 1.
func candidatesByRank(threads []domain.Thread, source domain.CandidateSource) []domain.Candidate {
	candidates := make([]domain.Candidate, 0, len(threads))
	for i, t := range threads {
		candidates = append(candidates, domain.Candidate{
			Thread:      t,
			Source:      source,
			SourceScore: 1 - float64(i)/float64(len(threads)),
		})
	}
	return candidates
}

// interleave merges source buckets round-robin, deduplicating by thread
// ID with first occurrence winning, so no single source dominates
// positional order before ranking.
func interleave(buckets [][]domain.Candidate) []domain.Candidate {
	var total int
	for _, b := range buckets {
		total += len(b)
	}

	seen := make(map[string]bool, total)
	merged := make([]domain.Candidate, 0, total)
	for remaining := true; remaining; {
		remaining = false
		for i := range buckets {
			if len(buckets[i]) == 0 {
				continue
			}
			candidate := buckets[i][0]
			buckets[i] = buckets[i][1:]
			remaining = true

			if seen[candidate.Thread.ID] {
				continue
			}
			seen[candidate.Thread.ID] = true
			merged = append(merged, candidate)
		}
	}

	return merged
}

func filterBlocked(candidates []domain.Candidate, blocked []string) []domain.Candidate {
	if len(blocked) == 0 {
		return candidates
	}

	blockedSet := make(map[string]bool, len(blocked))
	for _, id := range blocked {
		blockedSet[id] = true
	}

	filtered := candidates[:0:0]
	for _, c := range candidates {
		if !blockedSet[c.Thread.AuthorID] {
			filtered = append(filtered, c)
		}
	}
	return filtered
}

func quota(limit int, share float64) int {
	q := int(float64(limit) * share)
	if q < 1 {
		q = 1
	}
	return q
}
