package command

import (
	"context"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/resonance-social/feed-engine/internal/datasources"
	"github.com/resonance-social/feed-engine/internal/domain"
)

// RankCandidatesRequest is the request for the RankCandidates command.
type RankCandidatesRequest struct {
	UserID     string
	Candidates []domain.Candidate
	Limit      int
}

// RankCandidatesConfig holds ranking pipeline parameters.
type RankCandidatesConfig struct {
	// HeavySurvivors is how many light-stage survivors reach the heavy
	// ranker. The light stage is the only one touching the full pool.
	HeavySurvivors int

	// Parallelism bounds per-candidate scoring concurrency.
	Parallelism int
}

// RankCandidates applies the two-stage ranking pipeline: light
// heuristic over the full pool, heavy model over the survivors, then
// diversity filters.
type RankCandidates struct {
	Graph    datasources.UserGraph
	Profiles datasources.EmotionProfileGetter
	Heavy    domain.HeavyRanker
	Config   RankCandidatesConfig
}

// NewRankCandidates creates a properly initialized RankCandidates command.
func NewRankCandidates(
	graph datasources.UserGraph,
	profiles datasources.EmotionProfileGetter,
	heavy domain.HeavyRanker,
	config RankCandidatesConfig,
) *RankCandidates {
	return &RankCandidates{
		Graph:    graph,
		Profiles: profiles,
		Heavy:    heavy,
		Config:   config,
	}
}

// Execute ranks candidates and returns at most req.Limit results,
// ordered by final score with ties broken by recency (newer first).
func (c *RankCandidates) Execute(
	ctx context.Context, req RankCandidatesRequest,
) ([]domain.RankedResult, error) {
	if len(req.Candidates) == 0 {
		return nil, nil
	}

	logger := domain.LoggerFromContext(ctx)

	profile, err := c.Profiles.GetEmotionProfile(ctx, req.UserID)
	if err != nil {
		logger.WarnContext(ctx, "failed to get emotion profile, using defaults", "error", err)
		profile = domain.NewEmotionProfile()
	}

	contexts := c.socialContexts(ctx, req.UserID, req.Candidates)

	now := time.Now()
	results := make([]domain.RankedResult, len(req.Candidates))

	grp, _ := errgroup.WithContext(ctx)
	grp.SetLimit(c.Config.Parallelism)
	for i, candidate := range req.Candidates {
		i, candidate := i, candidate
		grp.Go(func() error {
			fv := domain.ExtractFeatures(candidate, contexts[candidate.Thread.AuthorID], profile, now)
			results[i] = domain.RankedResult{
				Candidate:  candidate,
				Features:   fv,
				LightScore: domain.LightScore(fv, candidate.SourceScore),
			}
			return nil
		})
	}
	_ = grp.Wait()

	sortByScore(results, func(r domain.RankedResult) float64 { return r.LightScore })

	survivors := results
	if len(survivors) > c.Config.HeavySurvivors {
		survivors = survivors[:c.Config.HeavySurvivors]
	}

	grp, _ = errgroup.WithContext(ctx)
	grp.SetLimit(c.Config.Parallelism)
	for i := range survivors {
		i := i
		grp.Go(func() error {
			survivors[i].HeavyScore = c.Heavy.Score(survivors[i].Features)
			survivors[i].FinalScore = 0.4*survivors[i].LightScore + 0.6*survivors[i].HeavyScore
			return nil
		})
	}
	_ = grp.Wait()

	sortByScore(survivors, func(r domain.RankedResult) float64 { return r.FinalScore })

	return domain.ApplyDiversityFilters(survivors, req.Limit), nil
}

// socialContexts resolves the requesting user's relationship to every
// distinct candidate author. Graph failures degrade to zero-value
// contexts; relevance suffers, the request does not.
func (c *RankCandidates) socialContexts(
	ctx context.Context, userID string, candidates []domain.Candidate,
) map[string]domain.SocialContext {
	logger := domain.LoggerFromContext(ctx)

	following, err := c.Graph.ListFollowing(ctx, userID)
	if err != nil {
		logger.WarnContext(ctx, "failed to list following for feature extraction", "error", err)
	}
	followed := make(map[string]bool, len(following))
	for _, id := range following {
		followed[id] = true
	}

	activeHours, err := c.Graph.ListActiveHours(ctx, userID)
	if err != nil {
		logger.WarnContext(ctx, "failed to list active hours", "error", err)
	}

	authors := make([]string, 0, len(candidates))
	seen := make(map[string]bool, len(candidates))
	for _, candidate := range candidates {
		if !seen[candidate.Thread.AuthorID] {
			seen[candidate.Thread.AuthorID] = true
			authors = append(authors, candidate.Thread.AuthorID)
		}
	}

	resolved := make([]domain.SocialContext, len(authors))
	grp, grpCtx := errgroup.WithContext(ctx)
	grp.SetLimit(c.Config.Parallelism)
	for i, author := range authors {
		i, author := i, author
		grp.Go(func() error {
			sc := domain.SocialContext{
				IsFollowing: followed[author],
				ActiveHours: activeHours,
			}

			mutual, err := c.Graph.MutualConnectionCount(grpCtx, userID, author)
			if err == nil {
				sc.MutualConnections = mutual
			}
			stats, err := c.Graph.GetAuthorStats(grpCtx, author)
			if err == nil {
				sc.AuthorFollowerCount = stats.FollowerCount
				sc.AuthorEngagementRate = stats.EngagementRate
			}

			resolved[i] = sc
			return nil
		})
	}
	_ = grp.Wait()

	contexts := make(map[string]domain.SocialContext, len(authors))
	for i, author := range authors {
		contexts[author] = resolved[i]
	}
	return contexts
}

// sortByScore orders results by score descending, ties broken by
// recency with newer threads first.
func sortByScore(results []domain.RankedResult, score func(domain.RankedResult) float64) {
	sort.SliceStable(results, func(i, j int) bool {
		si, sj := score(results[i]), score(results[j])
		if si != sj {
			return si > sj
		}
		return results[i].Candidate.Thread.CreatedAt.After(results[j].Candidate.Thread.CreatedAt)
	})
}
