package command

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/resonance-social/feed-engine/internal/datasources"
	"github.com/resonance-social/feed-engine/internal/domain"
	"github.com/resonance-social/feed-engine/internal/metrics"
)

// ErrThreadNotFound is returned when a reaction targets a thread that
// does not exist.
var ErrThreadNotFound = errors.New("thread not found")

// ProcessReactionRequest is the request for the ProcessReaction command.
type ProcessReactionRequest struct {
	UserID   string
	ThreadID string
	Type     domain.ReactionType
}

// ProcessReactionResult reports the outcome of one reaction transition.
type ProcessReactionResult struct {
	Previous    domain.ReactionType
	Current     domain.ReactionType
	Counts      domain.ReactionCounts
	ImpactScore float64
}

// ProcessReaction applies the reaction toggle state machine and, on
// add, feeds the thread's emotion back into the user's affinity
// profile. The toggle itself is one atomic storage transition; the
// affinity write is reverted by an inverse toggle if it fails, so
// callers never observe a reaction whose feedback was lost.
type ProcessReaction struct {
	Content     datasources.ThreadFetcher
	Reactions   datasources.ReactionStore
	Profiles    datasources.AffinityAdjuster
	Graph       datasources.UserAuthorityGetter
	Broadcaster datasources.Broadcaster
	Metrics     *metrics.Metrics
}

// NewProcessReaction creates a properly initialized ProcessReaction command.
func NewProcessReaction(
	content datasources.ThreadFetcher,
	reactions datasources.ReactionStore,
	profiles datasources.AffinityAdjuster,
	graph datasources.UserAuthorityGetter,
	broadcaster datasources.Broadcaster,
	m *metrics.Metrics,
) *ProcessReaction {
	return &ProcessReaction{
		Content:     content,
		Reactions:   reactions,
		Profiles:    profiles,
		Graph:       graph,
		Broadcaster: broadcaster,
		Metrics:     m,
	}
}

// Execute toggles the user's reaction on a thread. On storage failure
// the pre-operation counts are returned alongside the error.
func (c *ProcessReaction) Execute(
	ctx context.Context, req ProcessReactionRequest,
) (ProcessReactionResult, error) {
	logger := domain.LoggerFromContext(ctx)

	threads, err := c.Content.FetchThreadsByID(ctx, []string{req.ThreadID})
	if err != nil {
		return c.unchanged(ctx, req.ThreadID), fmt.Errorf("fetching thread [%s]: %w", req.ThreadID, err)
	}
	if len(threads) == 0 {
		return ProcessReactionResult{}, fmt.Errorf("thread [%s]: %w", req.ThreadID, ErrThreadNotFound)
	}
	thread := threads[0]

	toggle, err := c.Reactions.ToggleReaction(ctx, req.UserID, req.ThreadID, req.Type)
	if err != nil {
		c.Metrics.IncReactionFailures("toggle")
		return c.unchanged(ctx, req.ThreadID), fmt.Errorf("toggling reaction: %w", err)
	}
	c.Metrics.IncReactions(string(req.Type), transitionLabel(toggle))

	result := ProcessReactionResult{
		Previous: toggle.Previous,
		Current:  toggle.Current,
		Counts:   toggle.Counts,
	}

	// Affinity feedback fires only when the transition left a reaction
	// active. A toggle-off expresses no preference.
	if toggle.Added() {
		authority, err := c.Graph.GetUserAuthority(ctx, req.UserID)
		if err != nil {
			logger.WarnContext(ctx, "failed to get user authority, assuming zero", "error", err)
			authority = 0
		}
		result.ImpactScore = domain.ImpactScore(toggle.Current, thread.CreatedAt, authority, time.Now())

		delta := domain.AffinityAdjustment(toggle.Current)
		if err := c.Profiles.AdjustAffinity(ctx, req.UserID, thread.Emotion.Primary, delta); err != nil {
			c.Metrics.IncReactionFailures("affinity")
			c.revertToggle(ctx, req, toggle)
			return c.unchanged(ctx, req.ThreadID), fmt.Errorf("adjusting emotion affinity: %w", err)
		}
	}

	update := datasources.ReactionUpdate{
		ID:       uuid.NewString(),
		ThreadID: req.ThreadID,
		UserID:   req.UserID,
		Type:     toggle.Current,
		Counts:   toggle.Counts,
		At:       time.Now(),
	}
	if err := c.Broadcaster.BroadcastReactionUpdate(ctx, update); err != nil {
		// Counters are already committed; delivery is best-effort.
		logger.WarnContext(ctx, "failed to broadcast reaction update",
			"threadID", req.ThreadID, "error", err)
	}

	return result, nil
}

func transitionLabel(toggle datasources.ReactionToggle) string {
	switch {
	case toggle.Current == domain.ReactionNone:
		return metrics.TransitionRemoved
	case toggle.Previous != domain.ReactionNone:
		return metrics.TransitionSwapped
	default:
		return metrics.TransitionAdded
	}
}

// revertToggle undoes a just-applied transition so a failed affinity
// write does not leave half the operation committed. Best effort; a
// failed revert is logged and the original error still surfaces.
func (c *ProcessReaction) revertToggle(
	ctx context.Context, req ProcessReactionRequest, toggle datasources.ReactionToggle,
) {
	logger := domain.LoggerFromContext(ctx)

	// Toggling the current type removes it; if a different reaction was
	// active before, toggling that type restores it in the same step.
	revertType := toggle.Current
	if toggle.Previous != domain.ReactionNone {
		revertType = toggle.Previous
	}
	if _, err := c.Reactions.ToggleReaction(ctx, req.UserID, req.ThreadID, revertType); err != nil {
		logger.ErrorContext(ctx, "failed to revert reaction after affinity failure",
			"threadID", req.ThreadID, "userID", req.UserID, "error", err)
	}
}

// unchanged reads the thread's current counts for error responses.
func (c *ProcessReaction) unchanged(ctx context.Context, threadID string) ProcessReactionResult {
	counts, err := c.Reactions.GetReactionCounts(ctx, threadID)
	if err != nil {
		counts = domain.NewReactionCounts()
	}
	return ProcessReactionResult{Counts: counts}
}
