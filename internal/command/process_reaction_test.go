package command

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resonance-social/feed-engine/internal/datasources"
	"github.com/resonance-social/feed-engine/internal/datasources/memstore"
	"github.com/resonance-social/feed-engine/internal/domain"
)

// failingReactionStore fails toggles while reporting fixed counts.
type failingReactionStore struct {
	counts domain.ReactionCounts
}

func (s failingReactionStore) ToggleReaction(
	_ context.Context, _, _ string, _ domain.ReactionType,
) (datasources.ReactionToggle, error) {
	return datasources.ReactionToggle{}, errors.New("storage down")
}

func (s failingReactionStore) GetReactionCounts(_ context.Context, _ string) (domain.ReactionCounts, error) {
	return s.counts.Clone(), nil
}

func newReactionFixture(reactions datasources.ReactionStore, profiles *stubProfiles, graph *stubGraph, broadcaster *stubBroadcaster) (*ProcessReaction, domain.Thread) {
	thread := testThread("t1", "author1", domain.EmotionJoy, time.Now().Add(-time.Hour))
	content := &stubContent{byID: map[string]domain.Thread{"t1": thread}}

	return NewProcessReaction(content, reactions, profiles, graph, broadcaster, nil), thread
}

func TestProcessReaction_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("add_reaction", func(t *testing.T) {
		profiles := &stubProfiles{}
		broadcaster := &stubBroadcaster{}
		store := memstore.NewReactionStore()
		cmd, _ := newReactionFixture(store, profiles, &stubGraph{authority: 0.5}, broadcaster)

		result, err := cmd.Execute(ctx, ProcessReactionRequest{
			UserID: "u1", ThreadID: "t1", Type: domain.ReactionResonate,
		})

		require.NoError(t, err)
		assert.Equal(t, domain.ReactionNone, result.Previous)
		assert.Equal(t, domain.ReactionResonate, result.Current)
		assert.Equal(t, int64(1), result.Counts[domain.ReactionResonate])
		assert.Greater(t, result.ImpactScore, 0.0)

		require.Len(t, profiles.adjusted, 1)
		assert.Equal(t, domain.EmotionJoy, profiles.adjusted[0].emotion)
		assert.InDelta(t, 0.10, profiles.adjusted[0].delta, 0.0001)

		require.Len(t, broadcaster.updates, 1)
		assert.Equal(t, "t1", broadcaster.updates[0].ThreadID)
		assert.NotEmpty(t, broadcaster.updates[0].ID)
	})

	t.Run("toggle_off_applies_no_feedback", func(t *testing.T) {
		profiles := &stubProfiles{}
		store := memstore.NewReactionStore()
		cmd, _ := newReactionFixture(store, profiles, &stubGraph{}, &stubBroadcaster{})

		_, err := cmd.Execute(ctx, ProcessReactionRequest{
			UserID: "u1", ThreadID: "t1", Type: domain.ReactionSupport,
		})
		require.NoError(t, err)

		result, err := cmd.Execute(ctx, ProcessReactionRequest{
			UserID: "u1", ThreadID: "t1", Type: domain.ReactionSupport,
		})
		require.NoError(t, err)

		assert.Equal(t, domain.ReactionSupport, result.Previous)
		assert.Equal(t, domain.ReactionNone, result.Current)
		assert.Equal(t, int64(0), result.Counts[domain.ReactionSupport])
		assert.Equal(t, 0.0, result.ImpactScore)

		// Only the initial add adjusted affinity.
		assert.Len(t, profiles.adjusted, 1)
	})

	t.Run("swap_replaces_previous_reaction", func(t *testing.T) {
		profiles := &stubProfiles{}
		store := memstore.NewReactionStore()
		cmd, _ := newReactionFixture(store, profiles, &stubGraph{}, &stubBroadcaster{})

		_, err := cmd.Execute(ctx, ProcessReactionRequest{
			UserID: "u1", ThreadID: "t1", Type: domain.ReactionAmplify,
		})
		require.NoError(t, err)

		result, err := cmd.Execute(ctx, ProcessReactionRequest{
			UserID: "u1", ThreadID: "t1", Type: domain.ReactionSupport,
		})
		require.NoError(t, err)

		assert.Equal(t, domain.ReactionAmplify, result.Previous)
		assert.Equal(t, domain.ReactionSupport, result.Current)
		assert.Equal(t, int64(0), result.Counts[domain.ReactionAmplify])
		assert.Equal(t, int64(1), result.Counts[domain.ReactionSupport])
		assert.Equal(t, domain.ReactionSupport, store.ActiveReaction("u1", "t1"))
	})

	t.Run("challenge_reduces_affinity", func(t *testing.T) {
		profiles := &stubProfiles{}
		store := memstore.NewReactionStore()
		cmd, _ := newReactionFixture(store, profiles, &stubGraph{}, &stubBroadcaster{})

		_, err := cmd.Execute(ctx, ProcessReactionRequest{
			UserID: "u1", ThreadID: "t1", Type: domain.ReactionChallenge,
		})
		require.NoError(t, err)

		require.Len(t, profiles.adjusted, 1)
		assert.InDelta(t, -0.02, profiles.adjusted[0].delta, 0.0001)
	})

	t.Run("storage_failure_returns_pre_operation_counts", func(t *testing.T) {
		counts := domain.NewReactionCounts()
		counts[domain.ReactionResonate] = 7
		profiles := &stubProfiles{}
		cmd, _ := newReactionFixture(failingReactionStore{counts: counts}, profiles, &stubGraph{}, &stubBroadcaster{})

		result, err := cmd.Execute(ctx, ProcessReactionRequest{
			UserID: "u1", ThreadID: "t1", Type: domain.ReactionResonate,
		})

		require.Error(t, err)
		assert.Equal(t, int64(7), result.Counts[domain.ReactionResonate])
		assert.Empty(t, profiles.adjusted)
	})

	t.Run("affinity_failure_reverts_toggle", func(t *testing.T) {
		profiles := &stubProfiles{adjustErr: errors.New("profile store down")}
		store := memstore.NewReactionStore()
		cmd, _ := newReactionFixture(store, profiles, &stubGraph{}, &stubBroadcaster{})

		result, err := cmd.Execute(ctx, ProcessReactionRequest{
			UserID: "u1", ThreadID: "t1", Type: domain.ReactionResonate,
		})

		require.Error(t, err)
		assert.Equal(t, domain.ReactionNone, store.ActiveReaction("u1", "t1"))
		assert.Equal(t, int64(0), result.Counts[domain.ReactionResonate])
	})

	t.Run("broadcast_failure_does_not_fail_operation", func(t *testing.T) {
		profiles := &stubProfiles{}
		store := memstore.NewReactionStore()
		broadcaster := &stubBroadcaster{err: errors.New("pubsub down")}
		cmd, _ := newReactionFixture(store, profiles, &stubGraph{}, broadcaster)

		result, err := cmd.Execute(ctx, ProcessReactionRequest{
			UserID: "u1", ThreadID: "t1", Type: domain.ReactionLearn,
		})

		require.NoError(t, err)
		assert.Equal(t, domain.ReactionLearn, result.Current)
		assert.Equal(t, int64(1), result.Counts[domain.ReactionLearn])
	})

	t.Run("authority_failure_degrades_to_zero", func(t *testing.T) {
		profiles := &stubProfiles{}
		store := memstore.NewReactionStore()
		graph := &stubGraph{authorityErr: errors.New("graph down")}
		cmd, thread := newReactionFixture(store, profiles, graph, &stubBroadcaster{})

		result, err := cmd.Execute(ctx, ProcessReactionRequest{
			UserID: "u1", ThreadID: "t1", Type: domain.ReactionResonate,
		})

		require.NoError(t, err)
		want := domain.ImpactScore(domain.ReactionResonate, thread.CreatedAt, 0, time.Now())
		assert.InDelta(t, want, result.ImpactScore, 0.01)
	})

	t.Run("unknown_thread_returns_not_found", func(t *testing.T) {
		cmd, _ := newReactionFixture(memstore.NewReactionStore(), &stubProfiles{}, &stubGraph{}, &stubBroadcaster{})

		_, err := cmd.Execute(ctx, ProcessReactionRequest{
			UserID: "u1", ThreadID: "missing", Type: domain.ReactionResonate,
		})

		require.ErrorIs(t, err, ErrThreadNotFound)
	})
}
