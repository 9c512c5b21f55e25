package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/resonance-social/feed-engine/internal/datasources"
	"github.com/resonance-social/feed-engine/internal/domain"
)

// counterColumn maps reaction types to their counter columns on the
// threads table. Column names are fixed strings, never interpolated
// from caller input.
var counterColumn = map[domain.ReactionType]string{
	domain.ReactionResonate:  "count_resonate",
	domain.ReactionSupport:   "count_support",
	domain.ReactionLearn:     "count_learn",
	domain.ReactionChallenge: "count_challenge",
	domain.ReactionAmplify:   "count_amplify",
}

// ToggleReaction applies the reaction state machine inside one
// transaction. The user_reactions row is locked for the duration, so
// concurrent toggles for the same (user, thread) pair serialize at the
// storage layer, and counters only ever move by atomic
// increment/decrement.
func (r *Repository) ToggleReaction(
	ctx context.Context, userID, threadID string, reaction domain.ReactionType,
) (datasources.ReactionToggle, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return datasources.ReactionToggle{}, fmt.Errorf("starting transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var previous domain.ReactionType
	err = tx.QueryRowContext(ctx,
		"SELECT reaction_type FROM user_reactions WHERE user_id = ? AND thread_id = ? FOR UPDATE",
		userID, threadID,
	).Scan(&previous)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return datasources.ReactionToggle{}, fmt.Errorf("reading current reaction: %w", err)
	}

	toggle := datasources.ReactionToggle{Previous: previous}
	switch previous {
	case reaction:
		// Same type resubmitted: toggle off.
		if err := r.removeReaction(ctx, tx, userID, threadID, previous); err != nil {
			return datasources.ReactionToggle{}, err
		}
		toggle.Current = domain.ReactionNone

	case domain.ReactionNone:
		if err := r.addReaction(ctx, tx, userID, threadID, reaction); err != nil {
			return datasources.ReactionToggle{}, err
		}
		toggle.Current = reaction

	default:
		// Different type: swap within the same transaction so no state
		// with two active reactions for one user is ever visible.
		if err := r.removeReaction(ctx, tx, userID, threadID, previous); err != nil {
			return datasources.ReactionToggle{}, err
		}
		if err := r.addReaction(ctx, tx, userID, threadID, reaction); err != nil {
			return datasources.ReactionToggle{}, err
		}
		toggle.Current = reaction
	}

	counts, err := r.readCounts(ctx, tx, threadID)
	if err != nil {
		return datasources.ReactionToggle{}, err
	}
	toggle.Counts = counts

	if err := tx.Commit(); err != nil {
		return datasources.ReactionToggle{}, fmt.Errorf("committing transaction: %w", err)
	}

	return toggle, nil
}

func (r *Repository) addReaction(
	ctx context.Context, tx *sql.Tx, userID, threadID string, reaction domain.ReactionType,
) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO user_reactions (user_id, thread_id, reaction_type, created_at)
		 VALUES (?, ?, ?, ?)
		 ON DUPLICATE KEY UPDATE reaction_type = VALUES(reaction_type), created_at = VALUES(created_at)`,
		userID, threadID, string(reaction), time.Now(),
	)
	if err != nil {
		return fmt.Errorf("upserting reaction row: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		fmt.Sprintf("UPDATE threads SET %s = %s + 1 WHERE id = ?",
			counterColumn[reaction], counterColumn[reaction]),
		threadID,
	)
	if err != nil {
		return fmt.Errorf("incrementing %s counter: %w", reaction, err)
	}
	return nil
}

func (r *Repository) removeReaction(
	ctx context.Context, tx *sql.Tx, userID, threadID string, reaction domain.ReactionType,
) error {
	_, err := tx.ExecContext(ctx,
		"DELETE FROM user_reactions WHERE user_id = ? AND thread_id = ?",
		userID, threadID,
	)
	if err != nil {
		return fmt.Errorf("deleting reaction row: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		fmt.Sprintf("UPDATE threads SET %s = GREATEST(%s - 1, 0) WHERE id = ?",
			counterColumn[reaction], counterColumn[reaction]),
		threadID,
	)
	if err != nil {
		return fmt.Errorf("decrementing %s counter: %w", reaction, err)
	}
	return nil
}

func (r *Repository) readCounts(ctx context.Context, tx *sql.Tx, threadID string) (domain.ReactionCounts, error) {
	var counts [5]int64
	err := tx.QueryRowContext(ctx,
		`SELECT count_resonate, count_support, count_learn, count_challenge, count_amplify
		 FROM threads WHERE id = ?`,
		threadID,
	).Scan(&counts[0], &counts[1], &counts[2], &counts[3], &counts[4])
	if err != nil {
		return nil, fmt.Errorf("reading thread counters: %w", err)
	}

	return domain.ReactionCounts{
		domain.ReactionResonate:  counts[0],
		domain.ReactionSupport:   counts[1],
		domain.ReactionLearn:     counts[2],
		domain.ReactionChallenge: counts[3],
		domain.ReactionAmplify:   counts[4],
	}, nil
}

func (r *Repository) GetReactionCounts(ctx context.Context, threadID string) (domain.ReactionCounts, error) {
	var counts [5]int64
	err := r.db.QueryRowContext(ctx,
		`SELECT count_resonate, count_support, count_learn, count_challenge, count_amplify
		 FROM threads WHERE id = ?`,
		threadID,
	).Scan(&counts[0], &counts[1], &counts[2], &counts[3], &counts[4])
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NewReactionCounts(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading thread counters: %w", err)
	}

	return domain.ReactionCounts{
		domain.ReactionResonate:  counts[0],
		domain.ReactionSupport:   counts[1],
		domain.ReactionLearn:     counts[2],
		domain.ReactionChallenge: counts[3],
		domain.ReactionAmplify:   counts[4],
	}, nil
}
