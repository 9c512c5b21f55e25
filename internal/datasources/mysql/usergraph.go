package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/resonance-social/feed-engine/internal/domain"
)

func (r *Repository) ListFollowing(ctx context.Context, userID string) ([]string, error) {
	return r.queryStrings(ctx,
		"SELECT followed_id FROM follows WHERE follower_id = ?", userID)
}

func (r *Repository) MutualConnectionCount(ctx context.Context, userID, otherID string) (int, error) {
	const query = `SELECT COUNT(*) FROM follows f1
		JOIN follows f2 ON f1.followed_id = f2.followed_id
		WHERE f1.follower_id = ? AND f2.follower_id = ?`

	var count int
	if err := r.db.QueryRowContext(ctx, query, userID, otherID).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting mutual connections: %w", err)
	}
	return count, nil
}

func (r *Repository) ListInterestTopics(ctx context.Context, userID string) ([]string, error) {
	return r.queryStrings(ctx,
		"SELECT topic FROM user_topics WHERE user_id = ?", userID)
}

func (r *Repository) ListBlockedUsers(ctx context.Context, userID string) ([]string, error) {
	return r.queryStrings(ctx,
		"SELECT blocked_id FROM user_blocks WHERE user_id = ?", userID)
}

func (r *Repository) GetAuthorStats(ctx context.Context, authorID string) (domain.AuthorStats, error) {
	const query = "SELECT follower_count, engagement_rate FROM user_stats WHERE user_id = ?"

	var stats domain.AuthorStats
	err := r.db.QueryRowContext(ctx, query, authorID).Scan(&stats.FollowerCount, &stats.EngagementRate)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.AuthorStats{}, nil
	}
	if err != nil {
		return domain.AuthorStats{}, fmt.Errorf("getting author stats: %w", err)
	}
	return stats, nil
}

func (r *Repository) GetUserAuthority(ctx context.Context, userID string) (float64, error) {
	const query = "SELECT authority FROM user_stats WHERE user_id = ?"

	var authority float64
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&authority)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("getting user authority: %w", err)
	}
	return authority, nil
}

func (r *Repository) ListActiveHours(ctx context.Context, userID string) ([]int, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT hour FROM user_active_hours WHERE user_id = ?", userID)
	if err != nil {
		return nil, fmt.Errorf("listing active hours: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var hours []int
	for rows.Next() {
		var h int
		if err := rows.Scan(&h); err != nil {
			return nil, fmt.Errorf("scanning active hour: %w", err)
		}
		hours = append(hours, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating active hours: %w", err)
	}

	return hours, nil
}

func (r *Repository) queryStrings(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("running query: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		values = append(values, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}

	return values, nil
}
