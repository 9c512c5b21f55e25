package datasources

import (
	"context"

	"github.com/resonance-social/feed-engine/internal/domain"
)

// UserGraph combines the social-graph queries consumed by candidate
// generation, feature extraction, and the reaction engine.
type UserGraph interface {
	FollowingLister
	MutualConnectionCounter
	InterestTopicsLister
	BlockedUsersLister
	AuthorStatsGetter
	UserAuthorityGetter
	ActiveHoursLister
}

type FollowingLister interface {
	ListFollowing(ctx context.Context, userID string) ([]string, error)
}

type MutualConnectionCounter interface {
	MutualConnectionCount(ctx context.Context, userID, otherID string) (int, error)
}

type InterestTopicsLister interface {
	ListInterestTopics(ctx context.Context, userID string) ([]string, error)
}

type BlockedUsersLister interface {
	ListBlockedUsers(ctx context.Context, userID string) ([]string, error)
}

type AuthorStatsGetter interface {
	GetAuthorStats(ctx context.Context, authorID string) (domain.AuthorStats, error)
}

// UserAuthorityGetter reports a user's authority in [0, 1], used to
// weight the ranking impact of their reactions.
type UserAuthorityGetter interface {
	GetUserAuthority(ctx context.Context, userID string) (float64, error)
}

// ActiveHoursLister reports the hours-of-day (0-23) a user typically
// engages in, used for the heavy ranker's active-hour bonus.
type ActiveHoursLister interface {
	ListActiveHours(ctx context.Context, userID string) ([]int, error)
}

// NullUserGraph is a null implementation of UserGraph: no relationships,
// no topics, zero authority. Used when the graph provider is absent.
type NullUserGraph struct{}

var _ UserGraph = NullUserGraph{}

func (NullUserGraph) ListFollowing(_ context.Context, _ string) ([]string, error) { return nil, nil }

func (NullUserGraph) MutualConnectionCount(_ context.Context, _, _ string) (int, error) {
	return 0, nil
}

func (NullUserGraph) ListInterestTopics(_ context.Context, _ string) ([]string, error) {
	return nil, nil
}

func (NullUserGraph) ListBlockedUsers(_ context.Context, _ string) ([]string, error) {
	return nil, nil
}

func (NullUserGraph) GetAuthorStats(_ context.Context, _ string) (domain.AuthorStats, error) {
	return domain.AuthorStats{}, nil
}

func (NullUserGraph) GetUserAuthority(_ context.Context, _ string) (float64, error) {
	return 0, nil
}

func (NullUserGraph) ListActiveHours(_ context.Context, _ string) ([]int, error) {
	return nil, nil
}
