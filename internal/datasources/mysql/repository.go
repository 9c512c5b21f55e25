package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/huandu/go-sqlbuilder"

	"github.com/resonance-social/feed-engine/internal/datasources"
	"github.com/resonance-social/feed-engine/internal/domain"
)

var _ datasources.ContentRepository = (*Repository)(nil)
var _ datasources.UserGraph = (*Repository)(nil)
var _ datasources.ReactionStore = (*Repository)(nil)

// Repository backs the content repository, user graph, and reaction
// store with MySQL.
type Repository struct {
	db *sql.DB
}

func New(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const threadColumns = "id, author_id, text, hashtags, " +
	"primary_emotion, secondary_emotion, emotion_confidence, emotion_intensity, " +
	"count_resonate, count_support, count_learn, count_challenge, count_amplify, " +
	"reply_count, share_count, created_at"

func (r *Repository) ListThreadsByAuthors(
	ctx context.Context, authorIDs []string, since time.Time, limit int,
) ([]domain.Thread, error) {
	if len(authorIDs) == 0 {
		return nil, nil
	}

	sb := sqlbuilder.Select(threadColumns)
	sb.From("threads")
	sb.Where(
		sb.In("author_id", sqlbuilder.Flatten(authorIDs)...),
		sb.GreaterEqualThan("created_at", since),
	)
	sb.OrderBy("created_at").Desc()
	sb.Limit(limit)

	return r.queryThreads(ctx, sb)
}

func (r *Repository) ListThreadsByEmotions(
	ctx context.Context, emotions []domain.Emotion, minConfidence float64, since time.Time, limit int,
) ([]domain.Thread, error) {
	if len(emotions) == 0 {
		return nil, nil
	}

	names := make([]string, 0, len(emotions))
	for _, e := range emotions {
		names = append(names, string(e))
	}

	sb := sqlbuilder.Select(threadColumns)
	sb.From("threads")
	sb.Where(
		sb.In("primary_emotion", sqlbuilder.Flatten(names)...),
		sb.GreaterEqualThan("emotion_confidence", minConfidence),
		sb.GreaterEqualThan("created_at", since),
	)
	sb.OrderBy("emotion_confidence").Desc()
	sb.Limit(limit)

	return r.queryThreads(ctx, sb)
}

func (r *Repository) ListThreadsByTopics(
	ctx context.Context, topics []string, since time.Time, limit int,
) ([]domain.Thread, error) {
	if len(topics) == 0 {
		return nil, nil
	}

	sb := sqlbuilder.Select(threadColumns)
	sb.From("threads")

	topicConds := make([]string, 0, len(topics))
	for _, topic := range topics {
		topicConds = append(topicConds, sb.Like("hashtags", "%"+topic+"%"))
	}
	sb.Where(
		sb.Or(topicConds...),
		sb.GreaterEqualThan("created_at", since),
	)
	sb.OrderBy("created_at").Desc()
	sb.Limit(limit)

	return r.queryThreads(ctx, sb)
}

func (r *Repository) ListRecentThreads(
	ctx context.Context, since time.Time, limit int,
) ([]domain.Thread, error) {
	sb := sqlbuilder.Select(threadColumns)
	sb.From("threads")
	sb.Where(sb.GreaterEqualThan("created_at", since))
	sb.OrderBy("created_at").Desc()
	sb.Limit(limit)

	return r.queryThreads(ctx, sb)
}

func (r *Repository) FetchThreadsByID(ctx context.Context, ids []string) ([]domain.Thread, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	sb := sqlbuilder.Select(threadColumns)
	sb.From("threads")
	sb.Where(sb.In("id", sqlbuilder.Flatten(ids)...))

	return r.queryThreads(ctx, sb)
}

func (r *Repository) queryThreads(ctx context.Context, sb *sqlbuilder.SelectBuilder) ([]domain.Thread, error) {
	query, args := sb.Build()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("running threads query: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var threads []domain.Thread
	for rows.Next() {
		thread, err := scanThread(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning thread: %w", err)
		}
		threads = append(threads, thread)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating thread rows: %w", err)
	}

	return threads, nil
}

func scanThread(rows *sql.Rows) (domain.Thread, error) {
	var (
		t         domain.Thread
		hashtags  string
		secondary sql.NullString
		counts    [5]int64
	)
	if err := rows.Scan(
		&t.ID, &t.AuthorID, &t.Text, &hashtags,
		&t.Emotion.Primary, &secondary, &t.Emotion.Confidence, &t.Emotion.Intensity,
		&counts[0], &counts[1], &counts[2], &counts[3], &counts[4],
		&t.ReplyCount, &t.ShareCount, &t.CreatedAt,
	); err != nil {
		return domain.Thread{}, err
	}

	if secondary.Valid {
		t.Emotion.Secondary = domain.Emotion(secondary.String)
	}
	t.Hashtags = strings.Fields(hashtags)
	t.Reactions = domain.ReactionCounts{
		domain.ReactionResonate:  counts[0],
		domain.ReactionSupport:   counts[1],
		domain.ReactionLearn:     counts[2],
		domain.ReactionChallenge: counts[3],
		domain.ReactionAmplify:   counts[4],
	}

	return t, nil
}
