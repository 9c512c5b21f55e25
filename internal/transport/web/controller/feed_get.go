package controller

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/resonance-social/feed-engine/internal/command"
	"github.com/resonance-social/feed-engine/internal/domain"
)

// FeedItem is the wire representation of one ranked feed entry.
type FeedItem struct {
	ThreadID    string                `json:"thread_id"`
	AuthorID    string                `json:"author_id"`
	Text        string                `json:"text"`
	Hashtags    []string              `json:"hashtags,omitempty"`
	Emotion     string                `json:"emotion"`
	Reactions   domain.ReactionCounts `json:"reactions"`
	ReplyCount  int64                 `json:"reply_count"`
	ShareCount  int64                 `json:"share_count"`
	Source      string                `json:"source"`
	Score       float64               `json:"score"`
	CreatedAt   time.Time             `json:"created_at"`
}

// FeedResponse is the wire representation of a feed page.
type FeedResponse struct {
	Items       []FeedItem `json:"items"`
	Fallback    bool       `json:"fallback"`
	GeneratedAt time.Time  `json:"generated_at"`
}

type FeedGet struct {
	FeedCmd command.Command[command.GetFeedRequest, command.GetFeedResult]
}

func (c FeedGet) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := domain.LoggerFromContext(ctx)

	limit, err := limitFromQuery(r)
	if err != nil {
		logger.ErrorContext(ctx, "invalid limit in query string", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	result, err := c.FeedCmd.Execute(ctx, command.GetFeedRequest{
		UserID: domain.UserIDFromContext(ctx),
		Limit:  limit,
	})
	if err != nil {
		logger.ErrorContext(ctx, "unable to generate feed", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(feedResponse(result)); err != nil {
		logger.ErrorContext(ctx, "unable to write feed to response", "error", err)
	}
}

func feedResponse(result command.GetFeedResult) FeedResponse {
	items := make([]FeedItem, 0, len(result.Items))
	for _, item := range result.Items {
		t := item.Candidate.Thread
		items = append(items, FeedItem{
			ThreadID:    t.ID,
			AuthorID:    t.AuthorID,
			Text:        t.Text,
			Hashtags:    t.Hashtags,
			Emotion:     string(t.Emotion.Primary),
			Reactions:   t.Reactions,
			ReplyCount:  t.ReplyCount,
			ShareCount:  t.ShareCount,
			Source:      string(item.Candidate.Source),
			Score:       item.FinalScore,
			CreatedAt:   t.CreatedAt,
		})
	}

	return FeedResponse{
		Items:       items,
		Fallback:    result.Fallback,
		GeneratedAt: result.GeneratedAt,
	}
}

func limitFromQuery(r *http.Request) (int, error) {
	if !r.URL.Query().Has("limit") {
		return 0, nil
	}

	limit, err := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("unable to parse limit from query: %w", err)
	}
	if limit < 1 {
		return 0, fmt.Errorf("invalid limit value [%d]", limit)
	}

	return int(limit), nil
}
