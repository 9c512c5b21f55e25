package controller

import (
	"fmt"
	"net/http"

	"github.com/gorilla/feeds"

	"github.com/resonance-social/feed-engine/internal/command"
	"github.com/resonance-social/feed-engine/internal/domain"
)

// FeedRSS renders the user's ranked feed as RSS.
type FeedRSS struct {
	FeedHostname    string
	FeedPath        string
	FeedAuthorName  string
	FeedAuthorEmail string
	FeedCmd         command.Command[command.GetFeedRequest, command.GetFeedResult]
}

func (c FeedRSS) ServeHTTP(w http.ResponseWriter, r *http.Request) {
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
		logger.ErrorContext(ctx, "unable to generate feed for RSS", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	feed := &feeds.Feed{
		Title:       "Resonance Feed",
		Link:        &feeds.Link{Href: c.FeedHostname + c.FeedPath},
		Description: "Ranked threads from your Resonance feed",
		Author:      &feeds.Author{Name: c.FeedAuthorName, Email: c.FeedAuthorEmail},
		Created:     result.GeneratedAt,
	}

	for _, item := range result.Items {
		t := item.Candidate.Thread
		feed.Items = append(feed.Items, &feeds.Item{
			Id:          t.ID,
			IsPermaLink: "false",
			Title:       rssTitle(t),
			Link:        &feeds.Link{Href: fmt.Sprintf("%s/threads/%s", c.FeedHostname, t.ID)},
			Description: t.Text,
			Author:      &feeds.Author{Name: t.AuthorID},
			Created:     t.CreatedAt,
		})
	}

	rss, err := feed.ToRss()
	if err != nil {
		logger.ErrorContext(ctx, "unable to format feed as RSS", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/xml")
	if _, err := w.Write([]byte(rss)); err != nil {
		logger.ErrorContext(ctx, "unable to write feed to response", "error", err)
	}
}

const rssTitleMaxLen = 80

func rssTitle(t domain.Thread) string {
	runes := []rune(t.Text)
	if len(runes) > rssTitleMaxLen {
		return string(runes[:rssTitleMaxLen]) + "…"
	}
	return t.Text
}
