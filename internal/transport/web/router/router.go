package router

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/resonance-social/feed-engine/internal/command"
	"github.com/resonance-social/feed-engine/internal/metrics"
	"github.com/resonance-social/feed-engine/internal/transport/web/controller"
)

func MakeRouter(
	feedCmd command.Command[command.GetFeedRequest, command.GetFeedResult],
	reactionCmd command.Command[command.ProcessReactionRequest, command.ProcessReactionResult],
	rssFeedBaseURL, rssFeedAuthorName, rssFeedAuthorEmail string,
	m *metrics.Metrics,
	metricsHandler http.Handler,
	authMiddleware func(http.Handler) http.Handler,
) (http.Handler, error) {
	r := mux.NewRouter()
	r.Use(corsMiddleware)
	r.Use(metricsMiddleware(m))
	r.Use(authMiddleware)

	r.Handle("/v1/feed", requireAuthMiddleware(controller.FeedGet{
		FeedCmd: feedCmd,
	})).Methods(http.MethodGet, http.MethodOptions)

	r.Handle("/v1/feed/rss", requireAuthMiddleware(controller.FeedRSS{
		FeedHostname:    rssFeedBaseURL,
		FeedPath:        "/v1/feed/rss",
		FeedAuthorName:  rssFeedAuthorName,
		FeedAuthorEmail: rssFeedAuthorEmail,
		FeedCmd:         feedCmd,
	})).Methods(http.MethodGet, http.MethodOptions)

	r.Handle("/v1/threads/{thread_id}/reactions/{reaction_type}",
		requireAuthMiddleware(controller.ReactionSet{
			ReactionCmd: reactionCmd,
		})).Methods(http.MethodPost, http.MethodOptions)

	r.Handle("/healthz", controller.Healthz{}).Methods(http.MethodGet)
	r.Handle("/metrics", metricsHandler).Methods(http.MethodGet)

	return r, nil
}
