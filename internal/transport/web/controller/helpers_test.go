package controller

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/resonance-social/feed-engine/internal/domain"
)

// stubCommand returns a canned result or error for any request.
type stubCommand[Req, Res any] struct {
	result Res
	err    error

	requests []Req
}

func (c *stubCommand[Req, Res]) Execute(_ context.Context, req Req) (Res, error) {
	c.requests = append(c.requests, req)
	return c.result, c.err
}

func testContext() func(r *http.Request) *http.Request {
	return func(r *http.Request) *http.Request {
		ctx := domain.ContextWithLogger(r.Context(), slog.Default())
		return r.WithContext(ctx)
	}
}

func testContextWithUserID(userID string) func(r *http.Request) *http.Request {
	return func(r *http.Request) *http.Request {
		ctx := domain.ContextWithLogger(r.Context(), slog.Default())
		ctx = domain.ContextWithUserID(ctx, userID)
		return r.WithContext(ctx)
	}
}
