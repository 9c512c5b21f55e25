package controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resonance-social/feed-engine/internal/command"
	"github.com/resonance-social/feed-engine/internal/domain"
)

func reactionRequest(threadID, reactionType string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/v1/threads/"+threadID+"/reactions/"+reactionType, nil)
	r = mux.SetURLVars(r, map[string]string{
		"thread_id":     threadID,
		"reaction_type": reactionType,
	})
	return testContextWithUserID("u1")(r)
}

func TestReactionSet_ServeHTTP(t *testing.T) {
	t.Run("returns_transition_and_counts", func(t *testing.T) {
		counts := domain.NewReactionCounts()
		counts[domain.ReactionResonate] = 4
		cmd := &stubCommand[command.ProcessReactionRequest, command.ProcessReactionResult]{
			result: command.ProcessReactionResult{
				Previous: domain.ReactionNone,
				Current:  domain.ReactionResonate,
				Counts:   counts,
			},
		}
		controller := ReactionSet{ReactionCmd: cmd}

		w := httptest.NewRecorder()
		controller.ServeHTTP(w, reactionRequest("t1", "resonate"))

		require.Equal(t, http.StatusOK, w.Code)

		var response ReactionResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "t1", response.ThreadID)
		assert.Equal(t, "", response.Previous)
		assert.Equal(t, "resonate", response.Current)
		assert.Equal(t, int64(4), response.Counts[domain.ReactionResonate])

		require.Len(t, cmd.requests, 1)
		assert.Equal(t, "u1", cmd.requests[0].UserID)
		assert.Equal(t, "t1", cmd.requests[0].ThreadID)
		assert.Equal(t, domain.ReactionResonate, cmd.requests[0].Type)
	})

	t.Run("rejects_unknown_reaction_type", func(t *testing.T) {
		cmd := &stubCommand[command.ProcessReactionRequest, command.ProcessReactionResult]{}
		controller := ReactionSet{ReactionCmd: cmd}

		w := httptest.NewRecorder()
		controller.ServeHTTP(w, reactionRequest("t1", "upvote"))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Empty(t, cmd.requests)
	})

	t.Run("unknown_thread_returns_not_found", func(t *testing.T) {
		cmd := &stubCommand[command.ProcessReactionRequest, command.ProcessReactionResult]{
			err: command.ErrThreadNotFound,
		}
		controller := ReactionSet{ReactionCmd: cmd}

		w := httptest.NewRecorder()
		controller.ServeHTTP(w, reactionRequest("missing", "resonate"))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("storage_failure_returns_pre_operation_counts", func(t *testing.T) {
		counts := domain.NewReactionCounts()
		counts[domain.ReactionSupport] = 9
		cmd := &stubCommand[command.ProcessReactionRequest, command.ProcessReactionResult]{
			result: command.ProcessReactionResult{Counts: counts},
			err:    errors.New("storage down"),
		}
		controller := ReactionSet{ReactionCmd: cmd}

		w := httptest.NewRecorder()
		controller.ServeHTTP(w, reactionRequest("t1", "support"))

		require.Equal(t, http.StatusBadGateway, w.Code)

		var response ReactionResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, int64(9), response.Counts[domain.ReactionSupport])
	})
}
