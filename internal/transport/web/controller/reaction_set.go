package controller

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/resonance-social/feed-engine/internal/command"
	"github.com/resonance-social/feed-engine/internal/domain"
)

// ReactionResponse is the wire representation of a reaction transition.
type ReactionResponse struct {
	ThreadID string                `json:"thread_id"`
	Previous string                `json:"previous"`
	Current  string                `json:"current"`
	Counts   domain.ReactionCounts `json:"counts"`
}

type ReactionSet struct {
	ReactionCmd command.Command[command.ProcessReactionRequest, command.ProcessReactionResult]
}

func (c ReactionSet) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	threadID := vars["thread_id"]
	logger := domain.LoggerFromContext(r.Context())
	ctx := domain.ContextWithLogger(r.Context(), logger.With("thread_id", threadID))

	reactionType, err := domain.ParseReactionType(vars["reaction_type"])
	if err != nil {
		logger.ErrorContext(ctx, "invalid reaction type", "value", vars["reaction_type"])
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	result, err := c.ReactionCmd.Execute(ctx, command.ProcessReactionRequest{
		UserID:   domain.UserIDFromContext(ctx),
		ThreadID: threadID,
		Type:     reactionType,
	})
	if errors.Is(err, command.ErrThreadNotFound) {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if err != nil {
		logger.ErrorContext(ctx, "failed to process reaction", "error", err)

		// Counts in the result are the pre-operation values; surface
		// them so clients can reconcile without a second fetch.
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadGateway)
		_ = json.NewEncoder(w).Encode(ReactionResponse{
			ThreadID: threadID,
			Counts:   result.Counts,
		})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(ReactionResponse{
		ThreadID: threadID,
		Previous: string(result.Previous),
		Current:  string(result.Current),
		Counts:   result.Counts,
	}); err != nil {
		logger.ErrorContext(ctx, "unable to write reaction result to response", "error", err)
	}
}
