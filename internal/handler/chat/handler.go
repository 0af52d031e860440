package chat

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/visali231996/banking-agent/internal/agent"
	"github.com/visali231996/banking-agent/internal/model/account"
	"github.com/visali231996/banking-agent/internal/model/conversation"
	sessionService "github.com/visali231996/banking-agent/internal/service/session"
	"github.com/visali231996/banking-agent/pkg/utils"
)

// Handler exposes the conversational banking agent over HTTP.
type Handler struct {
	sessions *sessionService.Service
	accounts account.Store
}

// New creates the chat handler.
func New(sessions *sessionService.Service, accounts account.Store) *Handler {
	return &Handler{sessions: sessions, accounts: accounts}
}

// RegisterRoutes wires the chat endpoints.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/session", h.handleCreateSession)
	r.Post("/session/{sessionID}/turn", h.handleTurn)
	r.Get("/session/{sessionID}/transcript", h.handleTranscript)
}

// TurnResponse is the per-turn payload returned to the client. PendingAction
// and Authenticated let a stateless client display confirmation prompts
// without re-deriving agent state.
type TurnResponse struct {
	Reply         string                      `json:"reply"`
	Authenticated bool                        `json:"authenticated"`
	Intent        conversation.Intent         `json:"intent"`
	PendingAction *conversation.PendingAction `json:"pendingAction,omitempty"`
}

func (h *Handler) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		AccountID string `json:"accountId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.AccountID == "" {
		utils.RespondError(w, http.StatusBadRequest, "accountId is required")
		return
	}

	if _, err := h.accounts.Get(r.Context(), payload.AccountID); err != nil {
		if errors.Is(err, account.ErrNotFound) {
			utils.RespondError(w, http.StatusBadRequest, "account not found")
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, "account lookup failed")
		return
	}

	session, err := h.sessions.CreateSession(r.Context(), payload.AccountID)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusCreated, session)
}

func (h *Handler) handleTurn(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	var payload struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.Message == "" {
		utils.RespondError(w, http.StatusBadRequest, "message is required")
		return
	}

	state, reply, err := h.runTurn(r.Context(), w, sessionID, payload.Message)
	if err != nil {
		return
	}

	utils.RespondJSON(w, http.StatusOK, TurnResponse{
		Reply:         reply,
		Authenticated: state.Authenticated,
		Intent:        state.Intent,
		PendingAction: state.PendingAction,
	})
}

// runTurn maps service errors onto HTTP statuses; on error the response has
// already been written.
func (h *Handler) runTurn(ctx context.Context, w http.ResponseWriter, sessionID, message string) (conversation.State, string, error) {
	state, reply, err := h.sessions.RunTurn(ctx, sessionID, message)
	switch {
	case errors.Is(err, sessionService.ErrSessionNotFound):
		utils.RespondError(w, http.StatusNotFound, "session not found")
	case errors.Is(err, agent.ErrStepBudget):
		utils.RespondError(w, http.StatusInternalServerError, "internal error")
	case err != nil:
		utils.RespondError(w, http.StatusInternalServerError, "turn failed")
	}
	return state, reply, err
}

func (h *Handler) handleTranscript(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	messages, err := h.sessions.Transcript(r.Context(), sessionID)
	if err != nil {
		utils.RespondError(w, http.StatusNotFound, "session not found")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{"messages": messages})
}
