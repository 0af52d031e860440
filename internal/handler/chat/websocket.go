package chat

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	sessionService "github.com/visali231996/banking-agent/internal/service/session"
)

// WebSocketHandler runs the agent over a persistent connection: each inbound
// text frame is one conversation turn.
type WebSocketHandler struct {
	sessions *sessionService.Service
	upgrader websocket.Upgrader
}

// NewWebSocketHandler creates the websocket chat handler.
func NewWebSocketHandler(sessions *sessionService.Service) *WebSocketHandler {
	return &WebSocketHandler{
		sessions: sessions,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterWebSocketRoutes wires the websocket endpoint.
func (h *WebSocketHandler) RegisterWebSocketRoutes(r chi.Router) {
	r.Get("/ws/{sessionID}", h.handleWebSocket)
}

type wsInbound struct {
	Message string `json:"message"`
}

type wsOutbound struct {
	Reply         string `json:"reply,omitempty"`
	Authenticated bool   `json:"authenticated"`
	Intent        string `json:"intent,omitempty"`
	Error         string `json:"error,omitempty"`
	Timestamp     int64  `json:"timestamp"`
}

func (h *WebSocketHandler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	if _, err := h.sessions.GetSession(r.Context(), sessionID); err != nil {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[ws] upgrade failed for session=%s: %v", sessionID, err)
		return
	}
	defer conn.Close()

	for {
		var in wsInbound
		if err := conn.ReadJSON(&in); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("[ws] read error for session=%s: %v", sessionID, err)
			}
			return
		}
		if in.Message == "" {
			h.writeJSON(conn, sessionID, wsOutbound{Error: "message is required", Timestamp: time.Now().Unix()})
			continue
		}

		state, reply, err := h.sessions.RunTurn(r.Context(), sessionID, in.Message)
		if err != nil {
			if errors.Is(err, sessionService.ErrSessionNotFound) {
				h.writeJSON(conn, sessionID, wsOutbound{Error: "session not found", Timestamp: time.Now().Unix()})
				return
			}
			log.Printf("[ws] turn failed for session=%s: %v", sessionID, err)
			h.writeJSON(conn, sessionID, wsOutbound{Error: "turn failed", Timestamp: time.Now().Unix()})
			continue
		}

		h.writeJSON(conn, sessionID, wsOutbound{
			Reply:         reply,
			Authenticated: state.Authenticated,
			Intent:        string(state.Intent),
			Timestamp:     time.Now().Unix(),
		})
	}
}

func (h *WebSocketHandler) writeJSON(conn *websocket.Conn, sessionID string, out wsOutbound) {
	if err := conn.WriteJSON(out); err != nil {
		log.Printf("[ws] write error for session=%s: %v", sessionID, err)
	}
}
