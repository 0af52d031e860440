package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/visali231996/banking-agent/internal/handler/chat"
	middlewarePkg "github.com/visali231996/banking-agent/internal/middleware"
	"github.com/visali231996/banking-agent/internal/model/account"
	sessionService "github.com/visali231996/banking-agent/internal/service/session"
)

// NewRouter wires HTTP routes to core services.
func NewRouter(sessions *sessionService.Service, accounts account.Store, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS(allowedOrigins))

	chatHandler := chat.New(sessions, accounts)
	wsHandler := chat.NewWebSocketHandler(sessions)

	r.Route("/api", func(api chi.Router) {
		chatHandler.RegisterRoutes(api)
		wsHandler.RegisterWebSocketRoutes(api)
	})

	return r
}
