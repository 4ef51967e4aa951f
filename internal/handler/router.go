package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	authhandler "github.com/kavyanair/mindhaven/backend/internal/handler/auth"
	chathandler "github.com/kavyanair/mindhaven/backend/internal/handler/chat"
)

// NewRouter wires HTTP routes to core services.
func NewRouter(chatHandler *chathandler.Handler, authHandler *authhandler.Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.AllowAll().Handler)

	r.Route("/api", func(api chi.Router) {
		authHandler.RegisterRoutes(api)
		chatHandler.RegisterRoutes(api)
	})

	return r
}
