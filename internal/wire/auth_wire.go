package wire

import (
	"cinema-api/internal/adaptor"
	"cinema-api/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// POST /api/register - Create a new account
	r.Post("/api/register", authHandler.Register)

	// POST /api/login - Exchange credentials for a token
	r.Post("/api/login", authHandler.Login)

	// ==================== PROTECTED ROUTES ====================
	// GET /api/me - Current account profile
	r.With(middleware.RequireAuth(log)).Get("/api/me", authHandler.Me)
}
