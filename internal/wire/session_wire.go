package wire

import (
	"cinema-api/internal/adaptor"
	"cinema-api/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireSession(
	r chi.Router,
	sessionHandler *adaptor.SessionHandler,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/sessions?date=2026-01-15&movie={id} - Screening schedule
	r.Get("/api/sessions", sessionHandler.GetSessions)

	// GET /api/sessions/{id} - Session details with taken seats
	r.Get("/api/sessions/{id}", sessionHandler.GetSessionByID)

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/sessions", func(r chi.Router) {
		r.Use(middleware.RequireAdmin(log))

		r.Post("/", sessionHandler.CreateSession)       // POST /api/admin/sessions
		r.Put("/{id}", sessionHandler.UpdateSession)    // PUT /api/admin/sessions/{id}
		r.Delete("/{id}", sessionHandler.DeleteSession) // DELETE /api/admin/sessions/{id}
	})
}
