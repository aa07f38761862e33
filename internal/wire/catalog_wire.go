package wire

import (
	"cinema-api/internal/adaptor"
	"cinema-api/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireCatalog configures genre, actor and cinema hall routes. Listings
// are public, creation is admin only.
func wireCatalog(
	r chi.Router,
	catalogHandler *adaptor.CatalogHandler,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/api/genres", catalogHandler.GetGenres)
	r.Get("/api/actors", catalogHandler.GetActors)
	r.Get("/api/cinema-halls", catalogHandler.GetHalls)

	// ==================== ADMIN ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAdmin(log))

		r.Post("/api/admin/genres", catalogHandler.CreateGenre)
		r.Post("/api/admin/actors", catalogHandler.CreateActor)
		r.Post("/api/admin/cinema-halls", catalogHandler.CreateHall)
	})
}
