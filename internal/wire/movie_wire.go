package wire

import (
	"cinema-api/internal/adaptor"
	"cinema-api/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireMovie(
	r chi.Router,
	movieHandler *adaptor.MovieHandler,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/movies?page=1&per_page=10 - Browse the movie catalog
	r.Get("/api/movies", movieHandler.GetMovies)

	// GET /api/movies/{id} - Movie details with genres and actors
	r.Get("/api/movies/{id}", movieHandler.GetMovieByID)

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/movies", func(r chi.Router) {
		r.Use(middleware.RequireAdmin(log))

		r.Post("/", movieHandler.CreateMovie)            // POST /api/admin/movies
		r.Put("/{id}", movieHandler.UpdateMovie)         // PUT /api/admin/movies/{id}
		r.Delete("/{id}", movieHandler.DeleteMovie)      // DELETE /api/admin/movies/{id}
		r.Post("/{id}/image", movieHandler.UploadPoster) // POST /api/admin/movies/{id}/image
	})
}
