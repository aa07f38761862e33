package wire

import (
	"net/http"

	"cinema-api/internal/adaptor"
	"cinema-api/internal/cache"
	"cinema-api/internal/data/repository"
	"cinema-api/internal/queue"
	"cinema-api/internal/usecase"
	"cinema-api/pkg/imagestore"
	"cinema-api/pkg/middleware"
	"cinema-api/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// App holds the wired application.
type App struct {
	Router *chi.Mux
}

// Wiring initializes all dependencies
func Wiring(
	repo *repository.Repository,
	config *utils.Config,
	images imagestore.Store,
	availCache *cache.AvailabilityCache,
	publisher *queue.Publisher,
	logger *zap.Logger,
) *App {
	// Initialize services and handlers
	service := usecase.NewService(repo, config, images, availCache, publisher, logger)
	handler := adaptor.NewHandler(service, logger)

	// Setup router
	router := setupRouter(handler, repo, logger)

	return &App{
		Router: router,
	}
}

// setupRouter configures the Chi router
func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())
	r.Use(middleware.Metrics())

	// Resolve the caller once for every request. Routes decide what
	// role they require; anonymous callers pass through here.
	r.Use(middleware.Authenticate(repo.Token, repo.User, logger))

	// Apply routes
	wireAuth(r, handler.Auth, logger)
	wireCatalog(r, handler.Catalog, logger)
	wireMovie(r, handler.Movie, logger)
	wireSession(r, handler.Session, logger)
	wireOrder(r, handler.Order, logger)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Prometheus scrape endpoint
	r.Handle("/metrics", promhttp.Handler())

	return r
}
