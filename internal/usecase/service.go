package usecase

import (
	"cinema-api/internal/cache"
	"cinema-api/internal/data/repository"
	"cinema-api/internal/queue"
	"cinema-api/pkg/imagestore"
	"cinema-api/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth    AuthService
	Catalog CatalogService
	Movie   MovieService
	Session SessionService
	Order   OrderService
}

func NewService(
	repo *repository.Repository,
	config *utils.Config,
	images imagestore.Store,
	availCache *cache.AvailabilityCache,
	publisher *queue.Publisher,
	log *zap.Logger,
) *Service {
	return &Service{
		Auth:    NewAuthService(repo, config, log),
		Catalog: NewCatalogService(repo, log),
		Movie:   NewMovieService(repo, images, log),
		Session: NewSessionService(repo, availCache, log),
		Order:   NewOrderService(repo, availCache, publisher, log),
	}
}
