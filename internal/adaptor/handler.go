package adaptor

import (
	"errors"
	"net/http"
	"strings"

	"cinema-api/internal/apperr"
	"cinema-api/internal/usecase"
	"cinema-api/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth    *AuthHandler
	Catalog *CatalogHandler
	Movie   *MovieHandler
	Session *SessionHandler
	Order   *OrderHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:    NewAuthHandler(service.Auth, log),
		Catalog: NewCatalogHandler(service.Catalog, log),
		Movie:   NewMovieHandler(service.Movie, log),
		Session: NewSessionHandler(service.Session, log),
		Order:   NewOrderHandler(service.Order, log),
	}
}

// handleServiceError maps service errors to transport status codes.
// Domain error kinds are matched with errors.Is/As; parse and validation
// failures fall back to message inspection.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	switch {
	case apperr.IsSeatTaken(err):
		log.Warn(operation+" failed - seat taken", zap.Error(err))
		utils.ResponseConflict(w, err.Error())

	case apperr.IsInvalidSeat(err):
		log.Warn(operation+" failed - invalid seat", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.Is(err, apperr.ErrEmptyOrder):
		log.Warn(operation+" failed - empty order", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.Is(err, apperr.ErrNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, apperr.ErrUnauthorized):
		log.Warn(operation+" failed - unauthorized", zap.Error(err))
		utils.ResponseUnauthorized(w, err.Error())

	case errors.Is(err, apperr.ErrForbidden):
		log.Warn(operation+" failed - forbidden", zap.Error(err))
		utils.ResponseForbidden(w, err.Error())

	case errors.Is(err, apperr.ErrInternalConsistency):
		// Broken invariant: already logged with full context at the
		// source, report generic to the caller.
		log.Error("Consistency violation in "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")

	case strings.Contains(err.Error(), "validation failed"),
		strings.Contains(err.Error(), "invalid"),
		strings.Contains(err.Error(), "already registered"):
		log.Warn(operation+" failed - bad request", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	default:
		log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
