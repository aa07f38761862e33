package usecase

import (
	"context"
	"fmt"
	"time"

	"cinema-api/internal/apperr"
	"cinema-api/internal/cache"
	"cinema-api/internal/data/entity"
	"cinema-api/internal/data/repository"
	"cinema-api/internal/dto/request"
	"cinema-api/internal/dto/response"
	"cinema-api/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type SessionService interface {
	// ListSessions returns summaries matching the filter, enriched with
	// availability. No matches is an empty slice, never an error.
	ListSessions(ctx context.Context, filter *request.SessionListFilter) ([]response.SessionSummary, error)
	GetSession(ctx context.Context, sessionID string) (*response.SessionDetail, error)

	// Admin operations.
	CreateSession(ctx context.Context, req *request.SessionRequest) (*response.SessionSummary, error)
	UpdateSession(ctx context.Context, sessionID string, req *request.SessionRequest) (*response.SessionSummary, error)
	DeleteSession(ctx context.Context, sessionID string) error
}

type sessionService struct {
	repo  *repository.Repository
	cache *cache.AvailabilityCache
	log   *zap.Logger
}

func NewSessionService(repo *repository.Repository, availCache *cache.AvailabilityCache, log *zap.Logger) SessionService {
	return &sessionService{
		repo:  repo,
		cache: availCache,
		log:   log.With(zap.String("service", "session")),
	}
}

func (s *sessionService) ListSessions(ctx context.Context, filter *request.SessionListFilter) ([]response.SessionSummary, error) {
	if errs := utils.ValidateStruct(filter); len(errs) > 0 {
		s.log.Warn("List sessions validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	repoFilter, err := buildSessionFilter(filter)
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.Session.FindAll(ctx, repoFilter)
	if err != nil {
		s.log.Error("Failed to list sessions", zap.Error(err))
		return nil, fmt.Errorf("list sessions: %w", err)
	}

	summaries := make([]response.SessionSummary, 0, len(rows))
	for _, row := range rows {
		summary, err := s.buildSummary(ctx, row)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}

	s.log.Info("Sessions listed",
		zap.Int("count", len(summaries)),
		zap.String("date", filter.Date),
		zap.String("movie", filter.MovieID),
	)

	return summaries, nil
}

func (s *sessionService) GetSession(ctx context.Context, sessionID string) (*response.SessionDetail, error) {
	id, err := uuid.Parse(sessionID)
	if err != nil {
		return nil, fmt.Errorf("invalid session ID format %s: %w", sessionID, err)
	}

	row, err := s.repo.Session.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to get session",
			zap.Error(err),
			zap.String("session_id", sessionID),
		)
		return nil, fmt.Errorf("get session %s: %w", sessionID, err)
	}
	if row == nil {
		return nil, fmt.Errorf("session %s: %w", sessionID, apperr.ErrNotFound)
	}

	// The detail view reads the ticket list anyway, so availability comes
	// straight from the row rather than the cache. That keeps the count and
	// the taken seats consistent with a single read.
	available, err := s.availability(row)
	if err != nil {
		return nil, err
	}

	tickets, err := s.repo.Ticket.FindBySessionID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get session %s tickets: %w", sessionID, err)
	}

	taken := make([]response.SeatRef, len(tickets))
	for i, ticket := range tickets {
		taken[i] = response.SeatRef{Row: ticket.Row, Seat: ticket.Seat}
	}

	return &response.SessionDetail{
		SessionSummary: newSummary(row, available),
		HallRows:       row.HallRows,
		HallSeatsInRow: row.HallSeatsInRow,
		TakenSeats:     taken,
	}, nil
}

func (s *sessionService) CreateSession(ctx context.Context, req *request.SessionRequest) (*response.SessionSummary, error) {
	session, err := s.sessionFromRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	session.ID = uuid.New()
	session.CreatedAt = now
	session.UpdatedAt = now

	if err := s.repo.Session.Create(ctx, session); err != nil {
		s.log.Error("Failed to create session", zap.Error(err))
		return nil, fmt.Errorf("create session: %w", err)
	}

	s.log.Info("Session created",
		zap.String("session_id", session.ID.String()),
		zap.String("movie_id", session.MovieID.String()),
		zap.String("hall_id", session.HallID.String()),
		zap.Time("show_time", session.ShowTime),
	)

	return s.summaryByID(ctx, session.ID)
}

func (s *sessionService) UpdateSession(ctx context.Context, sessionID string, req *request.SessionRequest) (*response.SessionSummary, error) {
	id, err := uuid.Parse(sessionID)
	if err != nil {
		return nil, fmt.Errorf("invalid session ID format %s: %w", sessionID, err)
	}

	existing, err := s.repo.Session.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("update session %s: %w", sessionID, err)
	}
	if existing == nil {
		return nil, fmt.Errorf("session %s: %w", sessionID, apperr.ErrNotFound)
	}

	session, err := s.sessionFromRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	session.ID = id
	session.UpdatedAt = time.Now()

	if err := s.repo.Session.Update(ctx, session); err != nil {
		s.log.Error("Failed to update session",
			zap.Error(err),
			zap.String("session_id", sessionID),
		)
		return nil, fmt.Errorf("update session %s: %w", sessionID, err)
	}

	s.cache.Invalidate(ctx, id)

	return s.summaryByID(ctx, id)
}

func (s *sessionService) DeleteSession(ctx context.Context, sessionID string) error {
	id, err := uuid.Parse(sessionID)
	if err != nil {
		return fmt.Errorf("invalid session ID format %s: %w", sessionID, err)
	}

	existing, err := s.repo.Session.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("delete session %s: %w", sessionID, err)
	}
	if existing == nil {
		return fmt.Errorf("session %s: %w", sessionID, apperr.ErrNotFound)
	}

	if err := s.repo.Session.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete session %s: %w", sessionID, err)
	}

	s.cache.Invalidate(ctx, id)
	return nil
}

// buildSummary computes availability for one session row, preferring the
// cache and writing it back on a miss.
func (s *sessionService) buildSummary(ctx context.Context, row *repository.SessionRow) (response.SessionSummary, error) {
	available, cached := s.cache.Get(ctx, row.ID)
	if !cached {
		var err error
		available, err = s.availability(row)
		if err != nil {
			return response.SessionSummary{}, err
		}
		s.cache.Set(ctx, row.ID, available)
	}

	return newSummary(row, available), nil
}

// availability derives tickets-available from the row itself. An oversold
// session is logged with full context and surfaced as an internal error.
func (s *sessionService) availability(row *repository.SessionRow) (int, error) {
	available, err := TicketsAvailable(row.HallRows, row.HallSeatsInRow, row.TicketCount)
	if err != nil {
		s.log.Error("Session availability invariant violated",
			zap.Error(err),
			zap.String("session_id", row.ID.String()),
			zap.Int("hall_rows", row.HallRows),
			zap.Int("hall_seats_in_row", row.HallSeatsInRow),
			zap.Int("ticket_count", row.TicketCount),
		)
		return 0, err
	}
	return available, nil
}

func newSummary(row *repository.SessionRow, available int) response.SessionSummary {
	return response.SessionSummary{
		ID:               row.ID.String(),
		MovieID:          row.MovieID.String(),
		MovieTitle:       row.MovieTitle,
		HallID:           row.HallID.String(),
		HallName:         row.HallName,
		HallCapacity:     row.HallRows * row.HallSeatsInRow,
		ShowTime:         row.ShowTime,
		TicketsAvailable: available,
	}
}

func (s *sessionService) summaryByID(ctx context.Context, id uuid.UUID) (*response.SessionSummary, error) {
	row, err := s.repo.Session.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("reload session %s: %w", id.String(), err)
	}
	if row == nil {
		return nil, fmt.Errorf("reload session %s: %w", id.String(), apperr.ErrNotFound)
	}

	summary, err := s.buildSummary(ctx, row)
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

func (s *sessionService) sessionFromRequest(ctx context.Context, req *request.SessionRequest) (*entity.MovieSession, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Session validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	movieID, err := uuid.Parse(req.MovieID)
	if err != nil {
		return nil, fmt.Errorf("invalid movie ID format %s: %w", req.MovieID, err)
	}

	hallID, err := uuid.Parse(req.HallID)
	if err != nil {
		return nil, fmt.Errorf("invalid hall ID format %s: %w", req.HallID, err)
	}

	showTime, err := time.Parse(time.RFC3339, req.ShowTime)
	if err != nil {
		return nil, fmt.Errorf("invalid show time %s, want RFC 3339: %w", req.ShowTime, err)
	}

	movie, err := s.repo.Movie.FindByID(ctx, movieID)
	if err != nil {
		return nil, fmt.Errorf("load movie %s: %w", req.MovieID, err)
	}
	if movie == nil {
		return nil, fmt.Errorf("movie %s: %w", req.MovieID, apperr.ErrNotFound)
	}

	hall, err := s.repo.Hall.FindByID(ctx, hallID)
	if err != nil {
		return nil, fmt.Errorf("load hall %s: %w", req.HallID, err)
	}
	if hall == nil {
		return nil, fmt.Errorf("hall %s: %w", req.HallID, apperr.ErrNotFound)
	}

	return &entity.MovieSession{
		MovieID:  movieID,
		HallID:   hallID,
		ShowTime: showTime,
	}, nil
}

// buildSessionFilter turns query parameters into the repository filter.
func buildSessionFilter(filter *request.SessionListFilter) (repository.SessionFilter, error) {
	var repoFilter repository.SessionFilter

	if filter.Date != "" {
		date, err := time.Parse("2006-01-02", filter.Date)
		if err != nil {
			return repoFilter, fmt.Errorf("invalid date %s, want YYYY-MM-DD: %w", filter.Date, err)
		}
		repoFilter.Date = &date
	}

	if filter.MovieID != "" {
		movieID, err := uuid.Parse(filter.MovieID)
		if err != nil {
			return repoFilter, fmt.Errorf("invalid movie ID format %s: %w", filter.MovieID, err)
		}
		repoFilter.MovieID = &movieID
	}

	return repoFilter, nil
}
