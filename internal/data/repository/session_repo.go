package repository

import (
	"context"
	"fmt"
	"time"

	"cinema-api/internal/data/entity"
	"cinema-api/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// SessionFilter narrows a session listing. Both fields are optional and
// combine with AND.
type SessionFilter struct {
	// Date matches sessions whose show_time falls on this calendar date,
	// ignoring time of day.
	Date *time.Time
	// MovieID matches sessions of exactly this movie.
	MovieID *uuid.UUID
}

// WhereClause builds the SQL predicate for the filter. Pure function so
// the composition logic is testable without a database.
func (f SessionFilter) WhereClause() (string, []any) {
	clause := ""
	var args []any

	if f.Date != nil {
		args = append(args, f.Date.Format("2006-01-02"))
		clause += fmt.Sprintf(" AND s.show_time::date = $%d", len(args))
	}

	if f.MovieID != nil {
		args = append(args, *f.MovieID)
		clause += fmt.Sprintf(" AND s.movie_id = $%d", len(args))
	}

	return clause, args
}

// SessionRow is a session joined with its movie, hall geometry and the
// count of tickets already issued for it.
type SessionRow struct {
	entity.MovieSession
	MovieTitle     string
	HallName       string
	HallRows       int
	HallSeatsInRow int
	TicketCount    int
}

type SessionRepository interface {
	Create(ctx context.Context, session *entity.MovieSession) error
	FindByID(ctx context.Context, id uuid.UUID) (*SessionRow, error)
	FindAll(ctx context.Context, filter SessionFilter) ([]*SessionRow, error)
	Update(ctx context.Context, session *entity.MovieSession) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type sessionRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewSessionRepository(db database.PgxIface, log *zap.Logger) SessionRepository {
	return &sessionRepository{
		db:  db,
		log: log.With(zap.String("repository", "session")),
	}
}

const sessionRowSelect = `
	SELECT s.id, s.movie_id, s.hall_id, s.show_time, s.created_at, s.updated_at,
	       m.title, h.name, h.rows, h.seats_in_row, COUNT(t.id)
	FROM movie_sessions s
	JOIN movies m ON m.id = s.movie_id
	JOIN cinema_halls h ON h.id = s.hall_id
	LEFT JOIN tickets t ON t.session_id = s.id
	WHERE 1=1%s
	GROUP BY s.id, s.movie_id, s.hall_id, s.show_time, s.created_at, s.updated_at,
	         m.title, h.name, h.rows, h.seats_in_row
`

func (r *sessionRepository) Create(ctx context.Context, session *entity.MovieSession) error {
	query := `
		INSERT INTO movie_sessions (id, movie_id, hall_id, show_time, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		session.ID,
		session.MovieID,
		session.HallID,
		session.ShowTime,
		session.CreatedAt,
		session.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create session",
			zap.Error(err),
			zap.String("movie_id", session.MovieID.String()),
			zap.String("hall_id", session.HallID.String()),
			zap.Time("show_time", session.ShowTime),
		)
		return fmt.Errorf("create session for movie %s hall %s: %w",
			session.MovieID.String(), session.HallID.String(), err)
	}

	return nil
}

func (r *sessionRepository) FindByID(ctx context.Context, id uuid.UUID) (*SessionRow, error) {
	query := fmt.Sprintf(sessionRowSelect, " AND s.id = $1")

	var row SessionRow
	err := r.db.QueryRow(ctx, query, id).Scan(
		&row.ID,
		&row.MovieID,
		&row.HallID,
		&row.ShowTime,
		&row.CreatedAt,
		&row.UpdatedAt,
		&row.MovieTitle,
		&row.HallName,
		&row.HallRows,
		&row.HallSeatsInRow,
		&row.TicketCount,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find session by ID",
			zap.Error(err),
			zap.String("session_id", id.String()),
		)
		return nil, fmt.Errorf("find session by ID %s: %w", id.String(), err)
	}

	return &row, nil
}

func (r *sessionRepository) FindAll(ctx context.Context, filter SessionFilter) ([]*SessionRow, error) {
	clause, args := filter.WhereClause()
	query := fmt.Sprintf(sessionRowSelect, clause) + " ORDER BY s.show_time"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to find sessions", zap.Error(err))
		return nil, fmt.Errorf("find sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*SessionRow
	for rows.Next() {
		var row SessionRow
		err := rows.Scan(
			&row.ID,
			&row.MovieID,
			&row.HallID,
			&row.ShowTime,
			&row.CreatedAt,
			&row.UpdatedAt,
			&row.MovieTitle,
			&row.HallName,
			&row.HallRows,
			&row.HallSeatsInRow,
			&row.TicketCount,
		)
		if err != nil {
			r.log.Error("Failed to scan session row", zap.Error(err))
			return nil, fmt.Errorf("scan session row: %w", err)
		}
		sessions = append(sessions, &row)
	}

	return sessions, nil
}

func (r *sessionRepository) Update(ctx context.Context, session *entity.MovieSession) error {
	query := `
		UPDATE movie_sessions
		SET movie_id = $2, hall_id = $3, show_time = $4, updated_at = $5
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		session.ID,
		session.MovieID,
		session.HallID,
		session.ShowTime,
		session.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update session",
			zap.Error(err),
			zap.String("session_id", session.ID.String()),
		)
		return fmt.Errorf("update session %s: %w", session.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("session %s not found", session.ID.String())
	}

	return nil
}

func (r *sessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM movie_sessions WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete session",
			zap.Error(err),
			zap.String("session_id", id.String()),
		)
		return fmt.Errorf("delete session %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("session %s not found", id.String())
	}

	r.log.Info("Session deleted", zap.String("session_id", id.String()))
	return nil
}
