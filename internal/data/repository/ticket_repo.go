package repository

import (
	"context"
	"fmt"

	"cinema-api/internal/data/entity"
	"cinema-api/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// TicketRepository is read-only: ticket rows are written exclusively by
// OrderRepository.CreateWithTickets so no path can bypass the order
// transaction.
type TicketRepository interface {
	FindBySessionID(ctx context.Context, sessionID uuid.UUID) ([]*entity.Ticket, error)
	FindByOrderID(ctx context.Context, orderID uuid.UUID) ([]*entity.Ticket, error)
	CountBySessionID(ctx context.Context, sessionID uuid.UUID) (int, error)
}

type ticketRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewTicketRepository(db database.PgxIface, log *zap.Logger) TicketRepository {
	return &ticketRepository{
		db:  db,
		log: log.With(zap.String("repository", "ticket")),
	}
}

func (r *ticketRepository) FindBySessionID(ctx context.Context, sessionID uuid.UUID) ([]*entity.Ticket, error) {
	query := `
		SELECT id, order_id, session_id, seat_row, seat_num, created_at
		FROM tickets
		WHERE session_id = $1
		ORDER BY seat_row, seat_num
	`

	rows, err := r.db.Query(ctx, query, sessionID)
	if err != nil {
		r.log.Error("Failed to find tickets by session ID",
			zap.Error(err),
			zap.String("session_id", sessionID.String()),
		)
		return nil, fmt.Errorf("find tickets by session ID %s: %w", sessionID.String(), err)
	}
	defer rows.Close()

	return scanTickets(rows)
}

func (r *ticketRepository) FindByOrderID(ctx context.Context, orderID uuid.UUID) ([]*entity.Ticket, error) {
	query := `
		SELECT id, order_id, session_id, seat_row, seat_num, created_at
		FROM tickets
		WHERE order_id = $1
		ORDER BY created_at, seat_row, seat_num
	`

	rows, err := r.db.Query(ctx, query, orderID)
	if err != nil {
		r.log.Error("Failed to find tickets by order ID",
			zap.Error(err),
			zap.String("order_id", orderID.String()),
		)
		return nil, fmt.Errorf("find tickets by order ID %s: %w", orderID.String(), err)
	}
	defer rows.Close()

	return scanTickets(rows)
}

func (r *ticketRepository) CountBySessionID(ctx context.Context, sessionID uuid.UUID) (int, error) {
	query := `SELECT COUNT(*) FROM tickets WHERE session_id = $1`

	var count int
	if err := r.db.QueryRow(ctx, query, sessionID).Scan(&count); err != nil {
		r.log.Error("Failed to count tickets by session ID",
			zap.Error(err),
			zap.String("session_id", sessionID.String()),
		)
		return 0, fmt.Errorf("count tickets by session ID %s: %w", sessionID.String(), err)
	}

	return count, nil
}

func scanTickets(rows pgx.Rows) ([]*entity.Ticket, error) {
	var tickets []*entity.Ticket
	for rows.Next() {
		var ticket entity.Ticket
		err := rows.Scan(
			&ticket.ID,
			&ticket.OrderID,
			&ticket.SessionID,
			&ticket.Row,
			&ticket.Seat,
			&ticket.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan ticket row: %w", err)
		}
		tickets = append(tickets, &ticket)
	}

	return tickets, nil
}
