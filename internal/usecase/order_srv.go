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
	"cinema-api/internal/queue"
	"cinema-api/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OrderService is the only component that writes orders and tickets.
// Every operation is scoped to the owning user; there is no admin
// override for reading other users' orders.
type OrderService interface {
	CreateOrder(ctx context.Context, userID uuid.UUID, req *request.CreateOrderRequest) (*response.OrderResponse, error)
	ListOrders(ctx context.Context, userID uuid.UUID, page *request.PaginatedRequest) (*response.PaginatedResponse[response.OrderResponse], error)
	GetOrder(ctx context.Context, userID uuid.UUID, orderID string) (*response.OrderResponse, error)
}

type orderService struct {
	repo      *repository.Repository
	cache     *cache.AvailabilityCache
	publisher *queue.Publisher
	log       *zap.Logger
}

func NewOrderService(repo *repository.Repository, availCache *cache.AvailabilityCache, publisher *queue.Publisher, log *zap.Logger) OrderService {
	return &orderService{
		repo:      repo,
		cache:     availCache,
		publisher: publisher,
		log:       log.With(zap.String("service", "order")),
	}
}

func (s *orderService) CreateOrder(ctx context.Context, userID uuid.UUID, req *request.CreateOrderRequest) (*response.OrderResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create order validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	if len(req.Tickets) == 0 {
		return nil, apperr.ErrEmptyOrder
	}

	// Validate every ticket request before writing anything: session
	// exists, seat within hall bounds, no collision with issued tickets
	// or with another request in this submission.
	sessions := make(map[uuid.UUID]*repository.SessionRow)
	requested := make(map[string]bool)

	for _, tr := range req.Tickets {
		sessionID, err := uuid.Parse(tr.SessionID)
		if err != nil {
			return nil, fmt.Errorf("invalid session ID format %s: %w", tr.SessionID, err)
		}

		session, ok := sessions[sessionID]
		if !ok {
			session, err = s.repo.Session.FindByID(ctx, sessionID)
			if err != nil {
				return nil, fmt.Errorf("load session %s: %w", tr.SessionID, err)
			}
			if session == nil {
				return nil, fmt.Errorf("session %s: %w", tr.SessionID, apperr.ErrNotFound)
			}
			sessions[sessionID] = session
		}

		if tr.Row < 1 || tr.Row > session.HallRows || tr.Seat < 1 || tr.Seat > session.HallSeatsInRow {
			return nil, &apperr.InvalidSeatError{
				SessionID:  sessionID,
				Row:        tr.Row,
				Seat:       tr.Seat,
				Rows:       session.HallRows,
				SeatsInRow: session.HallSeatsInRow,
			}
		}

		seatKey := fmt.Sprintf("%s/%d/%d", sessionID, tr.Row, tr.Seat)
		if requested[seatKey] {
			return nil, &apperr.SeatTakenError{SessionID: sessionID, Row: tr.Row, Seat: tr.Seat}
		}
		requested[seatKey] = true
	}

	for sessionID := range sessions {
		issued, err := s.repo.Ticket.FindBySessionID(ctx, sessionID)
		if err != nil {
			return nil, fmt.Errorf("check session %s tickets: %w", sessionID.String(), err)
		}
		for _, ticket := range issued {
			seatKey := fmt.Sprintf("%s/%d/%d", sessionID, ticket.Row, ticket.Seat)
			if requested[seatKey] {
				return nil, &apperr.SeatTakenError{SessionID: sessionID, Row: ticket.Row, Seat: ticket.Seat}
			}
		}
	}

	now := time.Now()
	order := &entity.Order{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: now},
		UserID:     userID,
	}

	tickets := make([]*entity.Ticket, len(req.Tickets))
	for i, tr := range req.Tickets {
		tickets[i] = &entity.Ticket{
			BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: now},
			OrderID:    order.ID,
			SessionID:  uuid.MustParse(tr.SessionID),
			Row:        tr.Row,
			Seat:       tr.Seat,
		}
	}

	// The pre-checks above are advisory; the unique index inside this
	// transaction is what guarantees a racing request for the same seat
	// loses with SeatTaken instead of double-selling.
	if err := s.repo.Order.CreateWithTickets(ctx, order, tickets); err != nil {
		if apperr.IsSeatTaken(err) {
			s.log.Warn("Seat lost to concurrent order",
				zap.String("user_id", userID.String()),
				zap.Error(err),
			)
			return nil, err
		}
		s.log.Error("Failed to create order",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.Int("tickets", len(tickets)),
		)
		return nil, fmt.Errorf("create order: %w", err)
	}

	sessionIDs := make([]uuid.UUID, 0, len(sessions))
	for sessionID := range sessions {
		sessionIDs = append(sessionIDs, sessionID)
	}
	s.cache.Invalidate(ctx, sessionIDs...)

	s.publisher.PublishOrderCreated(ctx, queue.OrderCreatedEvent{
		OrderID:   order.ID.String(),
		UserID:    userID.String(),
		Tickets:   len(tickets),
		CreatedAt: order.CreatedAt,
	})

	s.log.Info("Order created",
		zap.String("order_id", order.ID.String()),
		zap.String("user_id", userID.String()),
		zap.Int("tickets", len(tickets)),
	)

	return s.buildOrderResponse(order, tickets, sessions), nil
}

func (s *orderService) ListOrders(ctx context.Context, userID uuid.UUID, page *request.PaginatedRequest) (*response.PaginatedResponse[response.OrderResponse], error) {
	limit := page.Limit()
	offset := page.Offset()

	orders, err := s.repo.Order.FindByUserID(ctx, userID, limit, offset)
	if err != nil {
		s.log.Error("Failed to list orders",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("list orders for user %s: %w", userID.String(), err)
	}

	total, err := s.repo.Order.CountByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count orders for user %s: %w", userID.String(), err)
	}

	orderResponses := make([]response.OrderResponse, len(orders))
	for i, order := range orders {
		resp, err := s.loadOrderResponse(ctx, order)
		if err != nil {
			return nil, err
		}
		orderResponses[i] = *resp
	}

	s.log.Info("Orders listed",
		zap.String("user_id", userID.String()),
		zap.Int("count", len(orders)),
		zap.Int64("total", total),
	)

	return response.NewPaginatedResponse(orderResponses, page.Page, limit, total), nil
}

func (s *orderService) GetOrder(ctx context.Context, userID uuid.UUID, orderID string) (*response.OrderResponse, error) {
	id, err := uuid.Parse(orderID)
	if err != nil {
		return nil, fmt.Errorf("invalid order ID format %s: %w", orderID, err)
	}

	// Scoped lookup: an order owned by someone else is indistinguishable
	// from a missing one.
	order, err := s.repo.Order.FindByIDForUser(ctx, id, userID)
	if err != nil {
		return nil, fmt.Errorf("get order %s: %w", orderID, err)
	}
	if order == nil {
		return nil, fmt.Errorf("order %s: %w", orderID, apperr.ErrNotFound)
	}

	return s.loadOrderResponse(ctx, order)
}

func (s *orderService) loadOrderResponse(ctx context.Context, order *entity.Order) (*response.OrderResponse, error) {
	tickets, err := s.repo.Ticket.FindByOrderID(ctx, order.ID)
	if err != nil {
		return nil, fmt.Errorf("load order %s tickets: %w", order.ID.String(), err)
	}

	sessions := make(map[uuid.UUID]*repository.SessionRow)
	for _, ticket := range tickets {
		if _, ok := sessions[ticket.SessionID]; ok {
			continue
		}
		session, err := s.repo.Session.FindByID(ctx, ticket.SessionID)
		if err != nil {
			return nil, fmt.Errorf("load session %s: %w", ticket.SessionID.String(), err)
		}
		sessions[ticket.SessionID] = session
	}

	return s.buildOrderResponse(order, tickets, sessions), nil
}

func (s *orderService) buildOrderResponse(order *entity.Order, tickets []*entity.Ticket, sessions map[uuid.UUID]*repository.SessionRow) *response.OrderResponse {
	ticketResponses := make([]response.TicketResponse, len(tickets))
	for i, ticket := range tickets {
		tr := response.TicketResponse{
			ID:        ticket.ID.String(),
			SessionID: ticket.SessionID.String(),
			Row:       ticket.Row,
			Seat:      ticket.Seat,
		}
		if session := sessions[ticket.SessionID]; session != nil {
			tr.MovieTitle = session.MovieTitle
			tr.ShowTime = session.ShowTime
		}
		ticketResponses[i] = tr
	}

	return &response.OrderResponse{
		ID:        order.ID.String(),
		CreatedAt: order.CreatedAt,
		Tickets:   ticketResponses,
	}
}
