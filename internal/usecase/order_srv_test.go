package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"cinema-api/internal/apperr"
	"cinema-api/internal/data/entity"
	"cinema-api/internal/data/repository"
	"cinema-api/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeSessionRepo serves sessions from a map.
type fakeSessionRepo struct {
	repository.SessionRepository
	sessions map[uuid.UUID]*repository.SessionRow
}

func (f *fakeSessionRepo) FindByID(_ context.Context, id uuid.UUID) (*repository.SessionRow, error) {
	return f.sessions[id], nil
}

// fakeTicketRepo serves issued tickets grouped by session.
type fakeTicketRepo struct {
	repository.TicketRepository
	bySession map[uuid.UUID][]*entity.Ticket
	byOrder   map[uuid.UUID][]*entity.Ticket
}

func (f *fakeTicketRepo) FindBySessionID(_ context.Context, sessionID uuid.UUID) ([]*entity.Ticket, error) {
	return f.bySession[sessionID], nil
}

func (f *fakeTicketRepo) FindByOrderID(_ context.Context, orderID uuid.UUID) ([]*entity.Ticket, error) {
	return f.byOrder[orderID], nil
}

// fakeOrderRepo copies the semantics of the real transaction: either the
// order and all its tickets land, or nothing does. The seat set plays the
// role of the unique index.
type fakeOrderRepo struct {
	repository.OrderRepository
	mu         sync.Mutex
	orders     []*entity.Order
	tickets    []*entity.Ticket
	takenSeats map[string]bool
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{takenSeats: make(map[string]bool)}
}

func (f *fakeOrderRepo) CreateWithTickets(_ context.Context, order *entity.Order, tickets []*entity.Ticket) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, ticket := range tickets {
		key := fmt.Sprintf("%s/%d/%d", ticket.SessionID, ticket.Row, ticket.Seat)
		if f.takenSeats[key] {
			return &apperr.SeatTakenError{SessionID: ticket.SessionID, Row: ticket.Row, Seat: ticket.Seat}
		}
	}
	for _, ticket := range tickets {
		f.takenSeats[fmt.Sprintf("%s/%d/%d", ticket.SessionID, ticket.Row, ticket.Seat)] = true
	}
	f.orders = append(f.orders, order)
	f.tickets = append(f.tickets, tickets...)
	return nil
}

func (f *fakeOrderRepo) FindByUserID(_ context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Order, error) {
	var owned []*entity.Order
	for _, order := range f.orders {
		if order.UserID == userID {
			owned = append(owned, order)
		}
	}
	if offset >= len(owned) {
		return nil, nil
	}
	owned = owned[offset:]
	if len(owned) > limit {
		owned = owned[:limit]
	}
	return owned, nil
}

func (f *fakeOrderRepo) CountByUserID(_ context.Context, userID uuid.UUID) (int64, error) {
	var n int64
	for _, order := range f.orders {
		if order.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (f *fakeOrderRepo) FindByIDForUser(_ context.Context, id, userID uuid.UUID) (*entity.Order, error) {
	for _, order := range f.orders {
		if order.ID == id && order.UserID == userID {
			return order, nil
		}
	}
	return nil, nil
}

func testSessionRow(rows, seatsInRow int) *repository.SessionRow {
	return &repository.SessionRow{
		MovieSession: entity.MovieSession{
			Base: entity.Base{ID: uuid.New(), CreatedAt: time.Now(), UpdatedAt: time.Now()},
		},
		MovieTitle:     "Stalker",
		HallName:       "Blue",
		HallRows:       rows,
		HallSeatsInRow: seatsInRow,
	}
}

type orderFixture struct {
	service  OrderService
	orders   *fakeOrderRepo
	tickets  *fakeTicketRepo
	sessions *fakeSessionRepo
}

func newOrderFixture(rows ...*repository.SessionRow) *orderFixture {
	sessions := &fakeSessionRepo{sessions: make(map[uuid.UUID]*repository.SessionRow)}
	for _, row := range rows {
		sessions.sessions[row.ID] = row
	}

	tickets := &fakeTicketRepo{
		bySession: make(map[uuid.UUID][]*entity.Ticket),
		byOrder:   make(map[uuid.UUID][]*entity.Ticket),
	}
	orders := newFakeOrderRepo()

	repo := &repository.Repository{
		Session: sessions,
		Ticket:  tickets,
		Order:   orders,
	}

	return &orderFixture{
		service:  NewOrderService(repo, nil, nil, zap.NewNop()),
		orders:   orders,
		tickets:  tickets,
		sessions: sessions,
	}
}

// issue marks a seat as already sold, both in the ticket listing and in
// the order repo's seat set.
func (f *orderFixture) issue(sessionID uuid.UUID, row, seat int) {
	ticket := &entity.Ticket{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
		SessionID:  sessionID,
		Row:        row,
		Seat:       seat,
	}
	f.tickets.bySession[sessionID] = append(f.tickets.bySession[sessionID], ticket)
	f.orders.takenSeats[fmt.Sprintf("%s/%d/%d", sessionID, row, seat)] = true
}

func TestCreateOrder(t *testing.T) {
	session := testSessionRow(5, 8)
	fx := newOrderFixture(session)
	userID := uuid.New()

	resp, err := fx.service.CreateOrder(context.Background(), userID, &request.CreateOrderRequest{
		Tickets: []request.TicketRequest{
			{SessionID: session.ID.String(), Row: 1, Seat: 1},
			{SessionID: session.ID.String(), Row: 1, Seat: 2},
		},
	})

	require.NoError(t, err)
	require.Len(t, resp.Tickets, 2)
	assert.Equal(t, "Stalker", resp.Tickets[0].MovieTitle)
	assert.Equal(t, 1, resp.Tickets[0].Row)
	assert.Equal(t, 2, resp.Tickets[1].Seat)

	require.Len(t, fx.orders.orders, 1)
	assert.Equal(t, userID, fx.orders.orders[0].UserID)
	assert.Len(t, fx.orders.tickets, 2)
}

func TestCreateOrderEmpty(t *testing.T) {
	fx := newOrderFixture()

	_, err := fx.service.CreateOrder(context.Background(), uuid.New(), &request.CreateOrderRequest{})

	assert.ErrorIs(t, err, apperr.ErrEmptyOrder)
	assert.Empty(t, fx.orders.orders)
}

func TestCreateOrderSessionNotFound(t *testing.T) {
	fx := newOrderFixture()

	_, err := fx.service.CreateOrder(context.Background(), uuid.New(), &request.CreateOrderRequest{
		Tickets: []request.TicketRequest{
			{SessionID: uuid.New().String(), Row: 1, Seat: 1},
		},
	})

	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.Empty(t, fx.orders.orders)
}

func TestCreateOrderSeatOutOfBounds(t *testing.T) {
	session := testSessionRow(5, 8)
	fx := newOrderFixture(session)

	tests := []struct {
		name string
		row  int
		seat int
	}{
		{name: "row too high", row: 6, seat: 1},
		{name: "seat too high", row: 1, seat: 9},
		{name: "row zero", row: 0, seat: 1},
		{name: "seat negative", row: 1, seat: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fx.service.CreateOrder(context.Background(), uuid.New(), &request.CreateOrderRequest{
				Tickets: []request.TicketRequest{
					{SessionID: session.ID.String(), Row: tt.row, Seat: tt.seat},
				},
			})

			require.Error(t, err)
			assert.True(t, apperr.IsInvalidSeat(err))

			var invalidSeat *apperr.InvalidSeatError
			require.True(t, errors.As(err, &invalidSeat))
			assert.Equal(t, tt.row, invalidSeat.Row)
			assert.Equal(t, tt.seat, invalidSeat.Seat)
		})
	}

	assert.Empty(t, fx.orders.orders)
}

func TestCreateOrderSeatAlreadySold(t *testing.T) {
	session := testSessionRow(5, 8)
	fx := newOrderFixture(session)
	fx.issue(session.ID, 2, 3)

	_, err := fx.service.CreateOrder(context.Background(), uuid.New(), &request.CreateOrderRequest{
		Tickets: []request.TicketRequest{
			{SessionID: session.ID.String(), Row: 2, Seat: 3},
		},
	})

	require.Error(t, err)
	assert.True(t, apperr.IsSeatTaken(err))
	assert.Empty(t, fx.orders.orders)
}

func TestCreateOrderDuplicateSeatInRequest(t *testing.T) {
	session := testSessionRow(5, 8)
	fx := newOrderFixture(session)

	_, err := fx.service.CreateOrder(context.Background(), uuid.New(), &request.CreateOrderRequest{
		Tickets: []request.TicketRequest{
			{SessionID: session.ID.String(), Row: 1, Seat: 1},
			{SessionID: session.ID.String(), Row: 1, Seat: 1},
		},
	})

	require.Error(t, err)
	assert.True(t, apperr.IsSeatTaken(err))
	assert.Empty(t, fx.orders.orders)
}

// A seat claimed between the service's read and the insert is reported as
// taken and the whole order is discarded.
func TestCreateOrderLosesRace(t *testing.T) {
	session := testSessionRow(5, 8)
	fx := newOrderFixture(session)

	// Seat is free according to the ticket listing but the insert
	// collides, as it would when a concurrent order commits first.
	fx.orders.takenSeats[fmt.Sprintf("%s/%d/%d", session.ID, 4, 4)] = true

	_, err := fx.service.CreateOrder(context.Background(), uuid.New(), &request.CreateOrderRequest{
		Tickets: []request.TicketRequest{
			{SessionID: session.ID.String(), Row: 1, Seat: 1},
			{SessionID: session.ID.String(), Row: 4, Seat: 4},
		},
	})

	require.Error(t, err)
	assert.True(t, apperr.IsSeatTaken(err))

	// Nothing persisted, including the seat that was free.
	assert.Empty(t, fx.orders.orders)
	assert.Empty(t, fx.orders.tickets)
}

func TestCreateOrderConcurrentSameSeat(t *testing.T) {
	session := testSessionRow(5, 8)
	fx := newOrderFixture(session)

	const callers = 8
	var wg sync.WaitGroup
	var succeeded, taken atomic.Int32

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := fx.service.CreateOrder(context.Background(), uuid.New(), &request.CreateOrderRequest{
				Tickets: []request.TicketRequest{
					{SessionID: session.ID.String(), Row: 1, Seat: 1},
				},
			})
			switch {
			case err == nil:
				succeeded.Add(1)
			case apperr.IsSeatTaken(err):
				taken.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), succeeded.Load())
	assert.Equal(t, int32(callers-1), taken.Load())
	assert.Len(t, fx.orders.tickets, 1)
}

func TestCreateOrderPartialFailureWritesNothing(t *testing.T) {
	session := testSessionRow(5, 8)
	fx := newOrderFixture(session)
	fx.issue(session.ID, 3, 3)

	_, err := fx.service.CreateOrder(context.Background(), uuid.New(), &request.CreateOrderRequest{
		Tickets: []request.TicketRequest{
			{SessionID: session.ID.String(), Row: 1, Seat: 1},
			{SessionID: session.ID.String(), Row: 3, Seat: 3},
		},
	})

	require.Error(t, err)
	assert.Empty(t, fx.orders.orders)
	assert.Empty(t, fx.orders.tickets)
	assert.False(t, fx.orders.takenSeats[fmt.Sprintf("%s/%d/%d", session.ID, 1, 1)])
}

func TestListOrdersScopedToUser(t *testing.T) {
	session := testSessionRow(5, 8)
	fx := newOrderFixture(session)
	alice := uuid.New()
	bob := uuid.New()

	_, err := fx.service.CreateOrder(context.Background(), alice, &request.CreateOrderRequest{
		Tickets: []request.TicketRequest{{SessionID: session.ID.String(), Row: 1, Seat: 1}},
	})
	require.NoError(t, err)

	_, err = fx.service.CreateOrder(context.Background(), bob, &request.CreateOrderRequest{
		Tickets: []request.TicketRequest{{SessionID: session.ID.String(), Row: 1, Seat: 2}},
	})
	require.NoError(t, err)

	page := &request.PaginatedRequest{Page: 1, PerPage: 10}

	resp, err := fx.service.ListOrders(context.Background(), alice, page)
	require.NoError(t, err)
	assert.Len(t, resp.Data, 1)
	assert.Equal(t, int64(1), resp.Pagination.Total)

	resp, err = fx.service.ListOrders(context.Background(), uuid.New(), page)
	require.NoError(t, err)
	assert.Empty(t, resp.Data)
	assert.Equal(t, int64(0), resp.Pagination.Total)
}

func TestListOrdersReportsClampedPageSize(t *testing.T) {
	session := testSessionRow(5, 8)
	fx := newOrderFixture(session)
	userID := uuid.New()

	_, err := fx.service.CreateOrder(context.Background(), userID, &request.CreateOrderRequest{
		Tickets: []request.TicketRequest{{SessionID: session.ID.String(), Row: 1, Seat: 1}},
	})
	require.NoError(t, err)

	resp, err := fx.service.ListOrders(context.Background(), userID, &request.PaginatedRequest{
		Page:    1,
		PerPage: 500,
	})
	require.NoError(t, err)

	// The meta reflects the page size actually applied, not the request.
	assert.Equal(t, 100, resp.Pagination.PerPage)
	assert.Equal(t, 1, resp.Pagination.TotalPages)
}

func TestGetOrderOwnership(t *testing.T) {
	session := testSessionRow(5, 8)
	fx := newOrderFixture(session)
	alice := uuid.New()
	bob := uuid.New()

	created, err := fx.service.CreateOrder(context.Background(), alice, &request.CreateOrderRequest{
		Tickets: []request.TicketRequest{{SessionID: session.ID.String(), Row: 1, Seat: 1}},
	})
	require.NoError(t, err)

	// Owner sees the order.
	got, err := fx.service.GetOrder(context.Background(), alice, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	// Anyone else gets not found, not forbidden.
	_, err = fx.service.GetOrder(context.Background(), bob, created.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestGetOrderBadID(t *testing.T) {
	fx := newOrderFixture()

	_, err := fx.service.GetOrder(context.Background(), uuid.New(), "not-a-uuid")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid order ID")
}
