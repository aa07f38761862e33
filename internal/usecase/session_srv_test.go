package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"cinema-api/internal/apperr"
	"cinema-api/internal/cache"
	"cinema-api/internal/data/entity"
	"cinema-api/internal/data/repository"
	"cinema-api/internal/dto/request"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// listSessionRepo records the filter it was called with and returns a
// fixed result set.
type listSessionRepo struct {
	repository.SessionRepository
	rows      []*repository.SessionRow
	gotFilter repository.SessionFilter
	byID      map[uuid.UUID]*repository.SessionRow
}

func (f *listSessionRepo) FindAll(_ context.Context, filter repository.SessionFilter) ([]*repository.SessionRow, error) {
	f.gotFilter = filter
	return f.rows, nil
}

func (f *listSessionRepo) FindByID(_ context.Context, id uuid.UUID) (*repository.SessionRow, error) {
	return f.byID[id], nil
}

func newSessionFixture(rows ...*repository.SessionRow) (SessionService, *listSessionRepo, *fakeTicketRepo) {
	sessions := &listSessionRepo{
		rows: rows,
		byID: make(map[uuid.UUID]*repository.SessionRow),
	}
	for _, row := range rows {
		sessions.byID[row.ID] = row
	}
	tickets := &fakeTicketRepo{
		bySession: make(map[uuid.UUID][]*entity.Ticket),
		byOrder:   make(map[uuid.UUID][]*entity.Ticket),
	}
	repo := &repository.Repository{Session: sessions, Ticket: tickets}
	return NewSessionService(repo, nil, zap.NewNop()), sessions, tickets
}

func TestListSessionsAvailability(t *testing.T) {
	empty := testSessionRow(5, 8)
	selling := testSessionRow(10, 10)
	selling.TicketCount = 37

	service, _, _ := newSessionFixture(empty, selling)

	summaries, err := service.ListSessions(context.Background(), &request.SessionListFilter{})
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	assert.Equal(t, 40, summaries[0].TicketsAvailable)
	assert.Equal(t, 40, summaries[0].HallCapacity)
	assert.Equal(t, 63, summaries[1].TicketsAvailable)
}

func TestListSessionsEmptyResult(t *testing.T) {
	service, _, _ := newSessionFixture()

	summaries, err := service.ListSessions(context.Background(), &request.SessionListFilter{})

	require.NoError(t, err)
	assert.NotNil(t, summaries)
	assert.Empty(t, summaries)
}

func TestListSessionsFilterPassthrough(t *testing.T) {
	movieID := uuid.New()
	service, sessions, _ := newSessionFixture()

	_, err := service.ListSessions(context.Background(), &request.SessionListFilter{
		Date:    "2026-01-15",
		MovieID: movieID.String(),
	})
	require.NoError(t, err)

	require.NotNil(t, sessions.gotFilter.Date)
	assert.Equal(t, "2026-01-15", sessions.gotFilter.Date.Format("2006-01-02"))
	require.NotNil(t, sessions.gotFilter.MovieID)
	assert.Equal(t, movieID, *sessions.gotFilter.MovieID)
}

func TestListSessionsRejectsBadFilter(t *testing.T) {
	service, _, _ := newSessionFixture()

	_, err := service.ListSessions(context.Background(), &request.SessionListFilter{Date: "15/01/2026"})
	assert.Error(t, err)

	_, err = service.ListSessions(context.Background(), &request.SessionListFilter{MovieID: "not-a-uuid"})
	assert.Error(t, err)
}

func TestListSessionsOversold(t *testing.T) {
	broken := testSessionRow(2, 2)
	broken.TicketCount = 5

	service, _, _ := newSessionFixture(broken)

	_, err := service.ListSessions(context.Background(), &request.SessionListFilter{})

	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrInternalConsistency)
}

func TestGetSessionDetail(t *testing.T) {
	row := testSessionRow(5, 8)
	row.TicketCount = 2
	row.ShowTime = time.Date(2026, 1, 15, 19, 30, 0, 0, time.UTC)

	service, _, tickets := newSessionFixture(row)
	tickets.bySession[row.ID] = []*entity.Ticket{
		{SessionID: row.ID, Row: 1, Seat: 1},
		{SessionID: row.ID, Row: 2, Seat: 5},
	}

	detail, err := service.GetSession(context.Background(), row.ID.String())
	require.NoError(t, err)

	assert.Equal(t, 38, detail.TicketsAvailable)
	assert.Equal(t, 5, detail.HallRows)
	assert.Equal(t, 8, detail.HallSeatsInRow)
	require.Len(t, detail.TakenSeats, 2)
	assert.Equal(t, 1, detail.TakenSeats[0].Row)
	assert.Equal(t, 5, detail.TakenSeats[1].Seat)
}

func TestGetSessionDetailBypassesCache(t *testing.T) {
	row := testSessionRow(5, 8)
	row.TicketCount = 2

	client, mock := redismock.NewClientMock()
	mock.ExpectGet(fmt.Sprintf("session:%s:available", row.ID)).SetVal("99")

	sessions := &listSessionRepo{
		rows: []*repository.SessionRow{row},
		byID: map[uuid.UUID]*repository.SessionRow{row.ID: row},
	}
	tickets := &fakeTicketRepo{
		bySession: map[uuid.UUID][]*entity.Ticket{
			row.ID: {
				{SessionID: row.ID, Row: 1, Seat: 1},
				{SessionID: row.ID, Row: 2, Seat: 5},
			},
		},
		byOrder: make(map[uuid.UUID][]*entity.Ticket),
	}
	repo := &repository.Repository{Session: sessions, Ticket: tickets}
	service := NewSessionService(repo, cache.NewAvailabilityCache(client, zap.NewNop()), zap.NewNop())

	// The listing serves the stale cached count.
	summaries, err := service.ListSessions(context.Background(), &request.SessionListFilter{})
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, 99, summaries[0].TicketsAvailable)

	// The detail recomputes from the row, so the count matches the two
	// taken seats it returns.
	detail, err := service.GetSession(context.Background(), row.ID.String())
	require.NoError(t, err)
	assert.Equal(t, 38, detail.TicketsAvailable)
	assert.Len(t, detail.TakenSeats, 2)
}

func TestGetSessionNotFound(t *testing.T) {
	service, _, _ := newSessionFixture()

	_, err := service.GetSession(context.Background(), uuid.New().String())

	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
