package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestAvailabilityCacheRoundTrip(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewAvailabilityCache(client, zap.NewNop())
	sessionID := uuid.New()
	k := fmt.Sprintf("session:%s:available", sessionID)

	mock.ExpectSet(k, 37, 30*time.Second).SetVal("OK")
	cache.Set(context.Background(), sessionID, 37)

	mock.ExpectGet(k).SetVal("37")
	got, found := cache.Get(context.Background(), sessionID)

	assert.True(t, found)
	assert.Equal(t, 37, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAvailabilityCacheMiss(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewAvailabilityCache(client, zap.NewNop())
	sessionID := uuid.New()

	mock.ExpectGet(fmt.Sprintf("session:%s:available", sessionID)).RedisNil()

	_, found := cache.Get(context.Background(), sessionID)
	assert.False(t, found)
}

func TestAvailabilityCacheRedisDown(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewAvailabilityCache(client, zap.NewNop())
	sessionID := uuid.New()

	mock.ExpectGet(fmt.Sprintf("session:%s:available", sessionID)).SetErr(fmt.Errorf("connection refused"))

	// Failures look like misses so reads fall back to the database.
	_, found := cache.Get(context.Background(), sessionID)
	assert.False(t, found)
}

func TestAvailabilityCacheInvalidate(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewAvailabilityCache(client, zap.NewNop())
	a := uuid.New()
	b := uuid.New()

	mock.ExpectDel(
		fmt.Sprintf("session:%s:available", a),
		fmt.Sprintf("session:%s:available", b),
	).SetVal(2)

	cache.Invalidate(context.Background(), a, b)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAvailabilityCacheDisabled(t *testing.T) {
	var cache *AvailabilityCache

	// Every operation is a no-op on the nil cache.
	cache.Set(context.Background(), uuid.New(), 10)
	cache.Invalidate(context.Background(), uuid.New())
	_, found := cache.Get(context.Background(), uuid.New())

	assert.False(t, found)
	assert.Nil(t, NewAvailabilityCache(nil, zap.NewNop()))
}
