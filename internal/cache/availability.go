// Package cache holds the redis-backed availability cache. The database
// stays authoritative; the cache only absorbs read traffic on session
// listings and is invalidated on every order commit.
package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const availabilityTTL = 30 * time.Second

// AvailabilityCache caches tickets-available per session. A nil
// *AvailabilityCache is valid and disables caching entirely.
type AvailabilityCache struct {
	client *redis.Client
	log    *zap.Logger
}

func NewAvailabilityCache(client *redis.Client, log *zap.Logger) *AvailabilityCache {
	if client == nil {
		return nil
	}
	return &AvailabilityCache{
		client: client,
		log:    log.With(zap.String("cache", "availability")),
	}
}

func key(sessionID uuid.UUID) string {
	return fmt.Sprintf("session:%s:available", sessionID.String())
}

// Get returns the cached availability, or found=false on miss, disabled
// cache, or redis failure. Failures degrade to a database read.
func (c *AvailabilityCache) Get(ctx context.Context, sessionID uuid.UUID) (available int, found bool) {
	if c == nil {
		return 0, false
	}

	val, err := c.client.Get(ctx, key(sessionID)).Result()
	if err == redis.Nil {
		return 0, false
	}
	if err != nil {
		c.log.Warn("Availability cache read failed",
			zap.Error(err),
			zap.String("session_id", sessionID.String()),
		)
		return 0, false
	}

	available, convErr := strconv.Atoi(val)
	if convErr != nil {
		return 0, false
	}

	return available, true
}

// Set stores the availability with a short TTL.
func (c *AvailabilityCache) Set(ctx context.Context, sessionID uuid.UUID, available int) {
	if c == nil {
		return
	}

	if err := c.client.Set(ctx, key(sessionID), available, availabilityTTL).Err(); err != nil {
		c.log.Warn("Availability cache write failed",
			zap.Error(err),
			zap.String("session_id", sessionID.String()),
		)
	}
}

// Invalidate drops the cached value for the given sessions. Called after
// an order commits and after session mutations.
func (c *AvailabilityCache) Invalidate(ctx context.Context, sessionIDs ...uuid.UUID) {
	if c == nil || len(sessionIDs) == 0 {
		return
	}

	keys := make([]string, len(sessionIDs))
	for i, id := range sessionIDs {
		keys[i] = key(id)
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.log.Warn("Availability cache invalidation failed",
			zap.Error(err),
			zap.Int("sessions", len(sessionIDs)),
		)
	}
}
