package entity

import (
	"time"

	"github.com/google/uuid"
)

// AuthToken is an opaque bearer token issued at login.
type AuthToken struct {
	Token     uuid.UUID `db:"token"`
	UserID    uuid.UUID `db:"user_id"`
	CreatedAt time.Time `db:"created_at"`
	ExpiresAt time.Time `db:"expires_at"`
}
