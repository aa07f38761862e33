package utils

import (
	"context"

	"github.com/google/uuid"
)

// CallerRole is the tagged role variant the access gate dispatches on.
type CallerRole string

const (
	CallerAnonymous CallerRole = "anonymous"
	CallerUser      CallerRole = "user"
	CallerAdmin     CallerRole = "admin"
)

// Caller is the resolved identity of the current request. It is carried
// explicitly in the request context; nothing reads ambient globals.
type Caller struct {
	UserID uuid.UUID
	Role   CallerRole
}

func (c Caller) Authenticated() bool {
	return c.Role == CallerUser || c.Role == CallerAdmin
}

func (c Caller) IsAdmin() bool {
	return c.Role == CallerAdmin
}

type contextKey string

const callerKey contextKey = "caller"

func SetCallerContext(ctx context.Context, caller Caller) context.Context {
	return context.WithValue(ctx, callerKey, caller)
}

// GetCallerFromContext returns the caller set by the auth middleware.
// A missing caller means the request is anonymous.
func GetCallerFromContext(ctx context.Context) (Caller, bool) {
	caller, ok := ctx.Value(callerKey).(Caller)
	if !ok {
		return Caller{Role: CallerAnonymous}, false
	}
	return caller, true
}
