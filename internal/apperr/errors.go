// Package apperr defines the error kinds services report to handlers.
// Handlers map them to HTTP status codes; services wrap them with context.
package apperr

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// ErrNotFound means a referenced entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrEmptyOrder means an order was submitted with no tickets.
	ErrEmptyOrder = errors.New("order must contain at least one ticket")

	// ErrUnauthorized means authentication is required and absent.
	ErrUnauthorized = errors.New("authentication required")

	// ErrForbidden means the caller is authenticated but lacks the role.
	ErrForbidden = errors.New("insufficient permissions")

	// ErrInternalConsistency marks a broken invariant (e.g. negative
	// availability). Always a bug: log with full context, report generic.
	ErrInternalConsistency = errors.New("internal consistency violation")
)

// InvalidSeatError reports a (row, seat) outside the hall bounds.
type InvalidSeatError struct {
	SessionID  uuid.UUID
	Row        int
	Seat       int
	Rows       int
	SeatsInRow int
}

func (e *InvalidSeatError) Error() string {
	return fmt.Sprintf("seat (row %d, seat %d) outside hall bounds %dx%d for session %s",
		e.Row, e.Seat, e.Rows, e.SeatsInRow, e.SessionID)
}

// SeatTakenError identifies the conflicting seat of a collision, whether
// against an existing ticket or another request in the same submission.
type SeatTakenError struct {
	SessionID uuid.UUID
	Row       int
	Seat      int
}

func (e *SeatTakenError) Error() string {
	return fmt.Sprintf("seat (row %d, seat %d) already taken for session %s",
		e.Row, e.Seat, e.SessionID)
}

// IsInvalidSeat reports whether err is an InvalidSeatError.
func IsInvalidSeat(err error) bool {
	var target *InvalidSeatError
	return errors.As(err, &target)
}

// IsSeatTaken reports whether err is a SeatTakenError.
func IsSeatTaken(err error) bool {
	var target *SeatTakenError
	return errors.As(err, &target)
}
