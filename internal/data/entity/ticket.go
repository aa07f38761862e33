package entity

import "github.com/google/uuid"

// Ticket claims one (row, seat) in a session's hall. The tickets table
// carries UNIQUE (session_id, seat_row, seat_num); a second claim for the
// same seat fails at insert regardless of what earlier reads observed.
type Ticket struct {
	BaseSimple
	OrderID   uuid.UUID `db:"order_id"`
	SessionID uuid.UUID `db:"session_id"`
	Row       int       `db:"row"`
	Seat      int       `db:"seat"`
}
