package usecase

import (
	"fmt"

	"cinema-api/internal/apperr"
)

// TicketsAvailable derives the remaining seats of a session from its hall
// geometry and the number of tickets already issued. A negative result
// means a seat was oversold somewhere upstream; that is never clamped,
// it is reported as an internal consistency error so it gets noticed.
func TicketsAvailable(rows, seatsInRow, ticketCount int) (int, error) {
	capacity := rows * seatsInRow
	available := capacity - ticketCount

	if available < 0 {
		return 0, fmt.Errorf(
			"session oversold: capacity %d (%dx%d) but %d tickets issued: %w",
			capacity, rows, seatsInRow, ticketCount, apperr.ErrInternalConsistency)
	}

	return available, nil
}
