package entity

type CinemaHall struct {
	Base
	Name       string `db:"name"`
	Rows       int    `db:"rows"`
	SeatsInRow int    `db:"seats_in_row"`
}

// Capacity is the total number of seats in the hall.
func (h *CinemaHall) Capacity() int {
	return h.Rows * h.SeatsInRow
}
