package response

import "time"

// SessionSummary is one row of the session listing.
type SessionSummary struct {
	ID               string    `json:"id"`
	MovieID          string    `json:"movie_id"`
	MovieTitle       string    `json:"movie_title"`
	HallID           string    `json:"hall_id"`
	HallName         string    `json:"hall_name"`
	HallCapacity     int       `json:"hall_capacity"`
	ShowTime         time.Time `json:"show_time"`
	TicketsAvailable int       `json:"tickets_available"`
}

type SeatRef struct {
	Row  int `json:"row"`
	Seat int `json:"seat"`
}

type SessionDetail struct {
	SessionSummary
	HallRows       int       `json:"hall_rows"`
	HallSeatsInRow int       `json:"hall_seats_in_row"`
	TakenSeats     []SeatRef `json:"taken_seats"`
}
