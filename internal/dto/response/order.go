package response

import "time"

type TicketResponse struct {
	ID         string    `json:"id"`
	SessionID  string    `json:"session_id"`
	MovieTitle string    `json:"movie_title,omitempty"`
	ShowTime   time.Time `json:"show_time,omitempty"`
	Row        int       `json:"row"`
	Seat       int       `json:"seat"`
}

type OrderResponse struct {
	ID        string           `json:"id"`
	CreatedAt time.Time        `json:"created_at"`
	Tickets   []TicketResponse `json:"tickets"`
}
