package request

// TicketRequest claims one seat in one session. Row and Seat bounds are
// checked against the session's hall by the order service, not by tags,
// so out-of-range values surface as InvalidSeat rather than a generic
// validation failure.
type TicketRequest struct {
	SessionID string `json:"session_id" validate:"required,uuid4"`
	Row       int    `json:"row"`
	Seat      int    `json:"seat"`
}

type CreateOrderRequest struct {
	Tickets []TicketRequest `json:"tickets" validate:"dive"`
}
