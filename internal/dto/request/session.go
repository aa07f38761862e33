package request

type SessionRequest struct {
	MovieID  string `json:"movie_id" validate:"required,uuid4"`
	HallID   string `json:"hall_id" validate:"required,uuid4"`
	ShowTime string `json:"show_time" validate:"required"` // RFC 3339
}

// SessionListFilter carries the optional query parameters of the session
// listing. Both combine with AND.
type SessionListFilter struct {
	Date    string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	MovieID string `json:"movie" validate:"omitempty,uuid4"`
}
