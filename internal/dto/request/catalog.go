package request

type GenreRequest struct {
	Name string `json:"name" validate:"required,min=1,max=255"`
}

type ActorRequest struct {
	FirstName string `json:"first_name" validate:"required,min=1,max=255"`
	LastName  string `json:"last_name" validate:"required,min=1,max=255"`
}

type HallRequest struct {
	Name       string `json:"name" validate:"required,min=1,max=255"`
	Rows       int    `json:"rows" validate:"required,gte=1"`
	SeatsInRow int    `json:"seats_in_row" validate:"required,gte=1"`
}
