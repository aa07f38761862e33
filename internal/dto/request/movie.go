package request

type MovieRequest struct {
	Title             string   `json:"title" validate:"required,min=1,max=255"`
	Description       *string  `json:"description,omitempty"`
	DurationInMinutes int      `json:"duration_in_minutes" validate:"required,gte=1"`
	GenreIDs          []string `json:"genre_ids" validate:"omitempty,dive,uuid4"`
	ActorIDs          []string `json:"actor_ids" validate:"omitempty,dive,uuid4"`
}
