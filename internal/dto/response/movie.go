package response

import (
	"time"

	"cinema-api/internal/data/entity"
)

type MovieResponse struct {
	ID                string          `json:"id"`
	Title             string          `json:"title"`
	Description       *string         `json:"description,omitempty"`
	DurationInMinutes int             `json:"duration_in_minutes"`
	PosterRef         *string         `json:"poster_ref,omitempty"`
	Genres            []GenreResponse `json:"genres"`
	Actors            []ActorResponse `json:"actors"`
	CreatedAt         time.Time       `json:"created_at"`
}

func MovieToResponse(movie *entity.Movie, genres []*entity.Genre, actors []*entity.Actor) MovieResponse {
	genreResponses := make([]GenreResponse, len(genres))
	for i, genre := range genres {
		genreResponses[i] = GenreToResponse(genre)
	}

	actorResponses := make([]ActorResponse, len(actors))
	for i, actor := range actors {
		actorResponses[i] = ActorToResponse(actor)
	}

	return MovieResponse{
		ID:                movie.ID.String(),
		Title:             movie.Title,
		Description:       movie.Description,
		DurationInMinutes: movie.DurationInMinutes,
		PosterRef:         movie.PosterRef,
		Genres:            genreResponses,
		Actors:            actorResponses,
		CreatedAt:         movie.CreatedAt,
	}
}
