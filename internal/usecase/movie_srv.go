package usecase

import (
	"context"
	"fmt"
	"io"
	"time"

	"cinema-api/internal/apperr"
	"cinema-api/internal/data/entity"
	"cinema-api/internal/data/repository"
	"cinema-api/internal/dto/request"
	"cinema-api/internal/dto/response"
	"cinema-api/pkg/imagestore"
	"cinema-api/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type MovieService interface {
	GetMovies(ctx context.Context, page *request.PaginatedRequest) (*response.PaginatedResponse[response.MovieResponse], error)
	GetMovieByID(ctx context.Context, movieID string) (*response.MovieResponse, error)

	// Admin operations.
	CreateMovie(ctx context.Context, req *request.MovieRequest) (*response.MovieResponse, error)
	UpdateMovie(ctx context.Context, movieID string, req *request.MovieRequest) (*response.MovieResponse, error)
	DeleteMovie(ctx context.Context, movieID string) error
	UploadPoster(ctx context.Context, movieID, filename string, content io.Reader) (*response.MovieResponse, error)
}

type movieService struct {
	repo   *repository.Repository
	images imagestore.Store
	log    *zap.Logger
}

func NewMovieService(repo *repository.Repository, images imagestore.Store, log *zap.Logger) MovieService {
	return &movieService{
		repo:   repo,
		images: images,
		log:    log.With(zap.String("service", "movie")),
	}
}

func (s *movieService) GetMovies(ctx context.Context, page *request.PaginatedRequest) (*response.PaginatedResponse[response.MovieResponse], error) {
	movies, err := s.repo.Movie.FindAll(ctx, page.Limit(), page.Offset())
	if err != nil {
		s.log.Error("Failed to get movies", zap.Error(err))
		return nil, fmt.Errorf("get movies: %w", err)
	}

	total, err := s.repo.Movie.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("count movies: %w", err)
	}

	movieResponses := make([]response.MovieResponse, len(movies))
	for i, movie := range movies {
		resp, err := s.buildMovieResponse(ctx, movie)
		if err != nil {
			return nil, err
		}
		movieResponses[i] = *resp
	}

	return response.NewPaginatedResponse(movieResponses, page.Page, page.Limit(), total), nil
}

func (s *movieService) GetMovieByID(ctx context.Context, movieID string) (*response.MovieResponse, error) {
	movie, err := s.loadMovie(ctx, movieID)
	if err != nil {
		return nil, err
	}

	return s.buildMovieResponse(ctx, movie)
}

func (s *movieService) CreateMovie(ctx context.Context, req *request.MovieRequest) (*response.MovieResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create movie validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	genreIDs, actorIDs, err := s.resolveRelations(ctx, req)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	movie := &entity.Movie{
		Base:              entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Title:             req.Title,
		Description:       req.Description,
		DurationInMinutes: req.DurationInMinutes,
	}

	if err := s.repo.Movie.Create(ctx, movie); err != nil {
		return nil, fmt.Errorf("create movie: %w", err)
	}

	if err := s.repo.Movie.SetGenres(ctx, movie.ID, genreIDs); err != nil {
		return nil, fmt.Errorf("set movie genres: %w", err)
	}
	if err := s.repo.Movie.SetActors(ctx, movie.ID, actorIDs); err != nil {
		return nil, fmt.Errorf("set movie actors: %w", err)
	}

	s.log.Info("Movie created",
		zap.String("movie_id", movie.ID.String()),
		zap.String("title", movie.Title),
	)

	return s.buildMovieResponse(ctx, movie)
}

func (s *movieService) UpdateMovie(ctx context.Context, movieID string, req *request.MovieRequest) (*response.MovieResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update movie validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	movie, err := s.loadMovie(ctx, movieID)
	if err != nil {
		return nil, err
	}

	genreIDs, actorIDs, err := s.resolveRelations(ctx, req)
	if err != nil {
		return nil, err
	}

	movie.Title = req.Title
	movie.Description = req.Description
	movie.DurationInMinutes = req.DurationInMinutes
	movie.UpdatedAt = time.Now()

	if err := s.repo.Movie.Update(ctx, movie); err != nil {
		return nil, fmt.Errorf("update movie %s: %w", movieID, err)
	}

	if err := s.repo.Movie.SetGenres(ctx, movie.ID, genreIDs); err != nil {
		return nil, fmt.Errorf("set movie genres: %w", err)
	}
	if err := s.repo.Movie.SetActors(ctx, movie.ID, actorIDs); err != nil {
		return nil, fmt.Errorf("set movie actors: %w", err)
	}

	return s.buildMovieResponse(ctx, movie)
}

func (s *movieService) DeleteMovie(ctx context.Context, movieID string) error {
	movie, err := s.loadMovie(ctx, movieID)
	if err != nil {
		return err
	}

	if err := s.repo.Movie.Delete(ctx, movie.ID); err != nil {
		return fmt.Errorf("delete movie %s: %w", movieID, err)
	}

	if movie.PosterRef != nil {
		if err := s.images.Remove(*movie.PosterRef); err != nil {
			// The movie row is gone; a leaked file is only worth a warning.
			s.log.Warn("Failed to remove poster file",
				zap.Error(err),
				zap.String("movie_id", movieID),
			)
		}
	}

	return nil
}

func (s *movieService) UploadPoster(ctx context.Context, movieID, filename string, content io.Reader) (*response.MovieResponse, error) {
	movie, err := s.loadMovie(ctx, movieID)
	if err != nil {
		return nil, err
	}

	ref, err := s.images.Save(filename, content)
	if err != nil {
		s.log.Error("Failed to store poster",
			zap.Error(err),
			zap.String("movie_id", movieID),
		)
		return nil, fmt.Errorf("store poster: %w", err)
	}

	if err := s.repo.Movie.UpdatePosterRef(ctx, movie.ID, ref); err != nil {
		s.images.Remove(ref)
		return nil, fmt.Errorf("update poster ref: %w", err)
	}

	if movie.PosterRef != nil {
		s.images.Remove(*movie.PosterRef)
	}
	movie.PosterRef = &ref

	s.log.Info("Poster uploaded",
		zap.String("movie_id", movieID),
		zap.String("poster_ref", ref),
	)

	return s.buildMovieResponse(ctx, movie)
}

func (s *movieService) loadMovie(ctx context.Context, movieID string) (*entity.Movie, error) {
	id, err := uuid.Parse(movieID)
	if err != nil {
		return nil, fmt.Errorf("invalid movie ID format %s: %w", movieID, err)
	}

	movie, err := s.repo.Movie.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load movie %s: %w", movieID, err)
	}
	if movie == nil {
		return nil, fmt.Errorf("movie %s: %w", movieID, apperr.ErrNotFound)
	}

	return movie, nil
}

// resolveRelations parses and verifies the referenced genres and actors.
func (s *movieService) resolveRelations(ctx context.Context, req *request.MovieRequest) ([]uuid.UUID, []uuid.UUID, error) {
	genreIDs := make([]uuid.UUID, len(req.GenreIDs))
	for i, idStr := range req.GenreIDs {
		id, err := uuid.Parse(idStr)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid genre ID format %s: %w", idStr, err)
		}
		genre, err := s.repo.Genre.FindByID(ctx, id)
		if err != nil {
			return nil, nil, fmt.Errorf("load genre %s: %w", idStr, err)
		}
		if genre == nil {
			return nil, nil, fmt.Errorf("genre %s: %w", idStr, apperr.ErrNotFound)
		}
		genreIDs[i] = id
	}

	actorIDs := make([]uuid.UUID, len(req.ActorIDs))
	for i, idStr := range req.ActorIDs {
		id, err := uuid.Parse(idStr)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid actor ID format %s: %w", idStr, err)
		}
		actor, err := s.repo.Actor.FindByID(ctx, id)
		if err != nil {
			return nil, nil, fmt.Errorf("load actor %s: %w", idStr, err)
		}
		if actor == nil {
			return nil, nil, fmt.Errorf("actor %s: %w", idStr, apperr.ErrNotFound)
		}
		actorIDs[i] = id
	}

	return genreIDs, actorIDs, nil
}

func (s *movieService) buildMovieResponse(ctx context.Context, movie *entity.Movie) (*response.MovieResponse, error) {
	genreIDs, err := s.repo.Movie.FindGenreIDs(ctx, movie.ID)
	if err != nil {
		return nil, fmt.Errorf("load movie %s genres: %w", movie.ID.String(), err)
	}
	genres, err := s.repo.Genre.FindByIDs(ctx, genreIDs)
	if err != nil {
		return nil, fmt.Errorf("load genres: %w", err)
	}

	actorIDs, err := s.repo.Movie.FindActorIDs(ctx, movie.ID)
	if err != nil {
		return nil, fmt.Errorf("load movie %s actors: %w", movie.ID.String(), err)
	}
	actors, err := s.repo.Actor.FindByIDs(ctx, actorIDs)
	if err != nil {
		return nil, fmt.Errorf("load actors: %w", err)
	}

	resp := response.MovieToResponse(movie, genres, actors)
	return &resp, nil
}
