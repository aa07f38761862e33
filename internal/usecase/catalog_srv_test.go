package usecase

import (
	"context"
	"testing"

	"cinema-api/internal/data/entity"
	"cinema-api/internal/data/repository"
	"cinema-api/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeGenreRepo struct {
	repository.GenreRepository
	genres []*entity.Genre
}

func (f *fakeGenreRepo) Create(_ context.Context, genre *entity.Genre) error {
	f.genres = append(f.genres, genre)
	return nil
}

func (f *fakeGenreRepo) FindAll(_ context.Context) ([]*entity.Genre, error) {
	return f.genres, nil
}

type fakeHallRepo struct {
	repository.HallRepository
	halls []*entity.CinemaHall
}

func (f *fakeHallRepo) Create(_ context.Context, hall *entity.CinemaHall) error {
	f.halls = append(f.halls, hall)
	return nil
}

func (f *fakeHallRepo) FindAll(_ context.Context) ([]*entity.CinemaHall, error) {
	return f.halls, nil
}

func TestCreateAndListGenres(t *testing.T) {
	genres := &fakeGenreRepo{}
	service := NewCatalogService(&repository.Repository{Genre: genres}, zap.NewNop())

	created, err := service.CreateGenre(context.Background(), &request.GenreRequest{Name: "Drama"})
	require.NoError(t, err)
	assert.Equal(t, "Drama", created.Name)

	listed, err := service.ListGenres(context.Background())
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, created.ID, listed[0].ID)
}

func TestCreateGenreRequiresName(t *testing.T) {
	genres := &fakeGenreRepo{}
	service := NewCatalogService(&repository.Repository{Genre: genres}, zap.NewNop())

	_, err := service.CreateGenre(context.Background(), &request.GenreRequest{})

	assert.Error(t, err)
	assert.Empty(t, genres.genres)
}

func TestCreateHallReportsCapacity(t *testing.T) {
	halls := &fakeHallRepo{}
	service := NewCatalogService(&repository.Repository{Hall: halls}, zap.NewNop())

	created, err := service.CreateHall(context.Background(), &request.HallRequest{
		Name:       "Blue",
		Rows:       5,
		SeatsInRow: 8,
	})

	require.NoError(t, err)
	assert.Equal(t, 40, created.Capacity)
	require.Len(t, halls.halls, 1)
	assert.Equal(t, 40, halls.halls[0].Capacity())
}

func TestCreateHallRejectsBadGeometry(t *testing.T) {
	halls := &fakeHallRepo{}
	service := NewCatalogService(&repository.Repository{Hall: halls}, zap.NewNop())

	for _, req := range []*request.HallRequest{
		{Name: "Blue", Rows: 0, SeatsInRow: 8},
		{Name: "Blue", Rows: 5, SeatsInRow: -1},
		{Rows: 5, SeatsInRow: 8},
	} {
		_, err := service.CreateHall(context.Background(), req)
		assert.Error(t, err, "rows=%d seats=%d", req.Rows, req.SeatsInRow)
	}
	assert.Empty(t, halls.halls)
}

func TestListActors(t *testing.T) {
	service := NewCatalogService(&repository.Repository{Actor: &fakeActorRepo{
		actors: []*entity.Actor{{
			Base:      entity.Base{ID: uuid.New()},
			FirstName: "Anatoly",
			LastName:  "Solonitsyn",
		}},
	}}, zap.NewNop())

	listed, err := service.ListActors(context.Background())
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "Anatoly Solonitsyn", listed[0].FullName)
}

type fakeActorRepo struct {
	repository.ActorRepository
	actors []*entity.Actor
}

func (f *fakeActorRepo) FindAll(_ context.Context) ([]*entity.Actor, error) {
	return f.actors, nil
}
