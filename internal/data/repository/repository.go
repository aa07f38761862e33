package repository

import (
	"cinema-api/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User    UserRepository
	Token   TokenRepository
	Genre   GenreRepository
	Actor   ActorRepository
	Hall    HallRepository
	Movie   MovieRepository
	Session SessionRepository
	Order   OrderRepository
	Ticket  TicketRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:    NewUserRepository(db, log),
		Token:   NewTokenRepository(db, log),
		Genre:   NewGenreRepository(db, log),
		Actor:   NewActorRepository(db, log),
		Hall:    NewHallRepository(db, log),
		Movie:   NewMovieRepository(db, log),
		Session: NewSessionRepository(db, log),
		Order:   NewOrderRepository(db, log),
		Ticket:  NewTicketRepository(db, log),
	}
}
