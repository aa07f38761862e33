package entity

import (
	"time"

	"github.com/google/uuid"
)

// MovieSession is a scheduled screening of a movie in a hall.
type MovieSession struct {
	Base
	MovieID  uuid.UUID `db:"movie_id"`
	HallID   uuid.UUID `db:"hall_id"`
	ShowTime time.Time `db:"show_time"`
}
