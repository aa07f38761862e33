package repository

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestSessionFilterWhereClause(t *testing.T) {
	date := time.Date(2026, 1, 15, 23, 45, 0, 0, time.UTC)
	movieID := uuid.New()

	tests := []struct {
		name       string
		filter     SessionFilter
		wantClause string
		wantArgs   []any
	}{
		{
			name:       "no filter",
			filter:     SessionFilter{},
			wantClause: "",
			wantArgs:   nil,
		},
		{
			name:       "date only",
			filter:     SessionFilter{Date: &date},
			wantClause: " AND s.show_time::date = $1",
			wantArgs:   []any{"2026-01-15"},
		},
		{
			name:       "movie only",
			filter:     SessionFilter{MovieID: &movieID},
			wantClause: " AND s.movie_id = $1",
			wantArgs:   []any{movieID},
		},
		{
			name:       "date and movie combine with AND",
			filter:     SessionFilter{Date: &date, MovieID: &movieID},
			wantClause: " AND s.show_time::date = $1 AND s.movie_id = $2",
			wantArgs:   []any{"2026-01-15", movieID},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clause, args := tt.filter.WhereClause()
			assert.Equal(t, tt.wantClause, clause)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}
