package usecase

import (
	"errors"
	"testing"

	"cinema-api/internal/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTicketsAvailable(t *testing.T) {
	tests := []struct {
		name        string
		rows        int
		seatsInRow  int
		ticketCount int
		want        int
	}{
		{name: "empty session", rows: 5, seatsInRow: 8, ticketCount: 0, want: 40},
		{name: "partially sold", rows: 5, seatsInRow: 8, ticketCount: 3, want: 37},
		{name: "sold out", rows: 5, seatsInRow: 8, ticketCount: 40, want: 0},
		{name: "single seat hall", rows: 1, seatsInRow: 1, ticketCount: 0, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TicketsAvailable(tt.rows, tt.seatsInRow, tt.ticketCount)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTicketsAvailableOversold(t *testing.T) {
	got, err := TicketsAvailable(5, 8, 41)

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrInternalConsistency))
	assert.Equal(t, 0, got)
	assert.Contains(t, err.Error(), "oversold")
}
