package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginatedRequestClamping(t *testing.T) {
	tests := []struct {
		name       string
		page       PaginatedRequest
		wantLimit  int
		wantOffset int
	}{
		{name: "defaults", page: PaginatedRequest{}, wantLimit: 10, wantOffset: 0},
		{name: "second page", page: PaginatedRequest{Page: 2, PerPage: 10}, wantLimit: 10, wantOffset: 10},
		{name: "per page capped at 100", page: PaginatedRequest{Page: 1, PerPage: 500}, wantLimit: 100, wantOffset: 0},
		{name: "negative page", page: PaginatedRequest{Page: -1, PerPage: 10}, wantLimit: 10, wantOffset: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantLimit, tt.page.Limit())
			assert.Equal(t, tt.wantOffset, tt.page.Offset())
		})
	}
}
