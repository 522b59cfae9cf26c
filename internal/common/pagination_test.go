package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampPage(t *testing.T) {
	assert.Equal(t, 1, ClampPage(0))
	assert.Equal(t, 1, ClampPage(-3))
	assert.Equal(t, 1, ClampPage(1))
	assert.Equal(t, 7, ClampPage(7))
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, 10, ClampLimit(0, 10))
	assert.Equal(t, 10, ClampLimit(-1, 10))
	assert.Equal(t, 1, ClampLimit(1, 10))
	assert.Equal(t, MaxPageSize, ClampLimit(MaxPageSize, 10))
	assert.Equal(t, MaxPageSize, ClampLimit(MaxPageSize+1, 10))
}

func TestNewMetadata(t *testing.T) {
	testCases := []struct {
		name           string
		total          int
		page           int
		limit          int
		wantTotalPages int
	}{
		{name: "exact fit", total: 20, page: 1, limit: 10, wantTotalPages: 2},
		{name: "partial last page", total: 21, page: 3, limit: 10, wantTotalPages: 3},
		{name: "empty", total: 0, page: 1, limit: 10, wantTotalPages: 0},
		{name: "single page", total: 5, page: 1, limit: 10, wantTotalPages: 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m := NewMetadata(tc.total, tc.page, tc.limit)
			assert.Equal(t, tc.total, m.Total)
			assert.Equal(t, tc.page, m.Page)
			assert.Equal(t, tc.limit, m.Limit)
			assert.Equal(t, tc.wantTotalPages, m.TotalPages)
		})
	}
}
