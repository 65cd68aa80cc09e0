package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/capstone-archive/backend-go/internal/database/repository"
	"github.com/capstone-archive/backend-go/internal/database/service"
)

func TestNormalizePagination(t *testing.T) {
	tests := []struct {
		name     string
		page     int
		limit    int
		expected repository.Pagination
		wantErr  bool
	}{
		{name: "Defaults", expected: repository.Pagination{Page: 1, Limit: 100}},
		{name: "Explicit", page: 3, limit: 20, expected: repository.Pagination{Page: 3, Limit: 20}},
		{name: "Limit clamped", page: 1, limit: 1000, expected: repository.Pagination{Page: 1, Limit: 100}},
		{name: "Negative page", page: -2, limit: 10, wantErr: true},
		{name: "Negative limit", page: 1, limit: -10, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := service.NormalizePagination(tt.page, tt.limit)
			if tt.wantErr {
				assert.ErrorIs(t, err, service.ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestNewPage(t *testing.T) {
	page := service.NewPage[int](nil, 45, repository.Pagination{Page: 2, Limit: 20})

	assert.Equal(t, []int{}, page.Items)
	assert.Equal(t, 3, page.TotalPages)
	assert.True(t, page.HasNext)
	assert.True(t, page.HasPrev)

	last := service.NewPage([]int{1}, 41, repository.Pagination{Page: 3, Limit: 20})
	assert.False(t, last.HasNext)
}

func TestPassword(t *testing.T) {
	hash, err := service.HashPassword("correct horse", 1)
	require.NoError(t, err)
	assert.True(t, service.CheckPassword(hash, "correct horse"))
	assert.False(t, service.CheckPassword(hash, "battery staple"))
}
