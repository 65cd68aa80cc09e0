package service

import (
	"github.com/capstone-archive/backend-go/internal/database/repository"
)

const (
	DefaultPageSize = 100
	MaxPageSize     = 100
)

// Page is one slice of a paginated listing
type Page[T any] struct {
	Items      []T   `json:"items"`
	TotalCount int64 `json:"totalCount"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
	HasNext    bool  `json:"hasNext"`
	HasPrev    bool  `json:"hasPrev"`
}

// NewPage derives the page metadata from the total row count
func NewPage[T any](items []T, total int64, p repository.Pagination) *Page[T] {
	if items == nil {
		items = []T{}
	}
	totalPages := 0
	if p.Limit > 0 {
		totalPages = int((total + int64(p.Limit) - 1) / int64(p.Limit))
	}
	return &Page[T]{
		Items:      items,
		TotalCount: total,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalPages: totalPages,
		HasNext:    p.Page < totalPages,
		HasPrev:    p.Page > 1,
	}
}

// NormalizePagination applies defaults and bounds to a page request.
// Zero values take the defaults; negative values are rejected.
func NormalizePagination(page, limit int) (repository.Pagination, error) {
	if page == 0 {
		page = 1
	}
	if limit == 0 {
		limit = DefaultPageSize
	}
	if page < 1 {
		return repository.Pagination{}, NewValidationError("page", "must be a positive integer")
	}
	if limit < 1 {
		return repository.Pagination{}, NewValidationError("limit", "must be a positive integer")
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	return repository.Pagination{Page: page, Limit: limit}, nil
}

// validateFilter rejects contradictory year bounds
func validateFilter(f repository.ProjectFilter) error {
	if f.Year == nil && f.YearFrom != nil && f.YearTo != nil && *f.YearFrom > *f.YearTo {
		return NewValidationError("yearFrom", "must not be greater than yearTo")
	}
	return nil
}
