package handler

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/capstone-archive/backend-go/internal/database/repository"
	"github.com/capstone-archive/backend-go/internal/database/service"
)

// queryInt parses an optional integer parameter. Empty values count as absent.
func queryInt(c *gin.Context, name string) (*int, error) {
	raw, ok := c.GetQuery(name)
	raw = strings.TrimSpace(raw)
	if !ok || raw == "" {
		return nil, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil, service.NewValidationError(name, "must be an integer")
	}
	return &value, nil
}

// queryBool parses an optional boolean parameter
func queryBool(c *gin.Context, name string) (bool, error) {
	raw, ok := c.GetQuery(name)
	raw = strings.TrimSpace(raw)
	if !ok || raw == "" {
		return false, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, service.NewValidationError(name, "must be true or false")
	}
	return value, nil
}

// queryPositive parses an optional integer that must be at least 1.
// Absent values return 0 so the service applies its default.
func queryPositive(c *gin.Context, name string) (int, error) {
	value, err := queryInt(c, name)
	if err != nil || value == nil {
		return 0, err
	}
	if *value < 1 {
		return 0, service.NewValidationError(name, "must be a positive integer")
	}
	return *value, nil
}

// parsePagination reads page and limit
func parsePagination(c *gin.Context) (repository.Pagination, error) {
	page, err := queryPositive(c, "page")
	if err != nil {
		return repository.Pagination{}, err
	}
	limit, err := queryPositive(c, "limit")
	if err != nil {
		return repository.Pagination{}, err
	}
	return repository.Pagination{Page: page, Limit: limit}, nil
}

// parseProjectFilter reads the catalog filter parameters. includeDeleted is
// parsed separately because not every listing accepts it.
func parseProjectFilter(c *gin.Context) (repository.ProjectFilter, error) {
	var filter repository.ProjectFilter
	var err error

	if filter.Year, err = queryInt(c, "year"); err != nil {
		return filter, err
	}
	if filter.YearFrom, err = queryInt(c, "yearFrom"); err != nil {
		return filter, err
	}
	if filter.YearTo, err = queryInt(c, "yearTo"); err != nil {
		return filter, err
	}

	filter.Field = strings.TrimSpace(c.Query("field"))
	filter.Search = strings.TrimSpace(c.Query("search"))
	return filter, nil
}

// parseID reads a positive integer path parameter
func parseID(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, service.NewValidationError(name, "must be a positive integer")
	}
	return uint(id), nil
}
