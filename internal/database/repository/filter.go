package repository

import (
	"strings"

	"gorm.io/gorm"
)

// AllFields is the field value that means "no field restriction"
const AllFields = "all"

// ProjectFilter narrows a catalog listing. Every set criterion is ANDed; the
// search term matches title, author or field.
type ProjectFilter struct {
	IncludeDeleted bool
	OnlyDeleted    bool
	Field          string
	Year           *int
	YearFrom       *int
	YearTo         *int
	Search         string
}

// Pagination is a 1-indexed page request
type Pagination struct {
	Page  int
	Limit int
}

// Offset returns the number of rows to skip
func (p Pagination) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a lowercased LIKE pattern matching term anywhere
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
}

// applyProjectFilter adds the filter predicates to a query that has the
// projects table in scope.
func applyProjectFilter(q *gorm.DB, f ProjectFilter) *gorm.DB {
	switch {
	case f.OnlyDeleted:
		q = q.Where("projects.is_deleted = ?", true)
	case !f.IncludeDeleted:
		q = q.Where("projects.is_deleted = ?", false)
	}

	if field := strings.TrimSpace(f.Field); field != "" && !strings.EqualFold(field, AllFields) {
		q = q.Where("LOWER(projects.field) = ?", strings.ToLower(field))
	}

	if f.Year != nil {
		q = q.Where("projects.year = ?", *f.Year)
	} else {
		if f.YearFrom != nil {
			q = q.Where("projects.year >= ?", *f.YearFrom)
		}
		if f.YearTo != nil {
			q = q.Where("projects.year <= ?", *f.YearTo)
		}
	}

	if search := strings.TrimSpace(f.Search); search != "" {
		pattern := containsPattern(search)
		q = q.Where(
			`(LOWER(projects.title) LIKE ? ESCAPE '\' OR LOWER(projects.author) LIKE ? ESCAPE '\' OR LOWER(projects.field) LIKE ? ESCAPE '\')`,
			pattern, pattern, pattern,
		)
	}

	return q
}
