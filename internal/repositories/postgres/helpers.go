package postgres

import (
	"errors"
	"strings"

	"github.com/SAP-F-2025/career-orientation-service/internal/repositories"
	"gorm.io/gorm"
)

// SharedHelpers holds query helpers used by every repository.
type SharedHelpers struct {
	db *gorm.DB
}

func NewSharedHelpers(db *gorm.DB) *SharedHelpers {
	return &SharedHelpers{db: db}
}

// ApplyPaginationAndSort orders by sortBy when it is one of allowed, falling
// back to the first allowed column, and clamps the page size.
func (h *SharedHelpers) ApplyPaginationAndSort(query *gorm.DB, sortBy, sortOrder string, limit, offset int, allowed ...string) *gorm.DB {
	column := allowed[0]
	for _, c := range allowed {
		if c == sortBy {
			column = sortBy
			break
		}
	}

	order := "DESC"
	if strings.EqualFold(sortOrder, "asc") {
		order = "ASC"
	}
	query = query.Order(column + " " + order).Order("id " + order)

	query = query.Limit(repositories.NormalizeLimit(limit))
	if offset > 0 {
		query = query.Offset(offset)
	}
	return query
}

// translateError maps gorm errors onto repository sentinels.
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return repositories.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return repositories.ErrDuplicate
	}
	return err
}
