package gorm

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/trailpost/tourcms/pkg/apperr"
	"github.com/trailpost/tourcms/pkg/server/store"
)

// ensureSlugFree fails with Conflict when another row in table already uses
// slug. excludeID skips the record's own row during updates.
func ensureSlugFree(tx *gorm.DB, table, slug string, excludeID uint) error {
	if slug == "" {
		return nil
	}
	var count int64
	q := tx.Table(table).Where("slug = ?", slug)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return apperr.Wrap(apperr.KindDatabase, "slug check failed", err)
	}
	if count > 0 {
		return apperr.Conflict(fmt.Sprintf("slug %q is already in use", slug))
	}
	return nil
}

// findErr maps a gorm lookup error to the application taxonomy.
func findErr(entity string, key interface{}, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound(entity, key)
	}
	return apperr.Wrap(apperr.KindDatabase, "query failed", err)
}

func dbErr(op string, err error) error {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return err
	}
	return apperr.Wrap(apperr.KindDatabase, op+" failed", err)
}

// applyFilter adds search, limit and offset to a list query. Search matches
// any of the given columns case-insensitively.
func applyFilter(q *gorm.DB, filter store.ListFilter, searchCols ...string) *gorm.DB {
	if filter.Search != "" && len(searchCols) > 0 {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		clauses := make([]string, 0, len(searchCols))
		args := make([]interface{}, 0, len(searchCols))
		for _, col := range searchCols {
			clauses = append(clauses, "LOWER("+col+") LIKE ?")
			args = append(args, pattern)
		}
		q = q.Where(strings.Join(clauses, " OR "), args...)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		q = q.Offset(filter.Offset)
	}
	return q
}

// Partial-update helpers: each copies a supplied field into the explicit
// SET map; nil pointers leave the column untouched.

func setStr(updates map[string]interface{}, col string, v *string) {
	if v != nil {
		updates[col] = *v
	}
}

func setUint(updates map[string]interface{}, col string, v *uint) {
	if v != nil {
		updates[col] = *v
	}
}

func setInt(updates map[string]interface{}, col string, v *int) {
	if v != nil {
		updates[col] = *v
	}
}

func setFloat(updates map[string]interface{}, col string, v *float64) {
	if v != nil {
		updates[col] = *v
	}
}
