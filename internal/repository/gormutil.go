package repository

import (
	"fmt"
	"sort"

	"gorm.io/gorm"

	"go-clinic-backend/internal/dataaccess"
)

// applyFilters chains the filter map as builder calls under the same
// emptiness rule and ordering the adapter uses, after registry validation.
func applyFilters(tx *gorm.DB, table string, filters map[string]any) (*gorm.DB, error) {
	keys := make([]string, 0, len(filters))
	for k := range filters {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	active := make([]string, 0, len(keys))
	for _, k := range keys {
		if dataaccess.FilterAbsent(filters[k]) {
			continue
		}
		active = append(active, k)
	}
	if err := dataaccess.CheckColumns(table, active...); err != nil {
		return nil, err
	}

	for _, k := range active {
		v := filters[k]
		if dataaccess.IsCollection(v) {
			tx = tx.Where(fmt.Sprintf("%s IN ?", k), v)
		} else {
			tx = tx.Where(fmt.Sprintf("%s = ?", k), v)
		}
	}
	return tx, nil
}

// searchCondition builds the ILIKE-OR condition shared by the gorm-backed
// Search implementations.
func searchCondition(db *gorm.DB, table, query string, fields []string) (*gorm.DB, error) {
	if len(fields) == 0 {
		return nil, fmt.Errorf("search on %s with no fields: %w", table, dataaccess.ErrMalformedQuery)
	}
	if err := dataaccess.CheckColumns(table, fields...); err != nil {
		return nil, err
	}
	pattern := "%" + query + "%"
	cond := db.Where(fmt.Sprintf("%s ILIKE ?", fields[0]), pattern)
	for _, f := range fields[1:] {
		cond = cond.Or(fmt.Sprintf("%s ILIKE ?", f), pattern)
	}
	return cond, nil
}
