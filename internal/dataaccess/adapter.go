package dataaccess

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"time"

	"github.com/google/uuid"
)

// Row is a single database row in column-name → value form. Both backends
// normalize their results into this shape so repositories built on the
// adapter are backend-agnostic.
type Row map[string]any

// QueryOptions describes a read operation: projection, equality /
// array-membership filters, a single-column sort and limit/offset.
// Filter values that are nil, empty strings or empty slices are skipped,
// never translated into an equality-with-NULL condition.
type QueryOptions struct {
	Columns   []string
	Filters   map[string]any
	OrderBy   string
	OrderDesc bool
	Limit     int
	Offset    int
}

// Adapter is the uniform data-access facade. Exactly one implementation is
// active for the lifetime of the process, chosen by the backend selector.
type Adapter interface {
	// Query returns the matching rows plus the total count ignoring
	// limit/offset. An empty result is success, not an error.
	Query(ctx context.Context, table string, opts QueryOptions) ([]Row, int64, error)

	// FindByID returns the row with the given id, or (nil, nil) when absent.
	FindByID(ctx context.Context, table string, id any, idColumn string) (Row, error)

	// Insert creates a row and returns it with server-side defaults
	// (id, timestamps) populated.
	Insert(ctx context.Context, table string, values Row) (Row, error)

	// Update applies a partial update and returns the updated row.
	// Fails with ErrNotFound when no row matches the id.
	Update(ctx context.Context, table string, id any, values Row, idColumn string) (Row, error)

	// UpdateWhere applies a partial update only when the row also matches
	// the guard filters, as one statement on both backends. Fails with
	// ErrNotFound when nothing matched, whether the id is absent or a
	// guard rejected the row; callers disambiguate with a follow-up read.
	UpdateWhere(ctx context.Context, table string, id any, values Row, idColumn string, guards map[string]any) (Row, error)

	// Delete removes a row and reports whether one was actually removed.
	Delete(ctx context.Context, table string, id any, idColumn string) (bool, error)

	// Search performs a case-insensitive partial match ORed across fields.
	// Both backends return the same logical row set for a given query.
	Search(ctx context.Context, table, query string, fields []string, limit int) ([]Row, error)

	// RawQuery runs a parameterized SQL statement. Only the pgx backend
	// supports it; the gorm backend fails with ErrUnsupportedOperation.
	RawQuery(ctx context.Context, sql string, args ...any) ([]Row, error)
}

// filterEmpty reports whether a filter value counts as absent.
func filterEmpty(v any) bool {
	if v == nil {
		return true
	}
	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.String:
		return rv.Len() == 0
	case reflect.Slice, reflect.Array:
		return rv.Len() == 0
	case reflect.Ptr, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// normalizeFilters drops absent values and returns the surviving keys in a
// deterministic order, so both backends apply conditions identically and
// placeholder numbering is stable.
func normalizeFilters(filters map[string]any) ([]string, map[string]any) {
	out := make(map[string]any, len(filters))
	keys := make([]string, 0, len(filters))
	for k, v := range filters {
		if filterEmpty(v) {
			continue
		}
		out[k] = v
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, out
}

// isSlice reports whether a filter value is a collection (array-membership
// match) rather than a scalar (equality match).
func isSlice(v any) bool {
	if _, ok := v.([]byte); ok {
		return false
	}
	k := reflect.ValueOf(v).Kind()
	return k == reflect.Slice || k == reflect.Array
}

// ── Row accessors ──
// Values arrive with backend-specific dynamic types (pgx scans int8 columns
// as int64, gorm may hand back int32 or int64 depending on the column), so
// repositories read them through these tolerant helpers.

func (r Row) Int64(col string) int64 {
	switch v := r[col].(type) {
	case int64:
		return v
	case int32:
		return int64(v)
	case int:
		return int64(v)
	case float64:
		return int64(v)
	}
	return 0
}

func (r Row) String(col string) string {
	if v, ok := r[col].(string); ok {
		return v
	}
	if v, ok := r[col].([]byte); ok {
		return string(v)
	}
	return ""
}

func (r Row) Int64Ptr(col string) *int64 {
	if r[col] == nil {
		return nil
	}
	v := r.Int64(col)
	return &v
}

func (r Row) Bool(col string) bool {
	v, _ := r[col].(bool)
	return v
}

func (r Row) Time(col string) time.Time {
	if v, ok := r[col].(time.Time); ok {
		return v
	}
	return time.Time{}
}

func (r Row) TimePtr(col string) *time.Time {
	if v, ok := r[col].(time.Time); ok {
		return &v
	}
	return nil
}

func (r Row) UUID(col string) uuid.UUID {
	switch v := r[col].(type) {
	case uuid.UUID:
		return v
	case [16]byte:
		return uuid.UUID(v)
	case string:
		if id, err := uuid.Parse(v); err == nil {
			return id
		}
	}
	return uuid.Nil
}

func (r Row) UUIDPtr(col string) *uuid.UUID {
	if r[col] == nil {
		return nil
	}
	id := r.UUID(col)
	if id == uuid.Nil {
		return nil
	}
	return &id
}

// wrap attaches operation context while preserving the taxonomy sentinel.
func wrap(op, table string, err error) error {
	return fmt.Errorf("%s %s: %w", op, table, err)
}
