package dataaccess

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"go-clinic-backend/internal/infrastructure/metrics"
)

// gormAdapter is the fluent-builder backend. Filters are translated into
// chained builder calls instead of hand-built SQL, but the semantic order
// (filters → order → limit/offset) and the filter-emptiness rule match the
// pgx backend exactly, so callers can switch backends without behavior
// change. RawQuery is deliberately unsupported here.
type gormAdapter struct {
	db *gorm.DB
}

// NewGormAdapter builds the gorm-backed adapter around an owned connection.
func NewGormAdapter(db *gorm.DB) Adapter {
	return &gormAdapter{db: db}
}

func (a *gormAdapter) Query(ctx context.Context, table string, opts QueryOptions) ([]Row, int64, error) {
	start := time.Now()
	rows, total, err := a.query(ctx, table, opts)
	metrics.ObserveQuery("gorm", "query", table, start, err)
	return rows, total, err
}

func (a *gormAdapter) query(ctx context.Context, table string, opts QueryOptions) ([]Row, int64, error) {
	tx, err := a.filtered(ctx, table, opts.Filters)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, wrap("count", table, translateGormErr(err))
	}

	if len(opts.Columns) > 0 {
		if err := checkColumns(table, opts.Columns...); err != nil {
			return nil, 0, err
		}
		tx = tx.Select(opts.Columns)
	}
	if opts.OrderBy != "" {
		if err := checkColumns(table, opts.OrderBy); err != nil {
			return nil, 0, err
		}
		tx = tx.Order(clause.OrderByColumn{
			Column: clause.Column{Name: opts.OrderBy},
			Desc:   opts.OrderDesc,
		})
	}
	if opts.Limit > 0 {
		tx = tx.Limit(opts.Limit)
	}
	if opts.Offset > 0 {
		tx = tx.Offset(opts.Offset)
	}

	var rows []map[string]any
	if err := tx.Find(&rows).Error; err != nil {
		return nil, 0, wrap("query", table, translateGormErr(err))
	}
	out := make([]Row, len(rows))
	for i, m := range rows {
		out[i] = Row(m)
	}
	return out, total, nil
}

func (a *gormAdapter) FindByID(ctx context.Context, table string, id any, idColumn string) (Row, error) {
	start := time.Now()
	rows, _, err := a.query(ctx, table, QueryOptions{
		Filters: map[string]any{idColumn: id},
		Limit:   1,
	})
	metrics.ObserveQuery("gorm", "find_by_id", table, start, err)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (a *gormAdapter) Insert(ctx context.Context, table string, values Row) (Row, error) {
	start := time.Now()
	row, err := a.insert(ctx, table, values)
	metrics.ObserveQuery("gorm", "insert", table, start, err)
	return row, err
}

func (a *gormAdapter) insert(ctx context.Context, table string, values Row) (Row, error) {
	keys, _ := normalizeInsert(values)
	if err := checkColumns(table, keys...); err != nil {
		return nil, err
	}

	stored := make(map[string]any, len(values))
	for k, v := range values {
		stored[k] = v
	}
	err := a.db.WithContext(ctx).
		Table(table).
		Clauses(clause.Returning{}).
		Create(&stored).Error
	if err != nil {
		return nil, wrap("insert", table, translateGormErr(err))
	}
	return Row(stored), nil
}

func (a *gormAdapter) Update(ctx context.Context, table string, id any, values Row, idColumn string) (Row, error) {
	start := time.Now()
	row, err := a.update(ctx, table, id, values, idColumn)
	metrics.ObserveQuery("gorm", "update", table, start, err)
	return row, err
}

func (a *gormAdapter) update(ctx context.Context, table string, id any, values Row, idColumn string) (Row, error) {
	keys, _ := normalizeInsert(values)
	if err := checkColumns(table, append(keys, idColumn)...); err != nil {
		return nil, err
	}

	res := a.db.WithContext(ctx).
		Table(table).
		Where(fmt.Sprintf("%s = ?", idColumn), id).
		Updates(map[string]any(values))
	if res.Error != nil {
		return nil, wrap("update", table, translateGormErr(res.Error))
	}
	if res.RowsAffected == 0 {
		return nil, wrap("update", table, ErrNotFound)
	}
	return a.FindByID(ctx, table, id, idColumn)
}

func (a *gormAdapter) UpdateWhere(ctx context.Context, table string, id any, values Row, idColumn string, guards map[string]any) (Row, error) {
	start := time.Now()
	row, err := a.updateWhere(ctx, table, id, values, idColumn, guards)
	metrics.ObserveQuery("gorm", "update_where", table, start, err)
	return row, err
}

func (a *gormAdapter) updateWhere(ctx context.Context, table string, id any, values Row, idColumn string, guards map[string]any) (Row, error) {
	keys, _ := normalizeInsert(values)
	if err := checkColumns(table, append(keys, idColumn)...); err != nil {
		return nil, err
	}
	guardKeys, active := normalizeFilters(guards)
	if err := checkColumns(table, guardKeys...); err != nil {
		return nil, err
	}

	tx := a.db.WithContext(ctx).
		Table(table).
		Where(fmt.Sprintf("%s = ?", idColumn), id)
	for _, k := range guardKeys {
		v := active[k]
		if isSlice(v) {
			tx = tx.Where(fmt.Sprintf("%s IN ?", k), v)
		} else {
			tx = tx.Where(fmt.Sprintf("%s = ?", k), v)
		}
	}
	res := tx.Updates(map[string]any(values))
	if res.Error != nil {
		return nil, wrap("guarded update", table, translateGormErr(res.Error))
	}
	if res.RowsAffected == 0 {
		return nil, wrap("guarded update", table, ErrNotFound)
	}
	return a.FindByID(ctx, table, id, idColumn)
}

func (a *gormAdapter) Delete(ctx context.Context, table string, id any, idColumn string) (bool, error) {
	start := time.Now()
	if err := checkColumns(table, idColumn); err != nil {
		metrics.ObserveQuery("gorm", "delete", table, start, err)
		return false, err
	}
	res := a.db.WithContext(ctx).
		Table(table).
		Where(fmt.Sprintf("%s = ?", idColumn), id).
		Delete(nil)
	err := res.Error
	if err != nil {
		err = wrap("delete", table, translateGormErr(err))
	}
	metrics.ObserveQuery("gorm", "delete", table, start, err)
	if err != nil {
		return false, err
	}
	return res.RowsAffected > 0, nil
}

func (a *gormAdapter) Search(ctx context.Context, table, query string, fields []string, limit int) ([]Row, error) {
	start := time.Now()
	rows, err := a.search(ctx, table, query, fields, limit)
	metrics.ObserveQuery("gorm", "search", table, start, err)
	return rows, err
}

func (a *gormAdapter) search(ctx context.Context, table, query string, fields []string, limit int) ([]Row, error) {
	if err := checkTable(table); err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("search on %s with no fields: %w", table, ErrMalformedQuery)
	}
	if err := checkColumns(table, fields...); err != nil {
		return nil, err
	}

	pattern := "%" + query + "%"
	cond := a.db.Where(fmt.Sprintf("%s ILIKE ?", fields[0]), pattern)
	for _, f := range fields[1:] {
		cond = cond.Or(fmt.Sprintf("%s ILIKE ?", f), pattern)
	}

	tx := a.db.WithContext(ctx).Table(table).Where(cond)
	if limit > 0 {
		tx = tx.Limit(limit)
	}
	var rows []map[string]any
	if err := tx.Find(&rows).Error; err != nil {
		return nil, wrap("search", table, translateGormErr(err))
	}
	out := make([]Row, len(rows))
	for i, m := range rows {
		out[i] = Row(m)
	}
	return out, nil
}

// RawQuery is the one place the abstraction leaks, and it leaks loudly:
// raw SQL is only meaningful on the relational-driver backend.
func (a *gormAdapter) RawQuery(ctx context.Context, sql string, args ...any) ([]Row, error) {
	return nil, fmt.Errorf("raw query on gorm backend: %w", ErrUnsupportedOperation)
}

// filtered applies the normalized filter map as builder calls.
func (a *gormAdapter) filtered(ctx context.Context, table string, filters map[string]any) (*gorm.DB, error) {
	if err := checkTable(table); err != nil {
		return nil, err
	}
	keys, active := normalizeFilters(filters)
	if err := checkColumns(table, keys...); err != nil {
		return nil, err
	}

	tx := a.db.WithContext(ctx).Table(table)
	for _, k := range keys {
		v := active[k]
		if isSlice(v) {
			tx = tx.Where(fmt.Sprintf("%s IN ?", k), v)
		} else {
			tx = tx.Where(fmt.Sprintf("%s = ?", k), v)
		}
	}
	return tx, nil
}

// translateGormErr folds gorm's translated errors into the adapter taxonomy.
// Requires TranslateError enabled on the connection.
func translateGormErr(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey),
		errors.Is(err, gorm.ErrForeignKeyViolated),
		errors.Is(err, gorm.ErrCheckConstraintViolated):
		return errors.Join(ErrConstraintViolation, err)
	case errors.Is(err, context.DeadlineExceeded):
		return errors.Join(ErrConnection, err)
	}
	return err
}
