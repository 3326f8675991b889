package dataaccess

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-clinic-backend/internal/infrastructure/metrics"
)

// pgxAdapter is the relational-driver backend: hand-built parameterized SQL
// over a shared pgxpool. The only backend that supports RawQuery.
type pgxAdapter struct {
	pool *pgxpool.Pool
}

// NewPgxAdapter builds the pgx-backed adapter around an owned pool.
func NewPgxAdapter(pool *pgxpool.Pool) Adapter {
	return &pgxAdapter{pool: pool}
}

func (a *pgxAdapter) Query(ctx context.Context, table string, opts QueryOptions) ([]Row, int64, error) {
	start := time.Now()
	rows, total, err := a.query(ctx, table, opts)
	metrics.ObserveQuery("pgx", "query", table, start, err)
	return rows, total, err
}

func (a *pgxAdapter) query(ctx context.Context, table string, opts QueryOptions) ([]Row, int64, error) {
	sql, args, err := buildSelect(table, opts)
	if err != nil {
		return nil, 0, err
	}
	out, err := a.collect(ctx, sql, args)
	if err != nil {
		return nil, 0, wrap("query", table, translatePgxErr(err))
	}

	countSQL, countArgs, err := buildCount(table, opts.Filters)
	if err != nil {
		return nil, 0, err
	}
	var total int64
	if err := a.pool.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, wrap("count", table, translatePgxErr(err))
	}
	return out, total, nil
}

func (a *pgxAdapter) FindByID(ctx context.Context, table string, id any, idColumn string) (Row, error) {
	start := time.Now()
	row, err := a.findByID(ctx, table, id, idColumn)
	metrics.ObserveQuery("pgx", "find_by_id", table, start, err)
	return row, err
}

func (a *pgxAdapter) findByID(ctx context.Context, table string, id any, idColumn string) (Row, error) {
	rows, _, err := a.query(ctx, table, QueryOptions{
		Filters: map[string]any{idColumn: id},
		Limit:   1,
	})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (a *pgxAdapter) Insert(ctx context.Context, table string, values Row) (Row, error) {
	start := time.Now()
	row, err := a.returningOne(ctx, table, "insert", func() (string, []any, error) {
		return buildInsert(table, values)
	})
	metrics.ObserveQuery("pgx", "insert", table, start, err)
	return row, err
}

func (a *pgxAdapter) Update(ctx context.Context, table string, id any, values Row, idColumn string) (Row, error) {
	start := time.Now()
	row, err := a.returningOne(ctx, table, "update", func() (string, []any, error) {
		return buildUpdate(table, id, values, idColumn)
	})
	if err == nil && row == nil {
		err = wrap("update", table, ErrNotFound)
	}
	metrics.ObserveQuery("pgx", "update", table, start, err)
	return row, err
}

func (a *pgxAdapter) UpdateWhere(ctx context.Context, table string, id any, values Row, idColumn string, guards map[string]any) (Row, error) {
	start := time.Now()
	row, err := a.returningOne(ctx, table, "guarded update", func() (string, []any, error) {
		return buildGuardedUpdate(table, id, values, idColumn, guards)
	})
	if err == nil && row == nil {
		err = wrap("guarded update", table, ErrNotFound)
	}
	metrics.ObserveQuery("pgx", "update_where", table, start, err)
	return row, err
}

func (a *pgxAdapter) Delete(ctx context.Context, table string, id any, idColumn string) (bool, error) {
	start := time.Now()
	sql, err := buildDelete(table, idColumn)
	if err != nil {
		metrics.ObserveQuery("pgx", "delete", table, start, err)
		return false, err
	}
	tag, err := a.pool.Exec(ctx, sql, id)
	if err != nil {
		err = wrap("delete", table, translatePgxErr(err))
	}
	metrics.ObserveQuery("pgx", "delete", table, start, err)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (a *pgxAdapter) Search(ctx context.Context, table, query string, fields []string, limit int) ([]Row, error) {
	start := time.Now()
	sql, err := buildSearch(table, fields, limit)
	if err != nil {
		metrics.ObserveQuery("pgx", "search", table, start, err)
		return nil, err
	}
	rows, err := a.collect(ctx, sql, []any{"%" + query + "%"})
	if err != nil {
		err = wrap("search", table, translatePgxErr(err))
	}
	metrics.ObserveQuery("pgx", "search", table, start, err)
	return rows, err
}

func (a *pgxAdapter) RawQuery(ctx context.Context, sql string, args ...any) ([]Row, error) {
	start := time.Now()
	rows, err := a.collect(ctx, sql, args)
	if err != nil {
		err = wrap("raw query", "-", translatePgxErr(err))
	}
	metrics.ObserveQuery("pgx", "raw_query", "-", start, err)
	return rows, err
}

// returningOne runs a statement ending in RETURNING * and yields the single
// produced row, or nil when the statement matched nothing.
func (a *pgxAdapter) returningOne(ctx context.Context, table, op string, build func() (string, []any, error)) (Row, error) {
	sql, args, err := build()
	if err != nil {
		return nil, err
	}
	rows, err := a.collect(ctx, sql, args)
	if err != nil {
		return nil, wrap(op, table, translatePgxErr(err))
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (a *pgxAdapter) collect(ctx context.Context, sql string, args []any) ([]Row, error) {
	rows, err := a.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	maps, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		return nil, err
	}
	out := make([]Row, len(maps))
	for i, m := range maps {
		out[i] = Row(m)
	}
	return out, nil
}

// translatePgxErr folds driver errors into the adapter taxonomy.
func translatePgxErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505", "23503", "23514": // unique, FK, check
			return errors.Join(ErrConstraintViolation, err)
		case "42P01", "42703", "42601": // undefined table/column, syntax
			return errors.Join(ErrMalformedQuery, err)
		}
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) || pgconn.Timeout(err) {
		return errors.Join(ErrConnection, err)
	}
	return err
}
