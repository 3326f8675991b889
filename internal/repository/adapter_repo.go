package repository

import (
	"context"
	"fmt"

	"go-clinic-backend/internal/dataaccess"
	domainRepo "go-clinic-backend/internal/domain/repository"
)

// adapterRepo is the shared core of the repositories that delegate to the
// query adapter instead of talking to a backend client directly. The
// adapter is the parity mechanism for these entities: one implementation
// serves both backends.
type adapterRepo struct {
	adapter dataaccess.Adapter
	table   string
}

func (r *adapterRepo) findAll(ctx context.Context, filters map[string]any, p domainRepo.Pagination, orderBy string, desc bool) ([]dataaccess.Row, domainRepo.Meta, error) {
	p = p.Normalize()
	rows, total, err := r.adapter.Query(ctx, r.table, dataaccess.QueryOptions{
		Filters:   filters,
		OrderBy:   orderBy,
		OrderDesc: desc,
		Limit:     p.Limit,
		Offset:    p.Offset(),
	})
	if err != nil {
		return nil, domainRepo.Meta{}, fmt.Errorf("find %s: %w", r.table, err)
	}
	return rows, domainRepo.NewMeta(p, total), nil
}

func (r *adapterRepo) findByID(ctx context.Context, id any) (dataaccess.Row, error) {
	row, err := r.adapter.FindByID(ctx, r.table, id, "id")
	if err != nil {
		return nil, fmt.Errorf("find %s %v: %w", r.table, id, err)
	}
	return row, nil
}

func (r *adapterRepo) insert(ctx context.Context, values dataaccess.Row) (dataaccess.Row, error) {
	row, err := r.adapter.Insert(ctx, r.table, values)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", r.table, err)
	}
	return row, nil
}

func (r *adapterRepo) update(ctx context.Context, id any, values map[string]any) (dataaccess.Row, error) {
	row, err := r.adapter.Update(ctx, r.table, id, dataaccess.Row(values), "id")
	if err != nil {
		return nil, fmt.Errorf("update %s %v: %w", r.table, id, err)
	}
	return row, nil
}

func (r *adapterRepo) delete(ctx context.Context, id any) (bool, error) {
	removed, err := r.adapter.Delete(ctx, r.table, id, "id")
	if err != nil {
		return false, fmt.Errorf("delete %s %v: %w", r.table, id, err)
	}
	return removed, nil
}

func (r *adapterRepo) search(ctx context.Context, query string, fields []string) ([]dataaccess.Row, error) {
	rows, err := r.adapter.Search(ctx, r.table, query, fields, 0)
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", r.table, err)
	}
	return rows, nil
}
