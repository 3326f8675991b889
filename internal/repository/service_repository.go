package repository

import (
	"context"

	"go-clinic-backend/internal/dataaccess"
	"go-clinic-backend/internal/domain/entity"
	domainRepo "go-clinic-backend/internal/domain/repository"
)

type serviceRepository struct {
	adapterRepo
}

func NewServiceRepository(adapter dataaccess.Adapter) domainRepo.ServiceRepository {
	return &serviceRepository{adapterRepo{adapter: adapter, table: "services"}}
}

func (r *serviceRepository) FindAll(ctx context.Context, filters map[string]any, p domainRepo.Pagination) ([]entity.Service, domainRepo.Meta, error) {
	rows, meta, err := r.findAll(ctx, filters, p, "name", false)
	if err != nil {
		return nil, domainRepo.Meta{}, err
	}
	return rowsToServices(rows), meta, nil
}

func (r *serviceRepository) FindByID(ctx context.Context, id int64) (*entity.Service, error) {
	row, err := r.findByID(ctx, id)
	if err != nil || row == nil {
		return nil, err
	}
	service := rowToService(row)
	return &service, nil
}

func (r *serviceRepository) Create(ctx context.Context, service *entity.Service) error {
	row, err := r.insert(ctx, dataaccess.Row{
		"name":        service.Name,
		"description": service.Description,
		"price_cents": service.PriceCents,
		"clinic_tag":  service.ClinicTag,
		"is_active":   service.IsActive,
	})
	if err != nil {
		return err
	}
	*service = rowToService(row)
	return nil
}

func (r *serviceRepository) Update(ctx context.Context, id int64, values map[string]any) (*entity.Service, error) {
	row, err := r.update(ctx, id, values)
	if err != nil {
		return nil, err
	}
	service := rowToService(row)
	return &service, nil
}

func (r *serviceRepository) Delete(ctx context.Context, id int64) (bool, error) {
	return r.delete(ctx, id)
}

func (r *serviceRepository) Search(ctx context.Context, query string, fields []string) ([]entity.Service, error) {
	rows, err := r.search(ctx, query, fields)
	if err != nil {
		return nil, err
	}
	return rowsToServices(rows), nil
}

func rowToService(row dataaccess.Row) entity.Service {
	return entity.Service{
		ID:          row.Int64("id"),
		Name:        row.String("name"),
		Description: row.String("description"),
		PriceCents:  row.Int64("price_cents"),
		ClinicTag:   row.String("clinic_tag"),
		IsActive:    row.Bool("is_active"),
		CreatedAt:   row.Time("created_at"),
		UpdatedAt:   row.Time("updated_at"),
	}
}

func rowsToServices(rows []dataaccess.Row) []entity.Service {
	out := make([]entity.Service, len(rows))
	for i, row := range rows {
		out[i] = rowToService(row)
	}
	return out
}
