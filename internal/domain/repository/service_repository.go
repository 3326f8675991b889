package repository

import (
	"context"

	"go-clinic-backend/internal/domain/entity"
)

type ServiceRepository interface {
	FindAll(ctx context.Context, filters map[string]any, p Pagination) ([]entity.Service, Meta, error)
	FindByID(ctx context.Context, id int64) (*entity.Service, error)
	Create(ctx context.Context, service *entity.Service) error
	Update(ctx context.Context, id int64, values map[string]any) (*entity.Service, error)
	Delete(ctx context.Context, id int64) (bool, error)
	Search(ctx context.Context, query string, fields []string) ([]entity.Service, error)
}
