package repository

import (
	"context"

	"go-clinic-backend/internal/domain/entity"
)

type DoctorRepository interface {
	FindAll(ctx context.Context, filters map[string]any, p Pagination) ([]entity.Doctor, Meta, error)
	FindByID(ctx context.Context, id int64) (*entity.Doctor, error)
	Create(ctx context.Context, doctor *entity.Doctor) error
	Update(ctx context.Context, id int64, values map[string]any) (*entity.Doctor, error)
	Delete(ctx context.Context, id int64) (bool, error)
	Search(ctx context.Context, query string, fields []string) ([]entity.Doctor, error)
}
