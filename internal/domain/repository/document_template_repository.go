package repository

import (
	"context"

	"go-clinic-backend/internal/domain/entity"
)

type DocumentTemplateRepository interface {
	FindAll(ctx context.Context, filters map[string]any, p Pagination) ([]entity.DocumentTemplate, Meta, error)
	FindByID(ctx context.Context, id int64) (*entity.DocumentTemplate, error)
	Create(ctx context.Context, template *entity.DocumentTemplate) error
	Update(ctx context.Context, id int64, values map[string]any) (*entity.DocumentTemplate, error)
	Delete(ctx context.Context, id int64) (bool, error)
}
