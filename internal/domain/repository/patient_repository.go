package repository

import (
	"context"

	"go-clinic-backend/internal/domain/entity"
)

// PatientRepository has a sibling implementation per backend.
type PatientRepository interface {
	FindAll(ctx context.Context, filters map[string]any, p Pagination) ([]entity.Patient, Meta, error)
	// FindByID returns (nil, nil) when no patient matches.
	FindByID(ctx context.Context, id int64) (*entity.Patient, error)
	Create(ctx context.Context, patient *entity.Patient) error
	Update(ctx context.Context, id int64, values map[string]any) (*entity.Patient, error)
	// Delete reports whether a row was actually removed.
	Delete(ctx context.Context, id int64) (bool, error)
	// Search is a case-insensitive partial match ORed across fields.
	Search(ctx context.Context, query string, fields []string) ([]entity.Patient, error)
}
