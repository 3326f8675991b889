package repository

import (
	"context"

	"go-clinic-backend/internal/domain/entity"
)

type ConsultationRepository interface {
	FindAll(ctx context.Context, filters map[string]any, p Pagination) ([]entity.Consultation, Meta, error)
	FindByID(ctx context.Context, id int64) (*entity.Consultation, error)
	Create(ctx context.Context, consultation *entity.Consultation) error
	Update(ctx context.Context, id int64, values map[string]any) (*entity.Consultation, error)
	Delete(ctx context.Context, id int64) (bool, error)
	// FindByPatient returns the patient's consultation history, newest first.
	FindByPatient(ctx context.Context, patientID int64, p Pagination) ([]entity.Consultation, Meta, error)
}
