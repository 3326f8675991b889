package repository

import (
	"context"

	"go-clinic-backend/internal/domain/entity"
)

type AppointmentRepository interface {
	FindAll(ctx context.Context, filters map[string]any, p Pagination) ([]entity.Appointment, Meta, error)
	FindByID(ctx context.Context, id int64) (*entity.Appointment, error)
	Create(ctx context.Context, appointment *entity.Appointment) error
	Update(ctx context.Context, id int64, values map[string]any) (*entity.Appointment, error)
	Delete(ctx context.Context, id int64) (bool, error)
	FindByDoctor(ctx context.Context, doctorID int64, p Pagination) ([]entity.Appointment, Meta, error)
	FindByPatient(ctx context.Context, patientID int64, p Pagination) ([]entity.Appointment, Meta, error)
}
