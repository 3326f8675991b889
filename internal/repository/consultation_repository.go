package repository

import (
	"context"

	"go-clinic-backend/internal/dataaccess"
	"go-clinic-backend/internal/domain/entity"
	domainRepo "go-clinic-backend/internal/domain/repository"
)

type consultationRepository struct {
	adapterRepo
}

func NewConsultationRepository(adapter dataaccess.Adapter) domainRepo.ConsultationRepository {
	return &consultationRepository{adapterRepo{adapter: adapter, table: "consultations"}}
}

func (r *consultationRepository) FindAll(ctx context.Context, filters map[string]any, p domainRepo.Pagination) ([]entity.Consultation, domainRepo.Meta, error) {
	rows, meta, err := r.findAll(ctx, filters, p, "created_at", true)
	if err != nil {
		return nil, domainRepo.Meta{}, err
	}
	return rowsToConsultations(rows), meta, nil
}

func (r *consultationRepository) FindByID(ctx context.Context, id int64) (*entity.Consultation, error) {
	row, err := r.findByID(ctx, id)
	if err != nil || row == nil {
		return nil, err
	}
	consultation := rowToConsultation(row)
	return &consultation, nil
}

func (r *consultationRepository) Create(ctx context.Context, consultation *entity.Consultation) error {
	values := dataaccess.Row{
		"patient_id": consultation.PatientID,
		"doctor_id":  consultation.DoctorID,
		"diagnosis":  consultation.Diagnosis,
		"treatment":  consultation.Treatment,
		"notes":      consultation.Notes,
	}
	if consultation.AppointmentID != nil {
		values["appointment_id"] = *consultation.AppointmentID
	}
	row, err := r.insert(ctx, values)
	if err != nil {
		return err
	}
	*consultation = rowToConsultation(row)
	return nil
}

func (r *consultationRepository) Update(ctx context.Context, id int64, values map[string]any) (*entity.Consultation, error) {
	row, err := r.update(ctx, id, values)
	if err != nil {
		return nil, err
	}
	consultation := rowToConsultation(row)
	return &consultation, nil
}

func (r *consultationRepository) Delete(ctx context.Context, id int64) (bool, error) {
	return r.delete(ctx, id)
}

func (r *consultationRepository) FindByPatient(ctx context.Context, patientID int64, p domainRepo.Pagination) ([]entity.Consultation, domainRepo.Meta, error) {
	return r.FindAll(ctx, map[string]any{"patient_id": patientID}, p)
}

func rowToConsultation(row dataaccess.Row) entity.Consultation {
	return entity.Consultation{
		ID:            row.Int64("id"),
		AppointmentID: row.Int64Ptr("appointment_id"),
		PatientID:     row.Int64("patient_id"),
		DoctorID:      row.Int64("doctor_id"),
		Diagnosis:     row.String("diagnosis"),
		Treatment:     row.String("treatment"),
		Notes:         row.String("notes"),
		CreatedAt:     row.Time("created_at"),
		UpdatedAt:     row.Time("updated_at"),
	}
}

func rowsToConsultations(rows []dataaccess.Row) []entity.Consultation {
	out := make([]entity.Consultation, len(rows))
	for i, row := range rows {
		out[i] = rowToConsultation(row)
	}
	return out
}
