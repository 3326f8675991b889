package repository

import (
	"context"

	"go-clinic-backend/internal/dataaccess"
	"go-clinic-backend/internal/domain/entity"
	domainRepo "go-clinic-backend/internal/domain/repository"
)

type appointmentRepository struct {
	adapterRepo
}

func NewAppointmentRepository(adapter dataaccess.Adapter) domainRepo.AppointmentRepository {
	return &appointmentRepository{adapterRepo{adapter: adapter, table: "appointments"}}
}

func (r *appointmentRepository) FindAll(ctx context.Context, filters map[string]any, p domainRepo.Pagination) ([]entity.Appointment, domainRepo.Meta, error) {
	rows, meta, err := r.findAll(ctx, filters, p, "scheduled_at", false)
	if err != nil {
		return nil, domainRepo.Meta{}, err
	}
	return rowsToAppointments(rows), meta, nil
}

func (r *appointmentRepository) FindByID(ctx context.Context, id int64) (*entity.Appointment, error) {
	row, err := r.findByID(ctx, id)
	if err != nil || row == nil {
		return nil, err
	}
	appointment := rowToAppointment(row)
	return &appointment, nil
}

func (r *appointmentRepository) Create(ctx context.Context, appointment *entity.Appointment) error {
	row, err := r.insert(ctx, dataaccess.Row{
		"patient_id":   appointment.PatientID,
		"doctor_id":    appointment.DoctorID,
		"scheduled_at": appointment.ScheduledAt,
		"status":       string(appointment.Status),
		"reason":       appointment.Reason,
		"notes":        appointment.Notes,
	})
	if err != nil {
		return err
	}
	*appointment = rowToAppointment(row)
	return nil
}

func (r *appointmentRepository) Update(ctx context.Context, id int64, values map[string]any) (*entity.Appointment, error) {
	row, err := r.update(ctx, id, values)
	if err != nil {
		return nil, err
	}
	appointment := rowToAppointment(row)
	return &appointment, nil
}

func (r *appointmentRepository) Delete(ctx context.Context, id int64) (bool, error) {
	return r.delete(ctx, id)
}

func (r *appointmentRepository) FindByDoctor(ctx context.Context, doctorID int64, p domainRepo.Pagination) ([]entity.Appointment, domainRepo.Meta, error) {
	return r.FindAll(ctx, map[string]any{"doctor_id": doctorID}, p)
}

func (r *appointmentRepository) FindByPatient(ctx context.Context, patientID int64, p domainRepo.Pagination) ([]entity.Appointment, domainRepo.Meta, error) {
	return r.FindAll(ctx, map[string]any{"patient_id": patientID}, p)
}

func rowToAppointment(row dataaccess.Row) entity.Appointment {
	return entity.Appointment{
		ID:          row.Int64("id"),
		PatientID:   row.Int64("patient_id"),
		DoctorID:    row.Int64("doctor_id"),
		ScheduledAt: row.Time("scheduled_at"),
		Status:      entity.AppointmentStatus(row.String("status")),
		Reason:      row.String("reason"),
		Notes:       row.String("notes"),
		CreatedAt:   row.Time("created_at"),
		UpdatedAt:   row.Time("updated_at"),
	}
}

func rowsToAppointments(rows []dataaccess.Row) []entity.Appointment {
	out := make([]entity.Appointment, len(rows))
	for i, row := range rows {
		out[i] = rowToAppointment(row)
	}
	return out
}
