package dto

type CreateAppointmentRequest struct {
	PatientID   int64  `json:"patient_id" validate:"required"`
	DoctorID    int64  `json:"doctor_id" validate:"required"`
	ScheduledAt string `json:"scheduled_at" validate:"required"` // RFC 3339
	Reason      string `json:"reason" validate:"omitempty"`
}

type UpdateAppointmentRequest struct {
	ScheduledAt string `json:"scheduled_at" validate:"omitempty"`
	Status      string `json:"status" validate:"omitempty,oneof=scheduled confirmed cancelled completed"`
	Reason      string `json:"reason" validate:"omitempty"`
	Notes       string `json:"notes" validate:"omitempty"`
}
