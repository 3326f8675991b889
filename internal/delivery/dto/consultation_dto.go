package dto

type CreateConsultationRequest struct {
	AppointmentID *int64 `json:"appointment_id,omitempty"`
	PatientID     int64  `json:"patient_id" validate:"required"`
	DoctorID      int64  `json:"doctor_id" validate:"required"`
	Diagnosis     string `json:"diagnosis" validate:"omitempty"`
	Treatment     string `json:"treatment" validate:"omitempty"`
	Notes         string `json:"notes" validate:"omitempty"`
}

type UpdateConsultationRequest struct {
	Diagnosis string `json:"diagnosis" validate:"omitempty"`
	Treatment string `json:"treatment" validate:"omitempty"`
	Notes     string `json:"notes" validate:"omitempty"`
}
