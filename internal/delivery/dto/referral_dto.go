package dto

type CreateReferralRequest struct {
	PatientID         int64  `json:"patient_id" validate:"required"`
	ReferringDoctorID int64  `json:"referring_doctor_id" validate:"required"`
	ReceivingDoctorID int64  `json:"receiving_doctor_id" validate:"required"`
	Reason            string `json:"reason" validate:"required"`
	Observations      string `json:"observations" validate:"omitempty"`
}

type UpdateReferralStatusRequest struct {
	Status       string `json:"status" validate:"required,oneof=pending accepted rejected completed"`
	Observations string `json:"observations" validate:"omitempty"`
}
