package dto

type CreateDoctorRequest struct {
	FirstName     string `json:"first_name" validate:"required,min=2"`
	LastName      string `json:"last_name" validate:"required,min=2"`
	Specialty     string `json:"specialty" validate:"required"`
	Email         string `json:"email" validate:"omitempty,email"`
	Phone         string `json:"phone" validate:"omitempty,min=6,max=30"`
	LicenseNumber string `json:"license_number" validate:"omitempty"`
}

type UpdateDoctorRequest struct {
	FirstName     string `json:"first_name" validate:"omitempty,min=2"`
	LastName      string `json:"last_name" validate:"omitempty,min=2"`
	Specialty     string `json:"specialty" validate:"omitempty"`
	Email         string `json:"email" validate:"omitempty,email"`
	Phone         string `json:"phone" validate:"omitempty,min=6,max=30"`
	LicenseNumber string `json:"license_number" validate:"omitempty"`
}
