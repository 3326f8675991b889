package dto

type CreatePatientRequest struct {
	FirstName  string `json:"first_name" validate:"required,min=2"`
	LastName   string `json:"last_name" validate:"required,min=2"`
	DocumentID string `json:"document_id" validate:"required"`
	Email      string `json:"email" validate:"omitempty,email"`
	Phone      string `json:"phone" validate:"omitempty,min=6,max=30"`
	BirthDate  string `json:"birth_date" validate:"required"` // Format: YYYY-MM-DD
	Gender     string `json:"gender" validate:"omitempty,oneof=M F"`
	Address    string `json:"address" validate:"omitempty"`
}

type UpdatePatientRequest struct {
	FirstName string `json:"first_name" validate:"omitempty,min=2"`
	LastName  string `json:"last_name" validate:"omitempty,min=2"`
	Email     string `json:"email" validate:"omitempty,email"`
	Phone     string `json:"phone" validate:"omitempty,min=6,max=30"`
	Gender    string `json:"gender" validate:"omitempty,oneof=M F"`
	Address   string `json:"address" validate:"omitempty"`
}
