package dto

type CreateServiceRequest struct {
	Name        string `json:"name" validate:"required,min=2"`
	Description string `json:"description" validate:"omitempty"`
	PriceCents  int64  `json:"price_cents" validate:"required,gte=0"`
}

type UpdateServiceRequest struct {
	Name        string `json:"name" validate:"omitempty,min=2"`
	Description string `json:"description" validate:"omitempty"`
	PriceCents  *int64 `json:"price_cents,omitempty" validate:"omitempty,gte=0"`
	IsActive    *bool  `json:"is_active,omitempty"`
}

type InvoiceItemRequest struct {
	ServiceID int64 `json:"service_id" validate:"required"`
	Quantity  int   `json:"quantity" validate:"required,gte=1"`
}

type CreateInvoiceRequest struct {
	PatientID int64                `json:"patient_id" validate:"required"`
	Items     []InvoiceItemRequest `json:"items" validate:"required,min=1,dive"`
}

type UpdateInvoiceStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=draft issued paid cancelled"`
}
