package dto

import "time"

type CreateTemplateRequest struct {
	Name        string `json:"name" validate:"required,min=2"`
	Description string `json:"description" validate:"omitempty"`
	Body        string `json:"body" validate:"required"`
}

type UpdateTemplateRequest struct {
	Name        string `json:"name" validate:"omitempty,min=2"`
	Description string `json:"description" validate:"omitempty"`
	Body        string `json:"body" validate:"omitempty"`
}

type RenderDocumentRequest struct {
	PatientID      int64  `json:"patient_id" validate:"required"`
	ConsultationID *int64 `json:"consultation_id,omitempty"`
}

type RenderedDocumentResponse struct {
	TemplateID   int64     `json:"template_id"`
	TemplateName string    `json:"template_name"`
	Content      string    `json:"content"`
	GeneratedAt  time.Time `json:"generated_at"`
}
