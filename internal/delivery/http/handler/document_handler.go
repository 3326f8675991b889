package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"go-clinic-backend/internal/delivery/dto"
	"go-clinic-backend/internal/usecase"
	"go-clinic-backend/pkg/response"
	"go-clinic-backend/pkg/validator"
)

type DocumentHandler struct {
	documentUsecase usecase.DocumentUsecase
	validator       *validator.CustomValidator
}

func NewDocumentHandler(documentUsecase usecase.DocumentUsecase, validator *validator.CustomValidator) *DocumentHandler {
	return &DocumentHandler{
		documentUsecase: documentUsecase,
		validator:       validator,
	}
}

func (h *DocumentHandler) ListTemplates(w http.ResponseWriter, r *http.Request) {
	templates, meta, err := h.documentUsecase.GetTemplates(r.Context(), nil, parsePagination(r))
	if err != nil {
		response.InternalServerError(w, "Failed to list templates")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "", templates, meta)
}

func (h *DocumentHandler) GetTemplate(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		response.BadRequest(w, "Invalid template id")
		return
	}

	tpl, err := h.documentUsecase.GetTemplate(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrTemplateNotFound):
			response.NotFound(w, "Template not found")
		default:
			response.InternalServerError(w, "Failed to load template")
		}
		return
	}

	response.Success(w, http.StatusOK, "", tpl)
}

func (h *DocumentHandler) CreateTemplate(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	tpl, err := h.documentUsecase.CreateTemplate(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrTemplateInvalid):
			response.BadRequest(w, "Template body is invalid")
		default:
			response.InternalServerError(w, "Failed to create template")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Template created successfully", tpl)
}

func (h *DocumentHandler) UpdateTemplate(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		response.BadRequest(w, "Invalid template id")
		return
	}

	var req dto.UpdateTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	tpl, err := h.documentUsecase.UpdateTemplate(r.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrTemplateNotFound):
			response.NotFound(w, "Template not found")
		case errors.Is(err, usecase.ErrTemplateInvalid):
			response.BadRequest(w, "Template body is invalid")
		default:
			response.InternalServerError(w, "Failed to update template")
		}
		return
	}

	response.Success(w, http.StatusOK, "Template updated successfully", tpl)
}

func (h *DocumentHandler) DeleteTemplate(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		response.BadRequest(w, "Invalid template id")
		return
	}

	if err := h.documentUsecase.DeleteTemplate(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, usecase.ErrTemplateNotFound):
			response.NotFound(w, "Template not found")
		default:
			response.InternalServerError(w, "Failed to delete template")
		}
		return
	}

	response.Success(w, http.StatusOK, "Template deleted successfully", nil)
}

// Render produces a filled medical document from a template.
func (h *DocumentHandler) Render(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		response.BadRequest(w, "Invalid template id")
		return
	}

	var req dto.RenderDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	doc, err := h.documentUsecase.Render(r.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrTemplateNotFound):
			response.NotFound(w, "Template not found")
		case errors.Is(err, usecase.ErrPatientNotFound):
			response.NotFound(w, "Patient not found")
		case errors.Is(err, usecase.ErrConsultationNotFound):
			response.NotFound(w, "Consultation not found")
		case errors.Is(err, usecase.ErrTemplateInvalid):
			response.BadRequest(w, "Template body is invalid")
		default:
			response.InternalServerError(w, "Failed to render document")
		}
		return
	}

	response.Success(w, http.StatusOK, "", doc)
}
