package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"go-clinic-backend/config"
	"go-clinic-backend/internal/delivery/dto"
	"go-clinic-backend/internal/domain/entity"
	"go-clinic-backend/internal/usecase"
	"go-clinic-backend/pkg/response"
	"go-clinic-backend/pkg/validator"
)

type BillingHandler struct {
	billingUsecase usecase.BillingUsecase
	validator      *validator.CustomValidator
}

func NewBillingHandler(billingUsecase usecase.BillingUsecase, validator *validator.CustomValidator) *BillingHandler {
	return &BillingHandler{
		billingUsecase: billingUsecase,
		validator:      validator,
	}
}

// Service catalog

func (h *BillingHandler) ListServices(w http.ResponseWriter, r *http.Request) {
	filters := map[string]any{}
	if active := r.URL.Query().Get("active"); active != "" {
		filters["is_active"] = active == "true"
	}

	services, meta, err := h.billingUsecase.GetServices(r.Context(), filters, parsePagination(r))
	if err != nil {
		response.InternalServerError(w, "Failed to list services")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "", services, meta)
}

func (h *BillingHandler) GetService(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		response.BadRequest(w, "Invalid service id")
		return
	}

	svc, err := h.billingUsecase.GetService(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrServiceNotFound):
			response.NotFound(w, "Service not found")
		default:
			response.InternalServerError(w, "Failed to load service")
		}
		return
	}

	response.Success(w, http.StatusOK, "", svc)
}

func (h *BillingHandler) CreateService(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	svc, err := h.billingUsecase.CreateService(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, config.ErrMissingClinicTag):
			response.InternalServerError(w, "Clinic tag is not configured")
		default:
			response.InternalServerError(w, "Failed to create service")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Service created successfully", svc)
}

func (h *BillingHandler) UpdateService(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		response.BadRequest(w, "Invalid service id")
		return
	}

	var req dto.UpdateServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	svc, err := h.billingUsecase.UpdateService(r.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrServiceNotFound):
			response.NotFound(w, "Service not found")
		default:
			response.InternalServerError(w, "Failed to update service")
		}
		return
	}

	response.Success(w, http.StatusOK, "Service updated successfully", svc)
}

func (h *BillingHandler) DeleteService(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		response.BadRequest(w, "Invalid service id")
		return
	}

	if err := h.billingUsecase.DeleteService(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, usecase.ErrServiceNotFound):
			response.NotFound(w, "Service not found")
		default:
			response.InternalServerError(w, "Failed to delete service")
		}
		return
	}

	response.Success(w, http.StatusOK, "Service deleted successfully", nil)
}

func (h *BillingHandler) SearchServices(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		response.BadRequest(w, "Query parameter q is required")
		return
	}

	services, err := h.billingUsecase.SearchServices(r.Context(), query)
	if err != nil {
		response.InternalServerError(w, "Failed to search services")
		return
	}

	response.Success(w, http.StatusOK, "", services)
}

// Invoices

func (h *BillingHandler) ListInvoices(w http.ResponseWriter, r *http.Request) {
	filters := map[string]any{
		"status": r.URL.Query().Get("status"),
	}
	if patientID, err := strconv.ParseInt(r.URL.Query().Get("patient_id"), 10, 64); err == nil {
		filters["patient_id"] = patientID
	}

	invoices, meta, err := h.billingUsecase.GetInvoices(r.Context(), filters, parsePagination(r))
	if err != nil {
		response.InternalServerError(w, "Failed to list invoices")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "", invoices, meta)
}

func (h *BillingHandler) GetInvoice(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		response.BadRequest(w, "Invalid invoice id")
		return
	}

	invoice, err := h.billingUsecase.GetInvoice(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvoiceNotFound):
			response.NotFound(w, "Invoice not found")
		default:
			response.InternalServerError(w, "Failed to load invoice")
		}
		return
	}

	response.Success(w, http.StatusOK, "", invoice)
}

func (h *BillingHandler) CreateInvoice(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	invoice, err := h.billingUsecase.CreateInvoice(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrPatientNotFound):
			response.NotFound(w, "Patient not found")
		case errors.Is(err, usecase.ErrServiceNotFound):
			response.NotFound(w, "Service not found")
		case errors.Is(err, usecase.ErrServiceInactive):
			response.Conflict(w, "Service is not active")
		case errors.Is(err, config.ErrMissingClinicTag):
			response.InternalServerError(w, "Clinic tag is not configured")
		default:
			response.InternalServerError(w, "Failed to create invoice")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Invoice created successfully", invoice)
}

func (h *BillingHandler) TransitionInvoice(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		response.BadRequest(w, "Invalid invoice id")
		return
	}

	var req dto.UpdateInvoiceStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	invoice, err := h.billingUsecase.TransitionInvoice(r.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvoiceNotFound):
			response.NotFound(w, "Invoice not found")
		case errors.Is(err, entity.ErrInvoiceTransition):
			response.Conflict(w, "Illegal invoice status transition")
		case errors.Is(err, usecase.ErrInvalidStatusValue):
			response.BadRequest(w, "Invalid status value")
		default:
			response.InternalServerError(w, "Failed to transition invoice")
		}
		return
	}

	response.Success(w, http.StatusOK, "Invoice status updated", invoice)
}

func (h *BillingHandler) ListPatientInvoices(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		response.BadRequest(w, "Invalid patient id")
		return
	}

	invoices, meta, err := h.billingUsecase.GetPatientInvoices(r.Context(), id, parsePagination(r))
	if err != nil {
		response.InternalServerError(w, "Failed to list invoices")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "", invoices, meta)
}
