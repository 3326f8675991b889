package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"go-clinic-backend/config"
	"go-clinic-backend/internal/delivery/dto"
	"go-clinic-backend/internal/domain/entity"
	"go-clinic-backend/internal/usecase"
	"go-clinic-backend/pkg/response"
	"go-clinic-backend/pkg/validator"
)

type ReferralHandler struct {
	referralUsecase usecase.ReferralUsecase
	validator       *validator.CustomValidator
}

func NewReferralHandler(referralUsecase usecase.ReferralUsecase, validator *validator.CustomValidator) *ReferralHandler {
	return &ReferralHandler{
		referralUsecase: referralUsecase,
		validator:       validator,
	}
}

func (h *ReferralHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateReferralRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	referral, err := h.referralUsecase.CreateReferral(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrEmptyReferralReason), errors.Is(err, usecase.ErrSelfReferral):
			response.BadRequest(w, err.Error())
		case errors.Is(err, usecase.ErrPatientNotFound):
			response.NotFound(w, "Patient not found")
		case errors.Is(err, usecase.ErrDoctorNotFound):
			response.NotFound(w, "Doctor not found")
		case errors.Is(err, config.ErrMissingClinicTag):
			response.InternalServerError(w, "Clinic tag is not configured")
		default:
			response.InternalServerError(w, "Failed to create referral")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Referral created successfully", referral)
}

func (h *ReferralHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		response.BadRequest(w, "Invalid referral id")
		return
	}

	referral, err := h.referralUsecase.GetReferral(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrReferralNotFound):
			response.NotFound(w, "Referral not found")
		default:
			response.InternalServerError(w, "Failed to load referral")
		}
		return
	}

	response.Success(w, http.StatusOK, "", referral)
}

// Transition moves the referral along the status graph. Illegal moves come
// back as a conflict, never as a silent no-op.
func (h *ReferralHandler) Transition(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		response.BadRequest(w, "Invalid referral id")
		return
	}

	var req dto.UpdateReferralStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	referral, err := h.referralUsecase.TransitionReferral(r.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrReferralNotFound):
			response.NotFound(w, "Referral not found")
		case errors.Is(err, entity.ErrReferralTransition):
			response.Conflict(w, "Illegal referral status transition")
		case errors.Is(err, usecase.ErrInvalidStatusValue):
			response.BadRequest(w, "Invalid status value")
		default:
			response.InternalServerError(w, "Failed to transition referral")
		}
		return
	}

	response.Success(w, http.StatusOK, "Referral status updated", referral)
}

// ListByDoctor lists referrals for a doctor. The role query parameter
// selects the side: referring (default) or received.
func (h *ReferralHandler) ListByDoctor(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		response.BadRequest(w, "Invalid doctor id")
		return
	}

	role := entity.ReferralRoleReferring
	if r.URL.Query().Get("role") == string(entity.ReferralRoleReceived) {
		role = entity.ReferralRoleReceived
	}

	referrals, err := h.referralUsecase.GetDoctorReferrals(r.Context(), id, role)
	if err != nil {
		response.InternalServerError(w, "Failed to list referrals")
		return
	}

	response.Success(w, http.StatusOK, "", referrals)
}

func (h *ReferralHandler) ListByPatient(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		response.BadRequest(w, "Invalid patient id")
		return
	}

	referrals, err := h.referralUsecase.GetPatientReferrals(r.Context(), id)
	if err != nil {
		response.InternalServerError(w, "Failed to list referrals")
		return
	}

	response.Success(w, http.StatusOK, "", referrals)
}
