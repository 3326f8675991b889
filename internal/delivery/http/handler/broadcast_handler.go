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

type BroadcastHandler struct {
	broadcastUsecase usecase.BroadcastUsecase
	validator        *validator.CustomValidator
}

func NewBroadcastHandler(broadcastUsecase usecase.BroadcastUsecase, validator *validator.CustomValidator) *BroadcastHandler {
	return &BroadcastHandler{
		broadcastUsecase: broadcastUsecase,
		validator:        validator,
	}
}

func (h *BroadcastHandler) List(w http.ResponseWriter, r *http.Request) {
	filters := map[string]any{
		"audience": r.URL.Query().Get("audience"),
	}

	broadcasts, meta, err := h.broadcastUsecase.GetBroadcasts(r.Context(), filters, parsePagination(r))
	if err != nil {
		response.InternalServerError(w, "Failed to list broadcasts")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "", broadcasts, meta)
}

func (h *BroadcastHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		response.BadRequest(w, "Invalid broadcast id")
		return
	}

	broadcast, err := h.broadcastUsecase.GetBroadcast(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrBroadcastNotFound):
			response.NotFound(w, "Broadcast not found")
		default:
			response.InternalServerError(w, "Failed to load broadcast")
		}
		return
	}

	response.Success(w, http.StatusOK, "", broadcast)
}

func (h *BroadcastHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateBroadcastRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	broadcast, err := h.broadcastUsecase.SendBroadcast(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidStatusValue):
			response.BadRequest(w, "Invalid audience value")
		default:
			response.InternalServerError(w, "Failed to send broadcast")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Broadcast sent successfully", broadcast)
}
