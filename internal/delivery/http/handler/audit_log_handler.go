package handler

import (
	"net/http"

	"github.com/google/uuid"

	"go-clinic-backend/internal/usecase"
	"go-clinic-backend/pkg/response"
)

type AuditLogHandler struct {
	auditLogUsecase usecase.AuditLogUsecase
}

func NewAuditLogHandler(auditLogUsecase usecase.AuditLogUsecase) *AuditLogHandler {
	return &AuditLogHandler{auditLogUsecase: auditLogUsecase}
}

func (h *AuditLogHandler) List(w http.ResponseWriter, r *http.Request) {
	filters := map[string]any{
		"action": r.URL.Query().Get("action"),
	}
	if userID, err := uuid.Parse(r.URL.Query().Get("user_id")); err == nil {
		filters["user_id"] = userID
	}

	logs, meta, err := h.auditLogUsecase.GetAuditLogs(r.Context(), filters, parsePagination(r))
	if err != nil {
		response.InternalServerError(w, "Failed to list audit logs")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "", logs, meta)
}
