package repository

import (
	"context"

	"go-clinic-backend/internal/domain/entity"
)

type AuditLogRepository interface {
	Create(ctx context.Context, log *entity.AuditLog) error
	FindAll(ctx context.Context, filters map[string]any, p Pagination) ([]entity.AuditLog, Meta, error)
}
