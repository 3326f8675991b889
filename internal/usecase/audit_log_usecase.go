package usecase

import (
	"context"

	"github.com/sirupsen/logrus"

	"go-clinic-backend/internal/domain/entity"
	"go-clinic-backend/internal/domain/repository"
)

type AuditLogUsecase interface {
	GetAuditLogs(ctx context.Context, filters map[string]any, p repository.Pagination) ([]entity.AuditLog, repository.Meta, error)
}

type auditLogUsecase struct {
	log          *logrus.Logger
	auditLogRepo repository.AuditLogRepository
}

func NewAuditLogUsecase(log *logrus.Logger, auditLogRepo repository.AuditLogRepository) AuditLogUsecase {
	return &auditLogUsecase{log: log, auditLogRepo: auditLogRepo}
}

func (u *auditLogUsecase) GetAuditLogs(ctx context.Context, filters map[string]any, p repository.Pagination) ([]entity.AuditLog, repository.Meta, error) {
	logs, meta, err := u.auditLogRepo.FindAll(ctx, filters, p)
	if err != nil {
		u.log.Warnf("Failed to list audit logs: %+v", err)
		return nil, repository.Meta{}, err
	}
	return logs, meta, nil
}
