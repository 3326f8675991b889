package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"go-clinic-backend/internal/domain/entity"
	"go-clinic-backend/internal/domain/repository"
)

// AuditService records who did what. Failures are logged and swallowed so
// the audit trail never breaks the operation it describes.
type AuditService interface {
	Record(ctx context.Context, userID *uuid.UUID, action string, metadata map[string]interface{})
}

type auditService struct {
	log  *logrus.Logger
	repo repository.AuditLogRepository
}

func NewAuditService(log *logrus.Logger, repo repository.AuditLogRepository) AuditService {
	return &auditService{log: log, repo: repo}
}

func (s *auditService) Record(ctx context.Context, userID *uuid.UUID, action string, metadata map[string]interface{}) {
	entry := &entity.AuditLog{
		UserID:   userID,
		Action:   action,
		Metadata: entity.JSON(metadata),
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		s.log.Warnf("Failed to record audit entry %s: %+v", action, err)
	}
}
