package repository

import (
	"context"
	"encoding/json"

	"go-clinic-backend/internal/dataaccess"
	"go-clinic-backend/internal/domain/entity"
	domainRepo "go-clinic-backend/internal/domain/repository"
)

type auditLogRepository struct {
	adapterRepo
}

func NewAuditLogRepository(adapter dataaccess.Adapter) domainRepo.AuditLogRepository {
	return &auditLogRepository{adapterRepo{adapter: adapter, table: "audit_logs"}}
}

func (r *auditLogRepository) Create(ctx context.Context, log *entity.AuditLog) error {
	values := dataaccess.Row{"action": log.Action}
	if log.UserID != nil {
		values["user_id"] = *log.UserID
	}
	if len(log.Metadata) > 0 {
		raw, err := json.Marshal(log.Metadata)
		if err != nil {
			return err
		}
		values["metadata"] = raw
	}
	row, err := r.insert(ctx, values)
	if err != nil {
		return err
	}
	*log = rowToAuditLog(row)
	return nil
}

func (r *auditLogRepository) FindAll(ctx context.Context, filters map[string]any, p domainRepo.Pagination) ([]entity.AuditLog, domainRepo.Meta, error) {
	rows, meta, err := r.findAll(ctx, filters, p, "created_at", true)
	if err != nil {
		return nil, domainRepo.Meta{}, err
	}
	out := make([]entity.AuditLog, len(rows))
	for i, row := range rows {
		out[i] = rowToAuditLog(row)
	}
	return out, meta, nil
}

func rowToAuditLog(row dataaccess.Row) entity.AuditLog {
	log := entity.AuditLog{
		ID:        row.Int64("id"),
		UserID:    row.UUIDPtr("user_id"),
		Action:    row.String("action"),
		CreatedAt: row.Time("created_at"),
	}
	switch v := row["metadata"].(type) {
	case map[string]any:
		log.Metadata = entity.JSON(v)
	case []byte:
		_ = json.Unmarshal(v, &log.Metadata)
	case string:
		_ = json.Unmarshal([]byte(v), &log.Metadata)
	}
	return log
}
