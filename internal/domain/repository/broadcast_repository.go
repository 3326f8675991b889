package repository

import (
	"context"

	"go-clinic-backend/internal/domain/entity"
)

type BroadcastRepository interface {
	FindAll(ctx context.Context, filters map[string]any, p Pagination) ([]entity.Broadcast, Meta, error)
	FindByID(ctx context.Context, id int64) (*entity.Broadcast, error)
	Create(ctx context.Context, broadcast *entity.Broadcast) error
}
