package repository

import (
	"context"

	"go-clinic-backend/internal/dataaccess"
	"go-clinic-backend/internal/domain/entity"
	domainRepo "go-clinic-backend/internal/domain/repository"
)

type broadcastRepository struct {
	adapterRepo
}

func NewBroadcastRepository(adapter dataaccess.Adapter) domainRepo.BroadcastRepository {
	return &broadcastRepository{adapterRepo{adapter: adapter, table: "broadcasts"}}
}

func (r *broadcastRepository) FindAll(ctx context.Context, filters map[string]any, p domainRepo.Pagination) ([]entity.Broadcast, domainRepo.Meta, error) {
	rows, meta, err := r.findAll(ctx, filters, p, "created_at", true)
	if err != nil {
		return nil, domainRepo.Meta{}, err
	}
	return rowsToBroadcasts(rows), meta, nil
}

func (r *broadcastRepository) FindByID(ctx context.Context, id int64) (*entity.Broadcast, error) {
	row, err := r.findByID(ctx, id)
	if err != nil || row == nil {
		return nil, err
	}
	broadcast := rowToBroadcast(row)
	return &broadcast, nil
}

func (r *broadcastRepository) Create(ctx context.Context, broadcast *entity.Broadcast) error {
	values := dataaccess.Row{
		"title":    broadcast.Title,
		"body":     broadcast.Body,
		"audience": string(broadcast.Audience),
	}
	if broadcast.SentBy != nil {
		values["sent_by"] = *broadcast.SentBy
	}
	row, err := r.insert(ctx, values)
	if err != nil {
		return err
	}
	*broadcast = rowToBroadcast(row)
	return nil
}

func rowToBroadcast(row dataaccess.Row) entity.Broadcast {
	return entity.Broadcast{
		ID:        row.Int64("id"),
		Title:     row.String("title"),
		Body:      row.String("body"),
		Audience:  entity.BroadcastAudience(row.String("audience")),
		SentBy:    row.UUIDPtr("sent_by"),
		CreatedAt: row.Time("created_at"),
	}
}

func rowsToBroadcasts(rows []dataaccess.Row) []entity.Broadcast {
	out := make([]entity.Broadcast, len(rows))
	for i, row := range rows {
		out[i] = rowToBroadcast(row)
	}
	return out
}
