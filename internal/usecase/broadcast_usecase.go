package usecase

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"go-clinic-backend/internal/delivery/dto"
	"go-clinic-backend/internal/domain/entity"
	"go-clinic-backend/internal/domain/repository"
	"go-clinic-backend/internal/service"
)

var ErrBroadcastNotFound = errors.New("broadcast not found")

type BroadcastUsecase interface {
	GetBroadcasts(ctx context.Context, filters map[string]any, p repository.Pagination) ([]entity.Broadcast, repository.Meta, error)
	GetBroadcast(ctx context.Context, id int64) (*entity.Broadcast, error)
	// SendBroadcast persists the message, then publishes it. A publish
	// failure is logged but does not undo the archived record.
	SendBroadcast(ctx context.Context, req *dto.CreateBroadcastRequest) (*entity.Broadcast, error)
}

type broadcastUsecase struct {
	log           *logrus.Logger
	broadcastRepo repository.BroadcastRepository
	publisher     service.BroadcastPublisher
	auditService  service.AuditService
}

func NewBroadcastUsecase(
	log *logrus.Logger,
	broadcastRepo repository.BroadcastRepository,
	publisher service.BroadcastPublisher,
	auditService service.AuditService,
) BroadcastUsecase {
	return &broadcastUsecase{
		log:           log,
		broadcastRepo: broadcastRepo,
		publisher:     publisher,
		auditService:  auditService,
	}
}

func (u *broadcastUsecase) GetBroadcasts(ctx context.Context, filters map[string]any, p repository.Pagination) ([]entity.Broadcast, repository.Meta, error) {
	broadcasts, meta, err := u.broadcastRepo.FindAll(ctx, filters, p)
	if err != nil {
		u.log.Warnf("Failed to list broadcasts: %+v", err)
		return nil, repository.Meta{}, err
	}
	return broadcasts, meta, nil
}

func (u *broadcastUsecase) GetBroadcast(ctx context.Context, id int64) (*entity.Broadcast, error) {
	broadcast, err := u.broadcastRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find broadcast %d: %+v", id, err)
		return nil, err
	}
	if broadcast == nil {
		return nil, ErrBroadcastNotFound
	}
	return broadcast, nil
}

func (u *broadcastUsecase) SendBroadcast(ctx context.Context, req *dto.CreateBroadcastRequest) (*entity.Broadcast, error) {
	audience := entity.BroadcastAudience(req.Audience)
	if !entity.ValidBroadcastAudience(audience) {
		return nil, ErrInvalidStatusValue
	}

	broadcast := &entity.Broadcast{
		Title:    req.Title,
		Body:     req.Body,
		Audience: audience,
		SentBy:   actorID(ctx),
	}

	if err := u.broadcastRepo.Create(ctx, broadcast); err != nil {
		u.log.Warnf("Failed to create broadcast: %+v", err)
		return nil, err
	}

	if err := u.publisher.Publish(ctx, broadcast); err != nil {
		u.log.Warnf("Failed to publish broadcast %d: %+v", broadcast.ID, err)
	}

	u.auditService.Record(ctx, actorID(ctx), entity.AuditActionBroadcastSend, map[string]interface{}{
		"broadcast_id": broadcast.ID,
		"audience":     string(broadcast.Audience),
	})

	return broadcast, nil
}
