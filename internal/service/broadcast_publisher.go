package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"go-clinic-backend/internal/domain/entity"
)

// BroadcastChannel is the pub/sub channel delivery workers subscribe to.
const BroadcastChannel = "clinic:broadcasts"

// BroadcastPublisher pushes a persisted broadcast onto the messaging
// channel so notification workers can fan it out.
type BroadcastPublisher interface {
	Publish(ctx context.Context, broadcast *entity.Broadcast) error
}

type redisBroadcastPublisher struct {
	log    *logrus.Logger
	client *redis.Client
}

func NewBroadcastPublisher(log *logrus.Logger, client *redis.Client) BroadcastPublisher {
	return &redisBroadcastPublisher{log: log, client: client}
}

func (p *redisBroadcastPublisher) Publish(ctx context.Context, broadcast *entity.Broadcast) error {
	payload, err := json.Marshal(broadcast)
	if err != nil {
		return fmt.Errorf("marshal broadcast %d: %w", broadcast.ID, err)
	}
	if err := p.client.Publish(ctx, BroadcastChannel, payload).Err(); err != nil {
		return fmt.Errorf("publish broadcast %d: %w", broadcast.ID, err)
	}
	p.log.Infof("Published broadcast %d to %s audience", broadcast.ID, broadcast.Audience)
	return nil
}
