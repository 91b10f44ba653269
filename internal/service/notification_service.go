package service

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/talent-marketplace/internal/config"
	"github.com/spec-kit/talent-marketplace/internal/events"
)

// NotificationService fans domain events out to subscribers: every event is
// logged and published on a Redis channel for downstream consumers. Delivery
// is best-effort; failures never affect the originating request.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	rdb        *redis.Client
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, rdb *redis.Client, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		rdb:        rdb,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to the full event stream.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.SubscribeAll(n.handleEvent)
}

func (n *NotificationService) handleEvent(ctx context.Context, event events.Event) error {
	n.logger.Info(string(event.Type),
		zap.String("job_id", event.JobID),
		zap.String("actor_id", event.ActorID),
		zap.Any("payload", event.Payload))

	n.publishToChannel(ctx, event)
	if event.Type == events.EventApplicantAccepted || event.Type == events.EventJobCompleted {
		n.sendEmailNotificationStub(ctx, event)
	}
	return nil
}

func (n *NotificationService) publishToChannel(ctx context.Context, event events.Event) {
	if n.rdb == nil || strings.TrimSpace(n.cfg.Channel) == "" {
		return
	}
	body, err := json.Marshal(event)
	if err != nil {
		n.logger.Warn("marshal event failed", zap.Error(err))
		return
	}
	if err := n.rdb.Publish(ctx, n.cfg.Channel, body).Err(); err != nil {
		n.logger.Warn("publish event failed",
			zap.String("channel", n.cfg.Channel),
			zap.Error(err))
	}
}

func (n *NotificationService) sendEmailNotificationStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("sendEmailNotificationStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("job_id", event.JobID),
		zap.String("event_type", string(event.Type)))
}
