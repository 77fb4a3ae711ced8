package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/chamados/internal/config"
	"github.com/spec-kit/chamados/internal/events"
)

// NotificationService handles emitting notifications for domain events.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventChamadoCreated, n.handleChamadoCreated)
}

func (n *NotificationService) handleChamadoCreated(ctx context.Context, event events.Event) error {
	n.logger.Info("ChamadoCreated", zap.String("chamado_id", event.ChamadoID), zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	if payload, ok := event.Payload.(events.ChamadoCreatedPayload); ok && payload.Responsavel != nil {
		n.sendWebhookNotificationStub(ctx, event)
	}
	return nil
}

func (n *NotificationService) sendEmailNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("sendEmailNotificationStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("chamado_id", event.ChamadoID),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("chamado_id", event.ChamadoID),
		zap.String("event_type", string(event.Type)))
}
