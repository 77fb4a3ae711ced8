package service

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/chamados/internal/config"
	"github.com/spec-kit/chamados/internal/events"
)

func TestNotificationService_ChamadoCreated(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	dispatcher := events.NewInMemoryDispatcher()
	NewNotificationService(dispatcher, zap.New(core), config.NotificationConfig{
		EmailFrom:  "noreply@example.com",
		WebhookURL: "http://hooks.local/chamados",
	}).RegisterHandlers()

	name := "Ana Souza"
	err := dispatcher.Publish(context.Background(), events.Event{
		Type:      events.EventChamadoCreated,
		ChamadoID: "1013",
		Payload:   events.ChamadoCreatedPayload{Titulo: "Câmara fria", Responsavel: &name},
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	for _, msg := range []string{"ChamadoCreated", "sendEmailNotificationStub", "sendWebhookNotificationStub"} {
		if logs.FilterMessage(msg).Len() != 1 {
			t.Errorf("expected one %q log entry, got %d", msg, logs.FilterMessage(msg).Len())
		}
	}
}

func TestNotificationService_SkipsUnconfiguredChannels(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	dispatcher := events.NewInMemoryDispatcher()
	NewNotificationService(dispatcher, zap.New(core), config.NotificationConfig{}).RegisterHandlers()

	_ = dispatcher.Publish(context.Background(), events.Event{
		Type:    events.EventChamadoCreated,
		Payload: events.ChamadoCreatedPayload{},
	})
	if logs.FilterMessage("sendEmailNotificationStub").Len() != 0 || logs.FilterMessage("sendWebhookNotificationStub").Len() != 0 {
		t.Errorf("expected no stub notifications, got %v", logs.All())
	}
}
