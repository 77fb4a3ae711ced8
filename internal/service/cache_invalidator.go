package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/chamados/internal/cache"
	"github.com/spec-kit/chamados/internal/events"
)

// CacheInvalidator drops cached search pages whenever the store changes.
type CacheInvalidator struct {
	dispatcher events.Dispatcher
	cache      cache.SearchCache
	logger     *zap.Logger
}

// NewCacheInvalidator creates the invalidator.
func NewCacheInvalidator(dispatcher events.Dispatcher, searchCache cache.SearchCache, logger *zap.Logger) *CacheInvalidator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CacheInvalidator{dispatcher: dispatcher, cache: searchCache, logger: logger}
}

// RegisterHandlers subscribes to events.
func (i *CacheInvalidator) RegisterHandlers() {
	if i.dispatcher == nil || i.cache == nil {
		return
	}
	i.dispatcher.Subscribe(events.EventChamadoCreated, i.handleChamadoCreated)
}

func (i *CacheInvalidator) handleChamadoCreated(ctx context.Context, event events.Event) error {
	if err := i.cache.Invalidate(ctx); err != nil {
		return err
	}
	i.logger.Debug("search cache invalidated", zap.String("chamado_id", event.ChamadoID))
	return nil
}
