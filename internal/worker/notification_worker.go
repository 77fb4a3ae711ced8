package worker

import (
	"github.com/spec-kit/chamados/internal/service"
)

// StartNotificationWorker registers notification handlers.
func StartNotificationWorker(notificationService *service.NotificationService) {
	if notificationService == nil {
		return
	}
	notificationService.RegisterHandlers()
}

// StartCacheInvalidationWorker registers the handler that keeps cached
// search pages in step with the store.
func StartCacheInvalidationWorker(invalidator *service.CacheInvalidator) {
	if invalidator == nil {
		return
	}
	invalidator.RegisterHandlers()
}
