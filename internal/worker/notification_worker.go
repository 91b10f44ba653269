package worker

import (
	"go.uber.org/zap"

	"github.com/spec-kit/talent-marketplace/internal/service"
)

// StartNotificationWorker attaches the notification service to the event
// stream. Dispatch is synchronous and in-process; this is the single place
// where the subscription side of the pipeline is wired.
func StartNotificationWorker(notificationService *service.NotificationService, logger *zap.Logger) {
	if notificationService == nil {
		return
	}
	notificationService.RegisterHandlers()
	if logger != nil {
		logger.Info("notification worker started")
	}
}
