package notification

import (
	"context"

	"clinixsphere/utils"

	"go.uber.org/zap"
)

// NotificationService delivers messages to clinic users.
type NotificationService interface {
	SendUserNotification(ctx context.Context, userID, title, body string, data map[string]string) error
}

// LogNotificationService writes notifications to the structured log. It stands
// in for a push provider.
type LogNotificationService struct {
	logger *zap.Logger
}

func NewLogNotificationService(logger *zap.Logger) *LogNotificationService {
	if logger == nil {
		logger = utils.GetLogger()
	}
	return &LogNotificationService{logger: logger}
}

func (s *LogNotificationService) SendUserNotification(_ context.Context, userID, title, body string, data map[string]string) error {
	fields := []zap.Field{
		zap.String("userId", userID),
		zap.String("title", title),
		zap.String("body", body),
	}
	for k, v := range data {
		fields = append(fields, zap.String(k, v))
	}
	s.logger.Info("Notification sent", fields...)
	return nil
}
