package cron

import (
	"context"
	"time"

	"clinixsphere/config"
	"clinixsphere/services/tasks"
	"clinixsphere/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// ReminderRedisOpt is the connection used by both the reminder client and worker.
func ReminderRedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	}
}

// InitReminderWorker runs the reminder worker in the background. The returned
// server is shut down by the caller.
func InitReminderWorker(appts tasks.AppointmentReader, notifier tasks.Notifier) *asynq.Server {
	logger := utils.GetLogger()

	srv := asynq.NewServer(
		ReminderRedisOpt(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
			ErrorHandler: asynq.ErrorHandlerFunc(func(_ context.Context, task *asynq.Task, err error) {
				logger.Error("Reminder task failed", zap.String("type", task.Type()), zap.Error(err))
			}),
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeAppointmentReminder, tasks.HandleReminderTask(appts, notifier))

	go func() {
		logger.Info("Starting reminder worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := srv.Start(mux)
			if err == nil {
				return
			}
			logger.Warn("Reminder worker failed to start",
				zap.Int("attempt", attempts), zap.Int("maxAttempts", maxAttempts), zap.Error(err))
			if attempts == maxAttempts {
				logger.Error("Reminder worker disabled after max retry attempts")
				return
			}
			time.Sleep(time.Duration(attempts*2) * time.Second)
		}
	}()
	return srv
}
