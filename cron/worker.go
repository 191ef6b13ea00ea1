package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"trailmate/models"
	"trailmate/services/notification"
	"trailmate/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// ReminderWorker consumes reminder tasks and delivers them as pushes.
type ReminderWorker struct {
	srv    *asynq.Server
	mux    *asynq.ServeMux
	logger *zap.Logger
}

// NewReminderWorker builds the asynq server for the queue Redis database.
func NewReminderWorker(redisOpts asynq.RedisClientOpt, notifSvc notification.NotificationService, logger *zap.Logger) *ReminderWorker {
	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeSendReminder, handleReminderTask(notifSvc, logger))

	return &ReminderWorker{srv: srv, mux: mux, logger: logger}
}

// Start runs the worker in the background, retrying startup with backoff.
func (w *ReminderWorker) Start() {
	go func() {
		w.logger.Info("[ReminderWorker] starting async worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := w.srv.Start(w.mux)
			if err == nil {
				return
			}
			w.logger.Error("[ReminderWorker] failed to start worker",
				zap.Int("attempt", attempts),
				zap.Int("maxAttempts", maxAttempts),
				zap.Error(err),
			)
			if attempts == maxAttempts {
				w.logger.Error("[ReminderWorker] max retry attempts reached, reminders disabled")
				return
			}
			time.Sleep(time.Duration(attempts*2) * time.Second)
		}
	}()
}

// Shutdown stops fetching new tasks and waits for active ones.
func (w *ReminderWorker) Shutdown() {
	w.srv.Shutdown()
}

func handleReminderTask(notifSvc notification.NotificationService, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("[ReminderHandler] invalid payload", zap.Error(err))
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}

		logger.Info("[ReminderHandler] triggering reminder",
			zap.String("bookingID", p.BookingID),
			zap.String("userID", p.UserID),
		)

		data := map[string]string{
			"type":       "activity_reminder",
			"bookingId":  p.BookingID,
			"activityId": p.ActivityID,
		}
		if err := notifSvc.SendUserPushNotification(ctx, p.UserID, p.Title, p.Body, data); err != nil {
			logger.Warn("[ReminderHandler] failed to send notification", zap.Error(err))
			return err
		}
		return nil
	}
}
