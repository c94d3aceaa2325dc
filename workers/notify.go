// File: workers/notify.go
package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"shopline/models"
	"shopline/services/notification"
	"shopline/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// NotifyWorker consumes the default queue. Unlike the appointments
// queue, its tasks retry with asynq's exponential backoff: push
// delivery failures are transient in a way booking conflicts are not.
type NotifyWorker struct {
	srv    *asynq.Server
	mux    *asynq.ServeMux
	logger *zap.Logger
}

func NewNotifyWorker(
	redisOpt asynq.RedisClientOpt,
	notifier notification.NotificationService,
	concurrency int,
	shutdownTimeout time.Duration,
	logger *zap.Logger,
) *NotifyWorker {
	srv := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: concurrency,
			Queues: map[string]int{
				tasks.QueueDefault: 1,
			},
			ShutdownTimeout: shutdownTimeout,
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeNotifySend, HandleNotifySend(notifier, logger))

	return &NotifyWorker{srv: srv, mux: mux, logger: logger}
}

// Start runs the worker in the background.
func (w *NotifyWorker) Start() error {
	w.logger.Info("notify worker starting")
	return w.srv.Start(w.mux)
}

// Shutdown drains in-flight deliveries and closes the connection.
func (w *NotifyWorker) Shutdown() {
	w.logger.Info("notify worker shutting down")
	w.srv.Shutdown()
}

// HandleNotifySend delivers a queued push. Returning an error lets
// asynq retry with backoff up to the task's MaxRetry.
func HandleNotifySend(notifier notification.NotificationService, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.NotificationPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("notify task: invalid payload", zap.Error(err))
			return fmt.Errorf("invalid payload: %v: %w", err, asynq.SkipRetry)
		}

		if err := notifier.SendUserPushNotification(ctx, p.UserID, p.Title, p.Body, p.Data); err != nil {
			logger.Warn("notify task: delivery failed, will retry",
				zap.String("userId", p.UserID),
				zap.Error(err),
			)
			return err
		}
		return nil
	}
}
