// File: workers/appointment.go
package workers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	bookingRepo "shopline/database/repository/booking"
	"shopline/models"
	"shopline/services/appointment"
	"shopline/services/tasks"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// AppointmentWorker consumes the appointments queue and owns the
// transition from "requested" to "committed or skipped". It is
// constructed in main and injected with its collaborators; no
// package-level state.
type AppointmentWorker struct {
	srv    *asynq.Server
	mux    *asynq.ServeMux
	logger *zap.Logger
}

// NewAppointmentWorker builds the worker server. notifyQueue may be
// nil; committed bookings then simply go unannounced.
func NewAppointmentWorker(
	redisOpt asynq.RedisClientOpt,
	bookings bookingRepo.BookingRepository,
	notifyQueue appointment.Enqueuer,
	concurrency int,
	shutdownTimeout time.Duration,
	logger *zap.Logger,
) *AppointmentWorker {
	srv := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: concurrency,
			Queues: map[string]int{
				tasks.QueueAppointments: 1,
			},
			ShutdownTimeout: shutdownTimeout,
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeAppointmentCreate, HandleCreateAppointment(bookings, notifyQueue, logger))

	return &AppointmentWorker{srv: srv, mux: mux, logger: logger}
}

// Start runs the worker in the background.
func (w *AppointmentWorker) Start() error {
	w.logger.Info("appointment worker starting")
	return w.srv.Start(w.mux)
}

// Shutdown stops dequeuing, waits for in-flight tasks up to the
// configured ShutdownTimeout, then closes the connection. Tasks still
// in flight at the deadline are abandoned and redelivered to the next
// worker instance, consistent with at-least-once delivery.
func (w *AppointmentWorker) Shutdown() {
	w.logger.Info("appointment worker shutting down")
	w.srv.Shutdown()
}

// HandleCreateAppointment is the commit step of the booking pipeline.
//
// The FindBySlot read is a fast path to skip obviously-doomed writes;
// the bookings unique index is the actual mutual-exclusion mechanism.
// Every outcome acknowledges the task: conflicts are a normal result
// of racing requests, and infra failures are operator-visible, not
// retried (unlike the default queue).
func HandleCreateAppointment(
	bookings bookingRepo.BookingRepository,
	notifyQueue appointment.Enqueuer,
	logger *zap.Logger,
) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.BookingRequest
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("appointment task: invalid payload",
				zap.ByteString("payload", task.Payload()),
				zap.Error(err),
			)
			return fmt.Errorf("invalid payload: %v: %w", err, asynq.SkipRetry)
		}

		existing, err := bookings.FindBySlot(ctx, p.ShopID, p.Date, p.Hour)
		if err != nil {
			logger.Error("appointment task: conflict check failed",
				zap.Any("payload", p),
				zap.Error(err),
			)
			return fmt.Errorf("conflict check: %v: %w", err, asynq.SkipRetry)
		}
		if existing != nil {
			logger.Info("appointment task skipped: time slot already booked",
				zap.String("shopId", p.ShopID),
				zap.String("date", p.Date),
				zap.Int("hour", p.Hour),
			)
			return nil
		}

		booking := &models.Booking{
			ID:             uuid.New().String(),
			UserID:         p.UserID,
			ShopID:         p.ShopID,
			Date:           p.Date,
			Hour:           p.Hour,
			AvailabilityID: p.AvailabilityID,
		}
		err = bookings.Create(ctx, booking)
		if errors.Is(err, bookingRepo.ErrSlotTaken) {
			// Lost the race between check and write; same outcome as
			// finding the conflict on read.
			logger.Info("appointment task skipped: time slot already booked",
				zap.String("shopId", p.ShopID),
				zap.String("date", p.Date),
				zap.Int("hour", p.Hour),
			)
			return nil
		}
		if err != nil {
			logger.Error("appointment task failed",
				zap.Any("payload", p),
				zap.Error(err),
			)
			return fmt.Errorf("commit booking: %v: %w", err, asynq.SkipRetry)
		}

		logger.Info("appointment committed",
			zap.String("bookingId", booking.ID),
			zap.String("userId", p.UserID),
			zap.String("shopId", p.ShopID),
			zap.String("date", p.Date),
			zap.Int("hour", p.Hour),
		)

		if notifyQueue != nil {
			enqueueConfirmation(ctx, notifyQueue, booking, logger)
		}
		return nil
	}
}

// enqueueConfirmation pushes a best-effort confirmation onto the
// retrying default queue. A failure here never fails the commit.
func enqueueConfirmation(ctx context.Context, queue appointment.Enqueuer, booking *models.Booking, logger *zap.Logger) {
	payload := models.NotificationPayload{
		UserID: booking.UserID,
		Title:  "Appointment confirmed",
		Body:   fmt.Sprintf("Your appointment on %s at %02d:00 is confirmed.", booking.Date, booking.Hour),
		Data: map[string]string{
			"bookingId": booking.ID,
			"shopId":    booking.ShopID,
		},
	}
	task, opts, err := tasks.NewNotifySendTask(payload)
	if err != nil {
		logger.Warn("failed to build confirmation task", zap.Error(err))
		return
	}
	if _, err := queue.EnqueueContext(ctx, task, opts...); err != nil {
		logger.Warn("failed to enqueue confirmation", zap.Error(err))
	}
}
