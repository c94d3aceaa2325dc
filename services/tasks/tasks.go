package tasks

import (
	"encoding/json"

	"shopline/models"

	"github.com/hibiken/asynq"
)

const (
	// TypeAppointmentCreate is the booking commit task handled by the
	// appointment worker.
	TypeAppointmentCreate = "appointment:create"
	// TypeNotifySend is the push delivery task handled by the notify worker.
	TypeNotifySend = "notify:send"
)

const (
	// QueueAppointments carries booking commits. Tasks on it are never
	// retried: a booking conflict is not a transient fault, and infra
	// failures are operator-visible rather than auto-retried.
	QueueAppointments = "appointments"
	// QueueDefault carries generic background work with asynq's normal
	// retry and exponential backoff.
	QueueDefault = "default"
)

// NewCreateAppointmentTask builds the queue task for a validated
// booking request.
func NewCreateAppointmentTask(payload models.BookingRequest) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeAppointmentCreate, b)
	opts := []asynq.Option{asynq.Queue(QueueAppointments), asynq.MaxRetry(0)}

	return task, opts, nil
}

// NewNotifySendTask builds the queue task for an outbound push.
func NewNotifySendTask(payload models.NotificationPayload) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeNotifySend, b)
	opts := []asynq.Option{asynq.Queue(QueueDefault), asynq.MaxRetry(5)}

	return task, opts, nil
}
