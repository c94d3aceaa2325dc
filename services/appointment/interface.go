package appointment

import (
	"context"

	"shopline/models"

	"github.com/hibiken/asynq"
)

// Enqueuer is the slice of asynq.Client the service needs. The client
// is constructed in main and injected; the service never owns the
// connection lifecycle.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// QueueAppointmentRequest is the inbound booking request as received
// on the HTTP surface. Time is the wall clock in "HH:MM" form.
type QueueAppointmentRequest struct {
	UserID string `json:"userId"`
	ShopID string `json:"shopId"`
	Date   string `json:"date"`
	Time   string `json:"time"`
}

// UpdateAppointmentRequest moves an existing appointment to a new slot.
type UpdateAppointmentRequest struct {
	ShopID string `json:"shopId"`
	Date   string `json:"date"`
	Hour   *int   `json:"hour"`
}

// AppointmentService validates booking requests onto the appointments
// queue and exposes CRUD over committed bookings.
//
// QueueAppointment gives no guarantee the booking will ultimately
// succeed: acceptance means the request was enqueued, and the worker
// decides the outcome asynchronously.
type AppointmentService interface {
	QueueAppointment(ctx context.Context, req QueueAppointmentRequest) error
	ListAppointments(ctx context.Context) ([]models.BookingView, error)
	GetAppointment(ctx context.Context, id string) (*models.BookingView, error)
	UpdateAppointment(ctx context.Context, id string, req UpdateAppointmentRequest) (*models.Booking, error)
	CancelAppointment(ctx context.Context, id string) error
}
