package appointment

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	bookingRepo "shopline/database/repository/booking"
	shopRepo "shopline/database/repository/shop"
	timeslotRepo "shopline/database/repository/timeslot"
	userRepo "shopline/database/repository/user"
	"shopline/models"

	"github.com/hibiken/asynq"
)

// The fakes embed the repository interfaces so only the methods a test
// exercises need stubbing; calling anything else panics loudly.

type fakeUserRepo struct {
	userRepo.UserRepository
	getByID func(ctx context.Context, id string) (*models.User, error)
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	return f.getByID(ctx, id)
}

type fakeShopRepo struct {
	shopRepo.ShopRepository
	getByID func(ctx context.Context, id string) (*models.Shop, error)
}

func (f *fakeShopRepo) GetByID(ctx context.Context, id string) (*models.Shop, error) {
	return f.getByID(ctx, id)
}

type fakeSlotRepo struct {
	timeslotRepo.TimeSlotRepository
	findAvailabilityForSlot func(ctx context.Context, shopID, date string, hour, minute int) (*models.Availability, error)
}

func (f *fakeSlotRepo) FindAvailabilityForSlot(ctx context.Context, shopID, date string, hour, minute int) (*models.Availability, error) {
	return f.findAvailabilityForSlot(ctx, shopID, date, hour, minute)
}

type fakeBookingRepo struct {
	bookingRepo.BookingRepository
	getByID    func(ctx context.Context, id string) (*models.Booking, error)
	updateSlot func(ctx context.Context, id, shopID, date string, hour int) (*models.Booking, error)
	deleted    []string
}

func (f *fakeBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	return f.getByID(ctx, id)
}

func (f *fakeBookingRepo) UpdateSlot(ctx context.Context, id, shopID, date string, hour int) (*models.Booking, error) {
	return f.updateSlot(ctx, id, shopID, date, hour)
}

func (f *fakeBookingRepo) Delete(ctx context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeEnqueuer struct {
	mu    sync.Mutex
	tasks []*asynq.Task
	err   error
}

func (f *fakeEnqueuer) EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.tasks = append(f.tasks, task)
	return &asynq.TaskInfo{ID: "task-1"}, nil
}

func knownUser(ctx context.Context, id string) (*models.User, error) {
	return &models.User{ID: id, Name: "Ada", Email: "ada@example.com"}, nil
}

func knownShop(ctx context.Context, id string) (*models.Shop, error) {
	return &models.Shop{ID: id, Name: "Corner Barber"}, nil
}

func availableSlot(ctx context.Context, shopID, date string, hour, minute int) (*models.Availability, error) {
	return &models.Availability{ID: "avail-1", ShopID: shopID, TimeSlotID: "slot-1"}, nil
}

func newTestService(queue Enqueuer) *DefaultAppointmentService {
	return &DefaultAppointmentService{
		Users:    &fakeUserRepo{getByID: knownUser},
		Shops:    &fakeShopRepo{getByID: knownShop},
		Slots:    &fakeSlotRepo{findAvailabilityForSlot: availableSlot},
		Bookings: &fakeBookingRepo{},
		Queue:    queue,
	}
}

func validRequest() QueueAppointmentRequest {
	return QueueAppointmentRequest{
		UserID: "user-1",
		ShopID: "shop-1",
		Date:   "2026-09-01",
		Time:   "10:00",
	}
}

func TestQueueAppointmentEnqueuesOnce(t *testing.T) {
	queue := &fakeEnqueuer{}
	svc := newTestService(queue)

	if err := svc.QueueAppointment(context.Background(), validRequest()); err != nil {
		t.Fatalf("QueueAppointment: %v", err)
	}
	if len(queue.tasks) != 1 {
		t.Fatalf("expected exactly 1 enqueued task, got %d", len(queue.tasks))
	}

	var payload models.BookingRequest
	if err := json.Unmarshal(queue.tasks[0].Payload(), &payload); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if payload.UserID != "user-1" || payload.ShopID != "shop-1" {
		t.Errorf("payload has wrong identities: %+v", payload)
	}
	if payload.Date != "2026-09-01" || payload.Hour != 10 || payload.Minute != 0 {
		t.Errorf("payload has wrong slot: %+v", payload)
	}
	if payload.AvailabilityID != "avail-1" {
		t.Errorf("payload missing availability: %+v", payload)
	}
}

func TestQueueAppointmentValidation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*QueueAppointmentRequest)
	}{
		{"missing userId", func(r *QueueAppointmentRequest) { r.UserID = "" }},
		{"missing shopId", func(r *QueueAppointmentRequest) { r.ShopID = "" }},
		{"missing date", func(r *QueueAppointmentRequest) { r.Date = "" }},
		{"missing time", func(r *QueueAppointmentRequest) { r.Time = "" }},
		{"bad date format", func(r *QueueAppointmentRequest) { r.Date = "01-09-2026" }},
		{"bad time format", func(r *QueueAppointmentRequest) { r.Time = "10am" }},
		{"hour out of range", func(r *QueueAppointmentRequest) { r.Time = "25:00" }},
		{"minute out of range", func(r *QueueAppointmentRequest) { r.Time = "10:75" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			queue := &fakeEnqueuer{}
			svc := newTestService(queue)

			req := validRequest()
			tc.mutate(&req)

			err := svc.QueueAppointment(context.Background(), req)
			var validationErr *ValidationError
			if !errors.As(err, &validationErr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if len(queue.tasks) != 0 {
				t.Errorf("rejected request must not enqueue, got %d tasks", len(queue.tasks))
			}
		})
	}
}

func TestQueueAppointmentUnknownUserOrShop(t *testing.T) {
	queue := &fakeEnqueuer{}
	svc := newTestService(queue)
	svc.Users = &fakeUserRepo{getByID: func(ctx context.Context, id string) (*models.User, error) {
		return nil, nil
	}}

	err := svc.QueueAppointment(context.Background(), validRequest())
	var notFoundErr *NotFoundError
	if !errors.As(err, &notFoundErr) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if len(queue.tasks) != 0 {
		t.Errorf("unknown user must not enqueue, got %d tasks", len(queue.tasks))
	}
}

func TestQueueAppointmentNoAvailability(t *testing.T) {
	queue := &fakeEnqueuer{}
	svc := newTestService(queue)
	svc.Slots = &fakeSlotRepo{findAvailabilityForSlot: func(ctx context.Context, shopID, date string, hour, minute int) (*models.Availability, error) {
		return nil, nil
	}}

	err := svc.QueueAppointment(context.Background(), validRequest())
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(queue.tasks) != 0 {
		t.Errorf("unavailable slot must not enqueue, got %d tasks", len(queue.tasks))
	}
}

func TestQueueAppointmentEnqueueFailure(t *testing.T) {
	queue := &fakeEnqueuer{err: errors.New("redis down")}
	svc := newTestService(queue)

	err := svc.QueueAppointment(context.Background(), validRequest())
	var enqueueErr *EnqueueError
	if !errors.As(err, &enqueueErr) {
		t.Fatalf("expected EnqueueError, got %v", err)
	}
}

func TestUpdateAppointmentSlotConflict(t *testing.T) {
	hour := 12
	svc := newTestService(&fakeEnqueuer{})
	svc.Bookings = &fakeBookingRepo{
		getByID: func(ctx context.Context, id string) (*models.Booking, error) {
			return &models.Booking{ID: id, ShopID: "shop-1"}, nil
		},
		updateSlot: func(ctx context.Context, id, shopID, date string, hour int) (*models.Booking, error) {
			return nil, bookingRepo.ErrSlotTaken
		},
	}

	_, err := svc.UpdateAppointment(context.Background(), "booking-1", UpdateAppointmentRequest{
		ShopID: "shop-1",
		Date:   "2026-09-02",
		Hour:   &hour,
	})
	var conflictErr *ConflictError
	if !errors.As(err, &conflictErr) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
}

func TestCancelAppointmentUnknownID(t *testing.T) {
	svc := newTestService(&fakeEnqueuer{})
	svc.Bookings = &fakeBookingRepo{
		getByID: func(ctx context.Context, id string) (*models.Booking, error) {
			return nil, nil
		},
	}

	err := svc.CancelAppointment(context.Background(), "missing")
	var notFoundErr *NotFoundError
	if !errors.As(err, &notFoundErr) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestCancelAppointmentDeletes(t *testing.T) {
	repo := &fakeBookingRepo{
		getByID: func(ctx context.Context, id string) (*models.Booking, error) {
			return &models.Booking{ID: id}, nil
		},
	}
	svc := newTestService(&fakeEnqueuer{})
	svc.Bookings = repo

	if err := svc.CancelAppointment(context.Background(), "booking-1"); err != nil {
		t.Fatalf("CancelAppointment: %v", err)
	}
	if len(repo.deleted) != 1 || repo.deleted[0] != "booking-1" {
		t.Errorf("expected booking-1 deleted, got %v", repo.deleted)
	}
}
