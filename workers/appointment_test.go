package workers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"

	bookingRepo "shopline/database/repository/booking"
	"shopline/models"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// memBookingRepo emulates the store's unique (shop_id, date, hour)
// index with a mutex, so concurrent Create calls race the same way
// they do against the real collection.
type memBookingRepo struct {
	mu       sync.Mutex
	bookings map[string]*models.Booking
	bySlot   map[string]string
}

func newMemBookingRepo() *memBookingRepo {
	return &memBookingRepo{
		bookings: make(map[string]*models.Booking),
		bySlot:   make(map[string]string),
	}
}

func slotKey(shopID, date string, hour int) string {
	return fmt.Sprintf("%s|%s|%d", shopID, date, hour)
}

func (r *memBookingRepo) EnsureIndexes() error { return nil }

func (r *memBookingRepo) Create(ctx context.Context, b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := slotKey(b.ShopID, b.Date, b.Hour)
	if _, taken := r.bySlot[key]; taken {
		return bookingRepo.ErrSlotTaken
	}
	r.bySlot[key] = b.ID
	r.bookings[b.ID] = b
	return nil
}

func (r *memBookingRepo) FindBySlot(ctx context.Context, shopID, date string, hour int) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.bySlot[slotKey(shopID, date, hour)]
	if !ok {
		return nil, nil
	}
	return r.bookings[id], nil
}

func (r *memBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.bookings[id], nil
}

func (r *memBookingRepo) List(ctx context.Context) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Booking, 0, len(r.bookings))
	for _, b := range r.bookings {
		out = append(out, *b)
	}
	return out, nil
}

func (r *memBookingRepo) UpdateSlot(ctx context.Context, id, shopID, date string, hour int) (*models.Booking, error) {
	return nil, errors.New("not implemented")
}

func (r *memBookingRepo) Delete(ctx context.Context, id string) error { return nil }

func (r *memBookingRepo) DeleteByAvailabilityIDs(ctx context.Context, availabilityIDs []string) error {
	return nil
}

func (r *memBookingRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.bookings)
}

// stubBookingRepo overrides individual operations per test.
type stubBookingRepo struct {
	memBookingRepo
	findBySlot func(ctx context.Context, shopID, date string, hour int) (*models.Booking, error)
	create     func(ctx context.Context, b *models.Booking) error
}

func (r *stubBookingRepo) FindBySlot(ctx context.Context, shopID, date string, hour int) (*models.Booking, error) {
	if r.findBySlot != nil {
		return r.findBySlot(ctx, shopID, date, hour)
	}
	return r.memBookingRepo.FindBySlot(ctx, shopID, date, hour)
}

func (r *stubBookingRepo) Create(ctx context.Context, b *models.Booking) error {
	if r.create != nil {
		return r.create(ctx, b)
	}
	return r.memBookingRepo.Create(ctx, b)
}

// recordingEnqueuer captures confirmation enqueues.
type recordingEnqueuer struct {
	mu    sync.Mutex
	tasks []*asynq.Task
	err   error
}

func (e *recordingEnqueuer) EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.err != nil {
		return nil, e.err
	}
	e.tasks = append(e.tasks, task)
	return &asynq.TaskInfo{ID: "task-1"}, nil
}

func (e *recordingEnqueuer) count() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.tasks)
}

func bookingTask(t *testing.T, req models.BookingRequest) *asynq.Task {
	t.Helper()
	payload, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	return asynq.NewTask("appointment:create", payload)
}

func TestHandleCreateAppointmentCommitsBooking(t *testing.T) {
	repo := newMemBookingRepo()
	notify := &recordingEnqueuer{}
	handler := HandleCreateAppointment(repo, notify, zap.NewNop())

	req := models.BookingRequest{
		UserID:         "user-1",
		ShopID:         "shop-1",
		Date:           "2026-09-01",
		Hour:           10,
		AvailabilityID: "avail-1",
	}
	if err := handler(context.Background(), bookingTask(t, req)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	booked, err := repo.FindBySlot(context.Background(), "shop-1", "2026-09-01", 10)
	if err != nil {
		t.Fatalf("FindBySlot: %v", err)
	}
	if booked == nil {
		t.Fatal("expected booking to be committed")
	}
	if booked.UserID != "user-1" {
		t.Errorf("booked for wrong user: got %q", booked.UserID)
	}
	if notify.count() != 1 {
		t.Errorf("expected 1 confirmation enqueued, got %d", notify.count())
	}
}

func TestHandleCreateAppointmentConcurrentSameSlot(t *testing.T) {
	repo := newMemBookingRepo()
	handler := HandleCreateAppointment(repo, nil, zap.NewNop())

	const attempts = 50
	tasks := make([]*asynq.Task, attempts)
	for i := 0; i < attempts; i++ {
		tasks[i] = bookingTask(t, models.BookingRequest{
			UserID: fmt.Sprintf("user-%d", i),
			ShopID: "shop-1",
			Date:   "2026-09-01",
			Hour:   14,
		})
	}

	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = handler(context.Background(), tasks[i])
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Errorf("attempt %d returned error: %v", i, err)
		}
	}
	if got := repo.count(); got != 1 {
		t.Fatalf("expected exactly 1 committed booking, got %d", got)
	}
}

func TestHandleCreateAppointmentRedeliveryIsIdempotent(t *testing.T) {
	repo := newMemBookingRepo()
	handler := HandleCreateAppointment(repo, nil, zap.NewNop())

	req := models.BookingRequest{
		UserID: "user-1",
		ShopID: "shop-1",
		Date:   "2026-09-01",
		Hour:   9,
	}
	task := bookingTask(t, req)

	for i := 0; i < 3; i++ {
		if err := handler(context.Background(), task); err != nil {
			t.Fatalf("delivery %d returned error: %v", i+1, err)
		}
	}
	if got := repo.count(); got != 1 {
		t.Fatalf("expected 1 booking after redeliveries, got %d", got)
	}
}

func TestHandleCreateAppointmentLostRaceAfterCheck(t *testing.T) {
	// The slot looks free on read but the insert loses to a concurrent
	// writer. The unique constraint decides; the task is acknowledged.
	repo := &stubBookingRepo{
		findBySlot: func(ctx context.Context, shopID, date string, hour int) (*models.Booking, error) {
			return nil, nil
		},
		create: func(ctx context.Context, b *models.Booking) error {
			return bookingRepo.ErrSlotTaken
		},
	}
	notify := &recordingEnqueuer{}
	handler := HandleCreateAppointment(repo, notify, zap.NewNop())

	req := models.BookingRequest{UserID: "user-2", ShopID: "shop-1", Date: "2026-09-01", Hour: 10}
	if err := handler(context.Background(), bookingTask(t, req)); err != nil {
		t.Fatalf("lost race should be acknowledged, got error: %v", err)
	}
	if notify.count() != 0 {
		t.Errorf("skipped booking must not enqueue a confirmation, got %d", notify.count())
	}
}

func TestHandleCreateAppointmentInvalidPayload(t *testing.T) {
	handler := HandleCreateAppointment(newMemBookingRepo(), nil, zap.NewNop())

	task := asynq.NewTask("appointment:create", []byte("{not json"))
	err := handler(context.Background(), task)
	if err == nil {
		t.Fatal("expected error for invalid payload")
	}
	if !errors.Is(err, asynq.SkipRetry) {
		t.Errorf("invalid payload must not be retried, got %v", err)
	}
}

func TestHandleCreateAppointmentStoreFailure(t *testing.T) {
	storeErr := errors.New("connection reset")
	repo := &stubBookingRepo{
		create: func(ctx context.Context, b *models.Booking) error {
			return storeErr
		},
	}
	handler := HandleCreateAppointment(repo, nil, zap.NewNop())

	req := models.BookingRequest{UserID: "user-1", ShopID: "shop-1", Date: "2026-09-01", Hour: 11}
	err := handler(context.Background(), bookingTask(t, req))
	if err == nil {
		t.Fatal("expected error for store failure")
	}
	if !errors.Is(err, asynq.SkipRetry) {
		t.Errorf("store failures on this queue are not retried, got %v", err)
	}
}

func TestHandleCreateAppointmentConfirmationFailureDoesNotFailCommit(t *testing.T) {
	repo := newMemBookingRepo()
	notify := &recordingEnqueuer{err: errors.New("queue unavailable")}
	handler := HandleCreateAppointment(repo, notify, zap.NewNop())

	req := models.BookingRequest{UserID: "user-1", ShopID: "shop-1", Date: "2026-09-01", Hour: 16}
	if err := handler(context.Background(), bookingTask(t, req)); err != nil {
		t.Fatalf("confirmation failure must not fail the commit: %v", err)
	}
	if got := repo.count(); got != 1 {
		t.Fatalf("expected committed booking, got %d", got)
	}
}
