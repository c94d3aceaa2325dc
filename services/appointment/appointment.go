package appointment

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	bookingRepo "shopline/database/repository/booking"
	shopRepo "shopline/database/repository/shop"
	timeslotRepo "shopline/database/repository/timeslot"
	userRepo "shopline/database/repository/user"
	"shopline/models"
	"shopline/services/tasks"
	"shopline/utils"

	"go.uber.org/zap"
)

// DefaultAppointmentService is the production implementation.
type DefaultAppointmentService struct {
	Users    userRepo.UserRepository
	Shops    shopRepo.ShopRepository
	Slots    timeslotRepo.TimeSlotRepository
	Bookings bookingRepo.BookingRepository
	Queue    Enqueuer
}

// QueueAppointment validates the request and places a BookingRequest
// on the appointments queue. The enqueue is the only write: validation
// failures leave no partial state behind.
func (s *DefaultAppointmentService) QueueAppointment(ctx context.Context, req QueueAppointmentRequest) error {
	if req.UserID == "" || req.ShopID == "" || req.Date == "" || req.Time == "" {
		return NewValidationError("Missing required fields: userId, shopId, date, time")
	}
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		return NewValidationError("Date must be in YYYY-MM-DD format")
	}
	hour, minute, err := parseClock(req.Time)
	if err != nil {
		return NewValidationError("Time must be in HH:MM format")
	}

	user, err := s.Users.GetByID(ctx, req.UserID)
	if err != nil {
		return err
	}
	shop, err := s.Shops.GetByID(ctx, req.ShopID)
	if err != nil {
		return err
	}
	if user == nil || shop == nil {
		return NewNotFoundError("User or shop not found")
	}

	avail, err := s.Slots.FindAvailabilityForSlot(ctx, req.ShopID, req.Date, hour, minute)
	if err != nil {
		return err
	}
	if avail == nil {
		return NewValidationError("No availability found for the given date and time")
	}

	payload := models.BookingRequest{
		UserID:         req.UserID,
		ShopID:         req.ShopID,
		Date:           req.Date,
		Hour:           hour,
		Minute:         minute,
		AvailabilityID: avail.ID,
	}
	task, opts, err := tasks.NewCreateAppointmentTask(payload)
	if err != nil {
		return &EnqueueError{Err: err}
	}

	info, err := s.Queue.EnqueueContext(ctx, task, opts...)
	if err != nil {
		return &EnqueueError{Err: err}
	}

	utils.GetLogger().Info("appointment queued",
		zap.String("taskId", info.ID),
		zap.String("userId", req.UserID),
		zap.String("shopId", req.ShopID),
		zap.String("date", req.Date),
		zap.Int("hour", hour),
	)
	return nil
}

// ListAppointments returns all committed bookings joined with their
// user, shop, and slot.
func (s *DefaultAppointmentService) ListAppointments(ctx context.Context) ([]models.BookingView, error) {
	bookings, err := s.Bookings.List(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]models.BookingView, 0, len(bookings))
	for i := range bookings {
		view, err := s.buildView(ctx, &bookings[i])
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, nil
}

// GetAppointment returns a single committed booking joined view.
func (s *DefaultAppointmentService) GetAppointment(ctx context.Context, id string) (*models.BookingView, error) {
	booking, err := s.Bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, NewNotFoundError("Appointment not found")
	}
	return s.buildView(ctx, booking)
}

// UpdateAppointment moves a booking to a new slot; the bookings unique
// index arbitrates the target slot exactly as it does the original
// commit, so a losing move surfaces as ConflictError.
func (s *DefaultAppointmentService) UpdateAppointment(ctx context.Context, id string, req UpdateAppointmentRequest) (*models.Booking, error) {
	if req.ShopID == "" || req.Date == "" || req.Hour == nil {
		return nil, NewValidationError("Missing required fields: date, hour, shopId")
	}

	existing, err := s.Bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, NewNotFoundError("Appointment not found")
	}

	updated, err := s.Bookings.UpdateSlot(ctx, id, req.ShopID, req.Date, *req.Hour)
	if errors.Is(err, bookingRepo.ErrSlotTaken) {
		return nil, NewConflictError("Time slot already booked")
	}
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, NewNotFoundError("Appointment not found")
	}
	return updated, nil
}

// CancelAppointment deletes a committed booking.
func (s *DefaultAppointmentService) CancelAppointment(ctx context.Context, id string) error {
	booking, err := s.Bookings.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if booking == nil {
		return NewNotFoundError("Appointment not found")
	}
	return s.Bookings.Delete(ctx, id)
}

func (s *DefaultAppointmentService) buildView(ctx context.Context, booking *models.Booking) (*models.BookingView, error) {
	view := &models.BookingView{
		ID:        booking.ID,
		Date:      booking.Date,
		Hour:      booking.Hour,
		CreatedAt: booking.CreatedAt,
	}

	user, err := s.Users.GetByID(ctx, booking.UserID)
	if err != nil {
		return nil, err
	}
	view.User = user

	shop, err := s.Shops.GetByID(ctx, booking.ShopID)
	if err != nil {
		return nil, err
	}
	view.Shop = shop

	avail, err := s.Slots.GetAvailabilityByID(ctx, booking.AvailabilityID)
	if err != nil {
		return nil, err
	}
	if avail != nil {
		slot, err := s.Slots.GetByID(ctx, avail.TimeSlotID)
		if err != nil {
			return nil, err
		}
		view.TimeSlot = slot
	}
	return view, nil
}

// parseClock splits "HH:MM" into hour and minute.
func parseClock(clock string) (int, int, error) {
	parts := strings.Split(clock, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid time %q", clock)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid hour in %q", clock)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid minute in %q", clock)
	}
	return hour, minute, nil
}
