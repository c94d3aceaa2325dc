// File: database/repository/booking/booking.go
package bookingRepo

import (
	"context"
	"errors"

	"shopline/models"
)

// ErrSlotTaken signals that the unique (shop_id, date, hour) constraint
// rejected an insert or update: another booking already holds the slot.
// This is the store-level arbiter for concurrent booking attempts.
var ErrSlotTaken = errors.New("time slot already booked")

// BookingRepository defines persistence operations for bookings.
//
// Create must fail with ErrSlotTaken when a booking for the same
// (shopID, date, hour) already exists, atomically with the insert.
// The conflict-checking FindBySlot read is a fast path only; callers
// must treat ErrSlotTaken from Create as the authoritative outcome.
type BookingRepository interface {
	EnsureIndexes() error
	Create(ctx context.Context, booking *models.Booking) error
	FindBySlot(ctx context.Context, shopID, date string, hour int) (*models.Booking, error)
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	List(ctx context.Context) ([]models.Booking, error)
	UpdateSlot(ctx context.Context, id, shopID, date string, hour int) (*models.Booking, error)
	Delete(ctx context.Context, id string) error
	DeleteByAvailabilityIDs(ctx context.Context, availabilityIDs []string) error
}
