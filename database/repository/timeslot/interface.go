// File: database/repository/timeslot/interface.go
package timeslotRepo

import (
	"context"

	"shopline/models"
)

// TimeSlotRepository defines persistence operations for time slots and
// the availability entries that mark them bookable.
type TimeSlotRepository interface {
	EnsureIndexes() error

	// Time slots.
	CreateMany(ctx context.Context, slots []models.TimeSlot) (int, error)
	GetByID(ctx context.Context, id string) (*models.TimeSlot, error)
	ListByShopDate(ctx context.Context, shopID, date string) ([]models.TimeSlot, error)
	DeleteByIDs(ctx context.Context, ids []string) error
	ListIDsOlderThan(ctx context.Context, date string) ([]string, error)
	DeleteOlderThan(ctx context.Context, date string) (int64, error)

	// Availability.
	AddAvailability(ctx context.Context, entries []models.Availability) (int, error)
	GetAvailabilityByID(ctx context.Context, id string) (*models.Availability, error)
	FindAvailabilityByTimeSlot(ctx context.Context, shopID, timeSlotID string) (*models.Availability, error)
	FindAvailabilityForSlot(ctx context.Context, shopID, date string, hour, minute int) (*models.Availability, error)
	ListAvailability(ctx context.Context, shopID string) ([]models.AvailabilityView, error)
	DeleteAvailability(ctx context.Context, id string) error
	DeleteAvailabilityByTimeSlotIDs(ctx context.Context, timeSlotIDs []string) ([]string, error)
}
