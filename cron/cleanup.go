package cron

import (
	"context"
	"time"

	bookingRepo "shopline/database/repository/booking"
	timeslotRepo "shopline/database/repository/timeslot"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// StartCleanup schedules a nightly purge of time slots dated before
// today, cascading through their availability entries and bookings.
// The returned cron is owned by the caller and stopped on shutdown.
func StartCleanup(slots timeslotRepo.TimeSlotRepository, bookings bookingRepo.BookingRepository, logger *zap.Logger) *cron.Cron {
	c := cron.New()

	_, err := c.AddFunc("0 3 * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		today := time.Now().Format("2006-01-02")

		staleIDs, err := slots.ListIDsOlderThan(ctx, today)
		if err != nil {
			logger.Error("cleanup: listing stale slots failed", zap.Error(err))
			return
		}
		if len(staleIDs) == 0 {
			return
		}

		removedAvail, err := slots.DeleteAvailabilityByTimeSlotIDs(ctx, staleIDs)
		if err != nil {
			logger.Error("cleanup: deleting stale availability failed", zap.Error(err))
			return
		}
		if err := bookings.DeleteByAvailabilityIDs(ctx, removedAvail); err != nil {
			logger.Error("cleanup: cascading stale bookings failed", zap.Error(err))
			return
		}

		removed, err := slots.DeleteOlderThan(ctx, today)
		if err != nil {
			logger.Error("cleanup: deleting stale slots failed", zap.Error(err))
			return
		}
		logger.Info("cleanup: purged stale time slots",
			zap.Int64("slots", removed),
			zap.Int("availability", len(removedAvail)),
		)
	})
	if err != nil {
		logger.Error("cleanup: failed to schedule job", zap.Error(err))
		return c
	}

	c.Start()
	return c
}
