package shop

import (
	"context"
	"time"

	bookingRepo "shopline/database/repository/booking"
	shopRepo "shopline/database/repository/shop"
	timeslotRepo "shopline/database/repository/timeslot"
	"shopline/models"
	"shopline/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const shopListCacheKey = "shops:all"
const shopListCacheTTL = 5 * time.Minute

// ShopService manages shops, their time slots, and availability.
type ShopService interface {
	CreateShop(ctx context.Context, name, location string) (*models.Shop, error)
	ListShops(ctx context.Context) ([]models.ShopWithInventory, error)
	GetShop(ctx context.Context, id string) (*models.Shop, error)
	UpdateShop(ctx context.Context, id, name, location string) (*models.Shop, error)
	DeleteShop(ctx context.Context, id string) error

	CreateTimeSlots(ctx context.Context, shopID, date string, window models.SlotWindow) (int, error)
	ListTimeSlots(ctx context.Context, shopID, date string) ([]models.TimeSlot, error)
	RegenerateTimeSlots(ctx context.Context, shopID, date string, window models.SlotWindow) (int, error)

	SetAvailability(ctx context.Context, shopID string, timeSlotIDs []string) (int, error)
	GetAvailability(ctx context.Context, shopID string) ([]models.AvailabilityView, error)
	RemoveAvailability(ctx context.Context, shopID, availabilityID string) error
}

// DefaultShopService is the production implementation.
type DefaultShopService struct {
	Repo     shopRepo.ShopRepository
	Slots    timeslotRepo.TimeSlotRepository
	Bookings bookingRepo.BookingRepository
}

// CreateShop registers a new shop.
func (s *DefaultShopService) CreateShop(ctx context.Context, name, location string) (*models.Shop, error) {
	if name == "" || location == "" {
		return nil, NewValidationError("Name and location are required")
	}

	shop := &models.Shop{
		ID:       uuid.New().String(),
		Name:     name,
		Location: location,
	}
	if err := s.Repo.Create(ctx, shop); err != nil {
		return nil, err
	}
	utils.CacheInvalidate(ctx, shopListCacheKey)
	return shop, nil
}

// ListShops returns all shops with their inventory, served from the
// redis cache when warm.
func (s *DefaultShopService) ListShops(ctx context.Context) ([]models.ShopWithInventory, error) {
	var cached []models.ShopWithInventory
	hit, err := utils.CacheGetJSON(ctx, shopListCacheKey, &cached)
	if err != nil {
		utils.GetLogger().Warn("shop list cache read failed", zap.Error(err))
	}
	if hit {
		return cached, nil
	}

	shops, err := s.Repo.ListWithInventory(ctx)
	if err != nil {
		return nil, err
	}
	if err := utils.CacheSetJSON(ctx, shopListCacheKey, shops, shopListCacheTTL); err != nil {
		utils.GetLogger().Warn("shop list cache write failed", zap.Error(err))
	}
	return shops, nil
}

// GetShop fetches one shop.
func (s *DefaultShopService) GetShop(ctx context.Context, id string) (*models.Shop, error) {
	shop, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if shop == nil {
		return nil, NewNotFoundError("Shop not found")
	}
	return shop, nil
}

// UpdateShop renames or relocates a shop.
func (s *DefaultShopService) UpdateShop(ctx context.Context, id, name, location string) (*models.Shop, error) {
	if name == "" || location == "" {
		return nil, NewValidationError("Name and location are required")
	}

	shop, err := s.GetShop(ctx, id)
	if err != nil {
		return nil, err
	}
	shop.Name = name
	shop.Location = location
	if err := s.Repo.Update(ctx, shop); err != nil {
		return nil, err
	}
	utils.CacheInvalidate(ctx, shopListCacheKey)
	return shop, nil
}

// DeleteShop removes a shop.
func (s *DefaultShopService) DeleteShop(ctx context.Context, id string) error {
	if _, err := s.GetShop(ctx, id); err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	utils.CacheInvalidate(ctx, shopListCacheKey)
	return nil
}

// CreateTimeSlots generates slots for a shop and date across the given
// window, skipping instants that already exist.
func (s *DefaultShopService) CreateTimeSlots(ctx context.Context, shopID, date string, window models.SlotWindow) (int, error) {
	slots, err := s.expandWindow(ctx, shopID, date, window)
	if err != nil {
		return 0, err
	}
	return s.Slots.CreateMany(ctx, slots)
}

// ListTimeSlots returns a shop's slots for a date.
func (s *DefaultShopService) ListTimeSlots(ctx context.Context, shopID, date string) ([]models.TimeSlot, error) {
	slots, err := s.Slots.ListByShopDate(ctx, shopID, date)
	if err != nil {
		return nil, err
	}
	if len(slots) == 0 {
		return nil, NewNotFoundError("No time slots found for this shop and date")
	}
	return slots, nil
}

// RegenerateTimeSlots replaces a shop's slot window for a date. Slots
// falling outside the new window are removed along with their
// availability entries and any bookings referencing them.
func (s *DefaultShopService) RegenerateTimeSlots(ctx context.Context, shopID, date string, window models.SlotWindow) (int, error) {
	slots, err := s.expandWindow(ctx, shopID, date, window)
	if err != nil {
		return 0, err
	}

	valid := make(map[[2]int]bool, len(slots))
	for _, slot := range slots {
		valid[[2]int{slot.Hour, slot.Minute}] = true
	}

	existing, err := s.Slots.ListByShopDate(ctx, shopID, date)
	if err != nil {
		return 0, err
	}

	var stale []string
	for _, slot := range existing {
		if !valid[[2]int{slot.Hour, slot.Minute}] {
			stale = append(stale, slot.ID)
		}
	}

	if len(stale) > 0 {
		removedAvail, err := s.Slots.DeleteAvailabilityByTimeSlotIDs(ctx, stale)
		if err != nil {
			return 0, err
		}
		if err := s.Bookings.DeleteByAvailabilityIDs(ctx, removedAvail); err != nil {
			return 0, err
		}
		if err := s.Slots.DeleteByIDs(ctx, stale); err != nil {
			return 0, err
		}
	}

	return s.Slots.CreateMany(ctx, slots)
}

// SetAvailability marks existing time slots as offered by the shop.
func (s *DefaultShopService) SetAvailability(ctx context.Context, shopID string, timeSlotIDs []string) (int, error) {
	if len(timeSlotIDs) == 0 {
		return 0, NewValidationError("Availability array is required")
	}
	if _, err := s.GetShop(ctx, shopID); err != nil {
		return 0, err
	}

	entries := make([]models.Availability, 0, len(timeSlotIDs))
	for _, slotID := range timeSlotIDs {
		slot, err := s.Slots.GetByID(ctx, slotID)
		if err != nil {
			return 0, err
		}
		if slot == nil || slot.ShopID != shopID {
			return 0, NewValidationError("TimeSlot with id " + slotID + " not found")
		}

		existing, err := s.Slots.FindAvailabilityByTimeSlot(ctx, shopID, slotID)
		if err != nil {
			return 0, err
		}
		if existing != nil {
			return 0, NewValidationError("TimeSlot with id " + slotID + " is already set for this shop")
		}

		entries = append(entries, models.Availability{
			ID:         uuid.New().String(),
			ShopID:     shopID,
			TimeSlotID: slotID,
		})
	}

	return s.Slots.AddAvailability(ctx, entries)
}

// GetAvailability returns the shop's availability joined with slots.
func (s *DefaultShopService) GetAvailability(ctx context.Context, shopID string) ([]models.AvailabilityView, error) {
	if _, err := s.GetShop(ctx, shopID); err != nil {
		return nil, err
	}
	return s.Slots.ListAvailability(ctx, shopID)
}

// RemoveAvailability withdraws one availability entry.
func (s *DefaultShopService) RemoveAvailability(ctx context.Context, shopID, availabilityID string) error {
	entry, err := s.Slots.GetAvailabilityByID(ctx, availabilityID)
	if err != nil {
		return err
	}
	if entry == nil || entry.ShopID != shopID {
		return NewNotFoundError("Availability slot not found for this shop")
	}
	return s.Slots.DeleteAvailability(ctx, availabilityID)
}

// expandWindow validates the window and produces the slot instants.
func (s *DefaultShopService) expandWindow(ctx context.Context, shopID, date string, window models.SlotWindow) ([]models.TimeSlot, error) {
	if window.Interval <= 0 {
		return nil, NewValidationError("Interval must be a positive number of minutes")
	}
	start := window.StartHour*60 + window.StartMinute
	end := window.EndHour*60 + window.EndMinute
	if start >= end {
		return nil, NewValidationError("Start time must be before end time")
	}

	if _, err := s.GetShop(ctx, shopID); err != nil {
		return nil, err
	}

	var slots []models.TimeSlot
	for at := start; at < end; at += window.Interval {
		slots = append(slots, models.TimeSlot{
			ID:     uuid.New().String(),
			ShopID: shopID,
			Date:   date,
			Hour:   at / 60,
			Minute: at % 60,
		})
	}
	return slots, nil
}
