package shop

import (
	"context"
	"errors"
	"testing"

	bookingRepo "shopline/database/repository/booking"
	shopRepo "shopline/database/repository/shop"
	timeslotRepo "shopline/database/repository/timeslot"
	"shopline/models"
)

type fakeShopRepo struct {
	shopRepo.ShopRepository
	getByID func(ctx context.Context, id string) (*models.Shop, error)
}

func (f *fakeShopRepo) GetByID(ctx context.Context, id string) (*models.Shop, error) {
	return f.getByID(ctx, id)
}

type fakeSlotRepo struct {
	timeslotRepo.TimeSlotRepository
	created []models.TimeSlot

	listByShopDate             func(ctx context.Context, shopID, date string) ([]models.TimeSlot, error)
	getByID                    func(ctx context.Context, id string) (*models.TimeSlot, error)
	findAvailabilityByTimeSlot func(ctx context.Context, shopID, timeSlotID string) (*models.Availability, error)
	getAvailabilityByID        func(ctx context.Context, id string) (*models.Availability, error)

	deletedSlotIDs        []string
	deletedAvailBySlotIDs []string
	removedAvailIDs       []string
	addedAvailability     []models.Availability
	deletedAvailability   []string
}

func (f *fakeSlotRepo) CreateMany(ctx context.Context, slots []models.TimeSlot) (int, error) {
	f.created = append(f.created, slots...)
	return len(slots), nil
}

func (f *fakeSlotRepo) ListByShopDate(ctx context.Context, shopID, date string) ([]models.TimeSlot, error) {
	if f.listByShopDate != nil {
		return f.listByShopDate(ctx, shopID, date)
	}
	return nil, nil
}

func (f *fakeSlotRepo) GetByID(ctx context.Context, id string) (*models.TimeSlot, error) {
	return f.getByID(ctx, id)
}

func (f *fakeSlotRepo) FindAvailabilityByTimeSlot(ctx context.Context, shopID, timeSlotID string) (*models.Availability, error) {
	return f.findAvailabilityByTimeSlot(ctx, shopID, timeSlotID)
}

func (f *fakeSlotRepo) GetAvailabilityByID(ctx context.Context, id string) (*models.Availability, error) {
	return f.getAvailabilityByID(ctx, id)
}

func (f *fakeSlotRepo) AddAvailability(ctx context.Context, entries []models.Availability) (int, error) {
	f.addedAvailability = append(f.addedAvailability, entries...)
	return len(entries), nil
}

func (f *fakeSlotRepo) DeleteAvailability(ctx context.Context, id string) error {
	f.deletedAvailability = append(f.deletedAvailability, id)
	return nil
}

func (f *fakeSlotRepo) DeleteByIDs(ctx context.Context, ids []string) error {
	f.deletedSlotIDs = append(f.deletedSlotIDs, ids...)
	return nil
}

func (f *fakeSlotRepo) DeleteAvailabilityByTimeSlotIDs(ctx context.Context, timeSlotIDs []string) ([]string, error) {
	f.deletedAvailBySlotIDs = append(f.deletedAvailBySlotIDs, timeSlotIDs...)
	return f.removedAvailIDs, nil
}

type fakeBookingRepo struct {
	bookingRepo.BookingRepository
	deletedByAvail []string
}

func (f *fakeBookingRepo) DeleteByAvailabilityIDs(ctx context.Context, availabilityIDs []string) error {
	f.deletedByAvail = append(f.deletedByAvail, availabilityIDs...)
	return nil
}

func knownShop(ctx context.Context, id string) (*models.Shop, error) {
	return &models.Shop{ID: id, Name: "Corner Barber", Location: "Main St"}, nil
}

func newTestService(slots *fakeSlotRepo, bookings *fakeBookingRepo) *DefaultShopService {
	if slots == nil {
		slots = &fakeSlotRepo{}
	}
	if bookings == nil {
		bookings = &fakeBookingRepo{}
	}
	return &DefaultShopService{
		Repo:     &fakeShopRepo{getByID: knownShop},
		Slots:    slots,
		Bookings: bookings,
	}
}

func TestCreateTimeSlotsExpandsWindow(t *testing.T) {
	slots := &fakeSlotRepo{}
	svc := newTestService(slots, nil)

	count, err := svc.CreateTimeSlots(context.Background(), "shop-1", "2026-09-01", models.SlotWindow{
		StartHour: 9,
		EndHour:   12,
		Interval:  30,
	})
	if err != nil {
		t.Fatalf("CreateTimeSlots: %v", err)
	}
	if count != 6 {
		t.Fatalf("expected 6 slots for 9:00-12:00 every 30m, got %d", count)
	}

	first, last := slots.created[0], slots.created[len(slots.created)-1]
	if first.Hour != 9 || first.Minute != 0 {
		t.Errorf("first slot at %02d:%02d, want 09:00", first.Hour, first.Minute)
	}
	if last.Hour != 11 || last.Minute != 30 {
		t.Errorf("last slot at %02d:%02d, want 11:30", last.Hour, last.Minute)
	}
	for _, slot := range slots.created {
		if slot.ShopID != "shop-1" || slot.Date != "2026-09-01" {
			t.Errorf("slot carries wrong shop or date: %+v", slot)
		}
	}
}

func TestCreateTimeSlotsRejectsBadWindow(t *testing.T) {
	cases := []struct {
		name   string
		window models.SlotWindow
	}{
		{"zero interval", models.SlotWindow{StartHour: 9, EndHour: 12}},
		{"negative interval", models.SlotWindow{StartHour: 9, EndHour: 12, Interval: -15}},
		{"start after end", models.SlotWindow{StartHour: 14, EndHour: 12, Interval: 30}},
		{"start equals end", models.SlotWindow{StartHour: 12, EndHour: 12, Interval: 30}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := newTestService(nil, nil)
			_, err := svc.CreateTimeSlots(context.Background(), "shop-1", "2026-09-01", tc.window)
			var validationErr *ValidationError
			if !errors.As(err, &validationErr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
		})
	}
}

func TestRegenerateTimeSlotsCascadesStaleSlots(t *testing.T) {
	slots := &fakeSlotRepo{
		listByShopDate: func(ctx context.Context, shopID, date string) ([]models.TimeSlot, error) {
			return []models.TimeSlot{
				{ID: "keep", ShopID: shopID, Date: date, Hour: 10, Minute: 0},
				{ID: "stale", ShopID: shopID, Date: date, Hour: 8, Minute: 0},
			}, nil
		},
		removedAvailIDs: []string{"avail-stale"},
	}
	bookings := &fakeBookingRepo{}
	svc := newTestService(slots, bookings)

	_, err := svc.RegenerateTimeSlots(context.Background(), "shop-1", "2026-09-01", models.SlotWindow{
		StartHour: 10,
		EndHour:   12,
		Interval:  60,
	})
	if err != nil {
		t.Fatalf("RegenerateTimeSlots: %v", err)
	}

	if len(slots.deletedSlotIDs) != 1 || slots.deletedSlotIDs[0] != "stale" {
		t.Errorf("expected only the stale slot deleted, got %v", slots.deletedSlotIDs)
	}
	if len(slots.deletedAvailBySlotIDs) != 1 || slots.deletedAvailBySlotIDs[0] != "stale" {
		t.Errorf("expected availability cascade for stale slot, got %v", slots.deletedAvailBySlotIDs)
	}
	if len(bookings.deletedByAvail) != 1 || bookings.deletedByAvail[0] != "avail-stale" {
		t.Errorf("expected bookings cascade for removed availability, got %v", bookings.deletedByAvail)
	}
}

func TestSetAvailabilityRejectsForeignSlot(t *testing.T) {
	slots := &fakeSlotRepo{
		getByID: func(ctx context.Context, id string) (*models.TimeSlot, error) {
			return &models.TimeSlot{ID: id, ShopID: "other-shop"}, nil
		},
	}
	svc := newTestService(slots, nil)

	_, err := svc.SetAvailability(context.Background(), "shop-1", []string{"slot-1"})
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError for foreign slot, got %v", err)
	}
	if len(slots.addedAvailability) != 0 {
		t.Errorf("rejected request must not add availability, got %v", slots.addedAvailability)
	}
}

func TestSetAvailabilityRejectsDuplicate(t *testing.T) {
	slots := &fakeSlotRepo{
		getByID: func(ctx context.Context, id string) (*models.TimeSlot, error) {
			return &models.TimeSlot{ID: id, ShopID: "shop-1"}, nil
		},
		findAvailabilityByTimeSlot: func(ctx context.Context, shopID, timeSlotID string) (*models.Availability, error) {
			return &models.Availability{ID: "avail-1", ShopID: shopID, TimeSlotID: timeSlotID}, nil
		},
	}
	svc := newTestService(slots, nil)

	_, err := svc.SetAvailability(context.Background(), "shop-1", []string{"slot-1"})
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError for duplicate availability, got %v", err)
	}
}

func TestRemoveAvailabilityWrongShop(t *testing.T) {
	slots := &fakeSlotRepo{
		getAvailabilityByID: func(ctx context.Context, id string) (*models.Availability, error) {
			return &models.Availability{ID: id, ShopID: "other-shop"}, nil
		},
	}
	svc := newTestService(slots, nil)

	err := svc.RemoveAvailability(context.Background(), "shop-1", "avail-1")
	var notFoundErr *NotFoundError
	if !errors.As(err, &notFoundErr) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if len(slots.deletedAvailability) != 0 {
		t.Errorf("entry owned by another shop must not be deleted, got %v", slots.deletedAvailability)
	}
}
