// File: database/repository/timeslot/availability.go
package timeslotRepo

import (
	"context"
	"fmt"

	"shopline/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AddAvailability inserts availability entries, skipping duplicates of
// the unique (shop_id, time_slot_id) index. Returns the number inserted.
func (r *MongoTimeSlotRepo) AddAvailability(ctx context.Context, entries []models.Availability) (int, error) {
	if len(entries) == 0 {
		return 0, nil
	}
	docs := make([]interface{}, len(entries))
	for i, e := range entries {
		docs[i] = e
	}

	opts := options.InsertMany().SetOrdered(false)
	res, err := r.availability.InsertMany(ctx, docs, opts)
	if err != nil && !mongo.IsDuplicateKeyError(err) {
		return 0, fmt.Errorf("failed to add availability: %w", err)
	}
	if res == nil {
		return 0, nil
	}
	return len(res.InsertedIDs), nil
}

// GetAvailabilityByID fetches an availability entry by its ID.
// Returns (nil, nil) when absent.
func (r *MongoTimeSlotRepo) GetAvailabilityByID(ctx context.Context, id string) (*models.Availability, error) {
	var entry models.Availability
	err := r.availability.FindOne(ctx, bson.M{"id": id}).Decode(&entry)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch availability %s: %w", id, err)
	}
	return &entry, nil
}

// FindAvailabilityByTimeSlot looks up the entry for a (shop, slot) pair.
// Returns (nil, nil) when absent.
func (r *MongoTimeSlotRepo) FindAvailabilityByTimeSlot(ctx context.Context, shopID, timeSlotID string) (*models.Availability, error) {
	var entry models.Availability
	err := r.availability.FindOne(ctx, bson.M{"shop_id": shopID, "time_slot_id": timeSlotID}).Decode(&entry)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch availability for slot %s: %w", timeSlotID, err)
	}
	return &entry, nil
}

// FindAvailabilityForSlot resolves a (shop, date, hour, minute) instant
// to its availability entry, or (nil, nil) when the shop does not offer
// that instant.
func (r *MongoTimeSlotRepo) FindAvailabilityForSlot(ctx context.Context, shopID, date string, hour, minute int) (*models.Availability, error) {
	var slot models.TimeSlot
	err := r.slots.FindOne(ctx, bson.M{
		"shop_id": shopID,
		"date":    date,
		"hour":    hour,
		"minute":  minute,
	}).Decode(&slot)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve slot for shop %s at %s %02d:%02d: %w", shopID, date, hour, minute, err)
	}

	return r.FindAvailabilityByTimeSlot(ctx, shopID, slot.ID)
}

// ListAvailability returns a shop's availability entries joined with
// their time slots.
func (r *MongoTimeSlotRepo) ListAvailability(ctx context.Context, shopID string) ([]models.AvailabilityView, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{{Key: "shop_id", Value: shopID}}}},
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "timeslots"},
			{Key: "localField", Value: "time_slot_id"},
			{Key: "foreignField", Value: "id"},
			{Key: "as", Value: "time_slot"},
		}}},
		bson.D{{Key: "$unwind", Value: "$time_slot"}},
	}

	cursor, err := r.availability.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to list availability for shop %s: %w", shopID, err)
	}
	defer cursor.Close(ctx)

	var views []models.AvailabilityView
	if err := cursor.All(ctx, &views); err != nil {
		return nil, fmt.Errorf("failed to decode availability: %w", err)
	}
	return views, nil
}

// DeleteAvailability removes a single availability entry.
func (r *MongoTimeSlotRepo) DeleteAvailability(ctx context.Context, id string) error {
	result, err := r.availability.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete availability %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("availability %s not found", id)
	}
	return nil
}

// DeleteAvailabilityByTimeSlotIDs removes all entries referencing the
// given slots and returns the IDs of the removed entries so dependent
// bookings can be cascaded.
func (r *MongoTimeSlotRepo) DeleteAvailabilityByTimeSlotIDs(ctx context.Context, timeSlotIDs []string) ([]string, error) {
	if len(timeSlotIDs) == 0 {
		return nil, nil
	}
	filter := bson.M{"time_slot_id": bson.M{"$in": timeSlotIDs}}

	cursor, err := r.availability.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to find availability for slots: %w", err)
	}
	var entries []models.Availability
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode availability for slots: %w", err)
	}

	removed := make([]string, 0, len(entries))
	for _, e := range entries {
		removed = append(removed, e.ID)
	}

	if _, err := r.availability.DeleteMany(ctx, filter); err != nil {
		return nil, fmt.Errorf("failed to delete availability for slots: %w", err)
	}
	return removed, nil
}
