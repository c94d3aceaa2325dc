// File: database/repository/timeslot/timeslot_mongo.go
package timeslotRepo

import (
	"context"
	"fmt"

	"shopline/database"
	"shopline/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoTimeSlotRepo is the MongoDB implementation of TimeSlotRepository.
type MongoTimeSlotRepo struct {
	slots        *mongo.Collection
	availability *mongo.Collection
}

func NewMongoTimeSlotRepo() *MongoTimeSlotRepo {
	return &MongoTimeSlotRepo{
		slots:        database.Collection("timeslots"),
		availability: database.Collection("availability"),
	}
}

// CreateMany inserts the given slots, silently skipping duplicates of
// the unique (shop_id, date, hour, minute) index. Returns the number
// of slots actually inserted.
func (r *MongoTimeSlotRepo) CreateMany(ctx context.Context, slots []models.TimeSlot) (int, error) {
	if len(slots) == 0 {
		return 0, nil
	}
	docs := make([]interface{}, len(slots))
	for i, s := range slots {
		docs[i] = s
	}

	opts := options.InsertMany().SetOrdered(false)
	res, err := r.slots.InsertMany(ctx, docs, opts)
	if err != nil {
		// With unordered inserts, duplicate-key errors are expected for
		// already-existing instants; anything else is a real failure.
		if !mongo.IsDuplicateKeyError(err) {
			return 0, fmt.Errorf("failed to create time slots: %w", err)
		}
	}
	if res == nil {
		return 0, nil
	}
	return len(res.InsertedIDs), nil
}

// GetByID fetches a slot by its ID. Returns (nil, nil) when absent.
func (r *MongoTimeSlotRepo) GetByID(ctx context.Context, id string) (*models.TimeSlot, error) {
	var slot models.TimeSlot
	err := r.slots.FindOne(ctx, bson.M{"id": id}).Decode(&slot)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch time slot %s: %w", id, err)
	}
	return &slot, nil
}

// ListByShopDate returns all slots for a shop on a calendar day,
// ordered by wall clock.
func (r *MongoTimeSlotRepo) ListByShopDate(ctx context.Context, shopID, date string) ([]models.TimeSlot, error) {
	opts := options.Find().SetSort(bson.D{{Key: "hour", Value: 1}, {Key: "minute", Value: 1}})
	cursor, err := r.slots.Find(ctx, bson.M{"shop_id": shopID, "date": date}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list time slots for shop %s on %s: %w", shopID, date, err)
	}
	defer cursor.Close(ctx)

	var slots []models.TimeSlot
	if err := cursor.All(ctx, &slots); err != nil {
		return nil, fmt.Errorf("failed to decode time slots: %w", err)
	}
	return slots, nil
}

// DeleteByIDs removes the given slots.
func (r *MongoTimeSlotRepo) DeleteByIDs(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.slots.DeleteMany(ctx, bson.M{"id": bson.M{"$in": ids}})
	if err != nil {
		return fmt.Errorf("failed to delete time slots: %w", err)
	}
	return nil
}

// ListIDsOlderThan returns the IDs of slots dated before the given
// "YYYY-MM-DD" day.
func (r *MongoTimeSlotRepo) ListIDsOlderThan(ctx context.Context, date string) ([]string, error) {
	opts := options.Find().SetProjection(bson.M{"id": 1})
	cursor, err := r.slots.Find(ctx, bson.M{"date": bson.M{"$lt": date}}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list time slots before %s: %w", date, err)
	}
	defer cursor.Close(ctx)

	var slots []models.TimeSlot
	if err := cursor.All(ctx, &slots); err != nil {
		return nil, fmt.Errorf("failed to decode time slots: %w", err)
	}
	ids := make([]string, 0, len(slots))
	for _, s := range slots {
		ids = append(ids, s.ID)
	}
	return ids, nil
}

// DeleteOlderThan purges slots whose date sorts before the given
// "YYYY-MM-DD" day. Lexicographic order matches calendar order for
// this format.
func (r *MongoTimeSlotRepo) DeleteOlderThan(ctx context.Context, date string) (int64, error) {
	res, err := r.slots.DeleteMany(ctx, bson.M{"date": bson.M{"$lt": date}})
	if err != nil {
		return 0, fmt.Errorf("failed to purge time slots before %s: %w", date, err)
	}
	return res.DeletedCount, nil
}
