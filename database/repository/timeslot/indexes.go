// File: database/repository/timeslot/indexes.go
package timeslotRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the necessary indexes on the timeslots and
// availability collections.
func (r *MongoTimeSlotRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	slotIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		// A slot is one instant per shop; duplicate generation runs must no-op.
		{
			Keys: bson.D{
				{Key: "shop_id", Value: 1},
				{Key: "date", Value: 1},
				{Key: "hour", Value: 1},
				{Key: "minute", Value: 1},
			},
			Options: options.Index().SetUnique(true).SetName("unique_shop_instant"),
		},
	}
	if _, err := r.slots.Indexes().CreateMany(ctx, slotIndexes); err != nil {
		return fmt.Errorf("failed to create timeslot indexes: %w", err)
	}

	availIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys: bson.D{
				{Key: "shop_id", Value: 1},
				{Key: "time_slot_id", Value: 1},
			},
			Options: options.Index().SetUnique(true).SetName("unique_shop_slot"),
		},
	}
	if _, err := r.availability.Indexes().CreateMany(ctx, availIndexes); err != nil {
		return fmt.Errorf("failed to create availability indexes: %w", err)
	}
	return nil
}
