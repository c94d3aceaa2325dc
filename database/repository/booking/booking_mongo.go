// File: database/repository/booking/booking_mongo.go
package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"shopline/database"
	"shopline/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoBookingRepo is the MongoDB implementation of BookingRepository.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

func NewMongoBookingRepo() *MongoBookingRepo {
	return &MongoBookingRepo{coll: database.Collection("bookings")}
}

// EnsureIndexes creates the necessary indexes on the bookings collection.
// The unique (shop_id, date, hour) index is mandatory infrastructure:
// it is the mutual-exclusion primitive the appointment worker relies on.
func (r *MongoBookingRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys: bson.D{
				{Key: "shop_id", Value: 1},
				{Key: "date", Value: 1},
				{Key: "hour", Value: 1},
			},
			Options: options.Index().SetUnique(true).SetName("unique_shop_date_hour"),
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create booking indexes: %w", err)
	}
	return nil
}

// Create inserts a booking. Fails with ErrSlotTaken when the unique
// slot index rejects the write.
func (r *MongoBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	booking.CreatedAt = time.Now()

	_, err := r.coll.InsertOne(ctx, booking)
	if mongo.IsDuplicateKeyError(err) {
		return ErrSlotTaken
	}
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

// FindBySlot looks up the booking holding (shopID, date, hour).
// Returns (nil, nil) when the slot is free.
func (r *MongoBookingRepo) FindBySlot(ctx context.Context, shopID, date string, hour int) (*models.Booking, error) {
	var booking models.Booking
	err := r.coll.FindOne(ctx, bson.M{"shop_id": shopID, "date": date, "hour": hour}).Decode(&booking)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to check slot for shop %s at %s hour %d: %w", shopID, date, hour, err)
	}
	return &booking, nil
}

// GetByID fetches a booking by its ID. Returns (nil, nil) when absent.
func (r *MongoBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	var booking models.Booking
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&booking)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booking %s: %w", id, err)
	}
	return &booking, nil
}

// List returns all bookings, newest first.
func (r *MongoBookingRepo) List(ctx context.Context) ([]models.Booking, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}

// UpdateSlot moves a booking to a different (shopID, date, hour).
// Fails with ErrSlotTaken when the target slot is held by another
// booking; the unique index arbitrates the move exactly as it does
// the original commit.
func (r *MongoBookingRepo) UpdateSlot(ctx context.Context, id, shopID, date string, hour int) (*models.Booking, error) {
	update := bson.M{"$set": bson.M{"shop_id": shopID, "date": date, "hour": hour}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var booking models.Booking
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"id": id}, update, opts).Decode(&booking)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if mongo.IsDuplicateKeyError(err) {
		return nil, ErrSlotTaken
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update booking %s: %w", id, err)
	}
	return &booking, nil
}

// Delete removes a booking by its ID.
func (r *MongoBookingRepo) Delete(ctx context.Context, id string) error {
	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete booking %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("booking %s not found", id)
	}
	return nil
}

// DeleteByAvailabilityIDs cascades booking deletion when availability
// entries are withdrawn.
func (r *MongoBookingRepo) DeleteByAvailabilityIDs(ctx context.Context, availabilityIDs []string) error {
	if len(availabilityIDs) == 0 {
		return nil
	}
	_, err := r.coll.DeleteMany(ctx, bson.M{"availability_id": bson.M{"$in": availabilityIDs}})
	if err != nil {
		return fmt.Errorf("failed to cascade booking deletion: %w", err)
	}
	return nil
}
