// File: database/repository/payment/payment.go
package paymentRepo

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

// PaymentRepository defines persistence for locally recorded payments.
type PaymentRepository interface {
	EnsureIndexes() error
	Create(ctx context.Context, intent *models.PaymentIntent) error
	GetByID(ctx context.Context, id string) (*models.PaymentIntent, error)
}

// MongoPaymentRepo is the MongoDB implementation of PaymentRepository.
type MongoPaymentRepo struct {
	coll *mongo.Collection
}

func NewMongoPaymentRepo() *MongoPaymentRepo {
	return &MongoPaymentRepo{coll: database.Collection("payments")}
}

// EnsureIndexes creates the necessary indexes on the payments collection.
func (r *MongoPaymentRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("unique_id"),
	})
	if err != nil {
		return fmt.Errorf("failed to create payment indexes: %w", err)
	}
	return nil
}

// Create inserts a new payment intent.
func (r *MongoPaymentRepo) Create(ctx context.Context, intent *models.PaymentIntent) error {
	intent.CreatedAt = time.Now()
	_, err := r.coll.InsertOne(ctx, intent)
	if err != nil {
		return fmt.Errorf("failed to create payment intent: %w", err)
	}
	return nil
}

// GetByID fetches a payment intent. Returns (nil, nil) when absent.
func (r *MongoPaymentRepo) GetByID(ctx context.Context, id string) (*models.PaymentIntent, error) {
	var intent models.PaymentIntent
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&intent)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch payment intent %s: %w", id, err)
	}
	return &intent, nil
}
