// File: database/repository/message/message.go
package messageRepo

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

// MessageRepository defines persistence operations for messages.
type MessageRepository interface {
	EnsureIndexes() error
	Create(ctx context.Context, msg *models.Message) error
	ListByConversation(ctx context.Context, conversationID string) ([]models.Message, error)
	MarkRead(ctx context.Context, id, userID string) error
}

// MongoMessageRepo is the MongoDB implementation of MessageRepository.
type MongoMessageRepo struct {
	coll *mongo.Collection
}

func NewMongoMessageRepo() *MongoMessageRepo {
	return &MongoMessageRepo{coll: database.Collection("messages")}
}

// EnsureIndexes creates the necessary indexes on the messages collection.
func (r *MongoMessageRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys:    bson.D{{Key: "conversation_id", Value: 1}, {Key: "created_at", Value: 1}},
			Options: options.Index().SetName("conversation_created_idx"),
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create message indexes: %w", err)
	}
	return nil
}

// Create inserts a new message.
func (r *MongoMessageRepo) Create(ctx context.Context, msg *models.Message) error {
	msg.CreatedAt = time.Now()
	_, err := r.coll.InsertOne(ctx, msg)
	if err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}
	return nil
}

// ListByConversation returns a conversation's messages in send order.
func (r *MongoMessageRepo) ListByConversation(ctx context.Context, conversationID string) ([]models.Message, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"conversation_id": conversationID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages for conversation %s: %w", conversationID, err)
	}
	defer cursor.Close(ctx)

	var messages []models.Message
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, fmt.Errorf("failed to decode messages: %w", err)
	}
	return messages, nil
}

// MarkRead stamps the read time on a message addressed to userID.
func (r *MongoMessageRepo) MarkRead(ctx context.Context, id, userID string) error {
	now := time.Now()
	filter := bson.M{"id": id, "user_id": bson.M{"$ne": userID}, "read_at": nil}
	update := bson.M{"$set": bson.M{"read_at": now}}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to mark message %s read: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("message %s not found or already read", id)
	}
	return nil
}
