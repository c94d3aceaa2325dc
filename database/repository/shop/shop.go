// File: database/repository/shop/shop.go
package shopRepo

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

// ShopRepository defines persistence operations for shops.
type ShopRepository interface {
	EnsureIndexes() error
	Create(ctx context.Context, shop *models.Shop) error
	GetByID(ctx context.Context, id string) (*models.Shop, error)
	ListWithInventory(ctx context.Context) ([]models.ShopWithInventory, error)
	Update(ctx context.Context, shop *models.Shop) error
	Delete(ctx context.Context, id string) error
}

// MongoShopRepo is the MongoDB implementation of ShopRepository.
type MongoShopRepo struct {
	coll *mongo.Collection
}

func NewMongoShopRepo() *MongoShopRepo {
	return &MongoShopRepo{coll: database.Collection("shops")}
}

// EnsureIndexes creates the necessary indexes on the shops collection.
func (r *MongoShopRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetName("name_idx"),
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create shop indexes: %w", err)
	}
	return nil
}

// Create inserts a new shop document.
func (r *MongoShopRepo) Create(ctx context.Context, shop *models.Shop) error {
	now := time.Now()
	shop.CreatedAt = now
	shop.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, shop)
	if err != nil {
		return fmt.Errorf("failed to create shop: %w", err)
	}
	return nil
}

// GetByID fetches a shop by its ID. Returns (nil, nil) when absent.
func (r *MongoShopRepo) GetByID(ctx context.Context, id string) (*models.Shop, error) {
	var shop models.Shop
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&shop)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch shop with id %s: %w", id, err)
	}
	return &shop, nil
}

// ListWithInventory returns all shops joined with their inventory items.
func (r *MongoShopRepo) ListWithInventory(ctx context.Context) ([]models.ShopWithInventory, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "inventory"},
			{Key: "localField", Value: "id"},
			{Key: "foreignField", Value: "shop_id"},
			{Key: "as", Value: "inventory"},
		}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to list shops: %w", err)
	}
	defer cursor.Close(ctx)

	var shops []models.ShopWithInventory
	if err := cursor.All(ctx, &shops); err != nil {
		return nil, fmt.Errorf("failed to decode shops: %w", err)
	}
	return shops, nil
}

// Update modifies an existing shop document.
func (r *MongoShopRepo) Update(ctx context.Context, shop *models.Shop) error {
	shop.UpdatedAt = time.Now()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": shop.ID}, bson.M{"$set": shop})
	if err != nil {
		return fmt.Errorf("failed to update shop with id %s: %w", shop.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("shop with id %s not found", shop.ID)
	}
	return nil
}

// Delete removes a shop document by its ID.
func (r *MongoShopRepo) Delete(ctx context.Context, id string) error {
	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete shop with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("shop with id %s not found", id)
	}
	return nil
}
