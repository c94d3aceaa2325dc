// File: database/repository/inventory/inventory.go
package inventoryRepo

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

// InventoryRepository defines persistence operations for inventory items.
type InventoryRepository interface {
	EnsureIndexes() error
	Create(ctx context.Context, item *models.InventoryItem) error
	GetByID(ctx context.Context, id string) (*models.InventoryItem, error)
	List(ctx context.Context, filter models.InventoryFilter) ([]models.InventoryItem, int64, error)
	Update(ctx context.Context, item *models.InventoryItem) error
	Delete(ctx context.Context, id string) error
}

// MongoInventoryRepo is the MongoDB implementation of InventoryRepository.
type MongoInventoryRepo struct {
	coll *mongo.Collection
}

func NewMongoInventoryRepo() *MongoInventoryRepo {
	return &MongoInventoryRepo{coll: database.Collection("inventory")}
}

// EnsureIndexes creates the necessary indexes on the inventory collection.
func (r *MongoInventoryRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys:    bson.D{{Key: "shop_id", Value: 1}, {Key: "name", Value: 1}},
			Options: options.Index().SetName("shop_name_idx"),
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create inventory indexes: %w", err)
	}
	return nil
}

// Create inserts a new inventory item.
func (r *MongoInventoryRepo) Create(ctx context.Context, item *models.InventoryItem) error {
	now := time.Now()
	item.CreatedAt = now
	item.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, item)
	if err != nil {
		return fmt.Errorf("failed to create inventory item: %w", err)
	}
	return nil
}

// GetByID fetches an item by its ID. Returns (nil, nil) when absent.
func (r *MongoInventoryRepo) GetByID(ctx context.Context, id string) (*models.InventoryItem, error) {
	var item models.InventoryItem
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&item)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch inventory item %s: %w", id, err)
	}
	return &item, nil
}

// List returns a page of items matching the filter plus the total count.
func (r *MongoInventoryRepo) List(ctx context.Context, filter models.InventoryFilter) ([]models.InventoryItem, int64, error) {
	query := bson.M{}
	if filter.ShopID != "" {
		query["shop_id"] = filter.ShopID
	}
	if filter.Name != "" {
		query["name"] = bson.M{"$regex": filter.Name, "$options": "i"}
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 10
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count inventory: %w", err)
	}

	opts := options.Find().
		SetSkip(int64((page - 1) * pageSize)).
		SetLimit(int64(pageSize)).
		SetSort(bson.D{{Key: "name", Value: 1}})

	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list inventory: %w", err)
	}
	defer cursor.Close(ctx)

	var items []models.InventoryItem
	if err := cursor.All(ctx, &items); err != nil {
		return nil, 0, fmt.Errorf("failed to decode inventory: %w", err)
	}
	return items, total, nil
}

// Update modifies an existing inventory item.
func (r *MongoInventoryRepo) Update(ctx context.Context, item *models.InventoryItem) error {
	item.UpdatedAt = time.Now()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": item.ID}, bson.M{"$set": item})
	if err != nil {
		return fmt.Errorf("failed to update inventory item %s: %w", item.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("inventory item %s not found", item.ID)
	}
	return nil
}

// Delete removes an inventory item by its ID.
func (r *MongoInventoryRepo) Delete(ctx context.Context, id string) error {
	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete inventory item %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("inventory item %s not found", id)
	}
	return nil
}
