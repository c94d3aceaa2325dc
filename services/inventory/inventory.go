package inventory

import (
	"context"

	inventoryRepo "shopline/database/repository/inventory"
	shopRepo "shopline/database/repository/shop"
	"shopline/models"

	"github.com/google/uuid"
)

// ValidationError rejects malformed input (400).
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NotFoundError signals an unknown shop or item (404).
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

// InventoryService manages shop stock.
type InventoryService interface {
	List(ctx context.Context, filter models.InventoryFilter) ([]models.InventoryItem, int64, error)
	Add(ctx context.Context, shopID, name string, quantity int, price float64) (*models.InventoryItem, error)
	Update(ctx context.Context, id, name string, quantity int, price float64) (*models.InventoryItem, error)
	Delete(ctx context.Context, id string) error
}

// DefaultInventoryService is the production implementation.
type DefaultInventoryService struct {
	Repo  inventoryRepo.InventoryRepository
	Shops shopRepo.ShopRepository
}

// List returns a filtered page of items plus the total count.
func (s *DefaultInventoryService) List(ctx context.Context, filter models.InventoryFilter) ([]models.InventoryItem, int64, error) {
	return s.Repo.List(ctx, filter)
}

// Add stocks a new item for a shop.
func (s *DefaultInventoryService) Add(ctx context.Context, shopID, name string, quantity int, price float64) (*models.InventoryItem, error) {
	if err := validateItem(name, quantity, price); err != nil {
		return nil, err
	}
	if shopID == "" {
		return nil, &ValidationError{Message: "shopId is required"}
	}

	shop, err := s.Shops.GetByID(ctx, shopID)
	if err != nil {
		return nil, err
	}
	if shop == nil {
		return nil, &NotFoundError{Message: "Shop not found"}
	}

	item := &models.InventoryItem{
		ID:       uuid.New().String(),
		ShopID:   shopID,
		Name:     name,
		Quantity: quantity,
		Price:    price,
	}
	if err := s.Repo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Update rewrites an item's fields.
func (s *DefaultInventoryService) Update(ctx context.Context, id, name string, quantity int, price float64) (*models.InventoryItem, error) {
	if err := validateItem(name, quantity, price); err != nil {
		return nil, err
	}

	item, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, &NotFoundError{Message: "Inventory item not found"}
	}

	item.Name = name
	item.Quantity = quantity
	item.Price = price
	if err := s.Repo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Delete removes an item.
func (s *DefaultInventoryService) Delete(ctx context.Context, id string) error {
	item, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if item == nil {
		return &NotFoundError{Message: "Inventory item not found"}
	}
	return s.Repo.Delete(ctx, id)
}

func validateItem(name string, quantity int, price float64) error {
	if name == "" {
		return &ValidationError{Message: "Name is required"}
	}
	if quantity < 1 {
		return &ValidationError{Message: "Quantity must be a positive integer"}
	}
	if price <= 0 {
		return &ValidationError{Message: "Price must be a positive number"}
	}
	return nil
}
