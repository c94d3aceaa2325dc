package models

import "time"

// InventoryItem is a stocked product belonging to a shop.
type InventoryItem struct {
	ID        string    `bson:"id" json:"id"`
	ShopID    string    `bson:"shop_id" json:"shopId"`
	Name      string    `bson:"name" json:"name"`
	Quantity  int       `bson:"quantity" json:"quantity"`
	Price     float64   `bson:"price" json:"price"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// InventoryFilter narrows inventory listings.
type InventoryFilter struct {
	ShopID   string
	Name     string
	Page     int
	PageSize int
}
