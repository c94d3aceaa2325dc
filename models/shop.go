package models

import "time"

// Shop is a tenant offering bookable time slots and inventory.
type Shop struct {
	ID        string    `bson:"id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Location  string    `bson:"location" json:"location"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// ShopWithInventory is the list view joining a shop with its inventory summary.
type ShopWithInventory struct {
	Shop      `bson:",inline"`
	Inventory []InventoryItem `bson:"inventory" json:"inventory"`
}
