package models

import "time"

// PaymentIntent is a locally recorded payment. The gateway itself is
// stubbed; no charge is ever attempted against it.
type PaymentIntent struct {
	ID        string    `bson:"id" json:"id"`
	UserID    string    `bson:"user_id" json:"userId"`
	Amount    int64     `bson:"amount" json:"amount"`
	Currency  string    `bson:"currency" json:"currency"`
	Status    string    `bson:"status" json:"status"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}
