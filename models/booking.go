package models

import "time"

// Booking is the persisted, committed reservation of a slot by a user.
// At most one booking may exist for a given (shop_id, date, hour); the
// bookings collection enforces this with a unique compound index.
type Booking struct {
	ID             string    `bson:"id" json:"id"`
	UserID         string    `bson:"user_id" json:"userId"`
	ShopID         string    `bson:"shop_id" json:"shopId"`
	Date           string    `bson:"date" json:"date"`
	Hour           int       `bson:"hour" json:"hour"`
	AvailabilityID string    `bson:"availability_id" json:"availabilityId"`
	CreatedAt      time.Time `bson:"created_at" json:"createdAt"`
}

// BookingRequest is the transient queue payload for a desired booking.
// It lives only as a message on the appointments queue and dies when
// the worker finishes processing it.
type BookingRequest struct {
	UserID         string `json:"userId"`
	ShopID         string `json:"shopId"`
	Date           string `json:"date"`
	Hour           int    `json:"hour"`
	Minute         int    `json:"minute"`
	AvailabilityID string `json:"availabilityId"`
}

// BookingView is the joined read model returned by the appointments API.
type BookingView struct {
	ID        string    `json:"id"`
	User      *User     `json:"user,omitempty"`
	Shop      *Shop     `json:"shop,omitempty"`
	TimeSlot  *TimeSlot `json:"timeSlot,omitempty"`
	Date      string    `json:"date"`
	Hour      int       `json:"hour"`
	CreatedAt time.Time `json:"createdAt"`
}
