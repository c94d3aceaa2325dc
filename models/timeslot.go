package models

// TimeSlot is a schedulable instant for a shop. Dates are calendar days
// in "YYYY-MM-DD" form; hour/minute are the local wall clock.
type TimeSlot struct {
	ID     string `bson:"id" json:"id"`
	ShopID string `bson:"shop_id" json:"shopId"`
	Date   string `bson:"date" json:"date"`
	Hour   int    `bson:"hour" json:"hour"`
	Minute int    `bson:"minute" json:"minute"`
}

// Availability marks a TimeSlot as offered by a shop. A slot only
// becomes bookable once an Availability record exists for it.
type Availability struct {
	ID         string `bson:"id" json:"id"`
	ShopID     string `bson:"shop_id" json:"shopId"`
	TimeSlotID string `bson:"time_slot_id" json:"timeSlotId"`
}

// AvailabilityView joins an availability entry with its time slot.
type AvailabilityView struct {
	ID         string   `bson:"id" json:"id"`
	TimeSlotID string   `bson:"time_slot_id" json:"timeSlotId"`
	TimeSlot   TimeSlot `bson:"time_slot" json:"timeSlot"`
}

// SlotWindow describes a generation window for time slots.
type SlotWindow struct {
	StartHour   int `json:"startHour"`
	StartMinute int `json:"startMinute"`
	EndHour     int `json:"endHour"`
	EndMinute   int `json:"endMinute"`
	Interval    int `json:"interval"` // minutes between slots
}
