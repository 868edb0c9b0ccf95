package models

import "time"

type Appointment struct {
	ID           string       `json:"_id" bson:"_id,omitempty"`
	User         string       `json:"user" bson:"user"`
	Doctor       string       `json:"doctor" bson:"doctor"`
	Day          string       `json:"day" bson:"day"`
	Date         string       `json:"date" bson:"date"`
	Place        string       `json:"place" bson:"place"`
	TimeInterval TimeInterval `json:"timeInterval" bson:"timeInterval"`
	// SlotInterval is the published interval the seat was taken from.
	SlotInterval TimeInterval `json:"slotInterval" bson:"slotInterval"`
	BookedAt     time.Time    `json:"bookedAt" bson:"bookedAt"`
	Status       string       `json:"status" bson:"status"`
}

// AppointmentSlotFilter identifies the published slot an appointment was booked against.
type AppointmentSlotFilter struct {
	Doctor       string
	Day          string
	Place        string
	TimeInterval TimeInterval
	Status       string
}
