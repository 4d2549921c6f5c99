package domain

import "time"

// Booking links a booked seat to the person holding it. At most one exists per seat.
type Booking struct {
	SeatID    int64     `json:"seat_id" bson:"seat_id"`
	PersonID  int64     `json:"person_id" bson:"person_id"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}
