package domain

import (
	"fmt"
	"time"
)

type TravelClass int

const (
	TravelClassPremium  TravelClass = 1
	TravelClassStandard TravelClass = 2
)

func (c TravelClass) Valid() bool {
	return c == TravelClassPremium || c == TravelClassStandard
}

func ParseTravelClass(v int) (TravelClass, error) {
	c := TravelClass(v)
	if !c.Valid() {
		return 0, fmt.Errorf("%w: travel class must be 1 or 2, got %d", ErrInvalidInput, v)
	}
	return c, nil
}

type Seat struct {
	ID          int64       `json:"seat_id" bson:"seat_id"`
	FlightID    string      `json:"flight_id" bson:"flight_id"`
	Number      string      `json:"number" bson:"number"`
	TravelClass TravelClass `json:"travel_class" bson:"travel_class"`
	Price       float64     `json:"price" bson:"price"`
	Booked      bool        `json:"booked" bson:"booked"`
	BookedAt    *time.Time  `json:"booked_at,omitempty" bson:"booked_at,omitempty"`
}
