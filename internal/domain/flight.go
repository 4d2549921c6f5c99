package domain

import "time"

type Flight struct {
	ID                 string    `json:"flight_id" bson:"flight_id"`
	AirlineID          int64     `json:"airline_id" bson:"airline_id"`
	DepartureAirportID string    `json:"departure_airport_id" bson:"departure_airport_id"`
	ArrivalAirportID   string    `json:"arrival_airport_id" bson:"arrival_airport_id"`
	Plane              string    `json:"plane" bson:"plane"`
	Date               time.Time `json:"date" bson:"date"`
	DurationMinutes    int       `json:"duration_mins" bson:"duration_mins"`
}

func (f Flight) ArrivalTime() time.Time {
	return f.Date.Add(time.Duration(f.DurationMinutes) * time.Minute)
}

// FlightQuery selects flights departing from Origin within [From, To]. An empty
// Destination matches any arrival airport.
type FlightQuery struct {
	Origin      string
	Destination string
	From        time.Time
	To          time.Time
}
