package domain

import "time"

// FlightDetails is a flight with its foreign keys resolved.
type FlightDetails struct {
	Flight
	Airline          Airline `json:"airline"`
	DepartureAirport Airport `json:"departure_airport"`
	ArrivalAirport   Airport `json:"arrival_airport"`
}

// SeatOffer is a free seat returned by search together with its flight.
type SeatOffer struct {
	Seat
	Flight FlightDetails `json:"flight"`
}

// BoardingPass is the read-only projection shown after a successful booking.
type BoardingPass struct {
	SeatID      int64       `json:"seat_id"`
	PersonID    int64       `json:"person_id"`
	Name        string      `json:"name"`
	PassportNo  string      `json:"passport_no"`
	FlightID    string      `json:"flight_id"`
	AirlineName string      `json:"airline_name"`
	From        string      `json:"from"`
	To          string      `json:"to"`
	Seat        string      `json:"seat"`
	TravelClass TravelClass `json:"travel_class"`
	Departure   time.Time   `json:"departure"`
	Arrival     time.Time   `json:"arrival"`
	Date        string      `json:"date"`
	Time        string      `json:"time"`
}

func NewBoardingPass(person Person, seat Seat, flight FlightDetails) BoardingPass {
	return BoardingPass{
		SeatID:      seat.ID,
		PersonID:    person.ID,
		Name:        person.Name,
		PassportNo:  person.Passport,
		FlightID:    flight.ID,
		AirlineName: flight.Airline.Name,
		From:        flight.DepartureAirportID,
		To:          flight.ArrivalAirportID,
		Seat:        seat.Number,
		TravelClass: seat.TravelClass,
		Departure:   flight.Date,
		Arrival:     flight.ArrivalTime(),
		Date:        flight.Date.Format("2006-01-02"),
		Time:        flight.Date.Format("15:04"),
	}
}

// AirlineStats aggregates seat inventory per airline.
type AirlineStats struct {
	AirlineID      int64   `json:"airline_id" bson:"_id"`
	Occupancy      float64 `json:"occupancy" bson:"occupancy"`
	AirportsServed int     `json:"airports_served" bson:"airports_served"`
	AvgPrice       float64 `json:"avg_price" bson:"avg_price"`
}
