package repository

import (
	"context"
	"time"

	"github.com/Domenick1991/flightbooking/internal/dataset"
	"github.com/Domenick1991/flightbooking/internal/domain"
)

type AirlineRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Airline, error)
	List(ctx context.Context) ([]domain.Airline, error)
}

type AirportRepository interface {
	GetByCode(ctx context.Context, code string) (*domain.Airport, error)
	List(ctx context.Context) ([]domain.Airport, error)
}

// Offer pairs a flight with its first free seat of the requested class.
type Offer struct {
	Flight domain.Flight
	Seat   domain.Seat
}

type FlightRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Flight, error)
	// FindOffers returns one offer per flight matching q that still has an unbooked
	// seat of class. The seat is the lowest seat id among candidates; flights without
	// one are left out. Result order is unspecified.
	FindOffers(ctx context.Context, q domain.FlightQuery, class domain.TravelClass) ([]Offer, error)
}

type SeatRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Seat, error)
	// Occupancy maps each requested flight that has seats to booked/total.
	Occupancy(ctx context.Context, flightIDs []string) (map[string]float64, error)
	// ReleaseOrphaned unbooks seats booked before the cutoff that have no booking
	// record and returns their ids.
	ReleaseOrphaned(ctx context.Context, bookedBefore time.Time) ([]int64, error)
}

type PersonRepository interface {
	// Create stores p and assigns p.ID from the store's identity sequence.
	Create(ctx context.Context, p *domain.Person) error
	GetByID(ctx context.Context, id int64) (*domain.Person, error)
}

type BookingRepository interface {
	// Book flips the seat's booked flag from false to true and records the booking.
	// It returns false without error when the seat is already booked or unknown.
	Book(ctx context.Context, seatID, personID int64) (bool, error)
	Get(ctx context.Context, seatID, personID int64) (*domain.Booking, error)
}

type StatsRepository interface {
	AirlineStats(ctx context.Context) ([]domain.AirlineStats, error)
}

// Importer replaces the whole store content with a generated dataset.
type Importer interface {
	Import(ctx context.Context, ds *dataset.Dataset) error
}
