// Package mocks holds testify mocks of the repository interfaces.
package mocks

import (
	"context"
	"time"

	"github.com/Domenick1991/flightbooking/internal/dataset"
	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/repository"
	"github.com/stretchr/testify/mock"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

func register[M interface{ AssertExpectations(mock.TestingT) bool }](t testingT, m M) M {
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

type AirlineRepository struct{ mock.Mock }

func NewAirlineRepository(t testingT) *AirlineRepository {
	return register(t, &AirlineRepository{})
}

func (m *AirlineRepository) GetByID(ctx context.Context, id int64) (*domain.Airline, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Airline), args.Error(1)
}

func (m *AirlineRepository) List(ctx context.Context) ([]domain.Airline, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Airline), args.Error(1)
}

type AirportRepository struct{ mock.Mock }

func NewAirportRepository(t testingT) *AirportRepository {
	return register(t, &AirportRepository{})
}

func (m *AirportRepository) GetByCode(ctx context.Context, code string) (*domain.Airport, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Airport), args.Error(1)
}

func (m *AirportRepository) List(ctx context.Context) ([]domain.Airport, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Airport), args.Error(1)
}

type FlightRepository struct{ mock.Mock }

func NewFlightRepository(t testingT) *FlightRepository {
	return register(t, &FlightRepository{})
}

func (m *FlightRepository) GetByID(ctx context.Context, id string) (*domain.Flight, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

func (m *FlightRepository) FindOffers(ctx context.Context, q domain.FlightQuery, class domain.TravelClass) ([]repository.Offer, error) {
	args := m.Called(ctx, q, class)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.Offer), args.Error(1)
}

type SeatRepository struct{ mock.Mock }

func NewSeatRepository(t testingT) *SeatRepository {
	return register(t, &SeatRepository{})
}

func (m *SeatRepository) GetByID(ctx context.Context, id int64) (*domain.Seat, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Seat), args.Error(1)
}

func (m *SeatRepository) Occupancy(ctx context.Context, flightIDs []string) (map[string]float64, error) {
	args := m.Called(ctx, flightIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]float64), args.Error(1)
}

func (m *SeatRepository) ReleaseOrphaned(ctx context.Context, bookedBefore time.Time) ([]int64, error) {
	args := m.Called(ctx, bookedBefore)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

type PersonRepository struct{ mock.Mock }

func NewPersonRepository(t testingT) *PersonRepository {
	return register(t, &PersonRepository{})
}

func (m *PersonRepository) Create(ctx context.Context, p *domain.Person) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *PersonRepository) GetByID(ctx context.Context, id int64) (*domain.Person, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Person), args.Error(1)
}

type BookingRepository struct{ mock.Mock }

func NewBookingRepository(t testingT) *BookingRepository {
	return register(t, &BookingRepository{})
}

func (m *BookingRepository) Book(ctx context.Context, seatID, personID int64) (bool, error) {
	args := m.Called(ctx, seatID, personID)
	return args.Bool(0), args.Error(1)
}

func (m *BookingRepository) Get(ctx context.Context, seatID, personID int64) (*domain.Booking, error) {
	args := m.Called(ctx, seatID, personID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

type StatsRepository struct{ mock.Mock }

func NewStatsRepository(t testingT) *StatsRepository {
	return register(t, &StatsRepository{})
}

func (m *StatsRepository) AirlineStats(ctx context.Context) ([]domain.AirlineStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AirlineStats), args.Error(1)
}

type Importer struct{ mock.Mock }

func NewImporter(t testingT) *Importer {
	return register(t, &Importer{})
}

func (m *Importer) Import(ctx context.Context, ds *dataset.Dataset) error {
	return m.Called(ctx, ds).Error(0)
}

var (
	_ repository.AirlineRepository = (*AirlineRepository)(nil)
	_ repository.AirportRepository = (*AirportRepository)(nil)
	_ repository.FlightRepository  = (*FlightRepository)(nil)
	_ repository.SeatRepository    = (*SeatRepository)(nil)
	_ repository.PersonRepository  = (*PersonRepository)(nil)
	_ repository.BookingRepository = (*BookingRepository)(nil)
	_ repository.StatsRepository   = (*StatsRepository)(nil)
	_ repository.Importer          = (*Importer)(nil)
)
