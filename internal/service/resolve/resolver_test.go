package resolve

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/repository"
	"github.com/Domenick1991/flightbooking/internal/repository/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCache struct {
	mock.Mock
}

func (m *MockCache) GetAirline(ctx context.Context, id int64) (*domain.Airline, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Airline), args.Error(1)
}

func (m *MockCache) SetAirline(ctx context.Context, a domain.Airline) error {
	return m.Called(ctx, a).Error(0)
}

func (m *MockCache) GetAirport(ctx context.Context, code string) (*domain.Airport, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Airport), args.Error(1)
}

func (m *MockCache) SetAirport(ctx context.Context, a domain.Airport) error {
	return m.Called(ctx, a).Error(0)
}

var (
	swiss = domain.Airline{ID: 0, Name: "Swiss"}
	zrh   = domain.Airport{Code: "ZRH", City: "Zurich"}
	vie   = domain.Airport{Code: "VIE", City: "Vienna"}
	f1    = domain.Flight{
		ID: "ZRH_VIE_Swiss_1", AirlineID: 0, DepartureAirportID: "ZRH", ArrivalAirportID: "VIE",
		Date: time.Date(2020, 1, 1, 9, 15, 0, 0, time.UTC), DurationMinutes: 80,
	}
)

type fixture struct {
	airlines *mocks.AirlineRepository
	airports *mocks.AirportRepository
	flights  *mocks.FlightRepository
	seats    *mocks.SeatRepository
	persons  *mocks.PersonRepository
	bookings *mocks.BookingRepository
	store    *repository.Store
}

func newFixture(t *testing.T) *fixture {
	f := &fixture{
		airlines: mocks.NewAirlineRepository(t),
		airports: mocks.NewAirportRepository(t),
		flights:  mocks.NewFlightRepository(t),
		seats:    mocks.NewSeatRepository(t),
		persons:  mocks.NewPersonRepository(t),
		bookings: mocks.NewBookingRepository(t),
	}
	f.store = &repository.Store{
		Airlines: f.airlines,
		Airports: f.airports,
		Flights:  f.flights,
		Seats:    f.seats,
		Persons:  f.persons,
		Bookings: f.bookings,
	}
	return f
}

func TestResolver_FlightWithoutCache(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	fx.flights.On("GetByID", ctx, f1.ID).Return(&f1, nil)
	fx.airlines.On("GetByID", ctx, int64(0)).Return(&swiss, nil)
	fx.airports.On("GetByCode", ctx, "ZRH").Return(&zrh, nil)
	fx.airports.On("GetByCode", ctx, "VIE").Return(&vie, nil)

	details, err := NewResolver(fx.store, nil).Flight(ctx, f1.ID)
	require.NoError(t, err)
	assert.Equal(t, "Swiss", details.Airline.Name)
	assert.Equal(t, "Zurich", details.DepartureAirport.City)
	assert.Equal(t, "Vienna", details.ArrivalAirport.City)
}

func TestResolver_CacheHitSkipsStore(t *testing.T) {
	fx := newFixture(t)
	cache := &MockCache{}
	ctx := context.Background()

	cache.On("GetAirline", ctx, int64(0)).Return(&swiss, nil)

	got, err := NewResolver(fx.store, cache).Airline(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, &swiss, got)
	cache.AssertExpectations(t)
}

func TestResolver_CacheMissFillsCache(t *testing.T) {
	fx := newFixture(t)
	cache := &MockCache{}
	ctx := context.Background()

	cache.On("GetAirport", ctx, "ZRH").Return(nil, nil)
	fx.airports.On("GetByCode", ctx, "ZRH").Return(&zrh, nil)
	cache.On("SetAirport", ctx, zrh).Return(nil)

	got, err := NewResolver(fx.store, cache).Airport(ctx, "ZRH")
	require.NoError(t, err)
	assert.Equal(t, "ZRH", got.Code)
	cache.AssertExpectations(t)
}

func TestResolver_CacheFailureFallsBackToStore(t *testing.T) {
	fx := newFixture(t)
	cache := &MockCache{}
	ctx := context.Background()

	cache.On("GetAirline", ctx, int64(0)).Return(nil, errors.New("redis down"))
	fx.airlines.On("GetByID", ctx, int64(0)).Return(&swiss, nil)
	cache.On("SetAirline", ctx, swiss).Return(errors.New("redis down"))

	got, err := NewResolver(fx.store, cache).Airline(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, "Swiss", got.Name)
}

func TestResolver_MissingReferenceIsError(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	fx.flights.On("GetByID", ctx, f1.ID).Return(&f1, nil)
	fx.airlines.On("GetByID", ctx, int64(0)).Return(nil, domain.ErrNotFound)

	_, err := NewResolver(fx.store, nil).Flight(ctx, f1.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestResolver_OffersLooksUpReferencesOnce(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	f2 := f1
	f2.ID = "ZRH_VIE_Swiss_2"
	offers := []repository.Offer{
		{Flight: f1, Seat: domain.Seat{ID: 1, FlightID: f1.ID}},
		{Flight: f2, Seat: domain.Seat{ID: 9, FlightID: f2.ID}},
	}

	fx.airlines.On("GetByID", ctx, int64(0)).Return(&swiss, nil).Once()
	fx.airports.On("GetByCode", ctx, "ZRH").Return(&zrh, nil).Once()
	fx.airports.On("GetByCode", ctx, "VIE").Return(&vie, nil).Once()

	got, err := NewResolver(fx.store, nil).Offers(ctx, offers)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(9), got[1].ID)
	assert.Equal(t, f2.ID, got[1].Flight.ID)
	assert.Equal(t, "Swiss", got[1].Flight.Airline.Name)
}

func TestResolver_BoardingPass(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	person := domain.Person{ID: 7, Name: "Ada Lovelace", Passport: "12345678"}
	seat := domain.Seat{ID: 42, FlightID: f1.ID, Number: "3C", TravelClass: domain.TravelClassPremium, Booked: true}

	fx.bookings.On("Get", ctx, int64(42), int64(7)).Return(&domain.Booking{SeatID: 42, PersonID: 7}, nil)
	fx.persons.On("GetByID", ctx, int64(7)).Return(&person, nil)
	fx.seats.On("GetByID", ctx, int64(42)).Return(&seat, nil)
	fx.flights.On("GetByID", ctx, f1.ID).Return(&f1, nil)
	fx.airlines.On("GetByID", ctx, int64(0)).Return(&swiss, nil)
	fx.airports.On("GetByCode", ctx, "ZRH").Return(&zrh, nil)
	fx.airports.On("GetByCode", ctx, "VIE").Return(&vie, nil)

	pass, err := NewResolver(fx.store, nil).BoardingPass(ctx, 42, 7)
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", pass.Name)
	assert.Equal(t, "3C", pass.Seat)
	assert.Equal(t, f1.Date, pass.Departure)
}

func TestResolver_BoardingPassWithoutBooking(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	fx.bookings.On("Get", ctx, int64(42), int64(8)).Return(nil, domain.ErrNotFound)

	_, err := NewResolver(fx.store, nil).BoardingPass(ctx, 42, 8)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
