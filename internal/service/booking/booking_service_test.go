package booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/Domenick1991/flightbooking/internal/dataset"
	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/kafka"
	"github.com/Domenick1991/flightbooking/internal/repository"
	"github.com/Domenick1991/flightbooking/internal/repository/mocks"
	"github.com/Domenick1991/flightbooking/internal/service/resolve"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockProducer struct {
	mock.Mock
}

func (m *MockProducer) Publish(ctx context.Context, topic, key string, value any) error {
	args := m.Called(ctx, topic, key, value)
	return args.Error(0)
}

type recordingObserver struct {
	mu       sync.Mutex
	booked   []int64
	occ      []float64
	released map[string][]int64
}

func (o *recordingObserver) SeatBooked(_ string, seatID int64, occupancy float64) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.booked = append(o.booked, seatID)
	o.occ = append(o.occ, occupancy)
}

func (o *recordingObserver) SeatsReleased(flightID string, seatIDs []int64) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.released == nil {
		o.released = make(map[string][]int64)
	}
	o.released[flightID] = append(o.released[flightID], seatIDs...)
}

var departure = time.Date(2020, 1, 1, 9, 15, 0, 0, time.UTC)

// loadedStore holds flight F1 with seats 41..44. Seat 43 was booked an hour ago
// and never got a booking record.
func loadedStore(t *testing.T) *repository.Store {
	t.Helper()
	stale := time.Now().Add(-time.Hour)
	ds := &dataset.Dataset{
		Airlines: []domain.Airline{{ID: 0, Name: "Swiss"}},
		Airports: []domain.Airport{{Code: "ZRH"}, {Code: "VIE"}},
		Flights: []domain.Flight{{
			ID: "F1", AirlineID: 0, DepartureAirportID: "ZRH", ArrivalAirportID: "VIE",
			Date: departure, DurationMinutes: 80,
		}},
		Seats: []domain.Seat{
			{ID: 41, FlightID: "F1", Number: "1A", TravelClass: domain.TravelClassPremium, Price: 200},
			{ID: 42, FlightID: "F1", Number: "1B", TravelClass: domain.TravelClassPremium, Price: 200},
			{ID: 43, FlightID: "F1", Number: "9A", TravelClass: domain.TravelClassStandard, Price: 90, Booked: true, BookedAt: &stale},
			{ID: 44, FlightID: "F1", Number: "9B", TravelClass: domain.TravelClassStandard, Price: 90},
		},
		Persons: []domain.Person{
			{ID: 7, Name: "Ada Lovelace", Passport: "12345678", TravelClass: domain.TravelClassPremium},
			{ID: 8, Name: "Alan Turing", Passport: "87654321", TravelClass: domain.TravelClassPremium},
		},
	}
	store := repository.NewMemoryStore()
	require.NoError(t, store.Importer.Import(context.Background(), ds))
	return store
}

func newService(store *repository.Store, opts ...BookingServiceOption) *BookingService {
	return NewBookingService(store, resolve.NewResolver(store, nil), opts...)
}

func TestBookingService_Book_SecondAttemptConflicts(t *testing.T) {
	store := loadedStore(t)
	service := newService(store)
	ctx := context.Background()

	pass, err := service.Book(ctx, 42, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(42), pass.SeatID)
	assert.Equal(t, int64(7), pass.PersonID)
	assert.Equal(t, "Ada Lovelace", pass.Name)
	assert.Equal(t, "Swiss", pass.AirlineName)

	seat, err := store.Seats.GetByID(ctx, 42)
	require.NoError(t, err)
	assert.True(t, seat.Booked)

	_, err = service.Book(ctx, 42, 8)
	var conflict *domain.BookingConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, int64(42), conflict.SeatID)
	assert.True(t, IsConflict(err))

	_, err = store.Bookings.Get(ctx, 42, 8)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestBookingService_BoardingPassRoundTrip(t *testing.T) {
	service := newService(loadedStore(t))
	ctx := context.Background()

	booked, err := service.Book(ctx, 41, 8)
	require.NoError(t, err)

	pass, err := service.BoardingPass(ctx, 41, 8)
	require.NoError(t, err)
	assert.Equal(t, booked, pass)
	assert.Equal(t, "Alan Turing", pass.Name)
	assert.Equal(t, departure, pass.Departure)
	assert.Equal(t, "2020-01-01", pass.Date)
	assert.Equal(t, "09:15", pass.Time)

	_, err = service.BoardingPass(ctx, 41, 7)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestBookingService_Book_UnknownSeatConflicts(t *testing.T) {
	service := newService(loadedStore(t))

	_, err := service.Book(context.Background(), 999, 7)
	assert.True(t, IsConflict(err))
}

func TestBookingService_Book_ConcurrentAttemptsHaveOneWinner(t *testing.T) {
	store := loadedStore(t)
	const attempts = 32

	persons := make([]int64, attempts)
	for i := range persons {
		p := &domain.Person{Name: "P", TravelClass: domain.TravelClassStandard}
		require.NoError(t, store.Persons.Create(context.Background(), p))
		persons[i] = p.ID
	}

	observer := &recordingObserver{}
	service := newService(store, WithObserver(observer))

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		wins      int
		conflicts int
	)
	for _, personID := range persons {
		wg.Add(1)
		go func(personID int64) {
			defer wg.Done()
			_, err := service.Book(context.Background(), 44, personID)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				wins++
			case IsConflict(err):
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(personID)
	}
	wg.Wait()
	service.Wait()

	assert.Equal(t, 1, wins)
	assert.Equal(t, attempts-1, conflicts)
	assert.Equal(t, []int64{44}, observer.booked)
	assert.InDelta(t, 0.5, observer.occ[0], 1e-9)
}

func TestBookingService_Book_UnknownPerson(t *testing.T) {
	persons := mocks.NewPersonRepository(t)
	bookings := mocks.NewBookingRepository(t)
	store := &repository.Store{Persons: persons, Bookings: bookings}
	ctx := context.Background()

	persons.On("GetByID", ctx, int64(99)).Return(nil, fmt.Errorf("person 99: %w", domain.ErrNotFound))

	_, err := newService(store).Book(ctx, 42, 99)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	bookings.AssertNotCalled(t, "Book", mock.Anything, mock.Anything, mock.Anything)
}

func TestBookingService_Book_StoreErrorIsNotConflict(t *testing.T) {
	persons := mocks.NewPersonRepository(t)
	bookings := mocks.NewBookingRepository(t)
	store := &repository.Store{Persons: persons, Bookings: bookings}
	ctx := context.Background()
	boom := errors.New("connection reset")

	persons.On("GetByID", ctx, int64(7)).Return(&domain.Person{ID: 7}, nil)
	bookings.On("Book", ctx, int64(42), int64(7)).Return(false, boom)

	_, err := newService(store).Book(ctx, 42, 7)
	assert.True(t, errors.Is(err, boom))
	assert.False(t, IsConflict(err))
}

func TestBookingService_Book_PublishesEvents(t *testing.T) {
	producer := &MockProducer{}
	now := time.Date(2020, 1, 1, 8, 0, 0, 0, time.UTC)
	service := newService(loadedStore(t),
		WithProducer(producer, "bookings"),
		WithNotificationsTopic("notifications"),
		WithClock(func() time.Time { return now }),
	)
	ctx := context.Background()

	producer.On("Publish", mock.Anything, "bookings", "42", mock.MatchedBy(func(e kafka.BookingEvent) bool {
		return e.Type == kafka.EventSeatBooked && e.SeatID == 42 && e.PersonID == 7 && e.FlightID == "F1" &&
			e.OccurredAt.Equal(now) && e.BoardingPass == nil
	})).Return(nil).Once()
	producer.On("Publish", mock.Anything, "notifications", "42", mock.MatchedBy(func(e kafka.BookingEvent) bool {
		return e.Type == kafka.EventBoardingPassReady && e.BoardingPass != nil && e.BoardingPass.Name == "Ada Lovelace"
	})).Return(nil).Once()

	_, err := service.Book(ctx, 42, 7)
	require.NoError(t, err)
	service.Wait()
	producer.AssertExpectations(t)
}

func TestBookingService_Book_PublishFailureKeepsBooking(t *testing.T) {
	producer := &MockProducer{}
	service := newService(loadedStore(t), WithProducer(producer, "bookings"))
	ctx := context.Background()

	producer.On("Publish", mock.Anything, "bookings", "42", mock.Anything).Return(errors.New("kafka down"))

	pass, err := service.Book(ctx, 42, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(42), pass.SeatID)

	_, err = service.Book(ctx, 42, 8)
	assert.True(t, IsConflict(err))
	service.Wait()
	producer.AssertNumberOfCalls(t, "Publish", 1)
}

func TestBookingService_RepairOrphanedSeats(t *testing.T) {
	store := loadedStore(t)
	observer := &recordingObserver{}
	service := newService(store, WithObserver(observer), WithRepairGrace(10*time.Minute))
	ctx := context.Background()

	_, err := service.Book(ctx, 42, 7)
	require.NoError(t, err)

	released, err := service.RepairOrphanedSeats(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{43}, released, "seat 42 has a booking record and seat 43 does not")
	assert.Equal(t, map[string][]int64{"F1": {43}}, observer.released)

	seat, err := store.Seats.GetByID(ctx, 43)
	require.NoError(t, err)
	assert.False(t, seat.Booked)

	pass, err := service.Book(ctx, 43, 8)
	require.NoError(t, err)
	assert.Equal(t, "9A", pass.Seat)
}

func TestBookingService_RepairRespectsGrace(t *testing.T) {
	store := loadedStore(t)
	service := newService(store, WithRepairGrace(2*time.Hour))

	released, err := service.RepairOrphanedSeats(context.Background())
	require.NoError(t, err)
	assert.Empty(t, released)
}

func TestBookingService_RepairStoreError(t *testing.T) {
	seats := mocks.NewSeatRepository(t)
	now := time.Date(2020, 1, 1, 12, 0, 0, 0, time.UTC)
	service := newService(&repository.Store{Seats: seats},
		WithClock(func() time.Time { return now }),
		WithRepairGrace(5*time.Minute),
	)
	ctx := context.Background()

	seats.On("ReleaseOrphaned", ctx, now.Add(-5*time.Minute)).Return(nil, errors.New("timeout"))

	_, err := service.RepairOrphanedSeats(ctx)
	assert.ErrorContains(t, err, "timeout")
}

func TestBookingService_Book_DoesNotWaitForSlowBroker(t *testing.T) {
	producer := &MockProducer{}
	service := newService(loadedStore(t),
		WithProducer(producer, "bookings"),
		WithNotificationsTopic("notifications"),
	)

	producer.On("Publish", mock.Anything, mock.Anything, "42", mock.Anything).After(time.Second).Return(nil)

	started := time.Now()
	_, err := service.Book(context.Background(), 42, 7)
	require.NoError(t, err)
	assert.Less(t, time.Since(started), 500*time.Millisecond)

	service.Wait()
	producer.AssertNumberOfCalls(t, "Publish", 2)
}

func TestBookingService_Book_NotificationsOutliveRequest(t *testing.T) {
	producer := &MockProducer{}
	service := newService(loadedStore(t),
		WithProducer(producer, "bookings"),
		WithPublishTimeout(time.Minute),
	)
	ctx, cancel := context.WithCancel(context.Background())

	var (
		publishErr  error
		hasDeadline bool
	)
	producer.On("Publish", mock.Anything, "bookings", "42", mock.Anything).Run(func(args mock.Arguments) {
		publishCtx := args.Get(0).(context.Context)
		publishErr = publishCtx.Err()
		_, hasDeadline = publishCtx.Deadline()
	}).Return(nil).Once()

	_, err := service.Book(ctx, 42, 7)
	require.NoError(t, err)
	cancel()
	service.Wait()

	producer.AssertExpectations(t)
	assert.NoError(t, publishErr)
	assert.True(t, hasDeadline)
}

func TestBookingService_RepairPublishesReleasedSeats(t *testing.T) {
	producer := &MockProducer{}
	now := time.Now()
	service := newService(loadedStore(t),
		WithProducer(producer, "bookings"),
		WithClock(func() time.Time { return now }),
	)

	producer.On("Publish", mock.Anything, "bookings", "F1", mock.MatchedBy(func(e kafka.BookingEvent) bool {
		return e.Type == kafka.EventSeatsReleased && e.FlightID == "F1" &&
			len(e.SeatIDs) == 1 && e.SeatIDs[0] == 43 && e.OccurredAt.Equal(now.UTC())
	})).Return(nil).Once()

	released, err := service.RepairOrphanedSeats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int64{43}, released)

	service.Wait()
	producer.AssertExpectations(t)
}
