package booking

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/kafka"
	"github.com/Domenick1991/flightbooking/internal/repository"
	"github.com/Domenick1991/flightbooking/internal/service/resolve"
)

type BookingUseCase interface {
	Book(ctx context.Context, seatID, personID int64) (*domain.BoardingPass, error)
	BoardingPass(ctx context.Context, seatID, personID int64) (*domain.BoardingPass, error)
	RepairOrphanedSeats(ctx context.Context) ([]int64, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value any) error
}

// SeatObserver is told about seat state changes after they are stored.
type SeatObserver interface {
	SeatBooked(flightID string, seatID int64, occupancy float64)
	SeatsReleased(flightID string, seatIDs []int64)
}

type BookingService struct {
	bookings           repository.BookingRepository
	seats              repository.SeatRepository
	resolver           *resolve.Resolver
	producer           Producer
	bookingTopic       string
	notificationsTopic string
	observer           SeatObserver
	repairGrace        time.Duration
	publishTimeout     time.Duration
	now                func() time.Time

	pending sync.WaitGroup
}

type BookingServiceOption func(*BookingService)

func WithProducer(producer Producer, bookingTopic string) BookingServiceOption {
	return func(s *BookingService) {
		s.producer = producer
		s.bookingTopic = bookingTopic
	}
}

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

func WithObserver(observer SeatObserver) BookingServiceOption {
	return func(s *BookingService) {
		s.observer = observer
	}
}

// WithRepairGrace sets how long a seat may stay booked without a booking record
// before the repair sweep frees it.
func WithRepairGrace(grace time.Duration) BookingServiceOption {
	return func(s *BookingService) {
		s.repairGrace = grace
	}
}

// WithPublishTimeout bounds how long the notifications of one booking or sweep
// may take. They run after the caller has returned.
func WithPublishTimeout(timeout time.Duration) BookingServiceOption {
	return func(s *BookingService) {
		s.publishTimeout = timeout
	}
}

func WithClock(now func() time.Time) BookingServiceOption {
	return func(s *BookingService) {
		s.now = now
	}
}

func NewBookingService(store *repository.Store, resolver *resolve.Resolver, opts ...BookingServiceOption) *BookingService {
	service := &BookingService{
		bookings:       store.Bookings,
		seats:          store.Seats,
		resolver:       resolver,
		repairGrace:    10 * time.Minute,
		publishTimeout: 10 * time.Second,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// Book takes the seat for an existing person with a single conditional update.
// A seat that is already booked or unknown yields *domain.BookingConflictError;
// store failures are returned wrapped and are never reported as conflicts.
func (s *BookingService) Book(ctx context.Context, seatID, personID int64) (*domain.BoardingPass, error) {
	person, err := s.resolver.Person(ctx, personID)
	if err != nil {
		return nil, err
	}

	ok, err := s.bookings.Book(ctx, seatID, personID)
	if err != nil {
		return nil, fmt.Errorf("book seat %d: %w", seatID, err)
	}
	if !ok {
		return nil, &domain.BookingConflictError{SeatID: seatID}
	}

	pass, err := s.resolver.BoardingPassFor(ctx, *person, seatID)
	if err != nil {
		return nil, err
	}

	s.background(ctx, func(ctx context.Context) { s.announce(ctx, pass) })
	return pass, nil
}

func (s *BookingService) BoardingPass(ctx context.Context, seatID, personID int64) (*domain.BoardingPass, error) {
	return s.resolver.BoardingPass(ctx, seatID, personID)
}

// RepairOrphanedSeats frees seats left booked without a booking record, which
// happens when the booking write fails after the seat update.
func (s *BookingService) RepairOrphanedSeats(ctx context.Context) ([]int64, error) {
	released, err := s.seats.ReleaseOrphaned(ctx, s.now().Add(-s.repairGrace))
	if err != nil {
		return nil, fmt.Errorf("release orphaned seats: %w", err)
	}
	if len(released) == 0 || (s.observer == nil && s.producer == nil) {
		return released, nil
	}

	byFlight := make(map[string][]int64)
	for _, id := range released {
		seat, err := s.resolver.Seat(ctx, id)
		if err != nil {
			log.Printf("repair: resolve released seat %d: %v", id, err)
			continue
		}
		byFlight[seat.FlightID] = append(byFlight[seat.FlightID], id)
	}
	if s.observer != nil {
		for flightID, ids := range byFlight {
			s.observer.SeatsReleased(flightID, ids)
		}
	}
	if s.producer != nil && s.bookingTopic != "" {
		s.background(ctx, func(ctx context.Context) { s.announceReleased(ctx, byFlight) })
	}
	return released, nil
}

// Wait blocks until every notification started so far has finished.
func (s *BookingService) Wait() {
	s.pending.Wait()
}

// background runs fn detached from the caller's cancellation and bounded by
// the publish timeout, so a slow broker never delays a response.
func (s *BookingService) background(ctx context.Context, fn func(context.Context)) {
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.publishTimeout)
		defer cancel()
		fn(ctx)
	}()
}

func (s *BookingService) announceReleased(ctx context.Context, byFlight map[string][]int64) {
	for flightID, ids := range byFlight {
		event := kafka.NewSeatsReleasedEvent(flightID, ids, s.now())
		if err := s.producer.Publish(ctx, s.bookingTopic, event.Key(), event); err != nil {
			log.Printf("WARNING: failed to publish %s for flight %s: %v", event.Type, flightID, err)
		}
	}
}

// announce runs in the background once the booking is durable. Failures are
// logged only.
func (s *BookingService) announce(ctx context.Context, pass *domain.BoardingPass) {
	if s.producer != nil && s.bookingTopic != "" {
		event := kafka.NewBookingEvent(kafka.EventSeatBooked, pass.SeatID, pass.PersonID, pass.FlightID, s.now())
		if err := s.producer.Publish(ctx, s.bookingTopic, event.Key(), event); err != nil {
			log.Printf("WARNING: failed to publish %s for seat %d: %v", event.Type, pass.SeatID, err)
		}
	}
	if s.producer != nil && s.notificationsTopic != "" {
		event := kafka.NewBookingEvent(kafka.EventBoardingPassReady, pass.SeatID, pass.PersonID, pass.FlightID, s.now())
		event.BoardingPass = pass
		if err := s.producer.Publish(ctx, s.notificationsTopic, event.Key(), event); err != nil {
			log.Printf("WARNING: failed to publish %s for seat %d: %v", event.Type, pass.SeatID, err)
		}
	}

	if s.observer == nil {
		return
	}
	occupancy, err := s.seats.Occupancy(ctx, []string{pass.FlightID})
	if err != nil {
		log.Printf("WARNING: occupancy for flight %s: %v", pass.FlightID, err)
		return
	}
	s.observer.SeatBooked(pass.FlightID, pass.SeatID, occupancy[pass.FlightID])
}

// IsConflict reports whether err is a booking conflict.
func IsConflict(err error) bool {
	var conflict *domain.BookingConflictError
	return errors.As(err, &conflict)
}

var _ BookingUseCase = (*BookingService)(nil)
