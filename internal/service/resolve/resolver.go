// Package resolve turns stored foreign keys into nested views through the
// per-entity repositories. A missing referenced entity is an error.
package resolve

import (
	"context"
	"fmt"
	"log"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/repository"
)

// ReferenceCache stores immutable reference data. Get methods return nil, nil
// on a miss.
type ReferenceCache interface {
	GetAirline(ctx context.Context, id int64) (*domain.Airline, error)
	SetAirline(ctx context.Context, a domain.Airline) error
	GetAirport(ctx context.Context, code string) (*domain.Airport, error)
	SetAirport(ctx context.Context, a domain.Airport) error
}

type Resolver struct {
	store *repository.Store
	cache ReferenceCache
}

// NewResolver accepts a nil cache.
func NewResolver(store *repository.Store, cache ReferenceCache) *Resolver {
	return &Resolver{store: store, cache: cache}
}

func (r *Resolver) Airline(ctx context.Context, id int64) (*domain.Airline, error) {
	if r.cache != nil {
		cached, err := r.cache.GetAirline(ctx, id)
		if err != nil {
			log.Printf("reference cache: airline %d: %v", id, err)
		} else if cached != nil {
			return cached, nil
		}
	}

	a, err := r.store.Airlines.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.cache != nil {
		if err := r.cache.SetAirline(ctx, *a); err != nil {
			log.Printf("reference cache: store airline %d: %v", id, err)
		}
	}
	return a, nil
}

func (r *Resolver) Airport(ctx context.Context, code string) (*domain.Airport, error) {
	if r.cache != nil {
		cached, err := r.cache.GetAirport(ctx, code)
		if err != nil {
			log.Printf("reference cache: airport %s: %v", code, err)
		} else if cached != nil {
			return cached, nil
		}
	}

	a, err := r.store.Airports.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if r.cache != nil {
		if err := r.cache.SetAirport(ctx, *a); err != nil {
			log.Printf("reference cache: store airport %s: %v", code, err)
		}
	}
	return a, nil
}

func (r *Resolver) Flight(ctx context.Context, id string) (*domain.FlightDetails, error) {
	f, err := r.store.Flights.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	details, err := r.FlightDetails(ctx, *f)
	if err != nil {
		return nil, err
	}
	return &details, nil
}

// FlightDetails resolves the airline and both airports of f.
func (r *Resolver) FlightDetails(ctx context.Context, f domain.Flight) (domain.FlightDetails, error) {
	airline, err := r.Airline(ctx, f.AirlineID)
	if err != nil {
		return domain.FlightDetails{}, fmt.Errorf("flight %s: %w", f.ID, err)
	}
	dep, err := r.Airport(ctx, f.DepartureAirportID)
	if err != nil {
		return domain.FlightDetails{}, fmt.Errorf("flight %s: %w", f.ID, err)
	}
	arr, err := r.Airport(ctx, f.ArrivalAirportID)
	if err != nil {
		return domain.FlightDetails{}, fmt.Errorf("flight %s: %w", f.ID, err)
	}
	return domain.FlightDetails{Flight: f, Airline: *airline, DepartureAirport: *dep, ArrivalAirport: *arr}, nil
}

// Offers resolves every offer into a SeatOffer. Reference data shared between
// offers is looked up once per call.
func (r *Resolver) Offers(ctx context.Context, offers []repository.Offer) ([]domain.SeatOffer, error) {
	airlines := make(map[int64]domain.Airline)
	airports := make(map[string]domain.Airport)

	airline := func(id int64) (domain.Airline, error) {
		if a, ok := airlines[id]; ok {
			return a, nil
		}
		a, err := r.Airline(ctx, id)
		if err != nil {
			return domain.Airline{}, err
		}
		airlines[id] = *a
		return *a, nil
	}
	airport := func(code string) (domain.Airport, error) {
		if a, ok := airports[code]; ok {
			return a, nil
		}
		a, err := r.Airport(ctx, code)
		if err != nil {
			return domain.Airport{}, err
		}
		airports[code] = *a
		return *a, nil
	}

	out := make([]domain.SeatOffer, 0, len(offers))
	for _, o := range offers {
		details := domain.FlightDetails{Flight: o.Flight}
		var err error
		if details.Airline, err = airline(o.Flight.AirlineID); err != nil {
			return nil, fmt.Errorf("flight %s: %w", o.Flight.ID, err)
		}
		if details.DepartureAirport, err = airport(o.Flight.DepartureAirportID); err != nil {
			return nil, fmt.Errorf("flight %s: %w", o.Flight.ID, err)
		}
		if details.ArrivalAirport, err = airport(o.Flight.ArrivalAirportID); err != nil {
			return nil, fmt.Errorf("flight %s: %w", o.Flight.ID, err)
		}
		out = append(out, domain.SeatOffer{Seat: o.Seat, Flight: details})
	}
	return out, nil
}

func (r *Resolver) Seat(ctx context.Context, id int64) (*domain.Seat, error) {
	return r.store.Seats.GetByID(ctx, id)
}

func (r *Resolver) Person(ctx context.Context, id int64) (*domain.Person, error) {
	return r.store.Persons.GetByID(ctx, id)
}

// BoardingPassFor builds the pass for a known person and seat.
func (r *Resolver) BoardingPassFor(ctx context.Context, person domain.Person, seatID int64) (*domain.BoardingPass, error) {
	seat, err := r.Seat(ctx, seatID)
	if err != nil {
		return nil, err
	}
	flight, err := r.Flight(ctx, seat.FlightID)
	if err != nil {
		return nil, err
	}
	pass := domain.NewBoardingPass(person, *seat, *flight)
	return &pass, nil
}

// BoardingPass resolves an existing booking. Without one it returns ErrNotFound.
func (r *Resolver) BoardingPass(ctx context.Context, seatID, personID int64) (*domain.BoardingPass, error) {
	booking, err := r.store.Bookings.Get(ctx, seatID, personID)
	if err != nil {
		return nil, err
	}
	person, err := r.Person(ctx, booking.PersonID)
	if err != nil {
		return nil, err
	}
	return r.BoardingPassFor(ctx, *person, booking.SeatID)
}
