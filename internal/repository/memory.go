package repository

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/Domenick1991/flightbooking/internal/dataset"
	"github.com/Domenick1991/flightbooking/internal/domain"
)

// memoryDB is a process-local store guarded by one lock. It backs the memory
// driver and gives tests a store with real conditional-update semantics.
type memoryDB struct {
	mu            sync.RWMutex
	airlines      map[int64]domain.Airline
	airports      map[string]domain.Airport
	flights       map[string]domain.Flight
	seats         map[int64]domain.Seat
	seatsByFlight map[string][]int64
	persons       map[int64]domain.Person
	bookings      map[int64]domain.Booking
	lastPersonID  int64
	now           func() time.Time
}

func newMemoryDB() *memoryDB {
	db := &memoryDB{now: time.Now}
	db.reset()
	return db
}

func (db *memoryDB) reset() {
	db.airlines = make(map[int64]domain.Airline)
	db.airports = make(map[string]domain.Airport)
	db.flights = make(map[string]domain.Flight)
	db.seats = make(map[int64]domain.Seat)
	db.seatsByFlight = make(map[string][]int64)
	db.persons = make(map[int64]domain.Person)
	db.bookings = make(map[int64]domain.Booking)
	db.lastPersonID = 0
}

// NewMemoryStore returns an empty store. Load it through Importer.
func NewMemoryStore() *Store {
	db := newMemoryDB()
	return &Store{
		Airlines: memAirlines{db},
		Airports: memAirports{db},
		Flights:  memFlights{db},
		Seats:    memSeats{db},
		Persons:  memPersons{db},
		Bookings: memBookings{db},
		Stats:    memStats{db},
		Importer: memImporter{db},
	}
}

type memAirlines struct{ db *memoryDB }

func (r memAirlines) GetByID(_ context.Context, id int64) (*domain.Airline, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	a, ok := r.db.airlines[id]
	if !ok {
		return nil, fmt.Errorf("airline %d: %w", id, domain.ErrNotFound)
	}
	return &a, nil
}

func (r memAirlines) List(context.Context) ([]domain.Airline, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	out := make([]domain.Airline, 0, len(r.db.airlines))
	for _, a := range r.db.airlines {
		out = append(out, a)
	}
	slices.SortFunc(out, func(a, b domain.Airline) int { return cmp.Compare(a.ID, b.ID) })
	return out, nil
}

type memAirports struct{ db *memoryDB }

func (r memAirports) GetByCode(_ context.Context, code string) (*domain.Airport, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	a, ok := r.db.airports[code]
	if !ok {
		return nil, fmt.Errorf("airport %s: %w", code, domain.ErrNotFound)
	}
	return &a, nil
}

func (r memAirports) List(context.Context) ([]domain.Airport, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	out := make([]domain.Airport, 0, len(r.db.airports))
	for _, a := range r.db.airports {
		out = append(out, a)
	}
	slices.SortFunc(out, func(a, b domain.Airport) int { return cmp.Compare(a.Code, b.Code) })
	return out, nil
}

type memFlights struct{ db *memoryDB }

func (r memFlights) GetByID(_ context.Context, id string) (*domain.Flight, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	f, ok := r.db.flights[id]
	if !ok {
		return nil, fmt.Errorf("flight %s: %w", id, domain.ErrNotFound)
	}
	return &f, nil
}

func (r memFlights) FindOffers(_ context.Context, q domain.FlightQuery, class domain.TravelClass) ([]Offer, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	offers := make([]Offer, 0)
	for _, f := range r.db.flights {
		if f.DepartureAirportID != q.Origin {
			continue
		}
		if q.Destination != "" && f.ArrivalAirportID != q.Destination {
			continue
		}
		if f.Date.Before(q.From) || f.Date.After(q.To) {
			continue
		}
		for _, seatID := range r.db.seatsByFlight[f.ID] {
			s := r.db.seats[seatID]
			if !s.Booked && s.TravelClass == class {
				offers = append(offers, Offer{Flight: f, Seat: s})
				break
			}
		}
	}
	return offers, nil
}

type memSeats struct{ db *memoryDB }

func (r memSeats) GetByID(_ context.Context, id int64) (*domain.Seat, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	s, ok := r.db.seats[id]
	if !ok {
		return nil, fmt.Errorf("seat %d: %w", id, domain.ErrNotFound)
	}
	return &s, nil
}

func (r memSeats) Occupancy(_ context.Context, flightIDs []string) (map[string]float64, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	occupancy := make(map[string]float64, len(flightIDs))
	for _, id := range flightIDs {
		seatIDs := r.db.seatsByFlight[id]
		if len(seatIDs) == 0 {
			continue
		}
		booked := 0
		for _, seatID := range seatIDs {
			if r.db.seats[seatID].Booked {
				booked++
			}
		}
		occupancy[id] = float64(booked) / float64(len(seatIDs))
	}
	return occupancy, nil
}

func (r memSeats) ReleaseOrphaned(_ context.Context, bookedBefore time.Time) ([]int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	var released []int64
	for id, s := range r.db.seats {
		if !s.Booked || s.BookedAt == nil || !s.BookedAt.Before(bookedBefore) {
			continue
		}
		if _, ok := r.db.bookings[id]; ok {
			continue
		}
		s.Booked = false
		s.BookedAt = nil
		r.db.seats[id] = s
		released = append(released, id)
	}
	slices.Sort(released)
	return released, nil
}

type memPersons struct{ db *memoryDB }

func (r memPersons) Create(_ context.Context, p *domain.Person) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.lastPersonID++
	p.ID = r.db.lastPersonID
	r.db.persons[p.ID] = *p
	return nil
}

func (r memPersons) GetByID(_ context.Context, id int64) (*domain.Person, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	p, ok := r.db.persons[id]
	if !ok {
		return nil, fmt.Errorf("person %d: %w", id, domain.ErrNotFound)
	}
	return &p, nil
}

type memBookings struct{ db *memoryDB }

func (r memBookings) Book(_ context.Context, seatID, personID int64) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	s, ok := r.db.seats[seatID]
	if !ok || s.Booked {
		return false, nil
	}
	now := r.db.now().UTC()
	s.Booked = true
	s.BookedAt = &now
	r.db.seats[seatID] = s
	r.db.bookings[seatID] = domain.Booking{SeatID: seatID, PersonID: personID, CreatedAt: now}
	return true, nil
}

func (r memBookings) Get(_ context.Context, seatID, personID int64) (*domain.Booking, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	b, ok := r.db.bookings[seatID]
	if !ok || b.PersonID != personID {
		return nil, fmt.Errorf("booking %d/%d: %w", seatID, personID, domain.ErrNotFound)
	}
	return &b, nil
}

type memStats struct{ db *memoryDB }

func (r memStats) AirlineStats(context.Context) ([]domain.AirlineStats, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	type acc struct {
		total, booked int
		priceSum      float64
		airports      map[string]struct{}
	}
	byAirline := make(map[int64]*acc)
	for flightID, seatIDs := range r.db.seatsByFlight {
		f := r.db.flights[flightID]
		a := byAirline[f.AirlineID]
		if a == nil {
			a = &acc{airports: make(map[string]struct{})}
			byAirline[f.AirlineID] = a
		}
		a.airports[f.DepartureAirportID] = struct{}{}
		for _, id := range seatIDs {
			s := r.db.seats[id]
			a.total++
			a.priceSum += s.Price
			if s.Booked {
				a.booked++
			}
		}
	}

	stats := make([]domain.AirlineStats, 0, len(byAirline))
	for id, a := range byAirline {
		if a.total == 0 {
			continue
		}
		stats = append(stats, domain.AirlineStats{
			AirlineID:      id,
			Occupancy:      float64(a.booked) / float64(a.total),
			AirportsServed: len(a.airports),
			AvgPrice:       a.priceSum / float64(a.total),
		})
	}
	slices.SortFunc(stats, func(a, b domain.AirlineStats) int { return cmp.Compare(a.AirlineID, b.AirlineID) })
	return stats, nil
}

type memImporter struct{ db *memoryDB }

func (r memImporter) Import(_ context.Context, ds *dataset.Dataset) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.reset()
	for _, a := range ds.Airlines {
		r.db.airlines[a.ID] = a
	}
	for _, a := range ds.Airports {
		r.db.airports[a.Code] = a
	}
	for _, f := range ds.Flights {
		r.db.flights[f.ID] = f
	}
	for _, s := range ds.Seats {
		if _, ok := r.db.flights[s.FlightID]; !ok {
			return fmt.Errorf("seat %d references unknown flight %s", s.ID, s.FlightID)
		}
		r.db.seats[s.ID] = s
		r.db.seatsByFlight[s.FlightID] = append(r.db.seatsByFlight[s.FlightID], s.ID)
	}
	for _, ids := range r.db.seatsByFlight {
		slices.Sort(ids)
	}
	for _, p := range ds.Persons {
		r.db.persons[p.ID] = p
		r.db.lastPersonID = max(r.db.lastPersonID, p.ID)
	}
	for _, b := range ds.Bookings {
		if _, ok := r.db.bookings[b.SeatID]; ok {
			return fmt.Errorf("seat %d booked twice", b.SeatID)
		}
		r.db.bookings[b.SeatID] = b
	}
	return nil
}

var (
	_ AirlineRepository = memAirlines{}
	_ AirportRepository = memAirports{}
	_ FlightRepository  = memFlights{}
	_ SeatRepository    = memSeats{}
	_ PersonRepository  = memPersons{}
	_ BookingRepository = memBookings{}
	_ StatsRepository   = memStats{}
	_ Importer          = memImporter{}
)
