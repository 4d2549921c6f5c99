package flights

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/repository"
	"github.com/Domenick1991/flightbooking/internal/service/resolve"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

type FlightUseCase interface {
	Search(ctx context.Context, input SearchInput) (*SearchResult, error)
	BestPrice(ctx context.Context, input BestPriceInput) (*SearchResult, error)
	Occupancy(ctx context.Context, flightIDs []string) (map[string]float64, error)
	GetFlight(ctx context.Context, id string) (*domain.FlightDetails, error)
	AirlineStats(ctx context.Context) ([]domain.AirlineStats, error)
}

// SearchInput is a point-to-point search. It also registers the passenger.
type SearchInput struct {
	PassengerName string
	Birthdate     string
	TravelClass   int
	Passport      string
	From          string
	To            string
	DepDate       string
	DepTime       string
}

type BestPriceInput struct {
	TravelClass int
	From        string
	DepDate     string
}

type SearchResult struct {
	Person    *domain.Person     `json:"person,omitempty"`
	Seats     []domain.SeatOffer `json:"seats"`
	Occupancy map[string]float64 `json:"occupancy"`
}

type FlightService struct {
	flights  repository.FlightRepository
	seats    repository.SeatRepository
	persons  repository.PersonRepository
	stats    repository.StatsRepository
	resolver *resolve.Resolver
	window   time.Duration
}

func NewFlightService(store *repository.Store, resolver *resolve.Resolver, window time.Duration) *FlightService {
	return &FlightService{
		flights:  store.Flights,
		seats:    store.Seats,
		persons:  store.Persons,
		stats:    store.Stats,
		resolver: resolver,
		window:   window,
	}
}

// Search creates the passenger, then returns one free seat of their class per
// flight on the route departing within the window, earliest first.
func (s *FlightService) Search(ctx context.Context, input SearchInput) (*SearchResult, error) {
	person, query, err := s.parseSearch(input)
	if err != nil {
		return nil, err
	}

	if err := s.persons.Create(ctx, person); err != nil {
		return nil, err
	}

	seats, occupancy, err := s.find(ctx, query, person.TravelClass)
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(seats, func(a, b domain.SeatOffer) int {
		return cmp.Compare(a.Flight.Date.UnixNano(), b.Flight.Date.UnixNano())
	})

	return &SearchResult{Person: person, Seats: seats, Occupancy: occupancy}, nil
}

// BestPrice searches every destination from the origin starting at midnight of
// the given date, cheapest first and earliest among equal prices.
func (s *FlightService) BestPrice(ctx context.Context, input BestPriceInput) (*SearchResult, error) {
	class, err := domain.ParseTravelClass(input.TravelClass)
	if err != nil {
		return nil, err
	}
	origin, err := airportCode("from", input.From)
	if err != nil {
		return nil, err
	}
	from, err := parseDeparture(input.DepDate, "00:00")
	if err != nil {
		return nil, err
	}

	seats, occupancy, err := s.find(ctx, domain.FlightQuery{Origin: origin, From: from, To: from.Add(s.window)}, class)
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(seats, func(a, b domain.SeatOffer) int {
		if c := cmp.Compare(a.Price, b.Price); c != 0 {
			return c
		}
		return cmp.Compare(a.Flight.Date.UnixNano(), b.Flight.Date.UnixNano())
	})

	return &SearchResult{Seats: seats, Occupancy: occupancy}, nil
}

func (s *FlightService) find(ctx context.Context, q domain.FlightQuery, class domain.TravelClass) ([]domain.SeatOffer, map[string]float64, error) {
	offers, err := s.flights.FindOffers(ctx, q, class)
	if err != nil {
		return nil, nil, fmt.Errorf("find offers: %w", err)
	}

	seats, err := s.resolver.Offers(ctx, offers)
	if err != nil {
		return nil, nil, err
	}

	occupancy, err := s.Occupancy(ctx, flightIDs(offers))
	if err != nil {
		return nil, nil, err
	}
	return seats, occupancy, nil
}

func (s *FlightService) Occupancy(ctx context.Context, ids []string) (map[string]float64, error) {
	occupancy, err := s.seats.Occupancy(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("occupancy: %w", err)
	}
	return occupancy, nil
}

func (s *FlightService) GetFlight(ctx context.Context, id string) (*domain.FlightDetails, error) {
	return s.resolver.Flight(ctx, id)
}

func (s *FlightService) AirlineStats(ctx context.Context) ([]domain.AirlineStats, error) {
	stats, err := s.stats.AirlineStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("airline stats: %w", err)
	}
	return stats, nil
}

func (s *FlightService) parseSearch(input SearchInput) (*domain.Person, domain.FlightQuery, error) {
	var q domain.FlightQuery

	name := strings.TrimSpace(input.PassengerName)
	if name == "" {
		return nil, q, fmt.Errorf("%w: passenger name is required", domain.ErrInvalidInput)
	}
	passport := strings.TrimSpace(input.Passport)
	if passport == "" {
		return nil, q, fmt.Errorf("%w: passport is required", domain.ErrInvalidInput)
	}
	birthdate, err := time.Parse(dateLayout, input.Birthdate)
	if err != nil {
		return nil, q, fmt.Errorf("%w: birthdate %q: expected YYYY-MM-DD", domain.ErrInvalidInput, input.Birthdate)
	}
	class, err := domain.ParseTravelClass(input.TravelClass)
	if err != nil {
		return nil, q, err
	}
	if q.Origin, err = airportCode("from", input.From); err != nil {
		return nil, q, err
	}
	if input.To != "" {
		if q.Destination, err = airportCode("to", input.To); err != nil {
			return nil, q, err
		}
	}
	if q.From, err = parseDeparture(input.DepDate, input.DepTime); err != nil {
		return nil, q, err
	}
	q.To = q.From.Add(s.window)

	person := &domain.Person{Name: name, Birthdate: birthdate, Passport: passport, TravelClass: class}
	return person, q, nil
}

func airportCode(field, v string) (string, error) {
	code := strings.ToUpper(strings.TrimSpace(v))
	if code == "" {
		return "", fmt.Errorf("%w: %s airport is required", domain.ErrInvalidInput, field)
	}
	return code, nil
}

// parseDeparture reads date and time as UTC, the zone flights are stored in.
func parseDeparture(date, clock string) (time.Time, error) {
	t, err := time.Parse(dateLayout+" "+timeLayout, date+" "+clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: departure %q %q: expected YYYY-MM-DD and HH:MM", domain.ErrInvalidInput, date, clock)
	}
	return t, nil
}

func flightIDs(offers []repository.Offer) []string {
	ids := make([]string, 0, len(offers))
	for _, o := range offers {
		ids = append(ids, o.Flight.ID)
	}
	return ids
}

var _ FlightUseCase = (*FlightService)(nil)
