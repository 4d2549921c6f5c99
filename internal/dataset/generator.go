package dataset

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/jftuga/geodist"
)

const (
	pricePerHour        = 50.0
	cruiseSpeedKmh      = 850.0
	groundHours         = 0.5
	routeSkipChance     = 0.25
	premiumRows         = 8
	premiumPriceFactor  = 1.9
	standardPriceFactor = 0.9
)

// Dataset is the full set of generated fixtures, ready to be imported into a store.
type Dataset struct {
	Airlines []domain.Airline
	Airports []domain.Airport
	Flights  []domain.Flight
	Seats    []domain.Seat
	Persons  []domain.Person
	Bookings []domain.Booking
}

func (d *Dataset) Summary() string {
	return fmt.Sprintf("airlines=%d airports=%d flights=%d seats=%d bookings=%d persons=%d",
		len(d.Airlines), len(d.Airports), len(d.Flights), len(d.Seats), len(d.Bookings), len(d.Persons))
}

type Options struct {
	Seed    uint64
	Year    int
	Month   time.Month
	Catalog Catalog
	// Now stamps BookedAt on pre-booked seats. Defaults to time.Now.
	Now func() time.Time
}

type Generator struct {
	rng     *rand.Rand
	catalog Catalog
	year    int
	month   time.Month
	now     func() time.Time
}

func NewGenerator(opts Options) *Generator {
	if opts.Catalog.Airports == nil {
		opts.Catalog = DefaultCatalog()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Generator{
		rng:     rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15)),
		catalog: opts.Catalog,
		year:    opts.Year,
		month:   opts.Month,
		now:     opts.Now,
	}
}

// Generate builds reference data, one flight per day for every served route of the
// configured month, all seats, and a random initial booking distribution.
func (g *Generator) Generate() (*Dataset, error) {
	if g.month < time.January || g.month > time.December {
		return nil, fmt.Errorf("%w: month %d", domain.ErrInvalidInput, g.month)
	}
	if len(g.catalog.Aircraft) == 0 {
		return nil, fmt.Errorf("%w: catalog has no aircraft", domain.ErrInvalidInput)
	}

	ds := &Dataset{}
	for _, a := range g.catalog.Airlines {
		ds.Airlines = append(ds.Airlines, a.Airline)
	}
	for _, a := range g.catalog.Airports {
		ds.Airports = append(ds.Airports, a.Airport)
	}

	flightSeats, err := g.generateFlights(ds)
	if err != nil {
		return nil, err
	}
	g.populateBookings(ds, flightSeats)
	return ds, nil
}

func (g *Generator) generateFlights(ds *Dataset) ([][]int, error) {
	var (
		seatID      int64
		flightSeats [][]int
	)
	days := time.Date(g.year, g.month+1, 0, 0, 0, 0, 0, time.UTC).Day()

	for _, src := range g.catalog.Airports {
		for _, dst := range g.catalog.Airports {
			if src.Airport.Code == dst.Airport.Code {
				continue
			}
			km := distanceKm(src.Airport, dst.Airport)

			for _, name := range src.Airlines {
				if !slices.Contains(dst.Airlines, name) {
					continue
				}
				airline, ok := g.catalog.airline(name)
				if !ok {
					return nil, fmt.Errorf("%w: airport %s references unknown airline %q", domain.ErrInvalidInput, src.Airport.Code, name)
				}

				jitter := g.rng.Float64() / 2
				hours := (km/cruiseSpeedKmh + groundHours) * (1 + jitter*jitter*jitter*jitter)
				if g.rng.Float64() < routeSkipChance {
					continue
				}
				basePrice := hours * pricePerHour * src.PriceModifier * dst.PriceModifier * airline.PriceModifier

				for day := 1; day <= days; day++ {
					hour := 7 + g.rng.IntN(15)
					minute := g.rng.IntN(60)
					date := time.Date(g.year, g.month, day, hour, minute, 0, 0, time.UTC)
					aircraft := g.catalog.Aircraft[g.rng.IntN(len(g.catalog.Aircraft))]

					flight := domain.Flight{
						ID:                 fmt.Sprintf("%s_%s_%s_%d-%d-%d-%d-%d", src.Airport.Code, dst.Airport.Code, name, g.year, int(g.month), day, hour, minute),
						AirlineID:          airline.Airline.ID,
						DepartureAirportID: src.Airport.Code,
						ArrivalAirportID:   dst.Airport.Code,
						Plane:              aircraft.Model,
						Date:               date,
						DurationMinutes:    int(hours * 60),
					}
					ds.Flights = append(ds.Flights, flight)

					indexes := make([]int, 0, aircraft.Rows*aircraft.Cols)
					for row := 1; row <= aircraft.Rows; row++ {
						class, factor := domain.TravelClassStandard, standardPriceFactor
						if row <= premiumRows {
							class, factor = domain.TravelClassPremium, premiumPriceFactor
						}
						for col := 0; col < aircraft.Cols; col++ {
							seatID++
							indexes = append(indexes, len(ds.Seats))
							ds.Seats = append(ds.Seats, domain.Seat{
								ID:          seatID,
								FlightID:    flight.ID,
								Number:      fmt.Sprintf("%d%c", row, 'A'+col),
								TravelClass: class,
								Price:       basePrice * factor,
							})
						}
					}
					flightSeats = append(flightSeats, indexes)
				}
			}
		}
	}
	return flightSeats, nil
}

// populateBookings books a random number of seats (at most all but one) per flight,
// each for a freshly created person.
func (g *Generator) populateBookings(ds *Dataset, flightSeats [][]int) {
	var personID int64
	bookedAt := g.now().UTC()
	earliest := time.Date(1930, 1, 1, 0, 0, 0, 0, time.UTC)
	span := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC).Sub(earliest)

	for _, indexes := range flightSeats {
		fill := g.rng.IntN(len(indexes))
		for _, pick := range g.rng.Perm(len(indexes))[:fill] {
			seat := &ds.Seats[indexes[pick]]
			seat.Booked = true
			seat.BookedAt = &bookedAt

			personID++
			ds.Persons = append(ds.Persons, domain.Person{
				ID:          personID,
				Name:        firstNames[g.rng.IntN(len(firstNames))] + " " + lastNames[g.rng.IntN(len(lastNames))],
				Birthdate:   earliest.Add(time.Duration(g.rng.Int64N(int64(span/time.Second))) * time.Second),
				Passport:    fmt.Sprintf("%d", 10000000+g.rng.IntN(90000000)),
				TravelClass: seat.TravelClass,
			})
			ds.Bookings = append(ds.Bookings, domain.Booking{SeatID: seat.ID, PersonID: personID, CreatedAt: bookedAt})
		}
	}
}

func distanceKm(a, b domain.Airport) float64 {
	p := geodist.Coord{Lat: a.Latitude, Lon: a.Longitude}
	q := geodist.Coord{Lat: b.Latitude, Lon: b.Longitude}
	_, km, err := geodist.VincentyDistance(p, q)
	if err != nil {
		// Vincenty does not converge for nearly antipodal points.
		_, km = geodist.HaversineDistance(p, q)
	}
	return km
}
