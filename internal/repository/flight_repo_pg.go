package repository

import (
	"context"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

const flightColumns = `f.flight_id, f.airline_id, f.departure_airport_id, f.arrival_airport_id, f.plane, f.departure_time, f.duration_mins`

// findOffersSQL keeps the lowest free seat id of the class per flight.
const findOffersSQL = `
	SELECT DISTINCT ON (f.flight_id) ` + flightColumns + `,
	       s.seat_id, s.number, s.travel_class, s.price
	FROM flights f
	JOIN seats s ON s.flight_id = f.flight_id
	WHERE f.departure_airport_id = $1
	  AND ($2 = '' OR f.arrival_airport_id = $2)
	  AND f.departure_time BETWEEN $3 AND $4
	  AND s.booked = FALSE
	  AND s.travel_class = $5
	ORDER BY f.flight_id, s.seat_id`

type PGFlightRepository struct {
	db *pgxpool.Pool
}

func NewPGFlightRepository(db *pgxpool.Pool) FlightRepository {
	return &PGFlightRepository{db: db}
}

func (r *PGFlightRepository) GetByID(ctx context.Context, id string) (*domain.Flight, error) {
	var f domain.Flight
	err := r.db.QueryRow(ctx, `SELECT `+flightColumns+` FROM flights f WHERE f.flight_id=$1`, id).
		Scan(&f.ID, &f.AirlineID, &f.DepartureAirportID, &f.ArrivalAirportID, &f.Plane, &f.Date, &f.DurationMinutes)
	if err != nil {
		return nil, notFound(err, "flight %s", id)
	}
	f.Date = f.Date.UTC()
	return &f, nil
}

func (r *PGFlightRepository) FindOffers(ctx context.Context, q domain.FlightQuery, class domain.TravelClass) ([]Offer, error) {
	rows, err := r.db.Query(ctx, findOffersSQL, findOffersArgs(q, class)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	offers := make([]Offer, 0)
	for rows.Next() {
		var (
			o           Offer
			travelClass int16
		)
		if err := rows.Scan(
			&o.Flight.ID, &o.Flight.AirlineID, &o.Flight.DepartureAirportID, &o.Flight.ArrivalAirportID,
			&o.Flight.Plane, &o.Flight.Date, &o.Flight.DurationMinutes,
			&o.Seat.ID, &o.Seat.Number, &travelClass, &o.Seat.Price,
		); err != nil {
			return nil, err
		}
		o.Flight.Date = o.Flight.Date.UTC()
		o.Seat.FlightID = o.Flight.ID
		o.Seat.TravelClass = domain.TravelClass(travelClass)
		offers = append(offers, o)
	}
	return offers, rows.Err()
}

func findOffersArgs(q domain.FlightQuery, class domain.TravelClass) []any {
	return []any{q.Origin, q.Destination, q.From, q.To, int16(class)}
}

var _ FlightRepository = (*PGFlightRepository)(nil)
