package repository

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/Domenick1991/flightbooking/internal/dataset"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema.sql
var pgSchema string

type PGImporter struct {
	db *pgxpool.Pool
}

func NewPGImporter(db *pgxpool.Pool) Importer {
	return &PGImporter{db: db}
}

// Import recreates the schema and bulk-loads ds with COPY inside one transaction.
func (i *PGImporter) Import(ctx context.Context, ds *dataset.Dataset) error {
	tx, err := i.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin import tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, pgSchema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}

	for _, t := range pgCopySources(ds) {
		if _, err := tx.CopyFrom(ctx, pgx.Identifier{t.table}, t.columns, t.rows); err != nil {
			return fmt.Errorf("copy %s: %w", t.table, err)
		}
	}

	if _, err := tx.Exec(ctx, `SELECT setval(pg_get_serial_sequence('persons', 'person_id'),
		COALESCE((SELECT MAX(person_id) FROM persons), 0) + 1, false)`); err != nil {
		return fmt.Errorf("reset person sequence: %w", err)
	}

	return tx.Commit(ctx)
}

type pgCopySource struct {
	table   string
	columns []string
	rows    pgx.CopyFromSource
}

// pgCopySources lists tables in foreign key order.
func pgCopySources(ds *dataset.Dataset) []pgCopySource {
	return []pgCopySource{
		{
			table:   "airlines",
			columns: []string{"airline_id", "name", "logo_url"},
			rows: pgx.CopyFromSlice(len(ds.Airlines), func(i int) ([]any, error) {
				a := ds.Airlines[i]
				return []any{a.ID, a.Name, a.LogoURL}, nil
			}),
		},
		{
			table:   "airports",
			columns: []string{"airport_id", "city", "country", "keywords", "lat", "lon"},
			rows: pgx.CopyFromSlice(len(ds.Airports), func(i int) ([]any, error) {
				a := ds.Airports[i]
				keywords := a.Keywords
				if keywords == nil {
					keywords = []string{}
				}
				return []any{a.Code, a.City, a.Country, keywords, a.Latitude, a.Longitude}, nil
			}),
		},
		{
			table:   "flights",
			columns: []string{"flight_id", "airline_id", "departure_airport_id", "arrival_airport_id", "plane", "departure_time", "duration_mins"},
			rows: pgx.CopyFromSlice(len(ds.Flights), func(i int) ([]any, error) {
				f := ds.Flights[i]
				return []any{f.ID, f.AirlineID, f.DepartureAirportID, f.ArrivalAirportID, f.Plane, f.Date, int32(f.DurationMinutes)}, nil
			}),
		},
		{
			table:   "seats",
			columns: []string{"seat_id", "flight_id", "number", "travel_class", "price", "booked", "booked_at"},
			rows: pgx.CopyFromSlice(len(ds.Seats), func(i int) ([]any, error) {
				s := ds.Seats[i]
				return []any{s.ID, s.FlightID, s.Number, int16(s.TravelClass), s.Price, s.Booked, s.BookedAt}, nil
			}),
		},
		{
			table:   "persons",
			columns: []string{"person_id", "name", "birthdate", "passport", "travel_class"},
			rows: pgx.CopyFromSlice(len(ds.Persons), func(i int) ([]any, error) {
				p := ds.Persons[i]
				return []any{p.ID, p.Name, p.Birthdate, p.Passport, int16(p.TravelClass)}, nil
			}),
		},
		{
			table:   "bookings",
			columns: []string{"seat_id", "person_id", "created_at"},
			rows: pgx.CopyFromSlice(len(ds.Bookings), func(i int) ([]any, error) {
				b := ds.Bookings[i]
				return []any{b.SeatID, b.PersonID, b.CreatedAt}, nil
			}),
		},
	}
}

var _ Importer = (*PGImporter)(nil)
