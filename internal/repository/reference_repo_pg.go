package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PGAirlineRepository struct {
	db *pgxpool.Pool
}

func NewPGAirlineRepository(db *pgxpool.Pool) AirlineRepository {
	return &PGAirlineRepository{db: db}
}

func (r *PGAirlineRepository) GetByID(ctx context.Context, id int64) (*domain.Airline, error) {
	var a domain.Airline
	err := r.db.QueryRow(ctx, `SELECT airline_id, name, logo_url FROM airlines WHERE airline_id=$1`, id).
		Scan(&a.ID, &a.Name, &a.LogoURL)
	if err != nil {
		return nil, notFound(err, "airline %d", id)
	}
	return &a, nil
}

func (r *PGAirlineRepository) List(ctx context.Context) ([]domain.Airline, error) {
	rows, err := r.db.Query(ctx, `SELECT airline_id, name, logo_url FROM airlines ORDER BY airline_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	airlines := make([]domain.Airline, 0)
	for rows.Next() {
		var a domain.Airline
		if err := rows.Scan(&a.ID, &a.Name, &a.LogoURL); err != nil {
			return nil, err
		}
		airlines = append(airlines, a)
	}
	return airlines, rows.Err()
}

type PGAirportRepository struct {
	db *pgxpool.Pool
}

func NewPGAirportRepository(db *pgxpool.Pool) AirportRepository {
	return &PGAirportRepository{db: db}
}

func (r *PGAirportRepository) GetByCode(ctx context.Context, code string) (*domain.Airport, error) {
	var a domain.Airport
	err := r.db.QueryRow(ctx, `SELECT airport_id, city, country, keywords, lat, lon FROM airports WHERE airport_id=$1`, code).
		Scan(&a.Code, &a.City, &a.Country, &a.Keywords, &a.Latitude, &a.Longitude)
	if err != nil {
		return nil, notFound(err, "airport %s", code)
	}
	return &a, nil
}

func (r *PGAirportRepository) List(ctx context.Context) ([]domain.Airport, error) {
	rows, err := r.db.Query(ctx, `SELECT airport_id, city, country, keywords, lat, lon FROM airports ORDER BY airport_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	airports := make([]domain.Airport, 0)
	for rows.Next() {
		var a domain.Airport
		if err := rows.Scan(&a.Code, &a.City, &a.Country, &a.Keywords, &a.Latitude, &a.Longitude); err != nil {
			return nil, err
		}
		airports = append(airports, a)
	}
	return airports, rows.Err()
}

// notFound turns pgx.ErrNoRows into domain.ErrNotFound and wraps everything else.
func notFound(err error, format string, args ...any) error {
	what := fmt.Sprintf(format, args...)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", what, domain.ErrNotFound)
	}
	return fmt.Errorf("get %s: %w", what, err)
}

var (
	_ AirlineRepository = (*PGAirlineRepository)(nil)
	_ AirportRepository = (*PGAirportRepository)(nil)
)
