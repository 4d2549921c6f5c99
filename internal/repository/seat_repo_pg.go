package repository

import (
	"context"
	"time"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PGSeatRepository struct {
	db *pgxpool.Pool
}

func NewPGSeatRepository(db *pgxpool.Pool) SeatRepository {
	return &PGSeatRepository{db: db}
}

func (r *PGSeatRepository) GetByID(ctx context.Context, id int64) (*domain.Seat, error) {
	var (
		s           domain.Seat
		travelClass int16
	)
	err := r.db.QueryRow(ctx, `SELECT seat_id, flight_id, number, travel_class, price, booked, booked_at FROM seats WHERE seat_id=$1`, id).
		Scan(&s.ID, &s.FlightID, &s.Number, &travelClass, &s.Price, &s.Booked, &s.BookedAt)
	if err != nil {
		return nil, notFound(err, "seat %d", id)
	}
	s.TravelClass = domain.TravelClass(travelClass)
	return &s, nil
}

func (r *PGSeatRepository) Occupancy(ctx context.Context, flightIDs []string) (map[string]float64, error) {
	occupancy := make(map[string]float64, len(flightIDs))
	if len(flightIDs) == 0 {
		return occupancy, nil
	}

	rows, err := r.db.Query(ctx, `
		SELECT flight_id, COUNT(*) FILTER (WHERE booked), COUNT(*)
		FROM seats
		WHERE flight_id = ANY($1)
		GROUP BY flight_id`, flightIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			flightID      string
			booked, total int64
		)
		if err := rows.Scan(&flightID, &booked, &total); err != nil {
			return nil, err
		}
		if total > 0 {
			occupancy[flightID] = float64(booked) / float64(total)
		}
	}
	return occupancy, rows.Err()
}

func (r *PGSeatRepository) ReleaseOrphaned(ctx context.Context, bookedBefore time.Time) ([]int64, error) {
	rows, err := r.db.Query(ctx, `
		UPDATE seats s
		SET booked = FALSE, booked_at = NULL
		WHERE s.booked
		  AND s.booked_at < $1
		  AND NOT EXISTS (SELECT 1 FROM bookings b WHERE b.seat_id = s.seat_id)
		RETURNING s.seat_id`, bookedBefore)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var released []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		released = append(released, id)
	}
	return released, rows.Err()
}

var _ SeatRepository = (*PGSeatRepository)(nil)
