package repository

import (
	"context"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PGStatsRepository struct {
	db *pgxpool.Pool
}

func NewPGStatsRepository(db *pgxpool.Pool) StatsRepository {
	return &PGStatsRepository{db: db}
}

func (r *PGStatsRepository) AirlineStats(ctx context.Context) ([]domain.AirlineStats, error) {
	rows, err := r.db.Query(ctx, `
		SELECT f.airline_id,
		       COUNT(*) FILTER (WHERE s.booked)::float8 / COUNT(*),
		       COUNT(DISTINCT f.departure_airport_id),
		       AVG(s.price)
		FROM flights f
		JOIN seats s ON s.flight_id = f.flight_id
		GROUP BY f.airline_id
		ORDER BY f.airline_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := make([]domain.AirlineStats, 0)
	for rows.Next() {
		var s domain.AirlineStats
		if err := rows.Scan(&s.AirlineID, &s.Occupancy, &s.AirportsServed, &s.AvgPrice); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

var _ StatsRepository = (*PGStatsRepository)(nil)
