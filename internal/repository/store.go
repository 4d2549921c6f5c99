package repository

import (
	"context"
	"fmt"

	"github.com/Domenick1991/flightbooking/config"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store bundles the per-entity repositories of one backend.
type Store struct {
	Airlines AirlineRepository
	Airports AirportRepository
	Flights  FlightRepository
	Seats    SeatRepository
	Persons  PersonRepository
	Bookings BookingRepository
	Stats    StatsRepository
	Importer Importer

	close func(ctx context.Context) error
}

func (s *Store) Close(ctx context.Context) error {
	if s == nil || s.close == nil {
		return nil
	}
	return s.close(ctx)
}

// Open connects to the backend selected by cfg.Storage.Driver.
func Open(ctx context.Context, cfg *config.Config) (*Store, error) {
	switch cfg.Storage.Driver {
	case config.StorageDriverPostgres:
		pool, err := pgxpool.New(ctx, cfg.Database.DSN())
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("ping postgres: %w", err)
		}
		return NewPGStore(pool), nil
	case config.StorageDriverMongo:
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
		if err != nil {
			return nil, fmt.Errorf("connect mongo: %w", err)
		}
		if err := client.Ping(ctx, nil); err != nil {
			_ = client.Disconnect(ctx)
			return nil, fmt.Errorf("ping mongo: %w", err)
		}
		return NewMongoStore(client, client.Database(cfg.Mongo.Database)), nil
	case config.StorageDriverMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

func NewPGStore(pool *pgxpool.Pool) *Store {
	return &Store{
		Airlines: NewPGAirlineRepository(pool),
		Airports: NewPGAirportRepository(pool),
		Flights:  NewPGFlightRepository(pool),
		Seats:    NewPGSeatRepository(pool),
		Persons:  NewPGPersonRepository(pool),
		Bookings: NewPGBookingRepository(pool),
		Stats:    NewPGStatsRepository(pool),
		Importer: NewPGImporter(pool),
		close: func(context.Context) error {
			pool.Close()
			return nil
		},
	}
}

func NewMongoStore(client *mongo.Client, db *mongo.Database) *Store {
	return &Store{
		Airlines: NewMongoAirlineRepository(db),
		Airports: NewMongoAirportRepository(db),
		Flights:  NewMongoFlightRepository(db),
		Seats:    NewMongoSeatRepository(db),
		Persons:  NewMongoPersonRepository(db),
		Bookings: NewMongoBookingRepository(db),
		Stats:    NewMongoStatsRepository(db),
		Importer: NewMongoImporter(db),
		close: func(ctx context.Context) error {
			if client == nil {
				return nil
			}
			return client.Disconnect(ctx)
		},
	}
}
