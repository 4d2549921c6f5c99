package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	collAirlines = "airlines"
	collAirports = "airports"
	collFlights  = "flights"
	collSeats    = "seats"
	collPersons  = "persons"
	collBookings = "bookings"
	collCounters = "counters"
)

// mongoNotFound turns mongo.ErrNoDocuments into domain.ErrNotFound and wraps everything else.
func mongoNotFound(err error, format string, args ...any) error {
	what := fmt.Sprintf(format, args...)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("%s: %w", what, domain.ErrNotFound)
	}
	return fmt.Errorf("get %s: %w", what, err)
}

func decodeAll[T any](ctx context.Context, cur *mongo.Cursor) ([]T, error) {
	defer cur.Close(ctx)

	out := make([]T, 0)
	for cur.Next(ctx) {
		var v T
		if err := cur.Decode(&v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, cur.Err()
}
