package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/Domenick1991/flightbooking/internal/dataset"
	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPGStore(t *testing.T) {
	pool := &pgxpool.Pool{}
	store := NewPGStore(pool)

	assert.NotNil(t, store.Airlines)
	assert.NotNil(t, store.Airports)
	assert.NotNil(t, store.Flights)
	assert.NotNil(t, store.Seats)
	assert.NotNil(t, store.Persons)
	assert.NotNil(t, store.Bookings)
	assert.NotNil(t, store.Stats)
	assert.NotNil(t, store.Importer)
}

func TestNotFound(t *testing.T) {
	err := notFound(pgx.ErrNoRows, "seat %d", 42)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.Contains(t, err.Error(), "seat 42")

	boom := errors.New("connection reset")
	err = notFound(boom, "seat %d", 42)
	assert.False(t, errors.Is(err, domain.ErrNotFound))
	assert.True(t, errors.Is(err, boom))
}

func TestFindOffersArgs(t *testing.T) {
	from := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	q := domain.FlightQuery{Origin: "ZRH", From: from, To: from.Add(48 * time.Hour)}

	args := findOffersArgs(q, domain.TravelClassStandard)
	require.Len(t, args, 5)
	assert.Equal(t, "ZRH", args[0])
	assert.Equal(t, "", args[1])
	assert.Equal(t, int16(2), args[4])
}

func TestPGCopySources(t *testing.T) {
	ds, err := dataset.NewGenerator(dataset.Options{Seed: 1, Year: 2020, Month: time.January}).Generate()
	require.NoError(t, err)

	sources := pgCopySources(ds)
	tables := make([]string, 0, len(sources))
	for _, s := range sources {
		tables = append(tables, s.table)
	}
	assert.Equal(t, []string{"airlines", "airports", "flights", "seats", "persons", "bookings"}, tables)

	seats := sources[3]
	rows := 0
	for seats.rows.Next() {
		values, err := seats.rows.Values()
		require.NoError(t, err)
		require.Len(t, values, len(seats.columns))
		_, ok := values[3].(int16)
		assert.True(t, ok, "travel_class is copied as smallint")
		rows++
	}
	assert.Equal(t, len(ds.Seats), rows)
}

func TestPGSchemaEmbedded(t *testing.T) {
	for _, table := range []string{"airlines", "airports", "flights", "seats", "persons", "bookings"} {
		assert.Contains(t, pgSchema, "CREATE TABLE "+table)
	}
}
