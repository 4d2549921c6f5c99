package repository

import (
	"context"
	"fmt"

	"github.com/Domenick1991/flightbooking/internal/dataset"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const mongoInsertBatch = 5000

type MongoImporter struct {
	db *mongo.Database
}

func NewMongoImporter(db *mongo.Database) Importer {
	return &MongoImporter{db: db}
}

// mongoIndexes holds the unique keys and the lookup paths used by queries.
var mongoIndexes = map[string][]mongo.IndexModel{
	collAirlines: {{Keys: bson.D{{"airline_id", 1}}, Options: options.Index().SetUnique(true)}},
	collAirports: {{Keys: bson.D{{"airport_id", 1}}, Options: options.Index().SetUnique(true)}},
	collFlights: {
		{Keys: bson.D{{"flight_id", 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{"departure_airport_id", 1}, {"arrival_airport_id", 1}, {"date", 1}}},
	},
	collSeats: {
		{Keys: bson.D{{"seat_id", 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{"flight_id", 1}, {"booked", 1}, {"travel_class", 1}, {"seat_id", 1}}},
	},
	collPersons: {{Keys: bson.D{{"person_id", 1}}, Options: options.Index().SetUnique(true)}},
	collBookings: {
		{Keys: bson.D{{"seat_id", 1}, {"person_id", 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{"seat_id", 1}}, Options: options.Index().SetUnique(true)},
	},
}

// Import drops every collection, recreates indexes and inserts ds in batches.
func (i *MongoImporter) Import(ctx context.Context, ds *dataset.Dataset) error {
	for _, name := range []string{collAirlines, collAirports, collFlights, collSeats, collPersons, collBookings, collCounters} {
		if err := i.db.Collection(name).Drop(ctx); err != nil {
			return fmt.Errorf("drop %s: %w", name, err)
		}
	}

	for name, models := range mongoIndexes {
		if _, err := i.db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create indexes on %s: %w", name, err)
		}
	}

	loads := []struct {
		name string
		docs []any
	}{
		{collAirlines, toDocs(ds.Airlines)},
		{collAirports, toDocs(ds.Airports)},
		{collFlights, toDocs(ds.Flights)},
		{collSeats, toDocs(ds.Seats)},
		{collPersons, toDocs(ds.Persons)},
		{collBookings, toDocs(ds.Bookings)},
	}
	for _, l := range loads {
		if err := insertBatched(ctx, i.db.Collection(l.name), l.docs); err != nil {
			return fmt.Errorf("insert %s: %w", l.name, err)
		}
	}

	var maxPersonID int64
	for _, p := range ds.Persons {
		maxPersonID = max(maxPersonID, p.ID)
	}
	_, err := i.db.Collection(collCounters).UpdateOne(ctx,
		bson.D{{"_id", personSequence}},
		bson.D{{"$set", bson.D{{"seq", maxPersonID}}}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("set person counter: %w", err)
	}
	return nil
}

func toDocs[T any](items []T) []any {
	docs := make([]any, len(items))
	for i := range items {
		docs[i] = items[i]
	}
	return docs
}

func insertBatched(ctx context.Context, coll *mongo.Collection, docs []any) error {
	for start := 0; start < len(docs); start += mongoInsertBatch {
		end := min(start+mongoInsertBatch, len(docs))
		if _, err := coll.InsertMany(ctx, docs[start:end], options.InsertMany().SetOrdered(false)); err != nil {
			return err
		}
	}
	return nil
}

var _ Importer = (*MongoImporter)(nil)
