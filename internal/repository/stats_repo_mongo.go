package repository

import (
	"context"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type MongoStatsRepository struct {
	seats *mongo.Collection
}

func NewMongoStatsRepository(db *mongo.Database) StatsRepository {
	return &MongoStatsRepository{seats: db.Collection(collSeats)}
}

func (r *MongoStatsRepository) AirlineStats(ctx context.Context) ([]domain.AirlineStats, error) {
	cur, err := r.seats.Aggregate(ctx, airlineStatsPipeline())
	if err != nil {
		return nil, err
	}
	return decodeAll[domain.AirlineStats](ctx, cur)
}

// airlineStatsPipeline rolls seats up per flight first so the flights lookup runs
// once per flight instead of once per seat.
func airlineStatsPipeline() mongo.Pipeline {
	return mongo.Pipeline{
		{{"$group", bson.D{
			{"_id", "$flight_id"},
			{"total", bson.D{{"$sum", 1}}},
			{"booked", bson.D{{"$sum", bson.D{{"$cond", bson.A{"$booked", 1, 0}}}}}},
			{"price_sum", bson.D{{"$sum", "$price"}}},
		}}},
		{{"$lookup", bson.D{
			{"from", collFlights},
			{"localField", "_id"},
			{"foreignField", "flight_id"},
			{"as", "flight"},
		}}},
		{{"$unwind", "$flight"}},
		{{"$group", bson.D{
			{"_id", "$flight.airline_id"},
			{"total", bson.D{{"$sum", "$total"}}},
			{"booked", bson.D{{"$sum", "$booked"}}},
			{"price_sum", bson.D{{"$sum", "$price_sum"}}},
			{"airports", bson.D{{"$addToSet", "$flight.departure_airport_id"}}},
		}}},
		{{"$project", bson.D{
			{"occupancy", bson.D{{"$divide", bson.A{"$booked", "$total"}}}},
			{"airports_served", bson.D{{"$size", "$airports"}}},
			{"avg_price", bson.D{{"$divide", bson.A{"$price_sum", "$total"}}}},
		}}},
		{{"$sort", bson.D{{"_id", 1}}}},
	}
}

var _ StatsRepository = (*MongoStatsRepository)(nil)
