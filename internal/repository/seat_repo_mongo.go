package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type MongoSeatRepository struct {
	coll     *mongo.Collection
	bookings *mongo.Collection
}

func NewMongoSeatRepository(db *mongo.Database) SeatRepository {
	return &MongoSeatRepository{coll: db.Collection(collSeats), bookings: db.Collection(collBookings)}
}

func (r *MongoSeatRepository) GetByID(ctx context.Context, id int64) (*domain.Seat, error) {
	var s domain.Seat
	if err := r.coll.FindOne(ctx, bson.D{{"seat_id", id}}).Decode(&s); err != nil {
		return nil, mongoNotFound(err, "seat %d", id)
	}
	return &s, nil
}

type seatCounts struct {
	FlightID string `bson:"_id"`
	Total    int64  `bson:"total"`
	Booked   int64  `bson:"booked"`
}

func (r *MongoSeatRepository) Occupancy(ctx context.Context, flightIDs []string) (map[string]float64, error) {
	occupancy := make(map[string]float64, len(flightIDs))
	if len(flightIDs) == 0 {
		return occupancy, nil
	}

	cur, err := r.coll.Aggregate(ctx, occupancyPipeline(flightIDs))
	if err != nil {
		return nil, err
	}
	counts, err := decodeAll[seatCounts](ctx, cur)
	if err != nil {
		return nil, err
	}
	for _, c := range counts {
		if c.Total > 0 {
			occupancy[c.FlightID] = float64(c.Booked) / float64(c.Total)
		}
	}
	return occupancy, nil
}

func occupancyPipeline(flightIDs []string) mongo.Pipeline {
	return mongo.Pipeline{
		{{"$match", bson.D{{"flight_id", bson.D{{"$in", flightIDs}}}}}},
		{{"$group", bson.D{
			{"_id", "$flight_id"},
			{"total", bson.D{{"$sum", 1}}},
			{"booked", bson.D{{"$sum", bson.D{{"$cond", bson.A{"$booked", 1, 0}}}}}},
		}}},
	}
}

// ReleaseOrphaned finds candidates with one aggregation, then releases them one
// by one. Each seat is checked for a booking record again right before its
// conditional update, and only seats the update actually modified are returned.
func (r *MongoSeatRepository) ReleaseOrphaned(ctx context.Context, bookedBefore time.Time) ([]int64, error) {
	cur, err := r.coll.Aggregate(ctx, orphanedSeatsPipeline(bookedBefore))
	if err != nil {
		return nil, err
	}
	docs, err := decodeAll[struct {
		SeatID int64 `bson:"seat_id"`
	}](ctx, cur)
	if err != nil {
		return nil, err
	}

	var released []int64
	for _, d := range docs {
		ok, err := r.releaseSeat(ctx, d.SeatID, bookedBefore)
		if err != nil {
			return released, err
		}
		if ok {
			released = append(released, d.SeatID)
		}
	}
	return released, nil
}

func (r *MongoSeatRepository) releaseSeat(ctx context.Context, seatID int64, bookedBefore time.Time) (bool, error) {
	n, err := r.bookings.CountDocuments(ctx, bson.D{{"seat_id", seatID}})
	if err != nil {
		return false, fmt.Errorf("check booking of seat %d: %w", seatID, err)
	}
	if n > 0 {
		return false, nil
	}

	res, err := r.coll.UpdateOne(ctx,
		bson.D{
			{"seat_id", seatID},
			{"booked", true},
			{"booked_at", bson.D{{"$lt", bookedBefore}}},
		},
		bson.D{
			{"$set", bson.D{{"booked", false}}},
			{"$unset", bson.D{{"booked_at", ""}}},
		})
	if err != nil {
		return false, fmt.Errorf("release seat %d: %w", seatID, err)
	}
	return res.ModifiedCount == 1, nil
}

func orphanedSeatsPipeline(bookedBefore time.Time) mongo.Pipeline {
	return mongo.Pipeline{
		{{"$match", bson.D{{"booked", true}, {"booked_at", bson.D{{"$lt", bookedBefore}}}}}},
		{{"$lookup", bson.D{
			{"from", collBookings},
			{"localField", "seat_id"},
			{"foreignField", "seat_id"},
			{"as", "bookings"},
		}}},
		{{"$match", bson.D{{"bookings", bson.D{{"$size", 0}}}}}},
		{{"$project", bson.D{{"_id", 0}, {"seat_id", 1}}}},
	}
}

var _ SeatRepository = (*MongoSeatRepository)(nil)
