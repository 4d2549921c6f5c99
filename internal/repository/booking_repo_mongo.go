package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoBookingRepository struct {
	seats    *mongo.Collection
	bookings *mongo.Collection
	now      func() time.Time
}

func NewMongoBookingRepository(db *mongo.Database) BookingRepository {
	return &MongoBookingRepository{
		seats:    db.Collection(collSeats),
		bookings: db.Collection(collBookings),
		now:      time.Now,
	}
}

// Book flips the seat with a single conditional update, then upserts the booking
// record. If the second write fails the seat stays booked without a record and
// is picked up by the repair sweep.
func (r *MongoBookingRepository) Book(ctx context.Context, seatID, personID int64) (bool, error) {
	now := r.now().UTC()

	res, err := r.seats.UpdateOne(ctx,
		bson.D{{"seat_id", seatID}, {"booked", false}},
		bson.D{{"$set", bson.D{{"booked", true}, {"booked_at", now}}}},
	)
	if err != nil {
		return false, fmt.Errorf("update seat %d: %w", seatID, err)
	}
	if res.ModifiedCount != 1 {
		return false, nil
	}

	_, err = r.bookings.UpdateOne(ctx,
		bson.D{{"seat_id", seatID}, {"person_id", personID}},
		bson.D{{"$setOnInsert", bson.D{{"created_at", now}}}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return false, fmt.Errorf("insert booking %d/%d: %w", seatID, personID, err)
	}
	return true, nil
}

func (r *MongoBookingRepository) Get(ctx context.Context, seatID, personID int64) (*domain.Booking, error) {
	var b domain.Booking
	err := r.bookings.FindOne(ctx, bson.D{{"seat_id", seatID}, {"person_id", personID}}).Decode(&b)
	if err != nil {
		return nil, mongoNotFound(err, "booking %d/%d", seatID, personID)
	}
	return &b, nil
}

var _ BookingRepository = (*MongoBookingRepository)(nil)
