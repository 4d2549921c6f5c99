package repository

import (
	"context"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type MongoFlightRepository struct {
	coll *mongo.Collection
}

func NewMongoFlightRepository(db *mongo.Database) FlightRepository {
	return &MongoFlightRepository{coll: db.Collection(collFlights)}
}

func (r *MongoFlightRepository) GetByID(ctx context.Context, id string) (*domain.Flight, error) {
	var f domain.Flight
	if err := r.coll.FindOne(ctx, bson.D{{"flight_id", id}}).Decode(&f); err != nil {
		return nil, mongoNotFound(err, "flight %s", id)
	}
	f.Date = f.Date.UTC()
	return &f, nil
}

type offerDoc struct {
	domain.Flight `bson:",inline"`
	Seat          domain.Seat `bson:"seat"`
}

func (r *MongoFlightRepository) FindOffers(ctx context.Context, q domain.FlightQuery, class domain.TravelClass) ([]Offer, error) {
	cur, err := r.coll.Aggregate(ctx, findOffersPipeline(q, class))
	if err != nil {
		return nil, err
	}
	docs, err := decodeAll[offerDoc](ctx, cur)
	if err != nil {
		return nil, err
	}

	offers := make([]Offer, 0, len(docs))
	for _, d := range docs {
		d.Flight.Date = d.Flight.Date.UTC()
		offers = append(offers, Offer{Flight: d.Flight, Seat: d.Seat})
	}
	return offers, nil
}

// findOffersPipeline joins every matching flight with its lowest free seat of
// class and drops flights that have none.
func findOffersPipeline(q domain.FlightQuery, class domain.TravelClass) mongo.Pipeline {
	match := bson.D{
		{"departure_airport_id", q.Origin},
		{"date", bson.D{{"$gte", q.From}, {"$lte", q.To}}},
	}
	if q.Destination != "" {
		match = append(match, bson.E{Key: "arrival_airport_id", Value: q.Destination})
	}

	return mongo.Pipeline{
		{{"$match", match}},
		{{"$lookup", bson.D{
			{"from", collSeats},
			{"let", bson.D{{"fid", "$flight_id"}}},
			{"pipeline", bson.A{
				bson.D{{"$match", bson.D{
					{"$expr", bson.D{{"$eq", bson.A{"$flight_id", "$$fid"}}}},
					{"booked", false},
					{"travel_class", int(class)},
				}}},
				bson.D{{"$sort", bson.D{{"seat_id", 1}}}},
				bson.D{{"$limit", 1}},
			}},
			{"as", "seat"},
		}}},
		{{"$unwind", "$seat"}},
	}
}

var _ FlightRepository = (*MongoFlightRepository)(nil)
