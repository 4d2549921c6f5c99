package repository

import (
	"context"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoAirlineRepository struct {
	coll *mongo.Collection
}

func NewMongoAirlineRepository(db *mongo.Database) AirlineRepository {
	return &MongoAirlineRepository{coll: db.Collection(collAirlines)}
}

func (r *MongoAirlineRepository) GetByID(ctx context.Context, id int64) (*domain.Airline, error) {
	var a domain.Airline
	if err := r.coll.FindOne(ctx, bson.D{{"airline_id", id}}).Decode(&a); err != nil {
		return nil, mongoNotFound(err, "airline %d", id)
	}
	return &a, nil
}

func (r *MongoAirlineRepository) List(ctx context.Context) ([]domain.Airline, error) {
	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{"airline_id", 1}}))
	if err != nil {
		return nil, err
	}
	return decodeAll[domain.Airline](ctx, cur)
}

type MongoAirportRepository struct {
	coll *mongo.Collection
}

func NewMongoAirportRepository(db *mongo.Database) AirportRepository {
	return &MongoAirportRepository{coll: db.Collection(collAirports)}
}

func (r *MongoAirportRepository) GetByCode(ctx context.Context, code string) (*domain.Airport, error) {
	var a domain.Airport
	if err := r.coll.FindOne(ctx, bson.D{{"airport_id", code}}).Decode(&a); err != nil {
		return nil, mongoNotFound(err, "airport %s", code)
	}
	return &a, nil
}

func (r *MongoAirportRepository) List(ctx context.Context) ([]domain.Airport, error) {
	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{"airport_id", 1}}))
	if err != nil {
		return nil, err
	}
	return decodeAll[domain.Airport](ctx, cur)
}

var (
	_ AirlineRepository = (*MongoAirlineRepository)(nil)
	_ AirportRepository = (*MongoAirportRepository)(nil)
)
