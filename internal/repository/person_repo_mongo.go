package repository

import (
	"context"
	"fmt"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const personSequence = "person_id"

type MongoPersonRepository struct {
	coll     *mongo.Collection
	counters *mongo.Collection
}

func NewMongoPersonRepository(db *mongo.Database) PersonRepository {
	return &MongoPersonRepository{
		coll:     db.Collection(collPersons),
		counters: db.Collection(collCounters),
	}
}

// Create draws the next id from the counters collection before inserting.
func (r *MongoPersonRepository) Create(ctx context.Context, p *domain.Person) error {
	var counter struct {
		Seq int64 `bson:"seq"`
	}
	err := r.counters.FindOneAndUpdate(ctx,
		bson.D{{"_id", personSequence}},
		bson.D{{"$inc", bson.D{{"seq", 1}}}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&counter)
	if err != nil {
		return fmt.Errorf("next person id: %w", err)
	}

	p.ID = counter.Seq
	if _, err := r.coll.InsertOne(ctx, p); err != nil {
		return fmt.Errorf("insert person: %w", err)
	}
	return nil
}

func (r *MongoPersonRepository) GetByID(ctx context.Context, id int64) (*domain.Person, error) {
	var p domain.Person
	if err := r.coll.FindOne(ctx, bson.D{{"person_id", id}}).Decode(&p); err != nil {
		return nil, mongoNotFound(err, "person %d", id)
	}
	return &p, nil
}

var _ PersonRepository = (*MongoPersonRepository)(nil)
