package domain

import "time"

type Person struct {
	ID          int64       `json:"person_id" bson:"person_id"`
	Name        string      `json:"name" bson:"name"`
	Birthdate   time.Time   `json:"birthdate" bson:"birthdate"`
	Passport    string      `json:"passport" bson:"passport"`
	TravelClass TravelClass `json:"travel_class" bson:"travel_class"`
}
