package domain

type Airline struct {
	ID      int64  `json:"airline_id" bson:"airline_id"`
	Name    string `json:"name" bson:"name"`
	LogoURL string `json:"logo_url" bson:"logo_url"`
}
