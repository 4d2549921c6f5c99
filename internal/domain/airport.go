package domain

// Airport is identified by its IATA code.
type Airport struct {
	Code      string   `json:"airport_id" bson:"airport_id"`
	City      string   `json:"city" bson:"city"`
	Country   string   `json:"country" bson:"country"`
	Keywords  []string `json:"keywords" bson:"keywords"`
	Latitude  float64  `json:"lat" bson:"lat"`
	Longitude float64  `json:"lon" bson:"lon"`
}
