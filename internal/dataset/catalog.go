package dataset

import "github.com/Domenick1991/flightbooking/internal/domain"

type AirlineSpec struct {
	Airline       domain.Airline
	PriceModifier float64
}

type AirportSpec struct {
	Airport       domain.Airport
	PriceModifier float64
	// Airlines lists airline names operating at the airport.
	Airlines []string
}

type AircraftSpec struct {
	Model string
	Rows  int
	Cols  int
}

type Catalog struct {
	Airlines []AirlineSpec
	Airports []AirportSpec
	Aircraft []AircraftSpec
}

func (c Catalog) airline(name string) (AirlineSpec, bool) {
	for _, a := range c.Airlines {
		if a.Airline.Name == name {
			return a, true
		}
	}
	return AirlineSpec{}, false
}

func DefaultCatalog() Catalog {
	return Catalog{
		Airlines: []AirlineSpec{
			{Airline: domain.Airline{ID: 0, Name: "Swiss", LogoURL: "https://seeklogo.net/wp-content/uploads/2017/02/swiss-international-air-lines-logo.png"}, PriceModifier: 1.09},
			{Airline: domain.Airline{ID: 1, Name: "KLM", LogoURL: "https://upload.wikimedia.org/wikipedia/commons/thumb/c/c7/KLM_logo.svg/500px-KLM_logo.svg.png"}, PriceModifier: 0.89},
			{Airline: domain.Airline{ID: 2, Name: "Austrian", LogoURL: "https://upload.wikimedia.org/wikipedia/commons/thumb/c/c2/Austrian_Airlines%27_logo_%282018%29.png/800px-Austrian_Airlines%27_logo_%282018%29.png"}, PriceModifier: 1.01},
			{Airline: domain.Airline{ID: 3, Name: "Delta", LogoURL: "https://1000logos.net/wp-content/uploads/2017/09/Delta-Air-Lines-Logo.png"}, PriceModifier: 0.95},
		},
		Airports: []AirportSpec{
			{Airport: domain.Airport{Code: "ZRH", City: "Zurich", Country: "Switzerland", Keywords: []string{}, Latitude: 47.4647, Longitude: 8.5492}, PriceModifier: 1.5, Airlines: []string{"Swiss", "Austrian", "Delta"}},
			{Airport: domain.Airport{Code: "VIE", City: "Vienna", Country: "Austria", Keywords: []string{}, Latitude: 48.1103, Longitude: 16.5697}, PriceModifier: 1.1, Airlines: []string{"Austrian", "KLM"}},
			{Airport: domain.Airport{Code: "SYD", City: "Sydney", Country: "Australia", Keywords: []string{}, Latitude: -33.9399, Longitude: 151.1753}, PriceModifier: 1.3, Airlines: []string{"Swiss", "Delta"}},
			{Airport: domain.Airport{Code: "LHR", City: "London", Country: "England", Keywords: []string{}, Latitude: 51.4700, Longitude: -0.4543}, PriceModifier: 1.2, Airlines: []string{"Austrian", "Swiss", "KLM"}},
			{Airport: domain.Airport{Code: "OTP", City: "Bucharest", Country: "Romania", Keywords: []string{}, Latitude: 44.5711, Longitude: 26.0850}, PriceModifier: 0.8, Airlines: []string{"Swiss"}},
			{Airport: domain.Airport{Code: "JFK", City: "New York City", Country: "United States of America", Keywords: []string{}, Latitude: 40.6413, Longitude: -73.7781}, PriceModifier: 1.4, Airlines: []string{"Swiss", "KLM", "Delta"}},
		},
		Aircraft: []AircraftSpec{
			{Model: "Airbus A220", Rows: 36, Cols: 6},
			{Model: "Boeing 777", Rows: 39, Cols: 8},
		},
	}
}
