package model

// FlightOffer is the normalized view of one upstream flight offer.  Only the
// first itinerary and its first segment are represented.
type FlightOffer struct {
	Airline       string  `json:"airline"`
	FlightNumber  string  `json:"flightNumber"`
	Origin        string  `json:"origin"`
	Destination   string  `json:"destination"`
	DepartureTime string  `json:"departureTime"`
	ArrivalTime   string  `json:"arrivalTime"`
	Duration      string  `json:"duration"`
	Price         float64 `json:"price"`
	Currency      string  `json:"currency"`
	NumberOfStops int     `json:"numberOfStops"`
	Aircraft      string  `json:"aircraft"`
	Cabin         string  `json:"cabin"`
	Baggage       Baggage `json:"baggage"`
}

// Baggage carries the upstream allowance objects verbatim; both are empty
// objects when the offer does not state them.
type Baggage struct {
	Checked map[string]any `json:"checked"`
	Cabin   map[string]any `json:"cabin"`
}
