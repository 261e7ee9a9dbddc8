package model

// Airport is one entry of the in-memory airport directory, keyed by its
// three-letter IATA code.
type Airport struct {
	IATA      string  `json:"iata" yaml:"iata"`
	Name      string  `json:"name" yaml:"name"`
	City      string  `json:"city" yaml:"city"`
	State     string  `json:"state" yaml:"state"`
	Country   string  `json:"country" yaml:"country"`
	Latitude  float64 `json:"latitude" yaml:"lat"`
	Longitude float64 `json:"longitude" yaml:"lon"`
}

// Coordinates is the body returned by an exact airport lookup.
type Coordinates struct {
	IATA string  `json:"iata"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}
