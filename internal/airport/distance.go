package airport

import "math"

const earthRadiusKm = 6371.0

// DistanceKm is the great-circle distance between two airports, rounded to
// one decimal.  ok is false when either code is unknown.
func (d *Directory) DistanceKm(from, to string) (km float64, ok bool) {
	a, okA := d.Get(from)
	b, okB := d.Get(to)
	if !okA || !okB {
		return 0, false
	}
	return math.Round(haversine(a.Latitude, a.Longitude, b.Latitude, b.Longitude)*10) / 10, true
}

func haversine(lat1, lon1, lat2, lon2 float64) float64 {
	rad := math.Pi / 180
	dLat := (lat2 - lat1) * rad
	dLon := (lon2 - lon1) * rad
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*rad)*math.Cos(lat2*rad)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKm * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}
