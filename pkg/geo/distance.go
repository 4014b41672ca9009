package geo

import "math"

// Boulder, Colorado. Every catalog distance is measured from here.
const (
	BoulderLat = 40.014984
	BoulderLon = -105.270546
)

const (
	earthRadiusKm = 6371
	milesPerKm    = 0.621371
)

// DistanceMiles returns the haversine great-circle distance in miles, rounded
// to one decimal place (half away from zero). NaN inputs yield NaN.
func DistanceMiles(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return RoundTenth(earthRadiusKm * c * milesPerKm)
}

// FromBoulder is DistanceMiles measured from the Boulder reference point.
func FromBoulder(lat, lon float64) float64 {
	return DistanceMiles(BoulderLat, BoulderLon, lat, lon)
}

// RoundTenth rounds to one decimal place, half away from zero.
func RoundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
