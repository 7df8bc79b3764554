package utils

import (
	"math"
	"math/rand"
)

// EarthRadiusMiles is the mean Earth radius used for all great-circle math.
const EarthRadiusMiles = 3958.8

// Distance returns the haversine great-circle distance between two points in miles.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	dPhi := (lat2 - lat1) * math.Pi / 180
	dLambda := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusMiles * c
}

// WithinRadius reports whether two points are at most radiusMiles apart.
// The boundary is inclusive.
func WithinRadius(lat1, lon1, lat2, lon2, radiusMiles float64) bool {
	return Distance(lat1, lon1, lat2, lon2) <= radiusMiles
}

// RandomPointInAnnulus picks a point at a uniformly random bearing from the
// center, at a distance sampled uniformly in [minMiles, maxMiles], projected by
// the inverse haversine formula.
func RandomPointInAnnulus(rng *rand.Rand, centerLat, centerLon, minMiles, maxMiles float64) (float64, float64) {
	bearing := rng.Float64() * 2 * math.Pi
	distance := minMiles + rng.Float64()*(maxMiles-minMiles)
	delta := distance / EarthRadiusMiles

	phi1 := centerLat * math.Pi / 180
	lambda1 := centerLon * math.Pi / 180

	phi2 := math.Asin(math.Sin(phi1)*math.Cos(delta) +
		math.Cos(phi1)*math.Sin(delta)*math.Cos(bearing))
	lambda2 := lambda1 + math.Atan2(
		math.Sin(bearing)*math.Sin(delta)*math.Cos(phi1),
		math.Cos(delta)-math.Sin(phi1)*math.Sin(phi2),
	)

	lat := phi2 * 180 / math.Pi
	lon := lambda2 * 180 / math.Pi

	// Normalize longitude to [-180, 180]
	for lon > 180 {
		lon -= 360
	}
	for lon < -180 {
		lon += 360
	}

	return lat, lon
}

// ValidCoordinates reports whether lat/lon are finite and within range.
func ValidCoordinates(lat, lon float64) bool {
	if math.IsNaN(lat) || math.IsInf(lat, 0) || math.IsNaN(lon) || math.IsInf(lon, 0) {
		return false
	}
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// RoundMiles rounds a distance to two decimals for display in match results.
func RoundMiles(d float64) float64 {
	return math.Round(d*100) / 100
}
