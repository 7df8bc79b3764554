package utils

import (
	"math"
	"math/rand"
	"testing"
)

var geoPoints = []struct {
	name     string
	lat, lon float64
}{
	{"nyc", 40.7128, -74.0060},
	{"la", 34.0522, -118.2437},
	{"london", 51.5074, -0.1278},
	{"sydney", -33.8688, 151.2093},
	{"equator", 0, 0},
	{"northPole", 90, 0},
}

func TestDistanceSymmetryAndIdentity(t *testing.T) {
	for _, a := range geoPoints {
		for _, b := range geoPoints {
			ab := Distance(a.lat, a.lon, b.lat, b.lon)
			ba := Distance(b.lat, b.lon, a.lat, a.lon)

			if math.Abs(ab-ba) > 1e-9 {
				t.Errorf("Distance(%s, %s) = %f but reversed = %f", a.name, b.name, ab, ba)
			}
			if ab < 0 {
				t.Errorf("Distance(%s, %s) = %f, want non-negative", a.name, b.name, ab)
			}
			if a.name == b.name && ab != 0 {
				t.Errorf("Distance(%s, %s) = %f, want 0", a.name, b.name, ab)
			}
		}
	}
}

func TestDistanceKnownValues(t *testing.T) {
	// Midtown to downtown Manhattan, roughly 3.3 miles
	d := Distance(40.7128, -74.0060, 40.7580, -73.9855)
	if d < 3.0 || d > 4.0 {
		t.Errorf("Manhattan distance = %f, want ~3.3 miles", d)
	}

	// Two blocks apart
	d = Distance(40.7128, -74.0060, 40.7140, -74.0070)
	if d > 0.2 {
		t.Errorf("two-block distance = %f, want < 0.2 miles", d)
	}

	// Antipodal points stay under the ~12,500 mile bound
	d = Distance(0, 0, 0, 180)
	if d < 12000 || d > 12500 {
		t.Errorf("antipodal distance = %f, want ~12437 miles", d)
	}
}

func TestWithinRadius(t *testing.T) {
	d := Distance(40.7128, -74.0060, 40.7580, -73.9855)

	if !WithinRadius(40.7128, -74.0060, 40.7580, -73.9855, d) {
		t.Error("boundary should be inclusive")
	}
	if !WithinRadius(40.7128, -74.0060, 40.7580, -73.9855, d+0.1) {
		t.Error("point inside radius reported outside")
	}
	if WithinRadius(40.7128, -74.0060, 40.7580, -73.9855, d-0.1) {
		t.Error("point outside radius reported inside")
	}
}

func TestRandomPointInAnnulusContainment(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	cases := []struct {
		centerLat, centerLon float64
		min, max             float64
	}{
		{40.7128, -74.0060, 1, 15},
		{51.5074, -0.1278, 0.5, 5},
		{-33.8688, 151.2093, 10, 50},
		{0, 179.9, 1, 25}, // near the antimeridian
	}

	const tolerance = 0.01

	for _, tc := range cases {
		for i := 0; i < 100; i++ {
			lat, lon := RandomPointInAnnulus(rng, tc.centerLat, tc.centerLon, tc.min, tc.max)

			if !ValidCoordinates(lat, lon) {
				t.Fatalf("annulus point (%f, %f) has invalid coordinates", lat, lon)
			}

			d := Distance(tc.centerLat, tc.centerLon, lat, lon)
			if d < tc.min-tolerance || d > tc.max+tolerance {
				t.Fatalf("annulus point at %f miles, want within [%f, %f]", d, tc.min, tc.max)
			}
		}
	}
}

func TestValidCoordinates(t *testing.T) {
	cases := []struct {
		lat, lon float64
		want     bool
	}{
		{40.7128, -74.0060, true},
		{90, 180, true},
		{-90, -180, true},
		{0, 0, true},
		{90.1, 0, false},
		{-90.1, 0, false},
		{0, 180.1, false},
		{0, -180.1, false},
		{math.NaN(), 0, false},
		{0, math.NaN(), false},
		{math.Inf(1), 0, false},
		{0, math.Inf(-1), false},
	}

	for _, tc := range cases {
		if got := ValidCoordinates(tc.lat, tc.lon); got != tc.want {
			t.Errorf("ValidCoordinates(%f, %f) = %v, want %v", tc.lat, tc.lon, got, tc.want)
		}
	}
}

func TestRoundMiles(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{3.456789, 3.46},
		{0.004, 0.0},
		{5.678, 5.68},
		{100, 100},
	}

	for _, tc := range cases {
		if got := RoundMiles(tc.in); math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("RoundMiles(%f) = %f, want %f", tc.in, got, tc.want)
		}
	}
}
