package utils

import (
	"math"
	"testing"
)

func TestCalculateHaversineDistance(t *testing.T) {
	cases := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		want                   float64 // meters
		tolerance              float64
	}{
		{"same point", 12.9716, 77.5946, 12.9716, 77.5946, 0, 0.001},
		{"~222m along equator", 0, 0, 0, 0.002, 222.6, 1},
		{"~55m along equator", 0, 0, 0, 0.0005, 55.6, 1},
		{"Bangalore to Chennai", 12.9716, 77.5946, 13.0827, 80.2707, 290000, 5000},
	}
	for _, c := range cases {
		got := CalculateHaversineDistance(c.lat1, c.lon1, c.lat2, c.lon2)
		if math.Abs(got-c.want) > c.tolerance {
			t.Errorf("%s: distance = %f, want %f ± %f", c.name, got, c.want, c.tolerance)
		}
	}
}
