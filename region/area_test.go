package region

import (
	"testing"
	"time"

	"github.com/paulmach/orb"
)

func TestAreaOfSingleCapIsPositiveAndRoughlyCircular(t *testing.T) {
	cap := SphericalCap(orb.Point{11.0, 50.9}, 12*time.Minute, DefaultCapSides) // radius = 1000m
	area := Area(orb.MultiPolygon{cap})
	// pi*r^2 for r=1000m is ~3.14M sqm; an inscribed octagon is a bit less.
	if area < 2_500_000 || area > 3_200_000 {
		t.Fatalf("Area = %.0f sqm, want roughly 2.5M-3.2M sqm", area)
	}
}

func TestAreaOfEmptyIsZero(t *testing.T) {
	if a := Area(orb.MultiPolygon{}); a != 0 {
		t.Fatalf("Area(empty) = %v, want 0", a)
	}
}
