package region

import (
	"testing"
	"time"

	"github.com/paulmach/orb"
)

func TestUnionOfDisjointCapsConcatenates(t *testing.T) {
	a := SphericalCap(orb.Point{11.0, 50.9}, 2*time.Minute, DefaultCapSides)
	b := SphericalCap(orb.Point{30.0, 10.0}, 2*time.Minute, DefaultCapSides)

	merged := Union([]orb.Polygon{a, b})
	if len(merged) != 2 {
		t.Fatalf("Union(disjoint) has %d components, want 2", len(merged))
	}
}

func TestUnionOfOverlappingCapsMerges(t *testing.T) {
	center := orb.Point{11.0, 50.9}
	a := SphericalCap(center, 10*time.Minute, DefaultCapSides)
	nudged := orb.Point{center[0] + 0.0005, center[1]}
	b := SphericalCap(nudged, 10*time.Minute, DefaultCapSides)

	merged := Union([]orb.Polygon{a, b})
	if len(merged) != 1 {
		t.Fatalf("Union(overlapping) has %d components, want 1", len(merged))
	}
}

func TestUnionOfSingleCapReturnsItUnchanged(t *testing.T) {
	a := SphericalCap(orb.Point{11.0, 50.9}, 5*time.Minute, DefaultCapSides)
	merged := Union([]orb.Polygon{a})
	if len(merged) != 1 {
		t.Fatalf("Union(single) has %d components, want 1", len(merged))
	}
}

func TestUnionOfNoCapsIsEmpty(t *testing.T) {
	merged := Union(nil)
	if len(merged) != 0 {
		t.Fatalf("Union(nil) has %d components, want 0", len(merged))
	}
}
