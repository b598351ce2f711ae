package isochrone

import (
	"testing"
	"time"
)

func TestComputeIncludesSourceAndReportsNonNegativeMetrics(t *testing.T) {
	g := chainGraph(t)
	d := New(g)
	start := time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC)

	result, visited, removed, err := Compute(d, 0, start, 12*time.Minute)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if visited == 0 {
		t.Fatal("Compute reported zero stations visited before reduction")
	}
	if removed < 0 {
		t.Fatalf("Compute reported negative removed count: %d", removed)
	}
	if result.AreaKm2 < 0 {
		t.Fatalf("AreaKm2 = %v, want >= 0", result.AreaKm2)
	}
	if result.Diameter < 0 {
		t.Fatalf("Diameter = %v, want >= 0", result.Diameter)
	}

	foundSource := false
	for _, tn := range result.Stations {
		if tn.Index == 0 {
			foundSource = true
		}
	}
	if !foundSource {
		t.Fatal("Compute dropped the source station from its result")
	}
}

func TestComputeZeroBudgetReachesOnlySource(t *testing.T) {
	g := chainGraph(t)
	d := New(g)
	start := time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC)

	result, _, _, err := Compute(d, 0, start, 0)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if len(result.Stations) != 1 {
		t.Fatalf("len(result.Stations) = %d, want 1", len(result.Stations))
	}
	if result.AreaKm2 != 0 {
		t.Fatalf("AreaKm2 = %v, want 0 for a zero budget", result.AreaKm2)
	}
}
