package isochrone

import (
	"time"

	"github.com/fastreach/fastreach-go/region"
	"github.com/paulmach/orb"
)

// Result is the full pipeline output for one isochrone request: the
// stations retained after coverage reduction, plus the derived region
// metrics a reply reports.
type Result struct {
	Stations []TimedNode
	AreaKm2  float64
	Diameter float64
	Region   orb.MultiPolygon
}

// Compute runs the whole pipeline for one request: expansion, both stages
// of coverage reduction, per-station cap approximation, polygon union, and
// the derived area/diameter. Visited and Removed report how many stations
// the expansion reached before reduction and how many reduction then
// dropped, for callers that want to record those as metrics.
func Compute(d *Dijkstra, sourceIndex uint32, start time.Time, budget time.Duration) (Result, int, int, error) {
	expanded, err := d.NodesWithin(sourceIndex, start, budget)
	if err != nil {
		return Result{}, 0, 0, err
	}
	visited := len(expanded)

	reduced := DedupByCoverage(DedupByCoords(expanded))
	removed := visited - len(reduced)

	caps := make([]orb.Polygon, 0, len(reduced))
	for _, tn := range reduced {
		center := orb.Point{float64(tn.Node.Lon()), float64(tn.Node.Lat())}
		caps = append(caps, region.SphericalCap(center, tn.Remaining, region.DefaultCapSides))
	}

	merged := region.Union(caps)
	return Result{
		Stations: reduced,
		AreaKm2:  region.Area(merged) / 1_000_000,
		Diameter: region.Diameter(merged) / 1000,
		Region:   merged,
	}, visited, removed, nil
}
