package region

import (
	"math"

	"github.com/fastreach/fastreach-go/geo"
	"github.com/paulmach/orb"
)

// Area returns the total geodesic area covered by mp, in square meters.
// Sign follows the underlying geodesic library's winding convention;
// callers only care about magnitude, so this takes the absolute value of
// each component polygon before summing.
func Area(mp orb.MultiPolygon) float64 {
	var total float64
	for _, p := range mp {
		total += math.Abs(geo.Area(p))
	}
	return total
}
