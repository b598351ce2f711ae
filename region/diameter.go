package region

import (
	"sort"

	"github.com/fastreach/fastreach-go/geo"
	"github.com/paulmach/orb"
)

// Diameter returns the greatest geodesic distance between any two points on
// the convex hull of mp, in meters. The hull is computed once; the
// all-pairs scan over its (typically small) vertex set is O(n^2), which is
// simpler than rotating calipers and fast enough for the vertex counts a
// union of station caps produces.
func Diameter(mp orb.MultiPolygon) float64 {
	var points orb.MultiPoint
	for _, poly := range mp {
		for _, ring := range poly {
			points = append(points, ring...)
		}
	}
	if len(points) == 0 {
		return 0
	}

	hull := convexHull(points)
	var max float64
	for i := range hull {
		for j := i + 1; j < len(hull); j++ {
			if d := geo.Distance(hull[i], hull[j]); d > max {
				max = d
			}
		}
	}
	return max
}

// convexHull computes the convex hull of points using Andrew's monotone
// chain, the same construction as the source's geo::ConvexHull: sort by
// (x, y), then sweep lower and upper chains, popping any point that would
// make the chain turn clockwise.
func convexHull(points orb.MultiPoint) []orb.Point {
	pts := make([]orb.Point, len(points))
	copy(pts, points)
	sort.Slice(pts, func(i, j int) bool {
		if pts[i][0] != pts[j][0] {
			return pts[i][0] < pts[j][0]
		}
		return pts[i][1] < pts[j][1]
	})

	if len(pts) < 3 {
		return pts
	}

	cross := func(o, a, b orb.Point) float64 {
		return (a[0]-o[0])*(b[1]-o[1]) - (a[1]-o[1])*(b[0]-o[0])
	}

	lower := make([]orb.Point, 0, len(pts))
	for _, p := range pts {
		for len(lower) >= 2 && cross(lower[len(lower)-2], lower[len(lower)-1], p) <= 0 {
			lower = lower[:len(lower)-1]
		}
		lower = append(lower, p)
	}

	upper := make([]orb.Point, 0, len(pts))
	for i := len(pts) - 1; i >= 0; i-- {
		p := pts[i]
		for len(upper) >= 2 && cross(upper[len(upper)-2], upper[len(upper)-1], p) <= 0 {
			upper = upper[:len(upper)-1]
		}
		upper = append(upper, p)
	}

	lower = lower[:len(lower)-1]
	upper = upper[:len(upper)-1]
	return append(lower, upper...)
}
