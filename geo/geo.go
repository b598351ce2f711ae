// Package geo collects the small geodesic primitives the rest of the
// pipeline shares: distance, destination-point projection, spherical-cap
// sampling and polygon area. It is a thin, testable seam around
// github.com/paulmach/orb/geo so the rest of the module never imports orb's
// math helpers directly.
package geo

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

// MoveSpeedMetersPerMinute is the walking speed a remaining travel budget
// is converted to a radius with: 1000 meters in 12 minutes (5 km/h).
const MoveSpeedMetersPerMinute = 1000.0 / 12.0

// Distance returns the great-circle distance between two points, in meters.
func Distance(a, b orb.Point) float64 {
	return geo.Distance(a, b)
}

// Destination returns the point reached by travelling distanceMeters from
// origin along bearingDegrees (0 = north, clockwise).
func Destination(origin orb.Point, bearingDegrees, distanceMeters float64) orb.Point {
	return geo.PointAtBearingAndDistance(origin, bearingDegrees, distanceMeters)
}

// Circle samples an n-sided polygon approximating a geodesic disc of the
// given radius around center. The ring is closed (first point repeated
// last), matching orb.Ring's convention.
func Circle(center orb.Point, sides int, radiusMeters float64) orb.Ring {
	if sides < 3 {
		sides = 3
	}
	ring := make(orb.Ring, 0, sides+1)
	step := 360.0 / float64(sides)
	for k := 0; k < sides; k++ {
		bearing := step * float64(k)
		ring = append(ring, Destination(center, bearing, radiusMeters))
	}
	ring = append(ring, ring[0])
	return ring
}

// Area returns the geodesic area of a polygon in square meters. The sign
// follows the underlying library's winding convention; callers that care
// only about magnitude should take the absolute value.
func Area(p orb.Polygon) float64 {
	return geo.Area(p)
}
