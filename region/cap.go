package region

import (
	"time"

	"github.com/fastreach/fastreach-go/geo"
	"github.com/paulmach/orb"
)

// DefaultCapSides is the number of vertices used to approximate a
// station's reachable disc as a polygon.
const DefaultCapSides = 8

// SphericalCap approximates the disc a traveller at center could reach
// with remaining travel time left, as a closed sides-gon polygon.
func SphericalCap(center orb.Point, remaining time.Duration, sides int) orb.Polygon {
	radius := geo.MoveSpeedMetersPerMinute * remaining.Minutes()
	return orb.Polygon{geo.Circle(center, sides, radius)}
}
