package region

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Feature wraps mp as a GeoJSON Feature, ready to embed directly in a reply
// payload.
func Feature(mp orb.MultiPolygon) *geojson.Feature {
	return geojson.NewFeature(mp)
}
