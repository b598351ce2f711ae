package isochrone

import (
	"math"
	"sort"

	"github.com/fastreach/fastreach-go/geo"
	"github.com/fastreach/fastreach-go/internal/rtree"
	"github.com/paulmach/orb"
)

// coordKey groups stations by the exact bit pattern of their stored
// float32 coordinates, not by geographic proximity. Two stations whose
// coordinates differ in the last bit of either float are treated as
// distinct groups. This mirrors the source format's own deduplication
// step rather than a "cleaner" rounding scheme, since a rounding scheme
// would change which station in a cluster survives.
type coordKey struct {
	lat, lon uint32
}

func keyOf(n TimedNode) coordKey {
	return coordKey{lat: math.Float32bits(n.Node.Lat()), lon: math.Float32bits(n.Node.Lon())}
}

// DedupByCoords keeps, for every exact (lat, lon) bit pattern among nodes,
// only the entry with the most remaining budget (equivalently, the smallest
// elapsed travel time). It is idempotent: running it again on its own
// output changes nothing, since every surviving group already has exactly
// one member.
func DedupByCoords(nodes []TimedNode) []TimedNode {
	best := make(map[coordKey]TimedNode, len(nodes))
	for _, n := range nodes {
		k := keyOf(n)
		if cur, ok := best[k]; !ok || n.Remaining > cur.Remaining {
			best[k] = n
		}
	}
	out := make([]TimedNode, 0, len(best))
	for _, n := range best {
		out = append(out, n)
	}
	return out
}

// stationItem adapts a TimedNode to the rtree.Item interface using a
// degenerate (point) bounding envelope.
type stationItem struct {
	tn TimedNode
}

func (s stationItem) Bound() orb.Bound {
	p := point(s.tn.Node)
	return orb.Bound{Min: p, Max: p}
}

func capRadius(remaining interface{ Minutes() float64 }) float64 {
	return geo.MoveSpeedMetersPerMinute * remaining.Minutes()
}

// DedupByCoverage removes any station whose entire reachable disc lies
// within a neighbor's larger disc: if d(u, v) + radius(v) < radius(u), v
// adds nothing a traveller couldn't already reach from u, so v is dropped.
// Stations are processed from the largest remaining budget down, using an
// R-tree over the current candidate set so each station only checks nearby
// candidates rather than the whole set.
func DedupByCoverage(nodes []TimedNode) []TimedNode {
	sorted := append([]TimedNode(nil), nodes...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Remaining > sorted[j].Remaining })

	items := make([]rtree.Item, len(sorted))
	for i, n := range sorted {
		items[i] = stationItem{tn: n}
	}
	tree := rtree.BulkLoad(items)

	for _, n := range sorted {
		center := point(n.Node)
		radius := capRadius(n.Remaining)
		upper := geo.Destination(center, 45, radius)
		lower := geo.Destination(center, 225, radius)
		bound := orb.MultiPoint{upper, lower}.Bound()

		candidates := tree.SearchIntersect(bound)
		var removals []rtree.Item
		for _, c := range candidates {
			cand := c.(stationItem)
			if cand.tn.Index == n.Index {
				continue
			}
			dist := geo.Distance(center, point(cand.tn.Node))
			if dist+capRadius(cand.tn.Remaining) < radius {
				removals = append(removals, c)
			}
		}
		for _, r := range removals {
			tree.Remove(r)
		}
	}

	remaining := tree.Items()
	out := make([]TimedNode, 0, len(remaining))
	for _, it := range remaining {
		out = append(out, it.(stationItem).tn)
	}
	return out
}
