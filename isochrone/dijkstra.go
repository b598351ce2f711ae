// Package isochrone expands a time-dependent shortest-path search from a
// single station outward until a travel budget is exhausted, then reduces
// the result to a small set of stations whose reachable caps are not
// already covered by a neighbor's larger cap.
package isochrone

import (
	"container/heap"
	"fmt"
	"time"

	"github.com/fastreach/fastreach-go/geo"
	"github.com/fastreach/fastreach-go/graph"
	"github.com/paulmach/orb"
)

// Dijkstra runs the time-dependent expansion over a single, shared Graph.
// It holds no per-request state; NodesWithin is safe to call concurrently
// from many goroutines against the same Dijkstra.
type Dijkstra struct {
	graph *graph.Graph
}

// New wraps g for isochrone queries.
func New(g *graph.Graph) *Dijkstra {
	return &Dijkstra{graph: g}
}

// frontierItem is one entry in the expansion heap: a station and the
// elapsed travel time at which it was reached by the edge that pushed it.
// Entries are never updated in place; a station can appear more than once
// if a shorter path to it is found later, and stale entries are simply
// discarded when popped (lazy decrease-key).
type frontierItem struct {
	index   uint32
	elapsed time.Duration
}

type frontierHeap []frontierItem

func (h frontierHeap) Len() int            { return len(h) }
func (h frontierHeap) Less(i, j int) bool  { return h[i].elapsed < h[j].elapsed }
func (h frontierHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *frontierHeap) Push(x interface{}) { *h = append(*h, x.(frontierItem)) }
func (h *frontierHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// NodesWithin expands outward from source starting at wall-clock time
// start, for up to budget of elapsed travel time, and returns one TimedNode
// per station retained by the coverage guard (always including the source
// itself).
//
// There is deliberately no closed/visited set: because edge costs depend on
// the traveller's current wall-clock time, a station reached later via a
// different path can sometimes be reached with less *remaining* budget even
// though the arrivals map already holds an earlier, better arrival for it —
// the arrivals map is the sole authority on whether a new arrival is an
// improvement, and every relaxation must be allowed to run regardless of
// whether the station was already popped off the heap once.
func (d *Dijkstra) NodesWithin(sourceIndex uint32, start time.Time, budget time.Duration) ([]TimedNode, error) {
	if sourceIndex >= uint32(d.graph.Len()) {
		return nil, fmt.Errorf("%w: source index %d out of range", ErrInvalidInput, sourceIndex)
	}
	if budget < 0 {
		return nil, fmt.Errorf("%w: negative travel budget", ErrInvalidInput)
	}

	arrivals := map[uint32]time.Time{sourceIndex: start}
	result := map[uint32]TimedNode{
		sourceIndex: {Index: sourceIndex, Node: d.graph.NodeByIndex(sourceIndex), Remaining: budget},
	}

	h := &frontierHeap{{index: sourceIndex, elapsed: 0}}
	heap.Init(h)
	maxArrival := start.Add(budget)

	for h.Len() > 0 {
		cur := heap.Pop(h).(frontierItem)
		if cur.elapsed > budget {
			continue
		}
		if arrival, ok := arrivals[cur.index]; ok && start.Add(cur.elapsed).After(arrival) {
			continue // a better arrival for this station was already found
		}
		now := start.Add(cur.elapsed)
		node := d.graph.NodeByIndex(cur.index)

		for _, e := range node.Outgoing() {
			step, ok, err := bestStep(e, now)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
			newElapsed := cur.elapsed + step
			arrival := start.Add(newElapsed)
			if arrival.After(maxArrival) {
				continue
			}
			v := e.DestinationIndex()
			if prev, ok := arrivals[v]; ok && !arrival.Before(prev) {
				continue
			}
			arrivals[v] = arrival
			heap.Push(h, frontierItem{index: v, elapsed: newElapsed})

			remaining := budget - newElapsed
			if shouldRetain(d.graph, cur.index, budget-cur.elapsed, v, remaining) {
				result[v] = TimedNode{Index: v, Node: d.graph.NodeByIndex(v), Remaining: remaining}
			}
		}
	}

	out := make([]TimedNode, 0, len(result))
	for _, tn := range result {
		out = append(out, tn)
	}
	return out, nil
}

// bestStep returns the fastest way to traverse e starting at now: a fixed
// walk, the next qualifying scheduled journey, or whichever of the two is
// shorter when both are available.
func bestStep(e graph.Edge, now time.Time) (time.Duration, bool, error) {
	walkSeconds, hasWalk := e.WalkSeconds()
	journey, hasJourney, err := nextJourney(e, now)
	if err != nil {
		return 0, false, err
	}

	switch {
	case !hasWalk && !hasJourney:
		return 0, false, nil
	case hasWalk && !hasJourney:
		return time.Duration(walkSeconds) * time.Second, true, nil
	case !hasWalk && hasJourney:
		return rideDuration(now, journey.ArrivalMinute()), true, nil
	default:
		walk := time.Duration(walkSeconds) * time.Second
		ride := rideDuration(now, journey.ArrivalMinute())
		if walk < ride {
			return walk, true, nil
		}
		return ride, true, nil
	}
}

// shouldRetain is the coverage guard: station v, just reached with
// remaining budget vRemaining from predecessor u (which had uRemaining
// left over when it was expanded), is only worth keeping in the result set if its
// reachable disc is not already entirely covered by u's larger disc. This
// is a cheap, local approximation that trims dominated stations during the
// expansion itself; it never affects which stations are *reachable*, only
// which ones are reported.
func shouldRetain(g *graph.Graph, uIndex uint32, uRemaining time.Duration, vIndex uint32, vRemaining time.Duration) bool {
	if vRemaining <= 0 {
		return false
	}
	u := g.NodeByIndex(uIndex)
	v := g.NodeByIndex(vIndex)
	dist := geo.Distance(point(u), point(v))
	rU := geo.MoveSpeedMetersPerMinute * uRemaining.Minutes()
	rV := geo.MoveSpeedMetersPerMinute * vRemaining.Minutes()
	return dist+rV > rU
}

// point converts a graph node's coordinates into an orb.Point, which is
// ordered (lon, lat) to match the rest of the geo/region pipeline.
func point(n *graph.Node) orb.Point {
	return orb.Point{float64(n.Lon()), float64(n.Lat())}
}
