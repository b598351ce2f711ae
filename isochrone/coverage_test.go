package isochrone

import (
	"testing"
	"time"

	"github.com/fastreach/fastreach-go/graph"
)

func nodeAt(t *testing.T, g *graph.Graph, idx uint32) *graph.Node {
	t.Helper()
	return g.NodeByIndex(idx)
}

func threeStationGraph(t *testing.T) *graph.Graph {
	t.Helper()
	var b fixtureBuilder
	b.u32(3)
	b.node(1, 50.900000, 11.000000, "A")
	b.node(2, 50.900000, 11.000000, "A-duplicate-coords") // same float32 bits as A
	b.node(3, 51.500000, 12.000000, "Far")
	b.u32(0)
	g, err := graph.New(b.buf.Bytes())
	if err != nil {
		t.Fatalf("graph.New: %v", err)
	}
	return g
}

func TestDedupByCoordsKeepsLargestRemainingPerGroup(t *testing.T) {
	g := threeStationGraph(t)
	nodes := []TimedNode{
		{Index: 0, Node: nodeAt(t, g, 0), Remaining: 5 * time.Minute},
		{Index: 1, Node: nodeAt(t, g, 1), Remaining: 9 * time.Minute}, // identical coords, more budget left
		{Index: 2, Node: nodeAt(t, g, 2), Remaining: 1 * time.Minute},
	}

	got := DedupByCoords(nodes)
	if len(got) != 2 {
		t.Fatalf("DedupByCoords returned %d nodes, want 2", len(got))
	}
	for _, n := range got {
		if n.Node.Lat() == nodeAt(t, g, 0).Lat() && n.Node.Lon() == nodeAt(t, g, 0).Lon() {
			if n.Index != 1 {
				t.Fatalf("DedupByCoords kept index %d for the duplicate-coordinate group, want 1 (larger remaining budget)", n.Index)
			}
		}
	}
}

func TestDedupByCoordsIsIdempotent(t *testing.T) {
	g := threeStationGraph(t)
	nodes := []TimedNode{
		{Index: 0, Node: nodeAt(t, g, 0), Remaining: 5 * time.Minute},
		{Index: 1, Node: nodeAt(t, g, 1), Remaining: 9 * time.Minute},
		{Index: 2, Node: nodeAt(t, g, 2), Remaining: 1 * time.Minute},
	}
	once := DedupByCoords(nodes)
	twice := DedupByCoords(once)
	if len(once) != len(twice) {
		t.Fatalf("DedupByCoords is not idempotent: %d then %d", len(once), len(twice))
	}
}

func TestDedupByCoverageRemovesDominatedStation(t *testing.T) {
	var b fixtureBuilder
	b.u32(2)
	b.node(1, 50.90000, 11.00000, "hub")
	b.node(2, 50.90010, 11.00010, "dominated") // ~13m away
	b.u32(0)
	g, err := graph.New(b.buf.Bytes())
	if err != nil {
		t.Fatalf("graph.New: %v", err)
	}

	nodes := []TimedNode{
		{Index: 0, Node: g.NodeByIndex(0), Remaining: 30 * time.Minute}, // huge disc
		{Index: 1, Node: g.NodeByIndex(1), Remaining: 1 * time.Minute},  // tiny disc, fully inside the hub's
	}
	got := DedupByCoverage(nodes)
	if len(got) != 1 || got[0].Index != 0 {
		t.Fatalf("DedupByCoverage = %+v, want only the hub station", got)
	}
}

func TestDedupByCoverageKeepsDisjointDiscs(t *testing.T) {
	var b fixtureBuilder
	b.u32(2)
	b.node(1, 50.0, 11.0, "a")
	b.node(2, 55.0, 16.0, "b") // far enough apart that neither covers the other
	b.u32(0)
	g, err := graph.New(b.buf.Bytes())
	if err != nil {
		t.Fatalf("graph.New: %v", err)
	}

	nodes := []TimedNode{
		{Index: 0, Node: g.NodeByIndex(0), Remaining: 5 * time.Minute},
		{Index: 1, Node: g.NodeByIndex(1), Remaining: 5 * time.Minute},
	}
	got := DedupByCoverage(nodes)
	if len(got) != 2 {
		t.Fatalf("DedupByCoverage = %+v, want both stations kept", got)
	}
}
