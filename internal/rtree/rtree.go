// Package rtree is a small bulk-loaded R-tree used for two things the
// coverage-reduction and region packages both need: fast envelope queries
// over station caps, and a bottom-up fold over the tree's own parent/leaf
// structure for polygon union. Neither capability is exposed by the
// R-tree packages available in the wider ecosystem (they hide their
// internal node shape), so this one is hand-rolled: sort-tile-recursive
// bulk loading, a handful of leaf entries per node, no rebalancing on
// removal since every tree here is built fresh per request and thrown away.
package rtree

import (
	"sort"

	"github.com/paulmach/orb"
)

// Item is anything the tree can index: it only needs to know its own
// bounding envelope.
type Item interface {
	Bound() orb.Bound
}

// defaultMaxEntries bounds how many entries a single node holds. Small
// values favor query precision at bulk-load time over tree depth, which
// matters more here than raw scale: these trees hold at most a few
// thousand items per request.
const defaultMaxEntries = 8

type entry struct {
	bound orb.Bound
	item  Item
	child *node
}

type node struct {
	bound   orb.Bound
	entries []entry
	leaf    bool
}

// Tree is an immutable-shape, bulk-loaded R-tree. Removal leaves the tree's
// internal bounds stale (entries are deleted but parent bounds are not
// shrunk); that only costs a little wasted descent on later queries, since
// every leaf entry's own bound is still checked exactly.
type Tree struct {
	root       *node
	maxEntries int
}

// BulkLoad builds a tree over items using the sort-tile-recursive
// algorithm: items are sorted and sliced into roughly-square tiles
// bottom-up until a single root remains.
func BulkLoad(items []Item) *Tree {
	return BulkLoadN(items, defaultMaxEntries)
}

// BulkLoadN is BulkLoad with an explicit max node fanout, mainly useful in
// tests that want to force multiple tree levels over a small item count.
func BulkLoadN(items []Item, maxEntries int) *Tree {
	if maxEntries < 2 {
		maxEntries = 2
	}
	if len(items) == 0 {
		return &Tree{root: &node{leaf: true}, maxEntries: maxEntries}
	}

	leaves := makeLeaves(items, maxEntries)
	level := leaves
	for len(level) > 1 {
		level = makeParents(level, maxEntries)
	}
	return &Tree{root: level[0], maxEntries: maxEntries}
}

func boundOf(entries []entry) orb.Bound {
	b := entries[0].bound
	for _, e := range entries[1:] {
		b = b.Union(e.bound)
	}
	return b
}

func makeLeaves(items []Item, maxEntries int) []*node {
	entries := make([]entry, len(items))
	for i, it := range items {
		entries[i] = entry{bound: it.Bound(), item: it}
	}
	return tileEntries(entries, maxEntries, true)
}

func makeParents(children []*node, maxEntries int) []*node {
	entries := make([]entry, len(children))
	for i, c := range children {
		entries[i] = entry{bound: c.bound, child: c}
	}
	return tileEntries(entries, maxEntries, false)
}

// tileEntries implements the STR tiling step shared by leaf and parent
// construction: sort by the X-center into vertical slices, sort each slice
// by the Y-center, then chunk into nodes of at most maxEntries entries.
func tileEntries(entries []entry, maxEntries int, leaf bool) []*node {
	n := len(entries)
	numNodes := (n + maxEntries - 1) / maxEntries
	if numNodes < 1 {
		numNodes = 1
	}
	numSlices := int(isqrt(numNodes))
	if numSlices < 1 {
		numSlices = 1
	}
	sliceCap := (n + numSlices - 1) / numSlices

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].bound.Center()[0] < entries[j].bound.Center()[0]
	})

	var nodes []*node
	for start := 0; start < n; start += sliceCap {
		end := start + sliceCap
		if end > n {
			end = n
		}
		slice := entries[start:end]
		sort.Slice(slice, func(i, j int) bool {
			return slice[i].bound.Center()[1] < slice[j].bound.Center()[1]
		})
		for s := 0; s < len(slice); s += maxEntries {
			e := s + maxEntries
			if e > len(slice) {
				e = len(slice)
			}
			chunk := append([]entry(nil), slice[s:e]...)
			nodes = append(nodes, &node{bound: boundOf(chunk), entries: chunk, leaf: leaf})
		}
	}
	return nodes
}

func isqrt(n int) int {
	if n <= 1 {
		return n
	}
	r := 1
	for r*r < n {
		r++
	}
	return r
}

// SearchIntersect returns every item whose envelope intersects query.
func (t *Tree) SearchIntersect(query orb.Bound) []Item {
	var out []Item
	var walk func(n *node)
	walk = func(n *node) {
		if !n.bound.Intersects(query) && len(n.entries) > 0 {
			return
		}
		for _, e := range n.entries {
			if n.leaf {
				if e.bound.Intersects(query) {
					out = append(out, e.item)
				}
			} else if e.child.bound.Intersects(query) {
				walk(e.child)
			}
		}
	}
	walk(t.root)
	return out
}

// Remove deletes item from the tree, if present. It does not rebalance or
// shrink ancestor bounds.
func (t *Tree) Remove(item Item) bool {
	target := item.Bound()
	var walk func(n *node) bool
	walk = func(n *node) bool {
		for i, e := range n.entries {
			if n.leaf {
				if e.item == item {
					n.entries = append(n.entries[:i:i], n.entries[i+1:]...)
					return true
				}
				continue
			}
			if e.child.bound.Intersects(target) && walk(e.child) {
				return true
			}
		}
		return false
	}
	return walk(t.root)
}

// Items returns every item still present in the tree, in no particular
// order.
func (t *Tree) Items() []Item {
	var out []Item
	var walk func(n *node)
	walk = func(n *node) {
		for _, e := range n.entries {
			if n.leaf {
				out = append(out, e.item)
			} else {
				walk(e.child)
			}
		}
	}
	walk(t.root)
	return out
}

// Fold performs a bottom-up reduction over the tree's own parent/leaf
// structure: leaf items are combined into an accumulator with foldFn, and
// sibling subtree results are combined with reduceFn. This mirrors a
// classic R-tree "fold" used to compute a global result (such as a
// polygon union) in tree order rather than item order, which keeps
// geometrically close items combined first.
func Fold[S any](t *Tree, empty func() S, foldFn func(S, Item) S, reduceFn func(S, S) S) S {
	var walk func(n *node) S
	walk = func(n *node) S {
		acc := empty()
		if n.leaf {
			for _, e := range n.entries {
				acc = foldFn(acc, e.item)
			}
			return acc
		}
		for _, e := range n.entries {
			acc = reduceFn(acc, walk(e.child))
		}
		return acc
	}
	return walk(t.root)
}
