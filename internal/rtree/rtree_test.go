package rtree

import (
	"testing"

	"github.com/paulmach/orb"
)

type pointItem struct {
	name string
	p    orb.Point
}

func (p pointItem) Bound() orb.Bound { return orb.Bound{Min: p.p, Max: p.p} }

func TestSearchIntersectFindsContainedItems(t *testing.T) {
	items := []Item{
		pointItem{"a", orb.Point{0, 0}},
		pointItem{"b", orb.Point{5, 5}},
		pointItem{"c", orb.Point{10, 10}},
	}
	tree := BulkLoad(items)

	got := tree.SearchIntersect(orb.Bound{Min: orb.Point{-1, -1}, Max: orb.Point{6, 6}})
	if len(got) != 2 {
		t.Fatalf("SearchIntersect returned %d items, want 2", len(got))
	}
}

func TestRemoveDropsItemFromFutureQueries(t *testing.T) {
	a := pointItem{"a", orb.Point{0, 0}}
	b := pointItem{"b", orb.Point{1, 1}}
	tree := BulkLoad([]Item{a, b})

	if !tree.Remove(a) {
		t.Fatal("Remove(a) = false, want true")
	}
	if tree.Remove(a) {
		t.Fatal("second Remove(a) = true, want false (already removed)")
	}
	got := tree.Items()
	if len(got) != 1 || got[0] != Item(b) {
		t.Fatalf("Items() = %v, want only b", got)
	}
}

func TestFoldCombinesAllLeavesExactlyOnce(t *testing.T) {
	items := make([]Item, 0, 40)
	for i := 0; i < 40; i++ {
		items = append(items, pointItem{p: orb.Point{float64(i), float64(i % 5)}})
	}
	tree := BulkLoadN(items, 4)

	count := Fold(tree,
		func() int { return 0 },
		func(acc int, _ Item) int { return acc + 1 },
		func(a, b int) int { return a + b },
	)
	if count != 40 {
		t.Fatalf("Fold count = %d, want 40", count)
	}
}

func TestBulkLoadEmpty(t *testing.T) {
	tree := BulkLoad(nil)
	if got := tree.SearchIntersect(orb.Bound{Min: orb.Point{-1, -1}, Max: orb.Point{1, 1}}); len(got) != 0 {
		t.Fatalf("SearchIntersect on empty tree returned %d items, want 0", len(got))
	}
}
