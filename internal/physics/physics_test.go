package physics

import (
	"sort"
	"testing"
)

func TestOverlaps(t *testing.T) {
	base := Rect{X: 10, Y: 10, W: 10, H: 10}
	cases := []struct {
		name string
		o    Rect
		want bool
	}{
		{"inside", Rect{X: 12, Y: 12, W: 2, H: 2}, true},
		{"partial", Rect{X: 15, Y: 15, W: 10, H: 10}, true},
		{"touching right edge", Rect{X: 20, Y: 10, W: 5, H: 5}, false},
		{"touching bottom edge", Rect{X: 10, Y: 20, W: 5, H: 5}, false},
		{"left of", Rect{X: 0, Y: 10, W: 5, H: 5}, false},
		{"above", Rect{X: 10, Y: 0, W: 5, H: 5}, false},
		{"covering", Rect{X: 0, Y: 0, W: 50, H: 50}, true},
	}
	for _, tc := range cases {
		if got := Overlaps(base, tc.o); got != tc.want {
			t.Fatalf("%s: Overlaps = %v, want %v", tc.name, got, tc.want)
		}
		if got := tc.o.Overlaps(base); got != tc.want {
			t.Fatalf("%s: overlap not symmetric", tc.name)
		}
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(-1, 0, 10); got != 0 {
		t.Fatalf("Clamp(-1) = %v, want 0", got)
	}
	if got := Clamp(11, 0, 10); got != 10 {
		t.Fatalf("Clamp(11) = %v, want 10", got)
	}
	if got := Clamp(5, 0, 10); got != 5 {
		t.Fatalf("Clamp(5) = %v, want 5", got)
	}
}

func TestGridQueryFindsCoveringItems(t *testing.T) {
	g := NewGrid(100, 100, 10)
	g.Insert(Rect{X: 5, Y: 5, W: 20, H: 4}, 0) // spans three columns
	g.Insert(Rect{X: 80, Y: 80, W: 5, H: 5}, 1)

	seen := map[int]bool{}
	g.Query(Rect{X: 22, Y: 6, W: 1, H: 1}, func(i int) bool {
		seen[i] = true
		return false
	})
	if !seen[0] || seen[1] {
		t.Fatalf("query near item 0 saw %v, want only 0", seen)
	}

	var all []int
	g.Query(Rect{X: 0, Y: 0, W: 100, H: 100}, func(i int) bool {
		all = append(all, i)
		return false
	})
	sort.Ints(all)
	if len(all) < 2 || all[0] != 0 || all[len(all)-1] != 1 {
		t.Fatalf("full query = %v, want both items", all)
	}

	g.Clear()
	count := 0
	g.Query(Rect{X: 0, Y: 0, W: 100, H: 100}, func(int) bool {
		count++
		return false
	})
	if count != 0 {
		t.Fatalf("query after Clear visited %d items, want 0", count)
	}
}

func TestGridQueryStopsEarly(t *testing.T) {
	g := NewGrid(20, 20, 10)
	for i := 0; i < 5; i++ {
		g.Insert(Rect{X: 1, Y: 1, W: 1, H: 1}, i)
	}
	visits := 0
	g.Query(Rect{X: 0, Y: 0, W: 2, H: 2}, func(int) bool {
		visits++
		return true
	})
	if visits != 1 {
		t.Fatalf("visits = %d, want 1", visits)
	}
}

func TestGridClampsOutsideRects(t *testing.T) {
	g := NewGrid(10, 10, 5)
	g.Insert(Rect{X: -50, Y: -50, W: 1, H: 1}, 7)
	found := false
	g.Query(Rect{X: 0, Y: 0, W: 1, H: 1}, func(i int) bool {
		found = i == 7
		return found
	})
	if !found {
		t.Fatalf("expected clamped item in corner cell")
	}
}
