package grid_test

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/rolltiles/internal/core"
	"github.com/vovakirdan/rolltiles/internal/grid"
)

type testTile struct {
	name string
	pose core.Pose
}

func (t *testTile) Pose() core.Pose     { return t.pose }
func (t *testTile) SetPose(p core.Pose) { t.pose = p }

func TestNewStoreIsEmpty(t *testing.T) {
	s := grid.New()

	if s.Extent() != core.NewRect(0, 0, 1, 1) {
		t.Errorf("Extent() = %+v, expected 1x1 at origin", s.Extent())
	}

	coords := []core.Coord{
		core.C(0, 0), core.C(1, 0), core.C(-1, -1), core.C(1000, -1000),
	}
	for _, c := range coords {
		if got := s.Query(c); got != nil {
			t.Errorf("Query(%v) = %v, expected nil", c, got)
		}
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d, expected 0", s.Len())
	}
}

func TestInsertQueryClear(t *testing.T) {
	testCases := []struct {
		name  string
		coord core.Coord
	}{
		{"origin", core.C(0, 0)},
		{"expand right", core.C(3, 0)},
		{"expand up", core.C(0, 4)},
		{"expand negative", core.C(-2, -5)},
		{"far away", core.C(40, -17)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := grid.New()
			tile := &testTile{name: tc.name}

			s.Insert(tile, tc.coord)
			if got := s.Query(tc.coord); got != tile {
				t.Errorf("Query(%v) = %v, expected inserted tile", tc.coord, got)
			}

			s.Clear(tc.coord)
			if got := s.Query(tc.coord); got != nil {
				t.Errorf("Query(%v) after Clear = %v, expected nil", tc.coord, got)
			}
		})
	}
}

func TestInsertOverwrites(t *testing.T) {
	s := grid.New()
	a := &testTile{name: "a"}
	b := &testTile{name: "b"}

	s.Insert(a, core.C(2, 2))
	s.Insert(b, core.C(2, 2))

	if got := s.Query(core.C(2, 2)); got != b {
		t.Errorf("Query() = %v, expected second tile", got)
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, expected 1", s.Len())
	}
}

func TestClearOutsideExtentIsIgnored(t *testing.T) {
	s := grid.New()
	a := &testTile{name: "a"}
	s.Insert(a, core.C(0, 0))

	before := s.Extent()
	s.Clear(core.C(10, 10))

	if s.Extent() != before {
		t.Errorf("Clear outside extent changed extent to %+v", s.Extent())
	}
	if s.Query(core.C(0, 0)) != a {
		t.Error("Clear outside extent should not touch other cells")
	}
}

func TestExpandIsMonotonic(t *testing.T) {
	s := grid.New()
	s.Insert(&testTile{}, core.C(-3, 2))
	first := s.Extent()

	if first != core.NewRect(-3, 0, 4, 3) {
		t.Errorf("Extent() = %+v, expected corner (-3,0) size 4x3", first)
	}

	// Inside: no change
	s.Insert(&testTile{}, core.C(-1, 1))
	if s.Extent() != first {
		t.Errorf("insert inside extent changed it to %+v", s.Extent())
	}

	// Growth on the far y side uses the height, not the width
	s.Insert(&testTile{}, core.C(0, 9))
	second := s.Extent()
	if !second.ContainsRect(first) || !second.ContainsCoord(core.C(0, 9)) {
		t.Errorf("Extent() = %+v does not contain %+v and (0,9)", second, first)
	}
	if second.H != 10 {
		t.Errorf("Extent().H = %d, expected 10", second.H)
	}
}

func TestExpansionKeepsEveryTile(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	s := grid.New()
	placed := make(map[core.Coord]*testTile)

	for i := 0; i < 200; i++ {
		c := core.C(rng.Intn(41)-20, rng.Intn(41)-20)
		tile := &testTile{}
		s.Insert(tile, c)
		placed[c] = tile

		for pc, pt := range placed {
			if !s.Extent().ContainsCoord(pc) {
				t.Fatalf("after insert %d: extent %+v lost %v", i, s.Extent(), pc)
			}
			if got := s.Query(pc); got != pt {
				t.Fatalf("after insert %d: Query(%v) = %v, expected %v", i, pc, got, pt)
			}
		}
	}

	if s.Len() != len(placed) {
		t.Errorf("Len() = %d, expected %d", s.Len(), len(placed))
	}
}

func TestEachOrderAndFind(t *testing.T) {
	s := grid.New()
	a := &testTile{name: "a"}
	b := &testTile{name: "b"}
	c := &testTile{name: "c"}
	s.BulkInsert(c, core.C(0, 1))
	s.BulkInsert(b, core.C(1, 0))
	s.BulkInsert(a, core.C(-1, 0))

	var names []string
	s.Each(func(_ core.Coord, tile core.Tile) {
		names = append(names, tile.(*testTile).name)
	})

	expected := []string{"a", "b", "c"}
	if len(names) != len(expected) {
		t.Fatalf("Each visited %v, expected %v", names, expected)
	}
	for i := range expected {
		if names[i] != expected[i] {
			t.Errorf("Each order = %v, expected %v", names, expected)
			break
		}
	}

	if pos, ok := s.Find(b); !ok || pos != core.C(1, 0) {
		t.Errorf("Find(b) = %v, %v, expected (1,0), true", pos, ok)
	}
	if _, ok := s.Find(&testTile{}); ok {
		t.Error("Find of unknown tile should return false")
	}
}
