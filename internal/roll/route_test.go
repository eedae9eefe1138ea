package roll_test

import (
	"testing"

	"github.com/vovakirdan/rolltiles/internal/core"
	"github.com/vovakirdan/rolltiles/internal/grid"
	"github.com/vovakirdan/rolltiles/internal/roll"
)

func TestNewRouteGeometry(t *testing.T) {
	tests := []struct {
		name   string
		dir    core.Dir
		side   int
		pivot  core.Vec2
		dest   core.Coord
		length float64
	}{
		{"up trailing right", core.DirUp, 1, core.V(0.5, 0.5), core.C(0, 1), -90},
		{"up trailing left", core.DirUp, -1, core.V(-0.5, 0.5), core.C(0, 1), 90},
		{"right on floor", core.DirRight, 1, core.V(0.5, -0.5), core.C(1, 0), -90},
		{"down trailing right", core.DirDown, -1, core.V(0.5, -0.5), core.C(0, -1), 90},
		{"left on floor", core.DirLeft, -1, core.V(-0.5, -0.5), core.C(-1, 0), 90},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := roll.NewRoute(core.C(0, 0), tc.dir, tc.side)
			if r.Pivot != tc.pivot {
				t.Errorf("Pivot = %v, expected %v", r.Pivot, tc.pivot)
			}
			if r.Destination != tc.dest {
				t.Errorf("Destination = %v, expected %v", r.Destination, tc.dest)
			}
			if r.Length != tc.length {
				t.Errorf("Length = %v, expected %v", r.Length, tc.length)
			}
		})
	}
}

func TestEligibleDomino(t *testing.T) {
	s := grid.New()
	s.BulkInsert(newBlock("A", core.C(0, 0)), core.C(0, 0))
	s.BulkInsert(newBlock("B", core.C(1, 0)), core.C(1, 0))

	routes := roll.Eligible(s, core.C(0, 0))
	if len(routes) != 2 {
		t.Fatalf("Eligible() returned %d routes, expected 2: %+v", len(routes), routes)
	}

	// Scan order: up before down
	if routes[0].Dir != core.DirUp || routes[0].Side != 1 {
		t.Errorf("routes[0] = %v/%d, expected up/+1", routes[0].Dir, routes[0].Side)
	}
	if routes[1].Dir != core.DirDown || routes[1].Side != -1 {
		t.Errorf("routes[1] = %v/%d, expected down/-1", routes[1].Dir, routes[1].Side)
	}
}

func TestEligibleRequiresSupport(t *testing.T) {
	s := grid.New()
	s.BulkInsert(newBlock("A", core.C(0, 0)), core.C(0, 0))

	if routes := roll.Eligible(s, core.C(0, 0)); len(routes) != 0 {
		t.Errorf("lone tile should have no routes, got %+v", routes)
	}
}

func TestEligibleObstruction(t *testing.T) {
	tests := []struct {
		name    string
		blocker core.Coord
	}{
		{"destination occupied", core.C(0, 1)},
		{"leading side occupied", core.C(-1, 0)},
		{"leading corner occupied", core.C(-1, 1)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := grid.New()
			s.BulkInsert(newBlock("A", core.C(0, 0)), core.C(0, 0))
			s.BulkInsert(newBlock("B", core.C(1, 0)), core.C(1, 0))
			s.BulkInsert(newBlock("X", tc.blocker), tc.blocker)

			r := roll.NewRoute(core.C(0, 0), core.DirUp, 1)
			if r.Eligible(s) {
				t.Errorf("up/+1 should be blocked by %v", tc.blocker)
			}
		})
	}
}

func TestEligibleSupportFromDiagonal(t *testing.T) {
	// Support may come from the cell beside the destination instead.
	s := grid.New()
	s.BulkInsert(newBlock("A", core.C(0, 0)), core.C(0, 0))
	s.BulkInsert(newBlock("B", core.C(1, 1)), core.C(1, 1))

	r := roll.NewRoute(core.C(0, 0), core.DirUp, 1)
	if !r.Eligible(s) {
		t.Error("up/+1 should be supported by the tile at (1,1)")
	}
}

func TestChooseByDragDirection(t *testing.T) {
	s := grid.New()
	s.BulkInsert(newBlock("A", core.C(0, 0)), core.C(0, 0))
	s.BulkInsert(newBlock("B", core.C(1, 0)), core.C(1, 0))

	tests := []struct {
		name  string
		delta core.Vec2
		ok    bool
		dir   core.Dir
	}{
		{"drag up", core.V(0, 0.2), true, core.DirUp},
		{"drag up and sideways", core.V(0.5, 0.1), true, core.DirUp},
		{"drag down", core.V(0, -0.2), true, core.DirDown},
		{"drag right", core.V(0.3, 0), false, 0},
		{"drag left", core.V(-0.3, 0), false, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r, ok := roll.Choose(s, core.C(0, 0), tc.delta)
			if ok != tc.ok {
				t.Fatalf("Choose(%v) ok = %v, expected %v", tc.delta, ok, tc.ok)
			}
			if ok && r.Dir != tc.dir {
				t.Errorf("Choose(%v) dir = %v, expected %v", tc.delta, r.Dir, tc.dir)
			}
		})
	}
}

func TestChooseOnFloor(t *testing.T) {
	s := grid.New()
	s.BulkInsert(newBlock("A", core.C(0, 0)), core.C(0, 0))
	s.BulkInsert(newBlock("F", core.C(0, -1)), core.C(0, -1))

	r, ok := roll.Choose(s, core.C(0, 0), core.V(0.3, 0))
	if !ok || r.Dir != core.DirRight || r.Side != 1 {
		t.Fatalf("Choose(right) = %+v, %v, expected right/+1", r, ok)
	}

	r, ok = roll.Choose(s, core.C(0, 0), core.V(-0.3, 0.1))
	if !ok || r.Dir != core.DirLeft || r.Side != -1 {
		t.Fatalf("Choose(left) = %+v, %v, expected left/-1", r, ok)
	}

	// A purely vertical drag scores zero for both horizontal routes.
	if _, ok := roll.Choose(s, core.C(0, 0), core.V(0, 0.3)); ok {
		t.Error("Choose with zero score should select nothing")
	}
}

func TestChooseTieKeepsFirst(t *testing.T) {
	// Floor below and wall to the left: right/+1 and up/-1 are eligible.
	s := grid.New()
	s.BulkInsert(newBlock("A", core.C(0, 0)), core.C(0, 0))
	s.BulkInsert(newBlock("F", core.C(0, -1)), core.C(0, -1))
	s.BulkInsert(newBlock("W", core.C(-1, 0)), core.C(-1, 0))

	r, ok := roll.Choose(s, core.C(0, 0), core.V(0.3, 0.3))
	if !ok {
		t.Fatal("Choose() selected nothing")
	}
	if r.Dir != core.DirRight {
		t.Errorf("Choose() on a tie = %v, expected right (first in scan order)", r.Dir)
	}

	r, _ = roll.Choose(s, core.C(0, 0), core.V(0.1, 0.3))
	if r.Dir != core.DirUp || r.Side != -1 {
		t.Errorf("Choose(mostly up) = %v/%d, expected up/-1", r.Dir, r.Side)
	}
}
