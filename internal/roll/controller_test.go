package roll_test

import (
	"math"
	"testing"

	"github.com/vovakirdan/rolltiles/internal/core"
	"github.com/vovakirdan/rolltiles/internal/grid"
	"github.com/vovakirdan/rolltiles/internal/roll"
)

const eps = 1e-9

// block is a tile that records the last pose it was given.
type block struct {
	name string
	pose core.Pose
	sets int
}

func newBlock(name string, c core.Coord) *block {
	return &block{name: name, pose: core.CellPose(c)}
}

func (b *block) Pose() core.Pose { return b.pose }
func (b *block) SetPose(p core.Pose) { b.pose = p; b.sets++ }

func near(a, b core.Vec2) bool {
	return math.Abs(a.X-b.X) < eps && math.Abs(a.Y-b.Y) < eps
}

// arcPoint returns the point at deg on the circle through the centre of a
// cell adjacent to pivot.
func arcPoint(pivot core.Vec2, deg float64) core.Vec2 {
	r := math.Sqrt(0.5)
	rad := deg * math.Pi / 180
	return pivot.Add(core.V(r*math.Cos(rad), r*math.Sin(rad)))
}

// sweep drags the pointer around pivot from one angle towards another in
// 5 degree steps, stopping once the controller leaves the rolling phase.
func sweep(t *testing.T, c *roll.Controller, pivot core.Vec2, from, to float64) {
	t.Helper()
	step := 5.0
	if to < from {
		step = -5
	}
	for deg := from + step; math.Abs(deg-from) <= math.Abs(to-from)+30; deg += step {
		c.ContinueInput(arcPoint(pivot, deg))
		if c.Phase() != roll.PhaseRolling {
			return
		}
	}
	t.Fatalf("roll around %v did not settle between %v and %v", pivot, from, to)
}

// sweepTo drags the pointer around pivot and stops at exactly to.
func sweepTo(c *roll.Controller, pivot core.Vec2, from, to float64) {
	n := 10
	for i := 1; i <= n; i++ {
		c.ContinueInput(arcPoint(pivot, from+(to-from)*float64(i)/float64(n)))
	}
}

type domino struct {
	store *grid.Store
	a, b  *block
	ctrl  *roll.Controller
	done  []roll.Settle
}

// newDomino places A at (0,0) and B at (1,0) under an identity transform.
func newDomino(t *testing.T) *domino {
	t.Helper()
	d := &domino{store: grid.New()}
	d.a = newBlock("A", core.C(0, 0))
	d.b = newBlock("B", core.C(1, 0))
	d.store.BulkInsert(d.a, core.C(0, 0))
	d.store.BulkInsert(d.b, core.C(1, 0))

	c, err := roll.New(d.store, core.Identity(),
		roll.WithSettleFunc(func(s roll.Settle) { d.done = append(d.done, s) }))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	d.ctrl = c
	return d
}

func TestStartInputSelectsTile(t *testing.T) {
	d := newDomino(t)

	tests := []struct {
		name  string
		pos   core.Vec2
		phase roll.Phase
		tile  core.Tile
	}{
		{"centre of A", core.V(0, 0), roll.PhaseSelected, d.a},
		{"near edge of A", core.V(0.4, -0.3), roll.PhaseSelected, d.a},
		{"rounds to B", core.V(0.6, 0.2), roll.PhaseSelected, d.b},
		{"empty cell", core.V(0, 1), roll.PhaseIdle, nil},
		{"outside extent", core.V(-5, 9), roll.PhaseIdle, nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d.ctrl.StartInput(tc.pos)
			snap := d.ctrl.Snapshot()
			if snap.Phase != tc.phase {
				t.Errorf("Phase = %v, expected %v", snap.Phase, tc.phase)
			}
			if snap.Tile != tc.tile {
				t.Errorf("Tile = %v, expected %v", snap.Tile, tc.tile)
			}
		})
	}
}

func TestStartInputIdempotent(t *testing.T) {
	d := newDomino(t)

	d.ctrl.StartInput(core.V(0.1, 0.1))
	first := d.ctrl.Snapshot()
	d.ctrl.StartInput(core.V(0.1, 0.1))
	second := d.ctrl.Snapshot()

	if first != second {
		t.Errorf("Snapshot after repeated StartInput = %+v, expected %+v", second, first)
	}
	if d.store.Query(core.C(0, 0)) != d.a || d.store.Len() != 2 {
		t.Error("StartInput should not modify the grid")
	}
	if d.a.sets != 0 {
		t.Errorf("StartInput wrote the pose %d times, expected 0", d.a.sets)
	}
}

func TestContinueInputWithoutSelection(t *testing.T) {
	d := newDomino(t)

	d.ctrl.StartInput(core.V(0, 2))
	d.ctrl.ContinueInput(core.V(0, 3))
	d.ctrl.EndInput()

	if d.ctrl.Phase() != roll.PhaseIdle {
		t.Errorf("Phase = %v, expected Idle", d.ctrl.Phase())
	}
	if d.a.sets != 0 || d.b.sets != 0 {
		t.Error("no tile should be posed without a selection")
	}
}

func TestZeroDeltaIsNoop(t *testing.T) {
	d := newDomino(t)

	d.ctrl.StartInput(core.V(0, 0))
	d.ctrl.ContinueInput(core.V(0, 0))
	if d.ctrl.Phase() != roll.PhaseSelected {
		t.Fatalf("Phase = %v, expected Selected", d.ctrl.Phase())
	}

	d.ctrl.ContinueInput(arcPoint(core.V(0.5, 0.5), 215))
	before := d.ctrl.Snapshot()
	pose := d.a.pose
	d.ctrl.ContinueInput(arcPoint(core.V(0.5, 0.5), 215))

	if d.ctrl.Snapshot() != before {
		t.Errorf("Snapshot changed on a zero-length drag")
	}
	if d.a.pose != pose {
		t.Errorf("pose changed on a zero-length drag")
	}
}

func TestSidewaysDragSelectsNoRoute(t *testing.T) {
	d := newDomino(t)

	d.ctrl.StartInput(core.V(0, 0))
	d.ctrl.ContinueInput(core.V(-0.3, 0))

	if d.ctrl.Phase() != roll.PhaseSelected {
		t.Errorf("Phase = %v, expected Selected", d.ctrl.Phase())
	}
	if d.a.sets != 0 {
		t.Error("tile should not move without a route")
	}

	// A later forward drag still picks a route.
	d.ctrl.ContinueInput(core.V(-0.3, 0.2))
	if d.ctrl.Phase() != roll.PhaseRolling {
		t.Errorf("Phase = %v, expected Rolling", d.ctrl.Phase())
	}
}

func TestRollUpCommits(t *testing.T) {
	d := newDomino(t)
	pivot := core.V(0.5, 0.5)

	d.ctrl.StartInput(core.V(0, 0))
	d.ctrl.ContinueInput(arcPoint(pivot, 215))

	snap := d.ctrl.Snapshot()
	if snap.Phase != roll.PhaseRolling {
		t.Fatalf("Phase = %v, expected Rolling", snap.Phase)
	}
	if snap.Route.Dir != core.DirUp || snap.Route.Side != 1 {
		t.Errorf("route = %v/%d, expected up/+1", snap.Route.Dir, snap.Route.Side)
	}
	if snap.Route.Pivot != pivot {
		t.Errorf("pivot = %v, expected %v", snap.Route.Pivot, pivot)
	}
	if snap.Route.Length != -90 {
		t.Errorf("length = %v, expected -90", snap.Route.Length)
	}

	sweep(t, d.ctrl, pivot, 215, 135)

	if got := d.store.Query(core.C(0, 1)); got != d.a {
		t.Errorf("Query(0,1) = %v, expected A", got)
	}
	if got := d.store.Query(core.C(0, 0)); got != nil {
		t.Errorf("Query(0,0) = %v, expected empty", got)
	}
	if got := d.store.Query(core.C(1, 0)); got != d.b {
		t.Errorf("Query(1,0) = %v, expected B", got)
	}

	want := core.Pose{Position: core.V(0, 1), Rotation: -90}
	if d.a.pose != want {
		t.Errorf("pose = %+v, expected %+v", d.a.pose, want)
	}

	snap = d.ctrl.Snapshot()
	if snap.Phase != roll.PhaseSelected || snap.Origin != core.C(0, 1) {
		t.Errorf("after commit: phase %v origin %v, expected Selected at (0,1)", snap.Phase, snap.Origin)
	}
	if len(d.done) != 1 || !d.done[0].Committed {
		t.Errorf("settle hook = %+v, expected one commit", d.done)
	}
}

func TestRollPoseMidway(t *testing.T) {
	d := newDomino(t)
	pivot := core.V(0.5, 0.5)

	d.ctrl.StartInput(core.V(0, 0))
	sweepTo(d.ctrl, pivot, 225, 180)

	snap := d.ctrl.Snapshot()
	if math.Abs(snap.Progress-0.5) > eps {
		t.Fatalf("Progress = %v, expected 0.5", snap.Progress)
	}

	wantPos := core.V(0.5-math.Sqrt(0.5), 0.5)
	if !near(d.a.pose.Position, wantPos) {
		t.Errorf("Position = %v, expected %v", d.a.pose.Position, wantPos)
	}
	if math.Abs(d.a.pose.Rotation+45) > eps {
		t.Errorf("Rotation = %v, expected -45", d.a.pose.Rotation)
	}
}

func TestRollBackCancels(t *testing.T) {
	d := newDomino(t)
	pivot := core.V(0.5, 0.5)
	start := d.a.pose

	d.ctrl.StartInput(core.V(0, 0))
	d.ctrl.ContinueInput(arcPoint(pivot, 215))
	d.ctrl.ContinueInput(arcPoint(pivot, 200))
	if d.ctrl.Phase() != roll.PhaseRolling {
		t.Fatalf("Phase = %v, expected Rolling", d.ctrl.Phase())
	}

	d.ctrl.ContinueInput(arcPoint(pivot, 240))

	if d.ctrl.Phase() != roll.PhaseSelected {
		t.Errorf("Phase = %v, expected Selected", d.ctrl.Phase())
	}
	if d.a.pose != start {
		t.Errorf("pose = %+v, expected original %+v", d.a.pose, start)
	}
	if d.store.Query(core.C(0, 0)) != d.a || d.store.Query(core.C(0, 1)) != nil {
		t.Error("grid should be unchanged after a cancelled roll")
	}
	if len(d.done) != 1 || d.done[0].Committed {
		t.Errorf("settle hook = %+v, expected one cancel", d.done)
	}
}

func TestEndInputSnaps(t *testing.T) {
	tests := []struct {
		name     string
		to       float64 // Pointer angle about the pivot at release
		progress float64
		commit   bool
	}{
		{"past half commits", 171, 0.6, true},
		{"before half cancels", 189, 0.4, false},
		{"almost done commits", 140, 85.0 / 90, true},
		{"barely started cancels", 220, 5.0 / 90, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := newDomino(t)
			pivot := core.V(0.5, 0.5)
			start := d.a.pose

			d.ctrl.StartInput(core.V(0, 0))
			sweepTo(d.ctrl, pivot, 225, tc.to)

			if p := d.ctrl.Snapshot().Progress; math.Abs(p-tc.progress) > 1e-6 {
				t.Fatalf("Progress = %v, expected %v", p, tc.progress)
			}

			d.ctrl.EndInput()

			if d.ctrl.Phase() != roll.PhaseIdle {
				t.Errorf("Phase = %v, expected Idle", d.ctrl.Phase())
			}
			if tc.commit {
				if d.store.Query(core.C(0, 1)) != d.a || d.store.Query(core.C(0, 0)) != nil {
					t.Error("tile should have moved to (0,1)")
				}
				want := core.Pose{Position: core.V(0, 1), Rotation: -90}
				if d.a.pose != want {
					t.Errorf("pose = %+v, expected %+v", d.a.pose, want)
				}
			} else {
				if d.store.Query(core.C(0, 0)) != d.a || d.store.Query(core.C(0, 1)) != nil {
					t.Error("tile should have stayed at (0,0)")
				}
				if d.a.pose != start {
					t.Errorf("pose = %+v, expected %+v", d.a.pose, start)
				}
			}
			if len(d.done) != 1 || d.done[0].Committed != tc.commit {
				t.Errorf("settle hook = %+v, expected committed=%v", d.done, tc.commit)
			}
		})
	}
}

func TestEndInputAtHalfCancels(t *testing.T) {
	d := newDomino(t)
	start := d.a.pose

	// One straight drag up from (0,0) turns 45 degrees about (0.5,0.5)
	d.ctrl.StartInput(core.V(0, 0))
	d.ctrl.ContinueInput(core.V(0, 0.5))

	if p := d.ctrl.Snapshot().Progress; p != 0.5 {
		t.Fatalf("Progress = %v, expected exactly 0.5", p)
	}

	d.ctrl.EndInput()

	if d.ctrl.Phase() != roll.PhaseIdle {
		t.Errorf("Phase = %v, expected Idle", d.ctrl.Phase())
	}
	if d.store.Query(core.C(0, 0)) != d.a || d.store.Query(core.C(0, 1)) != nil {
		t.Error("half way release should leave the grid unchanged")
	}
	if d.a.pose != start {
		t.Errorf("pose = %+v, expected %+v", d.a.pose, start)
	}
	if len(d.done) != 1 || d.done[0].Committed {
		t.Errorf("settle hook = %+v, expected one cancel", d.done)
	}
}

func TestEndInputWithoutRoute(t *testing.T) {
	d := newDomino(t)

	d.ctrl.StartInput(core.V(0, 0))
	d.ctrl.EndInput()

	// Selection without a route survives release until the next press.
	if d.ctrl.Phase() != roll.PhaseSelected {
		t.Errorf("Phase = %v, expected Selected", d.ctrl.Phase())
	}
	if len(d.done) != 0 {
		t.Errorf("settle hook fired %d times, expected 0", len(d.done))
	}
}

func TestStartInputDuringRollDiscards(t *testing.T) {
	d := newDomino(t)
	pivot := core.V(0.5, 0.5)

	d.ctrl.StartInput(core.V(0, 0))
	sweepTo(d.ctrl, pivot, 225, 200)
	if d.ctrl.Phase() != roll.PhaseRolling {
		t.Fatalf("Phase = %v, expected Rolling", d.ctrl.Phase())
	}

	d.ctrl.StartInput(core.V(1, 0))

	snap := d.ctrl.Snapshot()
	if snap.Phase != roll.PhaseSelected || snap.Tile != d.b {
		t.Errorf("after restart: %v %v, expected Selected B", snap.Phase, snap.Tile)
	}
	if d.store.Query(core.C(0, 0)) != d.a {
		t.Error("discarded roll must not move the tile in the grid")
	}
	if len(d.done) != 0 {
		t.Errorf("settle hook fired %d times, expected 0", len(d.done))
	}
	if d.a.pose == core.CellPose(core.C(0, 0)) {
		t.Error("discarded roll should keep its partial pose")
	}
}

func TestCancelBeforeRestartRestoresPose(t *testing.T) {
	d := newDomino(t)
	pivot := core.V(0.5, 0.5)
	start := d.a.pose

	d.ctrl.StartInput(core.V(0, 0))
	sweepTo(d.ctrl, pivot, 225, 200)

	d.ctrl.Cancel()
	d.ctrl.StartInput(core.V(0, 0))

	if d.a.pose != start {
		t.Errorf("pose = %+v, expected %+v", d.a.pose, start)
	}
	if snap := d.ctrl.Snapshot(); snap.Phase != roll.PhaseSelected || snap.Tile != d.a {
		t.Errorf("after restart: %v %v, expected Selected A", snap.Phase, snap.Tile)
	}
	if len(d.done) != 1 || d.done[0].Committed {
		t.Errorf("settle hook = %+v, expected one cancel", d.done)
	}
}

func TestCancelRestoresPose(t *testing.T) {
	d := newDomino(t)
	pivot := core.V(0.5, 0.5)
	start := d.a.pose

	d.ctrl.StartInput(core.V(0, 0))
	sweepTo(d.ctrl, pivot, 225, 170)
	d.ctrl.Cancel()

	if d.ctrl.Phase() != roll.PhaseIdle {
		t.Errorf("Phase = %v, expected Idle", d.ctrl.Phase())
	}
	if d.a.pose != start {
		t.Errorf("pose = %+v, expected %+v", d.a.pose, start)
	}
	if d.store.Query(core.C(0, 0)) != d.a {
		t.Error("Cancel must not move the tile in the grid")
	}
	if len(d.done) != 1 || d.done[0].Committed {
		t.Errorf("settle hook = %+v, expected one cancel", d.done)
	}

	// Cancel while idle does nothing.
	d.ctrl.Cancel()
	if len(d.done) != 1 {
		t.Errorf("Cancel while idle fired the settle hook")
	}
}

func TestChainedRolls(t *testing.T) {
	s := grid.New()
	a := newBlock("A", core.C(0, 0))
	s.BulkInsert(a, core.C(0, 0))
	for x := -1; x <= 4; x++ {
		s.BulkInsert(newBlock("floor", core.C(x, -1)), core.C(x, -1))
	}

	var commits int
	c, err := roll.New(s, core.Identity(), roll.WithSettleFunc(func(st roll.Settle) {
		if st.Committed {
			commits++
		}
	}))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	c.StartInput(core.V(0, 0))
	sweep(t, c, core.V(0.5, -0.5), 135, 45)
	sweep(t, c, core.V(1.5, -0.5), 135, 45)
	sweep(t, c, core.V(2.5, -0.5), 135, 45)
	c.EndInput()

	if commits != 3 {
		t.Errorf("commits = %d, expected 3", commits)
	}
	if s.Query(core.C(3, 0)) != a {
		t.Errorf("Query(3,0) = %v, expected A", s.Query(core.C(3, 0)))
	}
	for x := 0; x < 3; x++ {
		if s.Query(core.C(x, 0)) != nil {
			t.Errorf("Query(%d,0) should be empty", x)
		}
	}
	want := core.Pose{Position: core.V(3, 0), Rotation: -270}
	if a.pose != want {
		t.Errorf("pose = %+v, expected %+v", a.pose, want)
	}
}

func TestTransformedInput(t *testing.T) {
	d := newDomino(t)

	// Terminal layout: 6 columns per cell, 3 rows per cell, y flipped.
	world := core.NewTransform(core.V(40, 12), 0, 6, -3)
	if err := d.ctrl.SetTransform(world); err != nil {
		t.Fatalf("SetTransform() error = %v", err)
	}

	d.ctrl.StartInput(core.V(41, 11.5))
	if d.ctrl.Snapshot().Tile != d.a {
		t.Fatalf("StartInput in world space did not select A")
	}

	// Moving up the screen is moving up the grid.
	d.ctrl.ContinueInput(core.V(41, 11))
	snap := d.ctrl.Snapshot()
	if snap.Phase != roll.PhaseRolling || snap.Route.Dir != core.DirUp {
		t.Errorf("after drag: %v %v, expected Rolling up", snap.Phase, snap.Route.Dir)
	}
}

func TestSetTransformCancelsAndRejectsSingular(t *testing.T) {
	d := newDomino(t)
	start := d.a.pose

	d.ctrl.StartInput(core.V(0, 0))
	sweepTo(d.ctrl, core.V(0.5, 0.5), 225, 200)

	if err := d.ctrl.SetTransform(core.NewTransform(core.V(0, 0), 0, 0, 1)); err == nil {
		t.Error("SetTransform(singular) should fail")
	}
	if d.ctrl.Phase() != roll.PhaseRolling {
		t.Error("a rejected transform must not disturb the gesture")
	}

	if err := d.ctrl.SetTransform(core.NewTransform(core.V(1, 1), 0, 2, 2)); err != nil {
		t.Fatalf("SetTransform() error = %v", err)
	}
	if d.ctrl.Phase() != roll.PhaseIdle || d.a.pose != start {
		t.Error("SetTransform should cancel the roll in progress")
	}

	if _, err := roll.New(d.store, core.NewTransform(core.V(0, 0), 0, 1, 0)); err == nil {
		t.Error("New(singular) should fail")
	}
}

func TestPhaseString(t *testing.T) {
	tests := []struct {
		phase    roll.Phase
		expected string
	}{
		{roll.PhaseIdle, "Idle"},
		{roll.PhaseSelected, "Selected"},
		{roll.PhaseRolling, "Rolling"},
		{roll.Phase(9), "Unknown"},
	}

	for _, tc := range tests {
		if got := tc.phase.String(); got != tc.expected {
			t.Errorf("Phase(%d).String() = %q, expected %q", tc.phase, got, tc.expected)
		}
	}
}
