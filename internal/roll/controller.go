// Package roll turns a pointer drag into quarter-turn rolls of grid tiles.
//
// The Controller accepts three entry points from the input boundary:
// StartInput on press, ContinueInput on drag and EndInput on release.
// A press selects the tile under the pointer, the first drag with forward
// motion picks a route, and later drags advance the roll by the angle the
// pointer sweeps around the route's pivot. A roll settles when its
// progress reaches 0 (cancel) or 1 (commit), or when the pointer is
// released.
package roll

import (
	"io"
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/rolltiles/internal/core"
)

// Phase is the externally visible state of the controller.
type Phase int

const (
	PhaseIdle     Phase = iota // No tile selected
	PhaseSelected              // Tile selected, no route yet
	PhaseRolling               // Route in progress
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "Idle"
	case PhaseSelected:
		return "Selected"
	case PhaseRolling:
		return "Rolling"
	default:
		return "Unknown"
	}
}

// Settle describes a finished roll.
type Settle struct {
	Tile      core.Tile
	Route     Route
	Committed bool // True if the tile moved to Route.Destination
}

// active is a route in progress.
type active struct {
	Route
	pivotToTile     core.Vec2
	progress        float64
	initialRotation float64
}

// selection is the gesture state while a tile is held.
// route is nil until a drag picks one.
type selection struct {
	tile   core.Tile
	origin core.Coord
	route  *active
}

// Controller maps pointer input onto tile rolls over a Board.
// It is not safe for concurrent use; one input stream drives it.
type Controller struct {
	board    Board
	toWorld  core.Transform
	toLocal  core.Transform
	pointer  core.Vec2 // Last pointer position in grid-local space
	sel      *selection
	logger   *log.Logger
	onSettle func(Settle)
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger for route and settle events.
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithSettleFunc registers a callback invoked once per finished roll.
func WithSettleFunc(fn func(Settle)) Option {
	return func(c *Controller) {
		c.onSettle = fn
	}
}

// New creates a controller over board. toWorld maps grid-local space to
// the world space that pointer positions arrive in; it must be invertible.
func New(board Board, toWorld core.Transform, opts ...Option) (*Controller, error) {
	toLocal, err := toWorld.Inverse()
	if err != nil {
		return nil, err
	}
	c := &Controller{
		board:   board,
		toWorld: toWorld,
		toLocal: toLocal,
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Transform returns the grid-to-world transform.
func (c *Controller) Transform() core.Transform {
	return c.toWorld
}

// SetTransform replaces the grid-to-world transform. Any gesture in
// progress is cancelled first.
func (c *Controller) SetTransform(toWorld core.Transform) error {
	toLocal, err := toWorld.Inverse()
	if err != nil {
		return err
	}
	c.Cancel()
	c.toWorld = toWorld
	c.toLocal = toLocal
	return nil
}

// ToLocal projects a world position into grid-local space.
func (c *Controller) ToLocal(world core.Vec2) core.Vec2 {
	return c.toLocal.Apply(world)
}

// StartInput begins a new gesture at world, discarding any previous one
// without committing it. The tile under the pointer, if any, is selected.
// A discarded roll keeps its partial pose; hosts that abort a gesture
// should call Cancel first to return the tile to its cell.
func (c *Controller) StartInput(world core.Vec2) {
	c.sel = nil
	c.pointer = c.toLocal.Apply(world)

	origin := c.pointer.Round()
	t := c.board.Query(origin)
	if t == nil {
		return
	}
	c.sel = &selection{tile: t, origin: origin}
	c.logger.Debug("tile selected", "cell", origin)
}

// ContinueInput advances the gesture to world.
func (c *Controller) ContinueInput(world core.Vec2) {
	if c.sel == nil {
		return
	}

	prev := c.pointer
	cur := c.toLocal.Apply(world)
	c.pointer = cur
	if cur == prev {
		return
	}

	if c.sel.route == nil {
		c.sel.route = c.pickRoute(cur.Sub(prev))
	}
	r := c.sel.route
	if r == nil {
		return
	}

	r.progress += core.SignedAngle(prev.Sub(r.Pivot), cur.Sub(r.Pivot)) / r.Length
	if r.progress >= 1 || r.progress <= 0 {
		r.progress = core.ClampF(r.progress, 0, 1)
		c.settle(r.progress == 1)
		return
	}
	c.writePose(r)
}

// EndInput finishes the gesture. A roll in progress snaps to whichever
// end is nearer (exactly half way falls back) and the tile is released.
func (c *Controller) EndInput() {
	if c.sel == nil || c.sel.route == nil {
		return
	}
	r := c.sel.route
	r.progress = math.RoundToEven(r.progress)
	c.settle(r.progress == 1)
	c.sel = nil
}

// Cancel aborts the gesture from the host side. A roll in progress is
// returned to its origin and the tile is released.
func (c *Controller) Cancel() {
	if c.sel != nil && c.sel.route != nil {
		c.sel.route.progress = 0
		c.settle(false)
	}
	c.sel = nil
}

// pickRoute selects a route for the selected tile, or nil.
func (c *Controller) pickRoute(delta core.Vec2) *active {
	rt, ok := Choose(c.board, c.sel.origin, delta)
	if !ok {
		return nil
	}
	c.logger.Debug("route selected",
		"dir", rt.Dir, "side", rt.Side, "pivot", rt.Pivot, "to", rt.Destination)
	return &active{
		Route:           rt,
		pivotToTile:     c.sel.origin.Vec().Sub(rt.Pivot),
		initialRotation: c.sel.tile.Pose().Rotation,
	}
}

// writePose sends the tile the pose for the current progress.
func (c *Controller) writePose(r *active) {
	turn := r.Length * r.progress
	c.sel.tile.SetPose(core.Pose{
		Position: r.Pivot.Add(r.pivotToTile.Rotate(turn)),
		Rotation: r.initialRotation + turn,
	})
}

// settle writes the final pose, moves the tile on commit and leaves the
// rolling phase. The tile stays selected so a continued drag can roll on.
func (c *Controller) settle(commit bool) {
	r := c.sel.route
	c.writePose(r)
	if commit {
		c.board.Clear(c.sel.origin)
		c.board.Insert(c.sel.tile, r.Destination)
		c.sel.origin = r.Destination
		c.logger.Debug("roll committed", "from", r.Origin, "to", r.Destination)
	} else {
		c.logger.Debug("roll cancelled", "cell", r.Origin)
	}
	c.sel.route = nil

	if c.onSettle != nil {
		c.onSettle(Settle{Tile: c.sel.tile, Route: r.Route, Committed: commit})
	}
}
