package roll

import "github.com/vovakirdan/rolltiles/internal/core"

// Snapshot is a read-only view of the gesture for rendering and tests.
type Snapshot struct {
	Phase    Phase
	Tile     core.Tile  // Selected tile, nil when idle
	Origin   core.Coord // Cell of the selected tile
	Route    Route      // Valid when Phase is PhaseRolling
	Progress float64    // Valid when Phase is PhaseRolling
}

// Phase returns the current phase.
func (c *Controller) Phase() Phase {
	switch {
	case c.sel == nil:
		return PhaseIdle
	case c.sel.route == nil:
		return PhaseSelected
	default:
		return PhaseRolling
	}
}

// Snapshot returns the current gesture state.
func (c *Controller) Snapshot() Snapshot {
	s := Snapshot{Phase: c.Phase()}
	if c.sel == nil {
		return s
	}
	s.Tile = c.sel.tile
	s.Origin = c.sel.origin
	if r := c.sel.route; r != nil {
		s.Route = r.Route
		s.Progress = r.progress
	}
	return s
}
