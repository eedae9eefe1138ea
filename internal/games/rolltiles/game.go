// Package rolltiles is the tile-rolling puzzle: a level seeded into a grid
// store, a roll controller driven by pointer input, and a terminal renderer.
package rolltiles

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/rolltiles/internal/core"
	"github.com/vovakirdan/rolltiles/internal/grid"
	"github.com/vovakirdan/rolltiles/internal/levels"
	"github.com/vovakirdan/rolltiles/internal/roll"
)

// Stats summarises the current play-through.
type Stats struct {
	LevelID  string
	Rolls    int
	Cancels  int
	Duration time.Duration
}

// Game implements one level of Roll Tiles.
type Game struct {
	level  levels.Level
	logger *log.Logger
	now    func() time.Time

	store  *grid.Store
	ctrl   *roll.Controller
	blocks []*Block
	layout core.Transform

	rolls   int
	cancels int
	started time.Time

	// Screen dimensions
	screenW int
	screenH int
	cellW   int
	cellH   int
}

// Option configures a Game.
type Option func(*Game)

// WithLogger sets the logger passed down to the store and controller.
func WithLogger(l *log.Logger) Option {
	return func(g *Game) {
		if l != nil {
			g.logger = l
		}
	}
}

// WithClock replaces time.Now for session timing.
func WithClock(now func() time.Time) Option {
	return func(g *Game) {
		g.now = now
	}
}

// New creates a game for level. Call Reset before use.
func New(level levels.Level, opts ...Option) *Game {
	g := &Game{
		level:  level,
		logger: log.New(io.Discard),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// ID returns the level identifier.
func (g *Game) ID() string {
	return g.level.ID
}

// Title returns the display name.
func (g *Game) Title() string {
	return g.level.Title()
}

// Level returns the level being played.
func (g *Game) Level() levels.Level {
	return g.level
}

// Reset rebuilds the level from scratch: a fresh store seeded with new
// blocks, a new controller, zeroed counters.
func (g *Game) Reset(cfg core.RuntimeConfig) error {
	g.screenW, g.screenH = cfg.ScreenW, cfg.ScreenH
	g.cellW, g.cellH = cfg.CellW, cfg.CellH
	if g.level.View.CellW > 0 {
		g.cellW = g.level.View.CellW
	}
	if g.level.View.CellH > 0 {
		g.cellH = g.level.View.CellH
	}

	logger := g.logger.With("level", g.level.ID)
	g.store = grid.New(grid.WithLogger(logger.WithPrefix("grid")))
	g.blocks = g.blocks[:0]
	g.level.Populate(g.store, func(spec levels.TileSpec) core.Tile {
		b := NewBlock(len(g.blocks), spec.Cell, spec.Color)
		g.blocks = append(g.blocks, b)
		return b
	})

	g.layout = Layout(g.level.Bounds(), g.screenW, g.screenH, g.cellW, g.cellH)
	ctrl, err := roll.New(g.store, g.layout,
		roll.WithLogger(logger.WithPrefix("roll")),
		roll.WithSettleFunc(g.onSettle),
	)
	if err != nil {
		return fmt.Errorf("rolltiles: %w", err)
	}
	g.ctrl = ctrl

	g.rolls, g.cancels = 0, 0
	g.started = g.now()
	logger.Info("level loaded", "tiles", g.store.Len(), "extent", g.store.Extent())
	return nil
}

// Resize re-centres the board for a new screen size. A roll in progress
// is cancelled; the grid is kept.
func (g *Game) Resize(w, h int) error {
	g.screenW, g.screenH = w, h
	g.layout = Layout(g.level.Bounds(), w, h, g.cellW, g.cellH)
	if err := g.ctrl.SetTransform(g.layout); err != nil {
		return fmt.Errorf("rolltiles: %w", err)
	}
	return nil
}

// HandlePointer delivers one input event to the roll controller.
func (g *Game) HandlePointer(ev core.PointerEvent) {
	switch ev.Kind {
	case core.PointerPress:
		g.ctrl.StartInput(ev.Pos)
	case core.PointerDrag:
		g.ctrl.ContinueInput(ev.Pos)
	case core.PointerRelease:
		g.ctrl.EndInput()
	}
}

// Cancel aborts any gesture in progress, returning a rolling tile to its cell.
func (g *Game) Cancel() {
	g.ctrl.Cancel()
}

func (g *Game) onSettle(s roll.Settle) {
	if s.Committed {
		g.rolls++
		return
	}
	g.cancels++
}

// Layout returns the current grid-to-screen transform.
func (g *Game) Layout() core.Transform {
	return g.layout
}

// Store returns the grid store.
func (g *Game) Store() *grid.Store {
	return g.store
}

// Gesture returns the roll controller's view of the current gesture.
func (g *Game) Gesture() roll.Snapshot {
	return g.ctrl.Snapshot()
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Rolls:   g.rolls,
		Cancels: g.cancels,
		Rolling: g.ctrl.Phase() == roll.PhaseRolling,
	}
}

// Stats returns the play-through summary used for session storage.
func (g *Game) Stats() Stats {
	return Stats{
		LevelID:  g.level.ID,
		Rolls:    g.rolls,
		Cancels:  g.cancels,
		Duration: g.now().Sub(g.started),
	}
}
