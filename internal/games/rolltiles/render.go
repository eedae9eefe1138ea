package rolltiles

import (
	"fmt"
	"math"

	"github.com/vovakirdan/rolltiles/internal/core"
	"github.com/vovakirdan/rolltiles/internal/roll"
)

// Block glyphs
const (
	runeBody     = '█'
	runeEdge     = '▓'
	runeSelected = '▒'
	runePivot    = '+'
)

// Render draws the HUD, every block and, while rolling, the pivot.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	gesture := g.ctrl.Snapshot()
	g.renderHUD(dst, gesture)

	// Selected block last so it stays on top while it rolls
	for _, b := range g.blocks {
		if b != gesture.Tile {
			g.renderBlock(dst, b, false)
		}
	}
	if b, ok := gesture.Tile.(*Block); ok {
		g.renderBlock(dst, b, true)
	}

	if gesture.Phase == roll.PhaseRolling {
		p := g.layout.Apply(gesture.Route.Pivot)
		x, y := int(math.Floor(p.X)), int(math.Floor(p.Y))
		if y >= hudHeight {
			dst.SetCell(x, y, runePivot, core.ColorWhite)
		}
	}
}

// renderHUD draws the status line.
func (g *Game) renderHUD(dst *core.Screen, gesture roll.Snapshot) {
	dst.DrawTextColor(1, 0, g.Title(), core.ColorCyan)

	var status string
	switch gesture.Phase {
	case roll.PhaseIdle:
		status = "drag a tile"
	case roll.PhaseSelected:
		status = fmt.Sprintf("tile %v", gesture.Origin)
	case roll.PhaseRolling:
		status = fmt.Sprintf("rolling %s %3.0f%%", gesture.Route.Dir, gesture.Progress*100)
	}
	dst.DrawTextCentered(0, status)

	counters := fmt.Sprintf("rolls %d  cancels %d", g.rolls, g.cancels)
	dst.DrawTextColor(dst.Width()-len(counters)-1, 0, counters, core.ColorGray)
}

// renderBlock rasterises a block by sampling each terminal cell centre
// in the block's own frame.
func (g *Game) renderBlock(dst *core.Screen, b *Block, selected bool) {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, c := range b.corners() {
		p := g.layout.Apply(c)
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}

	x0 := core.Max(int(math.Floor(minX)), 0)
	y0 := core.Max(int(math.Floor(minY)), hudHeight)
	x1 := core.Min(int(math.Ceil(maxX)), dst.Width())
	y1 := core.Min(int(math.Ceil(maxY)), dst.Height())

	edgeX := 0.5 - 1/float64(core.Max(g.cellW, 1))
	edgeY := 0.5 - 1/float64(core.Max(g.cellH, 1))

	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			q := b.local(g.ctrl.ToLocal(CellCenter(x, y)))
			ax, ay := math.Abs(q.X), math.Abs(q.Y)
			if ax >= 0.5 || ay >= 0.5 {
				continue
			}

			r := runeBody
			if ax > edgeX || ay > edgeY {
				r = runeEdge
				if selected {
					r = runeSelected
				}
			}
			dst.SetCell(x, y, r, b.Color)
		}
	}
}
