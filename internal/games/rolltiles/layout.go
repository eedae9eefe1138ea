package rolltiles

import (
	"math"

	"github.com/vovakirdan/rolltiles/internal/core"
)

// hudHeight is the number of screen rows reserved above the board.
const hudHeight = 1

// Layout computes the grid-to-screen transform that centres bounds in a
// screen of w x h terminal cells below the HUD. Grid y grows upward, so
// the vertical scale is negative. Cell edges fall on terminal cell edges.
func Layout(bounds core.Rect, w, h, cellW, cellH int) core.Transform {
	cellW = core.Max(cellW, 1)
	cellH = core.Max(cellH, 1)

	// Grid-local centre of the bounds
	cx := float64(bounds.X) + float64(bounds.W-1)/2
	cy := float64(bounds.Y) + float64(bounds.H-1)/2

	// Screen centre of the play area
	sx := float64(w) / 2
	sy := float64(hudHeight) + float64(h-hudHeight)/2

	ox := snap(sx-cx*float64(cellW), cellW)
	oy := snap(sy+cy*float64(cellH), cellH)
	return core.NewTransform(core.V(ox, oy), 0, float64(cellW), -float64(cellH))
}

// snap moves a cell-centre coordinate so that the cell's edges land on
// whole terminal columns or rows.
func snap(v float64, cell int) float64 {
	half := float64(cell) / 2
	return math.Round(v-half) + half
}

// CellCenter returns the world position of a terminal cell's centre.
// Mouse events are reported per terminal cell.
func CellCenter(x, y int) core.Vec2 {
	return core.V(float64(x)+0.5, float64(y)+0.5)
}
