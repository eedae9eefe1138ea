// Package core provides fundamental types and utilities for Roll Tiles.
// It contains no external dependencies (especially no Bubble Tea) to keep
// grid and gesture logic pure and testable.
package core

// Rect represents an axis-aligned integer rectangle [X, X+W) x [Y, Y+H).
// The grid store uses it for its backed extent.
type Rect struct {
	X, Y int // Corner with the smallest coordinates
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the exclusive x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the exclusive y-coordinate of the far edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Corner returns the corner cell of the rectangle.
func (r Rect) Corner() Coord {
	return Coord{X: r.X, Y: r.Y}
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// ContainsCoord returns true if the cell c is inside this rectangle.
func (r Rect) ContainsCoord(c Coord) bool {
	return r.Contains(c.X, c.Y)
}

// ContainsRect returns true if other lies entirely inside this rectangle.
// An empty other is contained by any rectangle.
func (r Rect) ContainsRect(other Rect) bool {
	if other.W <= 0 || other.H <= 0 {
		return true
	}
	return other.X >= r.X && other.Y >= r.Y &&
		other.Right() <= r.Right() && other.Bottom() <= r.Bottom()
}

// Include returns the smallest rectangle containing r and the cell c.
func (r Rect) Include(c Coord) Rect {
	if r.W <= 0 || r.H <= 0 {
		return Rect{X: c.X, Y: c.Y, W: 1, H: 1}
	}
	x0, y0 := Min(r.X, c.X), Min(r.Y, c.Y)
	x1, y1 := Max(r.Right(), c.X+1), Max(r.Bottom(), c.Y+1)
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
