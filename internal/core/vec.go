package core

import (
	"fmt"
	"math"
)

// Coord identifies a unit cell of the integer grid.
// X increases to the right, Y increases upward (grid-local space).
type Coord struct {
	X int
	Y int
}

// C is a convenience constructor for Coord.
func C(x, y int) Coord {
	return Coord{X: x, Y: y}
}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Add returns the sum of two coordinates.
func (c Coord) Add(other Coord) Coord {
	return Coord{X: c.X + other.X, Y: c.Y + other.Y}
}

// Sub returns c - other.
func (c Coord) Sub(other Coord) Coord {
	return Coord{X: c.X - other.X, Y: c.Y - other.Y}
}

// Scale multiplies both components by k.
func (c Coord) Scale(k int) Coord {
	return Coord{X: c.X * k, Y: c.Y * k}
}

// Vec returns the cell center as a grid-local vector.
func (c Coord) Vec() Vec2 {
	return Vec2{X: float64(c.X), Y: float64(c.Y)}
}

// Vec2 is a point or displacement in a continuous 2D space.
type Vec2 struct {
	X float64
	Y float64
}

// V is a convenience constructor for Vec2.
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// String returns a string representation of the vector.
func (v Vec2) String() string {
	return fmt.Sprintf("(%.3f,%.3f)", v.X, v.Y)
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns v * k.
func (v Vec2) Scale(k float64) Vec2 {
	return Vec2{X: v.X * k, Y: v.Y * k}
}

// Dot returns the dot product of v and o.
func (v Vec2) Dot(o Vec2) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Cross returns the z component of the 3D cross product of v and o.
func (v Vec2) Cross(o Vec2) float64 {
	return v.X*o.Y - v.Y*o.X
}

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Rotate returns v rotated counter-clockwise by deg degrees.
// Whole quarter turns are exact.
func (v Vec2) Rotate(deg float64) Vec2 {
	switch math.Mod(deg, 360) {
	case 0:
		return v
	case 90, -270:
		return Vec2{X: -v.Y, Y: v.X}
	case 180, -180:
		return Vec2{X: -v.X, Y: -v.Y}
	case 270, -90:
		return Vec2{X: v.Y, Y: -v.X}
	}
	sin, cos := math.Sincos(deg * math.Pi / 180)
	return Vec2{
		X: v.X*cos - v.Y*sin,
		Y: v.X*sin + v.Y*cos,
	}
}

// Round returns the nearest grid cell. Halfway values round to even,
// so a point exactly on a cell border resolves the same way every time.
func (v Vec2) Round() Coord {
	return Coord{X: int(math.RoundToEven(v.X)), Y: int(math.RoundToEven(v.Y))}
}

// SignedAngle returns the angle in degrees from a to b, in [-180, 180].
// Counter-clockwise is positive. Zero-length inputs yield 0.
func SignedAngle(a, b Vec2) float64 {
	return math.Atan2(a.Cross(b), a.Dot(b)) * 180 / math.Pi
}

// Dir is one of the four cardinal directions in cyclic counter-clockwise
// order: right, up, left, down.
type Dir int

const (
	DirRight Dir = iota
	DirUp
	DirLeft
	DirDown
)

// Dirs lists the four directions in scan order.
var Dirs = [4]Dir{DirRight, DirUp, DirLeft, DirDown}

// Delta returns the unit cell offset of the direction.
func (d Dir) Delta() Coord {
	switch d {
	case DirRight:
		return Coord{X: 1}
	case DirUp:
		return Coord{Y: 1}
	case DirLeft:
		return Coord{X: -1}
	case DirDown:
		return Coord{Y: -1}
	}
	return Coord{}
}

// Next returns the following direction in cyclic order, index (i+1) mod 4.
func (d Dir) Next() Dir {
	return (d + 1) % 4
}

// Prev returns the preceding direction in cyclic order, index (i+3) mod 4.
func (d Dir) Prev() Dir {
	return (d + 3) % 4
}

// String returns the direction name.
func (d Dir) String() string {
	switch d {
	case DirRight:
		return "right"
	case DirUp:
		return "up"
	case DirLeft:
		return "left"
	case DirDown:
		return "down"
	}
	return "unknown"
}
