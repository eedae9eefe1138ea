package core

// Pose is the placement of a tile inside the grid frame: a grid-local
// position and a rotation in degrees about the grid normal.
type Pose struct {
	Position Vec2
	Rotation float64
}

// CellPose returns the resting pose of an unrotated tile at c.
func CellPose(c Coord) Pose {
	return Pose{Position: c.Vec()}
}

// Tile is an opaque tile handle owned by the level layer.
// The grid stores and compares handles; the roll controller reads the pose
// once when a roll starts and writes a new one whenever progress changes.
// A nil Tile means an empty cell.
type Tile interface {
	Pose() Pose
	SetPose(p Pose)
}
