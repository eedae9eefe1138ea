package rolltiles

import "github.com/vovakirdan/rolltiles/internal/core"

// Block is the tile handle placed in the grid store.
// Its pose is written by the roll controller and read by the renderer.
type Block struct {
	ID    int
	Color core.Color
	pose  core.Pose
}

// NewBlock creates a block resting at c.
func NewBlock(id int, c core.Coord, color core.Color) *Block {
	return &Block{ID: id, Color: color, pose: core.CellPose(c)}
}

// Pose returns the current pose.
func (b *Block) Pose() core.Pose {
	return b.pose
}

// SetPose replaces the current pose.
func (b *Block) SetPose(p core.Pose) {
	b.pose = p
}

// corners returns the four corners of the block in grid-local space.
func (b *Block) corners() [4]core.Vec2 {
	var out [4]core.Vec2
	for i, c := range [4]core.Vec2{{X: -0.5, Y: -0.5}, {X: 0.5, Y: -0.5}, {X: 0.5, Y: 0.5}, {X: -0.5, Y: 0.5}} {
		out[i] = b.pose.Position.Add(c.Rotate(b.pose.Rotation))
	}
	return out
}

// local maps a grid-local point into the block's own frame, where the
// block covers [-0.5, 0.5] on both axes.
func (b *Block) local(p core.Vec2) core.Vec2 {
	return p.Sub(b.pose.Position).Rotate(-b.pose.Rotation)
}
