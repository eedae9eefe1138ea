// Package levels loads puzzle layouts and seeds a grid store from them.
// This package depends on core but neither grid nor roll depend on levels.
package levels

import (
	"github.com/vovakirdan/rolltiles/internal/core"
)

// TileSpec is one authored tile: the cell it starts in and its colour.
type TileSpec struct {
	Cell  core.Coord
	Color core.Color
}

// View holds per-level layout overrides. Zero fields fall back to config.
type View struct {
	CellW int
	CellH int
}

// Level represents a complete level definition.
type Level struct {
	ID       string
	Name     string
	View     View
	Tiles    []TileSpec
	Metadata map[string]string
	FilePath string // Empty for embedded levels
}

// Inserter is the part of the grid store used to seed a level.
type Inserter interface {
	BulkInsert(t core.Tile, c core.Coord)
}

// Populate creates one tile per spec with newTile and bulk-inserts it.
// Later specs on the same cell replace earlier ones.
func (l *Level) Populate(dst Inserter, newTile func(TileSpec) core.Tile) {
	for _, spec := range l.Tiles {
		dst.BulkInsert(newTile(spec), spec.Cell)
	}
}

// Bounds returns the smallest rectangle holding every tile.
// A level without tiles reports the 1x1 rect at the origin.
func (l *Level) Bounds() core.Rect {
	if len(l.Tiles) == 0 {
		return core.NewRect(0, 0, 1, 1)
	}
	r := core.NewRect(l.Tiles[0].Cell.X, l.Tiles[0].Cell.Y, 1, 1)
	for _, spec := range l.Tiles[1:] {
		r = r.Include(spec.Cell)
	}
	return r
}

// Title returns the display name, falling back to the ID.
func (l *Level) Title() string {
	if l.Name != "" {
		return l.Name
	}
	return l.ID
}
