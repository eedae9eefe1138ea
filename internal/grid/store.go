// Package grid provides the sparse occupancy map of the roll board.
// It maps integer cells to tile handles and knows nothing about geometry
// or rotation.
package grid

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/rolltiles/internal/core"
)

// Store is a logically infinite 2D map from cells to tiles, backed by a
// finite rectangular extent that grows on demand. Cells outside the extent
// are empty. Cells are stored column-major: index = (x-X)*H + (y-Y).
type Store struct {
	extent core.Rect
	tiles  []core.Tile
	logger *log.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used to report resizes.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates an empty store backed by a single cell at the origin.
func New(opts ...Option) *Store {
	s := &Store{
		extent: core.NewRect(0, 0, 1, 1),
		tiles:  make([]core.Tile, 1),
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// index converts a cell inside the extent to a backing slice index.
func (s *Store) index(c core.Coord) int {
	return (c.X-s.extent.X)*s.extent.H + (c.Y - s.extent.Y)
}

// Extent returns the currently backed rectangle.
func (s *Store) Extent() core.Rect {
	return s.extent
}

// Query returns the tile at c, or nil if the cell is empty or outside the
// backed extent.
func (s *Store) Query(c core.Coord) core.Tile {
	if !s.extent.ContainsCoord(c) {
		return nil
	}
	return s.tiles[s.index(c)]
}

// Occupied reports whether a tile sits at c.
func (s *Store) Occupied(c core.Coord) bool {
	return s.Query(c) != nil
}

// BulkInsert places an authored tile at load time.
// It has the same semantics as Insert.
func (s *Store) BulkInsert(t core.Tile, c core.Coord) {
	s.Insert(t, c)
}

// Insert writes t into cell c, growing the extent first if c lies outside
// it. Any previous occupant is overwritten.
func (s *Store) Insert(t core.Tile, c core.Coord) {
	if !s.extent.ContainsCoord(c) {
		s.expand(c)
	}
	s.tiles[s.index(c)] = t
}

// Clear empties cell c. Cells outside the extent are already empty, so
// the call is ignored for them.
func (s *Store) Clear(c core.Coord) {
	if !s.extent.ContainsCoord(c) {
		return
	}
	s.tiles[s.index(c)] = nil
}

// expand reallocates the backing store so that it covers both the old
// extent and c, copying every cell to its new slot.
func (s *Store) expand(c core.Coord) {
	old := s.extent
	next := old.Include(c)
	if !next.ContainsRect(old) || !next.ContainsCoord(c) || next == old {
		panic(fmt.Sprintf("grid: expand %v from %+v produced %+v", c, old, next))
	}

	tiles := make([]core.Tile, next.W*next.H)
	dx, dy := old.X-next.X, old.Y-next.Y
	for x := 0; x < old.W; x++ {
		src := s.tiles[x*old.H : (x+1)*old.H]
		start := (x+dx)*next.H + dy
		copy(tiles[start:start+old.H], src)
	}

	s.tiles = tiles
	s.extent = next
	s.logger.Debug("grid resized", "cell", c, "corner", next.Corner(), "w", next.W, "h", next.H)
}

// Len returns the number of occupied cells.
func (s *Store) Len() int {
	n := 0
	for _, t := range s.tiles {
		if t != nil {
			n++
		}
	}
	return n
}

// Each calls fn for every occupied cell, ordered by row then column.
// fn must not mutate the store.
func (s *Store) Each(fn func(c core.Coord, t core.Tile)) {
	for y := s.extent.Y; y < s.extent.Bottom(); y++ {
		for x := s.extent.X; x < s.extent.Right(); x++ {
			c := core.C(x, y)
			if t := s.tiles[s.index(c)]; t != nil {
				fn(c, t)
			}
		}
	}
}

// Find returns the cell holding t.
// Returns false if t is not in the store.
func (s *Store) Find(t core.Tile) (core.Coord, bool) {
	var (
		found core.Coord
		ok    bool
	)
	s.Each(func(c core.Coord, other core.Tile) {
		if !ok && other == t {
			found, ok = c, true
		}
	})
	return found, ok
}
