package roll

import "github.com/vovakirdan/rolltiles/internal/core"

// Board is the occupancy view the controller needs. *grid.Store implements it.
type Board interface {
	Query(c core.Coord) core.Tile
	Insert(t core.Tile, c core.Coord)
	Clear(c core.Coord)
}

// Sides lists the pivot sides in scan order.
var Sides = [2]int{-1, 1}

// Route is a candidate quarter-turn roll from an origin cell to one of
// its orthogonal neighbours.
type Route struct {
	Dir         core.Dir   // Direction of travel
	Side        int        // Pivot side, -1 or +1
	Origin      core.Coord // Cell the tile leaves
	Destination core.Coord // Cell the tile lands in
	Pivot       core.Vec2  // Half-integer point the tile turns about
	Length      float64    // Signed route length in degrees, -90*Side
}

// NewRoute builds the route leaving origin in direction d on pivot side s.
// It does not check eligibility.
func NewRoute(origin core.Coord, d core.Dir, s int) Route {
	step := d.Delta()
	support := d.Prev().Delta().Scale(s)
	return Route{
		Dir:         d,
		Side:        s,
		Origin:      origin,
		Destination: origin.Add(step),
		Pivot:       origin.Vec().Add(step.Add(support).Vec().Scale(0.5)),
		Length:      float64(-90 * s),
	}
}

// Eligible reports whether the route has support and a clear path on b.
// Support is looked up on the trailing side (previous direction), the
// obstruction on the leading side (next direction).
func (r Route) Eligible(b Board) bool {
	step := r.Dir.Delta()
	support := r.Dir.Prev().Delta().Scale(r.Side)
	lead := r.Dir.Next().Delta().Scale(r.Side)
	o := r.Origin

	supported := b.Query(o.Add(support)) != nil ||
		b.Query(o.Add(step).Add(support)) != nil
	if !supported {
		return false
	}
	return b.Query(o.Add(step)) == nil &&
		b.Query(o.Add(lead)) == nil &&
		b.Query(o.Add(step).Add(lead)) == nil
}

// Score is the forward-progress heuristic of a drag delta along the route.
func (r Route) Score(delta core.Vec2) float64 {
	return r.Dir.Delta().Vec().Dot(delta)
}

// Eligible returns every eligible route from origin in scan order:
// direction outer loop, side inner loop, side -1 first.
func Eligible(b Board, origin core.Coord) []Route {
	var routes []Route
	for _, d := range core.Dirs {
		for _, s := range Sides {
			if r := NewRoute(origin, d, s); r.Eligible(b) {
				routes = append(routes, r)
			}
		}
	}
	return routes
}

// Choose picks the eligible route with the strictly greatest positive
// score for delta. Ties keep the first route in scan order.
// Returns false if no route scores above zero.
func Choose(b Board, origin core.Coord, delta core.Vec2) (Route, bool) {
	var (
		best   Route
		bestSc float64
		found  bool
	)
	for _, r := range Eligible(b, origin) {
		if sc := r.Score(delta); sc > bestSc {
			best, bestSc, found = r, sc, true
		}
	}
	return best, found
}
