// Package astar implements spatial A* over an 8-connected grid with a
// stationary goal and no dynamic obstacles: the simplest of the five
// solvers, and the only one with no time axis.
//
// With no time dimension, (x,y) is already a stable dense index, so the
// search runs on flat W*H-sized g/parent tables rather than a node arena.
package astar

import (
	"errors"
	"math"

	"github.com/katalvlaran/intercept/grid"
	"github.com/katalvlaran/intercept/search"
)

// ErrOutOfBounds indicates a start or goal cell lies outside the grid.
var ErrOutOfBounds = errors.New("astar: start/goal cell out of bounds")

// ErrBlocked indicates a start or goal cell is itself an obstacle.
var ErrBlocked = errors.New("astar: start/goal cell is an obstacle")

// sqrt2 is the diagonal step cost.
const sqrt2 = math.Sqrt2

// Result holds the outcome of a Run: the shortest distance (or -1 if
// unreachable) and the dense parent table a caller uses to reconstruct the
// path via Path.
type Result struct {
	Distance  float64
	parent    []int
	grid      *grid.Grid
	goalFound bool
	goal      grid.Cell
}

// Unreachable is the sentinel distance returned when no path exists.
const Unreachable = -1

// Run finds the shortest-cost path from (sx,sy) to (gx,gy) on g, using
// octile-distance-admissible 8-connected movement (orthogonal step 1,
// diagonal step sqrt(2)).
//
// Complexity: O(W*H*log(W*H)) time, O(W*H) memory.
func Run(g *grid.Grid, sx, sy, gx, gy int) (Result, error) {
	if !g.InBounds(sx, sy) || !g.InBounds(gx, gy) {
		return Result{}, ErrOutOfBounds
	}
	if g.IsObstacle(sx, sy) || g.IsObstacle(gx, gy) {
		return Result{}, ErrBlocked
	}

	n := g.Width * g.Height
	gTable := make([]float64, n)
	parent := make([]int, n)
	for i := range gTable {
		gTable[i] = math.Inf(1)
		parent[i] = -1
	}

	start := g.ID(sx, sy)
	goal := g.ID(gx, gy)
	gTable[start] = 0

	open := &search.OpenSet{}
	search.PushItem(open, start, octile(sx, sy, gx, gy), 0)

	for open.Len() > 0 {
		cur := search.PopItem(open)
		id := cur.ID
		if id == goal {
			return Result{Distance: gTable[goal], parent: parent, grid: g, goalFound: true, goal: grid.Cell{X: gx, Y: gy}}, nil
		}
		// Stale-pop skip: a later, cheaper push already improved this id.
		if cur.G > gTable[id] {
			continue
		}
		x, y := g.Coordinate(id)
		for _, nb := range g.Neighbours8(x, y) {
			w := 1.0
			if nb.X != x && nb.Y != y {
				w = sqrt2
			}
			nid := g.ID(nb.X, nb.Y)
			cand := gTable[id] + w
			if cand < gTable[nid] {
				gTable[nid] = cand
				parent[nid] = id
				search.PushItem(open, nid, cand+octile(nb.X, nb.Y, gx, gy), cand)
			}
		}
	}

	return Result{Distance: Unreachable, parent: parent, grid: g}, nil
}

// octile is the admissible, consistent heuristic for 8-connected movement.
func octile(x, y, gx, gy int) float64 {
	dx, dy := absInt(x-gx), absInt(y-gy)
	diag := dx
	if dy < diag {
		diag = dy
	}
	card := dx + dy - 2*diag
	return float64(card) + sqrt2*float64(diag)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Path reconstructs the start-to-goal cell sequence from a successful Run's
// parent table. Returns nil if the Run did not reach the goal.
func (r Result) Path() []grid.Cell {
	if !r.goalFound {
		return nil
	}
	var rev []grid.Cell
	id := r.grid.ID(r.goal.X, r.goal.Y)
	for id != -1 {
		x, y := r.grid.Coordinate(id)
		rev = append(rev, grid.Cell{X: x, Y: y})
		id = r.parent[id]
	}
	out := make([]grid.Cell, len(rev))
	for i, c := range rev {
		out[len(rev)-1-i] = c
	}
	return out
}
