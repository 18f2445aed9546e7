// Package stastar implements Space-Time A*: search over (x, y, t) states on
// a 4-connected grid (plus a wait-in-place move) honoring per-cell unsafe
// time intervals, with a critical-time acceptance rule on the goal cell.
//
// Complexity: O(W*H*T log(W*H*T)) time and O(W*H*T) memory, where T is the
// search horizon (see WithHorizon).
package stastar

import (
	"errors"

	"github.com/katalvlaran/intercept/constraint"
	"github.com/katalvlaran/intercept/grid"
	"github.com/katalvlaran/intercept/search"
)

// ErrOutOfBounds indicates a start or goal cell lies outside the grid.
var ErrOutOfBounds = errors.New("stastar: start/goal cell out of bounds")

// ErrBlocked indicates a start or goal cell is itself an obstacle.
var ErrBlocked = errors.New("stastar: start/goal cell is an obstacle")

// ErrBadHorizon indicates WithHorizon was given a non-positive value.
var ErrBadHorizon = errors.New("stastar: horizon must be positive")

// Unreachable is the sentinel cost returned when no acceptable arrival was
// ever found.
const Unreachable = -1

// Options configures a Run.
//
// Horizon – latest time the search may expand to. 0 (the default) derives
// the bound from the inputs: the latest unsafe-interval end anywhere on the
// map plus W*H. Past the last unsafe interval the constraint landscape is
// static, so an optimal path needs at most W*H further steps; states beyond
// that cannot improve the result, and without the bound an unreachable goal
// would let wait moves generate (x,y,t+1) states forever.
type Options struct {
	Horizon int
}

// Option is a functional option for configuring Run.
type Option func(*Options)

// WithHorizon caps the search at an explicit latest time. Must be positive;
// non-positive values panic with ErrBadHorizon.
func WithHorizon(h int) Option {
	return func(o *Options) {
		if h <= 0 {
			panic(ErrBadHorizon.Error())
		}
		o.Horizon = h
	}
}

// DefaultOptions returns the defaults Run starts from before applying
// functional options: Horizon 0, meaning derive the bound from the inputs.
func DefaultOptions() Options {
	return Options{Horizon: 0}
}

// state is a single (x,y,t) search node.
type state struct {
	x, y, t int
	g       int
}

// Result holds a completed run's outcome, including enough state to
// reconstruct the path.
type Result struct {
	Cost int

	grid   *grid.Grid
	cidx   *constraint.Index
	arena  *search.Arena[state]
	goalID int
	found  bool
}

// Run searches from (sx,sy,t=0) to (gx,gy) on g, honoring cidx's unsafe
// intervals. A state (x,y,t) is safe if in-bounds, non-obstacle, and no
// unsafe interval at (x,y) contains t.
//
// Goal acceptance: let tau = cidx.CriticalTime(goal cell) (0 if
// unconstrained). Popping the goal records it as the best-so-far but the
// search continues until either a goal pop has g > tau (accept and
// terminate) or the open set empties (return the last recorded best, or
// Unreachable if none was ever recorded).
func Run(g *grid.Grid, cidx *constraint.Index, sx, sy, gx, gy int, opts ...Option) (Result, error) {
	if !g.InBounds(sx, sy) || !g.InBounds(gx, gy) {
		return Result{}, ErrOutOfBounds
	}
	if g.IsObstacle(sx, sy) || g.IsObstacle(gx, gy) {
		return Result{}, ErrBlocked
	}

	options := DefaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	horizon := options.Horizon
	if horizon == 0 {
		horizon = cidx.MaxCriticalTime() + g.Width*g.Height
	}

	goalCell := g.ID(gx, gy)
	tau := cidx.CriticalTime(goalCell)

	// The agent occupies the start cell at t=0; an unsafe interval covering
	// that instant makes the whole problem infeasible. Successor states are
	// safety-checked at push time, so the start is the one state that needs
	// an explicit guard.
	if !isSafe(cidx, g, sx, sy, 0) {
		return Result{Cost: Unreachable, grid: g, cidx: cidx}, nil
	}

	arena := search.NewArena[state](256)
	frontier := make(map[[3]int]bool)

	startID := arena.Add(state{x: sx, y: sy, t: 0, g: 0}, -1)
	frontier[[3]int{sx, sy, 0}] = true

	open := &search.OpenSet{}
	search.PushItem(open, startID, manhattan(sx, sy, gx, gy), 0)

	bestG := -1
	bestID := -1

	for open.Len() > 0 {
		cur := search.PopItem(open)
		id := cur.ID
		s := arena.Node(id)

		if s.x == gx && s.y == gy {
			if s.g > tau {
				return Result{Cost: s.g, grid: g, cidx: cidx, arena: arena, goalID: id, found: true}, nil
			}
			if bestID == -1 || s.g > bestG {
				bestG, bestID = s.g, id
			}
			continue
		}

		nt := s.t + 1
		if nt > horizon {
			continue
		}
		for _, d := range [5][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}, {0, 0}} {
			nx, ny := s.x+d[0], s.y+d[1]
			if !g.InBounds(nx, ny) || g.IsObstacle(nx, ny) {
				continue
			}
			if !isSafe(cidx, g, nx, ny, nt) {
				continue
			}
			key := [3]int{nx, ny, nt}
			if frontier[key] {
				continue
			}
			frontier[key] = true
			nid := arena.Add(state{x: nx, y: ny, t: nt, g: s.g + 1}, id)
			search.PushItem(open, nid, float64(s.g+1)+manhattan(nx, ny, gx, gy), float64(s.g+1))
		}
	}

	if bestID == -1 {
		return Result{Cost: Unreachable, grid: g, cidx: cidx, arena: arena}, nil
	}
	return Result{Cost: bestG, grid: g, cidx: cidx, arena: arena, goalID: bestID, found: true}, nil
}

func manhattan(x, y, gx, gy int) float64 {
	return float64(absInt(x-gx) + absInt(y-gy))
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func isSafe(cidx *constraint.Index, g *grid.Grid, x, y, t int) bool {
	if t < 0 || !g.InBounds(x, y) || g.IsObstacle(x, y) {
		return false
	}
	for _, iv := range cidx.Intervals(g.ID(x, y)) {
		if iv.IsIn(t) {
			return false
		}
	}
	return true
}

// PathSample is a single (x, y, t) point of a reconstructed trajectory.
type PathSample struct {
	X, Y, T int
}

// Path reconstructs the start-to-goal trajectory from a successful Run,
// walking the arena's parent links backward. Returns nil if Run did not
// find an acceptable arrival.
func (r Result) Path() []PathSample {
	if !r.found {
		return nil
	}
	var rev []PathSample
	id := r.goalID
	for id != -1 {
		s := r.arena.Node(id)
		rev = append(rev, PathSample{X: s.x, Y: s.y, T: s.t})
		id = r.arena.Parent(id)
	}
	out := make([]PathSample, len(rev))
	for i, s := range rev {
		out[len(rev)-1-i] = s
	}
	return out
}

// Validate reports whether every sample of path is safe under cidx, and
// every consecutive pair is a valid 4-move-or-wait with strictly increasing
// time.
func Validate(g *grid.Grid, cidx *constraint.Index, path []PathSample) bool {
	for i, s := range path {
		if !isSafe(cidx, g, s.X, s.Y, s.T) {
			return false
		}
		if i == 0 {
			continue
		}
		prev := path[i-1]
		if s.T-prev.T < 1 {
			return false
		}
		if absInt(s.X-prev.X)+absInt(s.Y-prev.Y) > 1 {
			return false
		}
	}
	return true
}
