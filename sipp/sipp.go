// Package sipp implements Safe Interval Path Planning: search over
// (cell, safe-interval) states rather than per-timestep (x,y,t) states,
// using the same critical-time goal-acceptance rule as ST-A*.
//
// Compressing the time axis into safe intervals keeps the state space
// finite even when waiting is unbounded: a wait inside an interval never
// creates a new state, only a later arrival into the same one, which the
// dominance table rejects.
package sipp

import (
	"errors"

	"github.com/katalvlaran/intercept/constraint"
	"github.com/katalvlaran/intercept/grid"
	"github.com/katalvlaran/intercept/safeinterval"
	"github.com/katalvlaran/intercept/search"
)

// ErrOutOfBounds indicates a start or goal cell lies outside the grid.
var ErrOutOfBounds = errors.New("sipp: start/goal cell out of bounds")

// ErrBlocked indicates a start or goal cell is itself an obstacle.
var ErrBlocked = errors.New("sipp: start/goal cell is an obstacle")

// Unreachable is the sentinel cost returned when no acceptable arrival was
// ever found.
const Unreachable = -1

// state is a single (cell, safe-interval) search node; the arrival time
// equals g by construction, so only g is stored.
type state struct {
	x, y     int
	interval safeinterval.Interval
	g        int
}

// stateKey is the closed-set / dominance key: (cell id, interval key).
type stateKey struct {
	cell int
	key  int
}

// Result holds a completed run's outcome.
type Result struct {
	Cost int

	grid   *grid.Grid
	cidx   *constraint.Index
	arena  *search.Arena[state]
	goalID int
	found  bool
}

// Run searches from (sx,sy) to (gx,gy) on g, using sidx's precomputed safe
// intervals and cidx for the goal cell's critical time.
func Run(g *grid.Grid, cidx *constraint.Index, sidx *safeinterval.Index, sx, sy, gx, gy int) (Result, error) {
	if !g.InBounds(sx, sy) || !g.InBounds(gx, gy) {
		return Result{}, ErrOutOfBounds
	}
	if g.IsObstacle(sx, sy) || g.IsObstacle(gx, gy) {
		return Result{}, ErrBlocked
	}

	goalCell := g.ID(gx, gy)
	tau := cidx.CriticalTime(goalCell)

	arena := search.NewArena[state](256)
	stateG := make(map[stateKey]int)

	open := &search.OpenSet{}
	startCell := g.ID(sx, sy)
	for _, iv := range sidx.Intervals(startCell) {
		id := arena.Add(state{x: sx, y: sy, interval: iv, g: iv.Start}, -1)
		stateG[stateKey{startCell, iv.Key}] = iv.Start
		search.PushItem(open, id, float64(iv.Start)+manhattan(sx, sy, gx, gy), float64(iv.Start))
	}

	bestG := -1
	bestID := -1

	for open.Len() > 0 {
		cur := search.PopItem(open)
		id := cur.ID
		s := arena.Node(id)

		if !isSafeAt(cidx, g, s.x, s.y, s.g) {
			continue // arrival time falls in an unsafe window of this cell
		}

		if s.x == gx && s.y == gy {
			if s.g > tau {
				return Result{Cost: s.g, grid: g, cidx: cidx, arena: arena, goalID: id, found: true}, nil
			}
			if bestID == -1 || s.g > bestG {
				bestG, bestID = s.g, id
			}
			continue
		}

		nt := s.g + 1
		for _, d := range [5][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}, {0, 0}} {
			nx, ny := s.x+d[0], s.y+d[1]
			if !g.InBounds(nx, ny) || g.IsObstacle(nx, ny) {
				continue
			}
			ncell := g.ID(nx, ny)
			nIntervals := sidx.Intervals(ncell)
			if len(nIntervals) == 0 {
				continue
			}
			for _, niv := range nIntervals {
				arr := nt
				if niv.Start > arr {
					arr = niv.Start
				}
				// Departure feasibility: the agent must still be present in
				// the predecessor's interval at arr-1.
				if s.interval.End < arr-1 {
					continue
				}
				// Interval fit.
				if arr > niv.End || arr < niv.Start {
					continue
				}
				key := stateKey{ncell, niv.Key}
				if prev, ok := stateG[key]; ok && prev <= arr {
					continue
				}
				stateG[key] = arr
				nid := arena.Add(state{x: nx, y: ny, interval: niv, g: arr}, id)
				search.PushItem(open, nid, float64(arr)+manhattan(nx, ny, gx, gy), float64(arr))
			}
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

func isSafeAt(cidx *constraint.Index, g *grid.Grid, x, y, t int) bool {
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

// Path reconstructs the start-to-goal trajectory from a successful Run. Each
// arena node only records one (x,y,t) sample per SIPP hop, which may skip
// several unit-time steps (a wait inside a safe interval is represented
// implicitly by the jump in t between consecutive samples); callers that
// need every integer timestep should fill the gaps themselves (see
// internal/planio).
func (r Result) Path() []PathSample {
	if !r.found {
		return nil
	}
	var rev []PathSample
	id := r.goalID
	for id != -1 {
		s := r.arena.Node(id)
		rev = append(rev, PathSample{X: s.x, Y: s.y, T: s.g})
		id = r.arena.Parent(id)
	}
	out := make([]PathSample, len(rev))
	for i, s := range rev {
		out[len(rev)-1-i] = s
	}
	return out
}

// Validate reports whether every sample of path is safe under cidx, and
// every consecutive pair has strictly increasing time and at most a unit
// Manhattan step (the implicit waits it may have skipped are not expanded
// here).
func Validate(g *grid.Grid, cidx *constraint.Index, path []PathSample) bool {
	for i, s := range path {
		if !isSafeAt(cidx, g, s.X, s.Y, s.T) {
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
