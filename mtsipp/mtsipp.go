// Package mtsipp implements Moving-Target SIPP: the same (cell, safe-
// interval) search as package sipp, but the goal test matches a moving
// target's trajectory instead of a fixed cell, the heuristic is distance to
// the nearest future trajectory sample, and repeated invocations reuse one
// instance via a round-stamped dominance table instead of reallocating it.
//
// A moving target has no cell-centric critical time, so the first pop whose
// position matches the target is accepted immediately.
package mtsipp

import (
	"errors"

	"github.com/katalvlaran/intercept/constraint"
	"github.com/katalvlaran/intercept/grid"
	"github.com/katalvlaran/intercept/safeinterval"
	"github.com/katalvlaran/intercept/search"
	"github.com/katalvlaran/intercept/trajectory"
)

// ErrOutOfBounds indicates the start cell lies outside the grid.
var ErrOutOfBounds = errors.New("mtsipp: start cell out of bounds")

// ErrBlocked indicates the start cell is itself an obstacle.
var ErrBlocked = errors.New("mtsipp: start cell is an obstacle")

// Unreachable is the sentinel cost returned when no interception was found.
const Unreachable = -1

// gvar is a round-stamped dominance entry: g is only valid in the run that
// stamped it, so a stale entry from an earlier run reads as +Inf without
// needing to be cleared.
type gvar struct {
	g     int
	round int
}

// Solver is a reusable MT-SIPP instance: the Hamiltonian interceptor invokes
// Run on it repeatedly, once per DP transition, amortizing the dominance
// table across calls instead of reallocating it per call.
type Solver struct {
	grid  *grid.Grid
	cidx  *constraint.Index
	sidx  *safeinterval.Index
	gtab  map[stateKey]gvar
	round int
	arena *search.Arena[state]
}

type stateKey struct {
	cell int
	key  int
}

type state struct {
	x, y     int
	interval safeinterval.Interval
	g        int
}

// New builds a reusable MT-SIPP solver over the given grid, constraint
// index, and precomputed safe-interval index.
func New(g *grid.Grid, cidx *constraint.Index, sidx *safeinterval.Index) *Solver {
	return &Solver{
		grid:  g,
		cidx:  cidx,
		sidx:  sidx,
		gtab:  make(map[stateKey]gvar),
		arena: search.NewArena[state](256),
	}
}

// Result holds a completed Run's outcome.
type Result struct {
	Cost   int
	X, Y   int
	goalID int
	found  bool
	arena  *search.Arena[state]
}

// Run searches from (sx,sy) starting no earlier than t0 for an interception
// of tr: a pop whose (x,y) equals tr.At(arrival_time). The arena and
// dominance table are reset/re-stamped at the start of each call, so the
// Solver may be invoked repeatedly against different targets or start
// states.
func (s *Solver) Run(sx, sy, t0 int, tr *trajectory.Trajectory) (Result, error) {
	if !s.grid.InBounds(sx, sy) {
		return Result{}, ErrOutOfBounds
	}
	if s.grid.IsObstacle(sx, sy) {
		return Result{}, ErrBlocked
	}

	s.round++
	s.arena.Reset()

	open := &search.OpenSet{}
	startCell := s.grid.ID(sx, sy)
	for _, iv := range s.sidx.Intervals(startCell) {
		if iv.End < t0 {
			continue
		}
		arr := t0
		if iv.Start > arr {
			arr = iv.Start
		}
		id := s.arena.Add(state{x: sx, y: sy, interval: iv, g: arr}, -1)
		s.gtab[stateKey{startCell, iv.Key}] = gvar{g: arr, round: s.round}
		h := tr.MinManhattanToFuture(sx, sy, arr)
		search.PushItem(open, id, float64(arr+h), float64(arr))
	}

	for open.Len() > 0 {
		cur := search.PopItem(open)
		id := cur.ID
		n := s.arena.Node(id)

		if !s.isSafeAt(n.x, n.y, n.g) {
			continue
		}

		// The future-sample heuristic depends on t, so it is not
		// consistent: a cheaper entry for this (cell, interval) state may
		// have been recorded after this node was pushed. Accepting or
		// expanding the stale duplicate could return a later interception
		// than the true minimum, so it is dropped here.
		if gv, ok := s.gtab[stateKey{s.grid.ID(n.x, n.y), n.interval.Key}]; ok && gv.round == s.round && gv.g < n.g {
			continue
		}

		tx, ty := tr.At(n.g)
		if n.x == tx && n.y == ty {
			return Result{Cost: n.g, X: n.x, Y: n.y, goalID: id, found: true, arena: s.arena}, nil
		}

		nt := n.g + 1
		for _, d := range [5][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}, {0, 0}} {
			nx, ny := n.x+d[0], n.y+d[1]
			if !s.grid.InBounds(nx, ny) || s.grid.IsObstacle(nx, ny) {
				continue
			}
			ncell := s.grid.ID(nx, ny)
			for _, niv := range s.sidx.Intervals(ncell) {
				arr := nt
				if niv.Start > arr {
					arr = niv.Start
				}
				if n.interval.End < arr-1 {
					continue
				}
				if arr > niv.End || arr < niv.Start {
					continue
				}
				key := stateKey{ncell, niv.Key}
				if prev, ok := s.gtab[key]; ok && prev.round == s.round && prev.g <= arr {
					continue
				}
				s.gtab[key] = gvar{g: arr, round: s.round}
				nid := s.arena.Add(state{x: nx, y: ny, interval: niv, g: arr}, id)
				h := tr.MinManhattanToFuture(nx, ny, arr)
				search.PushItem(open, nid, float64(arr+h), float64(arr))
			}
		}
	}

	return Result{Cost: Unreachable}, nil
}

func (s *Solver) isSafeAt(x, y, t int) bool {
	if t < 0 || !s.grid.InBounds(x, y) || s.grid.IsObstacle(x, y) {
		return false
	}
	for _, iv := range s.cidx.Intervals(s.grid.ID(x, y)) {
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

// Path reconstructs the start-to-interception trajectory of the most recent
// successful Run call. Calling Run again invalidates any Result obtained
// from the previous call (the arena is reset on the next Run), so Path must
// be called before the Solver is reused.
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
