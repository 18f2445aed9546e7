// Package safeinterval builds, per cell, the complement of its unsafe
// intervals within [0, TMax-1]: the compressed time axis SIPP and MT-SIPP
// search over instead of per-timestep expansion.
//
// Every interval carries a key, stable for the lifetime of the Index, so
// (cell, key) can serve as a dominance-table entry across repeated runs.
package safeinterval

import (
	"errors"
	"math"
	"sort"

	"github.com/katalvlaran/intercept/constraint"
	"github.com/katalvlaran/intercept/grid"
)

// ErrBadTMax indicates TMax <= 0.
var ErrBadTMax = errors.New("safeinterval: TMax must be positive")

// MaxHorizon is a tMax value that effectively acts as an unbounded time
// horizon while leaving headroom for t+1 arithmetic.
const MaxHorizon = math.MaxInt / 2

// Interval is a safe (collision-free) time window [Start, End] for a single
// cell, tagged with a Key that is stable for the lifetime of the Index:
// construction order within the cell (0, 1, 2, ...).
type Interval struct {
	Start, End int
	Key        int
}

// Index maps each non-obstacle cell id to its ordered, disjoint list of safe
// intervals. Index is built once per search problem by the caller, via Build,
// and passed to sipp.Run or mtsipp.New; neither solver builds an Index of its
// own. It persists across repeated runs of an mtsipp.Solver.
type Index struct {
	tMax   int
	byCell map[int][]Interval
}

// TMax returns the time horizon used to build this Index; safe intervals
// never extend past TMax-1.
func (idx *Index) TMax() int { return idx.tMax }

// Build constructs the safe-interval index for every non-obstacle cell of g,
// given the unsafe intervals in cidx, bounded by [0, tMax-1].
//
// Sweep, per cell: sort the cell's unsafe intervals by TL; let last = -1; for
// each unsafe [tl,tr] in order, if tl > last+1 emit a safe [last+1, tl-1]
// (its end clipped to tMax-1), then last = max(last, tr); the sweep stops
// once last reaches tMax-1. After the sweep, if last < tMax-1 emit a
// trailing safe [last+1, tMax-1]; if the cell had no unsafe intervals at all,
// emit a single safe [0, tMax-1].
func Build(g *grid.Grid, cidx *constraint.Index, tMax int) (*Index, error) {
	if tMax <= 0 {
		return nil, ErrBadTMax
	}
	idx := &Index{tMax: tMax, byCell: make(map[int][]Interval)}
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if g.IsObstacle(x, y) {
				continue
			}
			cellID := g.ID(x, y)
			idx.byCell[cellID] = sweepCell(cidx.Intervals(cellID), tMax)
		}
	}
	return idx, nil
}

func sweepCell(unsafe []constraint.Interval, tMax int) []Interval {
	if len(unsafe) == 0 {
		return []Interval{{Start: 0, End: tMax - 1, Key: 0}}
	}
	sorted := make([]constraint.Interval, len(unsafe))
	copy(sorted, unsafe)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].TL < sorted[j].TL })

	var out []Interval
	last := -1
	for _, iv := range sorted {
		if last >= tMax-1 {
			break
		}
		if iv.TL > last+1 {
			end := iv.TL - 1
			if end > tMax-1 {
				end = tMax - 1
			}
			out = append(out, Interval{Start: last + 1, End: end, Key: len(out)})
		}
		if iv.TR > last {
			last = iv.TR
		}
	}
	if last < tMax-1 {
		out = append(out, Interval{Start: last + 1, End: tMax - 1, Key: len(out)})
	}
	return out
}

// Intervals returns the safe intervals for a cell id, in Start-ascending
// order. Returns nil for obstacle cells or cells outside the grid used to
// build the Index.
func (idx *Index) Intervals(cellID int) []Interval {
	return idx.byCell[cellID]
}

// ContainsAt reports whether t falls within one of the cell's safe
// intervals, and if so returns it. ok is false for obstacle cells or for t
// landing in a gap (an unsafe window).
func (idx *Index) ContainsAt(cellID int, t int) (Interval, bool) {
	for _, iv := range idx.byCell[cellID] {
		if iv.Start <= t && t <= iv.End {
			return iv, true
		}
	}
	return Interval{}, false
}
