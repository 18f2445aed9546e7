// Package interceptor sequences MT-SIPP sub-queries with a bitmask dynamic
// program (Held-Karp style) to find the optimal order in which a single
// agent should visit N moving targets, minimizing the time of the last
// interception.
//
// Unlike classic Held-Karp, the transition cost between two targets is not a
// static matrix entry: it depends on the agent's position and time after the
// previous interception, so every DP transition invokes the shared MT-SIPP
// solver. The round-stamped dominance table inside that solver is what makes
// the O(2^N * N^2) invocations affordable.
//
// Complexity: O(2^N * N^2) MT-SIPP invocations, O(2^N * N) table memory.
package interceptor

import (
	"math/bits"

	"github.com/katalvlaran/intercept/constraint"
	"github.com/katalvlaran/intercept/grid"
	"github.com/katalvlaran/intercept/mtsipp"
	"github.com/katalvlaran/intercept/safeinterval"
	"github.com/katalvlaran/intercept/trajectory"
)

// unreachable stands in for +Inf in the DP time table.
const unreachable = 1 << 30

// dpEntry is one (mask, last) DP table cell.
type dpEntry struct {
	time     int
	x, y     int
	prevLast int
	prevMask int
}

// Event records one successful interception in visitation order.
type Event struct {
	Target int
	X, Y   int
	Time   int
}

// PathSample is a single (x, y, t) point of the concatenated trajectory.
type PathSample struct {
	X, Y, T int
}

// Result is the outcome of a full interception run.
type Result struct {
	Success   bool
	TotalTime int
	Order     []int
	Events    []Event
	FullPath  []PathSample
}

// Run finds the optimal visitation order of the targets in trs (by index)
// starting from (sx,sy,t0) on g under cidx, and reconstructs the
// concatenated trajectory.
//
// N=0 is trivially successful at t0 with a single-sample path at the start
// position. Any MT-SIPP failure during the DP's base case or transitions
// simply prunes that entry; a failure during path reconstruction (for a
// transition the DP itself found feasible) is a fatal implementation
// invariant violation and causes Run to return success=false.
func Run(g *grid.Grid, cidx *constraint.Index, sidx *safeinterval.Index, sx, sy, t0 int, trs []*trajectory.Trajectory) Result {
	n := len(trs)
	if n == 0 {
		return Result{
			Success:   true,
			TotalTime: t0,
			FullPath:  []PathSample{{X: sx, Y: sy, T: t0}},
		}
	}

	solver := mtsipp.New(g, cidx, sidx)

	totalMasks := 1 << uint(n)
	dp := make([]dpEntry, totalMasks*n)
	for i := range dp {
		dp[i] = dpEntry{time: unreachable, prevLast: -1, prevMask: -1}
	}

	// Base case: from the start, intercept each target directly.
	for i := 0; i < n; i++ {
		res, err := solver.Run(sx, sy, t0, trs[i])
		if err != nil || res.Cost == mtsipp.Unreachable {
			continue
		}
		mask := 1 << uint(i)
		dp[mask*n+i] = dpEntry{time: res.Cost, x: res.X, y: res.Y, prevLast: -1, prevMask: 0}
	}

	masksBySize := make([][]int, n+1)
	for mask := 1; mask < totalMasks; mask++ {
		ps := bits.OnesCount(uint(mask))
		masksBySize[ps] = append(masksBySize[ps], mask)
	}

	// Transition: grow the visited set one target at a time, in increasing
	// popcount order so every predecessor state is already final.
	for size := 1; size < n; size++ {
		for _, mask := range masksBySize[size] {
			for last := 0; last < n; last++ {
				if mask&(1<<uint(last)) == 0 {
					continue
				}
				entry := dp[mask*n+last]
				if entry.time >= unreachable {
					continue
				}
				for next := 0; next < n; next++ {
					if mask&(1<<uint(next)) != 0 {
						continue
					}
					res, err := solver.Run(entry.x, entry.y, entry.time, trs[next])
					if err != nil || res.Cost == mtsipp.Unreachable {
						continue
					}
					nmask := mask | (1 << uint(next))
					if res.Cost < dp[nmask*n+next].time {
						dp[nmask*n+next] = dpEntry{
							time:     res.Cost,
							x:        res.X,
							y:        res.Y,
							prevLast: last,
							prevMask: mask,
						}
					}
				}
			}
		}
	}

	full := totalMasks - 1
	bestTime := unreachable
	bestLast := -1
	for i := 0; i < n; i++ {
		if dp[full*n+i].time < bestTime {
			bestTime = dp[full*n+i].time
			bestLast = i
		}
	}
	if bestLast == -1 {
		return Result{Success: false}
	}

	// Walk (prevLast, prevMask) backward to recover visitation order.
	order := make([]int, 0, n)
	mask, last := full, bestLast
	for last != -1 {
		order = append(order, last)
		entry := dp[mask*n+last]
		mask, last = entry.prevMask, entry.prevLast
	}
	for i, j := 0, len(order)-1; i < j; i, j = i+1, j-1 {
		order[i], order[j] = order[j], order[i]
	}

	return reconstruct(solver, sx, sy, t0, trs, order, bestTime)
}

// reconstruct re-runs MT-SIPP along the chosen order to emit the concrete
// trajectory, one segment per interception, concatenated tail-to-head.
func reconstruct(solver *mtsipp.Solver, sx, sy, t0 int, trs []*trajectory.Trajectory, order []int, totalTime int) Result {
	events := make([]Event, 0, len(order))
	var full []PathSample
	cx, cy, ct := sx, sy, t0
	full = append(full, PathSample{X: cx, Y: cy, T: ct})

	for i := 0; i < len(order); i++ {
		target := order[i]
		res, err := solver.Run(cx, cy, ct, trs[target])
		if err != nil || res.Cost == mtsipp.Unreachable {
			return Result{Success: false}
		}
		seg := res.Path()
		full = appendSegment(full, toSamples(seg))
		events = append(events, Event{Target: target, X: res.X, Y: res.Y, Time: res.Cost})
		cx, cy, ct = res.X, res.Y, res.Cost
	}

	return Result{
		Success:   true,
		TotalTime: totalTime,
		Order:     order,
		Events:    events,
		FullPath:  full,
	}
}

func toSamples(in []mtsipp.PathSample) []PathSample {
	out := make([]PathSample, len(in))
	for i, s := range in {
		out[i] = PathSample{X: s.X, Y: s.Y, T: s.T}
	}
	return out
}

// appendSegment concatenates seg onto running: if the tail of running
// exactly equals seg's head, drop the duplicate head;
// otherwise append seg in full (a gap between tail.T and head.T represents
// an implicit wait, which internal/planio fills in when writing plan files).
func appendSegment(running, seg []PathSample) []PathSample {
	if len(seg) == 0 {
		return running
	}
	if len(running) > 0 && running[len(running)-1] == seg[0] {
		return append(running, seg[1:]...)
	}
	return append(running, seg...)
}
