// Package grid defines the static 2D occupancy map shared by every solver:
// bounds, obstacle lookup, and 4-/8-connected neighbor enumeration with the
// corner-cutting rule. A Grid is immutable once built.
package grid

import "errors"

// Sentinel errors for grid construction and queries.
var (
	// ErrEmptyGrid indicates the input grid has no rows or no columns.
	ErrEmptyGrid = errors.New("grid: input must have at least one row and one column")
	// ErrNonRectangular indicates rows of differing lengths.
	ErrNonRectangular = errors.New("grid: all rows must have the same length")
	// ErrOutOfBounds indicates a queried cell lies outside [0,W)×[0,H).
	ErrOutOfBounds = errors.New("grid: cell out of bounds")
)

// Cell is an integer grid coordinate.
type Cell struct {
	X, Y int
}

// ID returns the row-major cell id y*W + x used by ConstraintIndex,
// SafeIntervalIndex, and A*'s dense g-table/parent-table.
func (g *Grid) ID(x, y int) int { return y*g.Width + x }

// Coordinate converts a row-major id back to (x, y).
func (g *Grid) Coordinate(id int) (x, y int) {
	return id % g.Width, id / g.Width
}

// offsets4 are the four orthogonal step directions.
var offsets4 = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
