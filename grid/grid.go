package grid

// Grid is a static 2D boolean occupancy map. Width and Height define
// dimensions; obstacle[y][x] reports whether that cell is blocked.
// Complexity: O(W×H) time and memory to build; O(1) per query.
type Grid struct {
	Width, Height int
	obstacle      [][]bool
}

// New constructs a Grid from a non-empty, rectangular 2D slice of obstacle
// flags (obstacle[y][x] == true means blocked). It deep-copies the input so
// the Grid remains immutable regardless of later mutation by the caller.
// Returns ErrEmptyGrid if the input has no rows or columns, ErrNonRectangular
// if row lengths differ.
func New(obstacle [][]bool) (*Grid, error) {
	if len(obstacle) == 0 || len(obstacle[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	h, w := len(obstacle), len(obstacle[0])
	for _, row := range obstacle {
		if len(row) != w {
			return nil, ErrNonRectangular
		}
	}
	cp := make([][]bool, h)
	for y := 0; y < h; y++ {
		cp[y] = make([]bool, w)
		copy(cp[y], obstacle[y])
	}
	return &Grid{Width: w, Height: h, obstacle: cp}, nil
}

// InBounds reports whether (x,y) lies within [0,Width)×[0,Height).
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

// IsObstacle reports whether (x,y) is blocked. Out-of-range cells are treated
// as obstacles by callers that bounds-check first; IsObstacle itself panics
// on out-of-range input so bugs surface immediately rather than silently
// reporting "free". Callers in this module always guard with InBounds first.
func (g *Grid) IsObstacle(x, y int) bool {
	return g.obstacle[y][x]
}

// Neighbours4 returns the up-to-4 orthogonal in-bounds, non-obstacle cells
// adjacent to (x,y). Used by ST-A* and SIPP (plus the implicit wait move,
// which callers add themselves).
func (g *Grid) Neighbours4(x, y int) []Cell {
	out := make([]Cell, 0, 4)
	for _, d := range offsets4 {
		nx, ny := x+d[0], y+d[1]
		if g.InBounds(nx, ny) && !g.IsObstacle(nx, ny) {
			out = append(out, Cell{nx, ny})
		}
	}
	return out
}

// Neighbours8 returns the up-to-8 in-bounds, non-obstacle cells adjacent to
// (x,y), admitting a diagonal (x+dx,y+dy) only when both orthogonal
// neighbours (x+dx,y) and (x,y+dy) are also non-obstacle (no corner-cutting).
// Used only by A*.
func (g *Grid) Neighbours8(x, y int) []Cell {
	out := make([]Cell, 0, 8)
	openOrth := func(dx, dy int) bool {
		return g.InBounds(x+dx, y+dy) && !g.IsObstacle(x+dx, y+dy)
	}
	xplus, xminus := openOrth(1, 0), openOrth(-1, 0)
	yplus, yminus := openOrth(0, 1), openOrth(0, -1)
	if xplus {
		out = append(out, Cell{x + 1, y})
	}
	if xminus {
		out = append(out, Cell{x - 1, y})
	}
	if yplus {
		out = append(out, Cell{x, y + 1})
	}
	if yminus {
		out = append(out, Cell{x, y - 1})
	}
	if xplus && yplus && openOrth(1, 1) {
		out = append(out, Cell{x + 1, y + 1})
	}
	if xplus && yminus && openOrth(1, -1) {
		out = append(out, Cell{x + 1, y - 1})
	}
	if xminus && yplus && openOrth(-1, 1) {
		out = append(out, Cell{x - 1, y + 1})
	}
	if xminus && yminus && openOrth(-1, -1) {
		out = append(out, Cell{x - 1, y - 1})
	}
	return out
}
