package astar

import (
	"math"
	"testing"

	"github.com/katalvlaran/intercept/grid"
)

func emptyGrid(w, h int) *grid.Grid {
	rows := make([][]bool, h)
	for y := range rows {
		rows[y] = make([]bool, w)
	}
	g, err := grid.New(rows)
	if err != nil {
		panic(err)
	}
	return g
}

func TestS1EmptyGridDiagonal(t *testing.T) {
	g := emptyGrid(3, 3)
	res, err := Run(g, 0, 0, 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	want := 2 * math.Sqrt2
	if math.Abs(res.Distance-want) > 1e-9 {
		t.Fatalf("distance = %v, want %v", res.Distance, want)
	}
	path := res.Path()
	if len(path) == 0 || path[0] != (grid.Cell{X: 0, Y: 0}) || path[len(path)-1] != (grid.Cell{X: 2, Y: 2}) {
		t.Fatalf("path endpoints wrong: %v", path)
	}
}

func TestS2CornerCuttingBlocksPath(t *testing.T) {
	obstacle := [][]bool{
		{false, true},
		{true, false},
	}
	g, err := grid.New(obstacle)
	if err != nil {
		t.Fatal(err)
	}
	res, err := Run(g, 0, 0, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	if res.Distance != Unreachable {
		t.Fatalf("distance = %v, want Unreachable", res.Distance)
	}
}

func TestRunRejectsOutOfBounds(t *testing.T) {
	g := emptyGrid(2, 2)
	if _, err := Run(g, -1, 0, 1, 1); err != ErrOutOfBounds {
		t.Fatalf("want ErrOutOfBounds, got %v", err)
	}
}

func TestRunRejectsObstacleEndpoint(t *testing.T) {
	obstacle := [][]bool{{true, false}}
	g, _ := grid.New(obstacle)
	if _, err := Run(g, 0, 0, 1, 0); err != ErrBlocked {
		t.Fatalf("want ErrBlocked, got %v", err)
	}
}

func TestPathMonotonicSteps(t *testing.T) {
	g := emptyGrid(4, 4)
	res, err := Run(g, 0, 0, 3, 3)
	if err != nil {
		t.Fatal(err)
	}
	path := res.Path()
	for i := 1; i < len(path); i++ {
		dx := absInt(path[i].X - path[i-1].X)
		dy := absInt(path[i].Y - path[i-1].Y)
		if dx > 1 || dy > 1 || (dx == 0 && dy == 0) {
			t.Fatalf("step %d->%d is not a valid 8-neighbor move", i-1, i)
		}
	}
}
