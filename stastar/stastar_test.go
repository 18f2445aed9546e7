package stastar

import (
	"testing"

	"github.com/katalvlaran/intercept/constraint"
	"github.com/katalvlaran/intercept/grid"
)

func corridor(n int) *grid.Grid {
	g, err := grid.New([][]bool{make([]bool, n)})
	if err != nil {
		panic(err)
	}
	return g
}

func TestNoConstraintsShortestIsManhattan(t *testing.T) {
	g := corridor(5)
	cidx, _ := constraint.NewIndex(nil)
	res, err := Run(g, cidx, 0, 0, 4, 0)
	if err != nil {
		t.Fatal(err)
	}
	if res.Cost != 4 {
		t.Fatalf("cost = %d, want 4", res.Cost)
	}
	path := res.Path()
	if !Validate(g, cidx, path) {
		t.Fatalf("path failed validation: %+v", path)
	}
}

func TestS5CriticalTimeOnGoal(t *testing.T) {
	g, err := grid.New([][]bool{{false, false}})
	if err != nil {
		t.Fatal(err)
	}
	cidx, err := constraint.NewIndex(map[int][]constraint.Interval{
		g.ID(1, 0): {{TL: 0, TR: 3}},
	})
	if err != nil {
		t.Fatal(err)
	}
	res, err := Run(g, cidx, 0, 0, 1, 0)
	if err != nil {
		t.Fatal(err)
	}
	if res.Cost != 4 {
		t.Fatalf("cost = %d, want 4 (arrive strictly after tr=3)", res.Cost)
	}
}

func TestUnreachableGoalBehindWall(t *testing.T) {
	g, err := grid.New([][]bool{{false, true, false}})
	if err != nil {
		t.Fatal(err)
	}
	cidx, _ := constraint.NewIndex(nil)
	res, err := Run(g, cidx, 0, 0, 2, 0)
	if err != nil {
		t.Fatal(err)
	}
	if res.Cost != Unreachable {
		t.Fatalf("cost = %d, want Unreachable", res.Cost)
	}
}

func TestUnsafeStartCellIsUnreachable(t *testing.T) {
	g := corridor(3)
	cidx, err := constraint.NewIndex(map[int][]constraint.Interval{
		g.ID(0, 0): {{TL: 0, TR: 2}},
	})
	if err != nil {
		t.Fatal(err)
	}
	res, err := Run(g, cidx, 0, 0, 2, 0)
	if err != nil {
		t.Fatal(err)
	}
	if res.Cost != Unreachable {
		t.Fatalf("cost = %d, want Unreachable (start cell unsafe at t=0)", res.Cost)
	}
	if res.Path() != nil {
		t.Fatalf("Path() = %+v, want nil", res.Path())
	}
}

func TestExplicitHorizonTooShortIsUnreachable(t *testing.T) {
	g := corridor(5)
	cidx, _ := constraint.NewIndex(nil)
	res, err := Run(g, cidx, 0, 0, 4, 0, WithHorizon(3))
	if err != nil {
		t.Fatal(err)
	}
	if res.Cost != Unreachable {
		t.Fatalf("cost = %d, want Unreachable under a 3-step horizon", res.Cost)
	}
}

func TestWithHorizonRejectsNonPositive(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("WithHorizon(0) must panic")
		}
	}()
	WithHorizon(0)(&Options{})
}

func TestRunRejectsOutOfBounds(t *testing.T) {
	g := corridor(3)
	cidx, _ := constraint.NewIndex(nil)
	if _, err := Run(g, cidx, -1, 0, 1, 0); err != ErrOutOfBounds {
		t.Fatalf("want ErrOutOfBounds, got %v", err)
	}
}
