package mtsipp

import (
	"testing"

	"github.com/katalvlaran/intercept/constraint"
	"github.com/katalvlaran/intercept/grid"
	"github.com/katalvlaran/intercept/safeinterval"
	"github.com/katalvlaran/intercept/trajectory"
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

func TestS6StationaryThenMovingTarget(t *testing.T) {
	g := emptyGrid(5, 1)
	cidx, _ := constraint.NewIndex(nil)
	sidx, err := safeinterval.Build(g, cidx, 30)
	if err != nil {
		t.Fatal(err)
	}
	tr, err := trajectory.New([]trajectory.Sample{
		{X: 3, Y: 0, T: 0}, {X: 3, Y: 0, T: 5}, {X: 2, Y: 0, T: 6},
	})
	if err != nil {
		t.Fatal(err)
	}
	s := New(g, cidx, sidx)
	res, err := s.Run(0, 0, 0, tr)
	if err != nil {
		t.Fatal(err)
	}
	if res.Cost != 3 {
		t.Fatalf("cost = %d, want 3", res.Cost)
	}
	if res.X != 3 || res.Y != 0 {
		t.Fatalf("interception at (%d,%d), want (3,0)", res.X, res.Y)
	}
}

func TestRoundInvalidationAcrossRepeatedRuns(t *testing.T) {
	g := emptyGrid(3, 1)
	cidx, _ := constraint.NewIndex(nil)
	sidx, err := safeinterval.Build(g, cidx, 10)
	if err != nil {
		t.Fatal(err)
	}
	tr, _ := trajectory.New([]trajectory.Sample{{X: 2, Y: 0, T: 0}})
	s := New(g, cidx, sidx)
	first, err := s.Run(0, 0, 0, tr)
	if err != nil {
		t.Fatal(err)
	}
	second, err := s.Run(0, 0, 0, tr)
	if err != nil {
		t.Fatal(err)
	}
	if first.Cost != second.Cost {
		t.Fatalf("repeated identical runs diverged: %d vs %d", first.Cost, second.Cost)
	}
}

func TestUnreachableTargetBehindWall(t *testing.T) {
	g, err := grid.New([][]bool{{false, true, false}})
	if err != nil {
		t.Fatal(err)
	}
	cidx, _ := constraint.NewIndex(nil)
	sidx, err := safeinterval.Build(g, cidx, 10)
	if err != nil {
		t.Fatal(err)
	}
	tr, _ := trajectory.New([]trajectory.Sample{{X: 2, Y: 0, T: 0}})
	s := New(g, cidx, sidx)
	res, err := s.Run(0, 0, 0, tr)
	if err != nil {
		t.Fatal(err)
	}
	if res.Cost != Unreachable {
		t.Fatalf("cost = %d, want Unreachable", res.Cost)
	}
}
