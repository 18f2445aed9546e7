package sipp

import (
	"testing"

	"github.com/katalvlaran/intercept/constraint"
	"github.com/katalvlaran/intercept/grid"
	"github.com/katalvlaran/intercept/safeinterval"
	"github.com/katalvlaran/intercept/stastar"
)

func corridor(n int) *grid.Grid {
	g, err := grid.New([][]bool{make([]bool, n)})
	if err != nil {
		panic(err)
	}
	return g
}

func TestS3NoConstraints(t *testing.T) {
	g := corridor(5)
	cidx, _ := constraint.NewIndex(nil)
	sidx, err := safeinterval.Build(g, cidx, 20)
	if err != nil {
		t.Fatal(err)
	}
	res, err := Run(g, cidx, sidx, 0, 0, 4, 0)
	if err != nil {
		t.Fatal(err)
	}
	if res.Cost != 4 {
		t.Fatalf("cost = %d, want 4", res.Cost)
	}
	want := []PathSample{{0, 0, 0}, {1, 0, 1}, {2, 0, 2}, {3, 0, 3}, {4, 0, 4}}
	path := res.Path()
	if len(path) != len(want) {
		t.Fatalf("path = %+v, want %+v", path, want)
	}
	for i := range want {
		if path[i] != want[i] {
			t.Fatalf("path[%d] = %+v, want %+v", i, path[i], want[i])
		}
	}
}

func TestS4BlockingInterval(t *testing.T) {
	g := corridor(5)
	cidx, err := constraint.NewIndex(map[int][]constraint.Interval{
		g.ID(2, 0): {{TL: 2, TR: 5}},
	})
	if err != nil {
		t.Fatal(err)
	}
	sidx, err := safeinterval.Build(g, cidx, 20)
	if err != nil {
		t.Fatal(err)
	}
	res, err := Run(g, cidx, sidx, 0, 0, 4, 0)
	if err != nil {
		t.Fatal(err)
	}
	if res.Cost != 8 {
		t.Fatalf("cost = %d, want 8", res.Cost)
	}
	if !Validate(g, cidx, res.Path()) {
		t.Fatalf("path failed validation: %+v", res.Path())
	}
}

func TestUnreachableBehindPermanentWall(t *testing.T) {
	g, err := grid.New([][]bool{{false, true, false}})
	if err != nil {
		t.Fatal(err)
	}
	cidx, _ := constraint.NewIndex(nil)
	sidx, err := safeinterval.Build(g, cidx, 20)
	if err != nil {
		t.Fatal(err)
	}
	res, err := Run(g, cidx, sidx, 0, 0, 2, 0)
	if err != nil {
		t.Fatal(err)
	}
	if res.Cost != Unreachable {
		t.Fatalf("cost = %d, want Unreachable", res.Cost)
	}
}

func TestOptimalityMatchesSTAStar(t *testing.T) {
	g := corridor(6)
	cidx, err := constraint.NewIndex(map[int][]constraint.Interval{
		g.ID(3, 0): {{TL: 0, TR: 2}},
	})
	if err != nil {
		t.Fatal(err)
	}
	sidx, err := safeinterval.Build(g, cidx, 30)
	if err != nil {
		t.Fatal(err)
	}
	res, err := Run(g, cidx, sidx, 0, 0, 5, 0)
	if err != nil {
		t.Fatal(err)
	}
	if res.Cost != 5 {
		t.Fatalf("cost = %d, want 5 (agent passes cell 3 at t=3, after tr=2)", res.Cost)
	}
	st, err := stastar.Run(g, cidx, 0, 0, 5, 0)
	if err != nil {
		t.Fatal(err)
	}
	if res.Cost != st.Cost {
		t.Fatalf("SIPP cost = %d, ST-A* cost = %d, want equal", res.Cost, st.Cost)
	}
}
