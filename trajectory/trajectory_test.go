package trajectory

import "testing"

func TestAtClampsBeforeFirstAndAfterLast(t *testing.T) {
	tr, err := New([]Sample{{X: 3, Y: 0, T: 0}, {X: 3, Y: 0, T: 5}, {X: 2, Y: 0, T: 6}})
	if err != nil {
		t.Fatal(err)
	}
	if x, y := tr.At(-5); x != 3 || y != 0 {
		t.Fatalf("At(-5) = (%d,%d), want (3,0)", x, y)
	}
	if x, y := tr.At(100); x != 2 || y != 0 {
		t.Fatalf("At(100) = (%d,%d), want (2,0)", x, y)
	}
}

func TestAtBackwardScanBetweenSamples(t *testing.T) {
	tr, _ := New([]Sample{{X: 0, Y: 0, T: 0}, {X: 5, Y: 0, T: 10}})
	if x, y := tr.At(7); x != 0 || y != 0 {
		t.Fatalf("At(7) = (%d,%d), want (0,0) -- holds last sample until T=10", x, y)
	}
	if x, y := tr.At(10); x != 5 || y != 0 {
		t.Fatalf("At(10) = (%d,%d), want (5,0)", x, y)
	}
}

func TestNewAcceptsUnsortedInput(t *testing.T) {
	tr, err := New([]Sample{{X: 2, Y: 0, T: 6}, {X: 3, Y: 0, T: 0}})
	if err != nil {
		t.Fatal(err)
	}
	if x, y := tr.At(0); x != 3 || y != 0 {
		t.Fatalf("At(0) = (%d,%d), want (3,0) after sort-on-load", x, y)
	}
}

func TestNewRejectsEmpty(t *testing.T) {
	if _, err := New(nil); err != ErrEmptyTrajectory {
		t.Fatalf("want ErrEmptyTrajectory, got %v", err)
	}
}

func TestMinManhattanToFutureOnlyConsidersStrictlyFutureSamples(t *testing.T) {
	tr, _ := New([]Sample{{X: 3, Y: 0, T: 0}, {X: 3, Y: 0, T: 5}, {X: 2, Y: 0, T: 6}})
	// S6: at t=0 from (0,0), the samples with T>0 are (3,0,5) at distance 3
	// and (2,0,6) at distance 2; the T=0 sample is excluded, so the minimum is 2.
	if d := tr.MinManhattanToFuture(0, 0, 0); d != 2 {
		t.Fatalf("MinManhattanToFuture = %d, want 2", d)
	}
}

func TestMinManhattanToFutureNoFutureSamplesReturnsSentinel(t *testing.T) {
	tr, _ := New([]Sample{{X: 0, Y: 0, T: 0}})
	if d := tr.MinManhattanToFuture(10, 10, 100); d != minHeuristicSentinel {
		t.Fatalf("MinManhattanToFuture = %d, want sentinel", d)
	}
}
