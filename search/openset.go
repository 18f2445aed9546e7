package search

import "container/heap"

// Item is a single open-set entry: the arena id of a node plus the (f, g)
// pair the heap orders by. Pushing a duplicate id with an improved (f, g) is
// the lazy-decrease-key pattern: the heap never removes the stale entry, and
// a stale pop is expected to be filtered by the caller (re-checking safety
// or g-table dominance) before being expanded.
type Item struct {
	ID   int
	F, G float64
}

// OpenSet is a binary min-heap of Items ordered by (F ascending, G
// descending) as the final tie-break, matching the A*/ST-A*/SIPP priority
// rule shared across every solver in this module.
type OpenSet []Item

func (h OpenSet) Len() int { return len(h) }

func (h OpenSet) Less(i, j int) bool {
	if h[i].F != h[j].F {
		return h[i].F < h[j].F
	}
	return h[i].G > h[j].G
}

func (h OpenSet) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

// Push implements heap.Interface; use PushItem for a typed call site.
func (h *OpenSet) Push(x any) { *h = append(*h, x.(Item)) }

// Pop implements heap.Interface; use PopItem for a typed call site.
func (h *OpenSet) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// PushItem pushes id with priority (f, g) onto the heap.
func PushItem(h *OpenSet, id int, f, g float64) {
	heap.Push(h, Item{ID: id, F: f, G: g})
}

// PopItem pops and returns the highest-priority item. Callers must check
// h.Len() > 0 first.
func PopItem(h *OpenSet) Item {
	return heap.Pop(h).(Item)
}
