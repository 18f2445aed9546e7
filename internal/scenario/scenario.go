// Package scenario parses the JSON scenario file format the solvers'
// drivers read: one or more (source, target set, node constraints) entries,
// with cell ids encoded as "y*W+x" string keys in node_constraints.
package scenario

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/katalvlaran/intercept/constraint"
)

// Entry is one planning problem: a source cell, a set of target cells, and
// the unsafe-interval constraints active for this entry.
type Entry struct {
	Source     int
	TargetSet  []int
	Constraint *constraint.Index
}

// rawFile mirrors the on-disk JSON shape.
type rawFile struct {
	Data []rawEntry `json:"data"`
}

type rawEntry struct {
	Source          int                 `json:"source"`
	TargetSet       []int               `json:"targetSet"`
	NodeConstraints map[string][][2]int `json:"node_constraints"`
}

// Load reads a scenario JSON file from path.
func Load(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("scenario: open %s: %w", path, err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads scenario JSON from r: {"data":[{"source":int,"targetSet":[int,...],
// "node_constraints":{"<cell_id>":[[tl,tr],...],...}},...]}.
func Parse(r io.Reader) ([]Entry, error) {
	var raw rawFile
	dec := json.NewDecoder(r)
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("scenario: decode: %w", err)
	}

	entries := make([]Entry, 0, len(raw.Data))
	for _, re := range raw.Data {
		byCell := make(map[int][]constraint.Interval, len(re.NodeConstraints))
		for cellStr, windows := range re.NodeConstraints {
			var cellID int
			if _, err := fmt.Sscanf(cellStr, "%d", &cellID); err != nil {
				return nil, fmt.Errorf("scenario: bad cell id %q: %w", cellStr, err)
			}
			ivs := make([]constraint.Interval, len(windows))
			for i, w := range windows {
				ivs[i] = constraint.Interval{TL: w[0], TR: w[1]}
			}
			byCell[cellID] = ivs
		}
		idx, err := constraint.NewIndex(byCell)
		if err != nil {
			return nil, fmt.Errorf("scenario: entry source=%d: %w", re.Source, err)
		}
		entries = append(entries, Entry{
			Source:     re.Source,
			TargetSet:  re.TargetSet,
			Constraint: idx,
		})
	}
	return entries, nil
}
