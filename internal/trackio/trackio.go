// Package trackio loads target-trajectory files: one sample per line,
// whitespace-separated "x y t", possibly unsorted in time (trajectory.New
// sorts by t ascending on load).
package trackio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/katalvlaran/intercept/trajectory"
)

// Load reads a trajectory file from path.
func Load(path string) (*trajectory.Trajectory, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("trackio: open %s: %w", path, err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads "x y t" samples, one per non-empty line, from r.
func Parse(r io.Reader) (*trajectory.Trajectory, error) {
	sc := bufio.NewScanner(r)
	var samples []trajectory.Sample
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		var x, y, t int
		if _, err := fmt.Sscanf(line, "%d %d %d", &x, &y, &t); err != nil {
			return nil, fmt.Errorf("trackio: bad sample line %q: %w", line, err)
		}
		samples = append(samples, trajectory.Sample{X: x, Y: y, T: t})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("trackio: reading: %w", err)
	}
	return trajectory.New(samples)
}
