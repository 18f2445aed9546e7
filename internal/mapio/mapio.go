// Package mapio parses MovingAI-style grid-map files into a *grid.Grid: a
// textual header giving height/width followed by a rectangular glyph body.
package mapio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/katalvlaran/intercept/grid"
)

// passable glyphs: '.' ground, 'G' grass, 'S' shallow water (all traversable
// in this domain's binary occupancy model). obstacle glyphs: '@' out of
// bounds, 'O' out of bounds, 'T' tree, 'W' deep water.
const obstacleGlyphs = "@OTW"

// Load reads a MovingAI-style map file from path and returns the resulting
// Grid.
func Load(path string) (*grid.Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("mapio: open %s: %w", path, err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads a MovingAI-style map from r. The expected header is:
//
//	type octile
//	height H
//	width W
//	map
//
// followed by H lines of W glyphs each. The "type" line is optional and
// ignored if present.
func Parse(r io.Reader) (*grid.Grid, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var height, width int
	haveHeight, haveWidth := false, false
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if line == "map" {
			break
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			continue // tolerate a "type octile" header line
		}
		switch fields[0] {
		case "height":
			v, err := strconv.Atoi(fields[1])
			if err != nil {
				return nil, fmt.Errorf("mapio: bad height %q: %w", fields[1], err)
			}
			height, haveHeight = v, true
		case "width":
			v, err := strconv.Atoi(fields[1])
			if err != nil {
				return nil, fmt.Errorf("mapio: bad width %q: %w", fields[1], err)
			}
			width, haveWidth = v, true
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("mapio: reading header: %w", err)
	}
	if !haveHeight || !haveWidth {
		return nil, fmt.Errorf("mapio: missing height/width header")
	}

	obstacle := make([][]bool, 0, height)
	for sc.Scan() {
		line := sc.Text()
		if len(line) == 0 {
			continue
		}
		row := make([]bool, len(line))
		for x, ch := range line {
			row[x] = strings.ContainsRune(obstacleGlyphs, ch)
		}
		obstacle = append(obstacle, row)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("mapio: reading body: %w", err)
	}
	if len(obstacle) != height {
		return nil, fmt.Errorf("mapio: body has %d rows, header declared height=%d", len(obstacle), height)
	}
	for _, row := range obstacle {
		if len(row) != width {
			return nil, fmt.Errorf("mapio: row width %d does not match header width=%d", len(row), width)
		}
	}

	return grid.New(obstacle)
}
