// Command astar is the CLI driver for spatial A*: for every (source,
// target) pair named by a scenario file, it plans a path on a MovingAI-style
// grid map and writes a "<source>-<target>-plan.txt" output file.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/katalvlaran/intercept/astar"
	"github.com/katalvlaran/intercept/grid"
	"github.com/katalvlaran/intercept/internal/mapio"
	"github.com/katalvlaran/intercept/internal/obslog"
	"github.com/katalvlaran/intercept/internal/planio"
	"github.com/katalvlaran/intercept/internal/scenario"
)

func main() {
	log := obslog.New()
	defer log.Sync()

	app := &cli.App{
		Name:      "astar",
		Usage:     "plan spatial A* paths for every source/target pair in a scenario",
		ArgsUsage: "<mapfile> <scenfile>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "out", Value: ".", Usage: "output directory for plan files"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() < 2 {
				return cli.Exit("usage: astar <mapfile> <scenfile>", 2)
			}
			g, err := mapio.Load(c.Args().Get(0))
			if err != nil {
				return cli.Exit(err, 1)
			}
			entries, err := scenario.Load(c.Args().Get(1))
			if err != nil {
				return cli.Exit(err, 1)
			}
			outDir := c.String("out")

			for _, e := range entries {
				sx, sy := g.Coordinate(e.Source)
				for _, target := range e.TargetSet {
					gx, gy := g.Coordinate(target)
					res, err := astar.Run(g, sx, sy, gx, gy)
					if err != nil {
						log.Warnw("astar run failed", "source", e.Source, "target", target, "err", err)
						continue
					}
					if res.Distance == astar.Unreachable {
						log.Infow("no path found", "source", e.Source, "target", target)
						continue
					}
					path := toSamples(res.Path())
					outPath := filepath.Join(outDir, planio.OutputName(e.Source, target))
					if err := planio.WritePath(outPath, path); err != nil {
						return cli.Exit(err, 1)
					}
					log.Infow("plan written", "file", outPath, "distance", res.Distance)
				}
			}
			return nil
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// toSamples assigns a monotonically increasing time to each A* path cell:
// A* has no time axis of its own, so the step index stands in for elapsed
// time in the shared "x y t" plan-file format.
func toSamples(path []grid.Cell) []planio.Sample {
	out := make([]planio.Sample, len(path))
	for i, c := range path {
		out[i] = planio.Sample{X: c.X, Y: c.Y, T: i}
	}
	return out
}
