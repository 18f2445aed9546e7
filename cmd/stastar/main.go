// Command stastar is the CLI driver for Space-Time A*: for every (source,
// target) pair in a scenario, it plans a path honoring that scenario's
// node constraints and writes a "<source>-<target>-plan.txt" output file.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/katalvlaran/intercept/internal/mapio"
	"github.com/katalvlaran/intercept/internal/obslog"
	"github.com/katalvlaran/intercept/internal/planio"
	"github.com/katalvlaran/intercept/internal/scenario"
	"github.com/katalvlaran/intercept/stastar"
)

func main() {
	log := obslog.New()
	defer log.Sync()

	app := &cli.App{
		Name:      "stastar",
		Usage:     "plan Space-Time A* paths for every source/target pair in a scenario",
		ArgsUsage: "<mapfile> <scenfile>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "out", Value: ".", Usage: "output directory for plan files"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() < 2 {
				return cli.Exit("usage: stastar <mapfile> <scenfile>", 2)
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
					if !g.SameRegion(sx, sy, gx, gy) {
						log.Warnw("source and target are in different obstacle-free regions", "source", e.Source, "target", target)
					}
					res, err := stastar.Run(g, e.Constraint, sx, sy, gx, gy)
					if err != nil {
						log.Warnw("stastar run failed", "source", e.Source, "target", target, "err", err)
						continue
					}
					if res.Cost == stastar.Unreachable {
						log.Infow("no path found", "source", e.Source, "target", target)
						continue
					}
					path := toSamples(res.Path())
					outPath := filepath.Join(outDir, planio.OutputName(e.Source, target))
					if err := planio.WritePath(outPath, path); err != nil {
						return cli.Exit(err, 1)
					}
					log.Infow("plan written", "file", outPath, "cost", res.Cost)
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

func toSamples(path []stastar.PathSample) []planio.Sample {
	out := make([]planio.Sample, len(path))
	for i, s := range path {
		out[i] = planio.Sample{X: s.X, Y: s.Y, T: s.T}
	}
	return out
}
