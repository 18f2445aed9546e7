// Command mtsipp is the CLI driver for Moving-Target SIPP: for every source
// in a scenario, it loads one trajectory file per target cell id from
// trackers_dir (named "<target>.txt") and plans an interception, writing a
// "<source>-<target>-plan.txt" output file.
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
	"github.com/katalvlaran/intercept/internal/trackio"
	"github.com/katalvlaran/intercept/mtsipp"
	"github.com/katalvlaran/intercept/safeinterval"
)

func main() {
	log := obslog.New()
	defer log.Sync()

	app := &cli.App{
		Name:      "mtsipp",
		Usage:     "plan Moving-Target SIPP interceptions for every source/target pair in a scenario",
		ArgsUsage: "<mapfile> <scenfile> <trackers_dir>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "out", Value: ".", Usage: "output directory for plan files"},
			&cli.IntFlag{Name: "tmax", Value: 1000, Usage: "time horizon for the safe-interval index"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() < 3 {
				return cli.Exit("usage: mtsipp <mapfile> <scenfile> <trackers_dir>", 2)
			}
			g, err := mapio.Load(c.Args().Get(0))
			if err != nil {
				return cli.Exit(err, 1)
			}
			entries, err := scenario.Load(c.Args().Get(1))
			if err != nil {
				return cli.Exit(err, 1)
			}
			trackersDir := c.Args().Get(2)
			outDir := c.String("out")
			tMax := c.Int("tmax")

			for _, e := range entries {
				sidx, err := safeinterval.Build(g, e.Constraint, tMax)
				if err != nil {
					return cli.Exit(err, 1)
				}
				sx, sy := g.Coordinate(e.Source)
				solver := mtsipp.New(g, e.Constraint, sidx)

				for _, target := range e.TargetSet {
					trackPath := filepath.Join(trackersDir, fmt.Sprintf("%d.txt", target))
					tr, err := trackio.Load(trackPath)
					if err != nil {
						log.Warnw("failed to load target trajectory", "target", target, "err", err)
						continue
					}
					res, err := solver.Run(sx, sy, 0, tr)
					if err != nil {
						log.Warnw("mtsipp run failed", "source", e.Source, "target", target, "err", err)
						continue
					}
					if res.Cost == mtsipp.Unreachable {
						log.Infow("no interception found", "source", e.Source, "target", target)
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

func toSamples(path []mtsipp.PathSample) []planio.Sample {
	out := make([]planio.Sample, len(path))
	for i, s := range path {
		out[i] = planio.Sample{X: s.X, Y: s.Y, T: s.T}
	}
	return out
}
