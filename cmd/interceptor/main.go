// Command interceptor is the CLI driver for the Hamiltonian Multi-Target
// Interceptor: for every source in a scenario, it loads one trajectory file
// per target cell id from trackers_dir and plans the optimal visitation
// order, writing a single concatenated "<source>-<lastTarget>-plan.txt"
// output file per entry.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/katalvlaran/intercept/interceptor"
	"github.com/katalvlaran/intercept/internal/mapio"
	"github.com/katalvlaran/intercept/internal/obslog"
	"github.com/katalvlaran/intercept/internal/planio"
	"github.com/katalvlaran/intercept/internal/scenario"
	"github.com/katalvlaran/intercept/internal/trackio"
	"github.com/katalvlaran/intercept/safeinterval"
	"github.com/katalvlaran/intercept/trajectory"
)

func main() {
	log := obslog.New()
	defer log.Sync()

	app := &cli.App{
		Name:      "interceptor",
		Usage:     "plan optimal multi-target interception order for every source in a scenario",
		ArgsUsage: "<mapfile> <scenfile> <trackers_dir>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "out", Value: ".", Usage: "output directory for plan files"},
			&cli.IntFlag{Name: "tmax", Value: 1000, Usage: "time horizon for the safe-interval index"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() < 3 {
				return cli.Exit("usage: interceptor <mapfile> <scenfile> <trackers_dir>", 2)
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

				trs := make([]*trajectory.Trajectory, 0, len(e.TargetSet))
				for _, target := range e.TargetSet {
					trackPath := filepath.Join(trackersDir, fmt.Sprintf("%d.txt", target))
					tr, err := trackio.Load(trackPath)
					if err != nil {
						return cli.Exit(fmt.Errorf("loading trajectory for target %d: %w", target, err), 1)
					}
					trs = append(trs, tr)
				}

				res := interceptor.Run(g, e.Constraint, sidx, sx, sy, 0, trs)
				if !res.Success {
					log.Infow("interception failed", "source", e.Source)
					continue
				}
				lastTarget := e.Source
				if len(res.Order) > 0 {
					lastTarget = e.TargetSet[res.Order[len(res.Order)-1]]
				}
				path := toSamples(res.FullPath)
				outPath := filepath.Join(outDir, planio.OutputName(e.Source, lastTarget))
				if err := planio.WritePath(outPath, path); err != nil {
					return cli.Exit(err, 1)
				}
				log.Infow("plan written", "file", outPath, "total_time", res.TotalTime, "order", res.Order)
			}
			return nil
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func toSamples(path []interceptor.PathSample) []planio.Sample {
	out := make([]planio.Sample, len(path))
	for i, s := range path {
		out[i] = planio.Sample{X: s.X, Y: s.Y, T: s.T}
	}
	return out
}
