// sunpath prints where the sun is for the configured environment without
// opening a window.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/Faultbox/realsun/internal/config"
	"github.com/Faultbox/realsun/internal/cycle"
	"github.com/Faultbox/realsun/internal/logger"
	"github.com/Faultbox/realsun/internal/report"
	"github.com/Faultbox/realsun/pkg/ecs"
	"github.com/Faultbox/realsun/pkg/sun"
)

var (
	flagSamples = flag.Int("samples", 25, "Rows in the day table")
	flagYear    = flag.Bool("year", false, "Also print the seasons table")
	flagTicks   = flag.Int("ticks", 0, "Run the day cycle for N ticks and log the light direction")
	flagStep    = flag.Float64("step", 1.0/60, "Seconds per tick with -ticks")
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	env, err := cfg.Environment.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := printTables(env); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *flagTicks > 0 {
		if err := runTicks(cfg, env, *flagTicks, *flagStep); err != nil {
			logger.Error("tick run failed", zap.Error(err))
			os.Exit(1)
		}
	}
}

func printTables(env sun.Environment) error {
	if err := report.Summary(os.Stdout, env); err != nil {
		return err
	}
	fmt.Println()
	if err := report.Path(os.Stdout, env, *flagSamples); err != nil {
		return err
	}
	if *flagYear {
		fmt.Println()
		return report.Year(os.Stdout, env)
	}
	return nil
}

// runTicks drives the same pipeline as the viewer: the day cycle in the update
// stage, then the sun system orienting a tagged light.
func runTicks(cfg *config.Config, env sun.Environment, ticks int, step float64) error {
	log := logger.Named("sunpath")
	app := ecs.New(ecs.WithLogger(logger.Named("ecs")))
	defer app.Close()

	light := sun.SpawnLight(app.World(), ecs.DefaultDirectionalLight())
	clock := cycle.New(cfg.Cycle)
	if err := app.AddPlugin(sun.Plugin{Environment: &env}); err != nil {
		return err
	}
	if err := app.AddPlugin(cycle.Plugin{Clock: clock}); err != nil {
		return err
	}

	for range ticks {
		if err := app.Tick(step); err != nil {
			return err
		}
		t, _ := app.World().Transform(light)
		fwd := t.Forward().Array()
		log.Debug("tick",
			zap.Uint64("tick", app.Ticks()),
			zap.String("clock", env.Clock()),
			zap.Float32s("forward", fwd[:]),
		)
	}

	t, _ := app.World().Transform(light)
	fwd := t.Forward()
	log.Info("ticks done",
		zap.String("ticks", humanize.Comma(int64(app.Ticks()))),
		zap.Int("days", clock.Days),
		zap.String("clock", env.Clock()),
	)
	fmt.Printf("\nAfter %s ticks (%s): light forward (%.3f, %.3f, %.3f)\n",
		humanize.Comma(int64(app.Ticks())), env.Clock(), fwd.X, fwd.Y, fwd.Z)
	return nil
}
