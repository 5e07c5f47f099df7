package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"ndca/internal/app"
	"ndca/internal/console"
	"ndca/internal/scenario"
	"ndca/pkg/engine"
)

var runFlags struct {
	rule   string
	shape  []int
	seed   int64
	random bool
	steps  int
	tps    int
	scale  int
	gui    bool
	watch  bool
}

var runCmd = &cobra.Command{
	Use:   "run [scenario.yaml]",
	Short: "Run a simulation",
	Long: `Run a simulation from a scenario file, or from flags alone. Flags
override the corresponding scenario fields. With --steps the simulation runs
that many ticks as fast as possible and prints the final grid; otherwise it
animates on the console (or in a window with --gui, which requires a binary
built with the ebiten tag).`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSimulation,
}

func init() {
	f := runCmd.Flags()
	f.StringVar(&runFlags.rule, "rule", "", "rule name or B/S notation (overrides scenario)")
	f.IntSliceVar(&runFlags.shape, "shape", nil, "grid shape, e.g. 100,100 (overrides scenario)")
	f.Int64Var(&runFlags.seed, "seed", 0, "random seed (overrides scenario)")
	f.BoolVar(&runFlags.random, "random", false, "randomize the initial grid")
	f.IntVar(&runFlags.steps, "steps", 0, "run this many ticks and exit (0 animates forever)")
	f.IntVar(&runFlags.tps, "tps", 0, "ticks per second while animating")
	f.IntVar(&runFlags.scale, "scale", 0, "GUI pixels per cell")
	f.BoolVar(&runFlags.gui, "gui", false, "render in a window instead of the console")
	f.BoolVar(&runFlags.watch, "watch", false, "reload the scenario file on change (console mode)")
	rootCmd.AddCommand(runCmd)
}

func runSimulation(cmd *cobra.Command, args []string) error {
	if runFlags.watch && (runFlags.gui || runFlags.steps > 0) {
		return errors.New("--watch is only supported when animating on the console")
	}

	path := ""
	if len(args) == 1 {
		path = args[0]
	}
	s, err := loadScenario(cmd, path)
	if err != nil {
		return err
	}
	eng, err := s.Build()
	if err != nil {
		return err
	}

	logger := slog.Default()
	logger.Info("simulation ready",
		"name", s.Name,
		"rule", s.Rule,
		"shape", s.Shape,
		"population", eng.Grid().Count(),
	)

	if runFlags.gui {
		return app.Run(eng, app.Options{
			Title: "ndca - " + s.Name,
			Scale: s.Scale,
			TPS:   s.TPS,
			Seed:  s.Seed,
			Rebuild: func(seed int64) (*engine.Engine, error) {
				reseeded := *s
				reseeded.Seed = seed
				return reseeded.Build()
			},
		})
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if runFlags.steps > 0 {
		if err := eng.Run(ctx, runFlags.steps, nil); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		console.Render(os.Stdout, eng.Grid())
		logger.Info("finished", "generations", eng.Generation(), "population", eng.Grid().Count())
		return nil
	}

	return animate(ctx, logger, s, eng, path)
}

// animate drives the console renderer on the scenario's clock, swapping in
// reloaded scenarios when watching.
func animate(ctx context.Context, logger *slog.Logger, s *scenario.Scenario, eng *engine.Engine, path string) error {
	reloaded := make(chan *scenario.Scenario, 1)
	if runFlags.watch {
		if path == "" {
			return errors.New("--watch requires a scenario file")
		}
		w := scenario.NewWatcher(path, logger)
		go func() {
			if err := w.Watch(ctx, func(next *scenario.Scenario) {
				select {
				case reloaded <- next:
				default:
				}
			}); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("watcher stopped", "error", err)
			}
		}()
	}

	ticker := time.NewTicker(time.Second / time.Duration(s.TPS))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("stopped", "generations", eng.Generation())
			return nil

		case next := <-reloaded:
			fresh, err := next.Build()
			if err != nil {
				logger.Error("reloaded scenario does not build", "error", err)
				continue
			}
			s, eng = next, fresh
			ticker.Reset(time.Second / time.Duration(s.TPS))

		case <-ticker.C:
			if err := eng.Tick(); err != nil {
				return err
			}
			console.Clear(os.Stdout)
			console.Render(os.Stdout, eng.Grid())
			fmt.Printf("%s  gen %d  pop %d\n", s.Rule, eng.Generation(), eng.Grid().Count())
		}
	}
}

// loadScenario resolves the scenario file (or the default) and applies flag
// overrides.
func loadScenario(cmd *cobra.Command, path string) (*scenario.Scenario, error) {
	var s *scenario.Scenario
	if path != "" {
		loaded, err := scenario.Load(path)
		if err != nil {
			return nil, err
		}
		s = loaded
	} else {
		s = scenario.Default()
	}

	flags := cmd.Flags()
	if flags.Changed("rule") {
		s.Rule = runFlags.rule
	}
	if flags.Changed("shape") {
		s.Shape = runFlags.shape
	}
	if flags.Changed("seed") {
		s.Seed = runFlags.seed
	}
	if flags.Changed("random") {
		s.Random = runFlags.random
	}
	if flags.Changed("tps") {
		s.TPS = runFlags.tps
	}
	if flags.Changed("scale") {
		s.Scale = runFlags.scale
	}
	if s.TPS <= 0 {
		s.TPS = 10
	}
	if s.Scale <= 0 {
		s.Scale = 4
	}
	return s, nil
}
