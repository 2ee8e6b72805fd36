package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/golangdaddy/vroom/pkg/config"
	"github.com/golangdaddy/vroom/pkg/dashboard"
	"github.com/golangdaddy/vroom/pkg/game"
	"github.com/golangdaddy/vroom/pkg/hud"
	"github.com/golangdaddy/vroom/pkg/input"
	"github.com/golangdaddy/vroom/pkg/models"
	"github.com/golangdaddy/vroom/pkg/render/raster"
)

func newHeadlessEngine(cfg *config.Config, opts ...game.Option) (*game.Engine, error) {
	if autopilot {
		opts = append(opts, game.WithInputSource(game.Autopilot(input.NewAutopilot())))
	}
	return game.New(cfg, raster.Factory, opts...)
}

func runSimulate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if !plain {
		// the dashboard steers itself; the engine must not ask the autopilot too
		engine, err := game.New(cfg, raster.Factory, game.WithLogger(nil))
		if err != nil {
			return err
		}
		defer engine.Close()
		if err := dashboard.Run(engine, autopilot); err != nil {
			return err
		}
		return saveSession(cfg, engine)
	}

	var speeds []float64
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TICK\tTIME\tMPH\tDISTANCE\tTOP MPH")
	engine, err := newHeadlessEngine(cfg, game.WithStatsSink(func(s game.Stats) {
		speeds = append(speeds, s.MPH())
		if s.Ticks%int64(cfg.FPS) == 0 {
			fmt.Fprintf(w, "%d\t%.1fs\t%.0f\t%.0f\t%.0f\n", s.Ticks, s.Elapsed, s.MPH(), s.Distance, s.MaxSpeed*hud.MPHPerSpeedUnit)
		}
	}))
	if err != nil {
		return err
	}
	defer engine.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	runner := game.NewRunner(engine)
	runner.TPS = 0
	runner.MaxTicks = ticks
	if err := runner.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	w.Flush()

	if len(speeds) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(speeds,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("speed (MPH)"),
		))
	}
	st := engine.State()
	fmt.Printf("\n%d ticks, distance %.0f, %d re-rolls, %d off-road ticks\n", st.Ticks, st.Distance, st.Rerolls, st.OffRoadTicks)
	return saveSession(cfg, engine)
}

func saveSession(cfg *config.Config, engine *game.Engine) error {
	if outFile == "" {
		return nil
	}
	session := models.NewSession(filepath.Base(outFile), cfg)
	session.Record(engine.State())
	if err := session.SaveToFile(outFile); err != nil {
		return err
	}
	log.Printf("Saved race summary to %s", outFile)
	return nil
}

func runRender(cmd *cobra.Command, args []string) error {
	if frames <= 0 || every <= 0 {
		return fmt.Errorf("frames and every must be positive, got %d and %d", frames, every)
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	autopilot = true
	engine, err := newHeadlessEngine(cfg)
	if err != nil {
		return err
	}
	defer engine.Close()

	if err := os.MkdirAll(frameDir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", frameDir, err)
	}

	written := 0
	save := func(e *game.Engine) error {
		s, ok := e.Surface().(*raster.Surface)
		if !ok {
			return fmt.Errorf("unexpected surface %T", e.Surface())
		}
		path := filepath.Join(frameDir, fmt.Sprintf("frame_%04d.png", written))
		if err := s.SavePNG(path); err != nil {
			return err
		}
		written++
		log.Printf("Wrote %s (tick %d)", path, e.State().Ticks)
		return nil
	}

	runner := game.NewRunner(engine)
	runner.TPS = 0
	return game.Capture(context.Background(), runner, frames, every, save)
}
