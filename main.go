package main

import (
	"fmt"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"github.com/golangdaddy/vroom/pkg/config"
	"github.com/golangdaddy/vroom/pkg/game"
	rebiten "github.com/golangdaddy/vroom/pkg/render/ebiten"
	"github.com/golangdaddy/vroom/pkg/ui"
)

var (
	configFile string
	layout     string
	seed       int64
	width      int
	height     int
	resizable  bool
	autopilot  bool
	ticks      int64
	plain      bool
	outFile    string
	frames     int
	every      int
	frameDir   string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "vroom",
		Short: "endless pseudo-3D road driving",
		RunE:  runPlay,
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&layout, "layout", "", fmt.Sprintf("screen layout %v", config.ListPresets()))
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 1, "track random seed")
	rootCmd.PersistentFlags().IntVar(&width, "width", 0, "canvas width (overrides the layout)")
	rootCmd.PersistentFlags().IntVar(&height, "height", 0, "canvas height (overrides the layout)")
	rootCmd.Flags().BoolVar(&resizable, "resizable", false, "follow the window size")

	playCmd := &cobra.Command{
		Use:   "play",
		Short: "drive in a window",
		RunE:  runPlay,
	}
	playCmd.Flags().BoolVar(&resizable, "resizable", false, "follow the window size")

	simulateCmd := &cobra.Command{
		Use:   "simulate",
		Short: "run a race headless with a terminal dashboard",
		RunE:  runSimulate,
	}
	simulateCmd.Flags().BoolVar(&autopilot, "autopilot", true, "let the autopilot drive")
	simulateCmd.Flags().BoolVar(&plain, "plain", false, "no dashboard, run a fixed number of ticks as fast as possible")
	simulateCmd.Flags().Int64Var(&ticks, "ticks", 3600, "ticks to run with --plain")
	simulateCmd.Flags().StringVar(&outFile, "out", "", "write the race summary to this JSON file")

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "render frames of an autopilot race to PNG files",
		RunE:  runRender,
	}
	renderCmd.Flags().IntVar(&frames, "frames", 5, "number of frames to write")
	renderCmd.Flags().IntVar(&every, "every", 60, "ticks between frames")
	renderCmd.Flags().StringVar(&frameDir, "dir", "frames", "output directory")

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "print the effective config as YAML",
		RunE:  printConfig,
	}

	rootCmd.AddCommand(playCmd, simulateCmd, renderCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig builds the session config: file or defaults, then the layout, then flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		log.Printf("Loaded config from %s", configFile)
	}
	if layout != "" {
		if err := cfg.ApplyLayout(layout); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}
	if width > 0 {
		cfg.Layout.Width = width
	}
	if height > 0 {
		cfg.Layout.Height = height
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	engine, err := game.New(cfg, rebiten.Factory)
	if err != nil {
		return err
	}
	defer engine.Close()

	ebiten.SetWindowSize(cfg.Layout.Width, cfg.Layout.Height)
	ebiten.SetWindowTitle("Vroom")
	ebiten.SetTPS(cfg.FPS)
	if resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}

	if err := ebiten.RunGame(ui.NewApp(engine, resizable)); err != nil {
		return fmt.Errorf("game loop stopped: %w", err)
	}
	return nil
}

func printConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	data, err := cfg.Marshal()
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}
