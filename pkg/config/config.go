// Package config holds the tunable constants of a driving session and loads them from YAML.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/golangdaddy/vroom/pkg/render"
)

const (
	DefaultFPS           = 60
	DefaultStatsInterval = 30
	DefaultWidth         = 800
	DefaultHeight        = 600

	DefaultSkySize    = 120.0
	DefaultGroundSize = 350.0
	DefaultGroundMin  = 4.0
	DefaultGroundMax  = 120.0

	DefaultMaxSpeed = 50.0
	DefaultAcc      = 0.85
	DefaultFriction = 0.4
	DefaultBrake    = 0.5

	DefaultStartSpeed   = 27.0
	DefaultStartTurn    = 1.0
	DefaultStartSection = 50.0

	DefaultSectionMin    = 1000.0
	DefaultSectionMax    = 9000.0
	DefaultCurveMin      = -50.0
	DefaultCurveMax      = 50.0
	DefaultMinCurveDelta = 20.0
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config represents everything that stays fixed for a session.
type Config struct {
	Seed          int64        `yaml:"seed"`
	FPS           int          `yaml:"fps"`
	StatsInterval int          `yaml:"stats_interval"`
	Layout        LayoutConfig `yaml:"layout"`
	Scene         SceneConfig  `yaml:"scene"`
	Car           CarConfig    `yaml:"car"`
	Track         TrackConfig  `yaml:"track"`
	Colors        ColorConfig  `yaml:"colors"`
}

// LayoutConfig positions the car and the speedometer on the canvas.
type LayoutConfig struct {
	Name   string `yaml:"name"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`

	// The speedometer centre sits HUDInset pixels left of the right edge, HUDTop below the top.
	HUDInset float64 `yaml:"hud_inset"`
	HUDTop   float64 `yaml:"hud_top"`

	// Wheels and body sit min(Baseline, height*Ratio) above the bottom edge.
	WheelBaseline      float64 `yaml:"wheel_baseline"`
	WheelBaselineRatio float64 `yaml:"wheel_baseline_ratio"`
	BodyBaseline       float64 `yaml:"body_baseline"`
	BodyBaselineRatio  float64 `yaml:"body_baseline_ratio"`

	TouchControls bool    `yaml:"touch_controls"`
	ControlSize   float64 `yaml:"control_size"`
	ControlMargin float64 `yaml:"control_margin"`
}

// SceneConfig is the perspective geometry of sky, ground and road.
type SceneConfig struct {
	SkySize float64      `yaml:"sky_size"`
	Ground  GroundConfig `yaml:"ground"`
	Road    RoadConfig   `yaml:"road"`
}

// GroundConfig sizes the alternating ground bands.
type GroundConfig struct {
	Size float64 `yaml:"size"`
	Min  float64 `yaml:"min"`
	Max  float64 `yaml:"max"`
}

// RoadConfig derives the road half widths from the canvas width:
// min = max(MinFloor, width*MinRatio), max = min(MaxCeil, width*MaxRatio).
type RoadConfig struct {
	MinFloor float64 `yaml:"min_floor"`
	MinRatio float64 `yaml:"min_ratio"`
	MaxCeil  float64 `yaml:"max_ceil"`
	MaxRatio float64 `yaml:"max_ratio"`
}

// CarConfig is the vehicle physics and the state a run starts from.
type CarConfig struct {
	MaxSpeed float64     `yaml:"max_speed"`
	Acc      float64     `yaml:"acc"`
	Friction float64     `yaml:"friction"`
	Brake    float64     `yaml:"brake"`
	Start    StartConfig `yaml:"start"`
}

// StartConfig is the vehicle state at race start and after a reset.
type StartConfig struct {
	Speed   float64 `yaml:"speed"`
	XPos    float64 `yaml:"xpos"`
	Turn    float64 `yaml:"turn"`
	Section float64 `yaml:"section"`
}

// TrackConfig bounds the procedural track sections.
type TrackConfig struct {
	SectionMin    float64 `yaml:"section_min"`
	SectionMax    float64 `yaml:"section_max"`
	CurveMin      float64 `yaml:"curve_min"`
	CurveMax      float64 `yaml:"curve_max"`
	MinCurveDelta float64 `yaml:"min_curve_delta"`
}

// ColorConfig holds the palette as hex strings.
type ColorConfig struct {
	Sky        string `yaml:"sky"`
	Mountains  string `yaml:"mountains"`
	Ground     string `yaml:"ground"`
	GroundDark string `yaml:"ground_dark"`
	Road       string `yaml:"road"`
	RoadLine   string `yaml:"road_line"`
	HUD        string `yaml:"hud"`
}

// Palette is the parsed form of ColorConfig.
type Palette struct {
	Sky        color.RGBA
	Mountains  color.RGBA
	Ground     color.RGBA
	GroundDark color.RGBA
	Road       color.RGBA
	RoadLine   color.RGBA
	HUD        color.RGBA
}

// DefaultConfig returns the desktop session settings.
func DefaultConfig() *Config {
	return &Config{
		Seed:          1,
		FPS:           DefaultFPS,
		StatsInterval: DefaultStatsInterval,
		Layout:        desktopLayout(),
		Scene: SceneConfig{
			SkySize: DefaultSkySize,
			Ground: GroundConfig{
				Size: DefaultGroundSize,
				Min:  DefaultGroundMin,
				Max:  DefaultGroundMax,
			},
			Road: RoadConfig{
				MinFloor: 60,
				MinRatio: 0.1,
				MaxCeil:  450,
				MaxRatio: 0.8,
			},
		},
		Car: CarConfig{
			MaxSpeed: DefaultMaxSpeed,
			Acc:      DefaultAcc,
			Friction: DefaultFriction,
			Brake:    DefaultBrake,
			Start: StartConfig{
				Speed:   DefaultStartSpeed,
				Turn:    DefaultStartTurn,
				Section: DefaultStartSection,
			},
		},
		Track: TrackConfig{
			SectionMin:    DefaultSectionMin,
			SectionMax:    DefaultSectionMax,
			CurveMin:      DefaultCurveMin,
			CurveMax:      DefaultCurveMax,
			MinCurveDelta: DefaultMinCurveDelta,
		},
		Colors: ColorConfig{
			Sky:        "#D4F5FE",
			Mountains:  "#83CACE",
			Ground:     "#8FC04C",
			GroundDark: "#73B043",
			Road:       "#606a7c",
			RoadLine:   "#FFF",
			HUD:        "#FFF",
		},
	}
}

// Load reads a YAML file on top of the defaults and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg as YAML.
func Save(path string, cfg *Config) error {
	data, err := cfg.Marshal()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Marshal encodes the config as YAML.
func (c *Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return data, nil
}

// Validate reports the first setting the simulation cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.FPS <= 0:
		return invalid("fps must be positive, got %d", c.FPS)
	case c.StatsInterval < 0:
		return invalid("stats_interval must not be negative, got %d", c.StatsInterval)
	case c.Layout.Width <= 0 || c.Layout.Height <= 0:
		return invalid("layout size must be positive, got %dx%d", c.Layout.Width, c.Layout.Height)
	case c.Scene.SkySize <= 0:
		return invalid("sky_size must be positive, got %g", c.Scene.SkySize)
	case c.Scene.Ground.Min <= 0:
		return invalid("ground.min must be positive, got %g", c.Scene.Ground.Min)
	case c.Scene.Ground.Min >= c.Scene.Ground.Max:
		return invalid("ground.min (%g) must be below ground.max (%g)", c.Scene.Ground.Min, c.Scene.Ground.Max)
	case c.Scene.Ground.Size < 0:
		return invalid("ground.size must not be negative, got %g", c.Scene.Ground.Size)
	case c.Scene.Road.MinFloor <= 0 || c.Scene.Road.MaxCeil <= 0:
		return invalid("road widths must be positive")
	case c.Scene.Road.MinRatio < 0 || c.Scene.Road.MaxRatio <= 0:
		return invalid("road ratios must be positive")
	case c.Scene.Road.MinFloor >= c.Scene.Road.MaxCeil:
		return invalid("road.min_floor (%g) must be below road.max_ceil (%g)", c.Scene.Road.MinFloor, c.Scene.Road.MaxCeil)
	case c.Car.MaxSpeed <= 0:
		return invalid("car.max_speed must be positive, got %g", c.Car.MaxSpeed)
	case c.Car.Acc < 0 || c.Car.Friction < 0 || c.Car.Brake < 0:
		return invalid("car acc, friction and brake must not be negative")
	case c.Car.Start.Speed < 0 || c.Car.Start.Speed > c.Car.MaxSpeed:
		return invalid("car.start.speed must be within [0, %g], got %g", c.Car.MaxSpeed, c.Car.Start.Speed)
	case c.Car.Start.Turn < -5 || c.Car.Start.Turn > 5:
		return invalid("car.start.turn must be within [-5, 5], got %g", c.Car.Start.Turn)
	case c.Car.Start.XPos < -400 || c.Car.Start.XPos > 400:
		return invalid("car.start.xpos must be within [-400, 400], got %g", c.Car.Start.XPos)
	case c.Track.SectionMin <= 0:
		return invalid("track.section_min must be positive, got %g", c.Track.SectionMin)
	case c.Track.SectionMin > c.Track.SectionMax:
		return invalid("track.section_min (%g) exceeds track.section_max (%g)", c.Track.SectionMin, c.Track.SectionMax)
	case c.Track.CurveMin >= c.Track.CurveMax:
		return invalid("track.curve_min (%g) must be below track.curve_max (%g)", c.Track.CurveMin, c.Track.CurveMax)
	case c.Track.MinCurveDelta < 0:
		return invalid("track.min_curve_delta must not be negative, got %g", c.Track.MinCurveDelta)
	case c.Track.MinCurveDelta > (c.Track.CurveMax-c.Track.CurveMin)/2:
		// Otherwise a curve in the middle of the range would have no admissible successor.
		return invalid("track.min_curve_delta (%g) exceeds half the curve range", c.Track.MinCurveDelta)
	}
	if _, err := c.Colors.Palette(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// Palette parses every colour.
func (cc ColorConfig) Palette() (Palette, error) {
	var p Palette
	fields := []struct {
		name string
		hex  string
		dst  *color.RGBA
	}{
		{"sky", cc.Sky, &p.Sky},
		{"mountains", cc.Mountains, &p.Mountains},
		{"ground", cc.Ground, &p.Ground},
		{"ground_dark", cc.GroundDark, &p.GroundDark},
		{"road", cc.Road, &p.Road},
		{"road_line", cc.RoadLine, &p.RoadLine},
		{"hud", cc.HUD, &p.HUD},
	}
	for _, f := range fields {
		c, err := render.ParseHexColor(f.hex)
		if err != nil {
			return Palette{}, fmt.Errorf("colors.%s: %w", f.name, err)
		}
		*f.dst = c
	}
	return p, nil
}

// RoadWidths returns the road min and max half widths for a canvas width.
func (s SceneConfig) RoadWidths(canvasWidth float64) (min, max float64) {
	min = s.Road.MinFloor
	if v := canvasWidth * s.Road.MinRatio; v > min {
		min = v
	}
	max = s.Road.MaxCeil
	if v := canvasWidth * s.Road.MaxRatio; v < max {
		max = v
	}
	return min, max
}

// Baselines returns the wheel and body y positions for a canvas height.
func (l LayoutConfig) Baselines(canvasHeight float64) (wheels, body float64) {
	wheels = canvasHeight - minf(l.WheelBaseline, canvasHeight*l.WheelBaselineRatio)
	body = canvasHeight - minf(l.BodyBaseline, canvasHeight*l.BodyBaselineRatio)
	return wheels, body
}

// HUDCenter returns the speedometer centre for a canvas width.
func (l LayoutConfig) HUDCenter(canvasWidth float64) (x, y float64) {
	return canvasWidth - l.HUDInset, l.HUDTop
}

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
