// Package game runs a driving session: it owns the simulation state, the render
// surfaces and the menu/playing/paused state machine. It knows nothing about windows;
// drivers (the ebiten adapter, the headless Runner, the terminal dashboard) call Tick.
package game

import (
	"errors"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"

	"github.com/golangdaddy/vroom/pkg/background"
	"github.com/golangdaddy/vroom/pkg/config"
	"github.com/golangdaddy/vroom/pkg/hud"
	"github.com/golangdaddy/vroom/pkg/input"
	"github.com/golangdaddy/vroom/pkg/render"
	"github.com/golangdaddy/vroom/pkg/road"
	"github.com/golangdaddy/vroom/pkg/sim"
)

// ErrInvalidSurface is returned when no usable render surface can be created.
var ErrInvalidSurface = errors.New("invalid render surface")

// Mode is the state of the session.
type Mode int

const (
	Menu Mode = iota
	Playing
	Paused
)

func (m Mode) String() string {
	switch m {
	case Menu:
		return "menu"
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// SurfaceFactory allocates the primary surface. Off-screen surfaces come from the
// primary's NewSurface so they share its backend.
type SurfaceFactory func(width, height int) (render.Surface, error)

// StatsSink receives the periodic statistics snapshot.
type StatsSink func(Stats)

// InputSource decides the controls for the next tick from the current state.
type InputSource interface {
	Input(s sim.State) input.State
}

// InputFunc adapts a function to InputSource.
type InputFunc func(s sim.State) input.State

func (f InputFunc) Input(s sim.State) input.State {
	return f(s)
}

// Autopilot drives with a.
func Autopilot(a *input.Autopilot) InputSource {
	return InputFunc(func(s sim.State) input.State {
		v := s.Vehicle
		return a.Decide(v.XPos, v.CurrentCurve, v.Speed)
	})
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the lifecycle logger. A nil logger silences it.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l == nil {
			l = log.New(io.Discard, "", 0)
		}
		e.log = l
	}
}

// WithStatsSink publishes stats every cfg.StatsInterval ticks.
func WithStatsSink(sink StatsSink) Option {
	return func(e *Engine) {
		e.sink = sink
	}
}

// WithRand replaces the seeded random source.
func WithRand(rng road.Rand) Option {
	return func(e *Engine) {
		e.rng = rng
	}
}

// WithInputSource makes the engine ask src for controls each tick instead of using
// the events passed to SetInput.
func WithInputSource(src InputSource) Option {
	return func(e *Engine) {
		e.source = src
	}
}

type size struct {
	w, h int
}

// Engine is a driving session. It is not safe for concurrent use: exactly one
// goroutine drives it.
type Engine struct {
	cfg     *config.Config
	palette config.Palette
	factory SurfaceFactory
	log     *log.Logger
	sink    StatsSink
	rng     road.Rand
	source  InputSource

	mode   Mode
	state  sim.State
	params sim.Params
	in     input.State

	width, height int
	pending       *size

	surface  render.Surface
	tile     render.Surface
	snapshot render.Snapshot
	scenery  *background.Generator
	road     *road.Renderer
	gauge    *hud.Speedometer
}

// New creates an engine in the menu with a static first frame already drawn.
func New(cfg *config.Config, factory SurfaceFactory, opts ...Option) (*Engine, error) {
	if factory == nil {
		return nil, fmt.Errorf("%w: no surface factory", ErrInvalidSurface)
	}
	if cfg == nil {
		return nil, fmt.Errorf("%w: nil config", config.ErrInvalidConfig)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	palette, err := cfg.Colors.Palette()
	if err != nil {
		return nil, err
	}

	e := &Engine{
		cfg:     cfg,
		palette: palette,
		factory: factory,
		log:     log.New(os.Stderr, "", log.LstdFlags),
		rng:     rand.New(rand.NewSource(cfg.Seed)),
		scenery: background.NewGenerator(cfg.Scene.SkySize, palette.Sky, palette.Mountains),
	}
	for _, opt := range opts {
		opt(e)
	}

	if err := e.rebuild(cfg.Layout.Width, cfg.Layout.Height); err != nil {
		return nil, err
	}
	if err := e.Reset(); err != nil {
		e.Close()
		return nil, err
	}
	return e, nil
}

// Start begins a race from the menu or resumes a paused one.
func (e *Engine) Start() {
	switch e.mode {
	case Menu:
		e.state = sim.NewState(e.cfg)
		e.mode = Playing
		e.log.Printf("Race started (seed %d)", e.cfg.Seed)
	case Paused:
		e.mode = Playing
		e.log.Printf("Race resumed at tick %d", e.state.Ticks)
	}
}

// Pause stops a running race. Ticks leave a paused race untouched.
func (e *Engine) Pause() {
	if e.mode != Playing {
		return
	}
	e.mode = Paused
	e.log.Printf("Race paused at tick %d", e.state.Ticks)
}

// Reset returns to the menu with the start state and draws one static frame.
func (e *Engine) Reset() error {
	if err := e.applyResize(); err != nil {
		return err
	}
	e.mode = Menu
	e.state = sim.NewState(e.cfg)
	e.in = input.State{}
	return e.draw()
}

// Resize records new surface dimensions. They are applied at the start of the next
// Tick or Reset, never halfway through a frame.
func (e *Engine) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: got %dx%d", ErrInvalidSurface, width, height)
	}
	if width == e.width && height == e.height {
		e.pending = nil
		return nil
	}
	e.pending = &size{w: width, h: height}
	return nil
}

// SetInput applies a control edge. The last write before a tick wins.
func (e *Engine) SetInput(ev input.Event) {
	e.in.Apply(ev)
}

// SetControls replaces every control at once.
func (e *Engine) SetControls(in input.State) {
	e.in = in
}

// Controls returns the controls the next tick will use when no InputSource is set.
func (e *Engine) Controls() input.State {
	return e.in
}

// Mode returns the current state of the session.
func (e *Engine) Mode() Mode {
	return e.mode
}

// State returns the simulation state.
func (e *Engine) State() sim.State {
	return e.state
}

// Config returns the session configuration.
func (e *Engine) Config() *config.Config {
	return e.cfg
}

// Surface returns the primary surface holding the last drawn frame.
func (e *Engine) Surface() render.Surface {
	return e.surface
}

// Size returns the dimensions of the primary surface.
func (e *Engine) Size() (int, int) {
	return e.width, e.height
}

// Close releases the render surfaces.
func (e *Engine) Close() {
	if e.tile != nil {
		render.Dispose(e.tile)
		e.tile = nil
	}
	if e.surface != nil {
		render.Dispose(e.surface)
		e.surface = nil
	}
	e.snapshot = nil
}
