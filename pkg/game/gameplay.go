package game

import (
	"fmt"

	"github.com/golangdaddy/vroom/pkg/background"
	"github.com/golangdaddy/vroom/pkg/car"
	"github.com/golangdaddy/vroom/pkg/hud"
	"github.com/golangdaddy/vroom/pkg/render"
	"github.com/golangdaddy/vroom/pkg/road"
	"github.com/golangdaddy/vroom/pkg/sim"
)

// Stats is the snapshot published to the outside world while a race runs.
type Stats struct {
	Speed    float64 `json:"speed"`
	Distance float64 `json:"distance"`
	Elapsed  float64 `json:"elapsed"` // seconds
	Ticks    int64   `json:"ticks"`
	MaxSpeed float64 `json:"maxSpeed"`
}

// MPH returns the speed as shown on the speedometer readout.
func (s Stats) MPH() float64 {
	return s.Speed * hud.MPHPerSpeedUnit
}

// Stats returns the statistics of the current race.
func (e *Engine) Stats() Stats {
	return Stats{
		Speed:    e.state.Vehicle.Speed,
		Distance: e.state.Distance,
		Elapsed:  e.state.Elapsed(e.cfg.FPS),
		Ticks:    e.state.Ticks,
		MaxSpeed: e.state.TopSpeed,
	}
}

// Tick advances the session by one frame. A pending resize is applied first and
// returns the session to the menu. Outside a race Tick does nothing else.
func (e *Engine) Tick() error {
	if e.pending != nil {
		return e.Reset()
	}
	if e.mode != Playing {
		return nil
	}

	in := e.in
	if e.source != nil {
		in = e.source.Input(e.state)
	}
	e.state = sim.Step(e.state, in, e.params, e.rng)

	if err := e.draw(); err != nil {
		e.mode = Paused
		return fmt.Errorf("failed to draw tick %d: %w", e.state.Ticks, err)
	}

	if e.sink != nil && e.cfg.StatsInterval > 0 && e.state.Ticks%int64(e.cfg.StatsInterval) == 0 {
		e.sink(e.Stats())
	}
	return nil
}

// draw paints the current state back to front. It never changes the state.
func (e *Engine) draw() error {
	s := e.surface
	v := e.state.Vehicle
	scroll := e.state.Scroll

	s.Clear()
	background.Scroll(s, e.snapshot, scroll.BgPos)
	road.DrawGround(s, e.cfg.Scene, scroll.Offset, scroll.StartDark, e.palette.Ground, e.palette.GroundDark)
	if err := e.road.Draw(s, v.XPos, v.CurrentCurve, scroll.Offset, scroll.StartDark); err != nil {
		return err
	}
	car.Render(s, v.Turn, e.cfg.Layout)
	e.gauge.Draw(s, v.Speed, e.cfg.Car.MaxSpeed)
	return nil
}

func (e *Engine) applyResize() error {
	if e.pending == nil {
		return nil
	}
	next := *e.pending
	e.pending = nil
	return e.rebuild(next.w, next.h)
}

// rebuild replaces the primary surface, the strip tile and the background snapshot.
// They always change together.
func (e *Engine) rebuild(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: got %dx%d", ErrInvalidSurface, width, height)
	}
	primary, err := e.factory(width, height)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSurface, err)
	}
	if primary == nil {
		return fmt.Errorf("%w: factory returned no surface", ErrInvalidSurface)
	}
	tile, err := primary.NewSurface(width, height)
	if err != nil {
		render.Dispose(primary)
		return fmt.Errorf("%w: failed to create strip tile: %w", ErrInvalidSurface, err)
	}

	e.Close()
	e.surface = primary
	e.tile = tile
	e.width, e.height = width, height

	e.snapshot = e.scenery.Capture(primary)
	e.params = sim.NewParams(e.cfg, width)
	e.road = road.NewRenderer(e.cfg.Scene, e.palette, tile)
	x, y := e.cfg.Layout.HUDCenter(float64(width))
	e.gauge = hud.NewSpeedometer(x, y, e.palette.HUD)

	e.log.Printf("Surfaces built at %dx%d", width, height)
	return nil
}
