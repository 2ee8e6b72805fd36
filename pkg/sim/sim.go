// Package sim advances the whole simulation by one tick. Step is a pure function of
// the previous state, the controls and the random source, so a seeded run replays exactly.
package sim

import (
	"github.com/golangdaddy/vroom/pkg/background"
	"github.com/golangdaddy/vroom/pkg/config"
	"github.com/golangdaddy/vroom/pkg/input"
	"github.com/golangdaddy/vroom/pkg/road"
	"github.com/golangdaddy/vroom/pkg/vehicle"
)

// ScrollState is how far the scenery has scrolled.
type ScrollState struct {
	BgPos     float64 `json:"bgpos"`
	Offset    float64 `json:"offset"`
	StartDark bool    `json:"startDark"`
}

// State represents one frame of the simulation.
type State struct {
	Vehicle vehicle.State `json:"vehicle"`
	Scroll  ScrollState   `json:"scroll"`

	Ticks        int64   `json:"ticks"`
	Distance     float64 `json:"distance"`
	TopSpeed     float64 `json:"topSpeed"`
	Rerolls      int     `json:"rerolls"`
	OffRoadTicks int64   `json:"offRoadTicks"`
}

// Params are the fixed inputs of Step.
type Params struct {
	Physics   vehicle.Physics
	Track     road.Generator
	GroundMin float64
	Width     float64
}

// NewParams derives the step parameters for a canvas width.
func NewParams(cfg *config.Config, width int) Params {
	return Params{
		Physics:   vehicle.NewPhysics(cfg.Car),
		Track:     road.NewGenerator(cfg.Track),
		GroundMin: cfg.Scene.Ground.Min,
		Width:     float64(width),
	}
}

// NewState returns the state a run starts from.
func NewState(cfg *config.Config) State {
	v := vehicle.NewState(cfg.Car.Start)
	return State{
		Vehicle:  v,
		Scroll:   ScrollState{StartDark: true},
		TopSpeed: v.Speed,
	}
}

// Step advances s by one tick: dynamics first, then the scenery scrolls by the new speed.
func Step(s State, in input.State, p Params, rng road.Rand) State {
	v, ev := vehicle.Advance(s.Vehicle, in, p.Physics, p.Track, rng)
	s.Vehicle = v
	if ev.Rerolled {
		s.Rerolls++
	}
	if ev.OffRoad {
		s.OffRoadTicks++
	}

	s.Scroll.BgPos = background.Advance(s.Scroll.BgPos, v.CurrentCurve, v.Speed, p.Width)
	s.Scroll.Offset, s.Scroll.StartDark = road.AdvanceOffset(s.Scroll.Offset, s.Scroll.StartDark, v.Speed, p.GroundMin)

	s.Ticks++
	s.Distance += v.Speed
	if v.Speed > s.TopSpeed {
		s.TopSpeed = v.Speed
	}
	return s
}

// Elapsed returns the simulated time in seconds at the given tick rate.
func (s State) Elapsed(fps int) float64 {
	if fps <= 0 {
		return 0
	}
	return float64(s.Ticks) / float64(fps)
}
