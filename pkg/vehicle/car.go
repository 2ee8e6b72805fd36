package vehicle

import (
	"math"

	"github.com/golangdaddy/vroom/pkg/config"
	"github.com/golangdaddy/vroom/pkg/input"
	"github.com/golangdaddy/vroom/pkg/road"
)

// Physics represents the handling of the car.
type Physics struct {
	MaxSpeed float64
	Acc      float64
	Friction float64
	Brake    float64
}

// NewPhysics creates the physics for a car config.
func NewPhysics(cfg config.CarConfig) Physics {
	return Physics{
		MaxSpeed: cfg.MaxSpeed,
		Acc:      cfg.Acc,
		Friction: cfg.Friction,
		Brake:    cfg.Brake,
	}
}

// CruiseSpeed is the speed the car settles at without input.
func (p Physics) CruiseSpeed() float64 {
	return p.MaxSpeed / 1.5
}

// Advance moves the car by one tick. The car cruises on its own: it accelerates up to
// the cruise speed and coasts down above it. Holding accelerate raises the cruise
// target to the top speed; holding brake overrides both.
func Advance(s State, in input.State, p Physics, track road.Generator, rng road.Rand) (State, Events) {
	var ev Events

	// The curve eases at the speed the car had when the tick began.
	move := s.Speed * 0.01

	target := p.CruiseSpeed()
	if in.Accelerate {
		target = p.MaxSpeed
	}
	switch {
	case in.Brake:
		s.Speed -= p.Brake
	case s.Speed < target:
		s.Speed += p.Acc
	default:
		s.Speed -= p.Friction / 2
	}

	s.XPos -= s.CurrentCurve * s.Speed * 0.005

	if s.Speed > 0 {
		steer := (math.Abs(s.Turn) + 7 + p.speedFactor(s.Speed)) * 0.2
		if in.Left {
			s.XPos += steer
			s.Turn--
		}
		if in.Right {
			s.XPos -= steer
			s.Turn++
		}
		if !in.Left && !in.Right {
			s.Turn = relax(s.Turn, 0.25)
		}
	}

	s.Turn = clamp(s.Turn, -TurnLimit, TurnLimit)
	s.Speed = clamp(s.Speed, 0, p.MaxSpeed)

	s.Section -= s.Speed
	if s.Section < 0 {
		s.Section, s.Curve = track.Reroll(s.Curve, rng)
		ev.Rerolled = true
	}

	s.CurrentCurve = approach(s.CurrentCurve, s.Curve, move)

	if math.Abs(s.XPos) > OffRoad {
		s.Speed *= OffRoadDecay
		ev.OffRoad = true
	}

	s.XPos = clamp(s.XPos, -XLimit, XLimit)
	return s, ev
}

// speedFactor makes steering sharper at low speed and gentler near the top speed.
func (p Physics) speedFactor(speed float64) float64 {
	if speed > p.MaxSpeed/4 {
		return p.MaxSpeed - speed/2
	}
	return speed
}

// relax moves v toward zero by step without crossing it.
func relax(v, step float64) float64 {
	switch {
	case v > 0:
		return math.Max(0, v-step)
	case v < 0:
		return math.Min(0, v+step)
	}
	return v
}

// approach moves v toward target by step, landing on target when the step would pass it.
func approach(v, target, step float64) float64 {
	diff := target - v
	if math.Abs(diff) <= step {
		return target
	}
	if diff > 0 {
		return v + step
	}
	return v - step
}

func clamp(v, min, max float64) float64 {
	return math.Min(math.Max(v, min), max)
}
