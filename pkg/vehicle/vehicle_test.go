package vehicle

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/golangdaddy/vroom/pkg/config"
	"github.com/golangdaddy/vroom/pkg/input"
	"github.com/golangdaddy/vroom/pkg/road"
)

func setup() (State, Physics, road.Generator, *rand.Rand) {
	cfg := config.DefaultConfig()
	return NewState(cfg.Car.Start), NewPhysics(cfg.Car), road.NewGenerator(cfg.Track), rand.New(rand.NewSource(1))
}

func TestNewStateDefaults(t *testing.T) {
	s, _, _, _ := setup()
	assert.Equal(t, State{Speed: 27, Turn: 1, Section: 50}, s)
}

func TestCruiseFromDefaultsSpeedsUp(t *testing.T) {
	s, p, g, rng := setup()

	next, _ := Advance(s, input.State{}, p, g, rng)
	assert.Greater(t, next.Speed, s.Speed)
	assert.InDelta(t, 27.85, next.Speed, 1e-9)
}

func TestCruiseSettlesNearCruiseSpeed(t *testing.T) {
	s, p, g, rng := setup()
	for i := 0; i < 500; i++ {
		s, _ = Advance(s, input.State{}, p, g, rng)
		s.XPos = 0
	}
	assert.InDelta(t, p.CruiseSpeed(), s.Speed, p.Acc)
}

func TestAccelerateRaisesCruiseTarget(t *testing.T) {
	s, p, g, rng := setup()
	for i := 0; i < 200; i++ {
		s, _ = Advance(s, input.State{Accelerate: true}, p, g, rng)
		s.XPos = 0
	}
	assert.Greater(t, s.Speed, p.CruiseSpeed()+5)
	assert.LessOrEqual(t, s.Speed, p.MaxSpeed)
}

func TestBrakeOverridesCruise(t *testing.T) {
	s, p, g, rng := setup()

	next, _ := Advance(s, input.State{Brake: true, Accelerate: true}, p, g, rng)
	assert.InDelta(t, 26.5, next.Speed, 1e-9)

	s.Speed = 0.5
	next, _ = Advance(s, input.State{Brake: true}, p, g, rng)
	assert.Equal(t, 0.0, next.Speed)
}

func TestHoldingLeftPinsTurn(t *testing.T) {
	s, p, g, rng := setup()
	for i := 0; i < 10; i++ {
		s, _ = Advance(s, input.State{Left: true}, p, g, rng)
		assert.GreaterOrEqual(t, s.Turn, -TurnLimit)
	}
	assert.Equal(t, -5.0, s.Turn)
}

func TestSteeringMovesCar(t *testing.T) {
	s, p, g, rng := setup()

	left, _ := Advance(s, input.State{Left: true}, p, g, rng)
	// speed 27.85 is above max/4, so the factor is 50 - 27.85/2
	want := (1 + 7 + (50 - 27.85/2)) * 0.2
	assert.InDelta(t, want, left.XPos, 1e-9)
	assert.Equal(t, 0.0, left.Turn)

	right, _ := Advance(s, input.State{Right: true}, p, g, rng)
	assert.InDelta(t, -want, right.XPos, 1e-9)
	assert.Equal(t, 2.0, right.Turn)
}

func TestTurnRelaxesWithoutCrossingZero(t *testing.T) {
	s, p, g, rng := setup()
	s.Turn = 0.1

	next, _ := Advance(s, input.State{}, p, g, rng)
	assert.Equal(t, 0.0, next.Turn)

	s.Turn = -3
	next, _ = Advance(s, input.State{}, p, g, rng)
	assert.Equal(t, -2.75, next.Turn)
}

func TestNoSteeringWhenStopped(t *testing.T) {
	s, p, g, rng := setup()
	s.Speed = 0
	s.Turn = 2
	// brake keeps the speed at zero for the whole tick
	next, _ := Advance(s, input.State{Brake: true, Left: true}, p, g, rng)
	assert.Equal(t, 0.0, next.XPos)
	assert.Equal(t, 2.0, next.Turn)
}

func TestOffRoadDecay(t *testing.T) {
	tests := []struct {
		name string
		in   input.State
	}{
		{"no input", input.State{}},
		{"steering left", input.State{Left: true}},
		{"steering right", input.State{Right: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, p, g, rng := setup()
			s.XPos = 380
			s.Speed = 50
			s.Section = 1000

			next, ev := Advance(s, tt.in, p, g, rng)
			require.True(t, ev.OffRoad)
			// coasting takes 50 to 49.8 before the off-road penalty
			assert.InDelta(t, 0.96*49.8, next.Speed, 1e-9)
			assert.LessOrEqual(t, next.XPos, XLimit)
		})
	}
}

func TestXPosClamped(t *testing.T) {
	s, p, g, rng := setup()
	s.XPos = 399
	s.CurrentCurve = -50
	s.Curve = -50
	s.Speed = 40

	next, _ := Advance(s, input.State{Left: true}, p, g, rng)
	assert.Equal(t, XLimit, next.XPos)
}

func TestSectionRerolled(t *testing.T) {
	s, p, g, rng := setup()
	for i := 0; i < 20; i++ {
		s.Section = -5
		prev := s.Curve

		next, ev := Advance(s, input.State{}, p, g, rng)
		require.True(t, ev.Rerolled)
		assert.GreaterOrEqual(t, next.Section, 1000.0)
		assert.LessOrEqual(t, next.Section, 9000.0)
		assert.GreaterOrEqual(t, math.Abs(next.Curve-prev), 20.0)
		s = next
	}
}

func TestCurrentCurveNeverOvershoots(t *testing.T) {
	tests := []struct {
		name          string
		current, goal float64
		speed         float64
		want          float64
	}{
		{"steps toward a larger curve", 0, 10, 30, 0.3},
		{"steps toward a smaller curve", 0, -10, 30, -0.3},
		{"snaps when the step would pass", 9.9, 10, 30, 10},
		{"stays when already there", 10, 10, 30, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, p, g, rng := setup()
			s.CurrentCurve = tt.current
			s.Curve = tt.goal
			s.Speed = tt.speed
			s.Section = 1e6

			next, _ := Advance(s, input.State{}, p, g, rng)
			assert.InDelta(t, tt.want, next.CurrentCurve, 1e-9)
		})
	}
}

func TestInvariantsHoldUnderRandomInput(t *testing.T) {
	s, p, g, rng := setup()
	keys := rand.New(rand.NewSource(99))

	for i := 0; i < 20000; i++ {
		in := input.State{
			Accelerate: keys.Intn(2) == 0,
			Brake:      keys.Intn(5) == 0,
			Left:       keys.Intn(3) == 0,
			Right:      keys.Intn(3) == 0,
		}
		prevCurrent, prevGoal := s.CurrentCurve, s.Curve
		var ev Events
		s, ev = Advance(s, in, p, g, rng)

		require.GreaterOrEqual(t, s.Speed, 0.0)
		require.LessOrEqual(t, s.Speed, p.MaxSpeed)
		require.GreaterOrEqual(t, s.Turn, -TurnLimit)
		require.LessOrEqual(t, s.Turn, TurnLimit)
		require.GreaterOrEqual(t, s.XPos, -XLimit)
		require.LessOrEqual(t, s.XPos, XLimit)
		require.GreaterOrEqual(t, s.Section, 0.0)
		if !ev.Rerolled {
			// easing stays on the same side of an unchanged goal
			require.LessOrEqual(t, math.Abs(s.CurrentCurve-prevGoal), math.Abs(prevCurrent-prevGoal)+1e-9)
		}
	}
}

func TestAdvanceIsDeterministic(t *testing.T) {
	run := func() State {
		s, p, g, _ := setup()
		rng := rand.New(rand.NewSource(42))
		for i := 0; i < 5000; i++ {
			s, _ = Advance(s, input.State{Left: i%50 < 10}, p, g, rng)
		}
		return s
	}
	assert.Equal(t, run(), run())
}
