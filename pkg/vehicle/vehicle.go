// Package vehicle models the lateral and longitudinal motion of the player's car.
package vehicle

import "github.com/golangdaddy/vroom/pkg/config"

const (
	// TurnLimit bounds the visual steering lean.
	TurnLimit = 5.0
	// XLimit bounds the lateral offset from the road centre.
	XLimit = 400.0
	// OffRoad is the lateral offset beyond which the car loses speed.
	OffRoad = 350.0
	// OffRoadDecay is the speed factor applied on every off-road tick.
	OffRoadDecay = 0.96
)

// State represents the car relative to the road.
type State struct {
	Speed        float64 `json:"speed"`
	XPos         float64 `json:"xpos"`
	Turn         float64 `json:"turn"`
	Curve        float64 `json:"curve"`
	CurrentCurve float64 `json:"currentCurve"`
	Section      float64 `json:"section"`
}

// NewState returns the state a run starts from.
func NewState(start config.StartConfig) State {
	return State{
		Speed:   start.Speed,
		XPos:    start.XPos,
		Turn:    start.Turn,
		Section: start.Section,
	}
}

// Events reports what happened during a tick besides the state change itself.
type Events struct {
	Rerolled bool
	OffRoad  bool
}
