package input

import "math"

// Autopilot steers back toward the road centre. It looks at where the car will be
// after the curve drift of the next tick and holds a direction while that is outside
// the deadband.
type Autopilot struct {
	// Deadband is the lateral distance from the centre that is left alone.
	Deadband float64
	// BrakeAbove brakes when the car is this far off centre; zero disables braking.
	BrakeAbove float64
}

// NewAutopilot returns an autopilot tuned for the default road.
func NewAutopilot() *Autopilot {
	return &Autopilot{
		Deadband:   40,
		BrakeAbove: 330,
	}
}

// Decide returns the controls for a car at xpos with the given curve easing and speed.
// Positive xpos means the car has drifted left of centre; steering right reduces it.
func (a *Autopilot) Decide(xpos, currentCurve, speed float64) State {
	predicted := xpos - currentCurve*speed*0.005
	var s State
	switch {
	case predicted > a.Deadband:
		s.Right = true
	case predicted < -a.Deadband:
		s.Left = true
	}
	if a.BrakeAbove > 0 && math.Abs(predicted) > a.BrakeAbove {
		s.Brake = true
	}
	return s
}
