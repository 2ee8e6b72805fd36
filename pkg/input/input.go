// Package input holds the directional controls read by the simulation at the start of each tick.
package input

import "fmt"

// Signal identifies one directional control.
type Signal int

const (
	Accelerate Signal = iota
	Brake
	Left
	Right
)

func (s Signal) String() string {
	switch s {
	case Accelerate:
		return "accelerate"
	case Brake:
		return "brake"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return fmt.Sprintf("signal(%d)", int(s))
}

// Event is a press or release edge coming from a keyboard, pointer or autopilot.
type Event struct {
	Signal  Signal
	Pressed bool
}

// State represents the controls held at a tick boundary.
type State struct {
	Accelerate bool
	Brake      bool
	Left       bool
	Right      bool
}

// Apply records an edge. Edges arriving between ticks overwrite each other, so the
// last write before a tick wins.
func (s *State) Apply(e Event) {
	switch e.Signal {
	case Accelerate:
		s.Accelerate = e.Pressed
	case Brake:
		s.Brake = e.Pressed
	case Left:
		s.Left = e.Pressed
	case Right:
		s.Right = e.Pressed
	}
}

// ApplyAll records a batch of edges in order.
func (s *State) ApplyAll(events []Event) {
	for _, e := range events {
		s.Apply(e)
	}
}

// Held reports whether a signal is currently pressed.
func (s State) Held(sig Signal) bool {
	switch sig {
	case Accelerate:
		return s.Accelerate
	case Brake:
		return s.Brake
	case Left:
		return s.Left
	case Right:
		return s.Right
	}
	return false
}

// Diff returns the edges that turn s into next.
func (s State) Diff(next State) []Event {
	var events []Event
	for _, sig := range []Signal{Accelerate, Brake, Left, Right} {
		if s.Held(sig) != next.Held(sig) {
			events = append(events, Event{Signal: sig, Pressed: next.Held(sig)})
		}
	}
	return events
}
