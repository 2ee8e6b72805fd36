package input

// Point is a pointer position in screen pixels.
type Point struct {
	X, Y float64
}

// TouchZone is a round on-screen button.
type TouchZone struct {
	X, Y   float64
	Radius float64
}

// Contains reports whether p is on the button.
func (z TouchZone) Contains(p Point) bool {
	dx, dy := p.X-z.X, p.Y-z.Y
	return dx*dx+dy*dy <= z.Radius*z.Radius
}

// TouchZones returns the steering buttons for a width×height screen: circles of the
// given diameter in the bottom corners, margin pixels in from both edges.
func TouchZones(width, height, size, margin float64) (left, right TouchZone) {
	r := size / 2
	y := height - margin - r
	left = TouchZone{X: margin + r, Y: y, Radius: r}
	right = TouchZone{X: width - margin - r, Y: y, Radius: r}
	return left, right
}

// Steering returns the controls held by the pointers currently down.
func Steering(pointers []Point, left, right TouchZone) State {
	var s State
	for _, p := range pointers {
		if left.Contains(p) {
			s.Left = true
		}
		if right.Contains(p) {
			s.Right = true
		}
	}
	return s
}

// Merge returns the union of held controls.
func Merge(states ...State) State {
	var out State
	for _, s := range states {
		out.Accelerate = out.Accelerate || s.Accelerate
		out.Brake = out.Brake || s.Brake
		out.Left = out.Left || s.Left
		out.Right = out.Right || s.Right
	}
	return out
}
