package render

import "math"

// Norm maps value from [min, max] onto [0, 1]. A degenerate range yields 0;
// configuration validation rejects such ranges before they reach the renderers.
func Norm(value, min, max float64) float64 {
	if max == min {
		return 0
	}
	return (value - min) / (max - min)
}

// Lerp maps a normalised value onto [min, max].
func Lerp(norm, min, max float64) float64 {
	return (max-min)*norm + min
}

// MapRange maps value from the source range onto the destination range.
func MapRange(value, srcMin, srcMax, dstMin, dstMax float64) float64 {
	return Lerp(Norm(value, srcMin, srcMax), dstMin, dstMax)
}

// CirclePoint returns the point on a circle at angle degrees (clockwise on screen).
func CirclePoint(cx, cy, radius, degrees float64) Point {
	rad := degrees / 180 * math.Pi
	return Point{
		X: cx + radius*math.Cos(rad),
		Y: cy + radius*math.Sin(rad),
	}
}
