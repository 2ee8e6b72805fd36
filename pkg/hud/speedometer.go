// Package hud draws the speedometer over the road.
package hud

import (
	"fmt"
	"image/color"

	"github.com/golangdaddy/vroom/pkg/render"
)

// MPHPerSpeedUnit converts simulation speed to the MPH shown on the readout.
// A top speed of 50 reads as 100 MPH.
const MPHPerSpeedUnit = 2.0

// Dial geometry
const (
	Radius      = 50.0
	ringWidth   = 7.0
	tickSize    = 7.0
	needleWidth = 4.0
	hubRadius   = 9.0
)

// TickAngles are the scale marks in degrees, clockwise from the positive x axis.
var TickAngles = []float64{0, 90, 135, 180, 225, 270, 315}

var (
	dialColor   = render.Alpha(color.RGBA{A: 0xff}, 0.4)
	needleColor = render.MustParseHexColor("#FF9166")
)

// Speedometer represents the round speed gauge.
type Speedometer struct {
	X, Y  float64
	Color color.Color
	// Readout adds the speed in MPH under the dial when the surface can draw text.
	Readout bool
}

// NewSpeedometer creates a gauge centred at (x, y).
func NewSpeedometer(x, y float64, c color.Color) *Speedometer {
	return &Speedometer{
		X:       x,
		Y:       y,
		Color:   c,
		Readout: true,
	}
}

// NeedleAngle maps speed onto the dial: stopped points straight down (90°), top speed
// points right (360°).
func NeedleAngle(speed, maxSpeed float64) float64 {
	return render.MapRange(speed, 0, maxSpeed, 90, 360)
}

// Draw paints the gauge for the given speed.
func (sp *Speedometer) Draw(s render.Surface, speed, maxSpeed float64) {
	ring := render.Stroke{Width: ringWidth, Cap: render.CapRound, Join: render.JoinRound}

	dial := render.NewPath()
	dial.Circle(sp.X, sp.Y, Radius)
	s.FillPath(dial, render.Solid(dialColor))
	s.StrokePath(dial, ring, sp.Color)

	for _, a := range TickAngles {
		from := render.CirclePoint(sp.X, sp.Y, Radius-4, a)
		to := render.CirclePoint(sp.X, sp.Y, Radius-tickSize, a)
		tick := render.NewPath()
		tick.MoveTo(from.X, from.Y)
		tick.LineTo(to.X, to.Y)
		s.StrokePath(tick, ring, sp.Color)
	}

	sp.drawNeedle(s, NeedleAngle(speed, maxSpeed))

	if td, ok := s.(render.TextDrawer); ok && sp.Readout {
		sp.drawReadout(td, speed*MPHPerSpeedUnit)
	}
}

// drawNeedle draws a thin arrow from the hub to the dial and the hub on top.
func (sp *Speedometer) drawNeedle(s render.Surface, angle float64) {
	tip := render.CirclePoint(sp.X, sp.Y, Radius-20, angle)
	left := render.CirclePoint(sp.X, sp.Y, 2, angle+90)
	right := render.CirclePoint(sp.X, sp.Y, 2, angle-90)

	needle := render.NewPath()
	needle.MoveTo(left.X, left.Y)
	needle.LineTo(tip.X, tip.Y)
	needle.LineTo(right.X, right.Y)
	s.StrokePath(needle, render.Stroke{Width: needleWidth, Cap: render.CapRound, Join: render.JoinRound}, needleColor)

	hub := render.NewPath()
	hub.Circle(sp.X, sp.Y, hubRadius)
	s.FillPath(hub, render.Solid(sp.Color))
}

func (sp *Speedometer) drawReadout(td render.TextDrawer, mph float64) {
	speedText := fmt.Sprintf("%.0f", mph)
	textScale := 2.0
	w, h := td.MeasureText(speedText, textScale)
	y := sp.Y + Radius + 8
	td.DrawText(speedText, sp.X-w/2, y, textScale, ReadoutColor(mph))

	labelText := "MPH"
	lw, _ := td.MeasureText(labelText, 1)
	td.DrawText(labelText, sp.X-lw/2, y+h+2, 1, color.RGBA{200, 200, 200, 255})
}

// ReadoutColor is green for normal speeds, yellow when fast and red when very fast.
func ReadoutColor(mph float64) color.RGBA {
	if mph < 50 {
		return color.RGBA{100, 255, 100, 255}
	} else if mph < 80 {
		return color.RGBA{255, 255, 100, 255}
	}
	return color.RGBA{255, 100, 100, 255}
}
