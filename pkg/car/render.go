// Package car draws the player's car seen from behind.
package car

import (
	"image/color"
	"math"

	"github.com/golangdaddy/vroom/pkg/config"
	"github.com/golangdaddy/vroom/pkg/render"
)

// Car dimensions
const (
	Width  = 160.0
	Height = 50.0
)

var (
	shadowColor     = render.Alpha(render.MustParseHexColor("#000"), 0.35)
	tireColor       = render.MustParseHexColor("#111")
	frontColor      = render.MustParseHexColor("#C2C2C2")
	windscreenColor = render.MustParseHexColor("#FFFFFF")
	bodyColor       = render.MustParseHexColor("#DEE0E2")
	bumperColor     = render.MustParseHexColor("#474747")
	lightColor      = render.MustParseHexColor("#FF9166")
	plateColor      = render.MustParseHexColor("#FFF")
)

// panelStroke thickens the body panels so their corners come out rounded.
var panelStroke = render.Stroke{Width: 12, Cap: render.CapRound, Join: render.JoinRound}

// lights are the x offsets of the four rear lights.
var lights = []float64{10, 26, 134, 152}

// Render draws the car centred horizontally. turn leans the body: panels shift
// sideways and rectangles skew vertically by turn times a per-part factor.
func Render(s render.Surface, turn float64, layout config.LayoutConfig) {
	w, h := s.Size()
	wheelY, bodyY := layout.Baselines(float64(h))
	carX := float64(w)/2 - Width/2

	// shadow
	s.FillPath(RoundedRect(carX-1+turn, wheelY+(Height-35), Width+10, Height, 9, 0), render.Solid(shadowColor))

	// tires
	s.FillPath(RoundedRect(carX, wheelY+(Height-30), 30, 40, 6, 0), render.Solid(tireColor))
	s.FillPath(RoundedRect(carX-22+Width, wheelY+(Height-30), 30, 40, 6, 0), render.Solid(tireColor))

	renderBody(s, carX, bodyY, turn)
}

func renderBody(s render.Surface, x, y, turn float64) {
	// front
	s.FillPath(RoundedRect(x+6+turn*1.1, y-18, 146, 40, 18, 0), render.Solid(frontColor))
	panel(s, windscreenColor,
		render.Point{X: x + 30, Y: y},
		render.Point{X: x + 46 + turn, Y: y - 25},
		render.Point{X: x + 114 + turn, Y: y - 25},
		render.Point{X: x + 130, Y: y},
	)

	// body
	lean := turn * 0.2
	body := render.NewPath()
	body.MoveTo(x+2, y+12+lean)
	body.LineTo(x+159, y+12+lean)
	body.QuadTo(x+166, y+35, x+159, y+55+lean)
	body.LineTo(x+2, y+55-lean)
	body.QuadTo(x-5, y+32, x+2, y+12-lean)
	s.FillPath(body, render.Solid(bodyColor))
	s.StrokePath(body, panelStroke, bodyColor)

	// hood
	panel(s, bodyColor,
		render.Point{X: x + 30, Y: y},
		render.Point{X: x + 40 + turn*0.7, Y: y - 15},
		render.Point{X: x + 120 + turn*0.7, Y: y - 15},
		render.Point{X: x + 130, Y: y},
	)

	// bumpers
	s.FillPath(RoundedRect(x-4, y, 169, 10, 3, turn*0.2), render.Solid(bumperColor))
	s.FillPath(RoundedRect(x+40, y+5, 80, 10, 5, turn*0.1), render.Solid(bumperColor))

	lightsY := 0.0
	for _, lx := range lights {
		p := render.NewPath()
		p.Circle(x+lx, y+20+lightsY, 6)
		s.FillPath(p, render.Solid(lightColor))
		lightsY += turn * 0.05
	}

	// number plate
	s.FillPath(RoundedRect(x+60, y+25, 40, 18, 3, turn*0.05), render.Solid(plateColor))
}

// panel fills an open outline and strokes it with the same colour.
func panel(s render.Surface, c color.Color, pts ...render.Point) {
	p := render.NewPath()
	p.MoveTo(pts[0].X, pts[0].Y)
	for _, pt := range pts[1:] {
		p.LineTo(pt.X, pt.Y)
	}
	s.FillPath(p, render.Solid(c))
	s.StrokePath(p, panelStroke, c)
}

// RoundedRect returns a rectangle with rounded corners. skew lifts the left side and
// drops the right side by the same amount, which reads as the car leaning into a turn.
func RoundedRect(x, y, width, height, radius, skew float64) *render.Path {
	radius = math.Min(radius, math.Min(width, height)/2)
	top := y - skew
	topRight := y + skew
	bottom := y + height + skew
	bottomLeft := y + height - skew

	p := render.NewPath()
	p.MoveTo(x+radius, top)

	// top right
	p.LineTo(x+width-radius, topRight)
	p.ArcTo(x+width, topRight, x+width, topRight+radius, radius)
	p.LineTo(x+width, topRight+radius)

	// down right
	p.LineTo(x+width, bottom-radius)
	p.ArcTo(x+width, bottom, x+width-radius, bottom, radius)
	p.LineTo(x+width-radius, bottom)

	// down left
	p.LineTo(x+radius, bottomLeft)
	p.ArcTo(x, bottomLeft, x, bottomLeft-radius, radius)
	p.LineTo(x, bottomLeft-radius)

	// top left
	p.LineTo(x, top+radius)
	p.ArcTo(x, top, x+radius, top, radius)
	p.LineTo(x+radius, top)
	p.Close()
	return p
}
