// Package background paints the sky and mountain band and scrolls it sideways with the road curve.
package background

import (
	"image/color"
	"math"

	"github.com/golangdaddy/vroom/pkg/render"
)

// Mountain is one triangular peak standing on the horizon.
type Mountain struct {
	Pos    float64
	Height float64
	Width  float64
}

// DefaultMountains is the fixed range behind the road.
var DefaultMountains = []Mountain{
	{Pos: 0, Height: 60, Width: 150},
	{Pos: 120, Height: 40, Width: 120},
	{Pos: 200, Height: 80, Width: 140},
	{Pos: 300, Height: 60, Width: 100},
}

// mountainStroke rounds off the peaks.
var mountainStroke = render.Stroke{Width: 20, Join: render.JoinRound}

// Generator creates the parallax backdrop.
type Generator struct {
	SkySize   float64
	Sky       color.Color
	Ridge     color.Color
	Mountains []Mountain
}

// NewGenerator creates a generator with the default mountain range.
func NewGenerator(skySize float64, sky, mountains color.Color) *Generator {
	return &Generator{
		SkySize:   skySize,
		Sky:       sky,
		Ridge:     mountains,
		Mountains: DefaultMountains,
	}
}

// Paint draws the sky band and the mountains onto s.
func (g *Generator) Paint(s render.Surface) {
	w, _ := s.Size()
	s.FillRect(0, 0, float64(w), g.SkySize, render.Solid(g.Sky))
	for _, m := range g.Mountains {
		g.drawMountain(s, m)
	}
}

// Capture paints the backdrop onto s and returns a snapshot of the sky band.
func (g *Generator) Capture(s render.Surface) render.Snapshot {
	w, _ := s.Size()
	g.Paint(s)
	return s.CaptureSnapshot(0, 0, w, int(math.Ceil(g.SkySize)))
}

// drawMountain draws a peak with a thick round-jointed outline so the tip is rounded.
func (g *Generator) drawMountain(s render.Surface, m Mountain) {
	p := render.NewPath()
	p.MoveTo(m.Pos, g.SkySize)
	p.LineTo(m.Pos+m.Width/2, g.SkySize-m.Height)
	p.LineTo(m.Pos+m.Width, g.SkySize)
	p.Close()
	s.StrokePath(p, mountainStroke, g.Ridge)
	s.FillPath(p, render.Solid(g.Ridge))
}

// Scroll blits the snapshot at bgpos and once more a full width to the side so the
// band wraps seamlessly.
func Scroll(s render.Surface, snap render.Snapshot, bgpos float64) {
	w, _ := s.Size()
	s.DrawSnapshot(snap, bgpos, 0)
	s.DrawSnapshot(snap, Companion(bgpos, float64(w)), 0)
}

// Companion is the x of the second blit that fills the gap left by the first.
func Companion(bgpos, width float64) float64 {
	if bgpos > 0 {
		return bgpos - width
	}
	return bgpos + width
}

// Advance scrolls the backdrop against the road curve. The result stays in (-width, width).
func Advance(bgpos, currentCurve, speed, width float64) float64 {
	bgpos += currentCurve * 0.02 * speed * 0.2
	if width <= 0 {
		return bgpos
	}
	return math.Mod(bgpos, width)
}
