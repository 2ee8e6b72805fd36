package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/golangdaddy/vroom/pkg/config"
	"github.com/golangdaddy/vroom/pkg/game"
	"github.com/golangdaddy/vroom/pkg/input"
)

var (
	buttonColor   = color.RGBA{37, 99, 235, 230}
	buttonPressed = color.RGBA{59, 130, 246, 255}
	buttonRing    = color.RGBA{255, 255, 255, 80}
)

// Controls reads the keyboard and the on-screen buttons once per tick
type Controls struct {
	layout   config.LayoutConfig
	touchIDs []ebiten.TouchID
	held     input.State
}

// NewControls creates the controls for a layout
func NewControls(layout config.LayoutConfig) *Controls {
	return &Controls{layout: layout}
}

// Update handles pause, restart and steering for e
func (c *Controls) Update(e *game.Engine) error {
	if inpututil.IsKeyJustPressed(ebiten.KeyP) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		switch e.Mode() {
		case game.Playing:
			e.Pause()
		case game.Paused:
			e.Start()
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := e.Reset(); err != nil {
			return err
		}
	}

	keys := input.State{
		Accelerate: ebiten.IsKeyPressed(ebiten.KeyArrowUp),
		Brake:      ebiten.IsKeyPressed(ebiten.KeyArrowDown),
		Left:       ebiten.IsKeyPressed(ebiten.KeyArrowLeft),
		Right:      ebiten.IsKeyPressed(ebiten.KeyArrowRight),
	}
	c.held = keys
	if c.layout.TouchControls {
		w, h := e.Size()
		left, right := c.zones(w, h)
		c.held = input.Merge(keys, input.Steering(c.pointers(), left, right))
	}
	e.SetControls(c.held)
	return nil
}

func (c *Controls) zones(w, h int) (left, right input.TouchZone) {
	return input.TouchZones(float64(w), float64(h), c.layout.ControlSize, c.layout.ControlMargin)
}

// pointers returns the touches and the pressed mouse cursor
func (c *Controls) pointers() []input.Point {
	var pts []input.Point
	c.touchIDs = ebiten.AppendTouchIDs(c.touchIDs[:0])
	for _, id := range c.touchIDs {
		x, y := ebiten.TouchPosition(id)
		pts = append(pts, input.Point{X: float64(x), Y: float64(y)})
	}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		pts = append(pts, input.Point{X: float64(x), Y: float64(y)})
	}
	return pts
}

// Draw renders the steering buttons
func (c *Controls) Draw(screen *ebiten.Image) {
	b := screen.Bounds()
	left, right := c.zones(b.Dx(), b.Dy())
	drawButton(screen, left, "<", c.held.Left)
	drawButton(screen, right, ">", c.held.Right)
}

func drawButton(screen *ebiten.Image, z input.TouchZone, label string, pressed bool) {
	fill := buttonColor
	r := z.Radius
	if pressed {
		fill = buttonPressed
		r *= 0.95
	}
	vector.DrawFilledCircle(screen, float32(z.X), float32(z.Y), float32(r), fill, true)
	vector.StrokeCircle(screen, float32(z.X), float32(z.Y), float32(r-2), 4, buttonRing, true)

	scale := 2.0
	w := textWidth(label) * scale
	drawText(screen, label, z.X-w/2, z.Y-8*scale, scale, color.White)
}
