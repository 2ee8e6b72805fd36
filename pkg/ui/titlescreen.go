package ui

import (
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/bitmapfont/v4"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var face = text.NewGoXFace(bitmapfont.Face)

// TitleScreen represents the menu overlay drawn over the static first frame
type TitleScreen struct {
	startTime      time.Time
	onStartPressed func() // Callback when user presses to start
}

// NewTitleScreen creates a new title screen
func NewTitleScreen(onStartPressed func()) *TitleScreen {
	return &TitleScreen{
		startTime:      time.Now(),
		onStartPressed: onStartPressed,
	}
}

// Update handles input for the title screen
func (ts *TitleScreen) Update() error {
	if startPressed() && ts.onStartPressed != nil {
		ts.onStartPressed()
	}
	return nil
}

// Draw renders the title over the road
func (ts *TitleScreen) Draw(screen *ebiten.Image) {
	width, height := screen.Bounds().Dx(), screen.Bounds().Dy()
	dim(screen, color.RGBA{0, 0, 0, 110})

	elapsed := time.Since(ts.startTime).Seconds()
	centerY := float64(height) / 3

	// Pulsing scale effect (1.0 to 1.1)
	pulseScale := 1.0 + 0.1*math.Sin(elapsed*2.0)
	titleScale := 6.0 * pulseScale
	if width < 500 {
		titleScale = 4.0 * pulseScale
	}

	brightness := math.Min(1.0, 1.0+0.2*math.Sin(elapsed*1.5))
	titleColor := color.RGBA{
		uint8(255 * brightness),
		uint8(200 * brightness),
		uint8(50 * brightness),
		255,
	}
	drawCentered(screen, "VROOM", centerY-8, titleScale, titleColor)
	drawCentered(screen, "Endless Road", centerY+70, 2, color.RGBA{230, 230, 240, 255})

	// Blink every 0.5 seconds
	if int(elapsed*2)%2 == 0 {
		drawCentered(screen, "Press ENTER or SPACE to Start", float64(height)/2+40, 1.5, color.RGBA{150, 200, 255, 255})
	}
	drawCentered(screen, "Arrows steer  P pauses  R restarts", float64(height)/2+70, 1, color.RGBA{200, 200, 200, 255})
}

// PauseScreen is drawn over a paused race
type PauseScreen struct {
	onResume func()
}

// NewPauseScreen creates a pause overlay that calls onResume on ENTER, SPACE or a click
func NewPauseScreen(onResume func()) *PauseScreen {
	return &PauseScreen{onResume: onResume}
}

func (ps *PauseScreen) Update() error {
	if startPressed() && ps.onResume != nil {
		ps.onResume()
	}
	return nil
}

func (ps *PauseScreen) Draw(screen *ebiten.Image) {
	height := screen.Bounds().Dy()
	dim(screen, color.RGBA{0, 0, 0, 140})
	drawCentered(screen, "PAUSED", float64(height)/3, 5, color.White)
	drawCentered(screen, "P or SPACE to resume  R to restart", float64(height)/2, 1.5, color.RGBA{200, 200, 200, 255})
}

func startPressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyEnter) ||
		inpututil.IsKeyJustPressed(ebiten.KeySpace) ||
		inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
}

func dim(screen *ebiten.Image, c color.Color) {
	b := screen.Bounds()
	vector.DrawFilledRect(screen, 0, 0, float32(b.Dx()), float32(b.Dy()), c, false)
}

// drawCentered draws str horizontally centred with its top at y
func drawCentered(screen *ebiten.Image, str string, y, scale float64, c color.Color) {
	width := screen.Bounds().Dx()
	drawText(screen, str, float64(width)/2-textWidth(str)*scale/2, y, scale, c)
}

func textWidth(str string) float64 {
	return text.Advance(str, face)
}

func drawText(screen *ebiten.Image, str string, x, y, scale float64, c color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(screen, str, face, op)
}
