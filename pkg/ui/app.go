// Package ui runs a session in an ebiten window: it blits the engine's frame and
// draws the menu and pause overlays and the touch buttons on top.
package ui

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/golangdaddy/vroom/pkg/game"
	rebiten "github.com/golangdaddy/vroom/pkg/render/ebiten"
)

// Screen represents a UI screen interface
type Screen interface {
	Update() error
	Draw(screen *ebiten.Image)
}

// App implements the ebiten.Game interface around a game.Engine
type App struct {
	engine    *game.Engine
	controls  *Controls
	title     Screen
	pause     Screen
	resizable bool
}

// NewApp creates the window adapter. A resizable app follows the window size;
// otherwise the layout size is kept and ebiten scales the frame.
func NewApp(e *game.Engine, resizable bool) *App {
	return &App{
		engine:    e,
		controls:  NewControls(e.Config().Layout),
		title:     NewTitleScreen(e.Start),
		pause:     NewPauseScreen(e.Start),
		resizable: resizable,
	}
}

// overlay returns the screen drawn over the frame in the current mode
func (a *App) overlay() Screen {
	switch a.engine.Mode() {
	case game.Menu:
		return a.title
	case game.Paused:
		return a.pause
	}
	return nil
}

// Update handles input and advances the engine by one tick
func (a *App) Update() error {
	if err := a.controls.Update(a.engine); err != nil {
		return err
	}
	if ov := a.overlay(); ov != nil {
		if err := ov.Update(); err != nil {
			return err
		}
	}
	return a.engine.Tick()
}

// Draw renders the last engine frame and the overlays
func (a *App) Draw(screen *ebiten.Image) {
	if s, ok := a.engine.Surface().(*rebiten.Surface); ok {
		screen.DrawImage(s.Image(), nil)
	}
	if a.engine.Config().Layout.TouchControls && a.engine.Mode() != game.Paused {
		a.controls.Draw(screen)
	}
	if ov := a.overlay(); ov != nil {
		ov.Draw(screen)
	}
}

// Layout returns the game's screen dimensions
func (a *App) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	if a.resizable && outsideWidth > 0 && outsideHeight > 0 {
		// applied by the engine on its next tick
		if err := a.engine.Resize(outsideWidth, outsideHeight); err == nil {
			return outsideWidth, outsideHeight
		}
	}
	return a.engine.Size()
}
