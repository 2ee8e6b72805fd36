// Package render defines the drawing capability the simulation renders through.
//
// Every renderer in the module draws onto a Surface and never touches a concrete
// graphics API. Backends live in sub-packages: render/ebiten draws onto GPU images
// inside an ebiten window, render/raster draws into an *image.RGBA for headless runs.
package render

import (
	"errors"
	"image/color"
)

var (
	// ErrInvalidSize is returned when a surface is requested with a non-positive size.
	ErrInvalidSize = errors.New("render: surface size must be positive")
	// ErrForeignSurface is returned when a surface from another backend is passed in.
	ErrForeignSurface = errors.New("render: surface belongs to another backend")
)

// LineCap is the shape used at the ends of open stroked paths.
type LineCap int

const (
	CapButt LineCap = iota
	CapRound
)

// LineJoin is the shape used where two stroked segments meet.
type LineJoin int

const (
	JoinMiter LineJoin = iota
	JoinRound
)

// Stroke describes how a path outline is drawn.
type Stroke struct {
	Width float64
	Cap   LineCap
	Join  LineJoin
}

// Pattern is a backend specific repeating fill built from a small tile surface.
type Pattern interface {
	// TileSize returns the size of the repeating tile in pixels.
	TileSize() (width, height int)
}

// Snapshot is a captured raster region that can be replayed with DrawSnapshot.
type Snapshot interface {
	Size() (width, height int)
}

// Paint is what a filled area is painted with: a solid colour or a tiled pattern.
// A non-nil Pattern wins over Color.
type Paint struct {
	Color   color.Color
	Pattern Pattern
}

// Solid returns a paint of a single colour.
func Solid(c color.Color) Paint {
	return Paint{Color: c}
}

// Tiled returns a paint that repeats the pattern in surface space.
func Tiled(p Pattern) Paint {
	return Paint{Pattern: p}
}

// Surface is a raster drawable of fixed pixel dimensions.
type Surface interface {
	// Size returns the surface dimensions in pixels.
	Size() (width, height int)

	// Clear resets every pixel to transparent.
	Clear()

	// FillRect fills an axis aligned rectangle.
	FillRect(x, y, width, height float64, paint Paint)

	// FillPath fills the closed sub-paths of p using the non-zero winding rule.
	FillPath(p *Path, paint Paint)

	// StrokePath draws the outline of p.
	StrokePath(p *Path, stroke Stroke, c color.Color)

	// CaptureSnapshot copies the given region into a snapshot.
	CaptureSnapshot(x, y, width, height int) Snapshot

	// DrawSnapshot draws a snapshot with its top-left corner at (x, y).
	DrawSnapshot(s Snapshot, x, y float64)

	// CreateTiledPattern builds a repeating pattern from the current contents of tile.
	// tile must come from the same backend, usually via NewSurface.
	CreateTiledPattern(tile Surface) (Pattern, error)

	// NewSurface allocates an off-screen surface of the same backend.
	NewSurface(width, height int) (Surface, error)
}

// TextDrawer is implemented by surfaces able to render text.
type TextDrawer interface {
	// DrawText draws s with its top-left corner at (x, y).
	DrawText(s string, x, y, scale float64, c color.Color)
	// MeasureText returns the extent of s at the given scale.
	MeasureText(s string, scale float64) (width, height float64)
}

// Disposer is implemented by surfaces holding resources that must be released.
type Disposer interface {
	Dispose()
}

// Dispose releases s if the backend needs it.
func Dispose(s Surface) {
	if d, ok := s.(Disposer); ok {
		d.Dispose()
	}
}
