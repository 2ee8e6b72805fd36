// Package rendertest provides a render.Surface that records draw calls instead of drawing.
package rendertest

import (
	"fmt"
	"image/color"

	"github.com/golangdaddy/vroom/pkg/render"
)

// OpKind names a recorded call.
type OpKind string

const (
	OpClear        OpKind = "clear"
	OpFillRect     OpKind = "fill_rect"
	OpFillPath     OpKind = "fill_path"
	OpStrokePath   OpKind = "stroke_path"
	OpCapture      OpKind = "capture"
	OpDrawSnapshot OpKind = "draw_snapshot"
	OpPattern      OpKind = "pattern"
	OpText         OpKind = "text"
)

// Op is one recorded call. Only the fields relevant to Kind are set.
type Op struct {
	Kind     OpKind
	X, Y     float64
	W, H     float64
	Path     *render.Path
	Paint    render.Paint
	Stroke   render.Stroke
	Color    color.Color
	Snapshot render.Snapshot
	Text     string
	Scale    float64
}

// Surface records every call made on it.
type Surface struct {
	W, H     int
	Ops      []Op
	Children []*Surface
	Disposed bool
}

var (
	_ render.Surface    = (*Surface)(nil)
	_ render.TextDrawer = (*Surface)(nil)
	_ render.Disposer   = (*Surface)(nil)
)

// New creates a recording surface.
func New(w, h int) *Surface {
	return &Surface{W: w, H: h}
}

// Factory allocates recording surfaces and rejects non-positive sizes like the real backends.
func Factory(w, h int) (render.Surface, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: got %dx%d", render.ErrInvalidSize, w, h)
	}
	return New(w, h), nil
}

// Reset forgets the recorded calls.
func (s *Surface) Reset() {
	s.Ops = nil
}

// OfKind returns the recorded calls of one kind in order.
func (s *Surface) OfKind(kind OpKind) []Op {
	var ops []Op
	for _, op := range s.Ops {
		if op.Kind == kind {
			ops = append(ops, op)
		}
	}
	return ops
}

// Count returns how many calls of a kind were recorded.
func (s *Surface) Count(kind OpKind) int {
	return len(s.OfKind(kind))
}

// Kinds returns the kinds of all recorded calls in order.
func (s *Surface) Kinds() []OpKind {
	kinds := make([]OpKind, len(s.Ops))
	for i, op := range s.Ops {
		kinds[i] = op.Kind
	}
	return kinds
}

func (s *Surface) Size() (int, int) { return s.W, s.H }

func (s *Surface) Clear() {
	s.Ops = append(s.Ops, Op{Kind: OpClear})
}

func (s *Surface) FillRect(x, y, w, h float64, paint render.Paint) {
	s.Ops = append(s.Ops, Op{Kind: OpFillRect, X: x, Y: y, W: w, H: h, Paint: paint})
}

func (s *Surface) FillPath(p *render.Path, paint render.Paint) {
	s.Ops = append(s.Ops, Op{Kind: OpFillPath, Path: p, Paint: paint})
}

func (s *Surface) StrokePath(p *render.Path, stroke render.Stroke, c color.Color) {
	s.Ops = append(s.Ops, Op{Kind: OpStrokePath, Path: p, Stroke: stroke, Color: c})
}

func (s *Surface) CaptureSnapshot(x, y, w, h int) render.Snapshot {
	snap := &Snapshot{Source: s, X: x, Y: y, W: w, H: h}
	s.Ops = append(s.Ops, Op{Kind: OpCapture, X: float64(x), Y: float64(y), W: float64(w), H: float64(h), Snapshot: snap})
	return snap
}

func (s *Surface) DrawSnapshot(snap render.Snapshot, x, y float64) {
	s.Ops = append(s.Ops, Op{Kind: OpDrawSnapshot, X: x, Y: y, Snapshot: snap})
}

func (s *Surface) CreateTiledPattern(tile render.Surface) (render.Pattern, error) {
	t, ok := tile.(*Surface)
	if !ok {
		return nil, render.ErrForeignSurface
	}
	p := &Pattern{Tile: t, Ops: len(t.Ops)}
	s.Ops = append(s.Ops, Op{Kind: OpPattern})
	return p, nil
}

func (s *Surface) NewSurface(w, h int) (render.Surface, error) {
	child, err := Factory(w, h)
	if err != nil {
		return nil, err
	}
	s.Children = append(s.Children, child.(*Surface))
	return child, nil
}

func (s *Surface) DrawText(str string, x, y, scale float64, c color.Color) {
	s.Ops = append(s.Ops, Op{Kind: OpText, Text: str, X: x, Y: y, Scale: scale, Color: c})
}

// MeasureText pretends every glyph is a 7x13 cell.
func (s *Surface) MeasureText(str string, scale float64) (float64, float64) {
	return float64(len(str)*7) * scale, 13 * scale
}

func (s *Surface) Dispose() {
	s.Disposed = true
}

// Snapshot is a recorded capture.
type Snapshot struct {
	Source     *Surface
	X, Y, W, H int
}

func (s *Snapshot) Size() (int, int) { return s.W, s.H }

// Pattern is a recorded tiled pattern. Ops is how many calls the tile had seen when
// the pattern was created.
type Pattern struct {
	Tile *Surface
	Ops  int
}

func (p *Pattern) TileSize() (int, int) { return p.Tile.W, p.Tile.H }
