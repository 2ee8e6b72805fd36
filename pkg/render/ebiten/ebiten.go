// Package ebiten implements render.Surface on top of ebiten images.
package ebiten

import (
	"fmt"
	"image"
	"image/color"
	"sync"

	"github.com/hajimehoshi/bitmapfont/v4"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/golangdaddy/vroom/pkg/render"
)

var (
	whiteOnce     sync.Once
	whiteSubImage *ebiten.Image
	face          = text.NewGoXFace(bitmapfont.Face)
)

// white returns a 1x1 white source for solid fills. It is cut from the middle of a
// 3x3 image so sampling at the edges stays white.
func white() *ebiten.Image {
	whiteOnce.Do(func() {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		whiteSubImage = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	})
	return whiteSubImage
}

// Surface wraps an ebiten.Image to implement render.Surface.
type Surface struct {
	img *ebiten.Image
	vs  []ebiten.Vertex
	is  []uint16
}

var (
	_ render.Surface    = (*Surface)(nil)
	_ render.TextDrawer = (*Surface)(nil)
	_ render.Disposer   = (*Surface)(nil)
)

// New creates an off-screen surface.
func New(width, height int) (*Surface, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: got %dx%d", render.ErrInvalidSize, width, height)
	}
	return Wrap(ebiten.NewImage(width, height)), nil
}

// Factory allocates ebiten surfaces; it matches game.SurfaceFactory.
func Factory(width, height int) (render.Surface, error) {
	return New(width, height)
}

// Wrap adapts an existing image.
func Wrap(img *ebiten.Image) *Surface {
	return &Surface{img: img}
}

// Image returns the underlying ebiten.Image.
func (s *Surface) Image() *ebiten.Image {
	return s.img
}

// Size returns the width and height of the image.
func (s *Surface) Size() (int, int) {
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

// Clear clears the image to transparent.
func (s *Surface) Clear() {
	s.img.Clear()
}

// FillRect fills an axis aligned rectangle.
func (s *Surface) FillRect(x, y, w, h float64, paint render.Paint) {
	p := render.NewPath()
	p.Rect(x, y, w, h)
	s.FillPath(p, paint)
}

// FillPath fills p with the non-zero rule.
func (s *Surface) FillPath(p *render.Path, paint render.Paint) {
	if p == nil || p.Empty() {
		return
	}
	path := toVectorPath(p)
	s.vs, s.is = path.AppendVerticesAndIndicesForFilling(s.vs[:0], s.is[:0])

	op := &ebiten.DrawTrianglesOptions{
		FillRule:  ebiten.FillRuleNonZero,
		AntiAlias: true,
	}
	if pat, ok := paint.Pattern.(*pattern); ok && pat != nil {
		// sample the tile at the destination position so the pattern is anchored to the surface origin
		for i := range s.vs {
			s.vs[i].SrcX = s.vs[i].DstX
			s.vs[i].SrcY = s.vs[i].DstY
			s.vs[i].ColorR, s.vs[i].ColorG, s.vs[i].ColorB, s.vs[i].ColorA = 1, 1, 1, 1
		}
		op.Address = ebiten.AddressRepeat
		s.img.DrawTriangles(s.vs, s.is, pat.img, op)
		return
	}
	if paint.Color == nil {
		return
	}
	s.colorVertices(paint.Color)
	s.img.DrawTriangles(s.vs, s.is, white(), op)
}

// StrokePath draws the outline of p.
func (s *Surface) StrokePath(p *render.Path, stroke render.Stroke, c color.Color) {
	if p == nil || p.Empty() || stroke.Width <= 0 {
		return
	}
	opts := &vector.StrokeOptions{
		Width:      float32(stroke.Width),
		LineCap:    vector.LineCapButt,
		LineJoin:   vector.LineJoinMiter,
		MiterLimit: 10,
	}
	if stroke.Cap == render.CapRound {
		opts.LineCap = vector.LineCapRound
	}
	if stroke.Join == render.JoinRound {
		opts.LineJoin = vector.LineJoinRound
	}

	path := toVectorPath(p)
	s.vs, s.is = path.AppendVerticesAndIndicesForStroke(s.vs[:0], s.is[:0], opts)
	s.colorVertices(c)
	s.img.DrawTriangles(s.vs, s.is, white(), &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

func (s *Surface) colorVertices(c color.Color) {
	r, g, b, a := c.RGBA()
	for i := range s.vs {
		s.vs[i].SrcX = 0
		s.vs[i].SrcY = 0
		s.vs[i].ColorR = float32(r) / 0xffff
		s.vs[i].ColorG = float32(g) / 0xffff
		s.vs[i].ColorB = float32(b) / 0xffff
		s.vs[i].ColorA = float32(a) / 0xffff
	}
}

// CaptureSnapshot copies a region into a new image.
func (s *Surface) CaptureSnapshot(x, y, w, h int) render.Snapshot {
	dst := ebiten.NewImage(w, h)
	sub := s.img.SubImage(image.Rect(x, y, x+w, y+h)).(*ebiten.Image)
	dst.DrawImage(sub, nil)
	return &snapshot{img: dst}
}

// DrawSnapshot draws a captured region with its top-left corner at (x, y).
func (s *Surface) DrawSnapshot(snap render.Snapshot, x, y float64) {
	sn, ok := snap.(*snapshot)
	if !ok || sn == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(x, y)
	s.img.DrawImage(sn.img, op)
}

// CreateTiledPattern repeats tile. The pattern samples the tile when it is drawn.
func (s *Surface) CreateTiledPattern(tile render.Surface) (render.Pattern, error) {
	t, ok := tile.(*Surface)
	if !ok {
		return nil, render.ErrForeignSurface
	}
	return &pattern{img: t.img}, nil
}

// NewSurface allocates an off-screen ebiten surface.
func (s *Surface) NewSurface(w, h int) (render.Surface, error) {
	return New(w, h)
}

// DrawText draws str with the bitmap font.
func (s *Surface) DrawText(str string, x, y, scale float64, c color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(s.img, str, face, op)
}

// MeasureText returns the extent of str at the given scale.
func (s *Surface) MeasureText(str string, scale float64) (float64, float64) {
	w, h := text.Measure(str, face, face.Metrics().HLineGap+face.Metrics().HAscent+face.Metrics().HDescent)
	return w * scale, h * scale
}

// Dispose releases the image.
func (s *Surface) Dispose() {
	if s.img != nil {
		s.img.Deallocate()
	}
}

type snapshot struct {
	img *ebiten.Image
}

func (s *snapshot) Size() (int, int) {
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

type pattern struct {
	img *ebiten.Image
}

func (p *pattern) TileSize() (int, int) {
	b := p.img.Bounds()
	return b.Dx(), b.Dy()
}

func toVectorPath(p *render.Path) *vector.Path {
	var path vector.Path
	for _, seg := range p.Segments() {
		switch seg.Kind {
		case render.SegMoveTo:
			path.MoveTo(float32(seg.X), float32(seg.Y))
		case render.SegLineTo:
			path.LineTo(float32(seg.X), float32(seg.Y))
		case render.SegQuadTo:
			path.QuadTo(float32(seg.CX), float32(seg.CY), float32(seg.X), float32(seg.Y))
		case render.SegClose:
			path.Close()
		}
	}
	return &path
}
