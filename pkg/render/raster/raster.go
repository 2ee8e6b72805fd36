// Package raster implements render.Surface in software on top of golang.org/x/image.
// It needs no window or GPU, which makes it the backend for headless runs, PNG
// export and pixel level tests.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"os"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/golangdaddy/vroom/pkg/render"
)

// quadSteps is how many line segments a quadratic curve is split into when stroking.
const quadSteps = 16

// Surface is a software render target backed by an *image.RGBA.
type Surface struct {
	img  *image.RGBA
	face font.Face
}

var (
	_ render.Surface    = (*Surface)(nil)
	_ render.TextDrawer = (*Surface)(nil)
)

// New creates a transparent surface of the given size.
func New(width, height int) (*Surface, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: got %dx%d", render.ErrInvalidSize, width, height)
	}
	return &Surface{
		img:  image.NewRGBA(image.Rect(0, 0, width, height)),
		face: basicfont.Face7x13,
	}, nil
}

// Factory allocates raster surfaces; it matches game.SurfaceFactory.
func Factory(width, height int) (render.Surface, error) {
	return New(width, height)
}

// Image exposes the backing image.
func (s *Surface) Image() *image.RGBA {
	return s.img
}

// Size returns the surface dimensions in pixels.
func (s *Surface) Size() (int, int) {
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

// Clear resets every pixel to transparent.
func (s *Surface) Clear() {
	draw.Draw(s.img, s.img.Bounds(), image.Transparent, image.Point{}, draw.Src)
}

// FillRect fills an axis aligned rectangle.
func (s *Surface) FillRect(x, y, w, h float64, paint render.Paint) {
	p := render.NewPath()
	p.Rect(x, y, w, h)
	s.FillPath(p, paint)
}

// FillPath fills the closed sub-paths of p.
func (s *Surface) FillPath(p *render.Path, paint render.Paint) {
	if p == nil || p.Empty() {
		return
	}
	z := s.rasterizer()
	open := false
	for _, seg := range p.Segments() {
		switch seg.Kind {
		case render.SegMoveTo:
			if open {
				z.ClosePath()
			}
			z.MoveTo(float32(seg.X), float32(seg.Y))
			open = true
		case render.SegLineTo:
			z.LineTo(float32(seg.X), float32(seg.Y))
		case render.SegQuadTo:
			z.QuadTo(float32(seg.CX), float32(seg.CY), float32(seg.X), float32(seg.Y))
		case render.SegClose:
			z.ClosePath()
			open = false
		}
	}
	if open {
		z.ClosePath()
	}
	z.Draw(s.img, s.img.Bounds(), s.source(paint), image.Point{})
}

// StrokePath draws the outline of p. Each segment becomes a quad; round joins and
// caps are discs. All pieces share one winding so overlaps saturate instead of cancelling.
func (s *Surface) StrokePath(p *render.Path, stroke render.Stroke, c color.Color) {
	if p == nil || p.Empty() || stroke.Width <= 0 {
		return
	}
	hw := stroke.Width / 2
	z := s.rasterizer()
	polys, closed := p.Flatten(quadSteps)
	for i, pts := range polys {
		n := len(pts)
		last := n - 1
		if closed[i] {
			last = n
		}
		for j := 0; j < last; j++ {
			a, b := pts[j], pts[(j+1)%n]
			addSegmentQuad(z, a, b, hw)
		}
		for j, pt := range pts {
			end := !closed[i] && (j == 0 || j == n-1)
			if (end && stroke.Cap == render.CapRound) || (!end && stroke.Join == render.JoinRound) {
				addDisc(z, pt, hw)
			}
		}
	}
	z.Draw(s.img, s.img.Bounds(), image.NewUniform(c), image.Point{})
}

// CaptureSnapshot copies the given region.
func (s *Surface) CaptureSnapshot(x, y, w, h int) render.Snapshot {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), s.img, image.Pt(x, y), draw.Src)
	return &snapshot{img: dst}
}

// DrawSnapshot draws a snapshot at an integer pixel offset.
func (s *Surface) DrawSnapshot(snap render.Snapshot, x, y float64) {
	sn, ok := snap.(*snapshot)
	if !ok || sn == nil {
		return
	}
	off := image.Pt(int(math.Round(x)), int(math.Round(y)))
	r := sn.img.Bounds().Add(off)
	draw.Draw(s.img, r, sn.img, image.Point{}, draw.Over)
}

// CreateTiledPattern builds a pattern repeating the current contents of tile.
func (s *Surface) CreateTiledPattern(tile render.Surface) (render.Pattern, error) {
	t, ok := tile.(*Surface)
	if !ok {
		return nil, render.ErrForeignSurface
	}
	cp := image.NewRGBA(t.img.Bounds())
	draw.Draw(cp, cp.Bounds(), t.img, image.Point{}, draw.Src)
	return &pattern{tile: cp}, nil
}

// NewSurface allocates an off-screen raster surface.
func (s *Surface) NewSurface(w, h int) (render.Surface, error) {
	return New(w, h)
}

// DrawText draws s using the 7x13 bitmap face, scaled with nearest neighbour.
func (s *Surface) DrawText(str string, x, y, scale float64, c color.Color) {
	if str == "" || scale <= 0 {
		return
	}
	m := s.face.Metrics()
	w := font.MeasureString(s.face, str).Ceil()
	h := m.Height.Ceil()
	tmp := image.NewRGBA(image.Rect(0, 0, w, h))
	d := &font.Drawer{
		Dst:  tmp,
		Src:  image.NewUniform(c),
		Face: s.face,
		Dot:  fixed.P(0, m.Ascent.Ceil()),
	}
	d.DrawString(str)

	dr := image.Rect(
		int(math.Round(x)),
		int(math.Round(y)),
		int(math.Round(x+float64(w)*scale)),
		int(math.Round(y+float64(h)*scale)),
	)
	xdraw.NearestNeighbor.Scale(s.img, dr, tmp, tmp.Bounds(), xdraw.Over, nil)
}

// MeasureText returns the extent of str at the given scale.
func (s *Surface) MeasureText(str string, scale float64) (float64, float64) {
	w := font.MeasureString(s.face, str).Ceil()
	return float64(w) * scale, float64(s.face.Metrics().Height.Ceil()) * scale
}

// EncodePNG writes the surface as a PNG image.
func (s *Surface) EncodePNG(w io.Writer) error {
	return png.Encode(w, s.img)
}

// SavePNG writes the surface to a PNG file.
func (s *Surface) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := s.EncodePNG(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return f.Close()
}

func (s *Surface) rasterizer() *vector.Rasterizer {
	w, h := s.Size()
	z := vector.NewRasterizer(w, h)
	z.DrawOp = draw.Over
	return z
}

func (s *Surface) source(paint render.Paint) image.Image {
	if p, ok := paint.Pattern.(*pattern); ok && p != nil {
		return p
	}
	if paint.Color == nil {
		return image.Transparent
	}
	return image.NewUniform(paint.Color)
}

func addSegmentQuad(z *vector.Rasterizer, a, b render.Point, hw float64) {
	dx, dy := b.X-a.X, b.Y-a.Y
	l := math.Hypot(dx, dy)
	if l == 0 {
		return
	}
	nx, ny := -dy/l*hw, dx/l*hw
	z.MoveTo(float32(a.X+nx), float32(a.Y+ny))
	z.LineTo(float32(b.X+nx), float32(b.Y+ny))
	z.LineTo(float32(b.X-nx), float32(b.Y-ny))
	z.LineTo(float32(a.X-nx), float32(a.Y-ny))
	z.ClosePath()
}

// addDisc adds a polygonal disc wound the same way as addSegmentQuad.
func addDisc(z *vector.Rasterizer, c render.Point, r float64) {
	const steps = 24
	z.MoveTo(float32(c.X+r), float32(c.Y))
	for i := 1; i < steps; i++ {
		a := -2 * math.Pi * float64(i) / steps
		z.LineTo(float32(c.X+r*math.Cos(a)), float32(c.Y+r*math.Sin(a)))
	}
	z.ClosePath()
}

type snapshot struct {
	img *image.RGBA
}

func (s *snapshot) Size() (int, int) {
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

// pattern is an unbounded image repeating tile from the surface origin.
type pattern struct {
	tile *image.RGBA
}

func (p *pattern) TileSize() (int, int) {
	b := p.tile.Bounds()
	return b.Dx(), b.Dy()
}

func (p *pattern) ColorModel() color.Model {
	return color.RGBAModel
}

func (p *pattern) Bounds() image.Rectangle {
	return image.Rect(-1<<30, -1<<30, 1<<30, 1<<30)
}

func (p *pattern) At(x, y int) color.Color {
	w, h := p.TileSize()
	return p.tile.RGBAAt(mod(x, w), mod(y, h))
}

func mod(v, m int) int {
	r := v % m
	if r < 0 {
		r += m
	}
	return r
}
