package road

import (
	"fmt"

	"github.com/golangdaddy/vroom/pkg/config"
	"github.com/golangdaddy/vroom/pkg/render"
)

// crestDrop is how far below the horizon the side curves bend.
const crestDrop = 52

// Layer is one closed road shape. Min is its width at the horizon, Max at the bottom
// edge, Squish pinches the sides toward the centre.
type Layer struct {
	Min    float64
	Max    float64
	Squish float64
	Paint  render.Paint
}

// Shape returns the outline of a layer on a width×height canvas for a car at xpos
// on a road bending by currentCurve.
func Shape(skySize, width, height float64, l Layer, xpos, currentCurve float64) *render.Path {
	base := width + xpos
	p := render.NewPath()
	p.MoveTo((base+l.Min)/2-currentCurve*3, skySize)
	p.QuadTo(base/2+l.Min+currentCurve/3+l.Squish, skySize+crestDrop, (base+l.Max)/2, height)
	p.LineTo((base-l.Max)/2, height)
	p.QuadTo(base/2-l.Min+currentCurve/3-l.Squish, skySize+crestDrop, (base-l.Min)/2-currentCurve*3, skySize)
	p.Close()
	return p
}

// DrawLayer fills one road layer.
func DrawLayer(s render.Surface, skySize float64, l Layer, xpos, currentCurve float64) {
	w, h := s.Size()
	s.FillPath(Shape(skySize, float64(w), float64(h), l, xpos, currentCurve), l.Paint)
}

// Renderer draws the road: a white edge, the road bed and a dashed centre strip. The
// strip dashes are ground stripes painted in road colours onto an off-screen tile.
type Renderer struct {
	scene   config.SceneConfig
	palette config.Palette
	tile    render.Surface
}

// NewRenderer creates a road renderer that paints the strip texture into tile.
// tile must be the size of the surfaces the renderer draws onto.
func NewRenderer(scene config.SceneConfig, palette config.Palette, tile render.Surface) *Renderer {
	return &Renderer{
		scene:   scene,
		palette: palette,
		tile:    tile,
	}
}

// Layers returns the edge and bed layers for a canvas width, outermost first.
func (r *Renderer) Layers(width float64) (edge, bed Layer) {
	min, max := r.scene.RoadWidths(width)
	edge = Layer{Min: min + 6, Max: max + 36, Squish: 10, Paint: render.Solid(r.palette.RoadLine)}
	bed = Layer{Min: min, Max: max, Squish: 10, Paint: render.Solid(r.palette.Road)}
	return edge, bed
}

// Draw paints every road layer onto s.
func (r *Renderer) Draw(s render.Surface, xpos, currentCurve, offset float64, startDark bool) error {
	w, _ := s.Size()
	sky := r.scene.SkySize
	edge, bed := r.Layers(float64(w))

	DrawLayer(s, sky, edge, xpos, currentCurve)

	r.tile.Clear()
	DrawGround(r.tile, r.scene, offset, startDark, r.palette.RoadLine, r.palette.Road)
	DrawLayer(s, sky, bed, xpos, currentCurve)

	pattern, err := s.CreateTiledPattern(r.tile)
	if err != nil {
		return fmt.Errorf("failed to build centre strip pattern: %w", err)
	}
	strip := Layer{Min: 3, Max: 24, Squish: 0, Paint: render.Tiled(pattern)}
	DrawLayer(s, sky, strip, xpos, currentCurve)
	return nil
}
