package road

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/golangdaddy/vroom/pkg/config"
	"github.com/golangdaddy/vroom/pkg/render"
	"github.com/golangdaddy/vroom/pkg/render/raster"
	"github.com/golangdaddy/vroom/pkg/render/rendertest"
)

func TestShapeGeometry(t *testing.T) {
	l := Layer{Min: 80, Max: 450, Squish: 10}
	p := Shape(120, 800, 600, l, 0, 0)

	segs := p.Segments()
	require.Len(t, segs, 5)

	// base = 800, so the horizon edge spans 440..360 and the bottom edge 625..175
	assert.Equal(t, render.SegMoveTo, segs[0].Kind)
	assert.InDelta(t, 440, segs[0].X, 1e-9)
	assert.InDelta(t, 120, segs[0].Y, 1e-9)

	assert.Equal(t, render.SegQuadTo, segs[1].Kind)
	assert.InDelta(t, 490, segs[1].CX, 1e-9)
	assert.InDelta(t, 172, segs[1].CY, 1e-9)
	assert.InDelta(t, 625, segs[1].X, 1e-9)
	assert.InDelta(t, 600, segs[1].Y, 1e-9)

	assert.Equal(t, render.SegLineTo, segs[2].Kind)
	assert.InDelta(t, 175, segs[2].X, 1e-9)

	assert.InDelta(t, 310, segs[3].CX, 1e-9)
	assert.InDelta(t, 360, segs[3].X, 1e-9)
	assert.Equal(t, render.SegClose, segs[4].Kind)
}

func TestShapeFollowsCarAndCurve(t *testing.T) {
	l := Layer{Min: 80, Max: 450, Squish: 10}
	straight := Shape(120, 800, 600, l, 0, 0).Segments()

	shifted := Shape(120, 800, 600, l, 100, 0).Segments()
	// moving the car left slides the road right by half the offset
	assert.InDelta(t, straight[0].X+50, shifted[0].X, 1e-9)
	assert.InDelta(t, straight[2].X+50, shifted[2].X, 1e-9)

	curved := Shape(120, 800, 600, l, 0, 30).Segments()
	// the horizon swings against the curve, the bottom edge stays put
	assert.InDelta(t, straight[0].X-90, curved[0].X, 1e-9)
	assert.InDelta(t, straight[1].CX+10, curved[1].CX, 1e-9)
	assert.InDelta(t, straight[2].X, curved[2].X, 1e-9)
}

func newRenderer(t *testing.T, tile render.Surface) *Renderer {
	t.Helper()
	cfg := config.DefaultConfig()
	palette, err := cfg.Colors.Palette()
	require.NoError(t, err)
	return NewRenderer(cfg.Scene, palette, tile)
}

func TestRendererLayerOrder(t *testing.T) {
	primary := rendertest.New(800, 600)
	tile := rendertest.New(800, 600)
	r := newRenderer(t, tile)

	require.NoError(t, r.Draw(primary, 0, 0, 1, true))

	assert.Equal(t, []rendertest.OpKind{
		rendertest.OpFillPath,
		rendertest.OpFillPath,
		rendertest.OpPattern,
		rendertest.OpFillPath,
	}, primary.Kinds())

	fills := primary.OfKind(rendertest.OpFillPath)
	assert.Equal(t, r.palette.RoadLine, fills[0].Paint.Color)
	assert.Equal(t, r.palette.Road, fills[1].Paint.Color)

	pat, ok := fills[2].Paint.Pattern.(*rendertest.Pattern)
	require.True(t, ok)
	assert.Same(t, tile, pat.Tile)
	// the tile was cleared and striped before the pattern was taken
	assert.Equal(t, rendertest.OpClear, tile.Ops[0].Kind)
	assert.Equal(t, len(tile.Ops), pat.Ops)
	assert.Greater(t, tile.Count(rendertest.OpFillRect), 10)
}

func TestRendererForeignTile(t *testing.T) {
	tile, err := raster.New(800, 600)
	require.NoError(t, err)
	r := newRenderer(t, tile)

	err = r.Draw(rendertest.New(800, 600), 0, 0, 0, true)
	assert.ErrorIs(t, err, render.ErrForeignSurface)
}

func TestRendererPixels(t *testing.T) {
	primary, err := raster.New(800, 600)
	require.NoError(t, err)
	tile, err := primary.NewSurface(800, 600)
	require.NoError(t, err)
	r := newRenderer(t, tile)

	require.NoError(t, r.Draw(primary, 0, 0, 0, true))
	img := primary.Image()

	// road bed a quarter of the way in from the left edge of the bottom row
	assert.Equal(t, r.palette.Road, img.RGBAAt(250, 590))
	// white edge just outside the bed at the bottom
	assert.Equal(t, r.palette.RoadLine, img.RGBAAt(170, 590))
	// nothing above the horizon
	assert.Equal(t, uint8(0), img.RGBAAt(400, 60).A)
	// outside the road
	assert.Equal(t, uint8(0), img.RGBAAt(20, 590).A)
}
