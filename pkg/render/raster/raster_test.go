package raster

import (
	"bytes"
	"image/color"
	"image/png"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/golangdaddy/vroom/pkg/render"
	"github.com/golangdaddy/vroom/pkg/render/rendertest"
)

var (
	red         = color.RGBA{255, 0, 0, 255}
	blue        = color.RGBA{0, 0, 255, 255}
	transparent = color.RGBA{}
)

func newSurface(t *testing.T, w, h int) *Surface {
	t.Helper()
	s, err := New(w, h)
	require.NoError(t, err)
	return s
}

func TestNewRejectsEmpty(t *testing.T) {
	_, err := New(0, 10)
	assert.ErrorIs(t, err, render.ErrInvalidSize)
	_, err = Factory(10, -1)
	assert.ErrorIs(t, err, render.ErrInvalidSize)
}

func TestFillRectAndClear(t *testing.T) {
	s := newSurface(t, 20, 20)
	s.FillRect(5, 5, 10, 10, render.Solid(red))
	assert.Equal(t, red, s.Image().RGBAAt(10, 10))
	assert.Equal(t, transparent, s.Image().RGBAAt(2, 2))

	s.Clear()
	assert.Equal(t, transparent, s.Image().RGBAAt(10, 10))
}

func TestFillPathNonZero(t *testing.T) {
	s := newSurface(t, 40, 40)
	p := render.NewPath()
	p.Rect(0, 0, 30, 30)
	// same winding inside: stays filled under non-zero
	p.Rect(10, 10, 10, 10)
	s.FillPath(p, render.Solid(blue))
	assert.Equal(t, blue, s.Image().RGBAAt(15, 15))
	assert.Equal(t, transparent, s.Image().RGBAAt(35, 35))
}

func TestStrokePath(t *testing.T) {
	s := newSurface(t, 40, 40)
	p := render.NewPath()
	p.MoveTo(5, 20)
	p.LineTo(35, 20)
	s.StrokePath(p, render.Stroke{Width: 6, Cap: render.CapRound}, red)

	img := s.Image()
	assert.Equal(t, red, img.RGBAAt(20, 20))
	assert.Equal(t, red, img.RGBAAt(20, 18))
	assert.Equal(t, transparent, img.RGBAAt(20, 26))
	// round cap reaches past the end point
	assert.Equal(t, uint8(255), img.RGBAAt(36, 20).A)
}

func TestStrokeOverlapsDoNotCancel(t *testing.T) {
	s := newSurface(t, 40, 40)
	p := render.NewPath()
	p.MoveTo(5, 5)
	p.LineTo(35, 35)
	p.LineTo(35, 5)
	p.LineTo(5, 35)
	s.StrokePath(p, render.Stroke{Width: 4, Join: render.JoinRound}, red)
	// the two diagonals cross in the middle
	assert.Equal(t, red, s.Image().RGBAAt(20, 20))
}

func TestSnapshotRoundTrip(t *testing.T) {
	s := newSurface(t, 20, 20)
	s.FillRect(0, 0, 20, 5, render.Solid(red))
	snap := s.CaptureSnapshot(0, 0, 20, 5)
	w, h := snap.Size()
	assert.Equal(t, 20, w)
	assert.Equal(t, 5, h)

	s.Clear()
	s.DrawSnapshot(snap, 3, 10)
	img := s.Image()
	assert.Equal(t, red, img.RGBAAt(3, 10))
	assert.Equal(t, red, img.RGBAAt(19, 14))
	assert.Equal(t, transparent, img.RGBAAt(2, 10))
	assert.Equal(t, transparent, img.RGBAAt(10, 9))
}

func TestTiledPattern(t *testing.T) {
	s := newSurface(t, 40, 40)
	tile, err := s.NewSurface(4, 4)
	require.NoError(t, err)
	tile.FillRect(0, 0, 4, 2, render.Solid(red))
	tile.FillRect(0, 2, 4, 2, render.Solid(blue))

	pat, err := s.CreateTiledPattern(tile)
	require.NoError(t, err)
	w, h := pat.TileSize()
	assert.Equal(t, 4, w)
	assert.Equal(t, 4, h)

	// later changes to the tile do not leak into the pattern
	tile.Clear()

	s.FillRect(0, 0, 40, 40, render.Tiled(pat))
	img := s.Image()
	assert.Equal(t, red, img.RGBAAt(1, 1))
	assert.Equal(t, blue, img.RGBAAt(1, 3))
	assert.Equal(t, red, img.RGBAAt(33, 37))
	assert.Equal(t, blue, img.RGBAAt(33, 39))
}

func TestForeignTile(t *testing.T) {
	s := newSurface(t, 10, 10)
	_, err := s.CreateTiledPattern(rendertest.New(10, 10))
	assert.ErrorIs(t, err, render.ErrForeignSurface)
}

func TestText(t *testing.T) {
	s := newSurface(t, 100, 40)
	w, h := s.MeasureText("88", 2)
	assert.InDelta(t, 28, w, 1e-9)
	assert.InDelta(t, 26, h, 1e-9)

	s.DrawText("88", 10, 5, 2, red)
	var lit int
	img := s.Image()
	for y := 0; y < 40; y++ {
		for x := 0; x < 100; x++ {
			if img.RGBAAt(x, y).A > 0 {
				lit++
				assert.GreaterOrEqual(t, x, 10)
				assert.GreaterOrEqual(t, y, 5)
			}
		}
	}
	assert.Greater(t, lit, 0)
}

func TestPNG(t *testing.T) {
	s := newSurface(t, 8, 6)
	s.FillRect(0, 0, 8, 6, render.Solid(blue))

	var buf bytes.Buffer
	require.NoError(t, s.EncodePNG(&buf))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 8, img.Bounds().Dx())

	path := filepath.Join(t.TempDir(), "frame.png")
	require.NoError(t, s.SavePNG(path))
}
