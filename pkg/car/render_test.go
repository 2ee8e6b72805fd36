package car

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/golangdaddy/vroom/pkg/config"
	"github.com/golangdaddy/vroom/pkg/render/raster"
	"github.com/golangdaddy/vroom/pkg/render/rendertest"
)

func TestRoundedRect(t *testing.T) {
	t.Run("square", func(t *testing.T) {
		minX, minY, maxX, maxY := RoundedRect(10, 20, 100, 40, 6, 0).Bounds()
		assert.InDelta(t, 10, minX, 1e-9)
		assert.InDelta(t, 20, minY, 1e-9)
		assert.InDelta(t, 110, maxX, 1e-9)
		assert.InDelta(t, 60, maxY, 1e-9)
	})

	t.Run("skew lifts the left and drops the right", func(t *testing.T) {
		p := RoundedRect(0, 0, 100, 20, 2, 3)
		minX, minY, maxX, maxY := p.Bounds()
		assert.InDelta(t, 0, minX, 1e-9)
		assert.InDelta(t, -3, minY, 1e-9)
		assert.InDelta(t, 100, maxX, 1e-9)
		assert.InDelta(t, 23, maxY, 1e-9)

		segs := p.Segments()
		assert.InDelta(t, -3, segs[0].Y, 1e-9)
		assert.InDelta(t, 3, segs[1].Y, 1e-9)
	})
}

func TestRenderDrawsEveryPart(t *testing.T) {
	s := rendertest.New(800, 600)
	Render(s, 0, config.DefaultConfig().Layout)

	// shadow, two tires, front, windscreen, body, hood, two bumpers, four lights, plate
	assert.Equal(t, 14, s.Count(rendertest.OpFillPath))
	assert.Equal(t, 3, s.Count(rendertest.OpStrokePath))

	fills := s.OfKind(rendertest.OpFillPath)
	assert.Equal(t, shadowColor, fills[0].Paint.Color)
	assert.Equal(t, plateColor, fills[13].Paint.Color)
}

func TestRenderPosition(t *testing.T) {
	s := rendertest.New(800, 600)
	Render(s, 0, config.DefaultConfig().Layout)

	// wheels sit 180 above the bottom, so the tires start at 420 + 20
	tire := s.OfKind(rendertest.OpFillPath)[1].Path
	minX, minY, maxX, _ := tire.Bounds()
	assert.InDelta(t, 320, minX, 1e-9)
	assert.InDelta(t, 440, minY, 1e-9)
	assert.InDelta(t, 350, maxX, 1e-9)
}

func TestRenderLean(t *testing.T) {
	layout := config.DefaultConfig().Layout
	lightY := func(turn float64) []float64 {
		s := rendertest.New(800, 600)
		Render(s, turn, layout)
		fills := s.OfKind(rendertest.OpFillPath)
		var ys []float64
		for _, f := range fills[9:13] {
			_, minY, _, _ := f.Path.Bounds()
			ys = append(ys, minY)
		}
		return ys
	}

	straight := lightY(0)
	for i := 1; i < len(straight); i++ {
		assert.InDelta(t, straight[0], straight[i], 1e-9)
	}

	leaning := lightY(4)
	for i := 1; i < len(leaning); i++ {
		assert.InDelta(t, leaning[i-1]+0.2, leaning[i], 1e-9)
	}

	s := rendertest.New(800, 600)
	Render(s, -5, layout)
	_, minY, _, maxY := s.OfKind(rendertest.OpFillPath)[13].Path.Bounds()
	// a plate skewed by -0.25 is taller than one that sits flat
	assert.InDelta(t, 18.5, maxY-minY, 1e-9)
}

func TestRenderPixels(t *testing.T) {
	s, err := raster.New(800, 600)
	require.NoError(t, err)
	Render(s, 0, config.DefaultConfig().Layout)

	img := s.Image()
	// centre of the number plate
	assert.Equal(t, plateColor, img.RGBAAt(400, 402+25+9))
	// left tire, below the body
	assert.Equal(t, tireColor, img.RGBAAt(335, 475))
	// away from the car
	assert.Equal(t, uint8(0), img.RGBAAt(50, 50).A)
}
