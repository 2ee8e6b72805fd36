package road

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/golangdaddy/vroom/pkg/config"
	"github.com/golangdaddy/vroom/pkg/render/rendertest"
)

func TestGroundBands(t *testing.T) {
	scene := config.DefaultConfig().Scene

	t.Run("first dark band is clipped to nothing at zero offset", func(t *testing.T) {
		bands := GroundBands(scene, 600, 0, true)
		require.GreaterOrEqual(t, len(bands), 2)
		assert.Equal(t, Band{Y: 120, Height: 0}, bands[0])
		assert.Equal(t, Band{Y: 124, Height: 4}, bands[1])
	})

	t.Run("offset grows the first band", func(t *testing.T) {
		bands := GroundBands(scene, 600, 2, true)
		assert.Equal(t, Band{Y: 120, Height: 2}, bands[0])
	})

	t.Run("light start skips the first band", func(t *testing.T) {
		bands := GroundBands(scene, 600, 0, false)
		assert.InDelta(t, 120, bands[0].Y, 1e-9)
		assert.InDelta(t, 4, bands[0].Height, 1e-9)
	})

	t.Run("bands widen toward the viewer and stay on screen", func(t *testing.T) {
		bands := GroundBands(scene, 600, 1, true)
		last := bands[len(bands)-1]
		assert.Greater(t, last.Height, bands[1].Height)
		for i := 1; i < len(bands); i++ {
			assert.Greater(t, bands[i].Y, bands[i-1].Y)
			assert.LessOrEqual(t, bands[i].Y, 600.0)
		}
	})
}

func TestDrawGround(t *testing.T) {
	scene := config.DefaultConfig().Scene
	palette, err := config.DefaultConfig().Colors.Palette()
	require.NoError(t, err)

	s := rendertest.New(800, 600)
	DrawGround(s, scene, 0, true, palette.Ground, palette.GroundDark)

	rects := s.OfKind(rendertest.OpFillRect)
	require.NotEmpty(t, rects)
	// light base covers the whole ground
	assert.Equal(t, 120.0, rects[0].Y)
	assert.Equal(t, 480.0, rects[0].H)
	assert.Equal(t, palette.Ground, rects[0].Paint.Color)
	// zero height bands are skipped
	for _, r := range rects[1:] {
		assert.Greater(t, r.H, 0.0)
		assert.Equal(t, palette.GroundDark, r.Paint.Color)
	}
}

func TestDrawGroundShortCanvasUsesGroundSize(t *testing.T) {
	scene := config.DefaultConfig().Scene
	s := rendertest.New(320, 240)
	DrawGround(s, scene, 0, true, nil, nil)

	assert.Equal(t, 350.0, s.OfKind(rendertest.OpFillRect)[0].H)
}

func TestAdvanceOffset(t *testing.T) {
	tests := []struct {
		name          string
		offset        float64
		dark          bool
		speed         float64
		wantOffset    float64
		wantStartDark bool
	}{
		{"stays below the smallest band", 0, true, 27, 1.35, true},
		{"wraps and flips parity", 3.9, true, 27, -1.25, false},
		{"flips back", 3.9, false, 27, -1.25, true},
		{"stopped", 2, true, 0, 2, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offset, dark := AdvanceOffset(tt.offset, tt.dark, tt.speed, 4)
			assert.InDelta(t, tt.wantOffset, offset, 1e-9)
			assert.Equal(t, tt.wantStartDark, dark)
		})
	}
}
