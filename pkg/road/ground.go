package road

import (
	"image/color"
	"math"

	"github.com/golangdaddy/vroom/pkg/config"
	"github.com/golangdaddy/vroom/pkg/render"
)

// Band is one horizontal stripe of the ground texture.
type Band struct {
	Y, Height float64
}

// GroundBands returns the dark stripes below the horizon for a canvas height. Stripes
// grow with distance from the horizon to fake perspective; offset scrolls them toward
// the viewer and startDark says whether the first stripe is dark.
func GroundBands(scene config.SceneConfig, height, offset float64, startDark bool) []Band {
	g := scene.Ground
	pos := scene.SkySize - g.Min + offset
	dark := startDark
	first := true

	var bands []Band
	for pos <= height {
		step := math.Max(g.Min, render.Norm(pos, scene.SkySize, height)*g.Max)
		if dark {
			if first {
				clip := g.Min - offset
				if offset > g.Min {
					clip = g.Min
				}
				bands = append(bands, Band{Y: scene.SkySize, Height: step - clip})
			} else {
				bands = append(bands, Band{Y: math.Max(pos, scene.SkySize), Height: step})
			}
		}
		first = false
		pos += step
		dark = !dark
	}
	return bands
}

// DrawGround fills the ground with the light colour and lays the dark stripes over it.
func DrawGround(s render.Surface, scene config.SceneConfig, offset float64, startDark bool, light, dark color.Color) {
	w, h := s.Size()
	fw, fh := float64(w), float64(h)

	fill := math.Max(scene.Ground.Size, fh-scene.SkySize)
	s.FillRect(0, scene.SkySize, fw, fill, render.Solid(light))

	paint := render.Solid(dark)
	for _, b := range GroundBands(scene, fh, offset, startDark) {
		if b.Height <= 0 {
			continue
		}
		s.FillRect(0, b.Y, fw, b.Height, paint)
	}
}

// AdvanceOffset scrolls the stripes by the distance covered in a tick. Once the offset
// passes the smallest stripe it wraps and the stripe parity flips.
func AdvanceOffset(offset float64, startDark bool, speed, min float64) (float64, bool) {
	offset += speed * 0.05
	if offset > min {
		offset = min - offset
		startDark = !startDark
	}
	return offset, startDark
}
