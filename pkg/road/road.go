// Package road generates the endless track and draws the road and ground bands onto a surface.
package road

import (
	"math"

	"github.com/golangdaddy/vroom/pkg/config"
)

// Rand is the random source the track draws from. *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}

// Generator represents the procedural track: how long each section lasts and how
// hard it bends.
type Generator struct {
	cfg config.TrackConfig
}

// NewGenerator creates a generator for the given bounds.
func NewGenerator(cfg config.TrackConfig) Generator {
	return Generator{cfg: cfg}
}

// Reroll draws the next section length and curve. When the first curve lands within
// the minimum delta of prevCurve, the retry is drawn from the curves far enough away,
// so consecutive sections always differ by at least the delta.
func (g Generator) Reroll(prevCurve float64, rng Rand) (section, curve float64) {
	section = randomRange(rng, g.cfg.SectionMin, g.cfg.SectionMax)
	curve = randomRange(rng, g.cfg.CurveMin, g.cfg.CurveMax)
	if math.Abs(curve-prevCurve) < g.cfg.MinCurveDelta {
		curve = g.retry(prevCurve, rng, curve)
	}
	return section, curve
}

// retry picks uniformly from [CurveMin, prev-delta] ∪ [prev+delta, CurveMax].
func (g Generator) retry(prev float64, rng Rand, fallback float64) float64 {
	below := math.Max(0, prev-g.cfg.MinCurveDelta-g.cfg.CurveMin)
	above := math.Max(0, g.cfg.CurveMax-(prev+g.cfg.MinCurveDelta))
	total := below + above
	if total <= 0 {
		return fallback
	}
	u := rng.Float64() * total
	if u < below {
		return g.cfg.CurveMin + u
	}
	return prev + g.cfg.MinCurveDelta + (u - below)
}

func randomRange(rng Rand, min, max float64) float64 {
	return min + rng.Float64()*(max-min)
}
