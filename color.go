package quad

import (
	"image/color"
	"math"

	"github.com/gogpu/gputypes"
)

// RGBA represents a color with red, green, blue, and alpha components.
// Each component is in the range [0, 1].
type RGBA struct {
	R float64 `yaml:"r"`
	G float64 `yaml:"g"`
	B float64 `yaml:"b"`
	A float64 `yaml:"a"`
}

// Colors used by the cell program.
var (
	// ClearColor is the value the render pass clears the target to.
	ClearColor = RGBA{R: 0.11, G: 0.11, B: 0.18, A: 1}

	// FillColor is the color fragmentMain writes for every covered pixel.
	FillColor = RGBA{R: 0.79, G: 0.65, B: 0.96, A: 1}
)

// Color converts RGBA to an 8-bit color.RGBA, rounding each channel.
// Components are clamped to [0, 1]; alpha is not premultiplied into RGB,
// which matches an opaque render target.
func (c RGBA) Color() color.RGBA {
	return color.RGBA{
		R: to8(c.R),
		G: to8(c.G),
		B: to8(c.B),
		A: to8(c.A),
	}
}

// GPU converts RGBA to the clear-value type used by render passes.
func (c RGBA) GPU() gputypes.Color {
	return gputypes.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}

// Valid reports whether every component is within [0, 1].
func (c RGBA) Valid() bool {
	for _, v := range [4]float64{c.R, c.G, c.B, c.A} {
		if math.IsNaN(v) || v < 0 || v > 1 {
			return false
		}
	}
	return true
}

func to8(v float64) uint8 {
	return uint8(math.Round(clamp01(v) * 255))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
