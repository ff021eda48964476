package quad

import (
	"image/color"
	"math"
	"testing"

	"github.com/gogpu/gputypes"
)

func TestRGBA_Color(t *testing.T) {
	tests := []struct {
		name string
		c    RGBA
		want color.RGBA
	}{
		{"clear", ClearColor, color.RGBA{R: 28, G: 28, B: 46, A: 255}},
		{"fill", FillColor, color.RGBA{R: 201, G: 166, B: 245, A: 255}},
		{"black", RGBA{A: 1}, color.RGBA{A: 255}},
		{"clamped", RGBA{R: -1, G: 2, B: 0.5, A: 1}, color.RGBA{R: 0, G: 255, B: 128, A: 255}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.Color(); got != tt.want {
				t.Errorf("Color() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRGBA_GPU(t *testing.T) {
	got := ClearColor.GPU()
	want := gputypes.Color{R: 0.11, G: 0.11, B: 0.18, A: 1}
	if got != want {
		t.Errorf("GPU() = %+v, want %+v", got, want)
	}
}

func TestRGBA_Valid(t *testing.T) {
	tests := []struct {
		name string
		c    RGBA
		want bool
	}{
		{"clear", ClearColor, true},
		{"zero", RGBA{}, true},
		{"white", RGBA{R: 1, G: 1, B: 1, A: 1}, true},
		{"negative", RGBA{R: -0.1, A: 1}, false},
		{"over", RGBA{B: 1.01, A: 1}, false},
		{"nan", RGBA{G: math.NaN(), A: 1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.Valid(); got != tt.want {
				t.Errorf("Valid() = %v, want %v", got, tt.want)
			}
		})
	}
}
