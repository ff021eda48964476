package quad

import (
	"fmt"
	"image"
)

// Reference rasterizes the cell program on the CPU.
//
// A pixel is covered when its center lies inside the quad's clip-space
// bounds; covered pixels get FillColor and the rest clearColor. Clip-space
// Y points up while image rows grow down, so row 0 maps to y = +1.
//
// The result matches a correct GPU rendering of the default program except
// possibly along the quad's edges, where rasterization rules for pixel
// centers exactly on an edge may differ.
func Reference(width, height int, clearColor RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	if width <= 0 || height <= 0 {
		return img
	}

	minX, minY, maxX, maxY := Bounds()
	fill := FillColor.Color()
	bg := clearColor.Color()

	for py := range height {
		// Pixel center in clip space.
		cy := 1 - 2*(float64(py)+0.5)/float64(height)
		rowIn := cy >= float64(minY) && cy <= float64(maxY)
		for px := range width {
			cx := 2*(float64(px)+0.5)/float64(width) - 1
			if rowIn && cx >= float64(minX) && cx <= float64(maxX) {
				img.SetRGBA(px, py, fill)
			} else {
				img.SetRGBA(px, py, bg)
			}
		}
	}
	return img
}

// Compare counts pixels of a and b whose channels differ by more than
// tolerance. The images must have the same bounds size.
func Compare(a, b *image.RGBA, tolerance uint8) (int, error) {
	sa, sb := a.Bounds().Size(), b.Bounds().Size()
	if sa != sb {
		return 0, fmt.Errorf("%w: %v vs %v", ErrImageSize, sa, sb)
	}

	diff := 0
	for y := range sa.Y {
		for x := range sa.X {
			ca := a.RGBAAt(a.Bounds().Min.X+x, a.Bounds().Min.Y+y)
			cb := b.RGBAAt(b.Bounds().Min.X+x, b.Bounds().Min.Y+y)
			if absDiff(ca.R, cb.R) > tolerance || absDiff(ca.G, cb.G) > tolerance ||
				absDiff(ca.B, cb.B) > tolerance || absDiff(ca.A, cb.A) > tolerance {
				diff++
			}
		}
	}
	return diff, nil
}

// DiffPercent returns diff as a percentage of the pixels in img.
func DiffPercent(diff int, img *image.RGBA) float64 {
	total := img.Bounds().Dx() * img.Bounds().Dy()
	if total == 0 {
		return 0
	}
	return float64(diff) / float64(total) * 100
}

func absDiff(a, b uint8) uint8 {
	if a > b {
		return a - b
	}
	return b - a
}
