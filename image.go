package quad

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gogpu/gputypes"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// PixelsToImage converts tightly packed 8-bit pixels in format f to an
// RGBA image. BGRA8Unorm data is swizzled; RGBA8Unorm is copied.
func PixelsToImage(pix []byte, width, height int, f gputypes.TextureFormat) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	if !SupportedFormat(f) {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, f)
	}
	n := width * height * 4
	if len(pix) != n {
		return nil, fmt.Errorf("%w: %d bytes for %dx%d", ErrImageSize, len(pix), width, height)
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	copy(img.Pix, pix)
	if f == gputypes.TextureFormatBGRA8Unorm {
		for i := 0; i < n; i += 4 {
			img.Pix[i], img.Pix[i+2] = img.Pix[i+2], img.Pix[i]
		}
	}
	return img, nil
}

// SaveImage writes img to path, choosing the encoder by extension:
// .png, .bmp, .tif or .tiff.
func SaveImage(path string, img image.Image) error {
	ext := strings.ToLower(filepath.Ext(path))
	if !supportedImageExt(ext) {
		return fmt.Errorf("%w: %q", ErrUnsupportedImageFormat, ext)
	}

	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	if err := EncodeImage(f, img, ext); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// EncodeImage encodes img to w in the format named by ext
// (".png", ".bmp", ".tif", ".tiff").
func EncodeImage(w io.Writer, img image.Image, ext string) error {
	switch strings.ToLower(ext) {
	case ".png":
		return png.Encode(w, img)
	case ".bmp":
		return bmp.Encode(w, img)
	case ".tif", ".tiff":
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedImageFormat, ext)
	}
}

func supportedImageExt(ext string) bool {
	switch ext {
	case ".png", ".bmp", ".tif", ".tiff":
		return true
	}
	return false
}
