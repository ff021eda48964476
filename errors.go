package quad

import "errors"

var (
	// ErrGPUUnsupported is returned when no GPU API is available
	// (no Vulkan backend natively, no navigator.gpu in a browser).
	ErrGPUUnsupported = errors.New("quad: WebGPU is not supported")

	// ErrNoAdapter is returned when the GPU API is present but no adapter
	// could be obtained.
	ErrNoAdapter = errors.New("quad: no appropriate GPU adapter found")

	// ErrInvalidSize is returned for non-positive target dimensions.
	ErrInvalidSize = errors.New("quad: invalid target size")

	// ErrUnsupportedFormat is returned for target formats other than
	// BGRA8Unorm and RGBA8Unorm.
	ErrUnsupportedFormat = errors.New("quad: unsupported target format")

	// ErrInvalidColor is returned for color components outside [0, 1].
	ErrInvalidColor = errors.New("quad: color component out of range")

	// ErrInvalidShader is returned when a shader fails validation or lacks
	// the required entry points.
	ErrInvalidShader = errors.New("quad: invalid shader")

	// ErrUnsupportedImageFormat is returned by SaveImage for unknown file
	// extensions.
	ErrUnsupportedImageFormat = errors.New("quad: unsupported image format")

	// ErrImageSize is returned when pixel data does not match the stated
	// dimensions, or when compared images differ in size.
	ErrImageSize = errors.New("quad: image size mismatch")
)
