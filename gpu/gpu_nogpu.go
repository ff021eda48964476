//go:build nogpu

// Package gpu renders the cell program on a GPU.
//
// This build carries no GPU backends; every entry point reports
// quad.ErrGPUUnsupported.
package gpu

import (
	"image"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/quad"
	"github.com/gogpu/wgpu/hal"
)

// Renderer draws the cell program with a fixed configuration.
type Renderer struct{}

// NewRenderer reports quad.ErrGPUUnsupported.
func NewRenderer(quad.Config) (*Renderer, error) {
	quad.Logger().Error("gpu: WebGPU is not supported", "reason", "built with nogpu")
	return nil, quad.ErrGPUUnsupported
}

// NewRendererFromProvider reports quad.ErrGPUUnsupported.
func NewRendererFromProvider(gpucontext.DeviceProvider, quad.Config) (*Renderer, error) {
	return nil, quad.ErrGPUUnsupported
}

// Render reports quad.ErrGPUUnsupported.
func (r *Renderer) Render() (*image.RGBA, error) { return nil, quad.ErrGPUUnsupported }

// RenderPixels reports quad.ErrGPUUnsupported.
func (r *Renderer) RenderPixels(int, int) ([]byte, error) { return nil, quad.ErrGPUUnsupported }

// RenderToView reports quad.ErrGPUUnsupported.
func (r *Renderer) RenderToView(hal.TextureView) error { return quad.ErrGPUUnsupported }

// Format returns quad.PreferredFormat.
func (r *Renderer) Format() gputypes.TextureFormat { return quad.PreferredFormat }

// AdapterName returns an empty string.
func (r *Renderer) AdapterName() string { return "" }

// Close does nothing.
func (r *Renderer) Close() {}

// Render reports quad.ErrGPUUnsupported.
func Render(cfg quad.Config) (*image.RGBA, error) {
	_, err := NewRenderer(cfg)
	return nil, err
}
