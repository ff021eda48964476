//go:build !nogpu

// Package gpu renders the cell program on a GPU.
//
// A Renderer owns (or borrows) a device, uploads the vertex buffer, builds
// the pipeline once and then records one clear-and-draw pass per call:
//
//	img, err := gpu.Render(quad.NewConfig(quad.WithSize(800, 600)))
//	if errors.Is(err, quad.ErrGPUUnsupported) || errors.Is(err, quad.ErrNoAdapter) {
//	    // no GPU on this machine
//	}
//
// Build with -tags nogpu to drop the GPU backends; every entry point then
// reports quad.ErrGPUUnsupported.
package gpu

import (
	"fmt"
	"image"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/quad"
	gpuimpl "github.com/gogpu/quad/internal/gpu"
	"github.com/gogpu/wgpu/hal"
)

// Renderer draws the cell program with a fixed configuration.
type Renderer struct {
	cfg    quad.Config
	dev    *gpuimpl.Device
	cell   *gpuimpl.CellRenderer
	format gputypes.TextureFormat
}

// NewRenderer validates cfg, opens a GPU device and prepares the pipeline.
//
// When no GPU API is available the error wraps quad.ErrGPUUnsupported;
// when no adapter can be obtained it is quad.ErrNoAdapter. In both cases
// no buffer or pipeline has been created.
func NewRenderer(cfg quad.Config) (*Renderer, error) {
	return newRenderer(nil, cfg)
}

func newRenderer(factory gpuimpl.InstanceFactory, cfg quad.Config) (*Renderer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	pref, err := cfg.PowerPreference()
	if err != nil {
		return nil, err
	}

	dev, err := gpuimpl.OpenDevice(factory, pref)
	if err != nil {
		return nil, err
	}
	return prepare(dev, cfg)
}

// NewRendererFromProvider prepares the pipeline on a device shared by a
// host such as a gogpu window. The device is not closed by Close.
func NewRendererFromProvider(provider gpucontext.DeviceProvider, cfg quad.Config) (*Renderer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	dev, err := gpuimpl.DeviceFromProvider(provider)
	if err != nil {
		return nil, err
	}
	return prepare(dev, cfg)
}

func prepare(dev *gpuimpl.Device, cfg quad.Config) (*Renderer, error) {
	format, err := cfg.TextureFormat(dev.PreferredFormat())
	if err != nil {
		dev.Close()
		return nil, err
	}

	device, queue := dev.HAL()
	cell := gpuimpl.NewCellRenderer(device, queue, gpuimpl.Settings{
		Format:     format,
		ClearColor: cfg.ClearColor,
		Shader:     cfg.Shader,
	})
	if err := cell.Prepare(); err != nil {
		dev.Close()
		return nil, fmt.Errorf("gpu: prepare cell pipeline: %w", err)
	}

	return &Renderer{cfg: cfg, dev: dev, cell: cell, format: format}, nil
}

// Render draws one frame of the configured size and returns it as an
// RGBA image.
func (r *Renderer) Render() (*image.RGBA, error) {
	if r.cell == nil {
		return nil, fmt.Errorf("gpu: renderer is closed")
	}
	pix, err := r.cell.RenderOffscreen(uint32(r.cfg.Width), uint32(r.cfg.Height)) //nolint:gosec // validated by Config.Validate
	if err != nil {
		return nil, err
	}
	return quad.PixelsToImage(pix, r.cfg.Width, r.cfg.Height, r.format)
}

// RenderPixels draws one frame of width x height and returns the raw
// pixels in Format.
func (r *Renderer) RenderPixels(width, height int) ([]byte, error) {
	if r.cell == nil {
		return nil, fmt.Errorf("gpu: renderer is closed")
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", quad.ErrInvalidSize, width, height)
	}
	return r.cell.RenderOffscreen(uint32(width), uint32(height)) //nolint:gosec // checked above
}

// RenderToView clears view and draws the quad into it. view must have the
// renderer's Format.
func (r *Renderer) RenderToView(view hal.TextureView) error {
	if r.cell == nil {
		return fmt.Errorf("gpu: renderer is closed")
	}
	return r.cell.RenderTo(view)
}

// Format returns the color target format the pipeline was built for.
func (r *Renderer) Format() gputypes.TextureFormat { return r.format }

// AdapterName returns the name of the GPU adapter in use.
func (r *Renderer) AdapterName() string {
	if r.dev == nil {
		return ""
	}
	return r.dev.AdapterName()
}

// Close releases the pipeline and, for owned devices, the device.
// Safe to call multiple times.
func (r *Renderer) Close() {
	if r.cell != nil {
		r.cell.Destroy()
		r.cell = nil
	}
	if r.dev != nil {
		r.dev.Close()
		r.dev = nil
	}
}

// Render draws one frame with cfg on a freshly opened device and releases
// the device afterwards.
func Render(cfg quad.Config) (*image.RGBA, error) {
	r, err := NewRenderer(cfg)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return r.Render()
}
