//go:build !nogpu

package gpu

import (
	"errors"
	"image"
	"testing"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/quad"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"
	"github.com/gogpu/wgpu/hal/software"
)

func noopInstance() (hal.Instance, error) {
	api := noop.API{}
	return api.CreateInstance(nil)
}

func softwareInstance() (hal.Instance, error) {
	api := software.API{}
	return api.CreateInstance(nil)
}

// sharedDevice plays the *wgpu.Device a gogpu window hands out.
type sharedDevice struct {
	device hal.Device
	queue  hal.Queue
}

func (d *sharedDevice) HalDevice() hal.Device { return d.device }
func (d *sharedDevice) HalQueue() hal.Queue   { return d.queue }

// sharedProvider exposes a noop device the way a gogpu window exposes its
// device.
type sharedProvider struct {
	device hal.Device
	queue  hal.Queue
	format gputypes.TextureFormat
}

func (p *sharedProvider) Device() gpucontext.Device {
	return &sharedDevice{device: p.device, queue: p.queue}
}
func (p *sharedProvider) Queue() gpucontext.Queue               { return nil }
func (p *sharedProvider) Adapter() gpucontext.Adapter           { return nil }
func (p *sharedProvider) SurfaceFormat() gputypes.TextureFormat { return p.format }
func (p *sharedProvider) AdapterInfo() gpucontext.AdapterInfo {
	return gpucontext.AdapterInfo{Name: "Shared Adapter"}
}

func newSharedProvider(t *testing.T, format gputypes.TextureFormat) *sharedProvider {
	t.Helper()
	instance, err := noopInstance()
	if err != nil {
		t.Fatalf("CreateInstance failed: %v", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	openDev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() {
		openDev.Device.Destroy()
		instance.Destroy()
	})
	return &sharedProvider{device: openDev.Device, queue: openDev.Queue, format: format}
}

func TestNewRenderer(t *testing.T) {
	cfg := quad.NewConfig(quad.WithSize(64, 48))
	r, err := newRenderer(noopInstance, cfg)
	if err != nil {
		t.Fatalf("newRenderer failed: %v", err)
	}
	defer r.Close()

	if r.Format() != quad.PreferredFormat {
		t.Errorf("Format = %v, want %v", r.Format(), quad.PreferredFormat)
	}
	if r.AdapterName() != "Noop Adapter" {
		t.Errorf("AdapterName = %q", r.AdapterName())
	}

	img, err := r.Render()
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if got := img.Bounds().Size(); got.X != 64 || got.Y != 48 {
		t.Errorf("image size = %v, want 64x48", got)
	}
}

func TestNewRendererFormatOverride(t *testing.T) {
	cfg := quad.NewConfig(quad.WithSize(16, 16), quad.WithFormat("rgba8unorm"))
	r, err := newRenderer(noopInstance, cfg)
	if err != nil {
		t.Fatalf("newRenderer failed: %v", err)
	}
	defer r.Close()

	if r.Format() != gputypes.TextureFormatRGBA8Unorm {
		t.Errorf("Format = %v, want RGBA8Unorm", r.Format())
	}
}

func TestNewRendererInvalidConfig(t *testing.T) {
	opened := false
	factory := func() (hal.Instance, error) {
		opened = true
		return noopInstance()
	}

	tests := []struct {
		name string
		cfg  quad.Config
		want error
	}{
		{"zero size", quad.NewConfig(quad.WithSize(0, 10)), quad.ErrInvalidSize},
		{"unknown format", quad.NewConfig(quad.WithFormat("rgb565")), quad.ErrUnsupportedFormat},
		{"empty shader", quad.NewConfig(quad.WithShader("  ")), quad.ErrInvalidShader},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newRenderer(factory, tt.cfg)
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
	if opened {
		t.Error("device opened for an invalid config")
	}
}

func TestNewRendererUnsupported(t *testing.T) {
	_, err := newRenderer(func() (hal.Instance, error) {
		return nil, errors.New("backend missing")
	}, quad.DefaultConfig())
	if !errors.Is(err, quad.ErrGPUUnsupported) {
		t.Fatalf("error = %v, want ErrGPUUnsupported", err)
	}
}

func TestNewRendererBadShader(t *testing.T) {
	cfg := quad.NewConfig(quad.WithShader("@fragment fn fragmentMain() -> @location(0) vec4<f32> { return vec4<f32>(1.0); }"))
	_, err := newRenderer(noopInstance, cfg)
	if !errors.Is(err, quad.ErrInvalidShader) {
		t.Fatalf("error = %v, want ErrInvalidShader", err)
	}
}

func TestNewRendererFromProvider(t *testing.T) {
	p := newSharedProvider(t, gputypes.TextureFormatRGBA8Unorm)

	r, err := NewRendererFromProvider(p, quad.NewConfig(quad.WithSize(32, 32)))
	if err != nil {
		t.Fatalf("NewRendererFromProvider failed: %v", err)
	}
	defer r.Close()

	if r.Format() != gputypes.TextureFormatRGBA8Unorm {
		t.Errorf("Format = %v, want surface format RGBA8Unorm", r.Format())
	}
	if r.AdapterName() != "Shared Adapter" {
		t.Errorf("AdapterName = %q", r.AdapterName())
	}

	tex, err := p.device.CreateTexture(&hal.TextureDescriptor{
		Label:         "surface",
		Size:          hal.Extent3D{Width: 32, Height: 32, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        r.Format(),
		Usage:         gputypes.TextureUsageRenderAttachment,
	})
	if err != nil {
		t.Fatalf("CreateTexture failed: %v", err)
	}
	defer p.device.DestroyTexture(tex)
	view, err := p.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         "surface_view",
		Format:        r.Format(),
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		t.Fatalf("CreateTextureView failed: %v", err)
	}
	defer p.device.DestroyTextureView(view)

	if err := r.RenderToView(view); err != nil {
		t.Fatalf("RenderToView failed: %v", err)
	}

	pix, err := r.RenderPixels(10, 7)
	if err != nil {
		t.Fatalf("RenderPixels failed: %v", err)
	}
	if len(pix) != 10*7*4 {
		t.Errorf("len(pixels) = %d, want %d", len(pix), 10*7*4)
	}
}

func TestRendererClose(t *testing.T) {
	r, err := newRenderer(noopInstance, quad.NewConfig(quad.WithSize(8, 8)))
	if err != nil {
		t.Fatalf("newRenderer failed: %v", err)
	}
	r.Close()
	r.Close()

	if _, err := r.Render(); err == nil {
		t.Error("Render after Close should fail")
	}
	if _, err := r.RenderPixels(8, 8); err == nil {
		t.Error("RenderPixels after Close should fail")
	}
	if err := r.RenderToView(nil); err == nil {
		t.Error("RenderToView after Close should fail")
	}
	if r.AdapterName() != "" {
		t.Error("AdapterName after Close should be empty")
	}
}

func TestRenderSoftwareClearColor(t *testing.T) {
	cfg := quad.NewConfig(quad.WithSize(64, 64), quad.WithFormat("rgba8unorm"))
	r, err := newRenderer(softwareInstance, cfg)
	if err != nil {
		t.Fatalf("newRenderer failed: %v", err)
	}
	defer r.Close()

	if r.AdapterName() != "Software Renderer" {
		t.Errorf("AdapterName = %q, want Software Renderer", r.AdapterName())
	}

	img, err := r.Render()
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	// The rasterizer may truncate instead of round: 0.18*255 is 45.9.
	want := quad.ClearColor.Color()
	for _, p := range []image.Point{{0, 0}, {63, 0}, {0, 63}, {63, 63}} {
		got := img.RGBAAt(p.X, p.Y)
		if absDiff(got.R, want.R) > 1 || absDiff(got.G, want.G) > 1 ||
			absDiff(got.B, want.B) > 1 || got.A != 255 {
			t.Errorf("corner %v = %v, want clear color %v", p, got, want)
		}
	}
}

func absDiff(a, b uint8) uint8 {
	if a > b {
		return a - b
	}
	return b - a
}
