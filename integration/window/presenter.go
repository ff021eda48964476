// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package window

import (
	"errors"
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/quad"
)

var (
	// ErrNilRenderer is returned by NewPresenter for a nil renderer.
	ErrNilRenderer = errors.New("window: nil renderer")

	// ErrNoTextureCreator is returned when the draw context cannot create
	// textures.
	ErrNoTextureCreator = errors.New("window: draw context has no texture creator")

	// ErrPresenterClosed is returned by Present after Close.
	ErrPresenterClosed = errors.New("window: presenter is closed")
)

// PixelRenderer produces one frame of tightly packed RGBA pixels.
// *gpu.Renderer configured with the rgba8unorm format satisfies it.
type PixelRenderer interface {
	RenderPixels(width, height int) ([]byte, error)
}

// textureDestroyer is implemented by window textures that hold GPU memory.
type textureDestroyer interface {
	Destroy()
}

// Presenter moves rendered frames into a window texture and draws it.
// The texture is kept between frames and replaced only when the window
// size changes.
type Presenter struct {
	renderer PixelRenderer
	texture  gpucontext.Texture
	frames   int
	closed   bool
}

// NewPresenter creates a presenter for r.
func NewPresenter(r PixelRenderer) (*Presenter, error) {
	if r == nil {
		return nil, ErrNilRenderer
	}
	return &Presenter{renderer: r}, nil
}

// Present renders a width x height frame and draws it at the window
// origin. A zero-sized window (minimized) is skipped.
func (p *Presenter) Present(dc gpucontext.TextureDrawer, width, height int) error {
	if p.closed {
		return ErrPresenterClosed
	}
	if width <= 0 || height <= 0 {
		return nil
	}

	pix, err := p.renderer.RenderPixels(width, height)
	if err != nil {
		return err
	}

	if err := p.upload(dc, width, height, pix); err != nil {
		return err
	}
	p.frames++
	return dc.DrawTexture(p.texture, 0, 0)
}

// upload writes pix into the current texture when the size matches and the
// texture accepts updates; otherwise it creates a new texture.
func (p *Presenter) upload(dc gpucontext.TextureDrawer, width, height int, pix []byte) error {
	if p.texture != nil && p.texture.Width() == width && p.texture.Height() == height {
		if u, ok := p.texture.(gpucontext.TextureUpdater); ok {
			return u.UpdateData(pix)
		}
	}

	creator := dc.TextureCreator()
	if creator == nil {
		return ErrNoTextureCreator
	}
	tex, err := creator.NewTextureFromRGBA(width, height, pix)
	if err != nil {
		return fmt.Errorf("window: NewTextureFromRGBA failed: %w", err)
	}

	// NewTextureFromRGBA waits for the GPU, so the old texture is idle.
	p.release()
	p.texture = tex
	quad.Logger().Debug("window: texture created", "width", width, "height", height)
	return nil
}

// Frames returns the number of frames presented.
func (p *Presenter) Frames() int { return p.frames }

// Close releases the window texture. Safe to call multiple times.
func (p *Presenter) Close() {
	p.release()
	p.closed = true
}

func (p *Presenter) release() {
	if p.texture == nil {
		return
	}
	if d, ok := p.texture.(textureDestroyer); ok {
		d.Destroy()
	}
	p.texture = nil
}
