// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build !nogpu

package window

import (
	"fmt"
	"strings"

	"github.com/gogpu/gogpu"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/quad"
	"github.com/gogpu/quad/gpu"
)

// Run opens a window of cfg's size and title and shows the cell program
// until the window is closed.
//
// The renderer is created on the first draw, once the window's device
// exists. Errors from that step, including quad.ErrGPUUnsupported, stop
// further drawing and are returned by Run once the window is closed.
func Run(cfg quad.Config) error {
	cfg, err := windowConfig(cfg)
	if err != nil {
		return err
	}

	app := gogpu.NewApp(appConfig(cfg))

	var (
		renderer  *gpu.Renderer
		presenter *Presenter
		drawErr   error
	)

	app.OnDraw(func(dc *gogpu.Context) {
		if drawErr != nil {
			return
		}
		if renderer == nil {
			provider := app.GPUContextProvider()
			if provider == nil {
				return
			}
			renderer, drawErr = gpu.NewRendererFromProvider(provider, cfg)
			if drawErr != nil {
				quad.Logger().Error("window: renderer setup failed", "error", drawErr)
				return
			}
			presenter, _ = NewPresenter(renderer)
			quad.Logger().Info("window: renderer ready",
				"adapter", renderer.AdapterName(), "format", renderer.Format())
		}

		if err := presenter.Present(dc.AsTextureDrawer(), dc.Width(), dc.Height()); err != nil {
			quad.Logger().Warn("window: present failed", "frame", presenter.Frames(), "error", err)
		}
	})

	app.OnClose(func() {
		if presenter != nil {
			presenter.Close()
		}
		if renderer != nil {
			renderer.Close()
		}
	})

	if err := app.Run(); err != nil {
		return fmt.Errorf("window: %w", err)
	}
	return drawErr
}

// appConfig builds the gogpu window configuration. Frames are drawn only
// when the window system asks for one (expose, resize), never on a loop.
func appConfig(cfg quad.Config) gogpu.Config {
	power := gputypes.PowerPreferenceHighPerformance
	if pref, _ := cfg.PowerPreference(); pref == quad.PowerLowPower {
		power = gputypes.PowerPreferenceLowPower
	}
	return gogpu.DefaultConfig().
		WithTitle(cfg.Title).
		WithSize(cfg.Width, cfg.Height).
		WithPowerPreference(power).
		WithContinuousRender(false)
}

// windowConfig validates cfg and pins the target format to rgba8unorm,
// the layout window textures are uploaded in.
func windowConfig(cfg quad.Config) (quad.Config, error) {
	if f := strings.ToLower(strings.TrimSpace(cfg.Format)); f != "" && f != "rgba8unorm" {
		quad.Logger().Warn("window: format overridden", "requested", cfg.Format, "used", "rgba8unorm")
	}
	cfg.Format = "rgba8unorm"
	if cfg.Title == "" {
		cfg.Title = quad.DefaultTitle
	}
	if err := cfg.Validate(); err != nil {
		return quad.Config{}, err
	}
	return cfg, nil
}
