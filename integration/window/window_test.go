// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build !nogpu

package window

import (
	"errors"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/quad"
	"github.com/gogpu/quad/gpu"
)

var _ PixelRenderer = (*gpu.Renderer)(nil)

func TestWindowConfig(t *testing.T) {
	tests := []struct {
		name      string
		in        quad.Config
		wantTitle string
	}{
		{"defaults", quad.DefaultConfig(), quad.DefaultTitle},
		{"bgra requested", quad.NewConfig(quad.WithFormat("bgra8unorm"), quad.WithTitle("cells")), "cells"},
		{"empty title", quad.NewConfig(quad.WithTitle("")), quad.DefaultTitle},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := windowConfig(tt.in)
			if err != nil {
				t.Fatalf("windowConfig failed: %v", err)
			}
			if cfg.Format != "rgba8unorm" {
				t.Errorf("Format = %q, want rgba8unorm", cfg.Format)
			}
			if cfg.Title != tt.wantTitle {
				t.Errorf("Title = %q, want %q", cfg.Title, tt.wantTitle)
			}
		})
	}
}

func TestWindowConfigInvalid(t *testing.T) {
	_, err := windowConfig(quad.NewConfig(quad.WithSize(-1, 10)))
	if !errors.Is(err, quad.ErrInvalidSize) {
		t.Errorf("error = %v, want ErrInvalidSize", err)
	}
}

func TestAppConfig(t *testing.T) {
	tests := []struct {
		name      string
		in        quad.Config
		wantPower gputypes.PowerPreference
	}{
		{"defaults", quad.DefaultConfig(), gputypes.PowerPreferenceHighPerformance},
		{"low power", quad.NewConfig(quad.WithPowerPreference("low-power")), gputypes.PowerPreferenceLowPower},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := windowConfig(tt.in)
			if err != nil {
				t.Fatalf("windowConfig failed: %v", err)
			}
			got := appConfig(cfg)
			if got.ContinuousRender {
				t.Error("ContinuousRender = true, want draws on demand only")
			}
			if got.Title != cfg.Title {
				t.Errorf("Title = %q, want %q", got.Title, cfg.Title)
			}
			if got.Width != cfg.Width || got.Height != cfg.Height {
				t.Errorf("size = %dx%d, want %dx%d", got.Width, got.Height, cfg.Width, cfg.Height)
			}
			if got.PowerPreference != tt.wantPower {
				t.Errorf("PowerPreference = %v, want %v", got.PowerPreference, tt.wantPower)
			}
		})
	}
}
