// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package window shows the cell program in a gogpu window.
//
// The renderer shares the window's GPU device. Each frame the single
// clear-and-draw pass runs into an RGBA target of the window size, and the
// result reaches the screen through the window's texture drawer:
//
//	cell pass (GPU) -> RGBA pixels -> window texture -> DrawTexture
//
// # Usage
//
//	cfg := quad.NewConfig(quad.WithSize(800, 600), quad.WithTitle("cells"))
//	if err := window.Run(cfg); err != nil {
//	    log.Fatal(err)
//	}
//
// # Thread Safety
//
// Presenter is NOT safe for concurrent use. gogpu calls draw callbacks on
// one goroutine.
package window
