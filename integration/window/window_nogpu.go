// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build nogpu

package window

import "github.com/gogpu/quad"

// Run reports quad.ErrGPUUnsupported; this build carries no GPU backends.
func Run(quad.Config) error {
	quad.Logger().Error("window: WebGPU is not supported", "reason", "built with nogpu")
	return quad.ErrGPUUnsupported
}
