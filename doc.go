// Package quad draws a single solid-colored square with the GPU.
//
// # Overview
//
// quad is the smallest complete WebGPU program: it acquires an adapter and a
// device, uploads a fixed vertex buffer describing two triangles, compiles
// an inline WGSL program, builds one render pipeline and records one render
// pass that clears the target and draws six vertices.
//
// This package holds the data every target shares: the vertex data and
// layout, the cell shader, the clear and fill colors, configuration, a CPU
// reference image and image encoding. The GPU work lives in the gpu
// package (headless rendering), integration/window (a native window) and
// web (the browser canvas, GOOS=js).
//
// # Quick Start
//
//	import "github.com/gogpu/quad/gpu"
//
//	img, err := gpu.Render(quad.DefaultConfig())
//	if errors.Is(err, quad.ErrGPUUnsupported) {
//	    // no GPU API on this machine
//	}
//	_ = quad.SaveImage("quad.png", img)
//
// # Coordinate System
//
// Vertices are given in clip space: X increases right, Y increases up, both
// in [-1, 1]. The quad spans [-0.8, 0.8] on both axes.
package quad

// Version is the current version of the module.
const Version = "0.1.0"
