// Package web runs the cell program in a browser through the WebGPU
// JavaScript API.
//
// Init is only available in js/wasm builds. The descriptor builders in this
// file are plain Go values that js.ValueOf converts into the objects the
// browser API expects.
package web

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/quad"
)

// Browser diagnostics for the two early failures.
const (
	MsgUnsupported = "This browser don't support WebGPU."
	MsgNoAdapter   = "No appropriate GPUAdapter found."
)

// Usage bits of GPUBufferUsage.
const (
	bufferUsageCopyDst = 0x0008
	bufferUsageVertex  = 0x0020
)

// vertexFormatName returns the WebGPU name of a vertex format.
func vertexFormatName(f gputypes.VertexFormat) (string, error) {
	switch f {
	case gputypes.VertexFormatFloat32x2:
		return "float32x2", nil
	case gputypes.VertexFormatFloat32x3:
		return "float32x3", nil
	case gputypes.VertexFormatFloat32x4:
		return "float32x4", nil
	default:
		return "", fmt.Errorf("web: unsupported vertex format %v", f)
	}
}

// vertexBuffers describes quad.VertexLayout as GPUVertexBufferLayout
// objects.
func vertexBuffers() ([]any, error) {
	layouts := quad.VertexLayout()
	out := make([]any, 0, len(layouts))
	for _, l := range layouts {
		attrs := make([]any, 0, len(l.Attributes))
		for _, a := range l.Attributes {
			name, err := vertexFormatName(a.Format)
			if err != nil {
				return nil, err
			}
			attrs = append(attrs, map[string]any{
				"format":         name,
				"offset":         a.Offset,
				"shaderLocation": a.ShaderLocation,
			})
		}
		out = append(out, map[string]any{
			"arrayStride": l.ArrayStride,
			"attributes":  attrs,
		})
	}
	return out, nil
}

// bufferDescriptor describes the cell vertex buffer.
func bufferDescriptor() map[string]any {
	return map[string]any{
		"label": quad.VertexBufferLabel,
		"size":  len(quad.VertexBytes()),
		"usage": bufferUsageVertex | bufferUsageCopyDst,
	}
}

// shaderDescriptor describes the cell shader module.
func shaderDescriptor(code string) map[string]any {
	return map[string]any{
		"label": quad.ShaderLabel,
		"code":  code,
	}
}

// pipelineDescriptor describes the cell pipeline. module is the shader
// module handle; format names the canvas format.
func pipelineDescriptor(module any, format string) (map[string]any, error) {
	buffers, err := vertexBuffers()
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"label":  quad.PipelineLabel,
		"layout": "auto",
		"vertex": map[string]any{
			"module":     module,
			"entryPoint": quad.VertexEntryPoint,
			"buffers":    buffers,
		},
		"fragment": map[string]any{
			"module":     module,
			"entryPoint": quad.FragmentEntryPoint,
			"targets":    []any{map[string]any{"format": format}},
		},
	}, nil
}

// renderPassDescriptor describes the single pass: view is cleared to
// clear and stored.
func renderPassDescriptor(view any, clear quad.RGBA) map[string]any {
	return map[string]any{
		"colorAttachments": []any{
			map[string]any{
				"view":       view,
				"loadOp":     "clear",
				"clearValue": map[string]any{"r": clear.R, "g": clear.G, "b": clear.B, "a": clear.A},
				"storeOp":    "store",
			},
		},
	}
}

// adapterOptions describes the requestAdapter options for a power
// preference.
func adapterOptions(p quad.PowerPreference) map[string]any {
	return map[string]any{"powerPreference": p.String()}
}
