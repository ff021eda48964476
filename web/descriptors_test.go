package web

import (
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/quad"
)

func TestVertexBuffers(t *testing.T) {
	buffers, err := vertexBuffers()
	if err != nil {
		t.Fatalf("vertexBuffers failed: %v", err)
	}
	if len(buffers) != 1 {
		t.Fatalf("buffers = %d, want 1", len(buffers))
	}
	layout := buffers[0].(map[string]any)
	if layout["arrayStride"] != uint64(8) {
		t.Errorf("arrayStride = %v, want 8", layout["arrayStride"])
	}
	attrs := layout["attributes"].([]any)
	if len(attrs) != 1 {
		t.Fatalf("attributes = %d, want 1", len(attrs))
	}
	attr := attrs[0].(map[string]any)
	if attr["format"] != "float32x2" || attr["offset"] != uint64(0) || attr["shaderLocation"] != uint32(0) {
		t.Errorf("attribute = %v", attr)
	}
}

func TestVertexFormatName(t *testing.T) {
	tests := []struct {
		f    gputypes.VertexFormat
		want string
	}{
		{gputypes.VertexFormatFloat32x2, "float32x2"},
		{gputypes.VertexFormatFloat32x3, "float32x3"},
		{gputypes.VertexFormatFloat32x4, "float32x4"},
	}
	for _, tt := range tests {
		got, err := vertexFormatName(tt.f)
		if err != nil || got != tt.want {
			t.Errorf("vertexFormatName(%v) = %q, %v; want %q", tt.f, got, err, tt.want)
		}
	}
	if _, err := vertexFormatName(gputypes.VertexFormat(0)); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestBufferDescriptor(t *testing.T) {
	d := bufferDescriptor()
	if d["label"] != "Cell vertices" {
		t.Errorf("label = %v", d["label"])
	}
	if d["size"] != 48 {
		t.Errorf("size = %v, want 48", d["size"])
	}
	if d["usage"] != 0x0028 {
		t.Errorf("usage = %#x, want VERTEX|COPY_DST", d["usage"])
	}
}

func TestPipelineDescriptor(t *testing.T) {
	module := "module-handle"
	d, err := pipelineDescriptor(module, "bgra8unorm")
	if err != nil {
		t.Fatalf("pipelineDescriptor failed: %v", err)
	}
	if d["label"] != "Cell pipeline" || d["layout"] != "auto" {
		t.Errorf("label/layout = %v/%v", d["label"], d["layout"])
	}
	vertex := d["vertex"].(map[string]any)
	if vertex["module"] != module || vertex["entryPoint"] != "vertexMain" {
		t.Errorf("vertex = %v", vertex)
	}
	fragment := d["fragment"].(map[string]any)
	if fragment["entryPoint"] != "fragmentMain" {
		t.Errorf("fragment entryPoint = %v", fragment["entryPoint"])
	}
	targets := fragment["targets"].([]any)
	if len(targets) != 1 || targets[0].(map[string]any)["format"] != "bgra8unorm" {
		t.Errorf("targets = %v", targets)
	}
}

func TestRenderPassDescriptor(t *testing.T) {
	d := renderPassDescriptor("view", quad.ClearColor)
	atts := d["colorAttachments"].([]any)
	if len(atts) != 1 {
		t.Fatalf("colorAttachments = %d, want 1", len(atts))
	}
	a := atts[0].(map[string]any)
	if a["view"] != "view" || a["loadOp"] != "clear" || a["storeOp"] != "store" {
		t.Errorf("attachment = %v", a)
	}
	clear := a["clearValue"].(map[string]any)
	if clear["r"] != 0.11 || clear["g"] != 0.11 || clear["b"] != 0.18 || clear["a"] != 1.0 {
		t.Errorf("clearValue = %v", clear)
	}
}

func TestShaderDescriptor(t *testing.T) {
	d := shaderDescriptor(quad.CellShader())
	if d["label"] != "Cell shader" || d["code"] != quad.CellShader() {
		t.Errorf("shader descriptor = %v", d["label"])
	}
}

func TestAdapterOptions(t *testing.T) {
	if got := adapterOptions(quad.PowerLowPower)["powerPreference"]; got != "low-power" {
		t.Errorf("powerPreference = %v, want low-power", got)
	}
	if got := adapterOptions(quad.PowerHighPerformance)["powerPreference"]; got != "high-performance" {
		t.Errorf("powerPreference = %v, want high-performance", got)
	}
}

func TestDiagnosticMessages(t *testing.T) {
	// Console text matches the messages the page has always logged.
	if MsgUnsupported != "This browser don't support WebGPU." {
		t.Errorf("MsgUnsupported = %q", MsgUnsupported)
	}
	if MsgNoAdapter != "No appropriate GPUAdapter found." {
		t.Errorf("MsgNoAdapter = %q", MsgNoAdapter)
	}
}
