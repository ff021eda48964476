//go:build js && wasm

package web

import (
	"fmt"
	"syscall/js"

	"github.com/gogpu/quad"
	"github.com/gogpu/quad/internal/wgsl"
)

// Init draws the cell program once on the canvas element canvasID with
// the default configuration.
func Init(canvasID string) error {
	return Run(quad.NewConfig(quad.WithCanvasID(canvasID)))
}

// Run draws the cell program once on cfg.CanvasID.
//
// Without navigator.gpu it logs MsgUnsupported to the browser console and
// returns quad.ErrGPUUnsupported; when requestAdapter yields nothing it logs
// MsgNoAdapter and returns quad.ErrNoAdapter. Both happen before any buffer
// or pipeline exists.
func Run(cfg quad.Config) error {
	cfg.Width, cfg.Height = 1, 1 // the canvas element owns its size
	if err := cfg.Validate(); err != nil {
		return err
	}
	if _, err := wgsl.CheckCell(cfg.Shader); err != nil {
		return err
	}
	pref, err := cfg.PowerPreference()
	if err != nil {
		return err
	}

	navigator := js.Global().Get("navigator")
	gpu := navigator.Get("gpu")
	if !gpu.Truthy() {
		consoleError(MsgUnsupported)
		return quad.ErrGPUUnsupported
	}

	adapter, ok := await(gpu.Call("requestAdapter", js.ValueOf(adapterOptions(pref))))
	if !ok || !adapter.Truthy() {
		consoleError(MsgNoAdapter)
		return quad.ErrNoAdapter
	}

	device, ok := await(adapter.Call("requestDevice"))
	if !ok || !device.Truthy() {
		return fmt.Errorf("web: requestDevice failed: %s", jsString(device))
	}

	canvas := js.Global().Get("document").Call("getElementById", cfg.CanvasID)
	if !canvas.Truthy() {
		return fmt.Errorf("web: canvas element %q not found", cfg.CanvasID)
	}
	context := canvas.Call("getContext", "webgpu")
	if !context.Truthy() {
		return fmt.Errorf("web: canvas %q has no webgpu context", cfg.CanvasID)
	}
	format := gpu.Call("getPreferredCanvasFormat").String()
	context.Call("configure", js.ValueOf(map[string]any{
		"device": device,
		"format": format,
	}))

	buffer := device.Call("createBuffer", js.ValueOf(bufferDescriptor()))
	device.Get("queue").Call("writeBuffer", buffer, 0, float32Array(quad.VertexBytes()))

	module := device.Call("createShaderModule", js.ValueOf(shaderDescriptor(cfg.Shader)))
	pipelineDesc, err := pipelineDescriptor(module, format)
	if err != nil {
		return err
	}
	pipeline := device.Call("createRenderPipeline", js.ValueOf(pipelineDesc))

	encoder := device.Call("createCommandEncoder")
	view := context.Call("getCurrentTexture").Call("createView")
	pass := encoder.Call("beginRenderPass", js.ValueOf(renderPassDescriptor(view, cfg.ClearColor)))
	pass.Call("setPipeline", pipeline)
	pass.Call("setVertexBuffer", 0, buffer)
	pass.Call("draw", quad.VertexCount())
	pass.Call("end")
	device.Get("queue").Call("submit", js.ValueOf([]any{encoder.Call("finish")}))

	quad.Logger().Info("web: frame submitted", "canvas", cfg.CanvasID, "format", format)
	return nil
}

// await blocks until the promise v settles. Non-promise values are
// returned as resolved.
func await(v js.Value) (result js.Value, ok bool) {
	if v.Type() != js.TypeObject || v.Get("then").Type() != js.TypeFunction {
		return v, true
	}

	done := make(chan struct{})

	onResolve := js.FuncOf(func(this js.Value, args []js.Value) any {
		if len(args) > 0 {
			result = args[0]
		}
		ok = true
		close(done)
		return nil
	})
	defer onResolve.Release()

	onReject := js.FuncOf(func(this js.Value, args []js.Value) any {
		if len(args) > 0 {
			result = args[0]
		}
		ok = false
		close(done)
		return nil
	})
	defer onReject.Release()

	v.Call("then", onResolve, onReject)
	<-done
	return result, ok
}

// float32Array copies little-endian float32 data into a Float32Array.
func float32Array(data []byte) js.Value {
	u8 := js.Global().Get("Uint8Array").New(len(data))
	js.CopyBytesToJS(u8, data)
	return js.Global().Get("Float32Array").New(u8.Get("buffer"))
}

func consoleError(msg string) {
	js.Global().Get("console").Call("error", msg)
	quad.Logger().Error("web: " + msg)
}

func jsString(v js.Value) string {
	if v.IsUndefined() || v.IsNull() {
		return "no device"
	}
	return v.Call("toString").String()
}
