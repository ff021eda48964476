//go:build !nogpu

package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/quad"
	"github.com/gogpu/quad/internal/wgsl"
	"github.com/gogpu/wgpu/hal"
)

const (
	vertexSlot    = 0
	drawInstances = 1
)

// Settings configures a CellRenderer.
type Settings struct {
	// Format is the color target format. It must match the texture view
	// the pass renders into.
	Format gputypes.TextureFormat

	// ClearColor is the value the pass clears the target to.
	ClearColor quad.RGBA

	// Shader is the WGSL program; it must declare the cell entry points.
	Shader string
}

// DefaultSettings returns BGRA8Unorm, the default clear color and the cell
// program.
func DefaultSettings() Settings {
	return Settings{
		Format:     quad.PreferredFormat,
		ClearColor: quad.ClearColor,
		Shader:     quad.CellShader(),
	}
}

// DrawPlan describes the commands recorded into the cell render pass.
type DrawPlan struct {
	ClearColor    gputypes.Color
	VertexSlot    uint32
	VertexCount   uint32
	InstanceCount uint32
}

// CellRenderer owns the GPU objects of the cell program: the vertex
// buffer, the shader module and the render pipeline. They are created
// once by Prepare and live until Destroy.
type CellRenderer struct {
	device hal.Device
	queue  hal.Queue

	settings Settings

	vertBuf    hal.Buffer
	shader     hal.ShaderModule
	pipeLayout hal.PipelineLayout
	pipeline   hal.RenderPipeline
}

// NewCellRenderer creates a renderer for device and queue. GPU objects
// are not created until Prepare.
func NewCellRenderer(device hal.Device, queue hal.Queue, settings Settings) *CellRenderer {
	return &CellRenderer{
		device:   device,
		queue:    queue,
		settings: settings,
	}
}

// Settings returns the renderer configuration.
func (r *CellRenderer) Settings() Settings { return r.settings }

// Prepare uploads the vertex buffer, compiles the shader and builds the
// render pipeline. It is a no-op once the pipeline exists. On failure all
// partially created objects are released.
func (r *CellRenderer) Prepare() error {
	if r.pipeline != nil {
		return nil
	}

	if _, err := wgsl.CheckCell(r.settings.Shader); err != nil {
		return err
	}

	if err := r.createVertexBuffer(); err != nil {
		r.Destroy()
		return err
	}
	if err := r.createPipeline(); err != nil {
		r.Destroy()
		return err
	}
	return nil
}

// Ready reports whether Prepare has completed.
func (r *CellRenderer) Ready() bool { return r.pipeline != nil }

func (r *CellRenderer) createVertexBuffer() error {
	data := quad.VertexBytes()
	buf, err := r.device.CreateBuffer(&hal.BufferDescriptor{
		Label: quad.VertexBufferLabel,
		Size:  uint64(len(data)),
		Usage: gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create vertex buffer: %w", err)
	}
	r.vertBuf = buf
	if err := r.queue.WriteBuffer(buf, 0, data); err != nil {
		return fmt.Errorf("upload vertices: %w", err)
	}

	slogger().Debug("cell: vertex buffer uploaded", "bytes", len(data), "vertices", quad.VertexCount())
	return nil
}

func (r *CellRenderer) createPipeline() error {
	shader, err := r.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  quad.ShaderLabel,
		Source: hal.ShaderSource{WGSL: r.settings.Shader},
	})
	if err != nil {
		return fmt.Errorf("compile cell shader: %w", err)
	}
	r.shader = shader

	// The cell program binds no resources; an empty layout is what
	// layout "auto" derives for it.
	pipeLayout, err := r.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label: "cell_pipe_layout",
	})
	if err != nil {
		return fmt.Errorf("create cell pipeline layout: %w", err)
	}
	r.pipeLayout = pipeLayout

	pipeline, err := r.device.CreateRenderPipeline(r.pipelineDescriptor())
	if err != nil {
		return fmt.Errorf("create cell pipeline: %w", err)
	}
	r.pipeline = pipeline

	slogger().Debug("cell: pipeline created", "format", r.settings.Format)
	return nil
}

// pipelineDescriptor ties the cell entry points to the vertex layout and a
// single color target in the configured format.
func (r *CellRenderer) pipelineDescriptor() *hal.RenderPipelineDescriptor {
	return &hal.RenderPipelineDescriptor{
		Label:  quad.PipelineLabel,
		Layout: r.pipeLayout,
		Vertex: hal.VertexState{
			Module:     r.shader,
			EntryPoint: quad.VertexEntryPoint,
			Buffers:    quad.VertexLayout(),
		},
		Fragment: &hal.FragmentState{
			Module:     r.shader,
			EntryPoint: quad.FragmentEntryPoint,
			Targets: []gputypes.ColorTargetState{
				{
					Format:    r.settings.Format,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	}
}

// Plan returns the draw recorded by Record.
func (r *CellRenderer) Plan() DrawPlan {
	return DrawPlan{
		ClearColor:    r.settings.ClearColor.GPU(),
		VertexSlot:    vertexSlot,
		VertexCount:   quad.VertexCount(),
		InstanceCount: drawInstances,
	}
}

// RenderPassDescriptor returns the descriptor of the cell pass: one color
// attachment on view, cleared to the clear color and stored.
func (r *CellRenderer) RenderPassDescriptor(view hal.TextureView) *hal.RenderPassDescriptor {
	return &hal.RenderPassDescriptor{
		Label: "cell_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{
			{
				View:       view,
				LoadOp:     gputypes.LoadOpClear,
				StoreOp:    gputypes.StoreOpStore,
				ClearValue: r.Plan().ClearColor,
			},
		},
	}
}

// Record records the cell draw into an open render pass.
// Prepare must have succeeded.
func (r *CellRenderer) Record(rp hal.RenderPassEncoder) {
	plan := r.Plan()
	rp.SetPipeline(r.pipeline)
	rp.SetVertexBuffer(vertexSlot, r.vertBuf, 0)
	rp.Draw(plan.VertexCount, drawInstances, 0, 0)
}

// encodePass begins the cell pass on view, records the draw and ends it.
func (r *CellRenderer) encodePass(encoder hal.CommandEncoder, view hal.TextureView) {
	rp := encoder.BeginRenderPass(r.RenderPassDescriptor(view))
	r.Record(rp)
	rp.End()
}

// RenderTo clears view and draws the quad into it, then submits and waits
// for completion. view must have the renderer's format; this is the path
// used for window surfaces.
func (r *CellRenderer) RenderTo(view hal.TextureView) error {
	if view == nil {
		return fmt.Errorf("gpu: nil target view")
	}
	if err := r.Prepare(); err != nil {
		return err
	}

	encoder, err := r.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "cell_encoder",
	})
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("cell_frame"); err != nil {
		return fmt.Errorf("begin encoding: %w", err)
	}

	r.encodePass(encoder, view)

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("end encoding: %w", err)
	}
	defer r.device.FreeCommandBuffer(cmdBuf)

	return r.submitAndWait(cmdBuf)
}

// submitAndWait submits cmdBuf to the queue and blocks until the GPU has
// finished it.
func (r *CellRenderer) submitAndWait(cmdBuf hal.CommandBuffer) error {
	index, err := r.queue.Submit([]hal.CommandBuffer{cmdBuf})
	if err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	if err := r.device.WaitIdle(); err != nil {
		return fmt.Errorf("wait for GPU: %w", err)
	}
	if done := r.queue.PollCompleted(); done < index {
		return fmt.Errorf("wait for GPU: submission %d not complete (completed %d)", index, done)
	}
	return nil
}

// Destroy releases all GPU objects in reverse creation order. Safe to call
// multiple times or before Prepare.
func (r *CellRenderer) Destroy() {
	if r.device == nil {
		return
	}
	if r.pipeline != nil {
		r.device.DestroyRenderPipeline(r.pipeline)
		r.pipeline = nil
	}
	if r.pipeLayout != nil {
		r.device.DestroyPipelineLayout(r.pipeLayout)
		r.pipeLayout = nil
	}
	if r.shader != nil {
		r.device.DestroyShaderModule(r.shader)
		r.shader = nil
	}
	if r.vertBuf != nil {
		r.device.DestroyBuffer(r.vertBuf)
		r.vertBuf = nil
	}
}
