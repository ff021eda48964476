package quad

import (
	_ "embed"
	"encoding/binary"
	"math"

	"github.com/gogpu/gputypes"
)

//go:embed shaders/cell.wgsl
var cellShaderSource string

// CellShader returns the WGSL source of the cell program.
// It declares VertexEntryPoint and FragmentEntryPoint.
func CellShader() string { return cellShaderSource }

// Entry point names in CellShader.
const (
	VertexEntryPoint   = "vertexMain"
	FragmentEntryPoint = "fragmentMain"
)

// Labels given to GPU objects.
const (
	VertexBufferLabel = "Cell vertices"
	ShaderLabel       = "Cell shader"
	PipelineLabel     = "Cell pipeline"
)

// VertexStride is the byte stride of one vertex: two float32 coordinates.
const VertexStride = 8

// vertices describes two right triangles covering the square [-0.8, 0.8]².
var vertices = [12]float32{
	-0.8, -0.8,
	0.8, -0.8,
	0.8, 0.8,

	-0.8, -0.8,
	0.8, 0.8,
	-0.8, 0.8,
}

// Vertices returns a copy of the vertex data, (x, y) pairs in clip space.
func Vertices() [12]float32 { return vertices }

// VertexCount returns the number of vertices drawn.
func VertexCount() uint32 {
	return uint32(len(vertices) / 2)
}

// VertexBytes returns the vertex data as uploaded to the GPU:
// little-endian float32, tightly packed.
func VertexBytes() []byte {
	buf := make([]byte, len(vertices)*4)
	for i, v := range vertices {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf
}

// VertexLayout returns the vertex buffer layout for the cell pipeline.
func VertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: VertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0}, // position
			},
		},
	}
}

// Bounds returns the clip-space extent of the quad as min and max corners.
func Bounds() (minX, minY, maxX, maxY float32) {
	minX, minY = vertices[0], vertices[1]
	maxX, maxY = minX, minY
	for i := 2; i < len(vertices); i += 2 {
		x, y := vertices[i], vertices[i+1]
		minX = min(minX, x)
		maxX = max(maxX, x)
		minY = min(minY, y)
		maxY = max(maxY, y)
	}
	return minX, minY, maxX, maxY
}
