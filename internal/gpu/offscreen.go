//go:build !nogpu

package gpu

import (
	"fmt"
	"unsafe"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/quad"
	"github.com/gogpu/wgpu/hal"
)

// copyPitchAlignment is the BytesPerRow alignment WebGPU requires for
// texture-to-buffer copies.
const copyPitchAlignment = 256

// alignedRowPitch returns the padded row size for a copy of width
// 4-byte texels.
func alignedRowPitch(width uint32) uint32 {
	return (width*4 + copyPitchAlignment - 1) &^ (copyPitchAlignment - 1)
}

// unpadRows strips per-row padding from a readback of height rows.
func unpadRows(padded []byte, width, height, pitch uint32) []byte {
	tightRow := width * 4
	if pitch == tightRow {
		return padded[:tightRow*height]
	}
	tight := make([]byte, int(tightRow)*int(height))
	for row := uint32(0); row < height; row++ {
		src := int(row) * int(pitch)
		dst := int(row) * int(tightRow)
		copy(tight[dst:dst+int(tightRow)], padded[src:src+int(tightRow)])
	}
	return tight
}

// RenderOffscreen renders the cell program into a width x height texture
// and returns its pixels, tightly packed in the renderer's format.
func (r *CellRenderer) RenderOffscreen(width, height uint32) ([]byte, error) {
	if width == 0 || height == 0 || width > quad.MaxDimension || height > quad.MaxDimension {
		return nil, fmt.Errorf("%w: %dx%d", quad.ErrInvalidSize, width, height)
	}
	if !quad.SupportedFormat(r.settings.Format) {
		return nil, fmt.Errorf("%w: %v", quad.ErrUnsupportedFormat, r.settings.Format)
	}
	if err := r.Prepare(); err != nil {
		return nil, err
	}

	size := hal.Extent3D{Width: width, Height: height, DepthOrArrayLayers: 1}
	tex, err := r.device.CreateTexture(&hal.TextureDescriptor{
		Label:         "cell_target",
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        r.settings.Format,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc,
	})
	if err != nil {
		return nil, fmt.Errorf("create target texture: %w", err)
	}
	defer r.device.DestroyTexture(tex)

	view, err := r.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         "cell_target_view",
		Format:        r.settings.Format,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		return nil, fmt.Errorf("create target view: %w", err)
	}
	defer r.device.DestroyTextureView(view)

	pitch := alignedRowPitch(width)
	stagingSize := uint64(pitch) * uint64(height)
	staging, err := r.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "cell_staging",
		Size:  stagingSize,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create staging buffer: %w", err)
	}
	defer r.device.DestroyBuffer(staging)

	encoder, err := r.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "cell_offscreen_encoder",
	})
	if err != nil {
		return nil, fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("cell_offscreen"); err != nil {
		return nil, fmt.Errorf("begin encoding: %w", err)
	}

	r.encodePass(encoder, view)

	// The attachment leaves the pass in render-target layout; copies need
	// it as a transfer source.
	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: tex,
		Range:   hal.TextureRange{Aspect: gputypes.TextureAspectAll},
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageRenderAttachment,
			NewUsage: gputypes.TextureUsageCopySrc,
		},
	}})
	encoder.CopyTextureToBuffer(tex, staging, []hal.BufferTextureCopy{{
		BufferLayout: hal.ImageDataLayout{Offset: 0, BytesPerRow: pitch, RowsPerImage: height},
		TextureBase:  hal.ImageCopyTexture{Texture: tex, MipLevel: 0},
		Size:         size,
	}})

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return nil, fmt.Errorf("end encoding: %w", err)
	}
	defer r.device.FreeCommandBuffer(cmdBuf)

	if err := r.submitAndWait(cmdBuf); err != nil {
		return nil, err
	}

	readback, err := r.readBuffer(staging, stagingSize)
	if err != nil {
		return nil, err
	}

	slogger().Debug("cell: offscreen frame read back",
		"width", width, "height", height, "pitch", pitch)
	return unpadRows(readback, width, height, pitch), nil
}

// readBuffer copies size bytes out of a mappable buffer. The GPU must be
// done writing to it.
func (r *CellRenderer) readBuffer(buf hal.Buffer, size uint64) ([]byte, error) {
	mapping, err := r.device.MapBuffer(buf, 0, size)
	if err != nil {
		return nil, fmt.Errorf("map staging buffer: %w", err)
	}
	out := make([]byte, size)
	copy(out, unsafe.Slice((*byte)(mapping.Ptr), size))
	if err := r.device.UnmapBuffer(buf); err != nil {
		return nil, fmt.Errorf("unmap staging buffer: %w", err)
	}
	return out, nil
}
