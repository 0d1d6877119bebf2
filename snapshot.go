package gfxgtk

import (
	"fmt"
	"image"
	"image/draw"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	xdraw "golang.org/x/image/draw"
)

// copyPitchAlignment is the row alignment texture-to-buffer copies
// require on WebGPU and DX12.
const copyPitchAlignment = 256

// ReadPresentation copies the presentation buffer back to the CPU and
// returns it as an NRGBA image. It drives its own submission, so it must
// not be called while a frame is in flight, and the context must be
// Ready. A device-level failure invalidates the context like any other
// submission failure.
//
// Readback is a diagnostic path for tests, screenshots and examples; the
// normal presentation flow never leaves the GPU.
func (c *RenderContext) ReadPresentation() (*image.NRGBA, error) {
	if c.state != StateReady {
		return nil, fmt.Errorf("%w: readback in state %s", ErrContext, c.state)
	}
	if c.inFrame {
		return nil, fmt.Errorf("%w: readback while frame in flight", ErrContext)
	}
	c.inFrame = true
	defer func() { c.inFrame = false }()

	w := uint32(c.viewport.Width)
	h := uint32(c.viewport.Height)
	bytesPerRow := w * 4
	alignedBytesPerRow := (bytesPerRow + copyPitchAlignment - 1) &^ (copyPitchAlignment - 1)
	stagingSize := uint64(alignedBytesPerRow) * uint64(h)

	stagingBuf, err := c.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "gfxgtk_readback",
		Size:  stagingSize,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: create staging buffer: %w", ErrAllocation, err)
	}
	defer c.device.DestroyBuffer(stagingBuf)

	encoder, err := c.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "gfxgtk_readback_encoder",
	})
	if err != nil {
		c.state = StateInvalid
		return nil, fmt.Errorf("%w: create encoder: %w", ErrSubmission, err)
	}
	if err := encoder.BeginEncoding("gfxgtk_readback"); err != nil {
		c.state = StateInvalid
		return nil, fmt.Errorf("%w: begin encoding: %w", ErrSubmission, err)
	}

	// The presentation texture sits in attachment layout after a resolve;
	// the copy needs transfer-source layout. No-op on backends without
	// explicit layouts.
	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: c.targets.presentTex,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageRenderAttachment,
			NewUsage: gputypes.TextureUsageCopySrc,
		},
	}})

	encoder.CopyTextureToBuffer(c.targets.presentTex, stagingBuf, []hal.BufferTextureCopy{{
		BufferLayout: hal.ImageDataLayout{Offset: 0, BytesPerRow: alignedBytesPerRow, RowsPerImage: h},
		TextureBase:  hal.ImageCopyTexture{Texture: c.targets.presentTex, MipLevel: 0},
		Size:         hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
	}})

	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: c.targets.presentTex,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageCopySrc,
			NewUsage: gputypes.TextureUsageRenderAttachment,
		},
	}})

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		c.state = StateInvalid
		return nil, fmt.Errorf("%w: end encoding: %w", ErrSubmission, err)
	}
	defer c.device.FreeCommandBuffer(cmdBuf)

	if err := c.submitAndWait(cmdBuf); err != nil {
		return nil, err
	}

	readback := make([]byte, stagingSize)
	if err := c.queue.ReadBuffer(stagingBuf, 0, readback); err != nil {
		c.state = StateInvalid
		return nil, fmt.Errorf("%w: read staging buffer: %w", ErrSubmission, err)
	}

	img := image.NewNRGBA(image.Rect(0, 0, int(w), int(h)))
	swap := c.capability.Color.bgraOrder()
	for row := uint32(0); row < h; row++ {
		src := readback[row*alignedBytesPerRow : row*alignedBytesPerRow+bytesPerRow]
		dst := img.Pix[int(row)*img.Stride : int(row)*img.Stride+int(bytesPerRow)]
		if swap {
			for i := 0; i < int(bytesPerRow); i += 4 {
				dst[i] = src[i+2]
				dst[i+1] = src[i+1]
				dst[i+2] = src[i]
				dst[i+3] = src[i+3]
			}
		} else {
			copy(dst, src)
		}
	}
	return img, nil
}

// SnapshotInto reads the presentation buffer back and scales it into the
// given rectangle of dst, preserving nothing outside it. Useful for
// thumbnailing frames into preview widgets.
func (c *RenderContext) SnapshotInto(dst draw.Image, r image.Rectangle) error {
	src, err := c.ReadPresentation()
	if err != nil {
		return err
	}
	xdraw.ApproxBiLinear.Scale(dst, r, src, src.Bounds(), xdraw.Src, nil)
	return nil
}
