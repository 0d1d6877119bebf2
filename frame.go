package gfxgtk

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// Frame is the borrowed per-call view of a RenderContext handed to the
// render and postprocess stages. It is valid only for the duration of the
// callback that received it; the context releases it when the frame-drive
// returns, and a retained Frame fails every subsequent operation.
type Frame struct {
	ctx      *RenderContext
	encoder  hal.CommandEncoder
	viewport Viewport
	released bool
}

// Device returns the graphics device for the duration of the call.
func (f *Frame) Device() hal.Device {
	if f.released {
		return nil
	}
	return f.ctx.device
}

// Queue returns the submission queue for the duration of the call.
func (f *Frame) Queue() hal.Queue {
	if f.released {
		return nil
	}
	return f.ctx.queue
}

// Encoder returns the command encoder recording this frame. All passes
// recorded against it are submitted together when the frame-drive ends.
func (f *Frame) Encoder() hal.CommandEncoder {
	if f.released {
		return nil
	}
	return f.encoder
}

// Viewport returns the drawable rectangle of the current targets.
func (f *Frame) Viewport() Viewport { return f.viewport }

// Generation returns the target generation this frame renders against.
// It increments on every reallocation; callback resources built for an
// older generation must be rebuilt.
func (f *Frame) Generation() uint64 {
	if f.released {
		return 0
	}
	return f.ctx.generation
}

// SampleCount returns the per-pixel sample count of the color and depth
// targets, fixed at context creation.
func (f *Frame) SampleCount() uint32 {
	if f.released {
		return 0
	}
	return f.ctx.capability.SampleCount()
}

// ColorView returns the color attachment view.
func (f *Frame) ColorView() hal.TextureView {
	if f.released {
		return nil
	}
	return f.ctx.targets.colorView
}

// DepthView returns the depth/stencil attachment view.
func (f *Frame) DepthView() hal.TextureView {
	if f.released {
		return nil
	}
	return f.ctx.targets.depthView
}

// PresentationView returns the resolve destination: the host surface view
// when one was routed via SetPresentTarget, the context's own
// single-sample presentation texture otherwise.
func (f *Frame) PresentationView() hal.TextureView {
	if f.released {
		return nil
	}
	return f.ctx.presentationView()
}

// BeginPass opens a render pass targeting the frame's color and depth
// attachments, clearing both. The caller records draws on the returned
// encoder and must End it before the render stage returns.
func (f *Frame) BeginPass(clear gputypes.Color) hal.RenderPassEncoder {
	if f.released {
		return nil
	}
	return f.encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "gfxgtk_render_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:       f.ctx.targets.colorView,
			LoadOp:     gputypes.LoadOpClear,
			StoreOp:    gputypes.StoreOpStore,
			ClearValue: clear,
		}},
		DepthStencilAttachment: &hal.RenderPassDepthStencilAttachment{
			View:              f.ctx.targets.depthView,
			DepthLoadOp:       gputypes.LoadOpClear,
			DepthStoreOp:      gputypes.StoreOpStore,
			DepthClearValue:   1.0,
			StencilLoadOp:     gputypes.LoadOpClear,
			StencilStoreOp:    gputypes.StoreOpDiscard,
			StencilClearValue: 0,
		},
	})
}

// ResolveToPresentation copies the color target into the presentation
// buffer: a sample-averaging resolve pass when the context is
// multisampled, a fullscreen blit otherwise. This is what the default
// postprocess stage runs; custom stages may call it and then record
// further passes against the presentation view.
func (f *Frame) ResolveToPresentation() error {
	if f.released {
		return fmt.Errorf("%w: frame used after release", ErrContext)
	}
	return f.ctx.resolveToPresentation(f.encoder)
}

// release invalidates the frame once the drive call returns.
func (f *Frame) release() {
	f.released = true
	f.encoder = nil
}
