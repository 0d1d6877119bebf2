package gfxgtk

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// renderTargets is the context-owned attachment set: a color target and a
// depth/stencil target in lockstep (same size, same sample count), plus a
// single-sample presentation texture serving as the default resolve
// destination and readback source.
type renderTargets struct {
	colorTex    hal.Texture
	colorView   hal.TextureView
	depthTex    hal.Texture
	depthView   hal.TextureView
	presentTex  hal.Texture
	presentView hal.TextureView
	width       uint32
	height      uint32
	samples     uint32
}

// allocateTargets creates a complete target set for the capability at the
// given size. The old set, if any, is never touched: on any partial
// failure the partially created set is destroyed and an error returned,
// so a failed (re)allocation leaves the caller's previous targets intact.
func allocateTargets(device hal.Device, cap Capability, width, height uint32) (*renderTargets, error) {
	t := &renderTargets{width: width, height: height, samples: cap.SampleCount()}
	size := hal.Extent3D{Width: width, Height: height, DepthOrArrayLayers: 1}

	colorUsage := gputypes.TextureUsageRenderAttachment
	if t.samples == 1 {
		// Single-sample color is blitted, not resolved, so the present
		// pipeline samples it.
		colorUsage |= gputypes.TextureUsageTextureBinding
	}
	colorTex, err := device.CreateTexture(&hal.TextureDescriptor{
		Label:         "gfxgtk_color",
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   t.samples,
		Dimension:     gputypes.TextureDimension2D,
		Format:        cap.Color.TextureFormat(),
		Usage:         colorUsage,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: create color target: %w", ErrAllocation, err)
	}
	t.colorTex = colorTex

	colorView, err := device.CreateTextureView(colorTex, &hal.TextureViewDescriptor{
		Label: "gfxgtk_color_view",
	})
	if err != nil {
		t.destroy(device)
		return nil, fmt.Errorf("%w: create color view: %w", ErrAllocation, err)
	}
	t.colorView = colorView

	depthTex, err := device.CreateTexture(&hal.TextureDescriptor{
		Label:         "gfxgtk_depth",
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   t.samples,
		Dimension:     gputypes.TextureDimension2D,
		Format:        cap.Depth.TextureFormat(),
		Usage:         gputypes.TextureUsageRenderAttachment,
	})
	if err != nil {
		t.destroy(device)
		return nil, fmt.Errorf("%w: create depth target: %w", ErrAllocation, err)
	}
	t.depthTex = depthTex

	depthView, err := device.CreateTextureView(depthTex, &hal.TextureViewDescriptor{
		Label: "gfxgtk_depth_view",
	})
	if err != nil {
		t.destroy(device)
		return nil, fmt.Errorf("%w: create depth view: %w", ErrAllocation, err)
	}
	t.depthView = depthView

	presentTex, err := device.CreateTexture(&hal.TextureDescriptor{
		Label:         "gfxgtk_present",
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        cap.Color.TextureFormat(),
		Usage: gputypes.TextureUsageRenderAttachment |
			gputypes.TextureUsageTextureBinding |
			gputypes.TextureUsageCopySrc,
	})
	if err != nil {
		t.destroy(device)
		return nil, fmt.Errorf("%w: create presentation target: %w", ErrAllocation, err)
	}
	t.presentTex = presentTex

	presentView, err := device.CreateTextureView(presentTex, &hal.TextureViewDescriptor{
		Label: "gfxgtk_present_view",
	})
	if err != nil {
		t.destroy(device)
		return nil, fmt.Errorf("%w: create presentation view: %w", ErrAllocation, err)
	}
	t.presentView = presentView

	return t, nil
}

// destroy releases all resources of the set in reverse creation order.
// Safe on a partially created set and safe to call twice.
func (t *renderTargets) destroy(device hal.Device) {
	if t.presentView != nil {
		device.DestroyTextureView(t.presentView)
		t.presentView = nil
	}
	if t.presentTex != nil {
		device.DestroyTexture(t.presentTex)
		t.presentTex = nil
	}
	if t.depthView != nil {
		device.DestroyTextureView(t.depthView)
		t.depthView = nil
	}
	if t.depthTex != nil {
		device.DestroyTexture(t.depthTex)
		t.depthTex = nil
	}
	if t.colorView != nil {
		device.DestroyTextureView(t.colorView)
		t.colorView = nil
	}
	if t.colorTex != nil {
		device.DestroyTexture(t.colorTex)
		t.colorTex = nil
	}
	t.width = 0
	t.height = 0
}
