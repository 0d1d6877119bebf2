package gfxgtk

import (
	"errors"
	"fmt"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// State is the lifecycle state of a RenderContext.
//
// State Machine:
//
//	Uninitialized -> Ready    (successful construction)
//	Ready         -> Ready    (resize, frame-drive, recoverable failures)
//	Ready         -> Invalid  (device lost / submission failure, Destroy)
//
// Invalid is terminal; a fresh context must be constructed to recover.
type State int

const (
	// StateUninitialized is the zero value before construction completes.
	StateUninitialized State = iota

	// StateReady accepts resize and frame-drive calls.
	StateReady

	// StateInvalid is terminal: every operation fails with ErrContext.
	StateInvalid
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "Uninitialized"
	case StateReady:
		return "Ready"
	case StateInvalid:
		return "Invalid"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// fenceTimeout bounds the wait for a submitted frame.
const fenceTimeout = 5 * time.Second

// Config holds the construction parameters of a RenderContext. The zero
// value selects Srgba8 color, DepthStencil depth and no multisampling;
// Width and Height must be set. Supplying both Device and Queue shares an
// externally owned device, which Destroy leaves alive.
type Config struct {
	Color  ColorFormat
	Depth  DepthFormat
	Aa     AaMode
	Width  int32
	Height int32

	Device hal.Device
	Queue  hal.Queue
}

// RenderContext owns the render targets, viewport and device link for one
// host surface, and drives the two-stage frame protocol against them.
//
// A RenderContext is the sole owner of its targets. It is not safe for
// concurrent use: every operation must run on the one thread that owns
// the host surface, and frame-drive calls never overlap.
type RenderContext struct {
	state      State
	link       gpuLink
	device     hal.Device
	queue      hal.Queue
	capability Capability
	viewport   Viewport
	targets    *renderTargets
	present    *presentPipeline
	generation uint64

	// Host presentation routing. When surfaceView is non-nil the default
	// resolve targets it instead of the internal presentation texture.
	surfaceView hal.TextureView

	inFrame   bool
	destroyed bool
}

// New constructs a context with default formats at the given size,
// opening its own graphics device. The host surface's native context must
// be current on the calling thread.
func New(aa AaMode, width, height int32) (*RenderContext, error) {
	return NewWithConfig(Config{Aa: aa, Width: width, Height: height})
}

// NewShared constructs a context with default formats on an externally
// owned device, sharing GPU resources with whatever else uses that
// device. Destroy releases the targets but leaves the device alive.
func NewShared(device hal.Device, queue hal.Queue, aa AaMode, width, height int32) (*RenderContext, error) {
	return NewWithConfig(Config{
		Aa:     aa,
		Width:  width,
		Height: height,
		Device: device,
		Queue:  queue,
	})
}

// NewWithConfig constructs a context from explicit configuration. The
// capability lookup runs before any allocation, so an unsupported
// format/AA combination fails without partial resources. On success the
// context is Ready.
func NewWithConfig(cfg Config) (*RenderContext, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("%w: non-positive dimensions %dx%d",
			ErrAllocation, cfg.Width, cfg.Height)
	}
	capability, err := Lookup(cfg.Color, cfg.Depth, cfg.Aa)
	if err != nil {
		return nil, err
	}

	var link gpuLink
	switch {
	case cfg.Device != nil && cfg.Queue != nil:
		link = gpuLink{device: cfg.Device, queue: cfg.Queue}
	case cfg.Device != nil || cfg.Queue != nil:
		return nil, fmt.Errorf("%w: shared device requires both device and queue", ErrContext)
	default:
		opened, err := openDefaultDevice()
		if err != nil {
			return nil, err
		}
		link = *opened
	}

	targets, err := allocateTargets(link.device, capability, uint32(cfg.Width), uint32(cfg.Height))
	if err != nil {
		link.close()
		return nil, err
	}

	present, err := newPresentPipeline(link.device, capability.Color)
	if err != nil {
		targets.destroy(link.device)
		link.close()
		return nil, fmt.Errorf("%w: %w", ErrAllocation, err)
	}

	c := &RenderContext{
		state:      StateReady,
		link:       link,
		device:     link.device,
		queue:      link.queue,
		capability: capability,
		viewport:   NewViewport(cfg.Width, cfg.Height),
		targets:    targets,
		present:    present,
		generation: 1,
	}

	Logger().Debug("gfxgtk: context created",
		"viewport", c.viewport, "aa", capability.Aa, "color", capability.Color)

	return c, nil
}

// Resize reallocates the targets for a new surface size, keeping the AA
// mode and formats fixed at creation.
//
// Resizing to the current size is a no-op returning nil without touching
// the targets, so spurious toolkit resize notifications cost nothing.
// Non-positive dimensions fail with ErrResize and leave the context
// unmodified, as does an allocation failure: the previous targets stay
// live and the context stays Ready.
//
// When post is non-nil it is notified of the new viewport and target
// generation after a successful reallocation, so it can rebuild its
// size-dependent resources before the next frame. A notification error
// is returned wrapped in ErrCallback, but the context's own targets are
// already validly resized and it remains Ready.
func (c *RenderContext) Resize(width, height int32, post PostprocessCallback) error {
	if c.state != StateReady {
		return fmt.Errorf("%w: resize in state %s", ErrContext, c.state)
	}
	if width == c.viewport.Width && height == c.viewport.Height {
		Logger().Debug("gfxgtk: resize to current size skipped", "viewport", c.viewport)
		return nil
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: non-positive dimensions %dx%d", ErrResize, width, height)
	}

	next, err := allocateTargets(c.device, c.capability, uint32(width), uint32(height))
	if err != nil {
		return err
	}
	old := c.targets
	c.targets = next
	old.destroy(c.device)

	c.viewport = NewViewport(width, height)
	c.generation++

	Logger().Debug("gfxgtk: targets resized",
		"viewport", c.viewport, "generation", c.generation)

	if post != nil {
		if err := post.Resize(c.viewport, c.generation); err != nil {
			return fmt.Errorf("%w: resize notification: %w", ErrCallback, err)
		}
	}
	return nil
}

// Frame drives one frame through the two-stage protocol: the render stage
// records draw commands, the postprocess stage resolves them into the
// presentation buffer (nil selects the built-in resolve), and the
// recorded commands are submitted and waited on.
//
// Frame is runnable only while Ready and never overlaps itself: a call
// made while another frame is in flight fails with ErrContext. Callback
// failures discard the frame's commands and leave the context Ready;
// encoding or submission failures are unrecoverable and transition the
// context to Invalid.
//
// The returned FrameOutcome is the render stage's report. The context
// does not interpret FrameStop; the host loop decides whether to keep
// scheduling redraws.
func (c *RenderContext) Frame(render RenderCallback, post PostprocessCallback) (FrameOutcome, error) {
	if c.state != StateReady {
		return FrameContinue, fmt.Errorf("%w: frame-drive in state %s", ErrContext, c.state)
	}
	if render == nil {
		return FrameContinue, fmt.Errorf("%w: nil render callback", ErrCallback)
	}
	if c.inFrame {
		return FrameContinue, fmt.Errorf("%w: frame already in flight", ErrContext)
	}
	c.inFrame = true
	defer func() { c.inFrame = false }()

	encoder, err := c.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "gfxgtk_frame_encoder",
	})
	if err != nil {
		c.state = StateInvalid
		return FrameContinue, fmt.Errorf("%w: create encoder: %w", ErrSubmission, err)
	}
	if err := encoder.BeginEncoding("gfxgtk_frame"); err != nil {
		c.state = StateInvalid
		return FrameContinue, fmt.Errorf("%w: begin encoding: %w", ErrSubmission, err)
	}

	f := &Frame{ctx: c, encoder: encoder, viewport: c.viewport}
	defer f.release()

	outcome, err := render.Render(f)
	if err != nil {
		encoder.DiscardEncoding()
		return outcome, fmt.Errorf("%w: render stage: %w", ErrCallback, err)
	}

	pp := post
	if pp == nil {
		pp = DefaultPostprocess{}
	}
	if err := pp.Postprocess(f); err != nil {
		if errors.Is(err, ErrSubmission) {
			c.state = StateInvalid
			return outcome, err
		}
		encoder.DiscardEncoding()
		return outcome, fmt.Errorf("%w: postprocess stage: %w", ErrCallback, err)
	}

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		c.state = StateInvalid
		return outcome, fmt.Errorf("%w: end encoding: %w", ErrSubmission, err)
	}
	defer c.device.FreeCommandBuffer(cmdBuf)

	if err := c.submitAndWait(cmdBuf); err != nil {
		return outcome, err
	}
	return outcome, nil
}

// submitAndWait submits one command buffer and blocks until the device
// signals completion. Any failure is unrecoverable: the context is
// invalidated and the error wrapped in ErrSubmission.
func (c *RenderContext) submitAndWait(cmdBuf hal.CommandBuffer) error {
	fence, err := c.device.CreateFence()
	if err != nil {
		c.state = StateInvalid
		return fmt.Errorf("%w: create fence: %w", ErrSubmission, err)
	}
	defer c.device.DestroyFence(fence)

	if err := c.queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		c.state = StateInvalid
		return fmt.Errorf("%w: submit: %w", ErrSubmission, err)
	}
	ok, err := c.device.Wait(fence, 1, fenceTimeout)
	if err != nil || !ok {
		c.state = StateInvalid
		return fmt.Errorf("%w: wait for device: ok=%v err=%v", ErrSubmission, ok, err)
	}
	return nil
}

// resolveToPresentation records the default resolve: a sample-averaging
// resolve pass for multisampled targets, the fullscreen blit otherwise.
func (c *RenderContext) resolveToPresentation(encoder hal.CommandEncoder) error {
	dest := c.presentationView()
	if c.targets.samples > 1 {
		rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
			Label: "gfxgtk_resolve_pass",
			ColorAttachments: []hal.RenderPassColorAttachment{{
				View:          c.targets.colorView,
				ResolveTarget: dest,
				LoadOp:        gputypes.LoadOpLoad,
				StoreOp:       gputypes.StoreOpStore,
			}},
		})
		rp.End()
		return nil
	}
	return c.present.blit(c.device, encoder, c.targets.colorView, dest, c.generation)
}

// presentationView returns the routed host surface view, or the internal
// presentation texture view when none is set.
func (c *RenderContext) presentationView() hal.TextureView {
	if c.surfaceView != nil {
		return c.surfaceView
	}
	return c.targets.presentView
}

// SetPresentTarget routes the default resolve/blit to a host surface
// texture view instead of the internal presentation texture. The view
// must match the context's color format and current viewport size, and
// the caller retains ownership: Destroy never releases it. Pass nil to
// restore the internal presentation texture.
func (c *RenderContext) SetPresentTarget(view hal.TextureView) {
	c.surfaceView = view
}

// State returns the current lifecycle state.
func (c *RenderContext) State() State { return c.state }

// Viewport returns the drawable rectangle of the current targets.
func (c *RenderContext) Viewport() Viewport { return c.viewport }

// Aa returns the multisampling preset fixed at creation.
func (c *RenderContext) Aa() AaMode { return c.capability.Aa }

// ColorFormat returns the color target format fixed at creation.
func (c *RenderContext) ColorFormat() ColorFormat { return c.capability.Color }

// DepthFormat returns the depth target format fixed at creation.
func (c *RenderContext) DepthFormat() DepthFormat { return c.capability.Depth }

// SampleCount returns the per-pixel sample count of the targets.
func (c *RenderContext) SampleCount() uint32 { return c.capability.SampleCount() }

// Generation returns the current target generation. It starts at 1 and
// increments on every reallocation.
func (c *RenderContext) Generation() uint64 { return c.generation }

// Device returns the graphics device. Callbacks should prefer the
// frame-scoped accessor; this one exists for constructing producer
// resources between frames.
func (c *RenderContext) Device() hal.Device { return c.device }

// Queue returns the submission queue.
func (c *RenderContext) Queue() hal.Queue { return c.queue }

// Destroy releases the targets, the presentation pipeline and, when the
// context opened its own device, the device and instance. The context is
// Invalid afterwards. Destroy is idempotent.
func (c *RenderContext) Destroy() {
	if c.destroyed {
		return
	}
	c.destroyed = true
	c.state = StateInvalid

	if c.present != nil {
		c.present.destroy(c.device)
		c.present = nil
	}
	if c.targets != nil {
		c.targets.destroy(c.device)
		c.targets = nil
	}
	c.surfaceView = nil
	c.link.close()

	Logger().Debug("gfxgtk: context destroyed")
}
