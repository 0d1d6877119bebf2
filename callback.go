package gfxgtk

import "fmt"

// FrameOutcome is the producer's declared intent about further automatic
// redraws. It is advisory output for the host loop driving the redraw
// signals; the context itself never interprets it.
type FrameOutcome int

const (
	// FrameContinue requests that the host keeps scheduling redraws.
	FrameContinue FrameOutcome = iota

	// FrameStop tells the host that no further automatic redraws are
	// needed until new producer state asks for one.
	FrameStop
)

// String returns the outcome name.
func (o FrameOutcome) String() string {
	switch o {
	case FrameContinue:
		return "Continue"
	case FrameStop:
		return "Stop"
	default:
		return fmt.Sprintf("FrameOutcome(%d)", int(o))
	}
}

// RenderCallback is the mandatory render stage of the frame protocol.
//
// Render is invoked once per frame-drive with a Frame borrowed for the
// duration of the call. The callback records draw commands against the
// frame's color and depth targets and reports whether the host should
// keep scheduling redraws. Implementations must not retain the Frame or
// any handle obtained from it past the call.
//
// GPU resources sized to the targets (framebuffer-dependent buffers,
// viewport-sized textures) are only valid for a single target generation;
// rebuild them whenever Frame.Generation changes.
type RenderCallback interface {
	Render(f *Frame) (FrameOutcome, error)
}

// RenderFunc adapts a plain function to the RenderCallback interface.
type RenderFunc func(f *Frame) (FrameOutcome, error)

// Render calls fn.
func (fn RenderFunc) Render(f *Frame) (FrameOutcome, error) { return fn(f) }

// PostprocessCallback is the resolve stage of the frame protocol, invoked
// once per frame immediately after the render stage.
//
// Resize is the target-change notification: after a successful resize the
// context reports the new viewport and target generation so the callback
// can rebuild its size-dependent resources before the next frame.
type PostprocessCallback interface {
	Postprocess(f *Frame) error
	Resize(vp Viewport, generation uint64) error
}

// DefaultPostprocess is the built-in resolve stage used when the producer
// supplies no postprocess callback: a direct resolve of the (possibly
// multisampled) color target into the presentation buffer, sample-averaged
// when multisampled, with no color transformation.
//
// Producers embed DefaultPostprocess to inherit the default Resize and
// call Frame.ResolveToPresentation from their own Postprocess before
// applying full-screen effects.
type DefaultPostprocess struct{}

// Postprocess resolves the color target into the presentation buffer.
func (DefaultPostprocess) Postprocess(f *Frame) error {
	return f.ResolveToPresentation()
}

// Resize is a no-op: the default stage owns no size-dependent resources.
func (DefaultPostprocess) Resize(Viewport, uint64) error { return nil }

var _ PostprocessCallback = DefaultPostprocess{}
