// Package gfxgtk drives GPU rendering into a surface owned by a host GUI
// toolkit widget.
//
// # Overview
//
// gfxgtk owns the off-screen render targets (color, depth/stencil and a
// single-sample presentation texture), reacts to the toolkit's surface
// lifecycle signals, and runs a strict two-stage frame protocol on top of
// the gogpu/wgpu HAL: a render stage recorded by the producer, followed by
// a resolve/postprocess stage with a built-in default.
//
// # Quick Start
//
//	import gfxgtk "github.com/itadinanta/gfx-gtk"
//
//	// On surface realize:
//	ctx, err := gfxgtk.New(gfxgtk.Aa4X, width, height)
//
//	// On surface resize:
//	err = ctx.Resize(newWidth, newHeight, nil)
//
//	// On each redraw signal:
//	outcome, err := ctx.Frame(producer, nil)
//
//	// On surface unrealize:
//	ctx.Destroy()
//
// The producer implements RenderCallback and records draw commands against
// the Frame it is handed; passing a nil postprocess callback selects the
// default resolve-to-presentation behavior (sample-averaging when the
// context is multisampled).
//
// # Lifecycle
//
// A RenderContext moves Uninitialized -> Ready -> Invalid. Invalid is
// terminal: unrecoverable device failures (lost device, failed submission)
// invalidate the context and a fresh one must be constructed. Everything
// else — producer callback errors, rejected resizes — leaves the context
// Ready so the host loop can simply retry on the next signal.
//
// # Threading
//
// All operations must run on the one thread that owns the host surface,
// normally the toolkit's UI/event thread. The context never overlaps two
// frames and never blocks beyond the synchronous duration of a GPU
// submission.
package gfxgtk
