package gfxgtk

import "errors"

// Error kinds reported by the render-context lifecycle. Every fallible
// operation wraps one of these sentinels, so callers classify failures
// with errors.Is and decide whether to retry, skip a frame, or recreate
// the context.
var (
	// ErrContext reports that no usable context is available: construction
	// could not reach the graphics device, a frame was driven while the
	// context is not Ready, or a frame-drive call overlapped another.
	ErrContext = errors.New("gfxgtk: render context unavailable")

	// ErrAllocation reports that target creation failed: the format/AA
	// combination has no capability, or the device rejected the allocation.
	ErrAllocation = errors.New("gfxgtk: target allocation failed")

	// ErrResize reports a resize request with non-positive dimensions.
	// The context is left untouched.
	ErrResize = errors.New("gfxgtk: invalid resize")

	// ErrCallback wraps a failure raised inside a render, postprocess or
	// resize-notification callback. The context itself stays Ready.
	ErrCallback = errors.New("gfxgtk: callback failed")

	// ErrSubmission reports a device-level encoding or submission failure.
	// These are unrecoverable: the context transitions to Invalid.
	ErrSubmission = errors.New("gfxgtk: command submission failed")
)
