package gfxgtk

import "fmt"

// Viewport describes the active drawable rectangle in pixels. It always
// equals the full extent of the context's current render targets and is
// recomputed on every successful create or resize.
type Viewport struct {
	X      int32
	Y      int32
	Width  int32
	Height int32
}

// NewViewport returns a viewport covering a width x height surface with
// its origin at (0, 0).
func NewViewport(width, height int32) Viewport {
	return Viewport{Width: width, Height: height}
}

// Valid reports whether both extents are positive.
func (v Viewport) Valid() bool {
	return v.Width > 0 && v.Height > 0
}

// AspectRatio returns width over height, or 0 for a degenerate viewport.
// Producers typically feed this into their projection matrices.
func (v Viewport) AspectRatio() float32 {
	if v.Height == 0 {
		return 0
	}
	return float32(v.Width) / float32(v.Height)
}

// String returns the viewport as "WxH+X+Y".
func (v Viewport) String() string {
	return fmt.Sprintf("%dx%d+%d+%d", v.Width, v.Height, v.X, v.Y)
}
