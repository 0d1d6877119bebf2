package gfxgtk

import (
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// ColorFormat enumerates the color attachment layouts the catalog knows
// about. The zero value is ColorSrgba8, the conventional choice for a
// toolkit-presented surface.
type ColorFormat int

const (
	// ColorSrgba8 is 8-bit RGBA in the sRGB transfer function.
	ColorSrgba8 ColorFormat = iota

	// ColorRgba8 is 8-bit linear RGBA.
	ColorRgba8

	// ColorBgra8 is 8-bit linear BGRA, the native swapchain order on most
	// desktop platforms.
	ColorBgra8

	// ColorSbgra8 is 8-bit BGRA in the sRGB transfer function.
	ColorSbgra8
)

// String returns the format name.
func (f ColorFormat) String() string {
	switch f {
	case ColorSrgba8:
		return "Srgba8"
	case ColorRgba8:
		return "Rgba8"
	case ColorBgra8:
		return "Bgra8"
	case ColorSbgra8:
		return "Sbgra8"
	default:
		return fmt.Sprintf("ColorFormat(%d)", int(f))
	}
}

// TextureFormat returns the wgpu texture format backing this color format.
func (f ColorFormat) TextureFormat() gputypes.TextureFormat {
	switch f {
	case ColorSrgba8:
		return gputypes.TextureFormatRGBA8UnormSrgb
	case ColorRgba8:
		return gputypes.TextureFormatRGBA8Unorm
	case ColorBgra8:
		return gputypes.TextureFormatBGRA8Unorm
	case ColorSbgra8:
		return gputypes.TextureFormatBGRA8UnormSrgb
	default:
		return gputypes.TextureFormatUndefined
	}
}

// bgraOrder reports whether the format stores channels in BGRA order.
// Snapshot conversion uses this to swizzle readback pixels.
func (f ColorFormat) bgraOrder() bool {
	return f == ColorBgra8 || f == ColorSbgra8
}

// DepthFormat enumerates the depth/stencil attachment layouts. The zero
// value is DepthStencil.
type DepthFormat int

// DepthStencil is a 24-bit depth buffer with an 8-bit stencil aspect,
// the only depth layout every backend is required to support.
const DepthStencil DepthFormat = iota

// String returns the format name.
func (f DepthFormat) String() string {
	if f == DepthStencil {
		return "DepthStencil"
	}
	return fmt.Sprintf("DepthFormat(%d)", int(f))
}

// TextureFormat returns the wgpu texture format backing this depth format.
func (f DepthFormat) TextureFormat() gputypes.TextureFormat {
	if f == DepthStencil {
		return gputypes.TextureFormatDepth24PlusStencil8
	}
	return gputypes.TextureFormatUndefined
}

// AaMode is a named multisampling preset. It is fixed at context creation;
// rendering with a different mode requires constructing a new context.
type AaMode int

const (
	// AaNone disables multisampling (one sample per pixel).
	AaNone AaMode = iota

	// Aa2X stores two samples per pixel.
	Aa2X

	// Aa4X stores four samples per pixel.
	Aa4X

	// Aa8X stores eight samples per pixel.
	Aa8X
)

// String returns the preset name.
func (m AaMode) String() string {
	switch m {
	case AaNone:
		return "AaNone"
	case Aa2X:
		return "Aa2X"
	case Aa4X:
		return "Aa4X"
	case Aa8X:
		return "Aa8X"
	default:
		return fmt.Sprintf("AaMode(%d)", int(m))
	}
}

// SampleCount returns the per-pixel sample count of the preset.
func (m AaMode) SampleCount() uint32 {
	switch m {
	case Aa2X:
		return 2
	case Aa4X:
		return 4
	case Aa8X:
		return 8
	default:
		return 1
	}
}

// Capability is a concrete, allocatable combination of color format,
// depth format and AA preset produced by Lookup.
type Capability struct {
	Color ColorFormat
	Depth DepthFormat
	Aa    AaMode
}

// SampleCount returns the sample count shared by the capability's color
// and depth targets.
func (c Capability) SampleCount() uint32 { return c.Aa.SampleCount() }

// Lookup resolves a requested color format, depth format and AA preset to
// a concrete capability, or reports that the combination has no default.
// Only sample counts 1 and 4 are guaranteed renderable by every backend,
// so Aa2X and Aa8X have no default capability. Driver-level validation
// still happens at allocation time; Lookup is the static catalog only.
func Lookup(color ColorFormat, depth DepthFormat, aa AaMode) (Capability, error) {
	if color.TextureFormat() == gputypes.TextureFormatUndefined {
		return Capability{}, fmt.Errorf("%w: unknown color format %s", ErrAllocation, color)
	}
	if depth.TextureFormat() == gputypes.TextureFormatUndefined {
		return Capability{}, fmt.Errorf("%w: unknown depth format %s", ErrAllocation, depth)
	}
	switch aa {
	case AaNone, Aa4X:
	default:
		return Capability{}, fmt.Errorf("%w: no default capability for %s/%s/%s",
			ErrAllocation, color, depth, aa)
	}
	return Capability{Color: color, Depth: depth, Aa: aa}, nil
}

// SurfaceColorFormat maps a wgpu surface format to its catalog color
// format. The second return value is false when the surface format has no
// catalog equivalent.
func SurfaceColorFormat(f gputypes.TextureFormat) (ColorFormat, bool) {
	switch f {
	case gputypes.TextureFormatRGBA8UnormSrgb:
		return ColorSrgba8, true
	case gputypes.TextureFormatRGBA8Unorm:
		return ColorRgba8, true
	case gputypes.TextureFormatBGRA8Unorm:
		return ColorBgra8, true
	case gputypes.TextureFormatBGRA8UnormSrgb:
		return ColorSbgra8, true
	default:
		return ColorSrgba8, false
	}
}

// ProviderColorFormat maps a host device provider's presentation surface
// format to its catalog color format, so a context can be created to match
// the surface it will resolve into.
func ProviderColorFormat(p gpucontext.DeviceProvider) (ColorFormat, bool) {
	return SurfaceColorFormat(p.SurfaceFormat())
}
