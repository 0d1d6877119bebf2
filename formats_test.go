package gfxgtk

import (
	"errors"
	"testing"

	"github.com/gogpu/gputypes"
)

func TestColorFormatTextureFormat(t *testing.T) {
	tests := []struct {
		format ColorFormat
		want   gputypes.TextureFormat
	}{
		{ColorSrgba8, gputypes.TextureFormatRGBA8UnormSrgb},
		{ColorRgba8, gputypes.TextureFormatRGBA8Unorm},
		{ColorBgra8, gputypes.TextureFormatBGRA8Unorm},
		{ColorSbgra8, gputypes.TextureFormatBGRA8UnormSrgb},
		{ColorFormat(99), gputypes.TextureFormatUndefined},
	}
	for _, tt := range tests {
		if got := tt.format.TextureFormat(); got != tt.want {
			t.Errorf("%s.TextureFormat() = %v, want %v", tt.format, got, tt.want)
		}
	}
}

func TestColorFormatZeroValue(t *testing.T) {
	var f ColorFormat
	if f != ColorSrgba8 {
		t.Errorf("zero ColorFormat = %s, want Srgba8", f)
	}
}

func TestColorFormatBgraOrder(t *testing.T) {
	tests := []struct {
		format ColorFormat
		want   bool
	}{
		{ColorSrgba8, false},
		{ColorRgba8, false},
		{ColorBgra8, true},
		{ColorSbgra8, true},
	}
	for _, tt := range tests {
		if got := tt.format.bgraOrder(); got != tt.want {
			t.Errorf("%s.bgraOrder() = %v, want %v", tt.format, got, tt.want)
		}
	}
}

func TestDepthFormatTextureFormat(t *testing.T) {
	if got := DepthStencil.TextureFormat(); got != gputypes.TextureFormatDepth24PlusStencil8 {
		t.Errorf("DepthStencil.TextureFormat() = %v, want Depth24PlusStencil8", got)
	}
	if got := DepthFormat(7).TextureFormat(); got != gputypes.TextureFormatUndefined {
		t.Errorf("unknown DepthFormat.TextureFormat() = %v, want Undefined", got)
	}
}

func TestAaModeSampleCount(t *testing.T) {
	tests := []struct {
		mode AaMode
		want uint32
	}{
		{AaNone, 1},
		{Aa2X, 2},
		{Aa4X, 4},
		{Aa8X, 8},
		{AaMode(99), 1},
	}
	for _, tt := range tests {
		if got := tt.mode.SampleCount(); got != tt.want {
			t.Errorf("%s.SampleCount() = %d, want %d", tt.mode, got, tt.want)
		}
	}
}

func TestLookup(t *testing.T) {
	tests := []struct {
		name    string
		color   ColorFormat
		depth   DepthFormat
		aa      AaMode
		wantErr bool
	}{
		{"defaults", ColorSrgba8, DepthStencil, AaNone, false},
		{"srgba 4x", ColorSrgba8, DepthStencil, Aa4X, false},
		{"bgra 4x", ColorBgra8, DepthStencil, Aa4X, false},
		{"rgba none", ColorRgba8, DepthStencil, AaNone, false},
		{"sbgra none", ColorSbgra8, DepthStencil, AaNone, false},
		{"2x unsupported", ColorSrgba8, DepthStencil, Aa2X, true},
		{"8x unsupported", ColorSrgba8, DepthStencil, Aa8X, true},
		{"unknown color", ColorFormat(99), DepthStencil, AaNone, true},
		{"unknown depth", ColorSrgba8, DepthFormat(7), AaNone, true},
		{"unknown aa", ColorSrgba8, DepthStencil, AaMode(99), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cap, err := Lookup(tt.color, tt.depth, tt.aa)
			if tt.wantErr {
				if !errors.Is(err, ErrAllocation) {
					t.Errorf("Lookup error = %v, want ErrAllocation", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Lookup: %v", err)
			}
			if cap.Color != tt.color || cap.Depth != tt.depth || cap.Aa != tt.aa {
				t.Errorf("Lookup = %+v, want {%s %s %s}", cap, tt.color, tt.depth, tt.aa)
			}
			if cap.SampleCount() != tt.aa.SampleCount() {
				t.Errorf("capability SampleCount = %d, want %d", cap.SampleCount(), tt.aa.SampleCount())
			}
		})
	}
}

func TestSurfaceColorFormat(t *testing.T) {
	// Every catalog format round-trips through its texture format.
	for _, f := range []ColorFormat{ColorSrgba8, ColorRgba8, ColorBgra8, ColorSbgra8} {
		got, ok := SurfaceColorFormat(f.TextureFormat())
		if !ok || got != f {
			t.Errorf("SurfaceColorFormat(%v) = %s, %v; want %s, true", f.TextureFormat(), got, ok, f)
		}
	}
	if _, ok := SurfaceColorFormat(gputypes.TextureFormatDepth24PlusStencil8); ok {
		t.Error("SurfaceColorFormat accepted a depth format")
	}
}

func TestFormatStrings(t *testing.T) {
	tests := []struct {
		got, want string
	}{
		{ColorSrgba8.String(), "Srgba8"},
		{ColorBgra8.String(), "Bgra8"},
		{ColorFormat(99).String(), "ColorFormat(99)"},
		{DepthStencil.String(), "DepthStencil"},
		{AaNone.String(), "AaNone"},
		{Aa4X.String(), "Aa4X"},
		{AaMode(99).String(), "AaMode(99)"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("String() = %q, want %q", tt.got, tt.want)
		}
	}
}
