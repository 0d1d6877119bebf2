package gfxgtk

import "testing"

func TestNewViewport(t *testing.T) {
	vp := NewViewport(800, 600)
	if vp.X != 0 || vp.Y != 0 {
		t.Errorf("origin = (%d, %d), want (0, 0)", vp.X, vp.Y)
	}
	if vp.Width != 800 || vp.Height != 600 {
		t.Errorf("extent = %dx%d, want 800x600", vp.Width, vp.Height)
	}
}

func TestViewportValid(t *testing.T) {
	tests := []struct {
		vp   Viewport
		want bool
	}{
		{NewViewport(1, 1), true},
		{NewViewport(1920, 1080), true},
		{NewViewport(0, 100), false},
		{NewViewport(100, 0), false},
		{NewViewport(-1, 100), false},
		{Viewport{}, false},
	}
	for _, tt := range tests {
		if got := tt.vp.Valid(); got != tt.want {
			t.Errorf("%s.Valid() = %v, want %v", tt.vp, got, tt.want)
		}
	}
}

func TestViewportAspectRatio(t *testing.T) {
	tests := []struct {
		vp   Viewport
		want float32
	}{
		{NewViewport(1920, 1080), 1920.0 / 1080.0},
		{NewViewport(100, 100), 1},
		{NewViewport(100, 0), 0},
	}
	for _, tt := range tests {
		if got := tt.vp.AspectRatio(); got != tt.want {
			t.Errorf("%s.AspectRatio() = %v, want %v", tt.vp, got, tt.want)
		}
	}
}

func TestViewportString(t *testing.T) {
	vp := Viewport{X: 10, Y: 20, Width: 640, Height: 480}
	if got := vp.String(); got != "640x480+10+20" {
		t.Errorf("String() = %q, want %q", got, "640x480+10+20")
	}
}
