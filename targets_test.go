package gfxgtk

import (
	"errors"
	"testing"
)

func TestAllocateTargets(t *testing.T) {
	device, _, cleanup := createNoopDevice(t)
	defer cleanup()

	cap := Capability{Color: ColorSrgba8, Depth: DepthStencil, Aa: Aa4X}
	targets, err := allocateTargets(device, cap, 320, 240)
	if err != nil {
		t.Fatalf("allocateTargets: %v", err)
	}
	defer targets.destroy(device)

	if targets.width != 320 || targets.height != 240 {
		t.Errorf("size = %dx%d, want 320x240", targets.width, targets.height)
	}
	if targets.samples != 4 {
		t.Errorf("samples = %d, want 4", targets.samples)
	}
	if targets.colorTex == nil || targets.colorView == nil {
		t.Error("color target missing")
	}
	if targets.depthTex == nil || targets.depthView == nil {
		t.Error("depth target missing")
	}
	if targets.presentTex == nil || targets.presentView == nil {
		t.Error("presentation target missing")
	}
}

func TestAllocateTargets_PartialFailureRollsBack(t *testing.T) {
	device, _, cleanup := createNoopDevice(t)
	defer cleanup()

	cap := Capability{Color: ColorSrgba8, Depth: DepthStencil, Aa: AaNone}

	// Fail each of the three texture creates in turn; whatever was created
	// before the failure must be destroyed again.
	for failAt := int32(1); failAt <= 3; failAt++ {
		counting := &countingDevice{Device: device, failCreateAfter: failAt}
		_, err := allocateTargets(counting, cap, 100, 100)
		if !errors.Is(err, ErrAllocation) {
			t.Fatalf("failAt=%d: error = %v, want ErrAllocation", failAt, err)
		}
		created := counting.texturesCreated.Load()
		destroyed := counting.texturesDestroyed.Load()
		if created != destroyed {
			t.Errorf("failAt=%d: created %d textures but destroyed %d, want balanced rollback",
				failAt, created, destroyed)
		}
	}
}

func TestRenderTargetsDestroyIdempotent(t *testing.T) {
	device, _, cleanup := createNoopDevice(t)
	defer cleanup()

	counting := &countingDevice{Device: device}
	cap := Capability{Color: ColorSrgba8, Depth: DepthStencil, Aa: AaNone}
	targets, err := allocateTargets(counting, cap, 64, 64)
	if err != nil {
		t.Fatalf("allocateTargets: %v", err)
	}

	targets.destroy(counting)
	destroyed := counting.texturesDestroyed.Load()
	if created := counting.texturesCreated.Load(); created != destroyed {
		t.Errorf("created %d textures but destroyed %d", created, destroyed)
	}

	targets.destroy(counting)
	if n := counting.texturesDestroyed.Load(); n != destroyed {
		t.Errorf("second destroy released %d more textures, want 0", n-destroyed)
	}
}
