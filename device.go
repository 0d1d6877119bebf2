package gfxgtk

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// gpuLink bundles the device and queue a context submits through, plus
// the backing instance when the context opened the device itself. A
// shared device arrives without an instance and is never destroyed here.
type gpuLink struct {
	instance hal.Instance
	device   hal.Device
	queue    hal.Queue
	owned    bool
}

// openDefaultDevice brings up a device on the default backend: create an
// instance, enumerate adapters preferring a discrete then an integrated
// GPU, and open it with default limits. Resources created before a
// failure are released.
func openDefaultDevice() (*gpuLink, error) {
	backend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return nil, fmt.Errorf("%w: vulkan backend not available", ErrContext)
	}
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return nil, fmt.Errorf("%w: create instance: %w", ErrContext, err)
	}
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, fmt.Errorf("%w: no GPU adapters found", ErrContext)
	}

	var selected *hal.ExposedAdapter
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	if selected == nil {
		selected = &adapters[0]
	}

	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("%w: open device: %w", ErrContext, err)
	}

	Logger().Info("gfxgtk: device opened", "adapter", selected.Info.Name)

	return &gpuLink{
		instance: instance,
		device:   openDev.Device,
		queue:    openDev.Queue,
		owned:    true,
	}, nil
}

// close releases the device and instance when they are owned by the link.
func (l *gpuLink) close() {
	if !l.owned {
		return
	}
	if l.device != nil {
		l.device.Destroy()
		l.device = nil
	}
	if l.instance != nil {
		l.instance.Destroy()
		l.instance = nil
	}
}
