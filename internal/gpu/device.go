//go:build !nogpu

package gpu

import (
	"errors"
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/quad"
	"github.com/gogpu/wgpu/hal"
	_ "github.com/gogpu/wgpu/hal/vulkan" // register the Vulkan backend
)

// ErrNilProvider is returned by DeviceFromProvider for a nil provider.
var ErrNilProvider = errors.New("gpu: device provider is nil")

// InstanceFactory creates the HAL instance adapters are enumerated from.
type InstanceFactory func() (hal.Instance, error)

// VulkanInstance creates an instance on the registered Vulkan backend.
// A missing backend or a failed instance creation is reported as
// quad.ErrGPUUnsupported.
func VulkanInstance() (hal.Instance, error) {
	backend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return nil, fmt.Errorf("%w: vulkan backend not available", quad.ErrGPUUnsupported)
	}
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return nil, fmt.Errorf("%w: create instance: %w", quad.ErrGPUUnsupported, err)
	}
	return instance, nil
}

// Device is an opened GPU device and its queue.
//
// A Device either owns its instance and device (OpenDevice) or borrows
// them from a host such as a gogpu window (DeviceFromProvider). Borrowed
// devices are left alone by Close.
type Device struct {
	instance hal.Instance
	device   hal.Device
	queue    hal.Queue

	adapterName string
	format      gputypes.TextureFormat
	external    bool
}

// OpenDevice creates an instance with factory, selects an adapter by pref
// and opens a device on it. A nil factory means VulkanInstance.
//
// The two early failures, no GPU API and no adapter, are logged at error
// level and returned as quad.ErrGPUUnsupported and quad.ErrNoAdapter.
func OpenDevice(factory InstanceFactory, pref quad.PowerPreference) (*Device, error) {
	if factory == nil {
		factory = VulkanInstance
	}

	instance, err := factory()
	if err != nil {
		if !errors.Is(err, quad.ErrGPUUnsupported) {
			err = fmt.Errorf("%w: %w", quad.ErrGPUUnsupported, err)
		}
		slogger().Error("gpu: WebGPU is not supported", "error", err)
		return nil, err
	}

	return openFromAdapters(instance, instance.EnumerateAdapters(nil), pref)
}

// openFromAdapters selects an adapter and opens it. The instance is
// destroyed on failure.
func openFromAdapters(instance hal.Instance, adapters []hal.ExposedAdapter, pref quad.PowerPreference) (*Device, error) {
	if len(adapters) == 0 {
		instance.Destroy()
		slogger().Error("gpu: no appropriate GPU adapter found")
		return nil, quad.ErrNoAdapter
	}

	types := make([]gputypes.DeviceType, len(adapters))
	for i := range adapters {
		types[i] = adapters[i].Info.DeviceType
	}
	selected := &adapters[pickAdapter(types, pref)]

	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("open device: %w", err)
	}

	slogger().Info("gpu: adapter selected",
		"adapter", selected.Info.Name,
		"power", pref.String())

	return &Device{
		instance:    instance,
		device:      openDev.Device,
		queue:       openDev.Queue,
		adapterName: selected.Info.Name,
		format:      quad.PreferredFormat,
	}, nil
}

// pickAdapter returns the index of the preferred adapter type.
// High performance ranks discrete before integrated; low power the
// reverse. Anything else falls back to the first adapter.
func pickAdapter(types []gputypes.DeviceType, pref quad.PowerPreference) int {
	order := []gputypes.DeviceType{gputypes.DeviceTypeDiscreteGPU, gputypes.DeviceTypeIntegratedGPU}
	if pref == quad.PowerLowPower {
		order[0], order[1] = order[1], order[0]
	}
	for _, want := range order {
		for i, t := range types {
			if t == want {
				return i
			}
		}
	}
	return 0
}

// DeviceFromProvider borrows the device and queue of a host such as a
// gogpu window. HAL objects are taken from the provider when it exposes
// HalDevice() any and HalQueue() any, otherwise from its Device(), which
// for gogpu is a *wgpu.Device. The provider's SurfaceFormat becomes the
// preferred target format.
func DeviceFromProvider(provider gpucontext.DeviceProvider) (*Device, error) {
	if provider == nil {
		return nil, ErrNilProvider
	}

	device, queue, err := providerHAL(provider)
	if err != nil {
		return nil, err
	}

	format := provider.SurfaceFormat()
	if format == gputypes.TextureFormatUndefined {
		format = quad.PreferredFormat
	}

	info := provider.AdapterInfo()
	slogger().Debug("gpu: using shared device", "adapter", info.Name, "format", format)
	return &Device{
		device:      device,
		queue:       queue,
		adapterName: info.Name,
		format:      format,
		external:    true,
	}, nil
}

// providerHAL extracts the HAL device and queue from provider.
func providerHAL(provider gpucontext.DeviceProvider) (hal.Device, hal.Queue, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	type halDevice interface {
		HalDevice() hal.Device
		HalQueue() hal.Queue
	}

	var devAny, queueAny any
	switch p := provider.(type) {
	case halProvider:
		devAny, queueAny = p.HalDevice(), p.HalQueue()
	default:
		wd, ok := provider.Device().(halDevice)
		if !ok {
			return nil, nil, fmt.Errorf("gpu: provider does not expose HAL types")
		}
		devAny, queueAny = wd.HalDevice(), wd.HalQueue()
	}

	device, ok := devAny.(hal.Device)
	if !ok || device == nil {
		return nil, nil, fmt.Errorf("gpu: provider HAL device is not hal.Device")
	}
	queue, ok := queueAny.(hal.Queue)
	if !ok || queue == nil {
		return nil, nil, fmt.Errorf("gpu: provider HAL queue is not hal.Queue")
	}
	return device, queue, nil
}

// HAL returns the device and queue.
func (d *Device) HAL() (hal.Device, hal.Queue) {
	return d.device, d.queue
}

// AdapterName returns the name of the selected or host adapter.
func (d *Device) AdapterName() string { return d.adapterName }

// PreferredFormat returns the format targets should be configured with.
func (d *Device) PreferredFormat() gputypes.TextureFormat { return d.format }

// External reports whether the device is borrowed from a host.
func (d *Device) External() bool { return d.external }

// Close releases the device and instance if they are owned.
// Safe to call multiple times.
func (d *Device) Close() {
	if !d.external && d.device != nil {
		d.device.Destroy()
	}
	if d.instance != nil {
		d.instance.Destroy()
	}
	d.device = nil
	d.queue = nil
	d.instance = nil
}
