package vkng

import (
	"sort"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v2/core1_0"
	"github.com/vkngwrapper/extensions/v2/khr_portability_subset"
	"github.com/vkngwrapper/extensions/v2/khr_swapchain"

	"github.com/vkngwrapper/presentation/lifecycle"
	"github.com/vkngwrapper/presentation/negotiation"
)

// PhysicalDevice is owned by the instance that enumerated it.
type PhysicalDevice struct {
	device core1_0.PhysicalDevice
}

var _ negotiation.PhysicalDevice = (*PhysicalDevice)(nil)

func (p *PhysicalDevice) Properties() (negotiation.DeviceProperties, error) {
	props, err := p.device.Properties()
	if err != nil {
		return negotiation.DeviceProperties{}, err
	}
	return negotiation.DeviceProperties{
		Type:     negotiation.DeviceType(props.DriverType),
		Name:     props.DriverName,
		VendorID: props.VendorID,
		DeviceID: props.DeviceID,
	}, nil
}

func (p *PhysicalDevice) ExtensionNames() ([]string, error) {
	extensions, _, err := p.device.EnumerateDeviceExtensionProperties()
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(extensions))
	for name := range extensions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (p *PhysicalDevice) QueueFamilies() ([]negotiation.QueueFamilyProperties, error) {
	return queueFamiliesFromVk(p.device.QueueFamilyProperties()), nil
}

func queueFamiliesFromVk(families []*core1_0.QueueFamilyProperties) []negotiation.QueueFamilyProperties {
	result := make([]negotiation.QueueFamilyProperties, 0, len(families))
	for _, family := range families {
		result = append(result, negotiation.QueueFamilyProperties{
			QueueFlags: negotiation.QueueFlags(family.QueueFlags),
			QueueCount: family.QueueCount,
		})
	}
	return result
}

func physicalHandle(device negotiation.PhysicalDevice) (core1_0.PhysicalDevice, error) {
	pd, ok := device.(*PhysicalDevice)
	if !ok {
		return nil, errors.Newf("unsupported physical device %T", device)
	}
	return pd.device, nil
}

func (i *Instance) CreateDevice(physicalDevice negotiation.PhysicalDevice, options lifecycle.DeviceOptions) (lifecycle.Device, error) {
	pd, err := physicalHandle(physicalDevice)
	if err != nil {
		return nil, err
	}

	queuePriority := float32(1.0)
	var queueInfos []core1_0.DeviceQueueCreateInfo
	for _, family := range options.QueueFamilies {
		queueInfos = append(queueInfos, core1_0.DeviceQueueCreateInfo{
			QueueFamilyIndex: family,
			QueuePriorities:  []float32{queuePriority},
		})
	}

	extensionNames := append([]string(nil), options.Extensions...)

	// Required on portability implementations such as MoltenVK.
	available, _, err := pd.EnumerateDeviceExtensionProperties()
	if err != nil {
		return nil, errors.Wrap(err, "enumerate device extensions")
	}
	if _, ok := available[khr_portability_subset.ExtensionName]; ok {
		extensionNames = append(extensionNames, khr_portability_subset.ExtensionName)
	}

	device, _, err := pd.CreateDevice(nil, core1_0.DeviceCreateInfo{
		QueueCreateInfos:      queueInfos,
		EnabledFeatures:       &core1_0.PhysicalDeviceFeatures{},
		EnabledExtensionNames: extensionNames,
		EnabledLayerNames:     options.Layers,
	})
	if err != nil {
		return nil, err
	}

	return &Device{
		device:    device,
		swapchain: khr_swapchain.CreateExtensionFromDevice(device),
	}, nil
}

type Device struct {
	device    core1_0.Device
	swapchain khr_swapchain.Extension
}

var _ lifecycle.Device = (*Device)(nil)

// Handle exposes the logical device to pipeline builders.
func (d *Device) Handle() core1_0.Device {
	return d.device
}

func (d *Device) Queue(family int) lifecycle.Queue {
	return d.device.GetQueue(family, 0)
}

func (d *Device) Destroy() {
	d.device.Destroy(nil)
}
