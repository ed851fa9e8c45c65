package negotiation

import (
	"fmt"
	"math"
	"strings"
)

// Format mirrors VkFormat. Only the values the negotiation cares about are named.
type Format int32

const (
	FormatUndefined     Format = 0
	FormatR8G8B8A8UNorm Format = 37
	FormatR8G8B8A8SRGB  Format = 43
	FormatB8G8R8A8UNorm Format = 44
	FormatB8G8R8A8SRGB  Format = 50
)

var formatNames = map[Format]string{
	FormatUndefined:     "Undefined",
	FormatB8G8R8A8UNorm: "B8G8R8A8UNorm",
	FormatB8G8R8A8SRGB:  "B8G8R8A8SRGB",
	FormatR8G8B8A8UNorm: "R8G8B8A8UNorm",
	FormatR8G8B8A8SRGB:  "R8G8B8A8SRGB",
}

func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return fmt.Sprintf("Format(%d)", int32(f))
}

// ColorSpace mirrors VkColorSpaceKHR.
type ColorSpace int32

const (
	ColorSpaceSRGBNonlinear      ColorSpace = 0
	ColorSpaceDisplayP3Nonlinear ColorSpace = 1000104001
	ColorSpaceExtendedSRGBLinear ColorSpace = 1000104002
)

func (c ColorSpace) String() string {
	switch c {
	case ColorSpaceSRGBNonlinear:
		return "SRGBNonlinear"
	case ColorSpaceExtendedSRGBLinear:
		return "ExtendedSRGBLinear"
	case ColorSpaceDisplayP3Nonlinear:
		return "DisplayP3Nonlinear"
	}
	return fmt.Sprintf("ColorSpace(%d)", int32(c))
}

// PresentMode mirrors VkPresentModeKHR.
type PresentMode int32

const (
	PresentModeImmediate   PresentMode = 0
	PresentModeMailbox     PresentMode = 1
	PresentModeFIFO        PresentMode = 2
	PresentModeFIFORelaxed PresentMode = 3
)

func (m PresentMode) String() string {
	switch m {
	case PresentModeImmediate:
		return "Immediate"
	case PresentModeMailbox:
		return "Mailbox"
	case PresentModeFIFO:
		return "FIFO"
	case PresentModeFIFORelaxed:
		return "FIFORelaxed"
	}
	return fmt.Sprintf("PresentMode(%d)", int32(m))
}

// DeviceType mirrors VkPhysicalDeviceType.
type DeviceType int32

const (
	DeviceTypeOther DeviceType = iota
	DeviceTypeIntegratedGPU
	DeviceTypeDiscreteGPU
	DeviceTypeVirtualGPU
	DeviceTypeCPU
)

func (t DeviceType) String() string {
	switch t {
	case DeviceTypeOther:
		return "Other"
	case DeviceTypeIntegratedGPU:
		return "IntegratedGPU"
	case DeviceTypeDiscreteGPU:
		return "DiscreteGPU"
	case DeviceTypeVirtualGPU:
		return "VirtualGPU"
	case DeviceTypeCPU:
		return "CPU"
	}
	return fmt.Sprintf("DeviceType(%d)", int32(t))
}

// QueueFlags mirrors VkQueueFlags.
type QueueFlags uint32

const (
	QueueGraphics QueueFlags = 1 << iota
	QueueCompute
	QueueTransfer
	QueueSparseBinding
)

func (f QueueFlags) String() string {
	if f == 0 {
		return "None"
	}
	var parts []string
	if f&QueueGraphics != 0 {
		parts = append(parts, "Graphics")
	}
	if f&QueueCompute != 0 {
		parts = append(parts, "Compute")
	}
	if f&QueueTransfer != 0 {
		parts = append(parts, "Transfer")
	}
	if f&QueueSparseBinding != 0 {
		parts = append(parts, "SparseBinding")
	}
	return strings.Join(parts, "|")
}

// SurfaceTransformFlags mirrors VkSurfaceTransformFlagsKHR.
type SurfaceTransformFlags uint32

const (
	SurfaceTransformIdentity SurfaceTransformFlags = 1 << iota
	SurfaceTransformRotate90
	SurfaceTransformRotate180
	SurfaceTransformRotate270
)

// CompositeAlphaFlags mirrors VkCompositeAlphaFlagsKHR.
type CompositeAlphaFlags uint32

const (
	CompositeAlphaOpaque CompositeAlphaFlags = 1 << iota
	CompositeAlphaPreMultiplied
	CompositeAlphaPostMultiplied
	CompositeAlphaInherit
)

// ImageUsageFlags mirrors VkImageUsageFlags.
type ImageUsageFlags uint32

const ImageUsageColorAttachment ImageUsageFlags = 0x10

// SharingMode mirrors VkSharingMode.
type SharingMode int32

const (
	SharingModeExclusive SharingMode = iota
	SharingModeConcurrent
)

func (m SharingMode) String() string {
	if m == SharingModeConcurrent {
		return "Concurrent"
	}
	return "Exclusive"
}

// UndefinedExtent is the value a surface reports as its current extent when the
// swapchain extent decides the surface size.
const UndefinedExtent = math.MaxUint32

type Extent2D struct {
	Width  uint32
	Height uint32
}

func (e Extent2D) String() string {
	return fmt.Sprintf("%dx%d", e.Width, e.Height)
}

// IsUndefined reports whether both axes carry the undefined sentinel.
func (e Extent2D) IsUndefined() bool {
	return e.Width == UndefinedExtent && e.Height == UndefinedExtent
}

type SurfaceFormat struct {
	Format     Format
	ColorSpace ColorSpace
}

type SurfaceCapabilities struct {
	MinImageCount uint32
	// MaxImageCount of zero means there is no upper bound.
	MaxImageCount uint32

	CurrentExtent  Extent2D
	MinImageExtent Extent2D
	MaxImageExtent Extent2D

	SupportedTransforms     SurfaceTransformFlags
	CurrentTransform        SurfaceTransformFlags
	SupportedCompositeAlpha CompositeAlphaFlags
	SupportedUsageFlags     ImageUsageFlags
}

// SwapchainSupportDetails is what one surface offers on one physical device.
type SwapchainSupportDetails struct {
	Capabilities SurfaceCapabilities
	Formats      []SurfaceFormat
	PresentModes []PresentMode
}

// Adequate reports whether at least one format and one present mode are offered.
func (d SwapchainSupportDetails) Adequate() bool {
	return len(d.Formats) > 0 && len(d.PresentModes) > 0
}

type DeviceProperties struct {
	Type     DeviceType
	Name     string
	VendorID uint32
	DeviceID uint32
}

type QueueFamilyProperties struct {
	QueueFlags QueueFlags
	QueueCount int
}

// PhysicalDevice is a driver-owned view of one GPU. Nothing in this module
// destroys it.
type PhysicalDevice interface {
	Properties() (DeviceProperties, error)
	ExtensionNames() ([]string, error)
	QueueFamilies() ([]QueueFamilyProperties, error)
}

// Surface answers presentation queries for a given physical device.
type Surface interface {
	Capabilities(device PhysicalDevice) (SurfaceCapabilities, error)
	Formats(device PhysicalDevice) ([]SurfaceFormat, error)
	PresentModes(device PhysicalDevice) ([]PresentMode, error)
	SupportsPresent(device PhysicalDevice, queueFamily int) (bool, error)
}

// DeviceCandidate is the snapshot of a physical device taken by Probe.
type DeviceCandidate struct {
	Device        PhysicalDevice
	Properties    DeviceProperties
	Extensions    map[string]struct{}
	QueueFamilies []QueueFamilyProperties
	Support       SwapchainSupportDetails
}

// HasExtension reports whether the device reported the named extension.
func (c DeviceCandidate) HasExtension(name string) bool {
	_, ok := c.Extensions[name]
	return ok
}

type SwapchainConfig struct {
	Format      Format
	ColorSpace  ColorSpace
	PresentMode PresentMode
	Extent      Extent2D
	ImageCount  uint32

	ArrayLayers    uint32
	ImageUsage     ImageUsageFlags
	PreTransform   SurfaceTransformFlags
	CompositeAlpha CompositeAlphaFlags
	Clipped        bool

	SharingMode SharingMode
	// QueueFamilyIndices is only set when SharingMode is SharingModeConcurrent.
	QueueFamilyIndices []int
}
