package lifecycle

import (
	"github.com/vkngwrapper/presentation/negotiation"
)

// WindowProvider creates the native window the surface presents to.
type WindowProvider interface {
	CreateWindow(title string, width, height int) (Window, error)
}

// Window is a native window handle. Failures after creation are platform errors.
type Window interface {
	// RequiredInstanceExtensions lists the instance extensions the platform
	// needs to create a surface for this window.
	RequiredInstanceExtensions() ([]string, error)
	// CreateSurface makes a presentable surface for this window on instance.
	CreateSurface(instance Instance) (Surface, error)
	Destroy()
}

type InstanceOptions struct {
	ApplicationName string
	EngineName      string
	Extensions      []string
	Layers          []string
	EnableDebug     bool
}

// Driver is the entry point into the graphics API.
type Driver interface {
	CreateInstance(options InstanceOptions) (Instance, error)
}

type Instance interface {
	// PhysicalDevices enumerates devices in driver order. The devices belong to
	// the instance and are never destroyed individually.
	PhysicalDevices() ([]negotiation.PhysicalDevice, error)
	CreateDevice(physicalDevice negotiation.PhysicalDevice, options DeviceOptions) (Device, error)
	Destroy()
}

type Surface interface {
	negotiation.Surface
	Destroy()
}

type DeviceOptions struct {
	QueueFamilies []int
	Extensions    []string
	Layers        []string
}

// Queue is a handle for the render loop. This package never submits to it.
type Queue interface{}

// Image is a swapchain-owned image handle.
type Image interface{}

type Device interface {
	Queue(family int) Queue
	CreateSwapchain(surface Surface, config negotiation.SwapchainConfig) (Swapchain, error)
	CreateImageView(image Image, format negotiation.Format) (ImageView, error)
	Destroy()
}

type Swapchain interface {
	Images() ([]Image, error)
	Destroy()
}

type ImageView interface {
	Destroy()
}

// PipelineBuilder receives the negotiated device, format and extent once the
// image views exist.
type PipelineBuilder interface {
	BuildPipeline(handoff PipelineHandoff) error
}

// PipelineBuilderFunc adapts a function to PipelineBuilder.
type PipelineBuilderFunc func(handoff PipelineHandoff) error

func (f PipelineBuilderFunc) BuildPipeline(handoff PipelineHandoff) error {
	return f(handoff)
}
