package lifecycle_test

import (
	"fmt"
	"io"

	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"

	"github.com/vkngwrapper/presentation/lifecycle"
	"github.com/vkngwrapper/presentation/negotiation"
)

// recorder collects every create and destroy call in order and fails the call
// named by failAt.
type recorder struct {
	events []string
	failAt string

	devices  []negotiation.PhysicalDevice
	families []negotiation.QueueFamilyProperties
	present  map[int]bool
	support  negotiation.SwapchainSupportDetails
	images   int

	instanceOptions lifecycle.InstanceOptions
	deviceOptions   lifecycle.DeviceOptions
	swapchainConfig negotiation.SwapchainConfig
	queueRequests   []int
}

var errInjected = errors.New("VK_ERROR_INITIALIZATION_FAILED")

func newRecorder() *recorder {
	r := &recorder{
		families: []negotiation.QueueFamilyProperties{
			{QueueFlags: negotiation.QueueGraphics | negotiation.QueueCompute | negotiation.QueueTransfer, QueueCount: 16},
			{QueueFlags: negotiation.QueueTransfer, QueueCount: 2},
		},
		present: map[int]bool{0: true},
		support: negotiation.SwapchainSupportDetails{
			Capabilities: negotiation.SurfaceCapabilities{
				MinImageCount:    2,
				CurrentExtent:    negotiation.Extent2D{Width: negotiation.UndefinedExtent, Height: negotiation.UndefinedExtent},
				MinImageExtent:   negotiation.Extent2D{Width: 1, Height: 1},
				MaxImageExtent:   negotiation.Extent2D{Width: 4096, Height: 4096},
				CurrentTransform: negotiation.SurfaceTransformIdentity,
			},
			Formats:      []negotiation.SurfaceFormat{{Format: negotiation.FormatB8G8R8A8SRGB, ColorSpace: negotiation.ColorSpaceSRGBNonlinear}},
			PresentModes: []negotiation.PresentMode{negotiation.PresentModeFIFO, negotiation.PresentModeMailbox},
		},
		images: 3,
	}
	r.devices = []negotiation.PhysicalDevice{&physicalDevice{r: r, name: "gpu0"}}
	return r
}

func (r *recorder) create(name string) error {
	if name == r.failAt {
		r.events = append(r.events, "fail "+name)
		return errInjected
	}
	r.events = append(r.events, "create "+name)
	return nil
}

func (r *recorder) destroy(name string) {
	r.events = append(r.events, "destroy "+name)
}

func (r *recorder) CreateWindow(title string, width, height int) (lifecycle.Window, error) {
	if err := r.create("window"); err != nil {
		return nil, err
	}
	return &window{r: r}, nil
}

func (r *recorder) CreateInstance(options lifecycle.InstanceOptions) (lifecycle.Instance, error) {
	r.instanceOptions = options
	if err := r.create("instance"); err != nil {
		return nil, err
	}
	return &instance{r: r}, nil
}

type window struct{ r *recorder }

func (w *window) RequiredInstanceExtensions() ([]string, error) {
	return []string{"VK_KHR_surface", "VK_KHR_xlib_surface"}, nil
}

func (w *window) CreateSurface(lifecycle.Instance) (lifecycle.Surface, error) {
	if err := w.r.create("surface"); err != nil {
		return nil, err
	}
	return &surface{r: w.r}, nil
}

func (w *window) Destroy() { w.r.destroy("window") }

type instance struct{ r *recorder }

func (i *instance) PhysicalDevices() ([]negotiation.PhysicalDevice, error) {
	if i.r.failAt == "enumerate" {
		return nil, errInjected
	}
	return i.r.devices, nil
}

func (i *instance) CreateDevice(pd negotiation.PhysicalDevice, options lifecycle.DeviceOptions) (lifecycle.Device, error) {
	i.r.deviceOptions = options
	if err := i.r.create("device"); err != nil {
		return nil, err
	}
	return &device{r: i.r}, nil
}

func (i *instance) Destroy() { i.r.destroy("instance") }

type physicalDevice struct {
	r    *recorder
	name string
	typ  negotiation.DeviceType
	exts []string
}

func (p *physicalDevice) Properties() (negotiation.DeviceProperties, error) {
	typ := p.typ
	if typ == negotiation.DeviceTypeOther {
		typ = negotiation.DeviceTypeDiscreteGPU
	}
	return negotiation.DeviceProperties{Type: typ, Name: p.name}, nil
}

func (p *physicalDevice) ExtensionNames() ([]string, error) {
	if p.exts != nil {
		return p.exts, nil
	}
	return []string{negotiation.SwapchainExtensionName}, nil
}

func (p *physicalDevice) QueueFamilies() ([]negotiation.QueueFamilyProperties, error) {
	return p.r.families, nil
}

type surface struct{ r *recorder }

func (s *surface) Capabilities(negotiation.PhysicalDevice) (negotiation.SurfaceCapabilities, error) {
	return s.r.support.Capabilities, nil
}

func (s *surface) Formats(negotiation.PhysicalDevice) ([]negotiation.SurfaceFormat, error) {
	return s.r.support.Formats, nil
}

func (s *surface) PresentModes(negotiation.PhysicalDevice) ([]negotiation.PresentMode, error) {
	return s.r.support.PresentModes, nil
}

func (s *surface) SupportsPresent(_ negotiation.PhysicalDevice, family int) (bool, error) {
	return s.r.present[family], nil
}

func (s *surface) Destroy() { s.r.destroy("surface") }

type queue struct{ family int }

type device struct{ r *recorder }

func (d *device) Queue(family int) lifecycle.Queue {
	d.r.queueRequests = append(d.r.queueRequests, family)
	return queue{family: family}
}

func (d *device) CreateSwapchain(_ lifecycle.Surface, config negotiation.SwapchainConfig) (lifecycle.Swapchain, error) {
	d.r.swapchainConfig = config
	if err := d.r.create("swapchain"); err != nil {
		return nil, err
	}
	return &swapchain{r: d.r}, nil
}

func (d *device) CreateImageView(image lifecycle.Image, _ negotiation.Format) (lifecycle.ImageView, error) {
	name := fmt.Sprintf("view%d", image.(int))
	if err := d.r.create(name); err != nil {
		return nil, err
	}
	return &imageView{r: d.r, name: name}, nil
}

func (d *device) Destroy() { d.r.destroy("device") }

type swapchain struct{ r *recorder }

func (s *swapchain) Images() ([]lifecycle.Image, error) {
	if s.r.failAt == "images" {
		return nil, errInjected
	}
	images := make([]lifecycle.Image, s.r.images)
	for i := range images {
		images[i] = i
	}
	return images, nil
}

func (s *swapchain) Destroy() { s.r.destroy("swapchain") }

type imageView struct {
	r    *recorder
	name string
}

func (v *imageView) Destroy() { v.r.destroy(v.name) }

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
