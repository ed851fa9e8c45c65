package negotiation_test

import (
	"io"

	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"

	"github.com/vkngwrapper/presentation/negotiation"
)

var errQuery = errors.New("VK_ERROR_DEVICE_LOST")

type fakeDevice struct {
	props      negotiation.DeviceProperties
	extensions []string
	families   []negotiation.QueueFamilyProperties

	propsErr, extErr, familyErr error
}

func (d *fakeDevice) Properties() (negotiation.DeviceProperties, error) {
	return d.props, d.propsErr
}

func (d *fakeDevice) ExtensionNames() ([]string, error) {
	if d.extErr != nil {
		return nil, d.extErr
	}
	return d.extensions, nil
}

func (d *fakeDevice) QueueFamilies() ([]negotiation.QueueFamilyProperties, error) {
	if d.familyErr != nil {
		return nil, d.familyErr
	}
	return d.families, nil
}

type surfaceOffer struct {
	capabilities negotiation.SurfaceCapabilities
	formats      []negotiation.SurfaceFormat
	modes        []negotiation.PresentMode
	present      map[int]bool
	presentErr   map[int]error
	queryErr     error
}

type fakeSurface struct {
	offers map[negotiation.PhysicalDevice]surfaceOffer
	// presentQueries records every family index SupportsPresent was asked about.
	presentQueries []int
}

func newFakeSurface() *fakeSurface {
	return &fakeSurface{offers: map[negotiation.PhysicalDevice]surfaceOffer{}}
}

func (s *fakeSurface) Capabilities(device negotiation.PhysicalDevice) (negotiation.SurfaceCapabilities, error) {
	o := s.offers[device]
	return o.capabilities, o.queryErr
}

func (s *fakeSurface) Formats(device negotiation.PhysicalDevice) ([]negotiation.SurfaceFormat, error) {
	o := s.offers[device]
	if o.queryErr != nil {
		return nil, o.queryErr
	}
	return o.formats, nil
}

func (s *fakeSurface) PresentModes(device negotiation.PhysicalDevice) ([]negotiation.PresentMode, error) {
	o := s.offers[device]
	if o.queryErr != nil {
		return nil, o.queryErr
	}
	return o.modes, nil
}

func (s *fakeSurface) SupportsPresent(device negotiation.PhysicalDevice, family int) (bool, error) {
	s.presentQueries = append(s.presentQueries, family)
	o := s.offers[device]
	if err := o.presentErr[family]; err != nil {
		return false, err
	}
	return o.present[family], nil
}

func discreteGPU(name string) *fakeDevice {
	return &fakeDevice{
		props:      negotiation.DeviceProperties{Type: negotiation.DeviceTypeDiscreteGPU, Name: name},
		extensions: []string{negotiation.SwapchainExtensionName},
		families: []negotiation.QueueFamilyProperties{
			{QueueFlags: negotiation.QueueGraphics | negotiation.QueueCompute | negotiation.QueueTransfer, QueueCount: 16},
		},
	}
}

func adequateOffer() surfaceOffer {
	return surfaceOffer{
		capabilities: negotiation.SurfaceCapabilities{
			MinImageCount:  2,
			CurrentExtent:  negotiation.Extent2D{Width: 800, Height: 600},
			MinImageExtent: negotiation.Extent2D{Width: 1, Height: 1},
			MaxImageExtent: negotiation.Extent2D{Width: 4096, Height: 4096},
		},
		formats: []negotiation.SurfaceFormat{{Format: negotiation.FormatB8G8R8A8SRGB, ColorSpace: negotiation.ColorSpaceSRGBNonlinear}},
		modes:   []negotiation.PresentMode{negotiation.PresentModeFIFO},
		present: map[int]bool{0: true},
	}
}

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func intPtr(i int) *int {
	return &i
}
