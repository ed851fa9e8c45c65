package negotiation

import (
	"github.com/sirupsen/logrus"
)

// Prober snapshots physical devices. A failed driver query is treated as
// "nothing supported" and never surfaces as an error.
type Prober struct {
	Log logrus.FieldLogger
}

func (p Prober) logger() logrus.FieldLogger {
	if p.Log == nil {
		return logrus.StandardLogger()
	}
	return p.Log
}

// Probe queries device for properties, extensions and queue families, and
// surface for what it offers on device.
func (p Prober) Probe(device PhysicalDevice, surface Surface) DeviceCandidate {
	log := p.logger()
	candidate := DeviceCandidate{
		Device:     device,
		Extensions: map[string]struct{}{},
	}

	props, err := device.Properties()
	if err != nil {
		log.WithError(err).Debug("physical device properties unavailable")
		props = DeviceProperties{}
	}
	candidate.Properties = props
	log = log.WithField("device", props.Name)

	extensions, err := device.ExtensionNames()
	if err != nil {
		log.WithError(err).Debug("device extensions unavailable")
	}
	for _, name := range extensions {
		candidate.Extensions[name] = struct{}{}
	}

	families, err := device.QueueFamilies()
	if err != nil {
		log.WithError(err).Debug("queue family properties unavailable")
		families = nil
	}
	candidate.QueueFamilies = families

	candidate.Support = Prober{Log: log}.QuerySwapchainSupport(device, surface)
	return candidate
}

// QuerySwapchainSupport collects the surface capabilities, formats and present
// modes offered on device.
func (p Prober) QuerySwapchainSupport(device PhysicalDevice, surface Surface) SwapchainSupportDetails {
	log := p.logger()
	var details SwapchainSupportDetails

	capabilities, err := surface.Capabilities(device)
	if err != nil {
		log.WithError(err).Debug("surface capabilities unavailable")
		capabilities = SurfaceCapabilities{}
	}
	details.Capabilities = capabilities

	formats, err := surface.Formats(device)
	if err != nil {
		log.WithError(err).Debug("surface formats unavailable")
		formats = nil
	}
	details.Formats = formats

	modes, err := surface.PresentModes(device)
	if err != nil {
		log.WithError(err).Debug("surface present modes unavailable")
		modes = nil
	}
	details.PresentModes = modes

	return details
}
