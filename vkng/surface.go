package vkng

import (
	"github.com/vkngwrapper/core/v2/core1_0"
	"github.com/vkngwrapper/extensions/v2/khr_surface"

	"github.com/vkngwrapper/presentation/lifecycle"
	"github.com/vkngwrapper/presentation/negotiation"
)

type Surface struct {
	surface khr_surface.Surface
}

var _ lifecycle.Surface = (*Surface)(nil)

func (s *Surface) Capabilities(device negotiation.PhysicalDevice) (negotiation.SurfaceCapabilities, error) {
	pd, err := physicalHandle(device)
	if err != nil {
		return negotiation.SurfaceCapabilities{}, err
	}

	caps, _, err := s.surface.PhysicalDeviceSurfaceCapabilities(pd)
	if err != nil {
		return negotiation.SurfaceCapabilities{}, err
	}
	return capabilitiesFromVk(caps), nil
}

func (s *Surface) Formats(device negotiation.PhysicalDevice) ([]negotiation.SurfaceFormat, error) {
	pd, err := physicalHandle(device)
	if err != nil {
		return nil, err
	}

	formats, _, err := s.surface.PhysicalDeviceSurfaceFormats(pd)
	if err != nil {
		return nil, err
	}

	result := make([]negotiation.SurfaceFormat, 0, len(formats))
	for _, format := range formats {
		result = append(result, negotiation.SurfaceFormat{
			Format:     negotiation.Format(format.Format),
			ColorSpace: negotiation.ColorSpace(format.ColorSpace),
		})
	}
	return result, nil
}

func (s *Surface) PresentModes(device negotiation.PhysicalDevice) ([]negotiation.PresentMode, error) {
	pd, err := physicalHandle(device)
	if err != nil {
		return nil, err
	}

	modes, _, err := s.surface.PhysicalDeviceSurfacePresentModes(pd)
	if err != nil {
		return nil, err
	}

	result := make([]negotiation.PresentMode, 0, len(modes))
	for _, mode := range modes {
		result = append(result, negotiation.PresentMode(mode))
	}
	return result, nil
}

func (s *Surface) SupportsPresent(device negotiation.PhysicalDevice, queueFamily int) (bool, error) {
	pd, err := physicalHandle(device)
	if err != nil {
		return false, err
	}

	supported, _, err := s.surface.PhysicalDeviceSurfaceSupport(pd, queueFamily)
	return supported, err
}

func (s *Surface) Destroy() {
	s.surface.Destroy(nil)
}

func capabilitiesFromVk(caps *khr_surface.SurfaceCapabilities) negotiation.SurfaceCapabilities {
	return negotiation.SurfaceCapabilities{
		MinImageCount:           uint32(caps.MinImageCount),
		MaxImageCount:           uint32(caps.MaxImageCount),
		CurrentExtent:           extentFromVk(caps.CurrentExtent),
		MinImageExtent:          extentFromVk(caps.MinImageExtent),
		MaxImageExtent:          extentFromVk(caps.MaxImageExtent),
		SupportedTransforms:     negotiation.SurfaceTransformFlags(caps.SupportedTransforms),
		CurrentTransform:        negotiation.SurfaceTransformFlags(caps.CurrentTransform),
		SupportedCompositeAlpha: negotiation.CompositeAlphaFlags(caps.SupportedCompositeAlpha),
		SupportedUsageFlags:     negotiation.ImageUsageFlags(caps.SupportedUsageFlags),
	}
}

// extentFromVk maps the driver's -1 "surface size follows the swapchain" value
// back to the unsigned sentinel.
func extentFromVk(extent core1_0.Extent2D) negotiation.Extent2D {
	return negotiation.Extent2D{
		Width:  dimensionFromVk(extent.Width),
		Height: dimensionFromVk(extent.Height),
	}
}

func dimensionFromVk(v int) uint32 {
	if v < 0 || uint64(v) >= negotiation.UndefinedExtent {
		return negotiation.UndefinedExtent
	}
	return uint32(v)
}

func extentToVk(extent negotiation.Extent2D) core1_0.Extent2D {
	return core1_0.Extent2D{Width: int(extent.Width), Height: int(extent.Height)}
}
