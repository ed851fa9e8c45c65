package vkng

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v2/core1_0"
	"github.com/vkngwrapper/extensions/v2/khr_surface"
	"github.com/vkngwrapper/extensions/v2/khr_swapchain"

	"github.com/vkngwrapper/presentation/lifecycle"
	"github.com/vkngwrapper/presentation/negotiation"
)

func swapchainCreateInfo(surface khr_surface.Surface, config negotiation.SwapchainConfig) khr_swapchain.SwapchainCreateInfo {
	return khr_swapchain.SwapchainCreateInfo{
		Surface: surface,

		MinImageCount:    int(config.ImageCount),
		ImageFormat:      core1_0.Format(config.Format),
		ImageColorSpace:  khr_surface.ColorSpace(config.ColorSpace),
		ImageExtent:      extentToVk(config.Extent),
		ImageArrayLayers: int(config.ArrayLayers),
		ImageUsage:       core1_0.ImageUsageFlags(config.ImageUsage),

		ImageSharingMode:   core1_0.SharingMode(config.SharingMode),
		QueueFamilyIndices: config.QueueFamilyIndices,

		PreTransform:   khr_surface.SurfaceTransformFlags(config.PreTransform),
		CompositeAlpha: khr_surface.CompositeAlphaFlags(config.CompositeAlpha),
		PresentMode:    khr_surface.PresentMode(config.PresentMode),
		Clipped:        config.Clipped,
	}
}

func (d *Device) CreateSwapchain(surface lifecycle.Surface, config negotiation.SwapchainConfig) (lifecycle.Swapchain, error) {
	s, ok := surface.(*Surface)
	if !ok {
		return nil, errors.Newf("create swapchain: unsupported surface %T", surface)
	}

	swapchain, _, err := d.swapchain.CreateSwapchain(d.device, nil, swapchainCreateInfo(s.surface, config))
	if err != nil {
		return nil, err
	}
	return &Swapchain{swapchain: swapchain}, nil
}

type Swapchain struct {
	swapchain khr_swapchain.Swapchain
}

func (s *Swapchain) Images() ([]lifecycle.Image, error) {
	images, _, err := s.swapchain.SwapchainImages()
	if err != nil {
		return nil, err
	}

	result := make([]lifecycle.Image, 0, len(images))
	for _, image := range images {
		result = append(result, image)
	}
	return result, nil
}

func (s *Swapchain) Destroy() {
	s.swapchain.Destroy(nil)
}

func imageViewCreateInfo(image core1_0.Image, format negotiation.Format) core1_0.ImageViewCreateInfo {
	return core1_0.ImageViewCreateInfo{
		ViewType: core1_0.ImageViewType2D,
		Image:    image,
		Format:   core1_0.Format(format),
		Components: core1_0.ComponentMapping{
			R: core1_0.ComponentSwizzleIdentity,
			G: core1_0.ComponentSwizzleIdentity,
			B: core1_0.ComponentSwizzleIdentity,
			A: core1_0.ComponentSwizzleIdentity,
		},
		SubresourceRange: core1_0.ImageSubresourceRange{
			AspectMask:     core1_0.ImageAspectColor,
			BaseMipLevel:   0,
			LevelCount:     1,
			BaseArrayLayer: 0,
			LayerCount:     1,
		},
	}
}

func (d *Device) CreateImageView(image lifecycle.Image, format negotiation.Format) (lifecycle.ImageView, error) {
	img, ok := image.(core1_0.Image)
	if !ok {
		return nil, errors.Newf("create image view: unsupported image %T", image)
	}

	view, _, err := d.device.CreateImageView(nil, imageViewCreateInfo(img, format))
	if err != nil {
		return nil, err
	}
	return &ImageView{view: view}, nil
}

type ImageView struct {
	view core1_0.ImageView
}

func (v *ImageView) Destroy() {
	v.view.Destroy(nil)
}
