package negotiation

// ChooseImageCount asks for one image more than the minimum so acquiring an
// image does not wait on the driver, capped by MaxImageCount when it is set.
func ChooseImageCount(capabilities SurfaceCapabilities) uint32 {
	imageCount := capabilities.MinImageCount + 1
	if capabilities.MaxImageCount > 0 && capabilities.MaxImageCount < imageCount {
		imageCount = capabilities.MaxImageCount
	}
	return imageCount
}

// ChooseSharing shares swapchain images concurrently between the graphics and
// present families when they differ. Unless both roles are resolved the images
// stay exclusive.
func ChooseSharing(indices QueueFamilyIndices) (SharingMode, []int) {
	if !indices.IsComplete() {
		return SharingModeExclusive, nil
	}
	if *indices.Graphics != *indices.Present {
		return SharingModeConcurrent, []int{*indices.Graphics, *indices.Present}
	}
	return SharingModeExclusive, nil
}

// BuildSwapchainConfig combines the negotiated presentation parameters into a
// swapchain creation descriptor.
func BuildSwapchainConfig(support SwapchainSupportDetails, indices QueueFamilyIndices, requested Extent2D) (SwapchainConfig, error) {
	if !indices.IsComplete() {
		return SwapchainConfig{}, Fail(KindIncompleteQueueSupport, "swapchain needs both graphics and present queue families")
	}
	if len(support.Formats) == 0 {
		return SwapchainConfig{}, Fail(KindNoCompatibleDevice, "surface offers no formats")
	}

	surfaceFormat := ChooseSurfaceFormat(support.Formats)
	sharingMode, queueFamilyIndices := ChooseSharing(indices)

	return SwapchainConfig{
		Format:      surfaceFormat.Format,
		ColorSpace:  surfaceFormat.ColorSpace,
		PresentMode: ChoosePresentMode(support.PresentModes),
		Extent:      ChooseExtent(support.Capabilities, requested),
		ImageCount:  ChooseImageCount(support.Capabilities),

		ArrayLayers:    1,
		ImageUsage:     ImageUsageColorAttachment,
		PreTransform:   support.Capabilities.CurrentTransform,
		CompositeAlpha: CompositeAlphaOpaque,
		Clipped:        true,

		SharingMode:        sharingMode,
		QueueFamilyIndices: queueFamilyIndices,
	}, nil
}
