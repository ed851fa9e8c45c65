package negotiation

// ChooseSurfaceFormat returns the 8-bit BGRA sRGB / sRGB-nonlinear pair if it
// is offered, otherwise the first offered format. An empty list yields the zero
// SurfaceFormat.
func ChooseSurfaceFormat(availableFormats []SurfaceFormat) SurfaceFormat {
	for _, format := range availableFormats {
		if format.Format == FormatB8G8R8A8SRGB && format.ColorSpace == ColorSpaceSRGBNonlinear {
			return format
		}
	}

	if len(availableFormats) == 0 {
		return SurfaceFormat{}
	}
	return availableFormats[0]
}

// ChoosePresentMode prefers mailbox and otherwise falls back to FIFO, which
// every surface must support.
func ChoosePresentMode(availablePresentModes []PresentMode) PresentMode {
	for _, presentMode := range availablePresentModes {
		if presentMode == PresentModeMailbox {
			return presentMode
		}
	}

	return PresentModeFIFO
}

// ChooseExtent uses the surface's current extent unless it is undefined, in
// which case requested is clamped per axis into the surface's bounds.
func ChooseExtent(capabilities SurfaceCapabilities, requested Extent2D) Extent2D {
	if !capabilities.CurrentExtent.IsUndefined() {
		return capabilities.CurrentExtent
	}

	return Extent2D{
		Width:  clamp(requested.Width, capabilities.MinImageExtent.Width, capabilities.MaxImageExtent.Width),
		Height: clamp(requested.Height, capabilities.MinImageExtent.Height, capabilities.MaxImageExtent.Height),
	}
}

func clamp(v, lo, hi uint32) uint32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
