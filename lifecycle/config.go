package lifecycle

import (
	"github.com/cockroachdb/errors"

	"github.com/vkngwrapper/presentation/negotiation"
)

// ValidationLayer is the only debug layer ever enabled.
const ValidationLayer = "VK_LAYER_KHRONOS_validation"

type Config struct {
	AppName string
	Title   string
	Width   int
	Height  int

	EnableValidation bool
	ValidationLayers []string

	RequiredInstanceExtensions []string
	RequiredDeviceExtensions   []string
	DeviceLayers               []string

	// ShaderDir holds vert.spv and frag.spv for the pipeline builder. Empty
	// means no pipeline is built.
	ShaderDir string
}

func DefaultConfig() Config {
	return Config{
		AppName:                  "VulkanEngine",
		Title:                    "Vulkan-Engine",
		Width:                    800,
		Height:                   600,
		EnableValidation:         true,
		ValidationLayers:         []string{ValidationLayer},
		RequiredDeviceExtensions: []string{negotiation.SwapchainExtensionName},
	}
}

func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return errors.Newf("config: window size must be positive, got %dx%d", c.Width, c.Height)
	}
	if len(c.RequiredDeviceExtensions) == 0 {
		return errors.New("config: at least the swapchain device extension is required")
	}
	return nil
}

// RequestedExtent is the window size used when the surface leaves the
// swapchain extent up to the application.
func (c Config) RequestedExtent() negotiation.Extent2D {
	return negotiation.Extent2D{Width: uint32(c.Width), Height: uint32(c.Height)}
}

func (c Config) instanceLayers() []string {
	if !c.EnableValidation {
		return nil
	}
	return c.ValidationLayers
}
