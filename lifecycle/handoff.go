package lifecycle

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/vkngwrapper/presentation/negotiation"
)

// PipelineHandoff is everything a pipeline builder gets from negotiation.
type PipelineHandoff struct {
	Device Device
	Format negotiation.Format
	Extent negotiation.Extent2D
}

type Viewport struct {
	X, Y, Width, Height float32
	MinDepth, MaxDepth  float32
}

type Rect2D struct {
	X, Y   int32
	Extent negotiation.Extent2D
}

// Viewport covers the whole swapchain extent with depth range [0, 1].
func (h PipelineHandoff) Viewport() Viewport {
	return Viewport{
		Width:    float32(h.Extent.Width),
		Height:   float32(h.Extent.Height),
		MaxDepth: 1,
	}
}

func (h PipelineHandoff) Scissor() Rect2D {
	return Rect2D{Extent: h.Extent}
}

// Projection maps pixel coordinates, origin top-left, to Vulkan clip space
// where y points down.
func (h PipelineHandoff) Projection() mgl32.Mat4 {
	return mgl32.Ortho2D(0, float32(h.Extent.Width), 0, float32(h.Extent.Height))
}
