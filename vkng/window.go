// Package vkng implements the lifecycle collaborators on top of vkngwrapper
// and SDL2.
package vkng

import (
	"github.com/cockroachdb/errors"
	"github.com/veandco/go-sdl2/sdl"
	"github.com/vkngwrapper/extensions/v2/khr_surface"
	vkng_sdl2 "github.com/vkngwrapper/integrations/sdl2/v2"

	"github.com/vkngwrapper/presentation/lifecycle"
)

// SDLWindowProvider opens one Vulkan-capable SDL window per call. SDL is
// initialized on the first window and shut down when it is destroyed.
type SDLWindowProvider struct {
	// Hidden keeps the window off screen.
	Hidden bool
}

var _ lifecycle.WindowProvider = SDLWindowProvider{}

func (p SDLWindowProvider) CreateWindow(title string, width, height int) (lifecycle.Window, error) {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return nil, errors.Wrap(err, "sdl init")
	}

	flags := uint32(sdl.WINDOW_VULKAN)
	if p.Hidden {
		flags |= uint32(sdl.WINDOW_HIDDEN)
	} else {
		flags |= uint32(sdl.WINDOW_SHOWN)
	}

	window, err := sdl.CreateWindow(title, sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED, int32(width), int32(height), flags)
	if err != nil {
		sdl.Quit()
		return nil, errors.Wrapf(err, "sdl create window %dx%d", width, height)
	}

	return &Window{window: window}, nil
}

type Window struct {
	window *sdl.Window
}

func (w *Window) RequiredInstanceExtensions() ([]string, error) {
	sdl.ClearError()
	extensions := w.window.VulkanGetInstanceExtensions()
	return platformExtensions(extensions, sdl.GetError())
}

// platformExtensions accepts an empty list from SDL unless SDL also set an
// error while producing it.
func platformExtensions(extensions []string, sdlErr error) ([]string, error) {
	if len(extensions) == 0 && sdlErr != nil {
		return nil, errors.Wrap(sdlErr, "sdl vulkan instance extensions")
	}
	return extensions, nil
}

func (w *Window) CreateSurface(instance lifecycle.Instance) (lifecycle.Surface, error) {
	inst, ok := instance.(*Instance)
	if !ok {
		return nil, errors.Newf("create surface: unsupported instance %T", instance)
	}

	loader := khr_surface.CreateExtensionFromInstance(inst.instance)
	surface, err := vkng_sdl2.CreateSurface(inst.instance, loader, w.window)
	if err != nil {
		return nil, err
	}
	return &Surface{surface: surface}, nil
}

func (w *Window) Destroy() {
	_ = w.window.Destroy()
	sdl.Quit()
}
