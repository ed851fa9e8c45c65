package lifecycle

import "fmt"

// State is a step of initialization. States are reached strictly in order.
type State int

const (
	Uninitialized State = iota
	WindowReady
	InstanceReady
	SurfaceReady
	PhysicalDeviceSelected
	QueuesResolved
	DeviceReady
	SwapchainReady
	ImageViewsReady
	Running
)

var stateNames = [...]string{
	Uninitialized:          "Uninitialized",
	WindowReady:            "WindowReady",
	InstanceReady:          "InstanceReady",
	SurfaceReady:           "SurfaceReady",
	PhysicalDeviceSelected: "PhysicalDeviceSelected",
	QueuesResolved:         "QueuesResolved",
	DeviceReady:            "DeviceReady",
	SwapchainReady:         "SwapchainReady",
	ImageViewsReady:        "ImageViewsReady",
	Running:                "Running",
}

func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", int(s))
}
