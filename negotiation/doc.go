// Package negotiation picks a physical device, queue families and swapchain
// parameters from what a Vulkan driver reports. It never talks to the driver
// directly: devices and surfaces arrive as PhysicalDevice and Surface values,
// so every decision can be exercised with plain data.
package negotiation
