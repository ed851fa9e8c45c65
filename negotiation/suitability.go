package negotiation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
)

// SwapchainExtensionName is the device extension every candidate must report.
const SwapchainExtensionName = "VK_KHR_swapchain"

// Evaluator is the hard-requirement gate a device must pass to be used. It does
// not rank devices.
type Evaluator struct {
	RequiredExtensions []string
}

// DefaultEvaluator requires only the swapchain extension.
func DefaultEvaluator() Evaluator {
	return Evaluator{RequiredExtensions: []string{SwapchainExtensionName}}
}

// Evaluate reports whether candidate is suitable and, if not, why.
func (e Evaluator) Evaluate(candidate DeviceCandidate) (bool, string) {
	if candidate.Properties.Type != DeviceTypeDiscreteGPU {
		return false, fmt.Sprintf("device type %s is not a discrete GPU", candidate.Properties.Type)
	}

	missing := MissingExtensions(e.RequiredExtensions, candidate.Extensions)
	if len(missing) > 0 {
		return false, "missing device extensions: " + strings.Join(missing, ", ")
	}

	if len(candidate.Support.Formats) == 0 {
		return false, "surface offers no formats"
	}
	if len(candidate.Support.PresentModes) == 0 {
		return false, "surface offers no present modes"
	}

	return true, ""
}

func (e Evaluator) IsSuitable(candidate DeviceCandidate) bool {
	ok, _ := e.Evaluate(candidate)
	return ok
}

// MissingExtensions returns required minus reported, sorted.
func MissingExtensions(required []string, reported map[string]struct{}) []string {
	remaining := make(map[string]struct{}, len(required))
	for _, name := range required {
		remaining[name] = struct{}{}
	}
	for name := range reported {
		delete(remaining, name)
	}

	if len(remaining) == 0 {
		return nil
	}
	missing := make([]string, 0, len(remaining))
	for name := range remaining {
		missing = append(missing, name)
	}
	sort.Strings(missing)
	return missing
}

// SelectDevice probes devices in enumeration order and returns the first one
// the evaluator accepts.
func SelectDevice(devices []PhysicalDevice, surface Surface, evaluator Evaluator, log logrus.FieldLogger) (DeviceCandidate, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}

	if len(devices) == 0 {
		return DeviceCandidate{}, Fail(KindNoCompatibleDevice, "unable to find a Vulkan compatible device")
	}
	log.Infof("found %d Vulkan compatible device(s)", len(devices))

	prober := Prober{Log: log}
	for i, device := range devices {
		candidate := prober.Probe(device, surface)
		ok, reason := evaluator.Evaluate(candidate)
		if ok {
			log.WithField("device", candidate.Properties.Name).Info("device selected")
			return candidate, nil
		}
		log.WithFields(logrus.Fields{
			"device": candidate.Properties.Name,
			"index":  i,
			"reason": reason,
		}).Warn("device rejected")
	}

	return DeviceCandidate{}, Fail(KindNoCompatibleDevice, "unable to find a suitable discrete GPU among %d device(s)", len(devices))
}
