package vkng

import (
	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
	"github.com/veandco/go-sdl2/sdl"
	"github.com/vkngwrapper/core/v2"
	"github.com/vkngwrapper/core/v2/common"
	"github.com/vkngwrapper/core/v2/core1_0"
	"github.com/vkngwrapper/extensions/v2/ext_debug_utils"
	"github.com/vkngwrapper/extensions/v2/khr_portability_enumeration"

	"github.com/vkngwrapper/presentation/lifecycle"
	"github.com/vkngwrapper/presentation/negotiation"
)

// Driver loads Vulkan through SDL. A window must exist before CreateInstance
// is called so SDL has loaded the Vulkan library.
type Driver struct {
	Log logrus.FieldLogger
}

var _ lifecycle.Driver = (*Driver)(nil)

func (d *Driver) logger() logrus.FieldLogger {
	if d.Log == nil {
		return logrus.StandardLogger()
	}
	return d.Log
}

func (d *Driver) CreateInstance(options lifecycle.InstanceOptions) (lifecycle.Instance, error) {
	log := d.logger()

	loader, err := core.CreateLoaderFromProcAddr(sdl.VulkanGetVkGetInstanceProcAddr())
	if err != nil {
		return nil, errors.Wrap(err, "create vulkan loader")
	}

	availableExtensions, _, err := loader.AvailableExtensions()
	if err != nil {
		return nil, errors.Wrap(err, "enumerate instance extensions")
	}
	availableLayers, _, err := loader.AvailableLayers()
	if err != nil {
		return nil, errors.Wrap(err, "enumerate instance layers")
	}

	extensions := append([]string(nil), options.Extensions...)
	if options.EnableDebug {
		extensions = append(extensions, ext_debug_utils.ExtensionName)
	}
	if missing := negotiation.MissingExtensions(extensions, keys(availableExtensions)); len(missing) > 0 {
		return nil, errors.Newf("missing instance extensions: %v", missing)
	}

	for _, layer := range options.Layers {
		if _, ok := availableLayers[layer]; !ok {
			return nil, errors.Newf("layer %s not available, install the LunarG Vulkan SDK", layer)
		}
	}

	info := core1_0.InstanceCreateInfo{
		ApplicationName:       options.ApplicationName,
		ApplicationVersion:    common.CreateVersion(1, 0, 0),
		EngineName:            options.EngineName,
		EngineVersion:         common.CreateVersion(1, 0, 0),
		APIVersion:            common.Vulkan1_2,
		EnabledExtensionNames: extensions,
		EnabledLayerNames:     options.Layers,
	}

	if _, ok := availableExtensions[khr_portability_enumeration.ExtensionName]; ok {
		info.EnabledExtensionNames = append(info.EnabledExtensionNames, khr_portability_enumeration.ExtensionName)
		info.Flags |= khr_portability_enumeration.InstanceCreateEnumeratePortability
	}

	messengerInfo := debugMessengerInfo(log)
	if options.EnableDebug {
		info.Next = messengerInfo
	}

	instance, _, err := loader.CreateInstance(nil, info)
	if err != nil {
		return nil, err
	}

	result := &Instance{instance: instance, log: log}
	if options.EnableDebug {
		debug := ext_debug_utils.CreateExtensionFromInstance(instance)
		result.messenger, _, err = debug.CreateDebugUtilsMessenger(instance, nil, messengerInfo)
		if err != nil {
			instance.Destroy(nil)
			return nil, errors.Wrap(err, "create debug messenger")
		}
	}

	log.WithFields(logrus.Fields{
		"extensions": info.EnabledExtensionNames,
		"layers":     info.EnabledLayerNames,
	}).Debug("instance created")
	return result, nil
}

func debugMessengerInfo(log logrus.FieldLogger) ext_debug_utils.DebugUtilsMessengerCreateInfo {
	return ext_debug_utils.DebugUtilsMessengerCreateInfo{
		MessageSeverity: ext_debug_utils.SeverityError | ext_debug_utils.SeverityWarning,
		MessageType:     ext_debug_utils.TypeGeneral | ext_debug_utils.TypeValidation | ext_debug_utils.TypePerformance,
		UserCallback: func(msgType ext_debug_utils.DebugUtilsMessageTypeFlags, severity ext_debug_utils.DebugUtilsMessageSeverityFlags, data *ext_debug_utils.DebugUtilsMessengerCallbackData) bool {
			entry := log.WithFields(logrus.Fields{
				"type":     msgType,
				"severity": severity,
			})
			if severity&ext_debug_utils.SeverityError != 0 {
				entry.Error(data.Message)
			} else {
				entry.Warn(data.Message)
			}
			return false
		},
	}
}

type Instance struct {
	instance  core1_0.Instance
	messenger ext_debug_utils.DebugUtilsMessenger
	log       logrus.FieldLogger
}

func (i *Instance) PhysicalDevices() ([]negotiation.PhysicalDevice, error) {
	devices, _, err := i.instance.EnumeratePhysicalDevices()
	if err != nil {
		return nil, err
	}

	result := make([]negotiation.PhysicalDevice, 0, len(devices))
	for _, device := range devices {
		result = append(result, &PhysicalDevice{device: device})
	}
	return result, nil
}

func (i *Instance) Destroy() {
	if i.messenger != nil {
		i.messenger.Destroy(nil)
		i.messenger = nil
	}
	i.instance.Destroy(nil)
}

func keys[V any](m map[string]V) map[string]struct{} {
	set := make(map[string]struct{}, len(m))
	for k := range m {
		set[k] = struct{}{}
	}
	return set
}
