package lifecycle

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/loov/hrtime"
	"github.com/sirupsen/logrus"

	"github.com/vkngwrapper/presentation/negotiation"
)

// Queues holds one queue per resolved role. A role whose family could not be
// resolved has a nil queue.
type Queues struct {
	Graphics Queue
	Transfer Queue
	Compute  Queue
	Present  Queue
}

type Option func(*Manager)

func WithLogger(log logrus.FieldLogger) Option {
	return func(m *Manager) {
		m.log = log
	}
}

func WithEvaluator(evaluator negotiation.Evaluator) Option {
	return func(m *Manager) {
		m.evaluator = evaluator
	}
}

func WithPipelineBuilder(builder PipelineBuilder) Option {
	return func(m *Manager) {
		m.pipeline = builder
	}
}

// Manager owns every object created during initialization and destroys them
// in dependency order.
type Manager struct {
	config    Config
	windows   WindowProvider
	driver    Driver
	evaluator negotiation.Evaluator
	pipeline  PipelineBuilder
	session   uuid.UUID
	log       logrus.FieldLogger

	state  State
	closed bool

	window     Window
	instance   Instance
	surface    Surface
	candidate  negotiation.DeviceCandidate
	indices    negotiation.QueueFamilyIndices
	degraded   []negotiation.QueueRole
	device     Device
	queues     Queues
	swapchain  Swapchain
	scConfig   negotiation.SwapchainConfig
	images     []Image
	imageViews []ImageView
}

func NewManager(config Config, windows WindowProvider, driver Driver, options ...Option) (*Manager, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if windows == nil || driver == nil {
		return nil, errors.New("lifecycle: window provider and driver are required")
	}

	m := &Manager{
		config:    config,
		windows:   windows,
		driver:    driver,
		evaluator: negotiation.Evaluator{RequiredExtensions: config.RequiredDeviceExtensions},
		session:   uuid.New(),
		log:       logrus.StandardLogger(),
	}
	for _, option := range options {
		option(m)
	}
	if m.log == nil {
		m.log = logrus.StandardLogger()
	}
	m.log = m.log.WithField("session", m.session.String())

	return m, nil
}

type transition struct {
	target State
	run    func() error
}

// Initialize walks every state from Uninitialized to Running. The first failing
// step stops the walk; everything created up to that point is destroyed before
// the error is returned.
func (m *Manager) Initialize(ctx context.Context) error {
	if m.closed {
		return errors.New("lifecycle: manager is closed")
	}
	if m.state != Uninitialized {
		return errors.Newf("lifecycle: already initialized (state %s)", m.state)
	}

	transitions := []transition{
		{WindowReady, m.createWindow},
		{InstanceReady, m.createInstance},
		{SurfaceReady, m.createSurface},
		{PhysicalDeviceSelected, m.pickPhysicalDevice},
		{QueuesResolved, m.resolveQueueFamilies},
		{DeviceReady, m.createLogicalDevice},
		{SwapchainReady, m.createSwapchain},
		{ImageViewsReady, m.createImageViews},
		{Running, m.buildPipeline},
	}

	for _, t := range transitions {
		log := m.log.WithField("state", t.target)

		if err := ctx.Err(); err != nil {
			m.teardown()
			return errors.Wrapf(err, "initialize: interrupted before %s", t.target)
		}

		start := hrtime.Now()
		if err := t.run(); err != nil {
			log.WithError(err).WithField("kind", negotiation.KindOf(err)).Error("initialization failed")
			m.teardown()
			return err
		}

		m.state = t.target
		log.WithField("elapsed", hrtime.Since(start)).Info("state reached")
	}

	return nil
}

// Close destroys everything Initialize created. It is safe to call more than
// once and after a failed Initialize.
func (m *Manager) Close() error {
	if m.closed {
		return nil
	}
	m.teardown()
	m.closed = true
	return nil
}

// teardown destroys image views, swapchain, surface, logical device, instance
// and window, in that order, skipping whatever was never created.
func (m *Manager) teardown() {
	for _, view := range m.imageViews {
		view.Destroy()
	}
	m.imageViews = nil

	if m.swapchain != nil {
		m.swapchain.Destroy()
		m.swapchain = nil
	}
	m.images = nil

	if m.surface != nil {
		m.surface.Destroy()
		m.surface = nil
	}

	if m.device != nil {
		m.device.Destroy()
		m.device = nil
	}
	m.queues = Queues{}

	if m.instance != nil {
		m.instance.Destroy()
		m.instance = nil
	}

	if m.window != nil {
		m.window.Destroy()
		m.window = nil
	}

	m.state = Uninitialized
}

func (m *Manager) createWindow() error {
	window, err := m.windows.CreateWindow(m.config.Title, m.config.Width, m.config.Height)
	if err != nil {
		return negotiation.Wrap(err, negotiation.KindPlatform, "create window")
	}
	m.window = window
	return nil
}

func (m *Manager) createInstance() error {
	platformExtensions, err := m.window.RequiredInstanceExtensions()
	if err != nil {
		return negotiation.Wrap(err, negotiation.KindPlatform, "query required instance extensions")
	}

	var extensions []string
	extensions = append(extensions, m.config.RequiredInstanceExtensions...)
	extensions = append(extensions, platformExtensions...)

	instance, err := m.driver.CreateInstance(InstanceOptions{
		ApplicationName: m.config.AppName,
		EngineName:      "No Engine",
		Extensions:      extensions,
		Layers:          m.config.instanceLayers(),
		EnableDebug:     m.config.EnableValidation,
	})
	if err != nil {
		return negotiation.Wrap(err, negotiation.KindResourceCreation, "create instance")
	}
	m.instance = instance
	return nil
}

func (m *Manager) createSurface() error {
	surface, err := m.window.CreateSurface(m.instance)
	if err != nil {
		return negotiation.Wrap(err, negotiation.KindPlatform, "create surface")
	}
	m.surface = surface
	return nil
}

func (m *Manager) pickPhysicalDevice() error {
	devices, err := m.instance.PhysicalDevices()
	if err != nil {
		return negotiation.Wrap(err, negotiation.KindNoCompatibleDevice, "enumerate physical devices")
	}

	candidate, err := negotiation.SelectDevice(devices, m.surface, m.evaluator, m.log)
	if err != nil {
		return err
	}
	m.candidate = candidate
	return nil
}

func (m *Manager) resolveQueueFamilies() error {
	indices := negotiation.ResolveQueueFamilies(m.candidate.Device, m.candidate.QueueFamilies, m.surface, m.log)
	degraded, err := indices.Check()
	if err != nil {
		return err
	}

	for _, role := range degraded {
		m.log.WithField("role", role).Warnf("could not find a %s queue for selected device", role)
	}
	m.indices = indices
	m.degraded = degraded
	return nil
}

func (m *Manager) createLogicalDevice() error {
	device, err := m.instance.CreateDevice(m.candidate.Device, DeviceOptions{
		QueueFamilies: m.indices.UniqueFamilies(),
		Extensions:    m.config.RequiredDeviceExtensions,
		Layers:        m.config.DeviceLayers,
	})
	if err != nil {
		return negotiation.Wrap(err, negotiation.KindResourceCreation, "create logical device on %s", m.candidate.Properties.Name)
	}
	m.device = device

	queue := func(role negotiation.QueueRole) Queue {
		family, ok := m.indices.Get(role)
		if !ok {
			return nil
		}
		return device.Queue(family)
	}
	m.queues = Queues{
		Graphics: queue(negotiation.RoleGraphics),
		Transfer: queue(negotiation.RoleTransfer),
		Compute:  queue(negotiation.RoleCompute),
		Present:  queue(negotiation.RolePresent),
	}
	return nil
}

func (m *Manager) createSwapchain() error {
	support := negotiation.Prober{Log: m.log}.QuerySwapchainSupport(m.candidate.Device, m.surface)
	config, err := negotiation.BuildSwapchainConfig(support, m.indices, m.config.RequestedExtent())
	if err != nil {
		return err
	}

	swapchain, err := m.device.CreateSwapchain(m.surface, config)
	if err != nil {
		return negotiation.Wrap(err, negotiation.KindResourceCreation, "create swapchain")
	}
	m.swapchain = swapchain
	m.scConfig = config

	images, err := swapchain.Images()
	if err != nil {
		return negotiation.Wrap(err, negotiation.KindResourceCreation, "get swapchain images")
	}
	m.images = images

	m.log.WithFields(logrus.Fields{
		"format":       config.Format,
		"color_space":  config.ColorSpace,
		"present_mode": config.PresentMode,
		"extent":       config.Extent,
		"images":       len(images),
		"sharing":      config.SharingMode,
	}).Info("swapchain negotiated")
	return nil
}

func (m *Manager) createImageViews() error {
	for i, image := range m.images {
		view, err := m.device.CreateImageView(image, m.scConfig.Format)
		if err != nil {
			return negotiation.Wrap(err, negotiation.KindResourceCreation, "create image view %d", i)
		}
		m.imageViews = append(m.imageViews, view)
	}
	return nil
}

func (m *Manager) buildPipeline() error {
	if m.pipeline == nil {
		return nil
	}

	err := m.pipeline.BuildPipeline(PipelineHandoff{
		Device: m.device,
		Format: m.scConfig.Format,
		Extent: m.scConfig.Extent,
	})
	if err != nil {
		return negotiation.Wrap(err, negotiation.KindResourceCreation, "build pipeline")
	}
	return nil
}

func (m *Manager) State() State {
	return m.state
}

func (m *Manager) Session() uuid.UUID {
	return m.session
}

// Candidate is the selected physical device snapshot.
func (m *Manager) Candidate() negotiation.DeviceCandidate {
	return m.candidate
}

func (m *Manager) Indices() negotiation.QueueFamilyIndices {
	return m.indices
}

// DegradedRoles lists the optional queue roles left unresolved.
func (m *Manager) DegradedRoles() []negotiation.QueueRole {
	return m.degraded
}

func (m *Manager) Device() Device {
	return m.device
}

func (m *Manager) Queues() Queues {
	return m.queues
}

func (m *Manager) SwapchainConfig() negotiation.SwapchainConfig {
	return m.scConfig
}

func (m *Manager) ImageViews() []ImageView {
	return m.imageViews
}
