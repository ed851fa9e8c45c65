package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/vkngwrapper/presentation/lifecycle"
	"github.com/vkngwrapper/presentation/negotiation"
	"github.com/vkngwrapper/presentation/vkng"
)

func init() {
	runtime.LockOSThread()
}

var (
	envFile    = flag.String("env", ".env", "Optional environment file with SWAPCHAIN_* settings")
	width      = flag.Int("width", 0, "Window width, overrides SWAPCHAIN_WIDTH")
	height     = flag.Int("height", 0, "Window height, overrides SWAPCHAIN_HEIGHT")
	noValidate = flag.Bool("novalidation", false, "Disable Vulkan validation layers")
	shaderDir  = flag.String("shaders", "", "Directory with vert.spv and frag.spv, overrides SWAPCHAIN_SHADER_DIR")
	logLevel   = flag.String("loglevel", "", "Log level, overrides SWAPCHAIN_LOG_LEVEL")
	hidden     = flag.Bool("hidden", false, "Keep the window hidden and exit once initialized")
)

func main() {
	flag.Parse()

	if err := godotenv.Load(*envFile); err != nil && !os.IsNotExist(err) {
		logrus.WithError(err).Fatal("load environment file")
	}

	config, level, err := loadConfig()
	if err != nil {
		logrus.WithError(err).Fatal("invalid configuration")
	}
	logrus.SetLevel(level)

	if err := run(config); err != nil {
		logrus.WithField("kind", negotiation.KindOf(err)).Fatalf("%+v", err)
	}
}

func run(config lifecycle.Config) error {
	log := logrus.StandardLogger()

	options := []lifecycle.Option{lifecycle.WithLogger(log)}
	if config.ShaderDir != "" {
		options = append(options, lifecycle.WithPipelineBuilder(vkng.ShaderPipeline{Dir: config.ShaderDir, Log: log}))
	}

	manager, err := lifecycle.NewManager(config, vkng.SDLWindowProvider{Hidden: *hidden}, &vkng.Driver{Log: log}, options...)
	if err != nil {
		return err
	}
	defer manager.Close()

	if err := manager.Initialize(context.Background()); err != nil {
		return err
	}

	candidate := manager.Candidate()
	swapchain := manager.SwapchainConfig()
	log.WithFields(logrus.Fields{
		"session":      manager.Session(),
		"device":       candidate.Properties.Name,
		"format":       swapchain.Format,
		"present_mode": swapchain.PresentMode,
		"extent":       swapchain.Extent,
		"images":       len(manager.ImageViews()),
		"degraded":     manager.DegradedRoles(),
	}).Info("ready")

	if *hidden {
		return nil
	}

	for {
		for event := sdl.WaitEvent(); event != nil; event = sdl.PollEvent() {
			if _, ok := event.(*sdl.QuitEvent); ok {
				return nil
			}
		}
	}
}

func loadConfig() (lifecycle.Config, logrus.Level, error) {
	config := lifecycle.DefaultConfig()
	level := logrus.InfoLevel

	var err error
	if config.Width, err = envInt("SWAPCHAIN_WIDTH", config.Width); err != nil {
		return config, level, err
	}
	if config.Height, err = envInt("SWAPCHAIN_HEIGHT", config.Height); err != nil {
		return config, level, err
	}
	if v, ok := os.LookupEnv("SWAPCHAIN_VALIDATION"); ok {
		if config.EnableValidation, err = strconv.ParseBool(v); err != nil {
			return config, level, err
		}
	}
	config.ShaderDir = os.Getenv("SWAPCHAIN_SHADER_DIR")

	levelName := os.Getenv("SWAPCHAIN_LOG_LEVEL")
	if *logLevel != "" {
		levelName = *logLevel
	}
	if levelName != "" {
		if level, err = logrus.ParseLevel(levelName); err != nil {
			return config, logrus.InfoLevel, err
		}
	}

	if *width > 0 {
		config.Width = *width
	}
	if *height > 0 {
		config.Height = *height
	}
	if *noValidate {
		config.EnableValidation = false
	}
	if *shaderDir != "" {
		config.ShaderDir = *shaderDir
	}

	return config, level, config.Validate()
}

func envInt(key string, fallback int) (int, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback, nil
	}
	return strconv.Atoi(v)
}
