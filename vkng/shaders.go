package vkng

import (
	"encoding/binary"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
	"github.com/vkngwrapper/core/v2/core1_0"

	"github.com/vkngwrapper/presentation/lifecycle"
)

const spirvMagic = 0x07230203

// ShaderPipeline loads the vertex and fragment stages from Dir and checks that
// the device accepts them. The modules are released once checked; render
// state is left to the render loop.
type ShaderPipeline struct {
	Dir string
	Log logrus.FieldLogger
}

var _ lifecycle.PipelineBuilder = ShaderPipeline{}

var shaderStages = []struct {
	file  string
	stage core1_0.ShaderStageFlags
}{
	{"vert.spv", core1_0.StageVertex},
	{"frag.spv", core1_0.StageFragment},
}

func (p ShaderPipeline) BuildPipeline(handoff lifecycle.PipelineHandoff) error {
	device, ok := handoff.Device.(*Device)
	if !ok {
		return errors.Newf("unsupported device %T", handoff.Device)
	}
	log := p.Log
	if log == nil {
		log = logrus.StandardLogger()
	}

	var modules []core1_0.ShaderModule
	defer func() {
		for _, module := range modules {
			module.Destroy(nil)
		}
	}()

	for _, s := range shaderStages {
		path := filepath.Join(p.Dir, s.file)
		code, err := os.ReadFile(path)
		if err != nil {
			return errors.Wrapf(err, "read shader %s", path)
		}

		bytecode, err := bytesToBytecode(code)
		if err != nil {
			return errors.Wrapf(err, "shader %s", path)
		}

		module, _, err := device.Handle().CreateShaderModule(nil, core1_0.ShaderModuleCreateInfo{
			Code: bytecode,
		})
		if err != nil {
			return errors.Wrapf(err, "create shader module %s", path)
		}
		modules = append(modules, module)

		log.WithFields(logrus.Fields{
			"stage": s.stage,
			"words": len(bytecode),
		}).Debug("shader module created")
	}

	log.WithFields(logrus.Fields{
		"format":     handoff.Format,
		"viewport":   handoff.Viewport(),
		"scissor":    handoff.Scissor().Extent,
		"projection": handoff.Projection(),
	}).Info("pipeline inputs ready")
	return nil
}

// bytesToBytecode turns a little-endian SPIR-V blob into words.
func bytesToBytecode(b []byte) ([]uint32, error) {
	if len(b) == 0 || len(b)%4 != 0 {
		return nil, errors.Newf("spir-v size %d is not a positive multiple of 4", len(b))
	}

	byteCode := make([]uint32, len(b)/4)
	for i := range byteCode {
		byteCode[i] = binary.LittleEndian.Uint32(b[i*4:])
	}

	if byteCode[0] != spirvMagic {
		return nil, errors.Newf("bad spir-v magic 0x%08x", byteCode[0])
	}
	return byteCode, nil
}
