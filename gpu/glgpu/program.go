package glgpu

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bloeys/nrend/gpu"
	"github.com/bloeys/nrend/logging"
	"github.com/go-gl/gl/v4.1-core/gl"
)

// shaderStageOrder keeps attach order stable regardless of map iteration
var shaderStageOrder = [...]gpu.ShaderType{gpu.ShaderType_Vertex, gpu.ShaderType_Geometry, gpu.ShaderType_Fragment}

func (c *Context) CreateProgram(sources map[gpu.ShaderType][]byte) (gpu.Handle, error) {

	progId := gl.CreateProgram()
	if progId == 0 {
		return 0, errors.New("failed to create shader program")
	}

	shaderIds := make([]uint32, 0, len(sources))
	deleteShaders := func() {
		for _, id := range shaderIds {
			gl.DeleteShader(id)
		}
	}

	for _, shdrType := range shaderStageOrder {

		src, ok := sources[shdrType]
		if !ok {
			continue
		}

		shaderId, err := compileShaderOfType(src, shdrType)
		if err != nil {
			deleteShaders()
			gl.DeleteProgram(progId)
			return 0, err
		}

		shaderIds = append(shaderIds, shaderId)
		gl.AttachShader(progId, shaderId)
	}

	gl.LinkProgram(progId)

	// Shaders are only flagged for deletion, they live on as long as the program does
	deleteShaders()

	if err := getProgramLinkErrors(progId); err != nil {
		gl.DeleteProgram(progId)
		return 0, err
	}

	return gpu.Handle(progId), nil
}

func compileShaderOfType(shaderSource []byte, shaderType gpu.ShaderType) (uint32, error) {

	shaderId := gl.CreateShader(shaderTypeToGl(shaderType))
	if shaderId == 0 {
		return 0, fmt.Errorf("failed to create OpenGl shader. OpenGl Error=%d", gl.GetError())
	}

	//Load shader source and compile
	shaderCStr, shaderFree := gl.Strs(string(shaderSource) + "\x00")
	defer shaderFree()
	gl.ShaderSource(shaderId, 1, shaderCStr, nil)

	gl.CompileShader(shaderId)
	if err := getShaderCompileErrors(shaderId, shaderType); err != nil {
		gl.DeleteShader(shaderId)
		return 0, err
	}

	return shaderId, nil
}

func getShaderCompileErrors(shaderId uint32, shaderType gpu.ShaderType) error {

	var compiledSuccessfully int32
	gl.GetShaderiv(shaderId, gl.COMPILE_STATUS, &compiledSuccessfully)
	if compiledSuccessfully == gl.TRUE {
		return nil
	}

	var logLength int32
	gl.GetShaderiv(shaderId, gl.INFO_LOG_LENGTH, &logLength)

	log := gl.Str(strings.Repeat("\x00", int(logLength)))
	gl.GetShaderInfoLog(shaderId, logLength, nil, log)

	errMsg := gl.GoStr(log)
	logging.ErrLog.Println("Compilation of", shaderType.String(), "shader with id", shaderId, "failed. Err:", errMsg)
	return errors.New(errMsg)
}

func getProgramLinkErrors(progId uint32) error {

	var linkedSuccessfully int32
	gl.GetProgramiv(progId, gl.LINK_STATUS, &linkedSuccessfully)
	if linkedSuccessfully == gl.TRUE {
		return nil
	}

	var logLength int32
	gl.GetProgramiv(progId, gl.INFO_LOG_LENGTH, &logLength)

	log := gl.Str(strings.Repeat("\x00", int(logLength)))
	gl.GetProgramInfoLog(progId, logLength, nil, log)

	errMsg := gl.GoStr(log)
	logging.ErrLog.Println("Linking of shader program with id", progId, "failed. Err:", errMsg)
	return errors.New(errMsg)
}
