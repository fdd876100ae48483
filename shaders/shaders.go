package shaders

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/bloeys/nrend/gpu"
	"github.com/bloeys/nrend/logging"
)

func LoadAndCompileCombinedShader(ctx gpu.Context, shaderPath string) (*ShaderProgram, error) {

	combinedSource, err := os.ReadFile(shaderPath)
	if err != nil {
		logging.ErrLog.Println("Failed to read shader. Err: ", err)
		return nil, err
	}

	name := strings.TrimSuffix(filepath.Base(shaderPath), filepath.Ext(shaderPath))
	return LoadAndCompileCombinedShaderSrc(ctx, name, combinedSource)
}

func LoadAndCompileCombinedShaderSrc(ctx gpu.Context, name string, shaderSrc []byte) (*ShaderProgram, error) {

	sources, err := SplitCombinedShaderSrc(shaderSrc)
	if err != nil {
		return nil, err
	}

	id, err := ctx.CreateProgram(sources)
	if err != nil {
		return nil, errors.New("failed to create shader program '" + name + "'. Err: " + err.Error())
	}

	return &ShaderProgram{Id: id, Name: name}, nil
}

// SplitCombinedShaderSrc splits a file holding multiple shader stages, each starting
// with a '//shader:vertex', '//shader:fragment' or '//shader:geometry' line.
// Vertex and fragment stages are required.
func SplitCombinedShaderSrc(shaderSrc []byte) (map[gpu.ShaderType][]byte, error) {

	shaderSources := bytes.Split(shaderSrc, []byte("//shader:"))
	if len(shaderSources) < 2 {
		return nil, errors.New("failed to read combined shader. The minimum shader types to have are '//shader:vertex' and '//shader:fragment'")
	}

	out := make(map[gpu.ShaderType][]byte, 3)
	for i := 0; i < len(shaderSources); i++ {

		src := shaderSources[i]

		//This can happen when the shader type is at the start of the file
		if len(bytes.TrimSpace(src)) == 0 {
			continue
		}

		var shdrType gpu.ShaderType
		if bytes.HasPrefix(src, []byte("vertex")) {
			src = src[6:]
			shdrType = gpu.ShaderType_Vertex
		} else if bytes.HasPrefix(src, []byte("fragment")) {
			src = src[8:]
			shdrType = gpu.ShaderType_Fragment
		} else if bytes.HasPrefix(src, []byte("geometry")) {
			src = src[8:]
			shdrType = gpu.ShaderType_Geometry
		} else if i == 0 {
			// Anything before the first marker (e.g. a comment header) is ignored
			continue
		} else {
			return nil, errors.New("unknown shader type. Must be '//shader:vertex' or '//shader:fragment' or '//shader:geometry'")
		}

		if _, ok := out[shdrType]; ok {
			return nil, errors.New("shader stage '" + shdrType.String() + "' appears more than once")
		}

		out[shdrType] = src
	}

	if len(out) == 0 {
		return nil, errors.New("no valid shaders found. Please put '//shader:vertex' or '//shader:fragment' or '//shader:geometry' before your shaders")
	}

	if _, ok := out[gpu.ShaderType_Vertex]; !ok {
		return nil, errors.New("no valid vertex shader found. Please put '//shader:vertex' before your vertex shader")
	}

	if _, ok := out[gpu.ShaderType_Fragment]; !ok {
		return nil, errors.New("no valid fragment shader found. Please put '//shader:fragment' before your fragment shader")
	}

	return out, nil
}
