package glgpu

import (
	"fmt"

	"github.com/bloeys/nrend/assert"
	"github.com/bloeys/nrend/gpu"
	"github.com/go-gl/gl/v4.1-core/gl"
)

func bufUsageToGl(b gpu.BufUsage) uint32 {
	switch b {
	case gpu.BufUsage_Static_Draw:
		return gl.STATIC_DRAW
	case gpu.BufUsage_Dynamic_Draw:
		return gl.DYNAMIC_DRAW
	case gpu.BufUsage_Stream_Draw:
		return gl.STREAM_DRAW

	case gpu.BufUsage_Static_Read:
		return gl.STATIC_READ
	case gpu.BufUsage_Dynamic_Read:
		return gl.DYNAMIC_READ
	case gpu.BufUsage_Stream_Read:
		return gl.STREAM_READ

	case gpu.BufUsage_Static_Copy:
		return gl.STATIC_COPY
	case gpu.BufUsage_Dynamic_Copy:
		return gl.DYNAMIC_COPY
	case gpu.BufUsage_Stream_Copy:
		return gl.STREAM_COPY
	}

	assert.T(false, fmt.Sprintf("Unexpected BufUsage value '%v'", b))
	return 0
}

func bufferTargetToGl(t gpu.BufferTarget) uint32 {
	switch t {
	case gpu.BufferTarget_Array:
		return gl.ARRAY_BUFFER
	case gpu.BufferTarget_ElementArray:
		return gl.ELEMENT_ARRAY_BUFFER
	case gpu.BufferTarget_Uniform:
		return gl.UNIFORM_BUFFER
	case gpu.BufferTarget_CopyWrite:
		return gl.COPY_WRITE_BUFFER
	}

	assert.T(false, "Unexpected BufferTarget value '%v'", t)
	return 0
}

func drawModeToGl(m gpu.DrawMode) uint32 {
	switch m {
	case gpu.DrawMode_Points:
		return gl.POINTS
	case gpu.DrawMode_Lines:
		return gl.LINES
	case gpu.DrawMode_LineLoop:
		return gl.LINE_LOOP
	case gpu.DrawMode_LineStrip:
		return gl.LINE_STRIP
	case gpu.DrawMode_TriangleStrip:
		return gl.TRIANGLE_STRIP
	case gpu.DrawMode_TriangleFan:
		return gl.TRIANGLE_FAN
	default:
		return gl.TRIANGLES
	}
}

func indexTypeToGl(t gpu.IndexType) uint32 {
	switch t {
	case gpu.IndexType_Uint16:
		return gl.UNSIGNED_SHORT
	case gpu.IndexType_Uint32:
		return gl.UNSIGNED_INT
	}

	assert.T(false, "Unexpected IndexType value '%v'", t)
	return 0
}

func attribTypeToGl(t gpu.AttribType) uint32 {
	switch t {
	case gpu.AttribType_Float32:
		return gl.FLOAT
	case gpu.AttribType_Int32:
		return gl.INT
	case gpu.AttribType_Uint32:
		return gl.UNSIGNED_INT
	}

	assert.T(false, "Unexpected AttribType value '%v'", t)
	return 0
}

func textureTargetToGl(t gpu.TextureTarget) uint32 {
	switch t {
	case gpu.TextureTarget_2D:
		return gl.TEXTURE_2D
	case gpu.TextureTarget_2DArray:
		return gl.TEXTURE_2D_ARRAY
	case gpu.TextureTarget_CubeMap:
		return gl.TEXTURE_CUBE_MAP
	case gpu.TextureTarget_CubeMapArray:
		return gl.TEXTURE_CUBE_MAP_ARRAY
	}

	assert.T(false, "Unexpected TextureTarget value '%v'", t)
	return 0
}

func shaderTypeToGl(s gpu.ShaderType) uint32 {
	switch s {
	case gpu.ShaderType_Vertex:
		return gl.VERTEX_SHADER
	case gpu.ShaderType_Fragment:
		return gl.FRAGMENT_SHADER
	case gpu.ShaderType_Geometry:
		return gl.GEOMETRY_SHADER
	}

	assert.T(false, "Unknown shader type '%d'", s)
	return 0
}
