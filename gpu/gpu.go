// Package gpu defines the narrow set of graphics context capabilities the rest
// of nrend is written against. Nothing outside of a backend package (e.g. glgpu)
// talks to a graphics API directly.
package gpu

import "errors"

// Handle is an opaque backend object name. Zero means 'no object'.
type Handle uint32

var (
	// ErrUniformBlockNotFound is returned by UniformBlockBinding when the program
	// does not declare (or the driver optimized away) the named block.
	ErrUniformBlockNotFound = errors.New("uniform block not found in shader program")
)

type BufferTarget uint8

const (
	BufferTarget_Unknown BufferTarget = iota
	BufferTarget_Array
	BufferTarget_ElementArray
	BufferTarget_Uniform
	// BufferTarget_CopyWrite is used to upload into a buffer without touching
	// bindings that are part of vertex array state (like the element array)
	BufferTarget_CopyWrite
)

// MaxVertexAttribs is the number of vertex attribute slots every backend must support
const MaxVertexAttribs = 16

func (b BufferTarget) String() string {

	switch b {
	case BufferTarget_Array:
		return "Array"
	case BufferTarget_ElementArray:
		return "ElementArray"
	case BufferTarget_Uniform:
		return "Uniform"
	case BufferTarget_CopyWrite:
		return "CopyWrite"
	default:
		return "Unknown"
	}
}

type DrawMode uint8

const (
	DrawMode_Points DrawMode = iota
	DrawMode_Lines
	DrawMode_LineLoop
	DrawMode_LineStrip
	DrawMode_Triangles
	DrawMode_TriangleStrip
	DrawMode_TriangleFan
)

// IndexType is the data type of one index value used by an indexed draw
type IndexType uint8

const (
	IndexType_Unknown IndexType = iota
	IndexType_Uint16
	IndexType_Uint32
)

// AttribType is the component type of a vertex attribute
type AttribType uint8

const (
	AttribType_Unknown AttribType = iota
	AttribType_Float32
	AttribType_Int32
	AttribType_Uint32
)

type TextureTarget uint8

const (
	TextureTarget_Unknown TextureTarget = iota
	TextureTarget_2D
	TextureTarget_2DArray
	TextureTarget_CubeMap
	TextureTarget_CubeMapArray
)

type ShaderType int32

const (
	ShaderType_Unknown ShaderType = iota
	ShaderType_Vertex
	ShaderType_Fragment
	ShaderType_Geometry
)

func (s ShaderType) String() string {

	switch s {
	case ShaderType_Vertex:
		return "vertex"
	case ShaderType_Fragment:
		return "fragment"
	case ShaderType_Geometry:
		return "geometry"
	default:
		return "unknown"
	}
}

// Context is everything nrend needs from a graphics API. It is not safe for
// concurrent use, and all calls must come from the render thread.
type Context interface {
	CreateBuffer() Handle
	DeleteBuffer(buf Handle)
	BindBuffer(target BufferTarget, buf Handle)
	// BufferData (re)allocates the buffer bound to target and fills it with data.
	// A nil data with a non-zero size is not supported; use make([]byte, size).
	BufferData(target BufferTarget, data []byte, usage BufUsage)
	BufferSubData(target BufferTarget, offset int, data []byte)
	BindBufferBase(target BufferTarget, bindPoint uint32, buf Handle)

	EnableVertexAttribArray(index uint32)
	DisableVertexAttribArray(index uint32)
	VertexAttribPointer(index uint32, compCount int32, typ AttribType, normalized bool, stride int32, offset int)

	CreateProgram(sources map[ShaderType][]byte) (Handle, error)
	DeleteProgram(prog Handle)
	UseProgram(prog Handle)
	UniformBlockBinding(prog Handle, blockName string, bindPoint uint32) error
	// SetUniformInt32 sets a plain (non block) uniform, mostly used to point samplers at texture units.
	// Unknown names are ignored.
	SetUniformInt32(prog Handle, name string, val int32)

	// CreateTexture2D uploads tightly packed 8-bit RGBA pixels
	CreateTexture2D(width, height int32, rgba []byte, isSrgb bool) Handle
	DeleteTexture(tex Handle)
	BindTexture(unit uint32, target TextureTarget, tex Handle)

	DrawArrays(mode DrawMode, first, count int32)
	DrawElements(mode DrawMode, count int32, typ IndexType, byteOffset int)
}
