package buffers

import (
	"github.com/bloeys/nrend/assert"
	"github.com/bloeys/nrend/gpu"
)

// Element represents an element that makes up a buffer (e.g. Vec3 at an offset of 12 bytes)
type Element struct {
	Offset int
	ElementType
}

// ElementType is the type of an element thats makes up a buffer (e.g. Vec3)
type ElementType uint8

const (
	DataTypeUnknown ElementType = iota

	DataTypeUint32
	DataTypeInt32
	DataTypeFloat32

	DataTypeVec2
	DataTypeVec3
	DataTypeVec4

	DataTypeMat2
	DataTypeMat3
	DataTypeMat4
)

// AttribType returns the type of one component as seen by a vertex attribute
func (dt ElementType) AttribType() gpu.AttribType {

	switch dt {

	case DataTypeUint32:
		return gpu.AttribType_Uint32
	case DataTypeInt32:
		return gpu.AttribType_Int32

	case DataTypeFloat32, DataTypeVec2, DataTypeVec3, DataTypeVec4, DataTypeMat2, DataTypeMat3, DataTypeMat4:
		return gpu.AttribType_Float32

	default:
		assert.T(false, "Unknown data type passed. DataType '%d'", dt)
		return gpu.AttribType_Unknown
	}
}

// CompSize returns the size in bytes for one component of the type (e.g. for Vec2 its 4)
func (dt ElementType) CompSize() int32 {

	switch dt {

	case DataTypeUint32, DataTypeFloat32, DataTypeInt32,
		DataTypeVec2, DataTypeVec3, DataTypeVec4,
		DataTypeMat2, DataTypeMat3, DataTypeMat4:
		return 4

	default:
		assert.T(false, "Unknown data type passed. DataType '%d'", dt)
		return 0
	}
}

// CompCount returns the number of components in the element (e.g. for Vec2 its 2)
func (dt ElementType) CompCount() int32 {

	switch dt {
	case DataTypeUint32, DataTypeFloat32, DataTypeInt32:
		return 1

	case DataTypeVec2:
		return 2
	case DataTypeVec3:
		return 3
	case DataTypeVec4:
		return 4

	case DataTypeMat2:
		return 2 * 2
	case DataTypeMat3:
		return 3 * 3
	case DataTypeMat4:
		return 4 * 4

	default:
		assert.T(false, "Unknown data type passed. DataType '%d'", dt)
		return 0
	}
}

// Size returns the total size in bytes (e.g. for vec3 its 3*4=12 bytes)
func (dt ElementType) Size() int32 {
	return dt.CompSize() * dt.CompCount()
}

// GlStd140AlignmentBoundary is the base alignment of a single (non-array) field of this type in a std140 block
func (dt ElementType) GlStd140AlignmentBoundary() uint16 {

	switch dt {

	case DataTypeUint32, DataTypeFloat32, DataTypeInt32:
		return 4

	case DataTypeVec2:
		return 8

	case DataTypeVec3, DataTypeVec4, DataTypeMat2, DataTypeMat3, DataTypeMat4:
		return 16

	default:
		assert.T(false, "Unknown data type passed. DataType '%d'", dt)
		return 0
	}
}

// Std140ColumnCount is how many vec4 slots one field of this type occupies in std140.
// Matrices are stored as one padded vec4 per column, everything else as a single slot.
func (dt ElementType) Std140ColumnCount() uint16 {

	switch dt {
	case DataTypeMat2:
		return 2
	case DataTypeMat3:
		return 3
	case DataTypeMat4:
		return 4
	default:
		return 1
	}
}

func (dt ElementType) String() string {

	switch dt {

	case DataTypeUint32:
		return "uint32"
	case DataTypeFloat32:
		return "float32"
	case DataTypeInt32:
		return "int32"

	case DataTypeVec2:
		return "Vec2"
	case DataTypeVec3:
		return "Vec3"
	case DataTypeVec4:
		return "Vec4"

	case DataTypeMat2:
		return "Mat2"
	case DataTypeMat3:
		return "Mat3"
	case DataTypeMat4:
		return "Mat4"

	default:
		return "Unknown"
	}
}
