package buffers

import (
	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/nrend/assert"
	"github.com/bloeys/nrend/gpu"
	"github.com/bloeys/nrend/logging"
)

type UniformBufferFieldInput struct {
	Name string
	Type ElementType
}

type UniformBufferField struct {
	Name          string
	AlignedOffset uint16
	Type          ElementType
}

// UniformBuffer mirrors a std140 uniform block. Setters only write into a CPU side copy
// and mark the buffer dirty, Update then sends the whole block to the GPU in one call.
//
// The field list must match the shader side block declaration exactly (order and types),
// otherwise the shader reads the wrong bytes.
type UniformBuffer struct {
	Id gpu.Handle
	// Name is the block name as declared in shaders (e.g. 'ubo_per_frame')
	Name string
	// BindPoint is the binding slot shared by every program using this block. Set by SetBindPoint
	BindPoint uint32
	// Size is the allocated memory in bytes on the GPU for this uniform buffer
	Size   uint32
	Fields []UniformBufferField

	data  []byte
	dirty bool
}

func (ub *UniformBuffer) Bind(ctx gpu.Context) {
	ctx.BindBuffer(gpu.BufferTarget_Uniform, ub.Id)
}

func (ub *UniformBuffer) UnBind(ctx gpu.Context) {
	ctx.BindBuffer(gpu.BufferTarget_Uniform, 0)
}

// SetBindPoint attaches this buffer to the given uniform binding slot
func (ub *UniformBuffer) SetBindPoint(ctx gpu.Context, bindPointIndex uint32) {
	ub.BindPoint = bindPointIndex
	ctx.BindBufferBase(gpu.BufferTarget_Uniform, bindPointIndex, ub.Id)
}

// BindShader points the program's block named ub.Name at ub.BindPoint.
// Returns gpu.ErrUniformBlockNotFound if the program has no such block.
func (ub *UniformBuffer) BindShader(ctx gpu.Context, shaderProgId gpu.Handle) error {
	return ctx.UniformBlockBinding(shaderProgId, ub.Name, ub.BindPoint)
}

func (ub *UniformBuffer) IsDirty() bool {
	return ub.dirty
}

// Bytes returns the CPU side copy of the block. It must not be modified.
func (ub *UniformBuffer) Bytes() []byte {
	return ub.data
}

// Update uploads the block if anything changed since the last upload, and reports whether it did
func (ub *UniformBuffer) Update(ctx gpu.Context) bool {

	if !ub.dirty {
		return false
	}

	ub.Bind(ctx)
	ctx.BufferSubData(gpu.BufferTarget_Uniform, 0, ub.data)
	ub.dirty = false
	return true
}

func (ub *UniformBuffer) Delete(ctx gpu.Context) {
	ctx.DeleteBuffer(ub.Id)
	ub.Id = 0
}

func computeStd140Layout(fieldsToAdd []UniformBufferFieldInput) (fields []UniformBufferField, totalSize uint32) {

	fields = make([]UniformBufferField, 0, len(fieldsToAdd))
	fieldNameToTypeMap := make(map[string]ElementType, len(fieldsToAdd))

	var alignedOffset uint16 = 0
	for i := 0; i < len(fieldsToAdd); i++ {

		f := fieldsToAdd[i]

		existingFieldType, ok := fieldNameToTypeMap[f.Name]
		assert.T(!ok, "Uniform buffer field name is reused within the same uniform buffer. Field '%s' was first used on a field with type=%s and then used on a different field with type=%s\n", f.Name, existingFieldType.String(), f.Type.String())
		fieldNameToTypeMap[f.Name] = f.Type

		// To understand this take an example. Say we have a total offset of 100 and we are adding a vec4.
		// Vec4s must be aligned to a 16 byte boundary but 100 is not (100 % 16 != 0).
		//
		// To fix this, we take the alignment error which is alignErr=100 % 16=4, but this is error to the nearest
		// boundary, which is below the offset.
		//
		// To get the nearest boundary larger than the offset we can:
		// offset + (boundary - alignErr) == 100 + (16 - 4) == 112; 112 % 16 == 0, meaning its a boundary
		alignmentBoundary := f.Type.GlStd140AlignmentBoundary()
		alignmentError := alignedOffset % alignmentBoundary
		if alignmentError != 0 {
			alignedOffset += alignmentBoundary - alignmentError
		}

		fields = append(fields, UniformBufferField{Name: f.Name, Type: f.Type, AlignedOffset: alignedOffset})

		// Matrices are treated as an array of column vectors where each column is padded to a vec4.
		// Scalars and vectors only take their own size, so a float can sit right after a vec3
		columns := f.Type.Std140ColumnCount()
		if columns > 1 {
			alignedOffset += 16 * columns
		} else {
			alignedOffset += uint16(f.Type.Size())
		}
	}

	padTo16Boundary(&alignedOffset)
	return fields, uint32(alignedOffset)
}

func padTo16Boundary[T uint16 | int | int32](val *T) {
	alignmentError := *val % 16
	if alignmentError != 0 {
		*val += 16 - alignmentError
	}
}

func (ub *UniformBuffer) getField(fieldName string, fieldType ElementType) UniformBufferField {

	for i := 0; i < len(ub.Fields); i++ {

		f := ub.Fields[i]

		if f.Name != fieldName {
			continue
		}

		if f.Type != fieldType {
			logging.ErrLog.Panicf("Uniform buffer '%s' field '%s' has type=%s, but is being used as type=%s\n", ub.Name, fieldName, f.Type.String(), fieldType.String())
		}

		return f
	}

	logging.ErrLog.Panicf("couldn't find field '%s' of type=%s in uniform buffer '%s'\n", fieldName, fieldType.String(), ub.Name)
	return UniformBufferField{}
}

func (ub *UniformBuffer) SetInt32(fieldName string, val int32) {
	f := ub.getField(fieldName, DataTypeInt32)
	writeIndex := int(f.AlignedOffset)
	Write32BitIntegerToByteBuf(ub.data, &writeIndex, val)
	ub.dirty = true
}

func (ub *UniformBuffer) SetUint32(fieldName string, val uint32) {
	f := ub.getField(fieldName, DataTypeUint32)
	writeIndex := int(f.AlignedOffset)
	Write32BitIntegerToByteBuf(ub.data, &writeIndex, val)
	ub.dirty = true
}

func (ub *UniformBuffer) SetFloat32(fieldName string, val float32) {
	f := ub.getField(fieldName, DataTypeFloat32)
	writeIndex := int(f.AlignedOffset)
	WriteF32ToByteBuf(ub.data, &writeIndex, val)
	ub.dirty = true
}

func (ub *UniformBuffer) SetVec2(fieldName string, val *gglm.Vec2) {
	f := ub.getField(fieldName, DataTypeVec2)
	writeIndex := int(f.AlignedOffset)
	WriteF32SliceToByteBuf(ub.data, &writeIndex, val.Data[:])
	ub.dirty = true
}

func (ub *UniformBuffer) SetVec3(fieldName string, val *gglm.Vec3) {
	f := ub.getField(fieldName, DataTypeVec3)
	writeIndex := int(f.AlignedOffset)
	WriteF32SliceToByteBuf(ub.data, &writeIndex, val.Data[:])
	ub.dirty = true
}

func (ub *UniformBuffer) SetVec4(fieldName string, val *gglm.Vec4) {
	f := ub.getField(fieldName, DataTypeVec4)
	writeIndex := int(f.AlignedOffset)
	WriteF32SliceToByteBuf(ub.data, &writeIndex, val.Data[:])
	ub.dirty = true
}

func (ub *UniformBuffer) SetMat2(fieldName string, val *gglm.Mat2) {
	f := ub.getField(fieldName, DataTypeMat2)
	for col := 0; col < 2; col++ {
		writeIndex := int(f.AlignedOffset) + col*16
		WriteF32SliceToByteBuf(ub.data, &writeIndex, val.Data[col][:])
	}
	ub.dirty = true
}

func (ub *UniformBuffer) SetMat3(fieldName string, val *gglm.Mat3) {
	f := ub.getField(fieldName, DataTypeMat3)
	for col := 0; col < 3; col++ {
		writeIndex := int(f.AlignedOffset) + col*16
		WriteF32SliceToByteBuf(ub.data, &writeIndex, val.Data[col][:])
	}
	ub.dirty = true
}

func (ub *UniformBuffer) SetMat4(fieldName string, val *gglm.Mat4) {
	f := ub.getField(fieldName, DataTypeMat4)
	writeIndex := int(f.AlignedOffset)
	for col := 0; col < 4; col++ {
		WriteF32SliceToByteBuf(ub.data, &writeIndex, val.Data[col][:])
	}
	ub.dirty = true
}

func (ub *UniformBuffer) GetFloat32(fieldName string) float32 {
	f := ub.getField(fieldName, DataTypeFloat32)
	return ReadF32FromByteBuf(ub.data, int(f.AlignedOffset))
}

func (ub *UniformBuffer) GetMat3(fieldName string) gglm.Mat3 {

	f := ub.getField(fieldName, DataTypeMat3)

	var m gglm.Mat3
	for col := 0; col < 3; col++ {
		for row := 0; row < 3; row++ {
			m.Data[col][row] = ReadF32FromByteBuf(ub.data, int(f.AlignedOffset)+col*16+row*4)
		}
	}

	return m
}

func (ub *UniformBuffer) GetMat4(fieldName string) gglm.Mat4 {

	f := ub.getField(fieldName, DataTypeMat4)

	var m gglm.Mat4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			m.Data[col][row] = ReadF32FromByteBuf(ub.data, int(f.AlignedOffset)+col*16+row*4)
		}
	}

	return m
}

func NewUniformBuffer(ctx gpu.Context, blockName string, fields []UniformBufferFieldInput) *UniformBuffer {

	ub := &UniformBuffer{
		Name: blockName,
	}

	ub.Fields, ub.Size = computeStd140Layout(fields)
	ub.data = make([]byte, ub.Size)

	ub.Id = ctx.CreateBuffer()
	ub.Bind(ctx)
	ctx.BufferData(gpu.BufferTarget_Uniform, make([]byte, ub.Size), gpu.BufUsage_Dynamic_Draw)
	ub.UnBind(ctx)

	return ub
}
