package buffers

import (
	"testing"

	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/nrend/gpu"
	"github.com/bloeys/nrend/gpu/gputest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStd140Layout(t *testing.T) {

	fields, size := computeStd140Layout([]UniformBufferFieldInput{
		{Name: "f32", Type: DataTypeFloat32},
		{Name: "v3", Type: DataTypeVec3},
		{Name: "afterV3", Type: DataTypeFloat32},
		{Name: "v2", Type: DataTypeVec2},
		{Name: "m3", Type: DataTypeMat3},
		{Name: "i32", Type: DataTypeInt32},
		{Name: "m4", Type: DataTypeMat4},
	})

	offsets := map[string]uint16{}
	for _, f := range fields {
		offsets[f.Name] = f.AlignedOffset
	}

	assert.Equal(t, uint16(0), offsets["f32"])
	assert.Equal(t, uint16(16), offsets["v3"])
	// A scalar packs into the tail of a vec3
	assert.Equal(t, uint16(28), offsets["afterV3"])
	assert.Equal(t, uint16(32), offsets["v2"])
	assert.Equal(t, uint16(48), offsets["m3"])
	assert.Equal(t, uint16(96), offsets["i32"])
	assert.Equal(t, uint16(112), offsets["m4"])
	assert.Equal(t, uint32(176), size)
}

func TestStd140LayoutPerModelBlock(t *testing.T) {

	fields, size := computeStd140Layout([]UniformBufferFieldInput{
		{Name: "model_view", Type: DataTypeMat4},
		{Name: "normal_view", Type: DataTypeMat3},
		{Name: "mvp", Type: DataTypeMat4},
	})

	require.Len(t, fields, 3)
	assert.Equal(t, uint16(0), fields[0].AlignedOffset)
	assert.Equal(t, uint16(64), fields[1].AlignedOffset)
	assert.Equal(t, uint16(112), fields[2].AlignedOffset)
	assert.Equal(t, uint32(176), size)
}

func TestUniformBufferSetAndUpdate(t *testing.T) {

	rec := gputest.NewRecorder()
	ub := NewUniformBuffer(rec, "ubo_test", []UniformBufferFieldInput{
		{Name: "scale", Type: DataTypeFloat32},
		{Name: "mat", Type: DataTypeMat4},
	})

	assert.Equal(t, uint32(80), ub.Size)
	assert.Len(t, rec.Buffers[ub.Id], 80)
	assert.False(t, ub.IsDirty())
	assert.False(t, ub.Update(rec), "clean buffers must not upload")

	m := gglm.NewMat4Diag(3)
	m.Data[3][0] = 7
	ub.SetFloat32("scale", 0.5)
	ub.SetMat4("mat", &m)
	assert.True(t, ub.IsDirty())

	rec.ClearCalls()
	assert.True(t, ub.Update(rec))
	assert.Equal(t, 1, rec.Count("BufferSubData"), "a dirty block is uploaded in exactly one call")
	assert.False(t, ub.IsDirty())

	assert.Equal(t, ub.Bytes(), rec.Buffers[ub.Id])
	assert.Equal(t, float32(0.5), ub.GetFloat32("scale"))
	assert.Equal(t, m, ub.GetMat4("mat"))
}

func TestUniformBufferMat3Padding(t *testing.T) {

	rec := gputest.NewRecorder()
	ub := NewUniformBuffer(rec, "ubo_test", []UniformBufferFieldInput{
		{Name: "normal", Type: DataTypeMat3},
	})

	m := gglm.Mat3{Data: [3][3]float32{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}}}
	ub.SetMat3("normal", &m)

	// Each column starts on a 16 byte boundary, the 4th float of every column is padding
	assert.Equal(t, float32(1), ReadF32FromByteBuf(ub.Bytes(), 0))
	assert.Equal(t, float32(3), ReadF32FromByteBuf(ub.Bytes(), 8))
	assert.Equal(t, float32(0), ReadF32FromByteBuf(ub.Bytes(), 12))
	assert.Equal(t, float32(4), ReadF32FromByteBuf(ub.Bytes(), 16))
	assert.Equal(t, float32(7), ReadF32FromByteBuf(ub.Bytes(), 32))
	assert.Equal(t, m, ub.GetMat3("normal"))
}

func TestUniformBufferWrongFieldPanics(t *testing.T) {

	rec := gputest.NewRecorder()
	ub := NewUniformBuffer(rec, "ubo_test", []UniformBufferFieldInput{
		{Name: "scale", Type: DataTypeFloat32},
	})

	assert.Panics(t, func() { ub.SetInt32("scale", 1) })
	assert.Panics(t, func() { ub.SetFloat32("missing", 1) })
}

func TestUniformBufferBinding(t *testing.T) {

	rec := gputest.NewRecorder()
	rec.MissingBlocks["ubo_other"] = true

	ub := NewUniformBuffer(rec, "ubo_test", []UniformBufferFieldInput{{Name: "scale", Type: DataTypeFloat32}})
	ub.SetBindPoint(rec, 3)

	c, ok := rec.Last("BindBufferBase")
	require.True(t, ok)
	assert.Equal(t, []any{gpu.BufferTarget_Uniform, uint32(3), ub.Id}, c.Args)

	require.NoError(t, ub.BindShader(rec, 42))
	c, ok = rec.Last("UniformBlockBinding")
	require.True(t, ok)
	assert.Equal(t, []any{gpu.Handle(42), "ubo_test", uint32(3)}, c.Args)

	other := NewUniformBuffer(rec, "ubo_other", []UniformBufferFieldInput{{Name: "scale", Type: DataTypeFloat32}})
	assert.ErrorIs(t, other.BindShader(rec, 42), gpu.ErrUniformBlockNotFound)

	ub.Delete(rec)
	assert.Equal(t, gpu.Handle(0), ub.Id)
}
