package buffers

import (
	"github.com/bloeys/nrend/assert"
	"github.com/bloeys/nrend/gpu"
)

// VertexBuffer is an interleaved vertex buffer plus the attribute layout describing it.
// Binding it binds the buffer and sets up every attribute in the layout, in order,
// at attribute locations 0..len(layout)-1. Attributes past the layout are disabled.
type VertexBuffer struct {
	Id     gpu.Handle
	Stride int32
	// VertexCount is derived from the data size and stride. Updated in VertexBuffer.SetData
	VertexCount int32
	layout      []Element
}

func (vb *VertexBuffer) Bind(ctx gpu.Context) {

	ctx.BindBuffer(gpu.BufferTarget_Array, vb.Id)

	for i := 0; i < len(vb.layout); i++ {

		l := &vb.layout[i]

		ctx.EnableVertexAttribArray(uint32(i))
		ctx.VertexAttribPointer(uint32(i), l.ElementType.CompCount(), l.ElementType.AttribType(), false, vb.Stride, l.Offset)
	}

	for i := len(vb.layout); i < gpu.MaxVertexAttribs; i++ {
		ctx.DisableVertexAttribArray(uint32(i))
	}
}

func (vb *VertexBuffer) UnBind(ctx gpu.Context) {
	ctx.BindBuffer(gpu.BufferTarget_Array, 0)
}

func (vb *VertexBuffer) SetData(ctx gpu.Context, values []float32, usage gpu.BufUsage) {

	assert.T(vb.Stride == 0 || (len(values)*4)%int(vb.Stride) == 0, "Vertex data of %d bytes is not a multiple of the vertex stride=%d", len(values)*4, vb.Stride)

	buf := make([]byte, len(values)*4)
	writeIndex := 0
	WriteF32SliceToByteBuf(buf, &writeIndex, values)

	if vb.Stride > 0 {
		vb.VertexCount = int32(len(buf)) / vb.Stride
	}

	ctx.BindBuffer(gpu.BufferTarget_Array, vb.Id)
	ctx.BufferData(gpu.BufferTarget_Array, buf, usage)
}

func (vb *VertexBuffer) GetLayout() []Element {
	e := make([]Element, len(vb.layout))
	copy(e, vb.layout)
	return e
}

func (vb *VertexBuffer) SetLayout(layout ...Element) {

	assert.T(len(layout) <= gpu.MaxVertexAttribs, "Vertex layout has %d elements but at most %d are supported", len(layout), gpu.MaxVertexAttribs)

	vb.Stride = 0
	vb.layout = layout

	for i := 0; i < len(vb.layout); i++ {

		vb.layout[i].Offset = int(vb.Stride)
		vb.Stride += vb.layout[i].Size()
	}
}

func (vb *VertexBuffer) Delete(ctx gpu.Context) {
	ctx.DeleteBuffer(vb.Id)
	vb.Id = 0
}

func NewVertexBuffer(ctx gpu.Context, layout ...Element) *VertexBuffer {

	vb := &VertexBuffer{
		Id: ctx.CreateBuffer(),
	}

	vb.SetLayout(layout...)
	return vb
}
