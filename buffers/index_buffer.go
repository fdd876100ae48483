package buffers

import (
	"encoding/binary"

	"github.com/bloeys/nrend/assert"
	"github.com/bloeys/nrend/gpu"
)

type IndexBuffer struct {
	Id gpu.Handle
	// ElementWidth is the size in bytes of one index. Only 2 and 4 are drawable,
	// but other widths are stored as given and rejected at draw time.
	ElementWidth int
	// Count is the number of indices in the buffer. Updated in IndexBuffer.SetData
	Count int32
}

func (ib *IndexBuffer) Bind(ctx gpu.Context) {
	ctx.BindBuffer(gpu.BufferTarget_ElementArray, ib.Id)
}

func (ib *IndexBuffer) UnBind(ctx gpu.Context) {
	ctx.BindBuffer(gpu.BufferTarget_ElementArray, 0)
}

// SetData uploads raw little-endian index data where every index is elementWidth bytes.
// The upload goes through the copy-write target, so the element array binding
// (and anything caching it) is left untouched.
func (ib *IndexBuffer) SetData(ctx gpu.Context, data []byte, elementWidth int) {

	assert.T(elementWidth > 0, "Index buffer element width must be positive, but got %d", elementWidth)
	assert.T(len(data)%elementWidth == 0, "Index data of %d bytes is not a multiple of the element width=%d", len(data), elementWidth)

	ib.ElementWidth = elementWidth
	ib.Count = int32(len(data) / elementWidth)

	ctx.BindBuffer(gpu.BufferTarget_CopyWrite, ib.Id)
	ctx.BufferData(gpu.BufferTarget_CopyWrite, data, gpu.BufUsage_Static_Draw)
}

func (ib *IndexBuffer) Delete(ctx gpu.Context) {
	ctx.DeleteBuffer(ib.Id)
	ib.Id = 0
}

func NewIndexBuffer(ctx gpu.Context, data []byte, elementWidth int) *IndexBuffer {

	ib := &IndexBuffer{
		Id: ctx.CreateBuffer(),
	}

	ib.SetData(ctx, data, elementWidth)
	return ib
}

func NewIndexBuffer16(ctx gpu.Context, values []uint16) *IndexBuffer {
	return NewIndexBuffer(ctx, Uint16sToBytes(values), 2)
}

func NewIndexBuffer32(ctx gpu.Context, values []uint32) *IndexBuffer {
	return NewIndexBuffer(ctx, Uint32sToBytes(values), 4)
}

func Uint16sToBytes(values []uint16) []byte {

	buf := make([]byte, len(values)*2)
	for i := 0; i < len(values); i++ {
		binary.LittleEndian.PutUint16(buf[i*2:], values[i])
	}

	return buf
}

func Uint32sToBytes(values []uint32) []byte {

	buf := make([]byte, len(values)*4)
	for i := 0; i < len(values); i++ {
		binary.LittleEndian.PutUint32(buf[i*4:], values[i])
	}

	return buf
}
