package buffers

import (
	"math"

	"github.com/bloeys/nrend/assert"
)

// All writers are little-endian, matching what GPUs expect for uniform and vertex data

func Write32BitIntegerToByteBuf[T uint32 | int32](buf []byte, startIndex *int, val T) {

	assert.T(*startIndex+4 <= len(buf), "failed to write uint32/int32 to buffer because the buffer doesn't have enough space. Start index=%d, Buffer length=%d", *startIndex, len(buf))

	buf[*startIndex] = byte(val)
	buf[*startIndex+1] = byte(val >> 8)
	buf[*startIndex+2] = byte(val >> 16)
	buf[*startIndex+3] = byte(val >> 24)

	*startIndex += 4
}

func WriteF32ToByteBuf(buf []byte, startIndex *int, val float32) {

	assert.T(*startIndex+4 <= len(buf), "failed to write float32 to buffer because the buffer doesn't have enough space. Start index=%d, Buffer length=%d", *startIndex, len(buf))

	bits := math.Float32bits(val)

	buf[*startIndex] = byte(bits)
	buf[*startIndex+1] = byte(bits >> 8)
	buf[*startIndex+2] = byte(bits >> 16)
	buf[*startIndex+3] = byte(bits >> 24)

	*startIndex += 4
}

func WriteF32SliceToByteBuf(buf []byte, startIndex *int, vals []float32) {

	assert.T(*startIndex+len(vals)*4 <= len(buf), "failed to write slice of float32 to buffer because the buffer doesn't have enough space. Start index=%d, Buffer length=%d, but needs %d bytes free", *startIndex, len(buf), len(vals)*4)

	for i := 0; i < len(vals); i++ {

		bits := math.Float32bits(vals[i])

		buf[*startIndex] = byte(bits)
		buf[*startIndex+1] = byte(bits >> 8)
		buf[*startIndex+2] = byte(bits >> 16)
		buf[*startIndex+3] = byte(bits >> 24)

		*startIndex += 4
	}
}

func ReadF32FromByteBuf(buf []byte, startIndex int) float32 {

	assert.T(startIndex+4 <= len(buf), "failed to read float32 from buffer because it is out of bounds. Start index=%d, Buffer length=%d", startIndex, len(buf))

	bits := uint32(buf[startIndex]) |
		uint32(buf[startIndex+1])<<8 |
		uint32(buf[startIndex+2])<<16 |
		uint32(buf[startIndex+3])<<24

	return math.Float32frombits(bits)
}
