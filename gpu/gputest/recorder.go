// Package gputest provides a gpu.Context that records calls instead of talking
// to a driver, so the rest of nrend can be tested headless.
package gputest

import (
	"errors"

	"github.com/bloeys/nrend/gpu"
)

var _ gpu.Context = &Recorder{}

type Call struct {
	Op   string
	Args []any
}

type Recorder struct {
	Calls []Call

	// MissingBlocks makes UniformBlockBinding fail with gpu.ErrUniformBlockNotFound for these block names
	MissingBlocks map[string]bool
	// ProgramErr, when set, is returned by every CreateProgram call
	ProgramErr error

	// Buffers holds the latest contents of every buffer, by handle
	Buffers map[gpu.Handle][]byte
	// Programs holds the sources every live program was created from
	Programs map[gpu.Handle]map[gpu.ShaderType][]byte
	Textures map[gpu.Handle][]byte
	// Deleted counts deletions per handle so double frees are visible
	Deleted map[gpu.Handle]int
	// DrawnIndexBuffers holds the element array buffer bound at every DrawElements call
	DrawnIndexBuffers []gpu.Handle

	bound          map[gpu.BufferTarget]gpu.Handle
	enabledAttribs map[uint32]bool
	lastHandle     gpu.Handle
}

func (r *Recorder) record(op string, args ...any) {
	r.Calls = append(r.Calls, Call{Op: op, Args: args})
}

func (r *Recorder) newHandle() gpu.Handle {
	r.lastHandle++
	return r.lastHandle
}

// Count returns how many times op was called
func (r *Recorder) Count(op string) int {

	n := 0
	for i := 0; i < len(r.Calls); i++ {
		if r.Calls[i].Op == op {
			n++
		}
	}

	return n
}

// Last returns the most recent call of op
func (r *Recorder) Last(op string) (Call, bool) {

	for i := len(r.Calls) - 1; i >= 0; i-- {
		if r.Calls[i].Op == op {
			return r.Calls[i], true
		}
	}

	return Call{}, false
}

// ClearCalls forgets recorded calls but keeps buffer/program/texture state
func (r *Recorder) ClearCalls() {
	r.Calls = r.Calls[:0]
}

// Bound returns the buffer currently bound to target
func (r *Recorder) Bound(target gpu.BufferTarget) gpu.Handle {
	return r.bound[target]
}

func (r *Recorder) CreateBuffer() gpu.Handle {
	h := r.newHandle()
	r.Buffers[h] = nil
	r.record("CreateBuffer", h)
	return h
}

func (r *Recorder) DeleteBuffer(buf gpu.Handle) {
	delete(r.Buffers, buf)
	r.Deleted[buf]++
	r.record("DeleteBuffer", buf)
}

func (r *Recorder) BindBuffer(target gpu.BufferTarget, buf gpu.Handle) {
	r.bound[target] = buf
	r.record("BindBuffer", target, buf)
}

func (r *Recorder) BufferData(target gpu.BufferTarget, data []byte, usage gpu.BufUsage) {

	h := r.bound[target]
	r.Buffers[h] = append([]byte(nil), data...)
	r.record("BufferData", target, len(data), usage)
}

func (r *Recorder) BufferSubData(target gpu.BufferTarget, offset int, data []byte) {

	h := r.bound[target]
	buf := r.Buffers[h]
	if len(buf) < offset+len(data) {
		grown := make([]byte, offset+len(data))
		copy(grown, buf)
		buf = grown
	}

	copy(buf[offset:], data)
	r.Buffers[h] = buf
	r.record("BufferSubData", target, offset, len(data))
}

func (r *Recorder) BindBufferBase(target gpu.BufferTarget, bindPoint uint32, buf gpu.Handle) {
	r.bound[target] = buf
	r.record("BindBufferBase", target, bindPoint, buf)
}

// AttribEnabled reports whether attribute array index is currently enabled
func (r *Recorder) AttribEnabled(index uint32) bool {
	return r.enabledAttribs[index]
}

func (r *Recorder) EnableVertexAttribArray(index uint32) {
	r.enabledAttribs[index] = true
	r.record("EnableVertexAttribArray", index)
}

func (r *Recorder) DisableVertexAttribArray(index uint32) {
	delete(r.enabledAttribs, index)
	r.record("DisableVertexAttribArray", index)
}

func (r *Recorder) VertexAttribPointer(index uint32, compCount int32, typ gpu.AttribType, normalized bool, stride int32, offset int) {
	r.record("VertexAttribPointer", index, compCount, typ, normalized, stride, offset)
}

func (r *Recorder) CreateProgram(sources map[gpu.ShaderType][]byte) (gpu.Handle, error) {

	if r.ProgramErr != nil {
		return 0, r.ProgramErr
	}

	if len(sources) == 0 {
		return 0, errors.New("no shader sources")
	}

	h := r.newHandle()
	r.Programs[h] = sources
	r.record("CreateProgram", h)
	return h, nil
}

func (r *Recorder) DeleteProgram(prog gpu.Handle) {
	delete(r.Programs, prog)
	r.Deleted[prog]++
	r.record("DeleteProgram", prog)
}

func (r *Recorder) UseProgram(prog gpu.Handle) {
	r.record("UseProgram", prog)
}

func (r *Recorder) UniformBlockBinding(prog gpu.Handle, blockName string, bindPoint uint32) error {

	if r.MissingBlocks[blockName] {
		return gpu.ErrUniformBlockNotFound
	}

	r.record("UniformBlockBinding", prog, blockName, bindPoint)
	return nil
}

func (r *Recorder) SetUniformInt32(prog gpu.Handle, name string, val int32) {
	r.record("SetUniformInt32", prog, name, val)
}

func (r *Recorder) CreateTexture2D(width, height int32, rgba []byte, isSrgb bool) gpu.Handle {
	h := r.newHandle()
	r.Textures[h] = append([]byte(nil), rgba...)
	r.record("CreateTexture2D", h, width, height, isSrgb)
	return h
}

func (r *Recorder) DeleteTexture(tex gpu.Handle) {
	delete(r.Textures, tex)
	r.Deleted[tex]++
	r.record("DeleteTexture", tex)
}

func (r *Recorder) BindTexture(unit uint32, target gpu.TextureTarget, tex gpu.Handle) {
	r.record("BindTexture", unit, target, tex)
}

func (r *Recorder) DrawArrays(mode gpu.DrawMode, first, count int32) {
	r.record("DrawArrays", mode, first, count)
}

func (r *Recorder) DrawElements(mode gpu.DrawMode, count int32, typ gpu.IndexType, byteOffset int) {
	r.DrawnIndexBuffers = append(r.DrawnIndexBuffers, r.bound[gpu.BufferTarget_ElementArray])
	r.record("DrawElements", mode, count, typ, byteOffset)
}

func NewRecorder() *Recorder {
	return &Recorder{
		MissingBlocks:  map[string]bool{},
		Buffers:        map[gpu.Handle][]byte{},
		Programs:       map[gpu.Handle]map[gpu.ShaderType][]byte{},
		Textures:       map[gpu.Handle][]byte{},
		Deleted:        map[gpu.Handle]int{},
		bound:          map[gpu.BufferTarget]gpu.Handle{},
		enabledAttribs: map[uint32]bool{},
	}
}
