// Package glgpu implements gpu.Context on top of OpenGL 4.1 core.
//
// gl.Init must have been called (engine.CreateOpenGLWindow does this) before
// creating a Context.
package glgpu

import (
	"github.com/bloeys/nrend/gpu"
	"github.com/bloeys/nrend/logging"
	"github.com/go-gl/gl/v4.1-core/gl"
)

var _ gpu.Context = &Context{}

type Context struct {
	// VaoId is the single vertex array object kept bound for the lifetime of the context.
	// Core profile refuses attribute setup without one, but nrend treats vertex buffer
	// binds as attribute setup (like WebGL), so one shared vao is all we need.
	VaoId uint32

	// enabledAttribs has bit i set when attribute array i is enabled on the vao
	enabledAttribs uint32
}

func (c *Context) CreateBuffer() gpu.Handle {

	var id uint32
	gl.GenBuffers(1, &id)
	if id == 0 {
		logging.ErrLog.Panicln("Failed to create OpenGL buffer")
	}

	return gpu.Handle(id)
}

func (c *Context) DeleteBuffer(buf gpu.Handle) {
	id := uint32(buf)
	gl.DeleteBuffers(1, &id)
}

func (c *Context) BindBuffer(target gpu.BufferTarget, buf gpu.Handle) {
	gl.BindBuffer(bufferTargetToGl(target), uint32(buf))
}

func (c *Context) BufferData(target gpu.BufferTarget, data []byte, usage gpu.BufUsage) {

	if len(data) == 0 {
		gl.BufferData(bufferTargetToGl(target), 0, gl.Ptr(nil), bufUsageToGl(usage))
		return
	}

	gl.BufferData(bufferTargetToGl(target), len(data), gl.Ptr(&data[0]), bufUsageToGl(usage))
}

func (c *Context) BufferSubData(target gpu.BufferTarget, offset int, data []byte) {

	if len(data) == 0 {
		return
	}

	gl.BufferSubData(bufferTargetToGl(target), offset, len(data), gl.Ptr(&data[0]))
}

func (c *Context) BindBufferBase(target gpu.BufferTarget, bindPoint uint32, buf gpu.Handle) {
	gl.BindBufferBase(bufferTargetToGl(target), bindPoint, uint32(buf))
}

func (c *Context) EnableVertexAttribArray(index uint32) {

	bit := uint32(1) << index
	if c.enabledAttribs&bit != 0 {
		return
	}

	gl.EnableVertexAttribArray(index)
	c.enabledAttribs |= bit
}

func (c *Context) DisableVertexAttribArray(index uint32) {

	bit := uint32(1) << index
	if c.enabledAttribs&bit == 0 {
		return
	}

	gl.DisableVertexAttribArray(index)
	c.enabledAttribs &^= bit
}

func (c *Context) VertexAttribPointer(index uint32, compCount int32, typ gpu.AttribType, normalized bool, stride int32, offset int) {

	// Integer attributes must go through the 'I' variant or the driver converts them to floats
	if typ == gpu.AttribType_Int32 || typ == gpu.AttribType_Uint32 {
		gl.VertexAttribIPointer(index, compCount, attribTypeToGl(typ), stride, gl.PtrOffset(offset))
		return
	}

	gl.VertexAttribPointerWithOffset(index, compCount, attribTypeToGl(typ), normalized, stride, uintptr(offset))
}

func (c *Context) DeleteProgram(prog gpu.Handle) {
	gl.DeleteProgram(uint32(prog))
}

func (c *Context) UseProgram(prog gpu.Handle) {
	gl.UseProgram(uint32(prog))
}

func (c *Context) UniformBlockBinding(prog gpu.Handle, blockName string, bindPoint uint32) error {

	nullStr := gl.Str(blockName + "\x00")
	index := gl.GetUniformBlockIndex(uint32(prog), nullStr)
	if index == gl.INVALID_INDEX {
		return gpu.ErrUniformBlockNotFound
	}

	gl.UniformBlockBinding(uint32(prog), index, bindPoint)
	return nil
}

func (c *Context) SetUniformInt32(prog gpu.Handle, name string, val int32) {

	loc := gl.GetUniformLocation(uint32(prog), gl.Str(name+"\x00"))
	if loc == -1 {
		return
	}

	gl.ProgramUniform1i(uint32(prog), loc, val)
}

func (c *Context) CreateTexture2D(width, height int32, rgba []byte, isSrgb bool) gpu.Handle {

	var id uint32
	gl.GenTextures(1, &id)
	if id == 0 {
		logging.ErrLog.Panicln("Failed to create OpenGL texture")
	}

	gl.BindTexture(gl.TEXTURE_2D, id)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)

	internalFormat := int32(gl.RGBA8)
	if isSrgb {
		internalFormat = gl.SRGB8_ALPHA8
	}

	var pixels = gl.Ptr(nil)
	if len(rgba) > 0 {
		pixels = gl.Ptr(&rgba[0])
	}

	gl.TexImage2D(gl.TEXTURE_2D, 0, internalFormat, width, height, 0, gl.RGBA, gl.UNSIGNED_BYTE, pixels)
	gl.GenerateMipmap(gl.TEXTURE_2D)

	return gpu.Handle(id)
}

func (c *Context) DeleteTexture(tex gpu.Handle) {
	id := uint32(tex)
	gl.DeleteTextures(1, &id)
}

func (c *Context) BindTexture(unit uint32, target gpu.TextureTarget, tex gpu.Handle) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(textureTargetToGl(target), uint32(tex))
}

func (c *Context) DrawArrays(mode gpu.DrawMode, first, count int32) {
	gl.DrawArrays(drawModeToGl(mode), first, count)
}

func (c *Context) DrawElements(mode gpu.DrawMode, count int32, typ gpu.IndexType, byteOffset int) {
	gl.DrawElementsWithOffset(drawModeToGl(mode), count, indexTypeToGl(typ), uintptr(byteOffset))
}

func (c *Context) Delete() {
	gl.BindVertexArray(0)
	gl.DeleteVertexArrays(1, &c.VaoId)
	c.VaoId = 0
}

func New() *Context {

	c := &Context{}

	gl.GenVertexArrays(1, &c.VaoId)
	if c.VaoId == 0 {
		logging.ErrLog.Panicln("Failed to create OpenGL vertex array object")
	}

	gl.BindVertexArray(c.VaoId)
	return c
}
