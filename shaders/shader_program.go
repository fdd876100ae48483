package shaders

import (
	"github.com/bloeys/nrend/gpu"
)

// ShaderProgram is a linked program. Programs are compared by pointer identity
// to detect shader changes, so they should be created once and shared.
type ShaderProgram struct {
	Id   gpu.Handle
	Name string
}

func (sp *ShaderProgram) Bind(ctx gpu.Context) {
	ctx.UseProgram(sp.Id)
}

func (sp *ShaderProgram) UnBind(ctx gpu.Context) {
	ctx.UseProgram(0)
}

func (sp *ShaderProgram) Delete(ctx gpu.Context) {
	ctx.DeleteProgram(sp.Id)
	sp.Id = 0
}
