package materials

import (
	"github.com/bloeys/nrend/gpu"
	"github.com/bloeys/nrend/shaders"
)

var _ Material = &BasicMaterial{}

// BasicMaterial is an unlit material with a single optional albedo texture
type BasicMaterial struct {
	Id         uint32
	Name       string
	ShaderProg *shaders.ShaderProgram

	AlbedoTex gpu.Handle
	// EmptyTex is bound in place of a missing albedo texture so shaders never sample unit 0 unbound
	EmptyTex gpu.Handle
}

func (m *BasicMaterial) Activate(ctx gpu.Context) {
	bindTex2DOrDefault(ctx, TextureSlot_Diffuse, m.AlbedoTex, m.EmptyTex)
}

func (m *BasicMaterial) Shader() *shaders.ShaderProgram {
	return m.ShaderProg
}

func NewBasicMaterial(matName string, shaderProg *shaders.ShaderProgram, emptyTex gpu.Handle) *BasicMaterial {
	return &BasicMaterial{
		Id:         getNewMatId(),
		Name:       matName,
		ShaderProg: shaderProg,
		EmptyTex:   emptyTex,
	}
}
