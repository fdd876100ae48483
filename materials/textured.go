package materials

import (
	"github.com/bloeys/nrend/gpu"
	"github.com/bloeys/nrend/shaders"
)

var _ Material = &TexturedMaterial{}

// TexturedMaterial binds the usual diffuse/specular/normal/emission set.
// Unset 2D textures fall back to EmptyTex.
type TexturedMaterial struct {
	Id         uint32
	Name       string
	ShaderProg *shaders.ShaderProgram

	DiffuseTex  gpu.Handle
	SpecularTex gpu.Handle
	NormalTex   gpu.Handle
	EmissionTex gpu.Handle

	// Optional
	CubemapTex gpu.Handle

	EmptyTex gpu.Handle
}

func (m *TexturedMaterial) Activate(ctx gpu.Context) {

	bindTex2DOrDefault(ctx, TextureSlot_Diffuse, m.DiffuseTex, m.EmptyTex)
	bindTex2DOrDefault(ctx, TextureSlot_Specular, m.SpecularTex, m.EmptyTex)
	bindTex2DOrDefault(ctx, TextureSlot_Normal, m.NormalTex, m.EmptyTex)
	bindTex2DOrDefault(ctx, TextureSlot_Emission, m.EmissionTex, m.EmptyTex)

	if m.CubemapTex != 0 {
		ctx.BindTexture(uint32(TextureSlot_Cubemap), gpu.TextureTarget_CubeMap, m.CubemapTex)
	}
}

func (m *TexturedMaterial) Shader() *shaders.ShaderProgram {
	return m.ShaderProg
}

func NewTexturedMaterial(matName string, shaderProg *shaders.ShaderProgram, emptyTex gpu.Handle) *TexturedMaterial {
	return &TexturedMaterial{
		Id:         getNewMatId(),
		Name:       matName,
		ShaderProg: shaderProg,
		EmptyTex:   emptyTex,
	}
}
