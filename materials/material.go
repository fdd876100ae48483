package materials

import (
	"github.com/bloeys/nrend/gpu"
	"github.com/bloeys/nrend/shaders"
)

var (
	lastMatId uint32
)

type TextureSlot uint32

const (
	TextureSlot_Diffuse  TextureSlot = 0
	TextureSlot_Specular TextureSlot = 1
	TextureSlot_Normal   TextureSlot = 2
	TextureSlot_Emission TextureSlot = 3
	TextureSlot_Cubemap  TextureSlot = 10
)

// Material is anything that can prepare GPU state (textures, per material uniforms) for a draw.
//
// Activate must not bind the shader program. The renderer tracks program binds itself
// and compares Shader() by identity to skip redundant binds.
type Material interface {
	Activate(ctx gpu.Context)
	Shader() *shaders.ShaderProgram
}

func getNewMatId() uint32 {
	lastMatId++
	return lastMatId
}

func bindTex2DOrDefault(ctx gpu.Context, slot TextureSlot, tex, defaultTex gpu.Handle) {

	if tex == 0 {
		tex = defaultTex
	}

	ctx.BindTexture(uint32(slot), gpu.TextureTarget_2D, tex)
}
