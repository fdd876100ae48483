package renderer

import (
	_ "embed"
	"errors"

	"github.com/bloeys/nrend/gpu"
	"github.com/bloeys/nrend/materials"
	"github.com/bloeys/nrend/shaders"
)

var (
	//go:embed shaders/basic.glsl
	basicShaderSrc []byte

	//go:embed shaders/pbr.glsl
	pbrShaderSrc []byte

	//go:embed shaders/grid.glsl
	gridShaderSrc []byte

	//go:embed shaders/normals.glsl
	normalsShaderSrc []byte
)

// Registry is the set of built-in shaders and textures shared by every Renderer created with it.
// Nil programs are allowed, e.g. in tests that only need one shader.
type Registry struct {
	Basic      *shaders.ShaderProgram
	PBR        *shaders.ShaderProgram
	Grid       *shaders.ShaderProgram
	NormalOnly *shaders.ShaderProgram

	// EmptyTexture is a 1x1 white texture bound in place of missing material textures
	EmptyTexture gpu.Handle
}

// Shaders returns every non-nil program in the registry
func (r *Registry) Shaders() []*shaders.ShaderProgram {

	all := [...]*shaders.ShaderProgram{r.Basic, r.PBR, r.Grid, r.NormalOnly}

	out := make([]*shaders.ShaderProgram, 0, len(all))
	for _, s := range all {
		if s != nil {
			out = append(out, s)
		}
	}

	return out
}

func (r *Registry) Delete(ctx gpu.Context) {

	for _, s := range r.Shaders() {
		s.Delete(ctx)
	}

	if r.EmptyTexture != 0 {
		ctx.DeleteTexture(r.EmptyTexture)
		r.EmptyTexture = 0
	}

	r.Basic = nil
	r.PBR = nil
	r.Grid = nil
	r.NormalOnly = nil
}

// NewRegistry compiles the built-in shaders and creates the empty texture.
// On failure anything already created is released.
func NewRegistry(ctx gpu.Context) (*Registry, error) {

	reg := &Registry{
		EmptyTexture: ctx.CreateTexture2D(1, 1, []byte{255, 255, 255, 255}, false),
	}

	var err error
	compile := func(name string, src []byte) *shaders.ShaderProgram {

		if err != nil {
			return nil
		}

		var prog *shaders.ShaderProgram
		prog, err = shaders.LoadAndCompileCombinedShaderSrc(ctx, name, src)
		return prog
	}

	reg.Basic = compile("basic", basicShaderSrc)
	reg.PBR = compile("pbr", pbrShaderSrc)
	reg.Grid = compile("grid", gridShaderSrc)
	reg.NormalOnly = compile("normals", normalsShaderSrc)
	if err != nil {
		reg.Delete(ctx)
		return nil, errors.New("failed to create shader registry. Err: " + err.Error())
	}

	ctx.SetUniformInt32(reg.Basic.Id, "material.diffuse", int32(materials.TextureSlot_Diffuse))

	ctx.SetUniformInt32(reg.PBR.Id, "material.diffuse", int32(materials.TextureSlot_Diffuse))
	ctx.SetUniformInt32(reg.PBR.Id, "material.specular", int32(materials.TextureSlot_Specular))
	ctx.SetUniformInt32(reg.PBR.Id, "material.normal", int32(materials.TextureSlot_Normal))
	ctx.SetUniformInt32(reg.PBR.Id, "material.emission", int32(materials.TextureSlot_Emission))

	return reg, nil
}
