package renderer

import (
	"errors"
	"fmt"

	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/nrend/assert"
	"github.com/bloeys/nrend/buffers"
	"github.com/bloeys/nrend/gpu"
	"github.com/bloeys/nrend/logging"
	"github.com/bloeys/nrend/materials"
	"github.com/bloeys/nrend/meshes"
	"github.com/bloeys/nrend/shaders"
)

// Uniform blocks every shader can declare to receive camera and model data.
// Field order and types must match the GLSL std140 declarations exactly:
//
//	layout(std140) uniform ubo_per_frame { mat4 view; mat4 projection; mat4 view_projection; };
//	layout(std140) uniform ubo_per_model { mat4 model_view; mat3 normal_view; mat4 mvp; };
const (
	PerFrameBlockName = "ubo_per_frame"
	PerFrameBindPoint = 0

	PerModelBlockName = "ubo_per_model"
	PerModelBindPoint = 1
)

var (
	perFrameFields = []buffers.UniformBufferFieldInput{
		{Name: "view", Type: buffers.DataTypeMat4},
		{Name: "projection", Type: buffers.DataTypeMat4},
		{Name: "view_projection", Type: buffers.DataTypeMat4},
	}

	perModelFields = []buffers.UniformBufferFieldInput{
		{Name: "model_view", Type: buffers.DataTypeMat4},
		{Name: "normal_view", Type: buffers.DataTypeMat3},
		{Name: "mvp", Type: buffers.DataTypeMat4},
	}
)

type Render interface {
	BeginFrame()
	SetPerFrameUniforms(view, proj *gglm.Mat4)
	SetPerModelUniforms(model, view, proj *gglm.Mat4) error
	Draw(mode gpu.DrawMode, count, offset int32, ib *buffers.IndexBuffer, vb *buffers.VertexBuffer, mat materials.Material) error
	DrawSubMesh(sm *meshes.SubMesh, mat materials.Material) error
	DrawMesh(mesh *meshes.Mesh, model, view, proj *gglm.Mat4, mats []materials.Material) error
	ResetStats()
	Stats() Stats
}

var _ Render = &Renderer{}

// Renderer issues draws while skipping binds of whatever it knows is already bound.
// It must only be used from the render thread.
//
// The cache only sees binds done through the Renderer. After anything else binds
// programs or buffers (e.g. creating or uploading a mesh) call Invalidate.
type Renderer struct {
	ctx gpu.Context
	reg *Registry

	perFrame *buffers.UniformBuffer
	perModel *buffers.UniformBuffer

	stats Stats

	curShader   *shaders.ShaderProgram
	curMaterial materials.Material
	curVB       *buffers.VertexBuffer
	curIB       *buffers.IndexBuffer

	// Scratch matrices, reused every call
	viewProj   gglm.Mat4
	modelView  gglm.Mat4
	mvp        gglm.Mat4
	normalView gglm.Mat3
}

// Registry returns the registry the renderer was created with
func (r *Renderer) Registry() *Registry {
	return r.reg
}

// BindShader points the shader's per-frame and per-model blocks at their binding slots.
// Shaders missing a block only get a warning, as some shaders legitimately skip one.
func (r *Renderer) BindShader(prog *shaders.ShaderProgram) error {

	for _, ub := range [...]*buffers.UniformBuffer{r.perFrame, r.perModel} {

		err := ub.BindShader(r.ctx, prog.Id)
		if err == nil {
			continue
		}

		if !errors.Is(err, gpu.ErrUniformBlockNotFound) {
			return fmt.Errorf("binding block '%s' of shader '%s': %w", ub.Name, prog.Name, err)
		}

		logging.WarnLog.Printf("Shader '%s' does not use uniform block '%s'\n", prog.Name, ub.Name)
	}

	return nil
}

// BeginFrame resets the stats and forces the next draw to activate its material
func (r *Renderer) BeginFrame() {
	r.ResetStats()
}

func (r *Renderer) SetPerFrameUniforms(view, proj *gglm.Mat4) {

	r.viewProj = *proj
	r.viewProj.Mul(view)

	r.perFrame.SetMat4("view", view)
	r.perFrame.SetMat4("projection", proj)
	r.perFrame.SetMat4("view_projection", &r.viewProj)

	if r.perFrame.Update(r.ctx) {
		r.stats.UniformUploads++
	}
}

// SetPerModelUniforms uploads the matrices for the next draws. It must be called before
// every draw (or batch of draws) with different model matrices.
//
// If the model-view matrix can't be inverted the normal matrix is set to identity,
// everything is still uploaded, and an error wrapping ErrDegenerateTransform is returned.
func (r *Renderer) SetPerModelUniforms(model, view, proj *gglm.Mat4) error {

	r.modelView = *view
	r.modelView.Mul(model)

	var err error
	if !normalMatFromMat4(&r.normalView, &r.modelView) {
		r.normalView = gglm.NewMat3Diag(1)
		r.stats.DegenerateTransforms++
		err = fmt.Errorf("%w: model-view upper 3x3 is not invertible", ErrDegenerateTransform)
	}

	r.mvp = *proj
	r.mvp.Mul(&r.modelView)

	r.perModel.SetMat4("model_view", &r.modelView)
	r.perModel.SetMat3("normal_view", &r.normalView)
	r.perModel.SetMat4("mvp", &r.mvp)

	if r.perModel.Update(r.ctx) {
		r.stats.UniformUploads++
	}

	return err
}

// Draw draws count elements starting at element offset, binding only what changed since the last draw.
// With an index buffer offset and count are in indices, otherwise in vertices.
//
// Index buffers with an element width other than 2 or 4 return ErrUnsupportedIndexFormat
// before anything is bound or drawn.
func (r *Renderer) Draw(mode gpu.DrawMode, count, offset int32, ib *buffers.IndexBuffer, vb *buffers.VertexBuffer, mat materials.Material) error {

	assert.T(count >= 0 && offset >= 0, "Draw called with a negative count=%d or offset=%d", count, offset)
	assert.T(vb != nil, "Draw called with a nil vertex buffer")
	assert.T(mat != nil, "Draw called with a nil material")
	assert.T(mat.Shader() != nil, "Draw called with a material of type %T that has no shader", mat)

	indexType := gpu.IndexType_Unknown
	if ib != nil {

		switch ib.ElementWidth {
		case 2:
			indexType = gpu.IndexType_Uint16
		case 4:
			indexType = gpu.IndexType_Uint32
		default:
			return fmt.Errorf("%w: index width of %d bytes, only 2 and 4 are supported", ErrUnsupportedIndexFormat, ib.ElementWidth)
		}
	}

	shader := mat.Shader()
	if shader != r.curShader {
		shader.Bind(r.ctx)
		r.curShader = shader
		r.stats.ShaderBinds++
	}

	if mat != r.curMaterial {
		mat.Activate(r.ctx)
		r.curMaterial = mat
		r.stats.MaterialBinds++
	}

	if vb != r.curVB {
		vb.Bind(r.ctx)
		r.curVB = vb
		r.stats.VertexBufferBinds++
	}

	if ib != nil && ib != r.curIB {
		ib.Bind(r.ctx)
		r.curIB = ib
		r.stats.IndexBufferBinds++
	}

	if ib != nil {
		r.ctx.DrawElements(mode, count, indexType, int(offset)*ib.ElementWidth)
		r.stats.IndexedElements += uint64(count)
	} else {
		r.ctx.DrawArrays(mode, offset, count)
		r.stats.VertexElements += uint64(count)
	}

	r.stats.DrawCalls++
	return nil
}

func (r *Renderer) DrawSubMesh(sm *meshes.SubMesh, mat materials.Material) error {
	return r.Draw(sm.DrawMode(), sm.Count, sm.Offset, sm.IndexBuffer(), sm.VertexBuffer(), mat)
}

// DrawMesh uploads the model matrices once then draws every submesh with mats[submesh.MaterialIndex].
// Submeshes without a material are skipped. A degenerate transform is reported but still drawn.
func (r *Renderer) DrawMesh(mesh *meshes.Mesh, model, view, proj *gglm.Mat4, mats []materials.Material) error {

	var errs []error
	if err := r.SetPerModelUniforms(model, view, proj); err != nil {
		errs = append(errs, err)
	}

	for i := 0; i < len(mesh.SubMeshes); i++ {

		sm := &mesh.SubMeshes[i]
		if sm.MaterialIndex < 0 || sm.MaterialIndex >= len(mats) || mats[sm.MaterialIndex] == nil {
			errs = append(errs, fmt.Errorf("%w: mesh '%s' submesh %d wants material %d", ErrMissingMaterial, mesh.Name, i, sm.MaterialIndex))
			continue
		}

		if err := r.DrawSubMesh(sm, mats[sm.MaterialIndex]); err != nil {
			errs = append(errs, fmt.Errorf("mesh '%s' submesh %d: %w", mesh.Name, i, err))
		}
	}

	return errors.Join(errs...)
}

// ResetStats zeroes the stats and clears the cached material so the next draw activates it again
func (r *Renderer) ResetStats() {
	r.stats.Reset()
	r.curMaterial = nil
}

func (r *Renderer) Stats() Stats {
	return r.stats
}

// Invalidate forgets every cached binding, so the next draw binds everything
func (r *Renderer) Invalidate() {
	r.curShader = nil
	r.curMaterial = nil
	r.curVB = nil
	r.curIB = nil
}

// Delete releases the uniform buffers. The registry is not owned by the renderer and is left alone.
func (r *Renderer) Delete() {
	r.perFrame.Delete(r.ctx)
	r.perModel.Delete(r.ctx)
	r.Invalidate()
}

// New creates the per-frame and per-model uniform blocks, attaches them to their
// binding slots and binds them to every shader in the registry.
func New(ctx gpu.Context, reg *Registry) (*Renderer, error) {

	assert.T(reg != nil, "Renderer needs a non-nil registry")

	r := &Renderer{
		ctx:      ctx,
		reg:      reg,
		perFrame: buffers.NewUniformBuffer(ctx, PerFrameBlockName, perFrameFields),
		perModel: buffers.NewUniformBuffer(ctx, PerModelBlockName, perModelFields),
	}

	r.perFrame.SetBindPoint(ctx, PerFrameBindPoint)
	r.perModel.SetBindPoint(ctx, PerModelBindPoint)

	for _, prog := range reg.Shaders() {
		if err := r.BindShader(prog); err != nil {
			r.Delete()
			return nil, err
		}
	}

	return r, nil
}
