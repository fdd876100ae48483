package meshes

import (
	"errors"

	"github.com/bloeys/nrend/buffers"
	"github.com/bloeys/nrend/gpu"
	"github.com/bloeys/nrend/logging"
)

// SubMesh is a draw range over its Mesh's buffers. It owns nothing; buffers are
// looked up through the owning Mesh so a destroyed Mesh can't be drawn by accident.
type SubMesh struct {
	MaterialIndex int
	Offset        int32
	Count         int32

	mesh  *Mesh
	index int
}

func (sm *SubMesh) Mesh() *Mesh {
	sm.mustBeAlive()
	return sm.mesh
}

// Index is the position of this SubMesh in Mesh.SubMeshes
func (sm *SubMesh) Index() int {
	return sm.index
}

func (sm *SubMesh) VertexBuffer() *buffers.VertexBuffer {
	sm.mustBeAlive()
	return sm.mesh.vbo
}

// IndexBuffer returns nil for non-indexed meshes
func (sm *SubMesh) IndexBuffer() *buffers.IndexBuffer {
	sm.mustBeAlive()
	return sm.mesh.ibo
}

func (sm *SubMesh) DrawMode() gpu.DrawMode {
	sm.mustBeAlive()
	return sm.mesh.DrawMode
}

func (sm *SubMesh) mustBeAlive() {
	if sm.mesh == nil || sm.mesh.destroyed {
		logging.ErrLog.Panicf("use after destroy: submesh %d of a destroyed mesh was used\n", sm.index)
	}
}

type Mesh struct {
	Name     string
	DrawMode gpu.DrawMode

	// SubMeshes keep their Geometry group order
	SubMeshes []SubMesh
	// Count is the sum of all SubMesh counts
	Count int32

	vbo       *buffers.VertexBuffer
	ibo       *buffers.IndexBuffer
	destroyed bool
}

func (m *Mesh) VertexBuffer() *buffers.VertexBuffer {
	m.mustBeAlive()
	return m.vbo
}

// IndexBuffer returns nil for non-indexed meshes
func (m *Mesh) IndexBuffer() *buffers.IndexBuffer {
	m.mustBeAlive()
	return m.ibo
}

func (m *Mesh) SetDrawMode(mode gpu.DrawMode) {
	m.DrawMode = mode
}

func (m *Mesh) IsDestroyed() bool {
	return m.destroyed
}

func (m *Mesh) mustBeAlive() {
	if m.destroyed {
		logging.ErrLog.Panicf("use after destroy: mesh '%s' was used after Destroy\n", m.Name)
	}
}

// Destroy releases the GPU buffers. The mesh and all its SubMeshes must not be used afterwards.
// Calling Destroy more than once does nothing.
func (m *Mesh) Destroy(ctx gpu.Context) {

	if m.destroyed {
		return
	}

	m.destroyed = true

	if m.ibo != nil {
		m.ibo.Delete(ctx)
	}

	m.vbo.Delete(ctx)
}

// NewMesh uploads the geometry into one vertex buffer (plus one index buffer if
// there are indices) and creates one SubMesh per geometry group, all sharing those buffers.
func NewMesh(ctx gpu.Context, name string, geom *Geometry) (*Mesh, error) {

	if len(geom.Layout) == 0 {
		return nil, errors.New("mesh '" + name + "' has no vertex layout")
	}

	if len(geom.Vertices) == 0 {
		return nil, errors.New("mesh '" + name + "' has no vertex data")
	}

	if geom.HasIndices() && geom.IndexWidth <= 0 {
		return nil, errors.New("mesh '" + name + "' has index data but no index width")
	}

	mesh := &Mesh{
		Name:      name,
		DrawMode:  gpu.DrawMode_Triangles,
		SubMeshes: make([]SubMesh, 0, len(geom.Groups)),
	}

	// The layout slice is owned by the buffer from here on
	layout := make([]buffers.Element, len(geom.Layout))
	copy(layout, geom.Layout)

	mesh.vbo = buffers.NewVertexBuffer(ctx, layout...)
	mesh.vbo.SetData(ctx, geom.Vertices, gpu.BufUsage_Static_Draw)

	if geom.HasIndices() {
		mesh.ibo = buffers.NewIndexBuffer(ctx, geom.Indices, geom.IndexWidth)
	}

	for i, g := range geom.Groups {

		mesh.Count += g.Count
		mesh.SubMeshes = append(mesh.SubMeshes, SubMesh{
			MaterialIndex: g.MaterialIndex,
			Offset:        g.Offset,
			Count:         g.Count,
			mesh:          mesh,
			index:         i,
		})
	}

	return mesh, nil
}
