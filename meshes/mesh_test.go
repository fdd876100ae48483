package meshes

import (
	"testing"

	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/nrend/buffers"
	"github.com/bloeys/nrend/gpu"
	"github.com/bloeys/nrend/gpu/gputest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quadGeometry(groups ...Group) *Geometry {

	g := &Geometry{
		Vertices: []float32{
			-1, -1, 0,
			1, -1, 0,
			1, 1, 0,
			-1, 1, 0,
		},
		Layout: []buffers.Element{{ElementType: buffers.DataTypeVec3}},
		Groups: groups,
	}

	g.SetIndices16([]uint16{0, 1, 2, 2, 3, 0})
	return g
}

func TestNewMeshTwoGroups(t *testing.T) {

	rec := gputest.NewRecorder()
	mesh, err := NewMesh(rec, "twoGroups", quadGeometry(
		Group{MaterialIndex: 0, Offset: 0, Count: 300},
		Group{MaterialIndex: 1, Offset: 300, Count: 150},
	))
	require.NoError(t, err)

	assert.Equal(t, int32(450), mesh.Count)
	require.Len(t, mesh.SubMeshes, 2)

	sm0, sm1 := &mesh.SubMeshes[0], &mesh.SubMeshes[1]
	assert.Equal(t, 0, sm0.MaterialIndex)
	assert.Equal(t, int32(300), sm0.Count)
	assert.Equal(t, 1, sm1.MaterialIndex)
	assert.Equal(t, int32(300), sm1.Offset)
	assert.Equal(t, 1, sm1.Index())

	// One vertex buffer and one index buffer, shared by every submesh
	assert.Equal(t, 2, rec.Count("CreateBuffer"))
	assert.Same(t, sm0.VertexBuffer(), sm1.VertexBuffer())
	assert.Same(t, mesh.VertexBuffer(), sm0.VertexBuffer())
	assert.Same(t, sm0.IndexBuffer(), sm1.IndexBuffer())
	assert.Same(t, mesh, sm1.Mesh())

	assert.Equal(t, 2, mesh.IndexBuffer().ElementWidth)
	assert.Equal(t, int32(6), mesh.IndexBuffer().Count)
	assert.Equal(t, int32(4), mesh.VertexBuffer().VertexCount)
	assert.Equal(t, gpu.DrawMode_Triangles, sm0.DrawMode())
}

func TestMeshCountIsSumOfSubMeshes(t *testing.T) {

	groupSets := [][]Group{
		nil,
		{{Count: 6}},
		{{Count: 3}, {Offset: 3, Count: 3, MaterialIndex: 2}},
		{{Count: 0}, {Count: 10}, {Count: 7}, {Count: 1}},
	}

	for _, groups := range groupSets {

		mesh, err := NewMesh(gputest.NewRecorder(), "m", quadGeometry(groups...))
		require.NoError(t, err)

		var sum int32
		for i := range mesh.SubMeshes {
			sum += mesh.SubMeshes[i].Count
		}

		assert.Equal(t, sum, mesh.Count)
		assert.Len(t, mesh.SubMeshes, len(groups))
	}
}

func TestNewMeshWithoutIndices(t *testing.T) {

	rec := gputest.NewRecorder()
	geom := quadGeometry(Group{Count: 4})
	geom.Indices = nil

	mesh, err := NewMesh(rec, "arrays", geom)
	require.NoError(t, err)

	assert.Nil(t, mesh.IndexBuffer())
	assert.Nil(t, mesh.SubMeshes[0].IndexBuffer())
	assert.Equal(t, 1, rec.Count("CreateBuffer"))

	mesh.SetDrawMode(gpu.DrawMode_TriangleFan)
	assert.Equal(t, gpu.DrawMode_TriangleFan, mesh.SubMeshes[0].DrawMode())
}

func TestNewMeshErrors(t *testing.T) {

	rec := gputest.NewRecorder()

	noLayout := quadGeometry()
	noLayout.Layout = nil
	_, err := NewMesh(rec, "noLayout", noLayout)
	assert.Error(t, err)

	noVerts := quadGeometry()
	noVerts.Vertices = nil
	_, err = NewMesh(rec, "noVerts", noVerts)
	assert.Error(t, err)

	noWidth := quadGeometry()
	noWidth.IndexWidth = 0
	_, err = NewMesh(rec, "noWidth", noWidth)
	assert.Error(t, err)
}

func TestMeshDestroy(t *testing.T) {

	rec := gputest.NewRecorder()
	mesh, err := NewMesh(rec, "doomed", quadGeometry(Group{Count: 3}, Group{Offset: 3, Count: 3}))
	require.NoError(t, err)

	vbId := mesh.VertexBuffer().Id
	ibId := mesh.IndexBuffer().Id
	sm := mesh.SubMeshes[1]

	mesh.Destroy(rec)
	mesh.Destroy(rec)

	assert.True(t, mesh.IsDestroyed())
	assert.Equal(t, 1, rec.Deleted[vbId])
	assert.Equal(t, 1, rec.Deleted[ibId])

	assert.Panics(t, func() { mesh.VertexBuffer() })
	assert.Panics(t, func() { sm.VertexBuffer() })
	assert.Panics(t, func() { mesh.SubMeshes[0].IndexBuffer() })
}

func TestInterleave(t *testing.T) {

	out := interleave(
		arrToInterleave{V3s: []gglm.Vec3{gglm.NewVec3(1, 2, 3), gglm.NewVec3(4, 5, 6)}},
		arrToInterleave{V2s: []gglm.Vec2{{Data: [2]float32{7, 8}}, {Data: [2]float32{9, 10}}}},
	)

	assert.Equal(t, []float32{1, 2, 3, 7, 8, 4, 5, 6, 9, 10}, out)
	assert.Equal(t, []gglm.Vec2{{Data: [2]float32{1, 2}}}, v3sToV2s([]gglm.Vec3{gglm.NewVec3(1, 2, 3)}))

	assert.NoError(t, checkLayoutsMatch(
		[]buffers.Element{{ElementType: buffers.DataTypeVec3}},
		[]buffers.Element{{ElementType: buffers.DataTypeVec3}},
	))
	assert.Error(t, checkLayoutsMatch(
		[]buffers.Element{{ElementType: buffers.DataTypeVec3}},
		[]buffers.Element{{ElementType: buffers.DataTypeVec4}},
	))
}
