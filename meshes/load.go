package meshes

import (
	"errors"
	"strconv"

	"github.com/bloeys/assimp-go/asig"
	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/nrend/assert"
	"github.com/bloeys/nrend/buffers"
)

var (
	// DefaultMeshLoadFlags are the flags always applied when loading a new mesh regardless
	// of what post process flags are used when loading a mesh.
	//
	// Defaults to: asig.PostProcessTriangulate | asig.PostProcessCalcTangentSpace;
	// Note: changing this will break the lit shaders, which expect tangents to be there
	DefaultMeshLoadFlags asig.PostProcess = asig.PostProcessTriangulate | asig.PostProcessCalcTangentSpace
)

/*
LoadGeometry imports a model file into a single Geometry, where every mesh in the file becomes
one Group whose MaterialIndex is the position of that mesh in the file.

Vertices have the following shader attribute layout:
  - Loc0: Pos
  - Loc1: Normal
  - Loc2: Tangent
  - Loc3: UV0
  - (Optional) Loc4: Color

Indices are always 32-bit and already offset so that all groups index into the one shared vertex buffer.
*/
func LoadGeometry(modelPath string, postProcessFlags asig.PostProcess) (*Geometry, error) {

	finalPostProcessFlags := DefaultMeshLoadFlags | postProcessFlags

	scene, release, err := asig.ImportFile(modelPath, finalPostProcessFlags)
	if err != nil {
		return nil, errors.New("Failed to load model. Err: " + err.Error())
	}
	defer release()

	if len(scene.Meshes) == 0 {
		return nil, errors.New("No meshes found in file: " + modelPath)
	}

	// Estimate a useful prealloc capacity based on the first mesh that has vertex pos+normals+tangents+texCoords
	vertexBufDataCapacity := len(scene.Meshes[0].Vertices) * (3 + 3 + 3 + 2)

	// Increase capacity depending on what the mesh has
	if len(scene.Meshes[0].ColorSets) > 0 && len(scene.Meshes[0].ColorSets[0]) > 0 {
		vertexBufDataCapacity += len(scene.Meshes[0].Vertices) * 4
	}

	geom := &Geometry{
		Vertices: make([]float32, 0, vertexBufDataCapacity),
		Groups:   make([]Group, 0, len(scene.Meshes)),
	}

	// Initial size assumes 3 indices per face
	indexBufData := make([]uint32, 0, len(scene.Meshes[0].Faces)*3)

	var baseVertex uint32
	for i := 0; i < len(scene.Meshes); i++ {

		sceneMesh := scene.Meshes[i]

		// We always want normals, tangents and UV0
		if len(sceneMesh.Normals) == 0 {
			sceneMesh.Normals = make([]gglm.Vec3, len(sceneMesh.Vertices))
		}

		if len(sceneMesh.Tangents) == 0 {
			sceneMesh.Tangents = make([]gglm.Vec3, len(sceneMesh.Vertices))
		}

		if len(sceneMesh.TexCoords[0]) == 0 {
			sceneMesh.TexCoords[0] = make([]gglm.Vec3, len(sceneMesh.Vertices))
		}

		hasColorSet0 := len(sceneMesh.ColorSets) > 0 && len(sceneMesh.ColorSets[0]) > 0

		layoutToUse := []buffers.Element{
			{ElementType: buffers.DataTypeVec3}, // Position
			{ElementType: buffers.DataTypeVec3}, // Normals
			{ElementType: buffers.DataTypeVec3}, // Tangents
			{ElementType: buffers.DataTypeVec2}, // UV0
		}

		if hasColorSet0 {
			layoutToUse = append(layoutToUse, buffers.Element{ElementType: buffers.DataTypeVec4})
		}

		if i == 0 {
			geom.Layout = layoutToUse
		} else {

			// All meshes share one vertex buffer and so must share one format
			err := checkLayoutsMatch(geom.Layout, layoutToUse)
			if err != nil {
				return nil, errors.New("Mesh " + strconv.Itoa(i) + " in " + modelPath + ": " + err.Error())
			}
		}

		arrs := []arrToInterleave{
			{V3s: sceneMesh.Vertices},
			{V3s: sceneMesh.Normals},
			{V3s: sceneMesh.Tangents},
			{V2s: v3sToV2s(sceneMesh.TexCoords[0])},
		}

		if hasColorSet0 {
			arrs = append(arrs, arrToInterleave{V4s: sceneMesh.ColorSets[0]})
		}

		indices := flattenFaces(sceneMesh.Faces, baseVertex)
		geom.Groups = append(geom.Groups, Group{
			MaterialIndex: i,
			// Which index (in the index buffer) to start from
			Offset: int32(len(indexBufData)),
			// How many indices in this group
			Count: int32(len(indices)),
		})

		geom.Vertices = append(geom.Vertices, interleave(arrs...)...)
		indexBufData = append(indexBufData, indices...)
		baseVertex += uint32(len(sceneMesh.Vertices))
	}

	geom.SetIndices32(indexBufData)
	return geom, nil
}

func checkLayoutsMatch(first, other []buffers.Element) error {

	if len(first) != len(other) {
		return errors.New("vertex layout does not match the vertex layout of the first mesh")
	}

	for i := 0; i < len(first); i++ {
		if first[i].ElementType != other[i].ElementType {
			return errors.New("vertex layout does not match the vertex layout of the first mesh")
		}
	}

	return nil
}

func v3sToV2s(v3s []gglm.Vec3) []gglm.Vec2 {

	v2s := make([]gglm.Vec2, len(v3s))
	for i := 0; i < len(v3s); i++ {
		v2s[i] = gglm.Vec2{
			Data: [2]float32{v3s[i].X(), v3s[i].Y()},
		}
	}

	return v2s
}

type arrToInterleave struct {
	V2s []gglm.Vec2
	V3s []gglm.Vec3
	V4s []gglm.Vec4
}

func (a *arrToInterleave) len() int {

	if len(a.V2s) > 0 {
		return len(a.V2s)
	} else if len(a.V3s) > 0 {
		return len(a.V3s)
	}

	return len(a.V4s)
}

func (a *arrToInterleave) compCount() int {

	if len(a.V2s) > 0 {
		return 2
	} else if len(a.V3s) > 0 {
		return 3
	}

	return 4
}

func (a *arrToInterleave) get(i int) []float32 {

	assert.T(len(a.V2s) == 0 || len(a.V3s) == 0, "One array should be set in arrToInterleave, but multiple arrays are set")
	assert.T(len(a.V2s) == 0 || len(a.V4s) == 0, "One array should be set in arrToInterleave, but multiple arrays are set")
	assert.T(len(a.V3s) == 0 || len(a.V4s) == 0, "One array should be set in arrToInterleave, but multiple arrays are set")

	if len(a.V2s) > 0 {
		return a.V2s[i].Data[:]
	} else if len(a.V3s) > 0 {
		return a.V3s[i].Data[:]
	} else {
		return a.V4s[i].Data[:]
	}
}

func interleave(arrs ...arrToInterleave) []float32 {

	assert.T(len(arrs) > 0, "No input sent to interleave")

	elementCount := arrs[0].len()
	assert.T(elementCount > 0, "Interleave arrays are empty")

	//Calculate final size of the float buffer
	totalSize := 0
	for i := 0; i < len(arrs); i++ {
		assert.T(arrs[i].len() == elementCount, "Mesh vertex data given to interleave is not the same length")
		totalSize += arrs[i].len() * arrs[i].compCount()
	}

	out := make([]float32, 0, totalSize)
	for i := 0; i < elementCount; i++ {
		for arrToUse := 0; arrToUse < len(arrs); arrToUse++ {
			out = append(out, arrs[arrToUse].get(i)...)
		}
	}

	return out
}

func flattenFaces(faces []asig.Face, baseVertex uint32) []uint32 {

	if len(faces) == 0 {
		return []uint32{}
	}

	assert.T(len(faces[0].Indices) == 3, "Face doesn't have 3 indices. Index count: %v\n", len(faces[0].Indices))

	uints := make([]uint32, len(faces)*3)
	for i := 0; i < len(faces); i++ {
		uints[i*3+0] = baseVertex + uint32(faces[i].Indices[0])
		uints[i*3+1] = baseVertex + uint32(faces[i].Indices[1])
		uints[i*3+2] = baseVertex + uint32(faces[i].Indices[2])
	}

	return uints
}
