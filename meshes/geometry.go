package meshes

import (
	"github.com/bloeys/nrend/buffers"
)

// Group is one draw range of a geometry, drawn with a single material
type Group struct {
	MaterialIndex int
	// Offset is the first element (index, or vertex for non-indexed geometry) of the range
	Offset int32
	Count  int32
}

// Geometry is the CPU side description a Mesh is built from
type Geometry struct {
	// Indices is optional little-endian index data, IndexWidth bytes per index
	Indices    []byte
	IndexWidth int

	// Vertices is interleaved vertex data described by Layout
	Vertices []float32
	Layout   []buffers.Element

	Groups []Group
}

func (g *Geometry) HasIndices() bool {
	return len(g.Indices) > 0
}

func (g *Geometry) SetIndices16(indices []uint16) {
	g.Indices = buffers.Uint16sToBytes(indices)
	g.IndexWidth = 2
}

func (g *Geometry) SetIndices32(indices []uint32) {
	g.Indices = buffers.Uint32sToBytes(indices)
	g.IndexWidth = 4
}
