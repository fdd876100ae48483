package renderer

import "fmt"

// Stats are per-frame counters. They only go up until reset by Renderer.BeginFrame or Renderer.ResetStats.
type Stats struct {
	ShaderBinds       uint32
	MaterialBinds     uint32
	VertexBufferBinds uint32
	IndexBufferBinds  uint32

	DrawCalls       uint32
	IndexedElements uint64
	VertexElements  uint64

	UniformUploads       uint32
	DegenerateTransforms uint32
}

func (s *Stats) Reset() {
	*s = Stats{}
}

func (s Stats) String() string {
	return fmt.Sprintf(
		"draws=%d indexed=%d vertices=%d binds(shader=%d material=%d vb=%d ib=%d) uploads=%d degenerate=%d",
		s.DrawCalls,
		s.IndexedElements,
		s.VertexElements,
		s.ShaderBinds,
		s.MaterialBinds,
		s.VertexBufferBinds,
		s.IndexBufferBinds,
		s.UniformUploads,
		s.DegenerateTransforms,
	)
}
