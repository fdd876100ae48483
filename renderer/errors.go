package renderer

import "errors"

var (
	// ErrUnsupportedIndexFormat is returned by Draw when the index buffer element width is neither 2 nor 4 bytes.
	// The draw is not issued and the bind cache is left as it was.
	ErrUnsupportedIndexFormat = errors.New("unsupported index buffer format")

	// ErrDegenerateTransform is returned by SetPerModelUniforms when the model-view matrix
	// has no usable inverse. The normal matrix is uploaded as identity in that case.
	ErrDegenerateTransform = errors.New("degenerate model-view transform")
)

// ErrMissingMaterial is returned by DrawMesh for submeshes whose material index has no material
var ErrMissingMaterial = errors.New("no material for submesh material index")
