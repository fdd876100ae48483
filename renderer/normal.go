package renderer

import (
	"math"

	"github.com/bloeys/gglm/gglm"
)

// normalMatFromMat4 writes the inverse-transpose of the upper 3x3 of m into out.
// Returns false (and leaves out untouched) when that 3x3 has no finite inverse.
func normalMatFromMat4(out *gglm.Mat3, m *gglm.Mat4) bool {

	// Row-major names for the upper 3x3, gglm stores columns
	a, b, c := m.Data[0][0], m.Data[1][0], m.Data[2][0]
	d, e, f := m.Data[0][1], m.Data[1][1], m.Data[2][1]
	g, h, i := m.Data[0][2], m.Data[1][2], m.Data[2][2]

	c00 := e*i - f*h
	c01 := -(d*i - f*g)
	c02 := d*h - e*g

	det := a*c00 + b*c01 + c*c02
	if det == 0 || math.IsNaN(float64(det)) || math.IsInf(float64(det), 0) {
		return false
	}

	c10 := -(b*i - c*h)
	c11 := a*i - c*g
	c12 := -(a*h - b*g)

	c20 := b*f - c*e
	c21 := -(a*f - c*d)
	c22 := a*e - b*d

	// inverse(M)^T is the cofactor matrix over the determinant.
	// Element (row r, col c) lives in Data[c][r].
	invDet := 1 / det
	n := [9]float32{
		c00 * invDet, c01 * invDet, c02 * invDet,
		c10 * invDet, c11 * invDet, c12 * invDet,
		c20 * invDet, c21 * invDet, c22 * invDet,
	}

	for k := 0; k < len(n); k++ {
		if math.IsNaN(float64(n[k])) || math.IsInf(float64(n[k]), 0) {
			return false
		}
	}

	out.Data = [3][3]float32{
		{n[0], n[3], n[6]},
		{n[1], n[4], n[7]},
		{n[2], n[5], n[8]},
	}

	return true
}
