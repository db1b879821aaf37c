package storytime

import "math"

// identityTransform is the identity affine matrix.
var identityTransform = [6]float64{1, 0, 0, 1, 0, 0}

// invertAffine computes the inverse of a 2D affine matrix.
// Returns the identity matrix if the matrix is singular (determinant ~ 0).
func invertAffine(m [6]float64) [6]float64 {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return identityTransform
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return [6]float64{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// envelope returns the axis-aligned bounds of four points.
func envelope(xs, ys [4]float64) AABB {
	minX := math.Min(math.Min(xs[0], xs[1]), math.Min(xs[2], xs[3]))
	minY := math.Min(math.Min(ys[0], ys[1]), math.Min(ys[2], ys[3]))
	maxX := math.Max(math.Max(xs[0], xs[1]), math.Max(xs[2], xs[3]))
	maxY := math.Max(math.Max(ys[0], ys[1]), math.Max(ys[2], ys[3]))
	return NewAABBFromEdges(minX, minY, maxX, maxY)
}
