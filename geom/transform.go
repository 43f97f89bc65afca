package geom

import "math"

// Transform is a 2D affine matrix stored as [a, b, c, d, tx, ty]:
//
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
type Transform [6]float64

// Identity is the identity transform.
var Identity = Transform{1, 0, 0, 1, 0, 0}

// NewTransform composes Translate(-origin) -> Scale -> Rotate -> Translate(pos).
// Rotation is in radians, clockwise in screen space.
func NewTransform(pos, scale Vec2, rotation float64, origin Vec2) Transform {
	sin, cos := math.Sincos(rotation)
	a := cos * scale.X
	b := sin * scale.X
	c := -sin * scale.Y
	d := cos * scale.Y
	tx := -origin.X*a - origin.Y*c + pos.X
	ty := -origin.X*b - origin.Y*d + pos.Y
	return Transform{a, b, c, d, tx, ty}
}

// Translation returns a pure translation.
func Translation(d Vec2) Transform {
	return Transform{1, 0, 0, 1, d.X, d.Y}
}

// ScaleAround returns a transform scaling by s around the pivot p.
func ScaleAround(p, s Vec2) Transform {
	return Transform{s.X, 0, 0, s.Y, p.X - p.X*s.X, p.Y - p.Y*s.Y}
}

// Multiply returns m * o, applying o first.
func (m Transform) Multiply(o Transform) Transform {
	return Transform{
		m[0]*o[0] + m[2]*o[1],
		m[1]*o[0] + m[3]*o[1],
		m[0]*o[2] + m[2]*o[3],
		m[1]*o[2] + m[3]*o[3],
		m[0]*o[4] + m[2]*o[5] + m[4],
		m[1]*o[4] + m[3]*o[5] + m[5],
	}
}

// Invert returns the inverse of m.
// Returns the identity matrix if m is singular (determinant ≈ 0).
func (m Transform) Invert() Transform {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return Identity
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return Transform{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

// Apply transforms the point p.
func (m Transform) Apply(p Vec2) Vec2 {
	return Vec2{m[0]*p.X + m[2]*p.Y + m[4], m[1]*p.X + m[3]*p.Y + m[5]}
}

// ApplyRect returns the axis-aligned bounds of r after transformation.
func (m Transform) ApplyRect(r Rect) Rect {
	c := r.Corners()
	return RectFromPoints(m.Apply(c[0]), m.Apply(c[1]), m.Apply(c[2]), m.Apply(c[3]))
}

// IsIdentity reports whether m is exactly the identity.
func (m Transform) IsIdentity() bool {
	return m == Identity
}
