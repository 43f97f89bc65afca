package geom

// InTriangle reports whether p lies inside or on the triangle abc, in either
// winding order.
func InTriangle(p, a, b, c Vec2) bool {
	d1 := b.Sub(a).Cross(p.Sub(a))
	d2 := c.Sub(b).Cross(p.Sub(b))
	d3 := a.Sub(c).Cross(p.Sub(c))
	neg := d1 < 0 || d2 < 0 || d3 < 0
	pos := d1 > 0 || d2 > 0 || d3 > 0
	return !(neg && pos)
}

// InTriangles tests p against a triangle list.
func InTriangles(p Vec2, pts []Vec2) bool {
	for i := 0; i+2 < len(pts); i += 3 {
		if InTriangle(p, pts[i], pts[i+1], pts[i+2]) {
			return true
		}
	}
	return false
}

// InTriangleStrip tests p against a triangle strip.
func InTriangleStrip(p Vec2, pts []Vec2) bool {
	for i := 0; i+2 < len(pts); i++ {
		if InTriangle(p, pts[i], pts[i+1], pts[i+2]) {
			return true
		}
	}
	return false
}

// InTriangleFan tests p against a triangle fan around pts[0].
func InTriangleFan(p Vec2, pts []Vec2) bool {
	for i := 1; i+1 < len(pts); i++ {
		if InTriangle(p, pts[0], pts[i], pts[i+1]) {
			return true
		}
	}
	return false
}

// InQuads tests p against a list of quads given as four corners each, in
// perimeter order.
func InQuads(p Vec2, pts []Vec2) bool {
	for i := 0; i+3 < len(pts); i += 4 {
		if InTriangle(p, pts[i], pts[i+1], pts[i+2]) || InTriangle(p, pts[i], pts[i+2], pts[i+3]) {
			return true
		}
	}
	return false
}

// InConvex reports whether p lies inside a convex polygon using the
// cross-product sign test. Points must define a convex polygon in either
// winding order.
func InConvex(p Vec2, pts []Vec2) bool {
	n := len(pts)
	if n < 3 {
		return false
	}

	// Check that the point is on the same side of every edge.
	var positive, negative bool
	for i := 0; i < n; i++ {
		a := pts[i]
		b := pts[(i+1)%n]
		cross := b.Sub(a).Cross(p.Sub(a))
		if cross > 0 {
			positive = true
		} else if cross < 0 {
			negative = true
		}
		if positive && negative {
			return false
		}
	}
	return true
}
