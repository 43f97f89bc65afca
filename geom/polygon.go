package geom

import "math"

// PolygonType selects how a Polygon's vertices are connected.
type PolygonType uint8

const (
	// Convex is a closed loop; the last vertex connects back to the first.
	Convex PolygonType = iota
	// TriangleStrip fills area as a triangle strip; its outline is the set of
	// collidable segments.
	TriangleStrip
	// LineStrip is an open chain of segments with no area.
	LineStrip
)

// Polygon is a vertex list in local space with an offset and scale. The
// world-space vertices and their bounds are cached and rebuilt on change.
type Polygon struct {
	Type      PolygonType
	NormalDir NormalDir

	raw    []Vec2
	offset Vec2
	scale  Vec2

	points []Vec2
	bbox   Rect
	dirty  bool
}

// NewPolygon creates an empty polygon of the given type.
func NewPolygon(t PolygonType, dir NormalDir) *Polygon {
	return &Polygon{Type: t, NormalDir: dir, scale: Vec2{1, 1}}
}

// Add appends a world-space point. It is stored relative to the current
// offset and scale.
func (p *Polygon) Add(pt Vec2) {
	p.AddRaw(p.toRaw(pt))
}

// AddRaw appends a point in local space.
func (p *Polygon) AddRaw(pt Vec2) {
	p.raw = append(p.raw, pt)
	p.dirty = true
}

// Edit replaces vertex i with the world-space point pt.
func (p *Polygon) Edit(i int, pt Vec2) {
	if i < 0 || i >= len(p.raw) {
		return
	}
	p.raw[i] = p.toRaw(pt)
	p.dirty = true
}

// Clear removes every vertex.
func (p *Polygon) Clear() {
	p.raw = p.raw[:0]
	p.dirty = true
}

func (p *Polygon) toRaw(pt Vec2) Vec2 {
	sx, sy := p.scale.X, p.scale.Y
	if sx == 0 || sy == 0 {
		sx, sy = 1, 1
	}
	return Vec2{(pt.X - p.offset.X) / sx, (pt.Y - p.offset.Y) / sy}
}

// Len returns the vertex count.
func (p *Polygon) Len() int { return len(p.raw) }

// Raw returns local-space vertex i.
func (p *Polygon) Raw(i int) Vec2 { return p.raw[i] }

// Point returns world-space vertex i.
func (p *Polygon) Point(i int) Vec2 {
	p.refresh()
	return p.points[i]
}

// Points returns all world-space vertices. The slice is owned by p.
func (p *Polygon) Points() []Vec2 {
	p.refresh()
	return p.points
}

// Offset returns the translation applied to the raw vertices.
func (p *Polygon) Offset() Vec2 { return p.offset }

// Scale returns the scale applied to the raw vertices.
func (p *Polygon) Scale() Vec2 { return p.scale }

// Move translates the polygon by d.
func (p *Polygon) Move(d Vec2) {
	p.offset = p.offset.Add(d)
	p.dirty = true
}

// SetOffset sets the translation applied to the raw vertices.
func (p *Polygon) SetOffset(o Vec2) {
	p.offset = o
	p.dirty = true
}

// SetScale sets the scale applied to the raw vertices.
func (p *Polygon) SetScale(s Vec2) {
	p.scale = s
	p.dirty = true
}

// BBox returns the world-space bounds.
func (p *Polygon) BBox() Rect {
	p.refresh()
	return p.bbox
}

func (p *Polygon) refresh() {
	if !p.dirty && len(p.points) == len(p.raw) {
		return
	}
	s := p.scale
	if s.IsZero() {
		s = Vec2{1, 1}
	}
	p.points = p.points[:0]
	for _, r := range p.raw {
		p.points = append(p.points, r.Mul(s).Add(p.offset))
	}
	p.bbox = RectFromPoints(p.points...)
	p.dirty = false
}

// EachSegment calls fn for every collidable segment until fn returns true.
func (p *Polygon) EachSegment(fn func(Line) bool) {
	pts := p.Points()
	n := len(pts)
	if n < 2 {
		return
	}
	switch p.Type {
	case Convex:
		for i := 0; i < n; i++ {
			if fn(LineBetween(pts[i], pts[(i+1)%n])) {
				return
			}
			if n == 2 {
				return
			}
		}
	case TriangleStrip:
		// Outline of a strip: the first edge, every other vertex down each
		// side, and the closing edge.
		if fn(LineBetween(pts[0], pts[1])) {
			return
		}
		for i := 0; i+2 < n; i++ {
			if fn(LineBetween(pts[i], pts[i+2])) {
				return
			}
		}
		if n > 2 {
			fn(LineBetween(pts[n-2], pts[n-1]))
		}
	case LineStrip:
		for i := 0; i+1 < n; i++ {
			if fn(LineBetween(pts[i], pts[i+1])) {
				return
			}
		}
	}
}

// IntersectPoint reports whether pt lies inside the polygon area. Line strips
// have no area.
func (p *Polygon) IntersectPoint(pt Vec2) bool {
	if !p.BBox().Contains(pt) {
		return false
	}
	switch p.Type {
	case Convex:
		return InConvex(pt, p.points)
	case TriangleStrip:
		return InTriangleStrip(pt, p.points)
	default:
		return false
	}
}

// IntersectLine returns the earliest contact of l with any segment.
func (p *Polygon) IntersectLine(l Line) Intersection {
	var best Intersection
	p.EachSegment(func(seg Line) bool {
		if isec := LineSegment(l, seg, p.NormalDir); isec.Closer(best) {
			best = isec
		}
		return false
	})
	return best
}

// IntersectRect reports the first segment crossing r. A rect entirely
// inside the polygon area also counts.
func (p *Polygon) IntersectRect(r Rect) Intersection {
	if !p.BBox().Intersects(r) {
		return Intersection{}
	}
	var isec Intersection
	p.EachSegment(func(seg Line) bool {
		if LineRect(seg, r).Hit {
			n, _ := segmentNormal(seg.D, seg.P.Sub(r.Center()), NormalBoth)
			isec = Intersection{Hit: true, Normal: n}
			return true
		}
		return false
	})
	if !isec.Hit && p.IntersectPoint(r.Center()) {
		isec = Intersection{Hit: true, Normal: r.Center().Sub(p.bbox.Center()).Normalized()}
	}
	return isec
}

// Sweep moves r along vel and returns the earliest contact with any segment.
func (p *Polygon) Sweep(r Rect, vel Vec2) Intersection {
	swept := r.Union(r.Translated(vel))
	if !p.BBox().Intersects(swept) {
		return Intersection{}
	}
	best := Intersection{Time: math.Inf(1)}
	p.EachSegment(func(seg Line) bool {
		if isec := SweepRectSegment(r, vel, seg, p.NormalDir); isec.Hit && isec.Time < best.Time {
			best = isec
		}
		return false
	})
	if !best.Hit {
		return Intersection{}
	}
	return best
}
