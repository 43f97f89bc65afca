package geom

import "math"

// Line is a segment starting at P and spanning the displacement D.
type Line struct {
	P, D Vec2
}

// LineBetween returns the segment from a to b.
func LineBetween(a, b Vec2) Line {
	return Line{P: a, D: b.Sub(a)}
}

// At returns the point at parameter t.
func (l Line) At(t float64) Vec2 { return l.P.Add(l.D.Scale(t)) }

// End returns P + D.
func (l Line) End() Vec2 { return l.P.Add(l.D) }

// Intersection describes a contact. Time is the fraction of the swept
// displacement in [0, 1] at which contact first occurs; Normal is the unit
// contact normal facing against the motion.
type Intersection struct {
	Hit    bool
	Time   float64
	Normal Vec2
}

// Closer reports whether i is a hit that happens strictly before o, or o is
// not a hit at all.
func (i Intersection) Closer(o Intersection) bool {
	if !i.Hit {
		return false
	}
	return !o.Hit || i.Time < o.Time
}

// NormalDir restricts which side of a segment collides.
type NormalDir uint8

const (
	// NormalBoth collides from either side.
	NormalBoth NormalDir = iota
	// NormalLeft collides only when approaching against the left-hand normal
	// (-dy, dx) of the segment direction.
	NormalLeft
	// NormalRight collides only when approaching against the right-hand
	// normal (dy, -dx).
	NormalRight
)

var normalDirNames = [...]string{"Both", "Left", "Right"}

func (n NormalDir) String() string {
	if int(n) < len(normalDirNames) {
		return normalDirNames[n]
	}
	return "Both"
}

// ParseNormalDir maps "Both", "Left" or "Right" to a NormalDir.
func ParseNormalDir(s string) (NormalDir, bool) {
	for i, name := range normalDirNames {
		if name == s {
			return NormalDir(i), true
		}
	}
	return NormalBoth, false
}

// segmentNormal returns the unit normal of d selected by dir that faces
// against vel. ok is false when dir forbids a contact from this side.
func segmentNormal(d, vel Vec2, dir NormalDir) (Vec2, bool) {
	left := Vec2{-d.Y, d.X}.Normalized()
	switch dir {
	case NormalLeft:
		return left, left.Dot(vel) < 0
	case NormalRight:
		right := left.Neg()
		return right, right.Dot(vel) < 0
	default:
		if left.Dot(vel) > 0 {
			return left.Neg(), true
		}
		return left, true
	}
}

// slab clips one axis of a ray against [lo, hi]. It returns the entry and
// exit parameters. ok is false if the ray is parallel and outside.
func slab(p, d, lo, hi float64) (enter, exit float64, ok bool) {
	if d == 0 {
		// Parallel rays only count when strictly inside, so a box resting on
		// an edge does not collide with it while sliding along.
		if p <= lo || p >= hi {
			return 0, 0, false
		}
		return math.Inf(-1), math.Inf(1), true
	}
	t1 := (lo - p) / d
	t2 := (hi - p) / d
	if t1 > t2 {
		t1, t2 = t2, t1
	}
	return t1, t2, true
}

// LineRect intersects the segment l with r using the slab method. A segment
// starting inside r hits at time 0 with a normal opposing its direction.
func LineRect(l Line, r Rect) Intersection {
	ex, xx, ok := slab(l.P.X, l.D.X, r.X, r.Right())
	if !ok {
		return Intersection{}
	}
	ey, xy, ok := slab(l.P.Y, l.D.Y, r.Y, r.Bottom())
	if !ok {
		return Intersection{}
	}
	enter := math.Max(ex, ey)
	exit := math.Min(xx, xy)
	if enter > exit || exit <= 0 || enter > 1 {
		return Intersection{}
	}
	if enter < 0 {
		return Intersection{Hit: true, Time: 0, Normal: l.D.Neg().Normalized()}
	}
	var n Vec2
	if ex >= ey {
		n.X = -math.Copysign(1, l.D.X)
	} else {
		n.Y = -math.Copysign(1, l.D.Y)
	}
	return Intersection{Hit: true, Time: enter, Normal: n}
}

// LineSegment intersects the moving segment l against the static segment seg.
// Parallel segments never intersect.
func LineSegment(l, seg Line, dir NormalDir) Intersection {
	denom := l.D.Cross(seg.D)
	if math.Abs(denom) < 1e-12 {
		return Intersection{}
	}
	qp := seg.P.Sub(l.P)
	t := qp.Cross(seg.D) / denom
	u := qp.Cross(l.D) / denom
	if t < 0 || t > 1 || u < 0 || u > 1 {
		return Intersection{}
	}
	n, ok := segmentNormal(seg.D, l.D, dir)
	if !ok {
		return Intersection{}
	}
	return Intersection{Hit: true, Time: t, Normal: n}
}

// penetrationNormal returns the axis normal that pushes a out of b along the
// shallowest overlap.
func penetrationNormal(a, b Rect) Vec2 {
	left := a.Right() - b.X
	right := b.Right() - a.X
	up := a.Bottom() - b.Y
	down := b.Bottom() - a.Y
	m := math.Min(math.Min(left, right), math.Min(up, down))
	switch m {
	case left:
		return Vec2{-1, 0}
	case right:
		return Vec2{1, 0}
	case up:
		return Vec2{0, -1}
	default:
		return Vec2{0, 1}
	}
}

// RectRect tests a against b. Overlapping rects hit at time 0 with the
// normal pushing a out of b.
func RectRect(a, b Rect) Intersection {
	if !a.Intersects(b) {
		return Intersection{}
	}
	return Intersection{Hit: true, Time: 0, Normal: penetrationNormal(a, b)}
}

// SweepRect moves r along vel and reports the first contact with target.
// A zero velocity reduces to an overlap test; a start already inside target
// hits at time 0 with the shallowest penetration normal.
func SweepRect(r Rect, vel Vec2, target Rect) Intersection {
	if vel.IsZero() {
		if r.Overlaps(target) {
			return Intersection{Hit: true, Normal: penetrationNormal(r, target)}
		}
		return Intersection{}
	}
	expanded := Rect{
		X:      target.X - r.Width,
		Y:      target.Y - r.Height,
		Width:  target.Width + r.Width,
		Height: target.Height + r.Height,
	}
	isec := LineRect(Line{P: r.Pos(), D: vel}, expanded)
	if isec.Hit && isec.Time == 0 && r.Overlaps(target) {
		isec.Normal = penetrationNormal(r, target)
	}
	return isec
}

// SweepRectSegment moves r along vel against a static segment. Each corner
// of r is cast against seg, and each endpoint of seg is cast backwards
// against r; the earliest contact wins. A one-sided segment never blocks
// a rect that already straddles it.
func SweepRectSegment(r Rect, vel Vec2, seg Line, dir NormalDir) Intersection {
	straddles := LineRect(seg, r).Hit
	if straddles && dir != NormalBoth {
		return Intersection{}
	}
	if vel.IsZero() {
		if straddles {
			n, _ := segmentNormal(seg.D, r.Center().Sub(seg.P).Neg(), NormalBoth)
			return Intersection{Hit: true, Normal: n}
		}
		return Intersection{}
	}
	var best Intersection
	for _, c := range r.Corners() {
		if isec := LineSegment(Line{P: c, D: vel}, seg, dir); isec.Closer(best) {
			best = isec
		}
	}
	segN, ok := segmentNormal(seg.D, vel, dir)
	if !ok {
		return best
	}
	back := vel.Neg()
	for _, p := range [2]Vec2{seg.P, seg.End()} {
		isec := LineRect(Line{P: p, D: back}, r)
		if !isec.Hit {
			continue
		}
		if isec.Time == 0 {
			isec.Normal = segN
		} else {
			isec.Normal = isec.Normal.Neg()
		}
		if isec.Closer(best) {
			best = isec
		}
	}
	return best
}
