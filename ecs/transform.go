package ecs

import (
	"math"

	"github.com/phanxgames/gamelib/geom"
)

// Caps is the set of transform operations a Transformable permits.
type Caps uint8

const (
	Movable Caps = 1 << iota
	Scalable
	Rotatable

	AllCaps = Movable | Scalable | Rotatable
)

// Transformable is implemented by components that have a position in the
// world. Move, ScaleBy and Rotate are relative and are ignored when the
// matching capability is missing.
type Transformable interface {
	Caps() Caps
	Position() geom.Vec2
	Scaling() geom.Vec2
	Rotation() float64
	BBox() geom.Rect

	Move(d geom.Vec2)
	ScaleBy(s geom.Vec2)
	Rotate(angle float64)
}

// SetPosition moves t to p. Returns false if t is not movable.
func SetPosition(t Transformable, p geom.Vec2) bool {
	if t.Caps()&Movable == 0 {
		return false
	}
	t.Move(p.Sub(t.Position()))
	return true
}

// SetScaling sets the absolute scale of t. Returns false if t is not
// scalable or its current scale has a zero component.
func SetScaling(t Transformable, s geom.Vec2) bool {
	cur := t.Scaling()
	if t.Caps()&Scalable == 0 || cur.X == 0 || cur.Y == 0 {
		return false
	}
	t.ScaleBy(geom.Vec2{X: s.X / cur.X, Y: s.Y / cur.Y})
	return true
}

// SetRotation sets the absolute rotation of t. Returns false if t is not
// rotatable.
func SetRotation(t Transformable, angle float64) bool {
	if t.Caps()&Rotatable == 0 {
		return false
	}
	t.Rotate(angle - t.Rotation())
	return true
}

// Matrix returns the affine matrix for t's position, scale and rotation.
func Matrix(t Transformable) geom.Transform {
	return geom.NewTransform(t.Position(), t.Scaling(), t.Rotation(), geom.Vec2{})
}

// LocalTransform is a standalone Transformable with a fixed-size local
// bounds rectangle. OnChanged, if set, runs after every mutation.
type LocalTransform struct {
	OnChanged func()

	caps   Caps
	pos    geom.Vec2
	scale  geom.Vec2
	rot    float64
	origin geom.Vec2
	size   geom.Vec2
}

// NewLocalTransform returns an untransformed LocalTransform with the given
// capabilities.
func NewLocalTransform(caps Caps) LocalTransform {
	return LocalTransform{caps: caps, scale: geom.Vec2{X: 1, Y: 1}}
}

func (t *LocalTransform) Caps() Caps             { return t.caps }
func (t *LocalTransform) Position() geom.Vec2    { return t.pos }
func (t *LocalTransform) Scaling() geom.Vec2     { return t.scale }
func (t *LocalTransform) Rotation() float64      { return t.rot }
func (t *LocalTransform) Origin() geom.Vec2      { return t.origin }
func (t *LocalTransform) Size() geom.Vec2        { return t.size }
func (t *LocalTransform) SetCaps(caps Caps)      { t.caps = caps }
func (t *LocalTransform) Matrix() geom.Transform { return geom.NewTransform(t.pos, t.scale, t.rot, t.origin) }

// SetOrigin sets the local pivot for scale and rotation.
func (t *LocalTransform) SetOrigin(o geom.Vec2) {
	t.origin = o
	t.changed()
}

// SetSize sets the local bounds to (0, 0, size).
func (t *LocalTransform) SetSize(size geom.Vec2) {
	t.size = size
	t.changed()
}

// BBox returns the transformed local bounds.
func (t *LocalTransform) BBox() geom.Rect {
	return t.Matrix().ApplyRect(geom.Rect{Width: t.size.X, Height: t.size.Y})
}

func (t *LocalTransform) Move(d geom.Vec2) {
	if t.caps&Movable == 0 || d.IsZero() {
		return
	}
	t.pos = t.pos.Add(d)
	t.changed()
}

func (t *LocalTransform) ScaleBy(s geom.Vec2) {
	if t.caps&Scalable == 0 {
		return
	}
	t.scale = t.scale.Mul(s)
	t.changed()
}

func (t *LocalTransform) Rotate(angle float64) {
	if t.caps&Rotatable == 0 || angle == 0 {
		return
	}
	t.rot = math.Mod(t.rot+angle, 2*math.Pi)
	t.changed()
}

func (t *LocalTransform) changed() {
	if t.OnChanged != nil {
		t.OnChanged()
	}
}

// GroupTransform is an entity's transform. It forwards relative operations
// to every child it holds, within each child's capabilities, and reports
// the union of the children's bounds.
type GroupTransform struct {
	pos   geom.Vec2
	scale geom.Vec2
	rot   float64
	objs  []Transformable
}

// NewGroupTransform creates an empty group at pos.
func NewGroupTransform(pos geom.Vec2) *GroupTransform {
	return &GroupTransform{pos: pos, scale: geom.Vec2{X: 1, Y: 1}}
}

// Add starts forwarding operations to t.
func (g *GroupTransform) Add(t Transformable) {
	if t == nil || Transformable(g) == t {
		return
	}
	for _, o := range g.objs {
		if o == t {
			return
		}
	}
	g.objs = append(g.objs, t)
}

// Remove stops forwarding operations to t.
func (g *GroupTransform) Remove(t Transformable) {
	for i, o := range g.objs {
		if o == t {
			g.objs = append(g.objs[:i], g.objs[i+1:]...)
			return
		}
	}
}

// Children returns the held transforms.
func (g *GroupTransform) Children() []Transformable { return g.objs }

func (g *GroupTransform) Caps() Caps          { return AllCaps }
func (g *GroupTransform) Position() geom.Vec2 { return g.pos }
func (g *GroupTransform) Scaling() geom.Vec2  { return g.scale }
func (g *GroupTransform) Rotation() float64   { return g.rot }

// BBox returns the union of the children's bounds. It is recomputed on every
// call, so children that change size on their own are always reflected.
func (g *GroupTransform) BBox() geom.Rect {
	var r geom.Rect
	for _, o := range g.objs {
		r = r.Union(o.BBox())
	}
	return r
}

func (g *GroupTransform) Move(d geom.Vec2) {
	if d.IsZero() {
		return
	}
	g.pos = g.pos.Add(d)
	for _, o := range g.objs {
		if o.Caps()&Movable != 0 {
			o.Move(d)
		}
	}
}

func (g *GroupTransform) ScaleBy(s geom.Vec2) {
	g.scale = g.scale.Mul(s)
	for _, o := range g.objs {
		caps := o.Caps()
		if caps&Movable != 0 {
			rel := o.Position().Sub(g.pos)
			o.Move(rel.Mul(s).Sub(rel))
		}
		if caps&Scalable != 0 {
			o.ScaleBy(s)
		}
	}
}

func (g *GroupTransform) Rotate(angle float64) {
	if angle == 0 {
		return
	}
	g.rot = math.Mod(g.rot+angle, 2*math.Pi)
	sin, cos := math.Sincos(angle)
	for _, o := range g.objs {
		caps := o.Caps()
		if caps&Movable != 0 {
			rel := o.Position().Sub(g.pos)
			rot := geom.Vec2{X: rel.X*cos - rel.Y*sin, Y: rel.X*sin + rel.Y*cos}
			o.Move(rot.Sub(rel))
		}
		if caps&Rotatable != 0 {
			o.Rotate(angle)
		}
	}
}
