package collision

import (
	"github.com/phanxgames/gamelib/ecs"
	"github.com/phanxgames/gamelib/geom"
)

// Kind identifies a shape variant.
type Kind uint8

const (
	KindAABB Kind = iota
	KindPolygon
	KindPixel
)

func (k Kind) String() string {
	switch k {
	case KindAABB:
		return "AABBMask"
	case KindPolygon:
		return "PolygonCollision"
	case KindPixel:
		return "PixelCollision"
	}
	return "unknown"
}

// Collidable is a shape registered with a System. The set of variants is
// closed: AABBMask, Polygon and PixelMask.
type Collidable interface {
	ecs.Component

	Kind() Kind
	Flags() Flags
	BBox() geom.Rect

	IntersectPoint(p geom.Vec2) bool
	IntersectLine(l geom.Line) geom.Intersection
	IntersectRect(r geom.Rect) geom.Intersection
	// Sweep moves r along vel against the shape.
	Sweep(r geom.Rect, vel geom.Vec2) geom.Intersection

	sealed()
}

// shape carries what every variant shares: its flags, the system it
// registers with, and the component base.
type shape struct {
	ecs.Base
	flags Flags
	sys   *System
}

func (s *shape) Flags() Flags      { return s.flags }
func (s *shape) SetFlags(f Flags)  { s.flags = f }
func (s *shape) System() *System   { return s.sys }
func (s *shape) sealed()           {}
func (s *shape) quit(c Collidable) { s.sys.Remove(c) }

func (s *shape) init(c Collidable) bool {
	if s.sys == nil {
		return false
	}
	s.sys.Add(c)
	return true
}
