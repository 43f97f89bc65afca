package collision

import (
	"github.com/phanxgames/gamelib/ecs"
	"github.com/phanxgames/gamelib/geom"
	"go.uber.org/zap"
)

// AABBMask collides with the bounding box of another component's transform.
// It holds only a weak reference to that component; once the source is gone
// the mask has an empty box and hits nothing.
type AABBMask struct {
	shape
	source ecs.Ref[ecs.Component]
}

// NewAABBMask creates a mask that registers with sys when attached.
func NewAABBMask(sys *System, flags Flags) *AABBMask {
	return &AABBMask{shape: shape{flags: flags, sys: sys}}
}

func (m *AABBMask) Name() string            { return KindAABB.String() }
func (m *AABBMask) Kind() Kind              { return KindAABB }
func (m *AABBMask) Init(e *ecs.Entity) bool { return m.init(m) }
func (m *AABBMask) Quit()                   { m.quit(m) }

// SetSource makes the mask follow c's bounding box. It fails, leaving the
// previous source in place, if c is the mask itself, has no transform, or
// is not attached to an entity.
func (m *AABBMask) SetSource(c ecs.Component) bool {
	log := m.log()
	if c == nil {
		log.Error("AABBMask source is nil")
		return false
	}
	if c == ecs.Component(m) {
		log.Error("can't assign self", zap.String("component", m.Name()))
		return false
	}
	if c.Transform() == nil {
		log.Error("component is not a Transformable", zap.String("component", c.Name()))
		return false
	}
	ref := ecs.RefOf[ecs.Component](c)
	if ref.IsNull() {
		log.Error("component is not attached", zap.String("component", c.Name()))
		return false
	}
	m.source = ref
	return true
}

// Source returns the component the mask follows.
func (m *AABBMask) Source() (ecs.Component, bool) {
	return m.source.Get()
}

func (m *AABBMask) log() *zap.Logger {
	if m.sys == nil {
		return zap.NewNop()
	}
	return m.sys.log
}

// BBox returns the source's bounding box, or the zero Rect.
func (m *AABBMask) BBox() geom.Rect {
	c, ok := m.source.Get()
	if !ok {
		return geom.Rect{}
	}
	t := c.Transform()
	if t == nil {
		return geom.Rect{}
	}
	return t.BBox()
}

func (m *AABBMask) IntersectPoint(p geom.Vec2) bool {
	box := m.BBox()
	return !box.IsEmpty() && box.Contains(p)
}

func (m *AABBMask) IntersectLine(l geom.Line) geom.Intersection {
	box := m.BBox()
	if box.IsEmpty() {
		return geom.Intersection{}
	}
	return geom.LineRect(l, box)
}

func (m *AABBMask) IntersectRect(r geom.Rect) geom.Intersection {
	box := m.BBox()
	if box.IsEmpty() {
		return geom.Intersection{}
	}
	return geom.RectRect(r, box)
}

func (m *AABBMask) Sweep(r geom.Rect, vel geom.Vec2) geom.Intersection {
	box := m.BBox()
	if box.IsEmpty() {
		return geom.Intersection{}
	}
	return geom.SweepRect(r, vel, box)
}
