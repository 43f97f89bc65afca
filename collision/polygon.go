package collision

import (
	"github.com/phanxgames/gamelib/ecs"
	"github.com/phanxgames/gamelib/geom"
)

// Polygon is a collidable vertex list. It is movable and scalable; moving
// its entity moves the polygon.
type Polygon struct {
	shape
	poly *geom.Polygon
}

// NewPolygon creates an empty polygon that registers with sys when attached.
func NewPolygon(sys *System, t geom.PolygonType, flags Flags) *Polygon {
	return &Polygon{
		shape: shape{flags: flags, sys: sys},
		poly:  geom.NewPolygon(t, geom.NormalBoth),
	}
}

func (p *Polygon) Name() string                 { return KindPolygon.String() }
func (p *Polygon) Kind() Kind                   { return KindPolygon }
func (p *Polygon) Init(e *ecs.Entity) bool      { return p.init(p) }
func (p *Polygon) Quit()                        { p.quit(p) }
func (p *Polygon) Transform() ecs.Transformable { return p }

// Geometry returns the underlying vertex list.
func (p *Polygon) Geometry() *geom.Polygon { return p.poly }

// Add appends a world-space vertex.
func (p *Polygon) Add(v geom.Vec2) { p.poly.Add(v) }

// SetNormalDir restricts which side of each segment collides.
func (p *Polygon) SetNormalDir(d geom.NormalDir) { p.poly.NormalDir = d }

// NormalDir returns the segment side restriction.
func (p *Polygon) NormalDir() geom.NormalDir { return p.poly.NormalDir }

func (p *Polygon) Caps() ecs.Caps      { return ecs.Movable | ecs.Scalable }
func (p *Polygon) Position() geom.Vec2 { return p.poly.Offset() }
func (p *Polygon) Scaling() geom.Vec2  { return p.poly.Scale() }
func (p *Polygon) Rotation() float64   { return 0 }
func (p *Polygon) BBox() geom.Rect     { return p.poly.BBox() }
func (p *Polygon) Move(d geom.Vec2)    { p.poly.Move(d) }
func (p *Polygon) ScaleBy(s geom.Vec2) { p.poly.SetScale(p.poly.Scale().Mul(s)) }
func (p *Polygon) Rotate(float64)      {}

func (p *Polygon) IntersectPoint(pt geom.Vec2) bool            { return p.poly.IntersectPoint(pt) }
func (p *Polygon) IntersectLine(l geom.Line) geom.Intersection { return p.poly.IntersectLine(l) }
func (p *Polygon) IntersectRect(r geom.Rect) geom.Intersection { return p.poly.IntersectRect(r) }

func (p *Polygon) Sweep(r geom.Rect, vel geom.Vec2) geom.Intersection {
	return p.poly.Sweep(r, vel)
}
