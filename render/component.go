package render

import (
	"image/color"

	"github.com/phanxgames/gamelib/ecs"
	"github.com/phanxgames/gamelib/geom"
	"github.com/phanxgames/gamelib/handle"
)

// MeshComponent is an entity component owning one render node. Its
// transform drives the node's transform; its bounds are the node's global
// bounds.
type MeshComponent struct {
	ecs.Base
	ecs.LocalTransform

	sys  *System
	node handle.Handle
}

// NewMeshComponent creates a component with an empty node in sys.
func NewMeshComponent(sys *System) *MeshComponent {
	m := &MeshComponent{
		LocalTransform: ecs.NewLocalTransform(ecs.AllCaps),
		sys:            sys,
		node:           sys.CreateNode(ecs.Ref[ecs.Component]{}),
	}
	m.OnChanged = m.sync
	return m
}

func (m *MeshComponent) Name() string                 { return "Mesh" }
func (m *MeshComponent) Transform() ecs.Transformable { return m }
func (m *MeshComponent) Node() handle.Handle          { return m.node }
func (m *MeshComponent) System() *System              { return m.sys }

// Init claims the node for the component, creating a new one if a previous
// detach released it.
func (m *MeshComponent) Init(*ecs.Entity) bool {
	if !m.sys.IsValid(m.node) {
		m.node = m.sys.CreateNode(ecs.Ref[ecs.Component]{})
		m.sync()
	}
	m.sys.SetNodeOwner(m.node, ecs.RefOf[ecs.Component](m))
	return true
}

// Quit releases the node and its vertices.
func (m *MeshComponent) Quit() {
	m.sys.RemoveNode(m.node)
	m.node = handle.Null
}

// BBox returns the node's global bounds.
func (m *MeshComponent) BBox() geom.Rect {
	if !m.sys.IsValid(m.node) {
		return geom.Rect{}
	}
	return m.sys.NodeGlobalBBox(m.node)
}

func (m *MeshComponent) sync() {
	if m.sys.IsValid(m.node) {
		m.sys.SetNodeTransform(m.node, m.Matrix())
	}
}

// SetRect replaces the mesh with a filled quad covering r in local space.
func (m *MeshComponent) SetRect(r geom.Rect, c color.Color) {
	corners := r.Corners()
	m.SetVertices(corners[:], Quads, c)
}

// SetVertices replaces the mesh with pts assembled as t, all colored c.
func (m *MeshComponent) SetVertices(pts []geom.Vec2, t Topology, c color.Color) {
	if len(pts) == 0 {
		m.sys.CreateNodeMesh(m.node, 0, t)
		return
	}
	colors := make([]color.Color, len(pts))
	for i := range colors {
		colors[i] = c
	}
	m.sys.CreateNodeMesh(m.node, len(pts), t)
	m.sys.UpdateNodeMesh(m.node, 0, MeshData{Positions: pts, Colors: colors})
}

// SetPolygon replaces the mesh with the outline or fill of poly, in local
// space. Convex polygons are filled as a fan, strips as a triangle strip and
// line strips as lines.
func (m *MeshComponent) SetPolygon(poly *geom.Polygon, c color.Color) {
	pts := make([]geom.Vec2, poly.Len())
	for i := range pts {
		pts[i] = poly.Raw(i)
	}
	t := TriangleFan
	switch poly.Type {
	case geom.TriangleStrip:
		t = TriangleStrip
	case geom.LineStrip:
		t = LineStrip
	}
	m.SetVertices(pts, t, c)
}

// SetDepth sets the node depth within its layer.
func (m *MeshComponent) SetDepth(depth int) { m.sys.SetNodeDepth(m.node, depth) }

// Depth returns the node depth.
func (m *MeshComponent) Depth() int {
	n, _ := m.sys.Node(m.node)
	return n.Depth
}

// SetLayer moves the node into the named layer, creating it if needed. The
// empty name moves it back to the root.
func (m *MeshComponent) SetLayer(name string) {
	l := handle.Null
	if name != "" {
		l = m.sys.CreateLayer(name)
	}
	m.sys.SetNodeLayer(m.node, l)
}

// SetOptions replaces the node's own options.
func (m *MeshComponent) SetOptions(o Options) { m.sys.SetNodeOptions(m.node, o) }

// Options returns the node's own options.
func (m *MeshComponent) Options() Options {
	n, _ := m.sys.Node(m.node)
	return n.Options
}

// Visible reports whether the node would be drawn.
func (m *MeshComponent) Visible() bool { return m.sys.NodeVisible(m.node) }
