package render

import (
	"cmp"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/gamelib/batch"
	"github.com/phanxgames/gamelib/ecs"
	"github.com/phanxgames/gamelib/geom"
	"github.com/phanxgames/gamelib/handle"
	"go.uber.org/zap"
)

// Node is a drawable entry in the scene. Read it with System.Node and change
// it through the System setters so dirty tracking stays correct.
type Node struct {
	Owner     ecs.Ref[ecs.Component]
	Transform geom.Transform
	Options   Options
	Depth     int
	Layer     handle.Handle
	Mesh      Mesh

	globalBBox geom.Rect
	bboxDirty  bool
	queued     bool
}

// System owns every node, layer and vertex of the scene.
type System struct {
	log *zap.Logger

	vertices *batch.Allocator[ebiten.Vertex]
	nodes    *handle.SlotMap[Node]
	layers   *handle.SlotMap[Layer]
	root     Options

	queue      []handle.Handle
	dirty      []handle.Handle
	orderDirty bool

	numRendered int
	drawBoxes   bool
	debug       bool
	stats       Stats

	transformed  []ebiten.Vertex
	scratchVerts []ebiten.Vertex
	scratchInds  []uint32
}

// NewSystem creates an empty scene. A nil logger disables logging.
func NewSystem(log *zap.Logger) *System {
	if log == nil {
		log = zap.NewNop()
	}
	return &System{
		log:      log.Named("render"),
		vertices: batch.New[ebiten.Vertex](1024),
		nodes:    handle.New[Node](),
		layers:   handle.New[Layer](),
	}
}

// Logger returns the system's logger.
func (s *System) Logger() *zap.Logger { return s.log }

// Clear removes every node and vertex and resets the render counters.
// Layers, root options and debug toggles survive.
func (s *System) Clear() {
	s.log.Debug("clearing all nodes")
	s.nodes.Clear()
	s.vertices.Clear()
	s.dirty = s.dirty[:0]
	s.queue = s.queue[:0]
	s.orderDirty = false
	s.numRendered = 0
	s.stats = Stats{}
}

// Destroy clears the scene including layers and root options.
func (s *System) Destroy() {
	s.Clear()
	s.layers.Clear()
	s.root = Options{}
}

// Len returns the number of live nodes.
func (s *System) Len() int { return s.nodes.Len() }

// VertexCount returns the number of arena vertices in use.
func (s *System) VertexCount() int { return s.vertices.Len() }

func (s *System) node(h handle.Handle) *Node {
	n := s.nodes.Get(h)
	if n == nil {
		s.log.Warn("trying to access invalid node handle", zap.Stringer("handle", h))
	}
	return n
}

// CreateNode adds an empty node owned by owner. The node is not drawn until
// it has a mesh.
func (s *System) CreateNode(owner ecs.Ref[ecs.Component]) handle.Handle {
	h := s.nodes.Insert(Node{Owner: owner, Transform: geom.Identity})
	s.log.Debug("created node", zap.Stringer("handle", h))
	return h
}

// RemoveNode destroys the node and frees its vertices.
func (s *System) RemoveNode(h handle.Handle) bool {
	if s.node(h) == nil {
		return false
	}
	s.freeMesh(h)
	s.nodes.Destroy(h)
	s.orderDirty = true
	return true
}

// IsValid reports whether h refers to a live node.
func (s *System) IsValid(h handle.Handle) bool { return s.nodes.IsValid(h) }

// Node returns a copy of the node's state.
func (s *System) Node(h handle.Handle) (Node, bool) {
	n := s.node(h)
	if n == nil {
		return Node{}, false
	}
	return *n, true
}

// Nodes returns the handles of all live nodes.
func (s *System) Nodes() []handle.Handle { return s.nodes.Handles() }

// NodeGlobalBBox returns the node's mesh bounds after its transform.
func (s *System) NodeGlobalBBox(h handle.Handle) geom.Rect {
	n := s.node(h)
	if n == nil {
		return geom.Rect{}
	}
	updateGlobalBBox(n)
	return n.globalBBox
}

// NodeGlobalOptions resolves the node's options through its layer and the
// root.
func (s *System) NodeGlobalOptions(h handle.Handle) Options {
	n := s.node(h)
	if n == nil {
		return Options{}
	}
	o := n.Options
	if l := s.layers.Get(n.Layer); l != nil {
		o = o.Inherit(l.Options)
	}
	return o.Inherit(s.root)
}

// NodeVisible reports whether the node has vertices and is not hidden by its
// own, its layer's or the root options.
func (s *System) NodeVisible(h handle.Handle) bool {
	n := s.node(h)
	if n == nil || n.Mesh.Alloc.IsEmpty() || n.Mesh.Size == 0 {
		return false
	}
	return s.NodeGlobalOptions(h).IsVisible()
}

// SetNodeOwner changes the component the node reports as its owner.
func (s *System) SetNodeOwner(h handle.Handle, owner ecs.Ref[ecs.Component]) {
	if n := s.node(h); n != nil {
		n.Owner = owner
	}
}

// SetNodeOptions replaces the node's own options.
func (s *System) SetNodeOptions(h handle.Handle, o Options) {
	if n := s.node(h); n != nil {
		n.Options = o
	}
}

// PatchNodeOptions overwrites the node options named by p.
func (s *System) PatchNodeOptions(h handle.Handle, p OptionsPatch) {
	if n := s.node(h); n != nil {
		n.Options = p.Apply(n.Options)
	}
}

// SetNodeDepth sets the order within the node's layer. Higher depths are
// drawn first.
func (s *System) SetNodeDepth(h handle.Handle, depth int) {
	if n := s.node(h); n != nil {
		n.Depth = depth
		s.orderDirty = true
	}
}

// SetNodeLayer moves the node into layer. The null handle puts it back on
// the root. An invalid layer is rejected.
func (s *System) SetNodeLayer(h, layer handle.Handle) bool {
	n := s.node(h)
	if n == nil {
		return false
	}
	if !layer.IsNull() && !s.layers.IsValid(layer) {
		s.log.Warn("assigning invalid layer",
			zap.Stringer("node", h), zap.Stringer("layer", layer))
		return false
	}
	n.Layer = layer
	s.orderDirty = true
	return true
}

// SetNodeTransform replaces the node's transform.
func (s *System) SetNodeTransform(h handle.Handle, t geom.Transform) {
	if n := s.node(h); n != nil {
		n.Transform = t
		s.markBBoxDirty(h, n)
	}
}

// CreateNodeMesh allocates size vertices of topology t for the node,
// releasing any previous mesh. New vertices are opaque white at the origin.
func (s *System) CreateNodeMesh(h handle.Handle, size int, t Topology) bool {
	n := s.node(h)
	if n == nil {
		return false
	}
	if !n.queued {
		n.queued = true
		s.queue = append(s.queue, h)
		s.orderDirty = true
	}
	s.freeMesh(h)

	alloc := s.vertices.Allocate(size)
	verts := s.vertices.Slice(alloc)
	for i := range verts {
		verts[i].ColorR, verts[i].ColorG, verts[i].ColorB, verts[i].ColorA = 1, 1, 1, 1
	}
	n.Mesh = Mesh{Alloc: alloc, Size: size, Type: t}
	return true
}

// NodeVertices returns the node's live vertex slice, Mesh.Size long. Writes
// through it skip bounds tracking; use UpdateNodeMesh for positions.
func (s *System) NodeVertices(h handle.Handle) []ebiten.Vertex {
	n := s.node(h)
	if n == nil {
		return nil
	}
	return s.vertices.Slice(n.Mesh.Alloc)[:n.Mesh.Size]
}

// SetNodeMeshType changes how the node's vertices are assembled.
func (s *System) SetNodeMeshType(h handle.Handle, t Topology) {
	if n := s.node(h); n != nil {
		n.Mesh.Type = t
	}
}

// SetNodeMeshSize changes how many of the allocated vertices are used. It
// fails if size exceeds the allocation.
func (s *System) SetNodeMeshSize(h handle.Handle, size int) bool {
	n := s.node(h)
	if n == nil {
		return false
	}
	if size < 0 || size > n.Mesh.Capacity() {
		s.log.Warn("mesh size out of bounds",
			zap.Stringer("node", h), zap.Int("size", size), zap.Int("capacity", n.Mesh.Capacity()))
		return false
	}
	n.Mesh.Size = size
	s.updateMeshBBox(h, n)
	return true
}

// UpdateNodeMesh writes d into the node's vertices starting at offset. Writes
// past the allocation are clipped. Unless d.KeepSize is set, the mesh size
// becomes the end of the write.
func (s *System) UpdateNodeMesh(h handle.Handle, offset int, d MeshData) bool {
	n := s.node(h)
	if n == nil {
		return false
	}
	if n.Mesh.Alloc.IsEmpty() || offset < 0 || offset >= n.Mesh.Capacity() {
		s.log.Warn("mesh write out of bounds",
			zap.Stringer("node", h), zap.Int("offset", offset), zap.Int("capacity", n.Mesh.Capacity()))
		return false
	}

	stop := offset + d.count()
	if stop > n.Mesh.Capacity() {
		s.log.Warn("trying to assign more vertices than space allocated, clipping to maximum",
			zap.Stringer("node", h), zap.Int("requested", stop), zap.Int("capacity", n.Mesh.Capacity()))
		stop = n.Mesh.Capacity()
	}
	sizeChanged := !d.KeepSize && stop != n.Mesh.Size
	if sizeChanged {
		n.Mesh.Size = stop
	}

	verts := s.vertices.Slice(n.Mesh.Alloc)
	for i := offset; i < stop; i++ {
		v, j := &verts[i], i-offset
		if j < len(d.Positions) {
			v.DstX, v.DstY = float32(d.Positions[j].X), float32(d.Positions[j].Y)
		}
		if j < len(d.UVs) {
			v.SrcX, v.SrcY = float32(d.UVs[j].X), float32(d.UVs[j].Y)
		}
		if j < len(d.Colors) {
			setColor(v, d.Colors[j])
		}
	}

	if d.Positions != nil || sizeChanged {
		s.updateMeshBBox(h, n)
	}
	return true
}

// RootOptions returns the options every node inherits from last.
func (s *System) RootOptions() Options { return s.root }

// SetRootOptions replaces the root options.
func (s *System) SetRootOptions(o Options) { s.root = o }

// PatchRootOptions overwrites the root options named by p.
func (s *System) PatchRootOptions(p OptionsPatch) { s.root = p.Apply(s.root) }

// ForceUpdate recomputes dirty bounding boxes and, if needed, re-sorts the
// draw queue. Calling it again without mutations in between is a no-op.
func (s *System) ForceUpdate() {
	s.updateDirty()
	s.updateQueue()
}

// DrawOrder returns the node handles in the order they are drawn.
func (s *System) DrawOrder() []handle.Handle {
	s.ForceUpdate()
	return slices.Clone(s.queue)
}

func (s *System) updateDirty() {
	if len(s.dirty) == 0 {
		return
	}
	for _, h := range s.dirty {
		if n := s.nodes.Get(h); n != nil {
			updateGlobalBBox(n)
		}
	}
	s.dirty = s.dirty[:0]
}

func updateGlobalBBox(n *Node) {
	if !n.bboxDirty {
		return
	}
	if n.Mesh.Size == 0 {
		n.globalBBox = geom.Rect{}
	} else {
		n.globalBBox = n.Transform.ApplyRect(n.Mesh.BBox)
	}
	n.bboxDirty = false
}

func (s *System) layerDepth(h handle.Handle) int {
	if l := s.layers.Get(h); l != nil {
		return l.Depth
	}
	return 0
}

func (s *System) updateQueue() {
	if !s.orderDirty {
		return
	}
	s.log.Debug("content changed, sorting")

	before := len(s.queue)
	s.queue = slices.DeleteFunc(s.queue, func(h handle.Handle) bool { return !s.nodes.IsValid(h) })
	if removed := before - len(s.queue); removed > 0 {
		s.log.Debug("removed deleted nodes from queue", zap.Int("count", removed))
	}

	slices.SortStableFunc(s.queue, func(a, b handle.Handle) int {
		na, nb := s.nodes.Get(a), s.nodes.Get(b)
		if da, db := s.layerDepth(na.Layer), s.layerDepth(nb.Layer); da != db {
			return cmp.Compare(db, da)
		}
		return cmp.Compare(nb.Depth, na.Depth)
	})
	s.orderDirty = false
}

func (s *System) updateMeshBBox(h handle.Handle, n *Node) {
	n.Mesh.BBox = vertexBBox(s.vertices.Slice(n.Mesh.Alloc)[:n.Mesh.Size])
	s.markBBoxDirty(h, n)
}

func (s *System) markBBoxDirty(h handle.Handle, n *Node) {
	if !n.bboxDirty {
		n.bboxDirty = true
		s.dirty = append(s.dirty, h)
	}
}

func (s *System) freeMesh(h handle.Handle) {
	n := s.nodes.Get(h)
	if n == nil || n.Mesh.Alloc.IsEmpty() {
		return
	}
	s.log.Debug("freeing mesh", zap.Stringer("node", h))
	s.vertices.Free(n.Mesh.Alloc)
	n.Mesh = Mesh{}
	n.globalBBox = geom.Rect{}
	n.bboxDirty = false
}
