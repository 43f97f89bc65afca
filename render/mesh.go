package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/gamelib/batch"
	"github.com/phanxgames/gamelib/geom"
)

// Topology is how a mesh's vertices are assembled into primitives.
type Topology uint8

const (
	Points Topology = iota
	Lines
	LineStrip
	Triangles
	TriangleStrip
	TriangleFan
	Quads
)

var topologyNames = [...]string{"points", "lines", "linestrip", "triangles", "trianglestrip", "trianglefan", "quads"}

func (t Topology) String() string {
	if int(t) < len(topologyNames) {
		return topologyNames[t]
	}
	return "unknown"
}

// ParseTopology returns the topology with the given name, or false.
func ParseTopology(name string) (Topology, bool) {
	for i, n := range topologyNames {
		if n == name {
			return Topology(i), true
		}
	}
	return Triangles, false
}

// Degenerate reports whether size vertices form nothing drawable: no
// vertices, a single non-point vertex, or two vertices that are not a line.
func (t Topology) Degenerate(size int) bool {
	switch {
	case size <= 0:
		return true
	case size == 1:
		return t != Points
	case size == 2:
		return t != Points && t != Lines && t != LineStrip
	}
	return false
}

// Mesh is a node's slice of the shared vertex arena.
type Mesh struct {
	Alloc batch.Handle
	Size  int
	Type  Topology
	BBox  geom.Rect
}

// Capacity returns the number of vertices allocated.
func (m Mesh) Capacity() int { return m.Alloc.Size }

// MeshData is a write into a node's mesh. Nil slices are left untouched.
// Colors are straight (not premultiplied) alpha.
type MeshData struct {
	Positions []geom.Vec2
	UVs       []geom.Vec2
	Colors    []color.Color
	// KeepSize leaves the mesh size unchanged even if the write extends
	// past it.
	KeepSize bool
}

func (d MeshData) count() int {
	return max(len(d.Positions), len(d.UVs), len(d.Colors))
}

// vertexBBox returns the bounds of the vertex positions. A single vertex
// gives a zero-size rect at its position.
func vertexBBox(verts []ebiten.Vertex) geom.Rect {
	if len(verts) == 0 {
		return geom.Rect{}
	}
	minX, minY := float64(verts[0].DstX), float64(verts[0].DstY)
	maxX, maxY := minX, minY
	for i := 1; i < len(verts); i++ {
		x, y := float64(verts[i].DstX), float64(verts[i].DstY)
		minX, maxX = min(minX, x), max(maxX, x)
		minY, maxY = min(minY, y), max(maxY, y)
	}
	return geom.Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

func setColor(v *ebiten.Vertex, c color.Color) {
	r, g, b, a := c.RGBA()
	v.ColorR = float32(r) / 0xffff
	v.ColorG = float32(g) / 0xffff
	v.ColorB = float32(b) / 0xffff
	v.ColorA = float32(a) / 0xffff
}

// triangleIndices appends the triangle-list indices for n vertices of
// topology t. Points and lines are not handled here.
func triangleIndices(dst []uint32, t Topology, n int) []uint32 {
	switch t {
	case Triangles:
		for i := 0; i+2 < n; i += 3 {
			dst = append(dst, uint32(i), uint32(i+1), uint32(i+2))
		}
	case TriangleStrip:
		for i := 0; i+2 < n; i++ {
			dst = append(dst, uint32(i), uint32(i+1), uint32(i+2))
		}
	case TriangleFan:
		for i := 1; i+1 < n; i++ {
			dst = append(dst, 0, uint32(i), uint32(i+1))
		}
	case Quads:
		for i := 0; i+3 < n; i += 4 {
			dst = append(dst,
				uint32(i), uint32(i+1), uint32(i+2),
				uint32(i), uint32(i+2), uint32(i+3))
		}
	}
	return dst
}

// lineWidth is the screen thickness of Points, Lines and LineStrip
// primitives, which are drawn as quads.
const lineWidth = 1.0

// appendLineQuad appends a thin quad covering the segment a-b, taking color
// and texture coordinates from the endpoints.
func appendLineQuad(verts []ebiten.Vertex, inds []uint32, a, b ebiten.Vertex) ([]ebiten.Vertex, []uint32) {
	d := geom.V(float64(b.DstX-a.DstX), float64(b.DstY-a.DstY))
	n := geom.V(-d.Y, d.X).Normalized().Scale(lineWidth / 2)
	if n.IsZero() {
		n = geom.V(0, lineWidth/2)
	}
	base := uint32(len(verts))
	for _, v := range [4]struct {
		src ebiten.Vertex
		off geom.Vec2
	}{{a, n}, {b, n}, {b, n.Neg()}, {a, n.Neg()}} {
		q := v.src
		q.DstX += float32(v.off.X)
		q.DstY += float32(v.off.Y)
		verts = append(verts, q)
	}
	inds = append(inds, base, base+1, base+2, base, base+2, base+3)
	return verts, inds
}

// appendPointQuad appends a lineWidth square centered on p.
func appendPointQuad(verts []ebiten.Vertex, inds []uint32, p ebiten.Vertex) ([]ebiten.Vertex, []uint32) {
	const h = lineWidth / 2
	base := uint32(len(verts))
	for _, off := range [4][2]float32{{-h, -h}, {h, -h}, {h, h}, {-h, h}} {
		q := p
		q.DstX += off[0]
		q.DstY += off[1]
		verts = append(verts, q)
	}
	inds = append(inds, base, base+1, base+2, base, base+2, base+3)
	return verts, inds
}

// assemble converts transformed vertices of topology t into a triangle list
// suitable for DrawTriangles.
func assemble(verts []ebiten.Vertex, inds []uint32, src []ebiten.Vertex, t Topology) ([]ebiten.Vertex, []uint32) {
	switch t {
	case Points:
		for _, p := range src {
			verts, inds = appendPointQuad(verts, inds, p)
		}
	case Lines:
		for i := 0; i+1 < len(src); i += 2 {
			verts, inds = appendLineQuad(verts, inds, src[i], src[i+1])
		}
	case LineStrip:
		for i := 0; i+1 < len(src); i++ {
			verts, inds = appendLineQuad(verts, inds, src[i], src[i+1])
		}
	default:
		base := len(verts)
		verts = append(verts, src...)
		start := len(inds)
		inds = triangleIndices(inds, t, len(src))
		for i := start; i < len(inds); i++ {
			inds[i] += uint32(base)
		}
	}
	return verts, inds
}

// meshContains reports whether p, in the mesh's local space, lies inside a
// filled primitive. Point and line topologies have no area.
func meshContains(t Topology, pts []geom.Vec2, p geom.Vec2) bool {
	switch t {
	case Triangles:
		return geom.InTriangles(p, pts)
	case TriangleStrip:
		return geom.InTriangleStrip(p, pts)
	case TriangleFan:
		return geom.InTriangleFan(p, pts)
	case Quads:
		return geom.InQuads(p, pts)
	}
	return false
}
