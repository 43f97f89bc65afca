package render

import (
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/gamelib/geom"
	"github.com/phanxgames/gamelib/handle"
	"go.uber.org/zap"
	"golang.org/x/image/colornames"
)

// Target receives draw calls. *ebiten.Image satisfies it.
type Target interface {
	DrawTriangles32(vertices []ebiten.Vertex, indices []uint32, img *ebiten.Image, options *ebiten.DrawTrianglesOptions)
	DrawTrianglesShader32(vertices []ebiten.Vertex, indices []uint32, shader *ebiten.Shader, options *ebiten.DrawTrianglesShaderOptions)
}

// BoxColor is the outline color used by SetDrawBoxes.
var BoxColor color.Color = colornames.Lime

var whitePixelImage *ebiten.Image

// whitePixel returns a lazily-initialized 1x1 white image used to draw
// untextured meshes.
func whitePixel() *ebiten.Image {
	if whitePixelImage == nil {
		whitePixelImage = ebiten.NewImage(1, 1)
		whitePixelImage.Fill(color.White)
	}
	return whitePixelImage
}

// SetDrawBoxes toggles drawing each rendered node's bounds.
func (s *System) SetDrawBoxes(on bool) { s.drawBoxes = on }

// DrawBoxes reports whether bounds are drawn.
func (s *System) DrawBoxes() bool { return s.drawBoxes }

// NumRendered returns the number of nodes drawn by the last Render.
func (s *System) NumRendered() int { return s.numRendered }

// Render draws every visible node in world coordinates and returns the
// number drawn. When clip is non-nil, nodes outside it are culled and
// parallax is computed around its center.
func (s *System) Render(target Target, clip *geom.Rect) int {
	return s.render(target, clip, geom.Identity)
}

// RenderCamera draws the part of the scene visible through cam.
func (s *System) RenderCamera(target Target, cam *Camera) int {
	clip := cam.VisibleBounds()
	return s.render(target, &clip, cam.ViewMatrix())
}

func (s *System) render(target Target, clip *geom.Rect, view geom.Transform) int {
	s.numRendered = 0
	if !s.root.IsVisible() {
		return 0
	}
	var start time.Time
	if s.debug {
		start = time.Now()
	}
	s.ForceUpdate()

	var stats Stats
	current, parent := handle.Null, s.root
	for _, h := range s.queue {
		n := s.nodes.Get(h)
		if n == nil || n.Mesh.Type.Degenerate(n.Mesh.Size) {
			stats.Skipped++
			continue
		}

		if n.Layer != current {
			parent = s.root
			if l := s.layers.Get(n.Layer); l != nil {
				parent = l.Options.Inherit(s.root)
			}
			current = n.Layer
		}

		o := n.Options.Inherit(parent)
		if !o.IsVisible() {
			stats.Hidden++
			continue
		}

		trans, bbox := n.Transform, n.globalBBox
		if o.HasParallax() {
			p := o.ParallaxFactor()
			center := bbox.Center()
			if clip != nil {
				center = clip.Center()
			}
			var pt geom.Transform
			if o.Flags&FlagScaleParallax != 0 {
				pt = geom.ScaleAround(center, geom.V(p, p))
				bbox = bbox.ScaledAround(center, geom.V(p, p))
			} else {
				d := bbox.Center().Sub(center).Scale(p - 1)
				pt = geom.Translation(d)
				bbox = bbox.Translated(d)
			}
			trans = pt.Multiply(n.Transform)
		}

		if bbox.Width == 0 || bbox.Height == 0 {
			s.log.Debug("node bounding box has zero width or height",
				zap.Stringer("node", h), zap.Float64("w", bbox.Width), zap.Float64("h", bbox.Height))
		}
		if clip != nil && !clip.Intersects(bbox) {
			stats.Culled++
			continue
		}

		s.drawNode(target, n, o, view.Multiply(trans))
		if s.drawBoxes {
			s.drawBox(target, bbox, view)
		}
		s.numRendered++
	}

	stats.Rendered = s.numRendered
	if s.debug {
		stats.Elapsed = time.Since(start)
		s.debugLog(stats)
	}
	s.stats = stats
	return s.numRendered
}

func (s *System) drawNode(target Target, n *Node, o Options, m geom.Transform) {
	tex := o.Texture
	s.transformed = s.transformed[:0]
	for _, v := range s.vertices.Slice(n.Mesh.Alloc)[:n.Mesh.Size] {
		p := m.Apply(geom.V(float64(v.DstX), float64(v.DstY)))
		v.DstX, v.DstY = float32(p.X), float32(p.Y)
		if tex == nil && o.Shader == nil {
			v.SrcX, v.SrcY = 0.5, 0.5
		}
		s.transformed = append(s.transformed, v)
	}
	verts, inds := assemble(s.scratchVerts[:0], s.scratchInds[:0], s.transformed, n.Mesh.Type)
	s.scratchVerts, s.scratchInds = verts, inds

	if o.Shader != nil {
		op := &ebiten.DrawTrianglesShaderOptions{Blend: o.Blend.EbitenBlend()}
		op.Images[0] = tex
		target.DrawTrianglesShader32(verts, inds, o.Shader, op)
		return
	}
	if tex == nil {
		tex = whitePixel()
	}
	target.DrawTriangles32(verts, inds, tex, &ebiten.DrawTrianglesOptions{Blend: o.Blend.EbitenBlend()})
}

func (s *System) drawBox(target Target, r geom.Rect, view geom.Transform) {
	var corner [4]ebiten.Vertex
	for i, c := range r.Corners() {
		p := view.Apply(c)
		corner[i] = ebiten.Vertex{DstX: float32(p.X), DstY: float32(p.Y), SrcX: 0.5, SrcY: 0.5}
		setColor(&corner[i], BoxColor)
	}
	verts, inds := s.scratchVerts[:0], s.scratchInds[:0]
	for i := range corner {
		verts, inds = appendLineQuad(verts, inds, corner[i], corner[(i+1)%4])
	}
	s.scratchVerts, s.scratchInds = verts, inds
	target.DrawTriangles32(verts, inds, whitePixel(), &ebiten.DrawTrianglesOptions{})
}

// NodeAtPosition returns the frontmost visible node whose filled mesh
// contains p, or the null handle. Point and line meshes are never hit.
func (s *System) NodeAtPosition(p geom.Vec2) handle.Handle {
	s.ForceUpdate()
	var pts []geom.Vec2
	for i := len(s.queue) - 1; i >= 0; i-- {
		h := s.queue[i]
		if !s.NodeVisible(h) {
			continue
		}
		n := s.nodes.Get(h)
		if !n.globalBBox.Contains(p) {
			continue
		}
		pts = pts[:0]
		for _, v := range s.vertices.Slice(n.Mesh.Alloc)[:n.Mesh.Size] {
			pts = append(pts, n.Transform.Apply(geom.V(float64(v.DstX), float64(v.DstY))))
		}
		if meshContains(n.Mesh.Type, pts, p) {
			return h
		}
	}
	return handle.Null
}
