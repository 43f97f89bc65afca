package collision

import (
	"image"
	"image/color"
	"math"

	"github.com/phanxgames/gamelib/ecs"
	"github.com/phanxgames/gamelib/geom"
	"golang.org/x/image/colornames"
	"golang.org/x/image/draw"
)

// DefaultMaskColor is treated as transparent in addition to zero alpha.
var DefaultMaskColor color.Color = colornames.Magenta

// PixelMask collides with the opaque pixels of an image stretched over a
// world-space rect. Pixels with zero alpha or matching the mask color are
// empty.
type PixelMask struct {
	shape
	rect  geom.Rect
	mask  color.RGBA
	img   *image.NRGBA
	solid []bool
}

// NewPixelMask creates a mask covering rect. It has no image until SetImage.
func NewPixelMask(sys *System, rect geom.Rect, flags Flags) *PixelMask {
	return &PixelMask{
		shape: shape{flags: flags, sys: sys},
		rect:  rect,
		mask:  color.RGBAModel.Convert(DefaultMaskColor).(color.RGBA),
	}
}

func (m *PixelMask) Name() string                 { return KindPixel.String() }
func (m *PixelMask) Kind() Kind                   { return KindPixel }
func (m *PixelMask) Init(e *ecs.Entity) bool      { return m.init(m) }
func (m *PixelMask) Quit()                        { m.quit(m) }
func (m *PixelMask) Transform() ecs.Transformable { return m }

// SetImage resamples src to one pixel per world unit of the mask rect and
// rebuilds the solidity map.
func (m *PixelMask) SetImage(src image.Image) {
	w := int(math.Ceil(m.rect.Width))
	h := int(math.Ceil(m.rect.Height))
	if src == nil || w <= 0 || h <= 0 {
		m.img, m.solid = nil, nil
		return
	}
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	m.img = dst
	m.rebuild()
}

// Image returns the resampled mask image.
func (m *PixelMask) Image() *image.NRGBA { return m.img }

// SetMaskColor changes which color counts as transparent.
func (m *PixelMask) SetMaskColor(c color.Color) {
	m.mask = color.RGBAModel.Convert(c).(color.RGBA)
	if m.img != nil {
		m.rebuild()
	}
}

func (m *PixelMask) rebuild() {
	b := m.img.Bounds()
	m.solid = make([]bool, b.Dx()*b.Dy())
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			c := color.RGBAModel.Convert(m.img.NRGBAAt(x, y)).(color.RGBA)
			m.solid[y*b.Dx()+x] = c.A != 0 && c != m.mask
		}
	}
}

// solidAt reports whether the pixel at image coordinates (x, y) is opaque.
func (m *PixelMask) solidAt(x, y int) bool {
	if m.img == nil {
		return false
	}
	w, h := m.img.Bounds().Dx(), m.img.Bounds().Dy()
	if x < 0 || y < 0 || x >= w || y >= h {
		return false
	}
	return m.solid[y*w+x]
}

func (m *PixelMask) toPixel(p geom.Vec2) (int, int) {
	return int(math.Floor(p.X - m.rect.X)), int(math.Floor(p.Y - m.rect.Y))
}

// Normal returns the surface normal at p estimated from the solid pixels
// around it. It points away from the solid mass, or is zero inside a
// uniform region.
func (m *PixelMask) Normal(p geom.Vec2) geom.Vec2 {
	px, py := m.toPixel(p)
	var n geom.Vec2
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if m.solidAt(px+dx, py+dy) {
				n.X -= float64(dx)
				n.Y -= float64(dy)
			}
		}
	}
	return n.Normalized()
}

func (m *PixelMask) Caps() ecs.Caps      { return ecs.Movable }
func (m *PixelMask) Position() geom.Vec2 { return m.rect.Pos() }
func (m *PixelMask) Scaling() geom.Vec2  { return geom.Vec2{X: 1, Y: 1} }
func (m *PixelMask) Rotation() float64   { return 0 }
func (m *PixelMask) BBox() geom.Rect     { return m.rect }
func (m *PixelMask) Move(d geom.Vec2)    { m.rect = m.rect.Translated(d) }
func (m *PixelMask) ScaleBy(geom.Vec2)   {}
func (m *PixelMask) Rotate(float64)      {}

func (m *PixelMask) IntersectPoint(p geom.Vec2) bool {
	if !m.rect.Contains(p) {
		return false
	}
	return m.solidAt(m.toPixel(p))
}

// contact builds a hit at time t, falling back to a normal against dir when
// the pixel neighborhood gives none.
func (m *PixelMask) contact(p geom.Vec2, t float64, dir geom.Vec2) geom.Intersection {
	n := m.Normal(p)
	if n.IsZero() {
		n = dir.Neg().Normalized()
	}
	return geom.Intersection{Hit: true, Time: t, Normal: n}
}

// IntersectLine samples l at most one pixel apart.
func (m *PixelMask) IntersectLine(l geom.Line) geom.Intersection {
	if !geom.LineRect(l, m.rect).Hit && !m.rect.Contains(l.P) {
		return geom.Intersection{}
	}
	steps := int(math.Ceil(math.Max(math.Abs(l.D.X), math.Abs(l.D.Y))))
	if steps < 1 {
		steps = 1
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		p := l.At(t)
		if m.IntersectPoint(p) {
			return m.contact(p, t, l.D)
		}
	}
	return geom.Intersection{}
}

// firstSolid returns the center of the first opaque pixel inside r.
func (m *PixelMask) firstSolid(r geom.Rect) (geom.Vec2, bool) {
	o := r.Intersection(m.rect)
	if o.IsEmpty() {
		return geom.Vec2{}, false
	}
	x0, y0 := m.toPixel(o.Pos())
	x1 := int(math.Ceil(o.Right() - m.rect.X))
	y1 := int(math.Ceil(o.Bottom() - m.rect.Y))
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			if m.solidAt(x, y) {
				return geom.Vec2{X: m.rect.X + float64(x) + 0.5, Y: m.rect.Y + float64(y) + 0.5}, true
			}
		}
	}
	return geom.Vec2{}, false
}

func (m *PixelMask) IntersectRect(r geom.Rect) geom.Intersection {
	p, ok := m.firstSolid(r)
	if !ok {
		return geom.Intersection{}
	}
	return m.contact(p, 0, p.Sub(r.Center()))
}

// Sweep steps r along vel at most one pixel at a time and reports the first
// step that overlaps an opaque pixel.
func (m *PixelMask) Sweep(r geom.Rect, vel geom.Vec2) geom.Intersection {
	if !r.Union(r.Translated(vel)).Overlaps(m.rect) {
		return geom.Intersection{}
	}
	steps := int(math.Ceil(math.Max(math.Abs(vel.X), math.Abs(vel.Y))))
	if steps < 1 {
		steps = 1
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		if p, ok := m.firstSolid(r.Translated(vel.Scale(t))); ok {
			return m.contact(p, t, vel)
		}
	}
	return geom.Intersection{}
}
