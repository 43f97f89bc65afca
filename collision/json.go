package collision

import (
	"encoding/json"
	"fmt"

	"github.com/phanxgames/gamelib/geom"
)

type polygonJSON struct {
	Flags    Flags            `json:"flags"`
	Type     geom.PolygonType `json:"type"`
	Normals  string           `json:"normals,omitempty"`
	Offset   [2]float64       `json:"offset"`
	Scale    [2]float64       `json:"scale"`
	Vertices [][2]float64     `json:"vertices"`
}

// LoadJSON replaces the polygon's flags and vertices. Vertices are in local
// space; offset and scale place them in the world.
func (p *Polygon) LoadJSON(data []byte) error {
	in := polygonJSON{Flags: p.flags, Type: p.poly.Type, Scale: [2]float64{1, 1}}
	if err := json.Unmarshal(data, &in); err != nil {
		return fmt.Errorf("load polygon: %w", err)
	}
	if in.Type > geom.LineStrip {
		return fmt.Errorf("load polygon: unknown type %d", in.Type)
	}
	dir := p.poly.NormalDir
	if in.Normals != "" {
		d, ok := geom.ParseNormalDir(in.Normals)
		if !ok {
			return fmt.Errorf("load polygon: unknown normal direction %q", in.Normals)
		}
		dir = d
	}

	p.flags = in.Flags
	p.poly.Type = in.Type
	p.poly.NormalDir = dir
	p.poly.Clear()
	for _, v := range in.Vertices {
		p.poly.AddRaw(geom.Vec2{X: v[0], Y: v[1]})
	}
	p.poly.SetOffset(geom.Vec2{X: in.Offset[0], Y: in.Offset[1]})
	p.poly.SetScale(geom.Vec2{X: in.Scale[0], Y: in.Scale[1]})
	return nil
}

// WriteJSON serializes the polygon in the form LoadJSON reads.
func (p *Polygon) WriteJSON() ([]byte, error) {
	out := polygonJSON{
		Flags:    p.flags,
		Type:     p.poly.Type,
		Normals:  p.poly.NormalDir.String(),
		Offset:   [2]float64{p.poly.Offset().X, p.poly.Offset().Y},
		Scale:    [2]float64{p.poly.Scale().X, p.poly.Scale().Y},
		Vertices: make([][2]float64, p.poly.Len()),
	}
	for i := range out.Vertices {
		v := p.poly.Raw(i)
		out.Vertices[i] = [2]float64{v.X, v.Y}
	}
	return json.Marshal(out)
}

type maskJSON struct {
	Flags Flags `json:"flags"`
}

// LoadJSON reads the mask's flags. The source component is wired up by the
// caller after loading, since it lives on another component.
func (m *AABBMask) LoadJSON(data []byte) error {
	in := maskJSON{Flags: m.flags}
	if err := json.Unmarshal(data, &in); err != nil {
		return fmt.Errorf("load aabb mask: %w", err)
	}
	m.flags = in.Flags
	return nil
}

// WriteJSON serializes the mask's flags.
func (m *AABBMask) WriteJSON() ([]byte, error) {
	return json.Marshal(maskJSON{Flags: m.flags})
}

type pixelJSON struct {
	Flags Flags      `json:"flags"`
	Rect  [4]float64 `json:"rect"`
	Mask  [4]uint8   `json:"mask"`
}

// LoadJSON reads the mask's flags, rect and mask color. The image is a
// resource and is set separately with SetImage.
func (m *PixelMask) LoadJSON(data []byte) error {
	in := pixelJSON{
		Flags: m.flags,
		Rect:  [4]float64{m.rect.X, m.rect.Y, m.rect.Width, m.rect.Height},
		Mask:  [4]uint8{m.mask.R, m.mask.G, m.mask.B, m.mask.A},
	}
	if err := json.Unmarshal(data, &in); err != nil {
		return fmt.Errorf("load pixel mask: %w", err)
	}
	m.flags = in.Flags
	m.rect = geom.Rect{X: in.Rect[0], Y: in.Rect[1], Width: in.Rect[2], Height: in.Rect[3]}
	m.mask.R, m.mask.G, m.mask.B, m.mask.A = in.Mask[0], in.Mask[1], in.Mask[2], in.Mask[3]
	if m.img != nil {
		m.SetImage(m.img)
	}
	return nil
}

// WriteJSON serializes the mask's flags, rect and mask color.
func (m *PixelMask) WriteJSON() ([]byte, error) {
	return json.Marshal(pixelJSON{
		Flags: m.flags,
		Rect:  [4]float64{m.rect.X, m.rect.Y, m.rect.Width, m.rect.Height},
		Mask:  [4]uint8{m.mask.R, m.mask.G, m.mask.B, m.mask.A},
	})
}
