package render

import (
	"encoding/json"
	"fmt"
	"slices"
)

type optionsJSON struct {
	Flags    Flags   `json:"flags,omitempty"`
	Parallax float64 `json:"parallax,omitempty"`
	Blend    string  `json:"blend,omitempty"`
}

func encodeOptions(o Options) optionsJSON {
	out := optionsJSON{Flags: o.Flags, Parallax: o.Parallax}
	if o.Blend != BlendDefault {
		out.Blend = o.Blend.String()
	}
	return out
}

// decodeOptions applies in over o. Texture and shader references are left
// untouched; resources are resolved by the caller.
func decodeOptions(in optionsJSON, o Options) (Options, error) {
	o.Flags = in.Flags
	o.Parallax = in.Parallax
	o.Blend = BlendDefault
	if in.Blend != "" {
		b, ok := ParseBlendMode(in.Blend)
		if !ok {
			return o, fmt.Errorf("unknown blend mode %q", in.Blend)
		}
		o.Blend = b
	}
	return o, nil
}

type layerJSON struct {
	Depth int `json:"depth"`
	optionsJSON
}

type sceneJSON struct {
	Root   *optionsJSON         `json:"root,omitempty"`
	Layers map[string]layerJSON `json:"layers,omitempty"`
}

// LoadJSON creates or updates the layers described in data, and the root
// options if present. Existing layers not mentioned are kept.
func (s *System) LoadJSON(data []byte) error {
	var in sceneJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return fmt.Errorf("load render system: %w", err)
	}
	if in.Root != nil {
		o, err := decodeOptions(*in.Root, s.root)
		if err != nil {
			return fmt.Errorf("load render system: root: %w", err)
		}
		s.root = o
	}

	names := make([]string, 0, len(in.Layers))
	for name := range in.Layers {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		lj := in.Layers[name]
		h := s.CreateLayer(name)
		l := s.layers.Get(h)
		o, err := decodeOptions(lj.optionsJSON, l.Options)
		if err != nil {
			return fmt.Errorf("load render system: layer %q: %w", name, err)
		}
		l.Options = o
		l.Depth = lj.Depth
	}
	s.orderDirty = true
	s.updateQueue()
	return nil
}

// WriteJSON serializes the root options and every layer.
func (s *System) WriteJSON() ([]byte, error) {
	root := encodeOptions(s.root)
	out := sceneJSON{Root: &root}
	if s.layers.Len() > 0 {
		out.Layers = make(map[string]layerJSON, s.layers.Len())
		for _, h := range s.layers.Handles() {
			l := s.layers.Get(h)
			out.Layers[l.Name] = layerJSON{Depth: l.Depth, optionsJSON: encodeOptions(l.Options)}
		}
	}
	return json.Marshal(out)
}

type meshComponentJSON struct {
	Depth int    `json:"depth"`
	Layer string `json:"layer,omitempty"`
	optionsJSON
}

// LoadJSON reads the node depth, layer name and options.
func (m *MeshComponent) LoadJSON(data []byte) error {
	var in meshComponentJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return fmt.Errorf("load mesh: %w", err)
	}
	o, err := decodeOptions(in.optionsJSON, m.Options())
	if err != nil {
		return fmt.Errorf("load mesh: %w", err)
	}
	m.SetOptions(o)
	m.SetDepth(in.Depth)
	m.SetLayer(in.Layer)
	return nil
}

// WriteJSON serializes the node depth, layer name and options.
func (m *MeshComponent) WriteJSON() ([]byte, error) {
	n, ok := m.sys.Node(m.node)
	if !ok {
		return nil, fmt.Errorf("write mesh: node %v is gone", m.node)
	}
	out := meshComponentJSON{Depth: n.Depth, optionsJSON: encodeOptions(n.Options)}
	if l := m.sys.layers.Get(n.Layer); l != nil {
		out.Layer = l.Name
	}
	return json.Marshal(out)
}
