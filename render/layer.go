package render

import (
	"github.com/phanxgames/gamelib/handle"
	"go.uber.org/zap"
)

// Layer groups nodes under a shared depth and options. Nodes without a
// layer sort as if on a layer of depth 0.
type Layer struct {
	Name    string
	Depth   int
	Options Options
}

func (s *System) layer(h handle.Handle) *Layer {
	l := s.layers.Get(h)
	if l == nil {
		s.log.Warn("trying to access invalid layer handle", zap.Stringer("handle", h))
	}
	return l
}

// CreateLayer returns the layer called name, creating it if needed.
func (s *System) CreateLayer(name string) handle.Handle {
	if h := s.FindLayer(name); !h.IsNull() {
		s.log.Debug("layer already exists, using existing one", zap.String("layer", name))
		return h
	}
	h := s.layers.Insert(Layer{Name: name})
	s.log.Debug("created layer", zap.String("layer", name))
	return h
}

// RemoveLayer destroys the layer. Its nodes fall back to the root.
func (s *System) RemoveLayer(h handle.Handle) bool {
	if s.layer(h) == nil {
		return false
	}
	s.layers.Destroy(h)
	s.orderDirty = true
	return true
}

// Layer returns a copy of the layer.
func (s *System) Layer(h handle.Handle) (Layer, bool) {
	l := s.layer(h)
	if l == nil {
		return Layer{}, false
	}
	return *l, true
}

// FindLayer returns the handle of the layer called name, or the null handle.
func (s *System) FindLayer(name string) handle.Handle {
	found := handle.Null
	s.layers.Each(func(h handle.Handle, l *Layer) bool {
		if l.Name == name {
			found = h
			return false
		}
		return true
	})
	return found
}

// Layers returns the handles of all layers.
func (s *System) Layers() []handle.Handle { return s.layers.Handles() }

// SetLayerName renames the layer. It fails if another layer already has
// that name.
func (s *System) SetLayerName(h handle.Handle, name string) bool {
	l := s.layer(h)
	if l == nil {
		return false
	}
	if other := s.FindLayer(name); !other.IsNull() && other != h {
		s.log.Error("a layer with that name already exists", zap.String("layer", name))
		return false
	}
	l.Name = name
	return true
}

// SetLayerDepth sets the layer's draw depth. Higher depths are drawn first.
func (s *System) SetLayerDepth(h handle.Handle, depth int) {
	if l := s.layer(h); l != nil {
		l.Depth = depth
		s.orderDirty = true
	}
}

// SetLayerOptions replaces the options the layer's nodes inherit.
func (s *System) SetLayerOptions(h handle.Handle, o Options) {
	if l := s.layer(h); l != nil {
		l.Options = o
	}
}

// PatchLayerOptions overwrites the layer options named by p.
func (s *System) PatchLayerOptions(h handle.Handle, p OptionsPatch) {
	if l := s.layer(h); l != nil {
		l.Options = p.Apply(l.Options)
	}
}
