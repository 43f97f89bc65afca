package editor

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/phanxgames/gamelib/collision"
	"github.com/phanxgames/gamelib/ecs"
	"github.com/phanxgames/gamelib/geom"
	"github.com/phanxgames/gamelib/handle"
	"github.com/phanxgames/gamelib/render"
	"go.uber.org/zap"
	"golang.org/x/image/colornames"
)

// SelectionColor outlines the selected entity in Draw.
var SelectionColor color.Color = colornames.Yellow

// SelectTool picks the front-most visible entity under the mouse and drags
// it around.
type SelectTool struct {
	// Flags restricts which collision shapes can be picked.
	Flags collision.Flags
	// Grid snaps dragged positions to multiples of itself; 0 disables it.
	Grid float64

	mgr        *ecs.Manager
	sys        *collision.System
	log        *zap.Logger
	selected   handle.Handle
	dragOffset geom.Vec2
	pointer    Pointer
}

// NewSelectTool creates a tool picking among mgr's entities through sys.
func NewSelectTool(mgr *ecs.Manager, sys *collision.System, log *zap.Logger) *SelectTool {
	if log == nil {
		log = zap.NewNop()
	}
	return &SelectTool{
		mgr:     mgr,
		sys:     sys,
		log:     log.Named("editor"),
		pointer: Pointer{DeadZone: 2},
	}
}

// Selected returns the selected entity, or nil.
func (t *SelectTool) Selected() *ecs.Entity {
	return t.mgr.Get(t.selected)
}

// SelectedHandle returns the selected entity's handle; null when nothing is
// selected.
func (t *SelectTool) SelectedHandle() handle.Handle {
	if t.Selected() == nil {
		return handle.Null
	}
	return t.selected
}

// SelectEntity changes the selection and emits EventSelect. Selecting the
// current entity again does nothing; an invalid handle clears the
// selection.
func (t *SelectTool) SelectEntity(h handle.Handle) {
	if t.mgr.Get(h) == nil {
		h = handle.Null
	}
	old := t.SelectedHandle()
	if h == old {
		return
	}
	t.selected = h

	if e := t.mgr.Get(h); e != nil {
		t.log.Info("selected entity", zap.String("entity", e.Name))
	} else {
		t.log.Info("selection cleared")
	}
	t.mgr.Events().EmitEvent(ecs.Event{Type: ecs.EventSelect, Entity: h, Previous: old})
}

// Pick returns the visible entity under p with the smallest mesh depth.
// Only shapes carrying flags are considered. Shapes whose entity has no
// mesh component are ignored.
func (t *SelectTool) Pick(p geom.Vec2, flags collision.Flags) *ecs.Entity {
	var (
		best  *ecs.Entity
		depth = math.MaxInt
	)
	t.sys.FindAll(p, flags, func(c collision.Collidable) bool {
		owner, ok := c.(interface{ Entity() *ecs.Entity })
		if !ok {
			return false
		}
		e := owner.Entity()
		if e == nil {
			return false
		}
		mesh, ok := ecs.Find[*render.MeshComponent](e)
		if !ok || !mesh.Visible() {
			return false
		}
		if d := mesh.Depth(); d < depth {
			best, depth = e, d
		}
		return false
	})
	return best
}

// Select picks the entity under p and makes it the selection, clearing the
// selection if nothing is there.
func (t *SelectTool) Select(p geom.Vec2, flags collision.Flags) *ecs.Entity {
	e := t.Pick(p, flags)
	if e == nil {
		t.SelectEntity(handle.Null)
		return nil
	}
	t.SelectEntity(e.Handle())
	return e
}

// Press selects under the mouse and remembers where the entity was grabbed.
func (t *SelectTool) Press(mouse geom.Vec2) {
	e := t.Select(mouse, t.Flags)
	if e == nil {
		return
	}
	t.dragOffset = mouse.Sub(e.Transform().Position())
}

// Drag moves the selection so the grab point follows the mouse.
func (t *SelectTool) Drag(mouse geom.Vec2) {
	e := t.Selected()
	if e == nil {
		return
	}
	ecs.SetPosition(e.Transform(), Snap(mouse.Sub(t.dragOffset), t.Grid))
}

// Process feeds one frame of mouse input and reports what happened.
func (t *SelectTool) Process(mouse geom.Vec2, pressed bool) PointerState {
	s := t.pointer.Step(mouse, pressed)
	switch s {
	case PointerPressed:
		t.Press(mouse)
	case PointerDragged:
		t.Drag(mouse)
	}
	return s
}

// Update reads the mouse through cam and processes it.
func (t *SelectTool) Update(cam *render.Camera) PointerState {
	p, pressed := ReadMouse(cam)
	return t.Process(p, pressed)
}

// Focus scrolls cam to the center of the selection.
func (t *SelectTool) Focus(cam *render.Camera, duration float32) bool {
	e := t.Selected()
	if e == nil {
		return false
	}
	box := e.Transform().BBox()
	if box.IsEmpty() {
		return false
	}
	cam.ScrollTo(box.Center(), duration, nil)
	return true
}

// Draw outlines the selection on dst.
func (t *SelectTool) Draw(dst *ebiten.Image, cam *render.Camera) {
	e := t.Selected()
	if e == nil {
		return
	}
	box := e.Transform().BBox()
	if box.IsEmpty() {
		return
	}
	if cam != nil {
		box = cam.ViewMatrix().ApplyRect(box)
	}
	vector.StrokeRect(dst, float32(box.X), float32(box.Y), float32(box.Width), float32(box.Height), 1, SelectionColor, false)
}

// Snap rounds p to the nearest multiple of grid.
func Snap(p geom.Vec2, grid float64) geom.Vec2 {
	if grid <= 0 {
		return p
	}
	return geom.V(math.Round(p.X/grid)*grid, math.Round(p.Y/grid)*grid)
}
