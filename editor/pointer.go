package editor

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/gamelib/geom"
	"github.com/phanxgames/gamelib/render"
)

// PointerState is what a Pointer step observed.
type PointerState uint8

const (
	PointerIdle     PointerState = iota // up and not moving
	PointerMoved                        // up and moving
	PointerPressed                      // went down this step
	PointerHeld                         // down, not yet past the dead zone
	PointerDragged                      // down and dragging
	PointerReleased                     // went up this step
)

// Pointer runs the press/drag/release state machine for one button.
type Pointer struct {
	// DeadZone is the distance a held pointer must travel before it counts
	// as a drag.
	DeadZone float64

	down     bool
	dragging bool
	start    geom.Vec2
	last     geom.Vec2
}

// Down reports whether the button is held.
func (p *Pointer) Down() bool { return p.down }

// Start returns where the current press began.
func (p *Pointer) Start() geom.Vec2 { return p.start }

// Step feeds the pointer position and button state for one frame.
func (p *Pointer) Step(pos geom.Vec2, pressed bool) PointerState {
	defer func() { p.last = pos }()

	switch {
	case pressed && !p.down:
		p.down = true
		p.dragging = false
		p.start = pos
		return PointerPressed
	case !pressed && p.down:
		p.down = false
		p.dragging = false
		return PointerReleased
	case pressed:
		if !p.dragging && pos.Sub(p.start).Len() > p.DeadZone {
			p.dragging = true
		}
		if p.dragging && pos != p.last {
			return PointerDragged
		}
		return PointerHeld
	case pos != p.last:
		return PointerMoved
	}
	return PointerIdle
}

// ReadMouse returns the cursor in world coordinates and whether the left
// button is held. A nil camera leaves screen coordinates unchanged.
func ReadMouse(cam *render.Camera) (geom.Vec2, bool) {
	mx, my := ebiten.CursorPosition()
	p := geom.V(float64(mx), float64(my))
	if cam != nil {
		p = cam.ScreenToWorld(p)
	}
	return p, ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
}
