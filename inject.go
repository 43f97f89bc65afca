package gamelib

import "github.com/phanxgames/gamelib/geom"

// pointerEvent is one injected left-button sample in screen coordinates.
// It is converted to world space through the camera, the same way real
// mouse input is.
type pointerEvent struct {
	screen  geom.Vec2
	pressed bool
}

// InjectPress queues a left-button press at screen coordinates (x, y). The
// event is consumed by the next Update.
func (g *Game) InjectPress(x, y float64) {
	g.injectQueue = append(g.injectQueue, pointerEvent{screen: geom.V(x, y), pressed: true})
}

// InjectMove queues a pointer move with the button held down. Use it
// between InjectPress and InjectRelease to drag.
func (g *Game) InjectMove(x, y float64) {
	g.injectQueue = append(g.injectQueue, pointerEvent{screen: geom.V(x, y), pressed: true})
}

// InjectRelease queues a left-button release at screen coordinates (x, y).
func (g *Game) InjectRelease(x, y float64) {
	g.injectQueue = append(g.injectQueue, pointerEvent{screen: geom.V(x, y)})
}

// InjectClick queues a press followed by a release at the same point.
// Consumes two frames.
func (g *Game) InjectClick(x, y float64) {
	g.InjectPress(x, y)
	g.InjectRelease(x, y)
}

// InjectDrag queues a press at from, frames-2 evenly spaced moves and a
// release at to. The sequence consumes frames frames, at least 2.
func (g *Game) InjectDrag(from, to geom.Vec2, frames int) {
	if frames < 2 {
		frames = 2
	}
	g.InjectPress(from.X, from.Y)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		p := from.Add(to.Sub(from).Scale(t))
		g.InjectMove(p.X, p.Y)
	}
	g.InjectRelease(to.X, to.Y)
}

// processInjectedInput feeds one queued event to the select tool. It
// reports whether an event was consumed, in which case real mouse input is
// skipped this frame.
func (g *Game) processInjectedInput() bool {
	if len(g.injectQueue) == 0 {
		return false
	}
	evt := g.injectQueue[0]
	copy(g.injectQueue, g.injectQueue[1:])
	g.injectQueue = g.injectQueue[:len(g.injectQueue)-1]

	g.Editor.Process(g.Camera.ScreenToWorld(evt.screen), evt.pressed)
	return true
}
