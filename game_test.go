package gamelib

import (
	"errors"
	"image/color"
	"math"
	"testing"

	"github.com/phanxgames/gamelib/collision"
	"github.com/phanxgames/gamelib/config"
	"github.com/phanxgames/gamelib/ecs"
	"github.com/phanxgames/gamelib/geom"
	"github.com/phanxgames/gamelib/render"
	"golang.org/x/image/colornames"
)

func newTestGame(t *testing.T) *Game {
	t.Helper()
	g, err := NewGame(nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	g.Pointer = nil
	return g
}

// addCrate adds an entity with a mesh over r and a solid mask following it.
func addCrate(g *Game, name string, r geom.Rect) (*ecs.Entity, *render.MeshComponent) {
	e := g.Entities.Add(name)
	m := render.NewMeshComponent(g.Render)
	e.Add(m)
	m.SetRect(geom.R(0, 0, r.Width, r.Height), colornames.Brown)
	ecs.SetPosition(m, r.Pos())
	mask := collision.NewAABBMask(g.Collision, collision.Solid)
	e.Add(mask)
	mask.SetSource(m)
	return e, m
}

func TestNewGameDefaults(t *testing.T) {
	g := newTestGame(t)
	if g.TPS() != 60 {
		t.Errorf("TPS = %d, want 60", g.TPS())
	}
	if w, h := g.Layout(1, 1); w != 640 || h != 480 {
		t.Errorf("Layout = %dx%d, want 640x480", w, h)
	}
	if got := g.Camera.ScreenToWorld(geom.V(10, 20)); !got.AlmostEqual(geom.V(10, 20), 1e-9) {
		t.Errorf("screen (10, 20) maps to %v, want identity", got)
	}
	if g.Background != (color.NRGBA{A: 0xff}) {
		t.Errorf("background = %v, want opaque black", g.Background)
	}
	if g.ScreenshotDir != "screenshots" {
		t.Errorf("ScreenshotDir = %q", g.ScreenshotDir)
	}
}

func TestReloadSharesParams(t *testing.T) {
	g := newTestGame(t)
	body := g.NewBody()
	if body.Params() != g.Params {
		t.Fatal("body does not share the game params")
	}

	cfg := config.Default()
	cfg.Physics.Gravity = 10
	cfg.Window.TPS = 30
	cfg.Editor.Grid = 16
	cfg.Layers = []config.Layer{{Name: "bg", Depth: 4, Parallax: 0.5}}
	if err := g.Reload(cfg); err != nil {
		t.Fatal(err)
	}
	if body.Params().Gravity != 10 {
		t.Errorf("body gravity = %v, want 10", body.Params().Gravity)
	}
	if g.TPS() != 30 || g.Editor.Grid != 16 {
		t.Errorf("tps %d grid %v", g.TPS(), g.Editor.Grid)
	}
	if l, ok := g.Render.Layer(g.Render.FindLayer("bg")); !ok || l.Depth != 4 {
		t.Errorf("bg layer = %+v, %v", l, ok)
	}

	cfg.Layers = []config.Layer{{Name: "bad", Flags: []string{"sparkly"}}}
	if err := g.Reload(cfg); err == nil {
		t.Error("bad layer accepted")
	}
}

func TestUpdateStepsEntities(t *testing.T) {
	g := newTestGame(t)
	e, _ := addCrate(g, "player", geom.R(0, 0, 10, 10))
	body := g.NewBody()
	e.Add(body)

	var ticks []float64
	g.OnUpdate = func(dt float64) error {
		ticks = append(ticks, dt)
		return nil
	}
	if err := g.Update(); err != nil {
		t.Fatal(err)
	}
	if len(ticks) != 1 || math.Abs(ticks[0]-1.0/60) > 1e-12 {
		t.Errorf("ticks = %v", ticks)
	}
	if y := e.Transform().Position().Y; math.Abs(y-3000.0/3600) > 1e-9 {
		t.Errorf("player y = %v, want %v", y, 3000.0/3600)
	}

	stop := errors.New("stop")
	g.OnUpdate = func(float64) error { return stop }
	if err := g.Update(); !errors.Is(err, stop) {
		t.Errorf("Update = %v, want stop", err)
	}
}

func TestInjectedClickSelects(t *testing.T) {
	g := newTestGame(t)
	crate, _ := addCrate(g, "crate", geom.R(100, 100, 20, 20))

	var got []ecs.Event
	g.Subscribe(func(e ecs.Event) { got = append(got, e) })

	g.InjectClick(110, 110)
	if err := g.Update(); err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Type != ecs.EventSelect || got[0].Entity != crate.Handle() {
		t.Fatalf("events = %+v", got)
	}
	if g.Editor.Selected() != crate {
		t.Error("crate not selected")
	}

	// release frame, then a click on empty space clears the selection
	g.Update()
	g.InjectClick(400, 400)
	g.Update()
	if g.Editor.Selected() != nil || len(got) != 2 {
		t.Errorf("selection %v, events %d", g.Editor.Selected(), len(got))
	}
}

func TestInjectDrag(t *testing.T) {
	g := newTestGame(t)
	crate, m := addCrate(g, "crate", geom.R(0, 0, 20, 20))

	g.InjectDrag(geom.V(10, 10), geom.V(50, 30), 5)
	if len(g.injectQueue) != 5 {
		t.Fatalf("queued %d events, want 5", len(g.injectQueue))
	}
	for range 5 {
		g.Update()
	}
	// the last move lands at (40, 25); the release does not move
	if got := crate.Transform().Position(); !got.AlmostEqual(geom.V(30, 15), 1e-9) {
		t.Errorf("crate pos = %v, want (30, 15)", got)
	}
	if got := m.BBox(); !got.Pos().AlmostEqual(geom.V(30, 15), 1e-9) {
		t.Errorf("mesh bbox = %v", got)
	}
}

func TestInjectDragMinFrames(t *testing.T) {
	g := newTestGame(t)
	g.InjectDrag(geom.V(0, 0), geom.V(10, 10), 0)
	if len(g.injectQueue) != 2 {
		t.Errorf("queued %d events, want press and release", len(g.injectQueue))
	}
	if !g.injectQueue[0].pressed || g.injectQueue[1].pressed {
		t.Error("wrong press/release order")
	}
}

func TestRunConfigFrom(t *testing.T) {
	cfg := config.Default()
	cfg.Window.Title = "Demo"
	rc := RunConfigFrom(cfg)
	if rc.Title != "Demo" || rc.Width != 640 || rc.Height != 480 || rc.TPS != 60 {
		t.Errorf("RunConfigFrom = %+v", rc)
	}
}
