package render

import (
	"image/color"
	"math"
	"testing"

	"github.com/phanxgames/gamelib/ecs"
	"github.com/phanxgames/gamelib/geom"
	"github.com/tanema/gween/ease"
)

func TestMeshComponentFollowsEntity(t *testing.T) {
	sys := NewSystem(nil)
	mgr := ecs.NewManager(nil)
	e := mgr.Add("box")
	m := NewMeshComponent(sys)
	m.SetRect(geom.R(0, 0, 10, 10), color.White)
	if !e.Add(m) {
		t.Fatal("attach failed")
	}

	n, _ := sys.Node(m.Node())
	if owner, ok := n.Owner.Get(); !ok || owner != ecs.Component(m) {
		t.Errorf("node owner = %v, %v", owner, ok)
	}

	e.Transform().Move(geom.V(5, 0))
	if got, want := m.BBox(), geom.R(5, 0, 10, 10); got != want {
		t.Errorf("bbox = %v, want %v", got, want)
	}
	if got, want := e.Transform().BBox(), geom.R(5, 0, 10, 10); got != want {
		t.Errorf("entity bbox = %v, want %v", got, want)
	}

	e.Remove(m)
	if sys.Len() != 0 {
		t.Errorf("nodes after detach = %d, want 0", sys.Len())
	}
	if got := m.BBox(); got != (geom.Rect{}) {
		t.Errorf("detached bbox = %v, want empty", got)
	}
}

func TestMeshComponentReattach(t *testing.T) {
	sys := NewSystem(nil)
	mgr := ecs.NewManager(nil)
	m := NewMeshComponent(sys)
	a, b := mgr.Add("a"), mgr.Add("b")
	a.Add(m)
	a.Remove(m)
	if !b.Add(m) {
		t.Fatal("reattach failed")
	}
	if !sys.IsValid(m.Node()) {
		t.Error("reattached component has no node")
	}
}

func TestMeshComponentLayerAndDepth(t *testing.T) {
	sys := NewSystem(nil)
	m := NewMeshComponent(sys)
	m.SetRect(geom.R(0, 0, 1, 1), color.White)
	m.SetLayer("fg")
	m.SetDepth(3)

	n, _ := sys.Node(m.Node())
	if n.Layer != sys.FindLayer("fg") || m.Depth() != 3 {
		t.Errorf("layer %v depth %d", n.Layer, m.Depth())
	}
	m.SetOptions(Options{Flags: FlagInvisible})
	if m.Visible() {
		t.Error("invisible mesh reported visible")
	}
	m.SetLayer("")
	if n, _ := sys.Node(m.Node()); !n.Layer.IsNull() {
		t.Error("empty layer name should move node to root")
	}
}

func TestMeshComponentSetPolygon(t *testing.T) {
	sys := NewSystem(nil)
	m := NewMeshComponent(sys)
	p := geom.NewPolygon(geom.LineStrip, geom.NormalBoth)
	p.Add(geom.V(0, 0))
	p.Add(geom.V(10, 0))
	p.Add(geom.V(10, 10))
	m.SetPolygon(p, color.White)

	n, _ := sys.Node(m.Node())
	if n.Mesh.Type != LineStrip || n.Mesh.Size != 3 {
		t.Errorf("mesh = %v x%d, want linestrip x3", n.Mesh.Type, n.Mesh.Size)
	}
	if want := geom.R(0, 0, 10, 10); n.Mesh.BBox != want {
		t.Errorf("bbox = %v, want %v", n.Mesh.BBox, want)
	}
}

func TestMeshJSONRoundTrip(t *testing.T) {
	sys := NewSystem(nil)
	m := NewMeshComponent(sys)
	m.SetLayer("fg")
	m.SetDepth(-2)
	m.SetOptions(Options{Parallax: 0.75, Blend: BlendAdd})
	data, err := m.WriteJSON()
	if err != nil {
		t.Fatal(err)
	}

	m2 := NewMeshComponent(sys)
	if err := m2.LoadJSON(data); err != nil {
		t.Fatal(err)
	}
	if m2.Depth() != -2 || m2.Options() != m.Options() {
		t.Errorf("loaded depth %d options %+v", m2.Depth(), m2.Options())
	}
	if err := m2.LoadJSON([]byte(`{"blend":"sparkle"}`)); err == nil {
		t.Error("unknown blend accepted")
	}
}

func TestSystemJSONRoundTrip(t *testing.T) {
	sys := NewSystem(nil)
	bg := sys.CreateLayer("bg")
	sys.SetLayerDepth(bg, 3)
	sys.SetLayerOptions(bg, Options{Parallax: 0.5, Blend: BlendAdd})
	sys.CreateLayer("fg")
	sys.SetRootOptions(Options{Flags: FlagNoParallax})

	data, err := sys.WriteJSON()
	if err != nil {
		t.Fatal(err)
	}
	loaded := NewSystem(nil)
	if err := loaded.LoadJSON(data); err != nil {
		t.Fatal(err)
	}
	if got := loaded.RootOptions(); got != sys.RootOptions() {
		t.Errorf("root = %+v, want %+v", got, sys.RootOptions())
	}
	l, ok := loaded.Layer(loaded.FindLayer("bg"))
	want, _ := sys.Layer(bg)
	if !ok || l != want {
		t.Errorf("bg = %+v, want %+v", l, want)
	}
	if len(loaded.Layers()) != 2 {
		t.Errorf("layers = %d, want 2", len(loaded.Layers()))
	}
}

func TestCameraRoundTrip(t *testing.T) {
	cam := NewCamera(geom.R(0, 0, 100, 100))
	cam.Pos = geom.V(10, 20)
	if got := cam.WorldToScreen(geom.V(10, 20)); !got.AlmostEqual(geom.V(50, 50), 1e-9) {
		t.Errorf("center maps to %v, want (50, 50)", got)
	}

	cam.Zoom = 2
	cam.Rotation = 0.3
	p := geom.V(-7, 42)
	if got := cam.ScreenToWorld(cam.WorldToScreen(p)); !got.AlmostEqual(p, 1e-9) {
		t.Errorf("round trip = %v, want %v", got, p)
	}
}

func TestCameraVisibleBounds(t *testing.T) {
	cam := NewCamera(geom.R(0, 0, 100, 100))
	cam.Pos = geom.V(10, 20)
	cam.Zoom = 2
	got := cam.VisibleBounds()
	want := geom.R(-15, -5, 50, 50)
	if math.Abs(got.X-want.X) > 1e-9 || math.Abs(got.Y-want.Y) > 1e-9 ||
		math.Abs(got.Width-want.Width) > 1e-9 || math.Abs(got.Height-want.Height) > 1e-9 {
		t.Errorf("visible = %v, want %v", got, want)
	}
}

func TestCameraScrollTo(t *testing.T) {
	cam := NewCamera(geom.R(0, 0, 100, 100))
	cam.ScrollTo(geom.V(100, -40), 1, ease.Linear)
	if !cam.Scrolling() {
		t.Fatal("not scrolling")
	}
	cam.Update(0.5)
	if cam.Pos.X <= 0 || cam.Pos.X >= 100 {
		t.Errorf("halfway x = %v", cam.Pos.X)
	}
	for range 6 {
		cam.Update(0.1)
	}
	if cam.Scrolling() || cam.Pos != geom.V(100, -40) {
		t.Errorf("after scroll pos = %v scrolling = %v", cam.Pos, cam.Scrolling())
	}
}

func TestCameraBounds(t *testing.T) {
	cam := NewCamera(geom.R(0, 0, 100, 100))
	cam.SetBounds(geom.R(0, 0, 200, 200))
	cam.Update(0)
	if cam.Pos != geom.V(50, 50) {
		t.Errorf("clamped pos = %v, want (50, 50)", cam.Pos)
	}
	cam.SetBounds(geom.R(0, 0, 40, 40))
	cam.Update(0)
	if cam.Pos != geom.V(20, 20) {
		t.Errorf("small bounds pos = %v, want centered (20, 20)", cam.Pos)
	}
}

func TestCameraFollow(t *testing.T) {
	sys := NewSystem(nil)
	mgr := ecs.NewManager(nil)
	e := mgr.Add("target")
	m := NewMeshComponent(sys)
	m.SetRect(geom.R(0, 0, 10, 10), color.White)
	e.Add(m)

	cam := NewCamera(geom.R(0, 0, 100, 100))
	cam.Follow(m, geom.V(0, -5), 1)
	cam.Update(0)
	if cam.Pos != geom.V(5, 0) {
		t.Errorf("pos = %v, want (5, 0)", cam.Pos)
	}

	e.Remove(m)
	cam.Pos = geom.Vec2{}
	cam.Update(0)
	if cam.Pos != (geom.Vec2{}) {
		t.Errorf("followed a detached component to %v", cam.Pos)
	}
}

func TestTopologyDegenerate(t *testing.T) {
	tests := []struct {
		t    Topology
		size int
		want bool
	}{
		{Triangles, 0, true},
		{Points, 1, false},
		{Lines, 1, true},
		{Lines, 2, false},
		{LineStrip, 2, false},
		{Triangles, 2, true},
		{Quads, 2, true},
		{Triangles, 3, false},
	}
	for _, tt := range tests {
		if got := tt.t.Degenerate(tt.size); got != tt.want {
			t.Errorf("%v.Degenerate(%d) = %v, want %v", tt.t, tt.size, got, tt.want)
		}
	}
	for tp := Points; tp <= Quads; tp++ {
		if got, ok := ParseTopology(tp.String()); !ok || got != tp {
			t.Errorf("ParseTopology(%q) = %v, %v", tp.String(), got, ok)
		}
	}
}
