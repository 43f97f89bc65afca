package render

import (
	"image/color"
	"math"
	"slices"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/gamelib/ecs"
	"github.com/phanxgames/gamelib/geom"
	"github.com/phanxgames/gamelib/handle"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type drawCall struct {
	verts  []ebiten.Vertex
	inds   []uint32
	img    *ebiten.Image
	shader *ebiten.Shader
	blend  ebiten.Blend
}

// recorder is a Target that keeps copies of every draw call.
type recorder struct {
	calls []drawCall
}

func (r *recorder) DrawTriangles32(v []ebiten.Vertex, i []uint32, img *ebiten.Image, op *ebiten.DrawTrianglesOptions) {
	r.calls = append(r.calls, drawCall{verts: slices.Clone(v), inds: slices.Clone(i), img: img, blend: op.Blend})
}

func (r *recorder) DrawTrianglesShader32(v []ebiten.Vertex, i []uint32, s *ebiten.Shader, op *ebiten.DrawTrianglesShaderOptions) {
	r.calls = append(r.calls, drawCall{verts: slices.Clone(v), inds: slices.Clone(i), shader: s, blend: op.Blend})
}

// firstX returns the x of the first vertex of each call.
func (r *recorder) firstX() []float32 {
	out := make([]float32, len(r.calls))
	for i, c := range r.calls {
		out[i] = c.verts[0].DstX
	}
	return out
}

func quad(s *System, r geom.Rect) handle.Handle {
	h := s.CreateNode(ecs.Ref[ecs.Component]{})
	c := r.Corners()
	s.CreateNodeMesh(h, 4, Quads)
	s.UpdateNodeMesh(h, 0, MeshData{Positions: c[:]})
	return h
}

func observed(level zapcore.Level) (*System, *observer.ObservedLogs) {
	core, logs := observer.New(level)
	return NewSystem(zap.New(core)), logs
}

// --- Nodes ---

func TestCreateNodeHasNoMesh(t *testing.T) {
	s := NewSystem(nil)
	h := s.CreateNode(ecs.Ref[ecs.Component]{})
	if !s.IsValid(h) {
		t.Fatal("new node should be valid")
	}
	if got := len(s.DrawOrder()); got != 0 {
		t.Errorf("draw order len = %d, want 0 before a mesh exists", got)
	}
	if s.NodeVisible(h) {
		t.Error("node without mesh should not be visible")
	}

	s.CreateNodeMesh(h, 4, Quads)
	s.CreateNodeMesh(h, 6, Triangles)
	if got := s.DrawOrder(); len(got) != 1 || got[0] != h {
		t.Errorf("draw order = %v, want [%v]", got, h)
	}
	if got := s.VertexCount(); got != 6 {
		t.Errorf("VertexCount = %d, want 6 after reallocation", got)
	}
}

func TestNewMeshIsOpaqueWhite(t *testing.T) {
	s := NewSystem(nil)
	h := s.CreateNode(ecs.Ref[ecs.Component]{})
	s.CreateNodeMesh(h, 3, Triangles)
	for i, v := range s.NodeVertices(h) {
		if v.ColorR != 1 || v.ColorG != 1 || v.ColorB != 1 || v.ColorA != 1 {
			t.Errorf("vertex %d color = %v,%v,%v,%v, want white", i, v.ColorR, v.ColorG, v.ColorB, v.ColorA)
		}
	}
}

func TestRemoveNodeInvalidatesHandle(t *testing.T) {
	s := NewSystem(nil)
	h := quad(s, geom.R(0, 0, 10, 10))
	if !s.RemoveNode(h) {
		t.Fatal("RemoveNode failed")
	}
	if s.IsValid(h) {
		t.Error("removed handle still valid")
	}
	if got := s.VertexCount(); got != 0 {
		t.Errorf("VertexCount = %d, want 0", got)
	}

	h2 := s.CreateNode(ecs.Ref[ecs.Component]{})
	if h2.Index != h.Index {
		t.Fatalf("slot not reused: %v vs %v", h2, h)
	}
	if s.IsValid(h) {
		t.Error("stale handle valid after slot reuse")
	}
	if len(s.DrawOrder()) != 0 {
		t.Error("removed node left in draw order")
	}
}

func TestInvalidHandleWarns(t *testing.T) {
	s, logs := observed(zapcore.WarnLevel)
	var bad handle.Handle

	if _, ok := s.Node(bad); ok {
		t.Error("Node(null) returned ok")
	}
	s.SetNodeDepth(bad, 3)
	s.SetNodeTransform(bad, geom.Identity)
	if s.UpdateNodeMesh(bad, 0, MeshData{}) {
		t.Error("UpdateNodeMesh on invalid handle succeeded")
	}
	if got := s.NodeGlobalBBox(bad); got != (geom.Rect{}) {
		t.Errorf("NodeGlobalBBox = %v, want empty", got)
	}
	if s.NodeVisible(bad) {
		t.Error("invalid node visible")
	}

	if got := logs.FilterMessage("trying to access invalid node handle").Len(); got != 6 {
		t.Errorf("warnings = %d, want 6", got)
	}
}

// --- Meshes ---

func TestUpdateNodeMeshClipsToCapacity(t *testing.T) {
	s, logs := observed(zapcore.WarnLevel)
	a := quad(s, geom.R(0, 0, 1, 1))
	b := quad(s, geom.R(100, 100, 1, 1))
	before := slices.Clone(s.NodeVertices(b))

	pts := []geom.Vec2{{X: 1}, {X: 2}, {X: 3}, {X: 4}, {X: 5}, {X: 6}}
	if !s.UpdateNodeMesh(a, 0, MeshData{Positions: pts}) {
		t.Fatal("UpdateNodeMesh failed")
	}
	if logs.Len() != 1 {
		t.Errorf("warnings = %d, want 1", logs.Len())
	}
	n, _ := s.Node(a)
	if n.Mesh.Size != 4 {
		t.Errorf("size = %d, want 4", n.Mesh.Size)
	}
	if got := s.NodeVertices(b); !slices.Equal(got, before) {
		t.Errorf("neighbor vertices changed: %v -> %v", before, got)
	}
	if got := s.NodeVertices(a)[3].DstX; got != 4 {
		t.Errorf("last vertex x = %v, want 4", got)
	}
}

func TestUpdateNodeMeshOffsetOutOfBounds(t *testing.T) {
	s, logs := observed(zapcore.WarnLevel)
	h := quad(s, geom.R(0, 0, 1, 1))
	if s.UpdateNodeMesh(h, 4, MeshData{Positions: []geom.Vec2{{}}}) {
		t.Error("write at capacity should fail")
	}
	if logs.Len() != 1 {
		t.Errorf("warnings = %d, want 1", logs.Len())
	}
}

func TestUpdateNodeMeshSize(t *testing.T) {
	s := NewSystem(nil)
	h := s.CreateNode(ecs.Ref[ecs.Component]{})
	s.CreateNodeMesh(h, 8, Triangles)

	s.UpdateNodeMesh(h, 0, MeshData{Positions: []geom.Vec2{{X: 0}, {X: 4}, {X: 4, Y: 2}}})
	n, _ := s.Node(h)
	if n.Mesh.Size != 3 {
		t.Errorf("size = %d, want 3", n.Mesh.Size)
	}
	if want := geom.R(0, 0, 4, 2); n.Mesh.BBox != want {
		t.Errorf("bbox = %v, want %v", n.Mesh.BBox, want)
	}

	s.UpdateNodeMesh(h, 5, MeshData{Colors: []color.Color{color.Black}, KeepSize: true})
	n, _ = s.Node(h)
	if n.Mesh.Size != 3 {
		t.Errorf("KeepSize changed size to %d", n.Mesh.Size)
	}
	if v := s.vertices.Slice(n.Mesh.Alloc)[5]; v.ColorR != 0 || v.ColorA != 1 {
		t.Errorf("color not written: %v", v)
	}
}

func TestSetNodeMeshSize(t *testing.T) {
	s, logs := observed(zapcore.WarnLevel)
	h := quad(s, geom.R(0, 0, 10, 10))
	if s.SetNodeMeshSize(h, 5) {
		t.Error("size beyond capacity accepted")
	}
	if logs.Len() != 1 {
		t.Errorf("warnings = %d, want 1", logs.Len())
	}
	if !s.SetNodeMeshSize(h, 1) {
		t.Fatal("SetNodeMeshSize(1) failed")
	}
	if got := s.NodeGlobalBBox(h); got != (geom.Rect{}) {
		t.Errorf("bbox of one vertex = %v, want empty", got)
	}
}

func TestGlobalBBoxFollowsTransform(t *testing.T) {
	s := NewSystem(nil)
	h := quad(s, geom.R(0, 0, 10, 5))
	s.SetNodeTransform(h, geom.Translation(geom.V(3, 4)))
	if got, want := s.NodeGlobalBBox(h), geom.R(3, 4, 10, 5); got != want {
		t.Errorf("bbox = %v, want %v", got, want)
	}
	s.SetNodeTransform(h, geom.ScaleAround(geom.Vec2{}, geom.V(2, 2)))
	s.ForceUpdate()
	if got, want := s.NodeGlobalBBox(h), geom.R(0, 0, 20, 10); got != want {
		t.Errorf("bbox = %v, want %v", got, want)
	}
}

func TestForceUpdateIdempotent(t *testing.T) {
	s := NewSystem(nil)
	l := s.CreateLayer("fg")
	s.SetLayerDepth(l, 2)
	a := quad(s, geom.R(0, 0, 1, 1))
	b := quad(s, geom.R(5, 5, 2, 2))
	s.SetNodeLayer(b, l)
	s.SetNodeTransform(a, geom.Translation(geom.V(1, 1)))

	s.ForceUpdate()
	order := slices.Clone(s.queue)
	boxA, boxB := s.NodeGlobalBBox(a), s.NodeGlobalBBox(b)
	s.ForceUpdate()
	if !slices.Equal(order, s.queue) {
		t.Errorf("order changed: %v -> %v", order, s.queue)
	}
	if s.NodeGlobalBBox(a) != boxA || s.NodeGlobalBBox(b) != boxB {
		t.Error("bounding boxes changed")
	}
}

// --- Options ---

func TestOptionsInheritance(t *testing.T) {
	s := NewSystem(nil)
	l := s.CreateLayer("bg")
	h := quad(s, geom.R(0, 0, 1, 1))
	s.SetNodeLayer(h, l)

	node := Options{Parallax: 2}
	layer := Options{Blend: BlendAdd, Flags: FlagNoParallax, Parallax: 3}
	root := Options{Blend: BlendMultiply, Flags: FlagScaleParallax}
	s.SetNodeOptions(h, node)
	s.SetLayerOptions(l, layer)
	s.SetRootOptions(root)

	want := Options{Parallax: 2, Blend: BlendAdd, Flags: FlagNoParallax | FlagScaleParallax}
	if got := s.NodeGlobalOptions(h); got != want {
		t.Errorf("global options = %+v, want %+v", got, want)
	}
	if got := node.Inherit(layer).Inherit(root); got != want {
		t.Errorf("Inherit chain = %+v, want %+v", got, want)
	}

	s.SetNodeLayer(h, handle.Null)
	want = Options{Parallax: 2, Blend: BlendMultiply, Flags: FlagScaleParallax}
	if got := s.NodeGlobalOptions(h); got != want {
		t.Errorf("root-only options = %+v, want %+v", got, want)
	}
}

func TestPatchOptions(t *testing.T) {
	s := NewSystem(nil)
	h := quad(s, geom.R(0, 0, 1, 1))
	s.SetNodeOptions(h, Options{Flags: FlagNoParallax, Parallax: 2})

	blend := BlendScreen
	s.PatchNodeOptions(h, OptionsPatch{Blend: &blend})
	n, _ := s.Node(h)
	want := Options{Flags: FlagNoParallax, Parallax: 2, Blend: BlendScreen}
	if n.Options != want {
		t.Errorf("patched = %+v, want %+v", n.Options, want)
	}

	flags := FlagInvisible
	s.PatchRootOptions(OptionsPatch{Flags: &flags})
	if s.NodeVisible(h) {
		t.Error("root invisibility not inherited")
	}
}

func TestParallaxFactor(t *testing.T) {
	tests := []struct {
		o    Options
		want bool
	}{
		{Options{}, false},
		{Options{Parallax: 1}, false},
		{Options{Parallax: 0.5}, true},
		{Options{Parallax: 0.5, Flags: FlagNoParallax}, false},
	}
	for _, tt := range tests {
		if got := tt.o.HasParallax(); got != tt.want {
			t.Errorf("%+v.HasParallax() = %v, want %v", tt.o, got, tt.want)
		}
	}
}

func TestBlendModeNames(t *testing.T) {
	for b := BlendDefault; b <= BlendNone; b++ {
		got, ok := ParseBlendMode(b.String())
		if !ok || got != b {
			t.Errorf("ParseBlendMode(%q) = %v, %v", b.String(), got, ok)
		}
	}
	if BlendDefault.EbitenBlend() != ebiten.BlendSourceOver {
		t.Error("default blend should be source-over")
	}
}

func TestParseFlags(t *testing.T) {
	f, err := ParseFlags("Invisible", "scale_parallax")
	if err != nil {
		t.Fatal(err)
	}
	if f != FlagInvisible|FlagScaleParallax {
		t.Errorf("flags = %b", f)
	}
	if got := f.Names(); !slices.Equal(got, []string{"invisible", "scale_parallax"}) {
		t.Errorf("Names = %v", got)
	}
	if _, err := ParseFlags("glow"); err == nil {
		t.Error("unknown flag accepted")
	}
}

// --- Layers ---

func TestCreateLayerReusesName(t *testing.T) {
	s := NewSystem(nil)
	a := s.CreateLayer("fg")
	if b := s.CreateLayer("fg"); b != a {
		t.Errorf("CreateLayer returned %v, want existing %v", b, a)
	}
	if got := len(s.Layers()); got != 1 {
		t.Errorf("layers = %d, want 1", got)
	}
	if got := s.FindLayer("missing"); !got.IsNull() {
		t.Errorf("FindLayer(missing) = %v", got)
	}
}

func TestSetLayerNameRejectsDuplicate(t *testing.T) {
	s, logs := observed(zapcore.ErrorLevel)
	a := s.CreateLayer("a")
	s.CreateLayer("b")
	if s.SetLayerName(a, "b") {
		t.Error("duplicate name accepted")
	}
	if logs.FilterMessage("a layer with that name already exists").Len() != 1 {
		t.Error("missing error log")
	}
	if l, _ := s.Layer(a); l.Name != "a" {
		t.Errorf("name = %q, want unchanged", l.Name)
	}
	if !s.SetLayerName(a, "a") || !s.SetLayerName(a, "c") {
		t.Error("valid rename rejected")
	}
}

func TestSetNodeLayerRejectsInvalid(t *testing.T) {
	s, logs := observed(zapcore.WarnLevel)
	h := quad(s, geom.R(0, 0, 1, 1))
	l := s.CreateLayer("gone")
	s.RemoveLayer(l)
	if s.SetNodeLayer(h, l) {
		t.Error("removed layer accepted")
	}
	if logs.FilterMessage("assigning invalid layer").Len() != 1 {
		t.Error("missing warning")
	}
}

func TestRemoveLayerFallsBackToRoot(t *testing.T) {
	s := NewSystem(nil)
	l := s.CreateLayer("hidden")
	s.SetLayerOptions(l, Options{Flags: FlagInvisible})
	h := quad(s, geom.R(0, 0, 1, 1))
	s.SetNodeLayer(h, l)
	if s.NodeVisible(h) {
		t.Fatal("node on hidden layer visible")
	}
	s.RemoveLayer(l)
	if !s.NodeVisible(h) {
		t.Error("node should fall back to root options")
	}
}

// --- Draw order ---

func TestDrawOrderLayerDepth(t *testing.T) {
	s := NewSystem(nil)
	rootNode := quad(s, geom.R(0, 0, 1, 1))
	deep := s.CreateLayer("deep")
	s.SetLayerDepth(deep, 5)
	h := quad(s, geom.R(10, 0, 1, 1))
	s.SetNodeLayer(h, deep)

	if got, want := s.DrawOrder(), []handle.Handle{h, rootNode}; !slices.Equal(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}

	r := &recorder{}
	if n := s.Render(r, nil); n != 2 {
		t.Fatalf("rendered %d, want 2", n)
	}
	if got, want := r.firstX(), []float32{10, 0}; !slices.Equal(got, want) {
		t.Errorf("draw x = %v, want %v", got, want)
	}
}

func TestDrawOrderExtremeDepths(t *testing.T) {
	s := NewSystem(nil)
	low := quad(s, geom.R(0, 0, 1, 1))
	high := quad(s, geom.R(1, 0, 1, 1))
	s.SetNodeDepth(low, math.MinInt)
	s.SetNodeDepth(high, math.MaxInt)

	if got, want := s.DrawOrder(), []handle.Handle{high, low}; !slices.Equal(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}

	top := s.CreateLayer("top")
	bottom := s.CreateLayer("bottom")
	s.SetLayerDepth(top, math.MinInt)
	s.SetLayerDepth(bottom, math.MaxInt)
	s.SetNodeLayer(low, bottom)
	s.SetNodeLayer(high, top)
	if got, want := s.DrawOrder(), []handle.Handle{low, high}; !slices.Equal(got, want) {
		t.Errorf("layered order = %v, want %v", got, want)
	}
}

func TestDrawOrderStable(t *testing.T) {
	s := NewSystem(nil)
	var hs []handle.Handle
	for i := range 5 {
		hs = append(hs, quad(s, geom.R(float64(i), 0, 1, 1)))
	}
	s.SetNodeDepth(hs[3], 1)
	s.RemoveNode(hs[1])

	want := []handle.Handle{hs[3], hs[0], hs[2], hs[4]}
	if got := s.DrawOrder(); !slices.Equal(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

// --- Render ---

func TestRenderSkips(t *testing.T) {
	s := NewSystem(nil)
	quad(s, geom.R(0, 0, 10, 10))

	hidden := quad(s, geom.R(20, 0, 10, 10))
	s.SetNodeOptions(hidden, Options{Flags: FlagInvisible})

	degenerate := s.CreateNode(ecs.Ref[ecs.Component]{})
	s.CreateNodeMesh(degenerate, 2, Triangles)

	far := quad(s, geom.R(500, 0, 10, 10))
	_ = far

	r := &recorder{}
	clip := geom.R(0, 0, 200, 200)
	if n := s.Render(r, &clip); n != 1 {
		t.Errorf("rendered %d, want 1", n)
	}
	want := Stats{Rendered: 1, Culled: 1, Hidden: 1, Skipped: 1}
	if got := s.Stats(); got != want {
		t.Errorf("stats = %+v, want %+v", got, want)
	}
	if s.NumRendered() != 1 {
		t.Errorf("NumRendered = %d", s.NumRendered())
	}
}

func TestRenderInvisibleRoot(t *testing.T) {
	s := NewSystem(nil)
	quad(s, geom.R(0, 0, 10, 10))
	s.SetRootOptions(Options{Flags: FlagInvisible})
	r := &recorder{}
	if n := s.Render(r, nil); n != 0 || len(r.calls) != 0 {
		t.Errorf("rendered %d with %d calls, want none", n, len(r.calls))
	}
}

func TestRenderTopologies(t *testing.T) {
	tests := []struct {
		topo  Topology
		n     int
		verts int
		inds  int
	}{
		{Quads, 4, 4, 6},
		{Triangles, 3, 3, 3},
		{TriangleStrip, 4, 4, 6},
		{TriangleFan, 5, 5, 9},
		{Lines, 2, 4, 6},
		{LineStrip, 3, 8, 12},
		{Points, 1, 4, 6},
	}
	for _, tt := range tests {
		s := NewSystem(nil)
		h := s.CreateNode(ecs.Ref[ecs.Component]{})
		s.CreateNodeMesh(h, tt.n, tt.topo)
		pts := make([]geom.Vec2, tt.n)
		for i := range pts {
			pts[i] = geom.V(float64(i), float64(i%2))
		}
		s.UpdateNodeMesh(h, 0, MeshData{Positions: pts})

		r := &recorder{}
		s.Render(r, nil)
		if len(r.calls) != 1 {
			t.Errorf("%v: calls = %d, want 1", tt.topo, len(r.calls))
			continue
		}
		if c := r.calls[0]; len(c.verts) != tt.verts || len(c.inds) != tt.inds {
			t.Errorf("%v: got %d verts %d inds, want %d/%d", tt.topo, len(c.verts), len(c.inds), tt.verts, tt.inds)
		}
	}
}

func TestRenderSinglePointAwayFromOrigin(t *testing.T) {
	s := NewSystem(nil)
	h := s.CreateNode(ecs.Ref[ecs.Component]{})
	s.CreateNodeMesh(h, 1, Points)
	s.UpdateNodeMesh(h, 0, MeshData{Positions: []geom.Vec2{geom.V(500, 500)}})

	if got := s.NodeGlobalBBox(h); got != geom.R(500, 500, 0, 0) {
		t.Errorf("bbox = %v, want zero-size at (500, 500)", got)
	}
	clip := geom.R(400, 400, 200, 200)
	if n := s.Render(&recorder{}, &clip); n != 1 {
		t.Errorf("rendered %d, want 1", n)
	}
}

func TestRenderUsesOptions(t *testing.T) {
	s := NewSystem(nil)
	h := quad(s, geom.R(0, 0, 10, 10))
	s.SetNodeOptions(h, Options{Blend: BlendAdd})
	r := &recorder{}
	s.Render(r, nil)
	if r.calls[0].blend != ebiten.BlendLighter {
		t.Errorf("blend = %+v, want lighter", r.calls[0].blend)
	}
	if r.calls[0].img != whitePixel() {
		t.Error("untextured mesh should draw with the white pixel")
	}
}

func TestParallaxTranslate(t *testing.T) {
	s := NewSystem(nil)
	h := quad(s, geom.R(0, 0, 10, 10))
	s.SetNodeOptions(h, Options{Parallax: 0.5})
	clip := geom.R(0, 0, 200, 200)

	r := &recorder{}
	s.Render(r, &clip)
	if v := r.calls[0].verts[0]; v.DstX != 47.5 || v.DstY != 47.5 {
		t.Errorf("first vertex = (%v, %v), want (47.5, 47.5)", v.DstX, v.DstY)
	}

	s.PatchNodeOptions(h, OptionsPatch{Flags: ptr(FlagNoParallax)})
	r = &recorder{}
	s.Render(r, &clip)
	if v := r.calls[0].verts[0]; v.DstX != 0 || v.DstY != 0 {
		t.Errorf("no-parallax vertex = (%v, %v), want origin", v.DstX, v.DstY)
	}
}

func TestParallaxScale(t *testing.T) {
	s := NewSystem(nil)
	h := quad(s, geom.R(0, 0, 10, 10))
	s.SetNodeOptions(h, Options{Parallax: 0.5, Flags: FlagScaleParallax})
	clip := geom.R(0, 0, 200, 200)

	r := &recorder{}
	s.Render(r, &clip)
	v := r.calls[0].verts
	if v[0].DstX != 50 || v[2].DstX != 55 {
		t.Errorf("x = %v..%v, want 50..55", v[0].DstX, v[2].DstX)
	}
}

func TestDrawBoxes(t *testing.T) {
	s := NewSystem(nil)
	quad(s, geom.R(0, 0, 10, 10))
	s.SetDrawBoxes(true)
	r := &recorder{}
	s.Render(r, nil)
	if len(r.calls) != 2 {
		t.Fatalf("calls = %d, want node and box", len(r.calls))
	}
	if got := len(r.calls[1].verts); got != 16 {
		t.Errorf("box verts = %d, want 16", got)
	}
}

func TestRenderDebugLogs(t *testing.T) {
	s, logs := observed(zapcore.DebugLevel)
	quad(s, geom.R(0, 0, 10, 10))
	s.SetDebug(true)
	s.Render(&recorder{}, nil)
	if logs.FilterMessage("frame").Len() != 1 {
		t.Error("missing frame log")
	}
}

func TestRenderCamera(t *testing.T) {
	s := NewSystem(nil)
	quad(s, geom.R(0, 0, 10, 10))
	quad(s, geom.R(500, 0, 10, 10))
	cam := NewCamera(geom.R(0, 0, 100, 100))

	r := &recorder{}
	if n := s.RenderCamera(r, cam); n != 1 {
		t.Fatalf("rendered %d, want 1", n)
	}
	if v := r.calls[0].verts[0]; v.DstX != 50 || v.DstY != 50 {
		t.Errorf("screen pos = (%v, %v), want (50, 50)", v.DstX, v.DstY)
	}
}

// --- Hit testing ---

func TestNodeAtPosition(t *testing.T) {
	s := NewSystem(nil)
	back := quad(s, geom.R(5, 5, 10, 10))
	s.SetNodeDepth(back, 1)
	front := quad(s, geom.R(0, 0, 10, 10))

	line := s.CreateNode(ecs.Ref[ecs.Component]{})
	s.CreateNodeMesh(line, 2, Lines)
	s.UpdateNodeMesh(line, 0, MeshData{Positions: []geom.Vec2{{X: 30, Y: 30}, {X: 40, Y: 40}}})

	tests := []struct {
		p    geom.Vec2
		want handle.Handle
	}{
		{geom.V(7, 7), front},
		{geom.V(2, 2), front},
		{geom.V(12, 12), back},
		{geom.V(35, 35), handle.Null},
		{geom.V(50, 50), handle.Null},
	}
	for _, tt := range tests {
		if got := s.NodeAtPosition(tt.p); got != tt.want {
			t.Errorf("NodeAtPosition(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}

	s.SetNodeOptions(front, Options{Flags: FlagInvisible})
	if got := s.NodeAtPosition(geom.V(7, 7)); got != back {
		t.Errorf("hidden front: got %v, want %v", got, back)
	}
}

func TestNodeAtPositionUsesTransform(t *testing.T) {
	s := NewSystem(nil)
	h := quad(s, geom.R(0, 0, 10, 10))
	s.SetNodeTransform(h, geom.Translation(geom.V(100, 0)))
	if got := s.NodeAtPosition(geom.V(105, 5)); got != h {
		t.Errorf("got %v, want %v", got, h)
	}
	if got := s.NodeAtPosition(geom.V(5, 5)); !got.IsNull() {
		t.Errorf("untransformed position hit %v", got)
	}
}

// --- Clear ---

func TestClearKeepsLayers(t *testing.T) {
	s := NewSystem(nil)
	s.CreateLayer("fg")
	s.SetRootOptions(Options{Parallax: 2})
	h := quad(s, geom.R(0, 0, 1, 1))
	s.Clear()
	if s.IsValid(h) || s.Len() != 0 || s.VertexCount() != 0 {
		t.Error("nodes survived Clear")
	}
	if len(s.Layers()) != 1 || s.RootOptions().Parallax != 2 {
		t.Error("Clear dropped layers or root options")
	}
	s.Destroy()
	if len(s.Layers()) != 0 || s.RootOptions() != (Options{}) {
		t.Error("Destroy kept layers or root options")
	}
}

func TestClearResetsCounters(t *testing.T) {
	s := NewSystem(nil)
	quad(s, geom.R(0, 0, 10, 10))
	s.SetDrawBoxes(true)
	s.Render(&recorder{}, nil)
	if s.NumRendered() != 1 {
		t.Fatalf("NumRendered = %d, want 1", s.NumRendered())
	}

	s.Clear()
	if s.NumRendered() != 0 || s.Stats() != (Stats{}) {
		t.Errorf("counters after Clear: %d, %+v", s.NumRendered(), s.Stats())
	}
	if !s.DrawBoxes() {
		t.Error("Clear reset the draw-boxes toggle")
	}
}

func ptr[T any](v T) *T { return &v }
