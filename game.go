package gamelib

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/gamelib/collision"
	"github.com/phanxgames/gamelib/config"
	"github.com/phanxgames/gamelib/ecs"
	"github.com/phanxgames/gamelib/editor"
	"github.com/phanxgames/gamelib/geom"
	"github.com/phanxgames/gamelib/physics"
	"github.com/phanxgames/gamelib/render"
	"github.com/yohamta/donburi"
	"go.uber.org/zap"
)

// Game owns the engine systems and implements ebiten.Game.
type Game struct {
	Entities  *ecs.Manager
	Collision *collision.System
	Render    *render.System
	Camera    *render.Camera
	Editor    *editor.SelectTool
	// Params is shared by every physics body the game creates; reloads
	// update it in place.
	Params *physics.Params
	// World carries engine events; subscribe with Subscribe.
	World donburi.World

	Background color.Color
	// Editing routes the mouse to the select tool and outlines the
	// selection.
	Editing bool
	ShowFPS bool
	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir string
	// Pointer reads the mouse in world space. Nil disables real mouse
	// input; injected events still apply.
	Pointer func(cam *render.Camera) (geom.Vec2, bool)
	// OnUpdate runs every tick after the entities step. A non-nil error
	// stops the game.
	OnUpdate func(dt float64) error

	log             *zap.Logger
	tps             int
	width, height   int
	injectQueue     []pointerEvent
	screenshotQueue []string
	script          *Script
}

// NewGame builds the engine systems from cfg. A nil cfg uses the defaults;
// a nil log discards output.
func NewGame(cfg *config.Config, log *zap.Logger) (*Game, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if log == nil {
		log = zap.NewNop()
	}
	w, h := cfg.Window.Width, cfg.Window.Height

	params := cfg.PhysicsParams()
	world := donburi.NewWorld()
	mgr := ecs.NewManager(log)
	mgr.SetEvents(ecs.NewDonburiStore(world))
	col := collision.NewSystem(log)

	g := &Game{
		Entities:      mgr,
		Collision:     col,
		Render:        render.NewSystem(log),
		Camera:        render.NewCamera(geom.R(0, 0, float64(w), float64(h))),
		Editor:        editor.NewSelectTool(mgr, col, log),
		Params:        &params,
		World:         world,
		ScreenshotDir: "screenshots",
		Pointer:       editor.ReadMouse,
		log:           log.Named("game"),
	}
	g.Camera.Pos = geom.V(float64(w)/2, float64(h)/2)
	if err := g.Reload(cfg); err != nil {
		return nil, err
	}
	return g, nil
}

// Logger returns the game's logger.
func (g *Game) Logger() *zap.Logger { return g.log }

// Reload applies the tunable parts of cfg: physics params, layers,
// background, tick rate and editor grid. Window size is fixed at creation.
func (g *Game) Reload(cfg *config.Config) error {
	if err := cfg.ApplyLayers(g.Render); err != nil {
		return err
	}
	*g.Params = cfg.PhysicsParams()
	g.Background = cfg.BackgroundColor()
	g.Editor.Grid = cfg.Editor.Grid
	g.tps = cfg.Window.TPS
	if g.width == 0 {
		g.width, g.height = cfg.Window.Width, cfg.Window.Height
	}
	g.log.Info("config applied",
		zap.Float64("gravity", g.Params.Gravity),
		zap.Int("layers", len(cfg.Layers)),
		zap.Int("tps", g.tps))
	return nil
}

// NewBody creates a physics body sharing the game's params.
func (g *Game) NewBody() *physics.Body {
	return physics.NewBody(g.Collision, g.Params, g.log)
}

// Subscribe registers fn for every engine event.
func (g *Game) Subscribe(fn func(ecs.Event)) {
	ecs.EngineEventType.Subscribe(g.World, func(_ donburi.World, e ecs.Event) { fn(e) })
}

// TPS returns the tick rate the game steps at.
func (g *Game) TPS() int { return g.tps }

// Update advances one tick: scripted and real input, entities, the
// OnUpdate hook, the camera, and event delivery.
func (g *Game) Update() error {
	dt := 1 / float64(g.tps)

	if g.script != nil {
		g.script.step(g)
	}
	if !g.processInjectedInput() && g.Editing && g.Pointer != nil {
		p, pressed := g.Pointer(g.Camera)
		g.Editor.Process(p, pressed)
	}

	g.Entities.Update(dt)
	if g.OnUpdate != nil {
		if err := g.OnUpdate(dt); err != nil {
			return err
		}
	}
	g.Camera.Update(float32(dt))
	ecs.EngineEventType.ProcessEvents(g.World)
	return nil
}

// Draw renders the scene through the camera, then the editor overlay and
// the FPS counter.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.Background)
	g.Render.RenderCamera(screen, g.Camera)
	if g.Editing {
		g.Editor.Draw(screen, g.Camera)
	}
	if g.ShowFPS {
		drawFPS(screen)
	}
	g.flushScreenshots(screen)
}

// Layout keeps the configured logical screen size.
func (g *Game) Layout(int, int) (int, int) {
	return g.width, g.height
}
