package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/phanxgames/gamelib"
	"github.com/phanxgames/gamelib/config"
	"github.com/phanxgames/gamelib/ecs"
	"github.com/phanxgames/gamelib/internal/logging"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "config file (.toml, .yaml or .yml)")
	scriptPath := flag.String("script", "", "JSON input script to play back")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "platformer: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if len(cfg.Layers) == 0 {
		cfg.Layers = defaultLayers
	}

	log, err := logging.New(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "platformer: build logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	g, err := gamelib.NewGame(cfg, log)
	if err != nil {
		log.Fatal("create game", zap.Error(err))
	}
	lvl := buildLevel(g, cfg)

	if *scriptPath != "" {
		data, err := os.ReadFile(*scriptPath)
		if err != nil {
			log.Fatal("read script", zap.String("path", *scriptPath), zap.Error(err))
		}
		script, err := gamelib.LoadScript(data)
		if err != nil {
			log.Fatal("load script", zap.Error(err))
		}
		g.SetScript(script)
	}

	g.Subscribe(func(e ecs.Event) {
		name := "none"
		if ent := g.Entities.Get(e.Entity); ent != nil {
			name = ent.Name
		}
		log.Debug("event", zap.Stringer("type", e.Type), zap.String("entity", name))
	})

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	reloads := make(chan *config.Config, 1)
	if *configPath != "" {
		go func() {
			err := config.Watch(ctx, *configPath, func(c *config.Config) {
				select {
				case reloads <- c:
				default:
				}
			}, func(err error) {
				log.Warn("config reload failed", zap.Error(err))
			})
			if err != nil {
				log.Error("config watch stopped", zap.Error(err))
			}
		}()
	}

	g.OnUpdate = func(dt float64) error {
		select {
		case <-ctx.Done():
			return ebiten.Termination
		case c := <-reloads:
			if err := g.Reload(c); err != nil {
				log.Warn("config rejected", zap.Error(err))
			} else {
				lvl.player.body.Overbounce = c.Physics.Overbounce
			}
		default:
		}
		return lvl.update(g, dt)
	}

	err = gamelib.Run(g, gamelib.RunConfigFrom(cfg))
	if err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal("run", zap.Error(err))
	}
}

// update handles the demo's keyboard shortcuts and player control.
func (l *level) update(g *gamelib.Game, dt float64) error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		return ebiten.Termination
	case inpututil.IsKeyJustPressed(ebiten.KeyTab):
		l.setEditing(g, !g.Editing)
	case inpututil.IsKeyJustPressed(ebiten.KeyF12):
		g.Screenshot("platformer")
	case inpututil.IsKeyJustPressed(ebiten.KeyF1):
		g.Render.SetDrawBoxes(!g.Render.DrawBoxes())
	}

	if g.Editing {
		if inpututil.IsKeyJustPressed(ebiten.KeyF) {
			g.Editor.Focus(g.Camera, 0.4)
		}
		return nil
	}
	l.player.control(dt, input{
		left:  ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft),
		right: ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight),
		jump:  inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsKeyJustPressed(ebiten.KeyW),
	})
	return nil
}
