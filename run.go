package gamelib

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/gamelib/config"
	"go.uber.org/zap"
)

// RunConfig holds the window settings used by Run.
type RunConfig struct {
	Title     string
	Width     int
	Height    int
	TPS       int
	ShowFPS   bool
	Resizable bool
}

// RunConfigFrom returns the window settings of cfg.
func RunConfigFrom(cfg *config.Config) RunConfig {
	return RunConfig{
		Title:  cfg.Window.Title,
		Width:  cfg.Window.Width,
		Height: cfg.Window.Height,
		TPS:    cfg.Window.TPS,
	}
}

// Run opens a window and runs g until it exits. It blocks.
func Run(g *Game, cfg RunConfig) error {
	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	if cfg.Width > 0 && cfg.Height > 0 {
		ebiten.SetWindowSize(cfg.Width, cfg.Height)
	}
	if cfg.TPS > 0 {
		g.tps = cfg.TPS
	}
	ebiten.SetTPS(g.tps)
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	g.ShowFPS = g.ShowFPS || cfg.ShowFPS

	g.log.Info("starting", zap.String("title", cfg.Title), zap.Int("tps", g.tps))
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}
