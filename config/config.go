// Package config loads engine settings from TOML or YAML files and
// reloads them when the file changes.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/phanxgames/gamelib/geom"
	"github.com/phanxgames/gamelib/physics"
	"github.com/phanxgames/gamelib/render"
	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Window  Window  `yaml:"window" toml:"window"`
	Logging Logging `yaml:"logging" toml:"logging"`
	Physics Physics `yaml:"physics" toml:"physics"`
	Layers  []Layer `yaml:"layers" toml:"layers"`
	Editor  Editor  `yaml:"editor" toml:"editor"`
}

type Window struct {
	Title      string `yaml:"title" toml:"title"`
	Width      int    `yaml:"width" toml:"width"`
	Height     int    `yaml:"height" toml:"height"`
	TPS        int    `yaml:"tps" toml:"tps"`
	Background string `yaml:"background" toml:"background"` // "#rrggbb[aa]" or a CSS color name
}

type Logging struct {
	Level  string `yaml:"level" toml:"level"`
	Format string `yaml:"format" toml:"format"` // "json" or "console"
}

type Physics struct {
	GravityDir   [2]float64 `yaml:"gravity_direction" toml:"gravity_direction"`
	Gravity      float64    `yaml:"gravity" toml:"gravity"`
	Friction     float64    `yaml:"friction" toml:"friction"`
	StopFriction float64    `yaml:"stop_friction" toml:"stop_friction"`
	StopSpeed    float64    `yaml:"stop_speed" toml:"stop_speed"`
	Overbounce   float64    `yaml:"overbounce" toml:"overbounce"`
}

// Layer describes one render layer. Flags are render flag names such as
// "no_parallax"; Blend is a blend mode name such as "add".
type Layer struct {
	Name     string   `yaml:"name" toml:"name"`
	Depth    int      `yaml:"depth" toml:"depth"`
	Parallax float64  `yaml:"parallax" toml:"parallax"`
	Flags    []string `yaml:"flags" toml:"flags"`
	Blend    string   `yaml:"blend" toml:"blend"`
}

type Editor struct {
	Grid float64 `yaml:"grid" toml:"grid"`
}

// Default returns the settings used for keys a file leaves out.
func Default() *Config {
	p := physics.DefaultParams()
	return &Config{
		Window: Window{
			Title:      "Unnamed Game",
			Width:      640,
			Height:     480,
			TPS:        60,
			Background: "#000000",
		},
		Logging: Logging{
			Level:  "info",
			Format: "console",
		},
		Physics: Physics{
			GravityDir:   [2]float64{p.GravityDir.X, p.GravityDir.Y},
			Gravity:      p.Gravity,
			Friction:     p.Friction,
			StopFriction: p.StopFriction,
			StopSpeed:    p.StopSpeed,
			Overbounce:   1,
		},
	}
}

// Load reads path, decoding it by extension: .toml, .yaml or .yml.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes data in the format named by ext over the defaults and
// validates the result.
func Parse(data []byte, ext string) (*Config, error) {
	cfg := Default()
	switch strings.ToLower(ext) {
	case ".toml":
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q", ext)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every problem found in c.
func (c *Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if c.Window.TPS <= 0 {
		errs = append(errs, fmt.Errorf("window tps %d must be positive", c.Window.TPS))
	}
	if _, err := ParseColor(c.Window.Background); err != nil {
		errs = append(errs, err)
	}
	if c.Physics.GravityDir == [2]float64{} && c.Physics.Gravity != 0 {
		errs = append(errs, errors.New("physics gravity_direction is zero"))
	}

	seen := make(map[string]bool, len(c.Layers))
	for i, l := range c.Layers {
		if l.Name == "" {
			errs = append(errs, fmt.Errorf("layer %d has no name", i))
		} else if seen[l.Name] {
			errs = append(errs, fmt.Errorf("duplicate layer %q", l.Name))
		}
		seen[l.Name] = true
		if _, err := l.Options(); err != nil {
			errs = append(errs, fmt.Errorf("layer %q: %w", l.Name, err))
		}
	}
	return errors.Join(errs...)
}

// PhysicsParams returns the physics section as shared body tunables.
func (c *Config) PhysicsParams() physics.Params {
	return physics.Params{
		GravityDir:   geom.V(c.Physics.GravityDir[0], c.Physics.GravityDir[1]),
		Gravity:      c.Physics.Gravity,
		Friction:     c.Physics.Friction,
		StopFriction: c.Physics.StopFriction,
		StopSpeed:    c.Physics.StopSpeed,
	}
}

// Options converts the layer's flags, parallax and blend mode.
func (l Layer) Options() (render.Options, error) {
	flags, err := render.ParseFlags(l.Flags...)
	if err != nil {
		return render.Options{}, err
	}
	blend := render.BlendDefault
	if l.Blend != "" {
		b, ok := render.ParseBlendMode(l.Blend)
		if !ok {
			return render.Options{}, fmt.Errorf("unknown blend mode %q", l.Blend)
		}
		blend = b
	}
	return render.Options{Flags: flags, Parallax: l.Parallax, Blend: blend}, nil
}

// ApplyLayers creates the configured layers in sys, or updates the depth
// and options of layers that already exist. Layers not named in c are left
// alone.
func (c *Config) ApplyLayers(sys *render.System) error {
	for _, l := range c.Layers {
		o, err := l.Options()
		if err != nil {
			return fmt.Errorf("layer %q: %w", l.Name, err)
		}
		h := sys.CreateLayer(l.Name)
		sys.SetLayerDepth(h, l.Depth)
		sys.PatchLayerOptions(h, render.OptionsPatch{Flags: &o.Flags, Parallax: &o.Parallax, Blend: &o.Blend})
	}
	return nil
}

// BackgroundColor returns the parsed window background, black if invalid.
func (c *Config) BackgroundColor() color.NRGBA {
	col, err := ParseColor(c.Window.Background)
	if err != nil {
		return color.NRGBA{A: 0xff}
	}
	return col
}

// ParseColor accepts "#rgb", "#rrggbb", "#rrggbbaa" or a CSS color name.
// Hex alpha is straight, not premultiplied.
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		if c, ok := colornames.Map[strings.ToLower(s)]; ok {
			return color.NRGBA(c), nil
		}
		return color.NRGBA{}, fmt.Errorf("unknown color %q", s)
	}

	hex := s[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return color.NRGBA{}, fmt.Errorf("bad color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("bad color %q: %w", s, err)
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}
