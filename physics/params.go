package physics

import "github.com/phanxgames/gamelib/geom"

// Params are the tunables shared by every Body that points at them.
type Params struct {
	GravityDir   geom.Vec2 `json:"gravityDirection" yaml:"gravity_direction" toml:"gravity_direction"`
	Gravity      float64   `json:"gravity" yaml:"gravity" toml:"gravity"`
	Friction     float64   `json:"friction" yaml:"friction" toml:"friction"`
	StopFriction float64   `json:"stopFriction" yaml:"stop_friction" toml:"stop_friction"`
	StopSpeed    float64   `json:"stopSpeed" yaml:"stop_speed" toml:"stop_speed"`
}

// DefaultParams returns downward gravity of 3000 units/s², friction 0.5
// and a stop friction of 10 below a speed of 100.
func DefaultParams() Params {
	return Params{
		GravityDir:   geom.Vec2{X: 0, Y: 1},
		Gravity:      3000,
		Friction:     0.5,
		StopFriction: 10,
		StopSpeed:    100,
	}
}

const (
	// Epsilon is the fraction of a blocked move given back so a body never
	// rests exactly on a surface.
	Epsilon = 0.03125
	// SnapSpeed is the velocity component magnitude below which a clipped
	// component is zeroed.
	SnapSpeed = 0.2
	// MaxClipPlanes bounds the surfaces a single step clips against.
	MaxClipPlanes = 4
)
