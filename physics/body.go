package physics

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/phanxgames/gamelib/collision"
	"github.com/phanxgames/gamelib/ecs"
	"github.com/phanxgames/gamelib/geom"
	"github.com/phanxgames/gamelib/handle"
	"go.uber.org/zap"
)

// Body is the physics component of an entity. It drives the entity by the
// bounds of the first collision shape attached to the same entity.
type Body struct {
	ecs.Base

	Vel        geom.Vec2
	Overbounce float64

	params *Params
	sys    *collision.System
	log    *zap.Logger
	shape  ecs.Ref[collision.Collidable]
	ground collision.Collidable
}

// NewBody creates a body tracing against sys. Bodies sharing params see each
// other's tunable changes; nil params gives the body private defaults.
func NewBody(sys *collision.System, params *Params, log *zap.Logger) *Body {
	if params == nil {
		p := DefaultParams()
		params = &p
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Body{Overbounce: 1, params: params, sys: sys, log: log.Named("physics")}
}

func (b *Body) Name() string        { return "QPhysics" }
func (b *Body) Params() *Params     { return b.params }
func (b *Body) SetParams(p *Params) { b.params = p }

// Ground returns the shape the body stands on, or nil while airborne.
func (b *Body) Ground() collision.Collidable { return b.ground }

// Grounded reports whether the body stands on a solid shape.
func (b *Body) Grounded() bool { return b.ground != nil }

// Shape returns the collision shape the body moves.
func (b *Body) Shape() (collision.Collidable, bool) { return b.shape.Get() }

func (b *Body) Init(e *ecs.Entity) bool {
	if b.sys == nil {
		return false
	}
	b.Refresh()
	return true
}

func (b *Body) Quit() {
	b.shape = ecs.Ref[collision.Collidable]{}
	b.ground = nil
}

// Refresh picks up the entity's collision shape.
func (b *Body) Refresh() {
	e := b.Entity()
	if e == nil {
		return
	}
	if c, ok := ecs.Find[collision.Collidable](e); ok {
		b.shape = ecs.RefOf[collision.Collidable](c)
	} else {
		b.shape = ecs.Ref[collision.Collidable]{}
	}
}

// Accelerate adds velocity towards wishdir until the speed along it reaches
// wishspeed.
func (b *Body) Accelerate(wishdir geom.Vec2, wishspeed, accel, dt float64) {
	add := wishspeed - b.Vel.Dot(wishdir)
	if add <= 0 {
		return
	}
	speed := accel * dt * wishspeed * b.params.Friction
	if speed > add {
		speed = add
	}
	b.Vel = b.Vel.Add(wishdir.Scale(speed))
}

// Update advances the body by dt seconds. It does nothing if dt is not
// positive or the body has no shape with a non-empty box.
func (b *Body) Update(dt float64) {
	if dt <= 0 {
		return
	}
	self, ok := b.shape.Get()
	if !ok {
		return
	}
	box := self.BBox()
	if box.IsEmpty() {
		return
	}

	b.checkGround(self, box)

	p := b.params
	if b.ground == nil {
		b.Vel = b.Vel.Add(p.GravityDir.Scale(p.Gravity * dt))
	} else if speed := b.Vel.Len(); speed > 0 {
		var drop float64
		if speed < p.StopSpeed {
			drop = p.StopFriction * dt
		} else {
			drop = speed * p.Friction * dt
		}
		b.Vel = b.Vel.Scale(math.Max(speed-drop, 0) / speed)
	}

	b.clipMove(self, box, dt)
}

type entityOwned interface {
	EntityHandle() handle.Handle
}

func ownerOf(c collision.Collidable) handle.Handle {
	if o, ok := c.(entityOwned); ok {
		return o.EntityHandle()
	}
	return handle.Null
}

func (b *Body) checkGround(self collision.Collidable, box geom.Rect) {
	tr := b.sys.TraceRect(box, b.params.GravityDir, self, collision.Solid)
	prev := b.ground
	b.ground = tr.Obj
	if (prev == nil) == (b.ground == nil) {
		return
	}

	mgr := b.Manager()
	if mgr == nil {
		return
	}
	ev := ecs.Event{Type: ecs.EventAirborne, Entity: b.EntityHandle()}
	if b.ground != nil {
		ev.Type = ecs.EventLanded
		ev.Other = ownerOf(b.ground)
	}
	mgr.Events().EmitEvent(ev)
}

// clipVelocity removes the part of v going into a surface with normal n,
// scaled by overbounce, and zeroes tiny components.
func clipVelocity(v, n geom.Vec2, overbounce float64) geom.Vec2 {
	v = v.Sub(n.Scale(n.Dot(v) * overbounce))
	if math.Abs(v.X) < SnapSpeed {
		v.X = 0
	}
	if math.Abs(v.Y) < SnapSpeed {
		v.Y = 0
	}
	return v
}

func (b *Body) clipMove(self collision.Collidable, box geom.Rect, dt float64) {
	orig := b.Vel
	var moved geom.Vec2
	left := dt

	for range MaxClipPlanes {
		if left <= 0 || b.Vel.IsZero() {
			break
		}
		frame := b.Vel.Scale(left)
		tr := b.sys.TraceRect(box.Translated(moved), frame, self, collision.Solid)
		if !tr.Hit() {
			moved = moved.Add(frame)
			break
		}
		if tr.Isec.Time <= 0 {
			b.log.Debug("stuck",
				zap.Stringer("entity", b.EntityHandle()),
				zap.Float64("nx", tr.Isec.Normal.X), zap.Float64("ny", tr.Isec.Normal.Y))
			moved = moved.Add(tr.Isec.Normal)
			break
		}

		b.Vel = clipVelocity(b.Vel, tr.Isec.Normal, b.Overbounce)
		moved = moved.Add(frame.Scale(tr.Isec.Time - Epsilon))
		left -= left * tr.Isec.Time
		if b.Vel.Dot(orig) <= 0 {
			break
		}
	}

	if e := b.Entity(); e != nil && !moved.IsZero() {
		e.Transform().Move(moved)
	}
}

type bodyJSON struct {
	Vel        [2]float64      `json:"vel"`
	Overbounce float64         `json:"overbounce"`
	Global     json.RawMessage `json:"global,omitempty"`
}

// LoadJSON reads the velocity and overbounce. A "global" object updates the
// shared tunables.
func (b *Body) LoadJSON(data []byte) error {
	in := bodyJSON{Vel: [2]float64{b.Vel.X, b.Vel.Y}, Overbounce: b.Overbounce}
	if err := json.Unmarshal(data, &in); err != nil {
		return fmt.Errorf("load physics: %w", err)
	}
	params := *b.params
	if len(in.Global) > 0 {
		if err := json.Unmarshal(in.Global, &params); err != nil {
			return fmt.Errorf("load physics: global: %w", err)
		}
	}
	b.Vel = geom.Vec2{X: in.Vel[0], Y: in.Vel[1]}
	b.Overbounce = in.Overbounce
	*b.params = params
	return nil
}

// WriteJSON serializes the velocity and overbounce.
func (b *Body) WriteJSON() ([]byte, error) {
	return json.Marshal(bodyJSON{Vel: [2]float64{b.Vel.X, b.Vel.Y}, Overbounce: b.Overbounce})
}
