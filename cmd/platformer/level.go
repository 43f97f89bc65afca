package main

import (
	"image/color"

	"github.com/phanxgames/gamelib"
	"github.com/phanxgames/gamelib/collision"
	"github.com/phanxgames/gamelib/config"
	"github.com/phanxgames/gamelib/ecs"
	"github.com/phanxgames/gamelib/geom"
	"github.com/phanxgames/gamelib/physics"
	"github.com/phanxgames/gamelib/render"
	"golang.org/x/image/colornames"
)

const (
	walkSpeed = 320.0
	walkAccel = 12.0
	airAccel  = 3.0
	jumpSpeed = 1100.0

	levelWidth  = 2000.0
	levelHeight = 900.0
)

var defaultLayers = []config.Layer{
	{Name: "sky", Depth: 20, Parallax: 0.25},
	{Name: "hills", Depth: 10, Parallax: 0.5, Flags: []string{"scale_parallax"}},
	{Name: "world", Depth: 0},
}

// input is one frame of player intent.
type input struct {
	left, right, jump bool
}

type player struct {
	entity *ecs.Entity
	mesh   *render.MeshComponent
	body   *physics.Body
	spawn  geom.Vec2
}

// control steers the body along the ground and jumps when grounded. A
// player that falls out of the level respawns.
func (p *player) control(dt float64, in input) {
	var wish float64
	if in.left {
		wish--
	}
	if in.right {
		wish++
	}
	if wish != 0 {
		accel := airAccel
		if p.body.Grounded() {
			accel = walkAccel
		}
		p.body.Accelerate(geom.V(wish, 0), walkSpeed, accel, dt)
	}
	if in.jump && p.body.Grounded() {
		p.body.Vel.Y = -jumpSpeed
	}
	if p.entity.Transform().Position().Y > levelHeight+200 {
		p.respawn()
	}
}

func (p *player) respawn() {
	p.body.Vel = geom.Vec2{}
	ecs.SetPosition(p.entity.Transform(), p.spawn)
}

type level struct {
	player *player
	ground *ecs.Entity
	ledge  *ecs.Entity
	crates []*ecs.Entity
}

// buildLevel fills g with a backdrop, a solid ground, a one-way ledge,
// a few crates and the player.
func buildLevel(g *gamelib.Game, cfg *config.Config) *level {
	l := &level{}

	backdrop(g, "sky", geom.R(-levelWidth, -levelHeight, 3*levelWidth, 3*levelHeight), colornames.Skyblue)
	for i := range 6 {
		x := float64(i) * 420
		hill := geom.NewPolygon(geom.Convex, geom.NormalBoth)
		hill.Add(geom.V(x, 700))
		hill.Add(geom.V(x+220, 380))
		hill.Add(geom.V(x+440, 700))
		e := g.Entities.Add("hill")
		m := render.NewMeshComponent(g.Render)
		e.Add(m)
		m.SetPolygon(hill, colornames.Seagreen)
		m.SetLayer("hills")
	}

	l.ground = solid(g, "ground", geom.Convex, []geom.Vec2{
		{X: 0, Y: 700}, {X: levelWidth, Y: 700}, {X: levelWidth, Y: levelHeight}, {X: 0, Y: levelHeight},
	}, colornames.Saddlebrown)
	solid(g, "ramp", geom.Convex, []geom.Vec2{
		{X: 900, Y: 700}, {X: 1200, Y: 560}, {X: 1200, Y: 700},
	}, colornames.Peru)

	// one-way ledge: only a falling body lands on it
	l.ledge = g.Entities.Add("ledge")
	ledge := []geom.Vec2{{X: 300, Y: 540}, {X: 600, Y: 540}}
	shape := collision.NewPolygon(g.Collision, geom.LineStrip, collision.Solid)
	for _, v := range ledge {
		shape.Add(v)
	}
	shape.SetNormalDir(geom.NormalRight)
	l.ledge.Add(shape)
	lm := render.NewMeshComponent(g.Render)
	l.ledge.Add(lm)
	lm.SetVertices(ledge, render.LineStrip, colornames.White)
	lm.SetLayer("world")

	for i, x := range []float64{700, 1400, 1440} {
		c := crate(g, geom.R(x, 660, 40, 40))
		m, _ := ecs.Find[*render.MeshComponent](c)
		m.SetDepth(i + 1)
		l.crates = append(l.crates, c)
	}

	l.player = spawnPlayer(g, geom.V(100, 600), cfg.Physics.Overbounce)

	g.Camera.SetBounds(geom.R(0, 0, levelWidth, levelHeight))
	l.setEditing(g, false)
	return l
}

func (l *level) setEditing(g *gamelib.Game, on bool) {
	g.Editing = on
	if on {
		g.Camera.Unfollow()
		return
	}
	g.Camera.Follow(l.player.mesh, geom.V(0, -80), 0.15)
}

func backdrop(g *gamelib.Game, layer string, r geom.Rect, c color.Color) *ecs.Entity {
	e := g.Entities.Add(layer)
	m := render.NewMeshComponent(g.Render)
	e.Add(m)
	m.SetRect(r, c)
	m.SetLayer(layer)
	return e
}

// solid adds a static collision polygon with a matching mesh.
func solid(g *gamelib.Game, name string, t geom.PolygonType, pts []geom.Vec2, c color.Color) *ecs.Entity {
	e := g.Entities.Add(name)
	shape := collision.NewPolygon(g.Collision, t, collision.Solid)
	for _, v := range pts {
		shape.Add(v)
	}
	e.Add(shape)
	m := render.NewMeshComponent(g.Render)
	e.Add(m)
	m.SetPolygon(shape.Geometry(), c)
	m.SetLayer("world")
	return e
}

// crate adds a pickable solid box.
func crate(g *gamelib.Game, r geom.Rect) *ecs.Entity {
	e := g.Entities.Add("crate")
	m := render.NewMeshComponent(g.Render)
	e.Add(m)
	m.SetRect(geom.R(0, 0, r.Width, r.Height), colornames.Burlywood)
	m.SetLayer("world")
	ecs.SetPosition(m, r.Pos())
	mask := collision.NewAABBMask(g.Collision, collision.Solid)
	e.Add(mask)
	mask.SetSource(m)
	return e
}

func spawnPlayer(g *gamelib.Game, at geom.Vec2, overbounce float64) *player {
	e := g.Entities.Add("player")
	m := render.NewMeshComponent(g.Render)
	e.Add(m)
	m.SetRect(geom.R(0, 0, 24, 40), colornames.Orangered)
	m.SetLayer("world")
	m.SetDepth(-1)
	mask := collision.NewAABBMask(g.Collision, 0)
	e.Add(mask)
	mask.SetSource(m)
	body := g.NewBody()
	body.Overbounce = overbounce
	e.Add(body)

	p := &player{entity: e, mesh: m, body: body, spawn: at}
	p.respawn()
	return p
}
