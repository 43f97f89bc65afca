package render

import (
	"math"

	"github.com/phanxgames/gamelib/ecs"
	"github.com/phanxgames/gamelib/geom"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// scrollAnim holds active scroll-to tweens for camera X and Y.
type scrollAnim struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	doneX  bool
	doneY  bool
}

// Camera controls the view into the scene: position, zoom, rotation, and viewport.
type Camera struct {
	// Pos is the world-space position the camera centers on.
	Pos geom.Vec2
	// Zoom is the scale factor (1.0 = no zoom, >1 = zoom in, <1 = zoom out).
	Zoom float64
	// Rotation is the camera rotation in radians (clockwise).
	Rotation float64
	// Viewport is the screen-space rectangle this camera renders into.
	Viewport geom.Rect

	follow       ecs.Ref[ecs.Component]
	followOffset geom.Vec2
	followLerp   float64

	// BoundsEnabled clamps the camera position so the visible area stays
	// within Bounds.
	BoundsEnabled bool
	Bounds        geom.Rect

	scroll *scrollAnim
}

// NewCamera creates a camera centered on the origin.
func NewCamera(viewport geom.Rect) *Camera {
	return &Camera{Zoom: 1, Viewport: viewport}
}

// Follow makes the camera track the center of c's bounds with the given
// offset and lerp factor. A lerp of 1 snaps immediately. The camera stops
// following once c is detached.
func (c *Camera) Follow(target ecs.Component, offset geom.Vec2, lerp float64) {
	c.follow = ecs.RefOf[ecs.Component](target)
	c.followOffset = offset
	c.followLerp = lerp
}

// Unfollow stops tracking the current target.
func (c *Camera) Unfollow() {
	c.follow = ecs.Ref[ecs.Component]{}
}

// ScrollTo animates the camera to p over duration seconds.
func (c *Camera) ScrollTo(p geom.Vec2, duration float32, easeFn ease.TweenFunc) {
	if easeFn == nil {
		easeFn = ease.OutQuad
	}
	c.scroll = &scrollAnim{
		tweenX: gween.New(float32(c.Pos.X), float32(p.X), duration, easeFn),
		tweenY: gween.New(float32(c.Pos.Y), float32(p.Y), duration, easeFn),
	}
}

// Scrolling reports whether a ScrollTo animation is running.
func (c *Camera) Scrolling() bool { return c.scroll != nil }

// SetBounds enables camera bounds clamping.
func (c *Camera) SetBounds(bounds geom.Rect) {
	c.BoundsEnabled = true
	c.Bounds = bounds
}

// ClearBounds disables camera bounds clamping.
func (c *Camera) ClearBounds() {
	c.BoundsEnabled = false
}

// Update advances follow, scroll, and bounds clamping by dt seconds.
func (c *Camera) Update(dt float32) {
	if t, ok := c.follow.Get(); ok {
		if tr := t.Transform(); tr != nil {
			target := tr.BBox().Center().Add(c.followOffset)
			c.Pos = c.Pos.Add(target.Sub(c.Pos).Scale(c.followLerp))
		}
	}

	if c.scroll != nil {
		if !c.scroll.doneX {
			val, done := c.scroll.tweenX.Update(dt)
			c.Pos.X = float64(val)
			c.scroll.doneX = done
		}
		if !c.scroll.doneY {
			val, done := c.scroll.tweenY.Update(dt)
			c.Pos.Y = float64(val)
			c.scroll.doneY = done
		}
		if c.scroll.doneX && c.scroll.doneY {
			c.scroll = nil
		}
	}

	if c.BoundsEnabled {
		c.clampToBounds()
	}
}

// clampToBounds restricts camera position so the visible area stays within Bounds.
func (c *Camera) clampToBounds() {
	halfW := c.Viewport.Width / (2 * c.Zoom)
	halfH := c.Viewport.Height / (2 * c.Zoom)

	minX := c.Bounds.X + halfW
	maxX := c.Bounds.Right() - halfW
	minY := c.Bounds.Y + halfH
	maxY := c.Bounds.Bottom() - halfH

	// If bounds are smaller than visible area, center the camera.
	if minX > maxX {
		c.Pos.X = c.Bounds.X + c.Bounds.Width/2
	} else {
		c.Pos.X = math.Max(minX, math.Min(c.Pos.X, maxX))
	}
	if minY > maxY {
		c.Pos.Y = c.Bounds.Y + c.Bounds.Height/2
	} else {
		c.Pos.Y = math.Max(minY, math.Min(c.Pos.Y, maxY))
	}
}

// ViewMatrix maps world to screen coordinates:
// Translate(viewport center) * Scale(zoom) * Rotate(-rotation) * Translate(-pos).
func (c *Camera) ViewMatrix() geom.Transform {
	center := c.Viewport.Center()
	return geom.Translation(center).
		Multiply(geom.NewTransform(geom.Vec2{}, geom.V(c.Zoom, c.Zoom), -c.Rotation, geom.Vec2{})).
		Multiply(geom.Translation(c.Pos.Neg()))
}

// WorldToScreen converts world coordinates to screen coordinates.
func (c *Camera) WorldToScreen(p geom.Vec2) geom.Vec2 {
	return c.ViewMatrix().Apply(p)
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(p geom.Vec2) geom.Vec2 {
	return c.ViewMatrix().Invert().Apply(p)
}

// VisibleBounds returns the axis-aligned bounding rect of the camera's visible
// area in world space.
func (c *Camera) VisibleBounds() geom.Rect {
	return c.ViewMatrix().Invert().ApplyRect(c.Viewport)
}
