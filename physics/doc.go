// Package physics moves entities with a Quake-style clipped integrator.
//
// A Body steps its entity once per Update: it checks for ground below the
// entity's collision shape, applies gravity or ground friction, then sweeps
// the shape along its velocity, clipping the velocity against every solid
// surface it touches. The entity transform is moved once at the end of the
// step.
package physics
