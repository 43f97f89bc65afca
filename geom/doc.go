// Package geom holds the 2D math shared by rendering, collision and physics:
// vectors, axis-aligned rectangles, affine transforms, line and sweep
// intersection tests, and point containment for triangle topologies.
//
// The coordinate system has its origin at the top-left with Y increasing
// downward.
package geom
