// Package editor holds in-game editing tools built on the engine's query
// APIs. SelectTool picks entities under the mouse through the collision
// registry, resolves draw depth through their mesh components, and drags
// the selection on a snapping grid.
package editor
