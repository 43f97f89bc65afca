// Package collision is a flat registry of collidable shapes answering point,
// line, rect and sweep queries.
//
// The System never owns a shape and performs no shape math itself: it filters
// candidates by Flags, dispatches to the shape, and for traces keeps the
// earliest time of impact. Shapes are ECS components that register on Init
// and unregister on Quit, so a shape is never left in the registry after its
// entity is gone.
package collision
