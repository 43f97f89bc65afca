// Package render is a retained-mode scene of handle-addressed nodes.
//
// Every node owns a slice of one shared vertex arena, a transform, a depth
// and an optional layer. Options (visibility flags, parallax, blend mode,
// texture and shader) are resolved per node by inheriting from the node's
// layer and then from the root options.
//
// Bounding boxes and draw order are computed lazily: mutators only mark
// state dirty, and ForceUpdate flushes it. Every query that depends on
// bounding boxes or order (Render, NodeAtPosition, DrawOrder,
// NodeGlobalBBox) flushes first.
//
// Invalid node or layer handles are never fatal. Each accessor logs a
// warning and returns a zero value.
package render
