package collision

import (
	"github.com/phanxgames/gamelib/geom"
	"go.uber.org/zap"
)

// TraceResult is the outcome of a trace. Obj is nil when nothing was hit.
type TraceResult struct {
	Obj  Collidable
	Isec geom.Intersection
}

// Hit reports whether the trace hit anything.
func (r TraceResult) Hit() bool {
	return r.Isec.Hit
}

// Predicate filters point and rect query candidates. Returning true accepts
// the candidate and ends the query.
type Predicate func(c Collidable) bool

// TracePredicate filters trace candidates by their intersection.
type TracePredicate func(c Collidable, isec geom.Intersection) bool

func acceptAny(Collidable) bool                         { return true }
func acceptAnyTrace(Collidable, geom.Intersection) bool { return true }

// System is an unordered registry of non-owned shapes.
type System struct {
	objs []Collidable
	log  *zap.Logger
}

// NewSystem creates an empty System. A nil logger disables logging.
func NewSystem(log *zap.Logger) *System {
	if log == nil {
		log = zap.NewNop()
	}
	return &System{log: log.Named("collision")}
}

// Logger returns the system's logger.
func (s *System) Logger() *zap.Logger { return s.log }

// Add registers c. Adding a shape twice has no effect.
func (s *System) Add(c Collidable) {
	for _, o := range s.objs {
		if o == c {
			return
		}
	}
	s.objs = append(s.objs, c)
}

// Remove unregisters c. Returns false if c was not registered.
func (s *System) Remove(c Collidable) bool {
	for i, o := range s.objs {
		if o == c {
			s.objs = append(s.objs[:i], s.objs[i+1:]...)
			return true
		}
	}
	return false
}

// Destroy unregisters every shape.
func (s *System) Destroy() {
	clear(s.objs)
	s.objs = s.objs[:0]
}

// Len returns the number of registered shapes.
func (s *System) Len() int { return len(s.objs) }

// Each calls fn for every shape until fn returns false.
func (s *System) Each(fn func(Collidable) bool) {
	for _, o := range s.objs {
		if !fn(o) {
			return
		}
	}
}

// Intersect returns the first shape containing p that carries flags.
func (s *System) Intersect(p geom.Vec2, flags Flags) Collidable {
	return s.FindAll(p, flags, acceptAny)
}

// IntersectRect returns the first shape overlapping r that carries flags.
func (s *System) IntersectRect(r geom.Rect, flags Flags) Collidable {
	return s.FindAllRect(r, flags, acceptAny)
}

// FindAll calls pred for every shape containing p that carries flags and
// returns the first one pred accepts.
func (s *System) FindAll(p geom.Vec2, flags Flags, pred Predicate) Collidable {
	for _, o := range s.objs {
		if o.Flags().Has(flags) && o.IntersectPoint(p) && pred(o) {
			return o
		}
	}
	return nil
}

// FindAllRect calls pred for every shape overlapping r that carries flags
// and returns the first one pred accepts.
func (s *System) FindAllRect(r geom.Rect, flags Flags, pred Predicate) Collidable {
	for _, o := range s.objs {
		if o.Flags().Has(flags) && o.IntersectRect(r).Hit && pred(o) {
			return o
		}
	}
	return nil
}

// Trace casts l against every shape but self and returns the earliest hit.
func (s *System) Trace(l geom.Line, self Collidable, flags Flags) TraceResult {
	return s.TraceFunc(l, acceptAnyTrace, self, flags)
}

// TraceFunc is Trace with a candidate filter.
func (s *System) TraceFunc(l geom.Line, pred TracePredicate, self Collidable, flags Flags) TraceResult {
	return s.trace(func(o Collidable) geom.Intersection { return o.IntersectLine(l) }, pred, self, flags)
}

// TraceRect sweeps r along vel against every shape but self and returns the
// earliest hit.
func (s *System) TraceRect(r geom.Rect, vel geom.Vec2, self Collidable, flags Flags) TraceResult {
	return s.TraceRectFunc(r, vel, acceptAnyTrace, self, flags)
}

// TraceRectFunc is TraceRect with a candidate filter.
func (s *System) TraceRectFunc(r geom.Rect, vel geom.Vec2, pred TracePredicate, self Collidable, flags Flags) TraceResult {
	return s.trace(func(o Collidable) geom.Intersection { return o.Sweep(r, vel) }, pred, self, flags)
}

// trace scans every candidate; an earlier hit found later in the registry
// replaces the current best, ties keep the first.
func (s *System) trace(test func(Collidable) geom.Intersection, pred TracePredicate, self Collidable, flags Flags) TraceResult {
	var best TraceResult
	for _, o := range s.objs {
		if o == self || !o.Flags().Has(flags) {
			continue
		}
		isec := test(o)
		if !isec.Hit || (best.Hit() && isec.Time >= best.Isec.Time) {
			continue
		}
		if pred(o, isec) {
			best = TraceResult{Obj: o, Isec: isec}
		}
	}
	return best
}
