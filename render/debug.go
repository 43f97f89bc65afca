package render

import (
	"time"

	"go.uber.org/zap"
)

// Stats holds the counters of the last Render call.
type Stats struct {
	Rendered int
	Culled   int
	Hidden   int
	// Skipped counts degenerate meshes.
	Skipped int
	// Elapsed is only measured in debug mode.
	Elapsed time.Duration
}

// SetDebug toggles per-frame timing and a debug log line per Render.
func (s *System) SetDebug(on bool) { s.debug = on }

// Stats returns the counters of the last Render call.
func (s *System) Stats() Stats { return s.stats }

func (s *System) debugLog(stats Stats) {
	s.log.Debug("frame",
		zap.Int("rendered", stats.Rendered),
		zap.Int("culled", stats.Culled),
		zap.Int("hidden", stats.Hidden),
		zap.Int("skipped", stats.Skipped),
		zap.Int("vertices", s.vertices.Len()),
		zap.Duration("elapsed", stats.Elapsed))
}
