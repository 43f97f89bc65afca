package gamelib

import (
	"encoding/json"
	"fmt"

	"github.com/phanxgames/gamelib/geom"
)

// scriptStep is a single action in a script.
type scriptStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// scriptFile is the top-level JSON structure of a script.
type scriptFile struct {
	Steps []scriptStep `json:"steps"`
}

var scriptActions = map[string]bool{
	"screenshot": true,
	"click":      true,
	"drag":       true,
	"wait":       true,
	"edit":       true,
	"play":       true,
	"focus":      true,
}

// Script sequences injected input, editor toggles and screenshots across
// frames. Attach it to a Game with SetScript.
type Script struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a JSON script.
func LoadScript(data []byte) (*Script, error) {
	var file scriptFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(file.Steps) == 0 {
		return nil, fmt.Errorf("parse script: no steps")
	}
	for i, st := range file.Steps {
		if !scriptActions[st.Action] {
			return nil, fmt.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &Script{steps: file.Steps}, nil
}

// SetScript attaches a script; it runs one step per Update, before input.
func (g *Game) SetScript(s *Script) {
	g.script = s
}

// Done reports whether every step has executed.
func (s *Script) Done() bool {
	return s.done
}

func (s *Script) step(g *Game) {
	if s.done {
		return
	}
	// Injected events drain before the next step.
	if len(g.injectQueue) > 0 {
		return
	}
	if s.waitCount > 0 {
		s.waitCount--
		return
	}
	if s.cursor >= len(s.steps) {
		s.done = true
		return
	}

	st := s.steps[s.cursor]
	s.cursor++

	switch st.Action {
	case "screenshot":
		g.Screenshot(st.Label)
	case "click":
		g.InjectClick(st.X, st.Y)
	case "drag":
		g.InjectDrag(geom.V(st.FromX, st.FromY), geom.V(st.ToX, st.ToY), st.Frames)
	case "wait":
		if st.Frames > 0 {
			s.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "edit":
		g.Editing = true
	case "play":
		g.Editing = false
	case "focus":
		g.Editor.Focus(g.Camera, float32(st.Frames)/float32(g.tps))
	}

	if s.cursor >= len(s.steps) && s.waitCount == 0 && len(g.injectQueue) == 0 {
		s.done = true
	}
}
