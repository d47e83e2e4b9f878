package tenkai

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
)

// scriptStep is a single action in an input script.
type scriptStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	X      int     `json:"x,omitempty"`
	Y      int     `json:"y,omitempty"`
	DX     float64 `json:"dx,omitempty"`
	DY     float64 `json:"dy,omitempty"`
	Zoom   bool    `json:"zoom,omitempty"`
	Button string  `json:"button,omitempty"`
	Key    string  `json:"key,omitempty"`
	Frames int     `json:"frames,omitempty"`

	button ebiten.MouseButton
	key    ebiten.Key
}

type scriptFile struct {
	Steps []scriptStep `json:"steps"`
}

// Script feeds a recorded sequence of input to an engine, one step per
// update, for automated runs. Attach it with Engine.SetScript.
type Script struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a JSON input script:
//
//	{"steps": [
//	  {"action": "move", "x": 10, "y": 20},
//	  {"action": "click", "x": 10, "y": 20, "button": "right"},
//	  {"action": "wheel", "dy": -1, "zoom": true},
//	  {"action": "key", "key": "Space"},
//	  {"action": "wait", "frames": 30},
//	  {"action": "screenshot", "label": "walked"},
//	  {"action": "mark", "label": "done"}
//	]}
func LoadScript(data []byte) (*Script, error) {
	var f scriptFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(f.Steps) == 0 {
		return nil, fmt.Errorf("parse script: no steps")
	}
	for i := range f.Steps {
		if err := f.Steps[i].resolve(); err != nil {
			return nil, fmt.Errorf("parse script: step %d: %w", i, err)
		}
	}
	return &Script{steps: f.Steps}, nil
}

func (st *scriptStep) resolve() error {
	switch st.Action {
	case "move", "wheel", "wait", "mark", "screenshot":
	case "click":
		switch strings.ToLower(st.Button) {
		case "", "left":
			st.button = ebiten.MouseButtonLeft
		case "right":
			st.button = ebiten.MouseButtonRight
		case "middle":
			st.button = ebiten.MouseButtonMiddle
		default:
			return fmt.Errorf("unknown button %q", st.Button)
		}
	case "key":
		if err := st.key.UnmarshalText([]byte(st.Key)); err != nil {
			return fmt.Errorf("unknown key %q", st.Key)
		}
	default:
		return fmt.Errorf("unknown action %q", st.Action)
	}
	return nil
}

// Done reports whether every step has run and its input been consumed.
func (r *Script) Done() bool { return r.done }

// SetScript attaches r; each Update advances it before reading input.
func (e *Engine) SetScript(r *Script) { e.script = r }

// step advances the script by one update.
func (r *Script) step(e *Engine) {
	if r.done {
		return
	}
	if len(e.injectQueue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "move":
		e.InjectMove(st.X, st.Y)
	case "click":
		e.InjectClick(st.X, st.Y, st.button)
	case "wheel":
		e.InjectWheel(st.DX, st.DY, st.Zoom)
	case "key":
		e.InjectKeyUp(st.key)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this update counts as one
		}
	case "screenshot":
		e.Screenshot(st.Label)
	case "mark":
		e.Log.WithField("label", st.Label).Info("script mark")
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(e.injectQueue) == 0 {
		r.done = true
	}
}
