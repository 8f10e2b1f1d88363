package ebitenhost

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// scriptStep is a single action of an input script.
type scriptStep struct {
	Action string `yaml:"action"`
	Key    string `yaml:"key,omitempty"`
	Label  string `yaml:"label,omitempty"`
	Frames int    `yaml:"frames,omitempty"`
}

type script struct {
	Steps []scriptStep `yaml:"steps"`
}

// ScriptRunner replays keyboard input and screenshots across frames for
// automated runs. Attach it with Host.SetScriptRunner.
//
// Actions:
//
//	keydown    hold Key
//	keyup      release Key
//	press      hold Key for one frame
//	wait       do nothing for Frames frames
//	screenshot capture the frame as Label
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	releases  []string
	done      bool
}

// LoadScript parses a YAML (or JSON) input script.
func LoadScript(data []byte) (*ScriptRunner, error) {
	var s script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse input script: %w", err)
	}
	if len(s.Steps) == 0 {
		return nil, errors.New("parse input script: no steps")
	}
	for i, st := range s.Steps {
		switch st.Action {
		case "keydown", "keyup", "press":
			if st.Key == "" {
				return nil, fmt.Errorf("parse input script: step %d: %s needs a key", i, st.Action)
			}
		case "wait", "screenshot":
		default:
			return nil, fmt.Errorf("parse input script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &ScriptRunner{steps: s.Steps}, nil
}

// SetScriptRunner attaches a runner. Its step runs at the start of every
// Update, before the keyboard is polled.
func (h *Host) SetScriptRunner(r *ScriptRunner) {
	h.runner = r
}

// Done reports whether every step has run and no key is left held by a
// press action.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// step advances the runner by one frame.
func (r *ScriptRunner) step(h *Host) {
	if r.done {
		return
	}
	in := h.game.Input()
	for _, k := range r.releases {
		in.KeyUp(k)
	}
	r.releases = r.releases[:0]

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
	case "keydown":
		in.KeyDown(st.Key)
	case "keyup":
		in.KeyUp(st.Key)
	case "press":
		in.KeyDown(st.Key)
		r.releases = append(r.releases, st.Key)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "screenshot":
		h.Screenshot(st.Label)
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(r.releases) == 0 {
		r.done = true
	}
}
