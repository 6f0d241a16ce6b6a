// Package playback fires scheduled script steps against the virtual key
// state, synchronized to the host's frame counter.
package playback

import (
	"log/slog"

	"github.com/valerio/go-autopad/autopad/keymap"
	"github.com/valerio/go-autopad/autopad/keystate"
	"github.com/valerio/go-autopad/autopad/script"
)

// Engine owns the loaded schedule and applies due steps to the key state
// table. It never advances the frame counter itself.
type Engine struct {
	steps []script.Step
	keys  *keystate.Table
}

// New creates an engine over a loaded script. The engine takes ownership of
// the script's steps; a nil script yields an engine with nothing scheduled.
func New(s *script.Script, keys *keystate.Table) *Engine {
	e := &Engine{keys: keys}
	if s != nil {
		e.steps = s.Steps
	}
	return e
}

// Poll fires every unhandled step whose trigger frame has passed. A step
// fires on the first poll where frame is strictly greater than its trigger
// frame, one frame after its nominal time. The whole schedule is scanned on
// every call; it is small and bounded, and steps may share a trigger frame.
func (e *Engine) Poll(frame uint64) {
	for i := range e.steps {
		step := &e.steps[i]
		if step.Handled || frame <= step.Frame {
			continue
		}

		switch step.Action {
		case script.ActionPressKey:
			if key := keymap.Key(step.ParamNum); key < keymap.KeyLast {
				e.keys.Set(keystate.KeyboardPort, key, true)
				slog.Debug("pressing key", "key", key.Name(), "frame", frame)
			}
		case script.ActionReleaseKey:
			if key := keymap.Key(step.ParamNum); key < keymap.KeyLast {
				e.keys.Set(keystate.KeyboardPort, key, false)
				slog.Debug("releasing key", "key", key.Name(), "frame", frame)
			}
		default:
			slog.Warn("unrecognized action in script step, skipping",
				"action", uint(step.Action), "step", i)
		}

		// Every branch retires the step, including unrecognized actions
		// and out-of-range key symbols.
		step.Handled = true
	}
}

// Steps returns the schedule, including handled flags. The slice is shared;
// callers must treat it as read-only.
func (e *Engine) Steps() []script.Step {
	return e.steps
}

// Remaining counts the steps that have not yet fired.
func (e *Engine) Remaining() int {
	n := 0
	for i := range e.steps {
		if !e.steps[i].Handled {
			n++
		}
	}
	return n
}
