// Package backend defines the monitor surface for harness runs: something
// that can show what the injected input is doing and hand back control
// events from the operator.
package backend

import (
	"github.com/valerio/go-autopad/autopad/keymap"
	"github.com/valerio/go-autopad/autopad/script"
)

// Action is a control request coming back from a monitor.
type Action int

const (
	ActionQuit Action = iota
	ActionPauseToggle
	ActionStepFrame
)

// InputEvent carries one control action from the monitor to the harness.
type InputEvent struct {
	Action Action
}

// Config holds configuration shared by all monitor backends.
type Config struct {
	Title   string
	Verbose bool
}

// View is the per-frame snapshot a monitor renders. All fields are
// read-only for the backend.
type View struct {
	Frame   uint64
	Pressed []keymap.Key
	Steps   []script.Step
	Handled int
	Dropped int
	Paused  bool
}

// Backend renders harness state once per frame and reports operator input.
type Backend interface {
	// Init configures the backend. Required before the first Update.
	Init(config Config) error

	// Update renders the current view and returns any control events the
	// operator produced since the last call.
	Update(view *View) ([]InputEvent, error)

	// Cleanup releases backend resources when shutting down.
	Cleanup() error
}

// KeyboardLayout arranges the displayable key symbols into rows, roughly
// following a physical keyboard. Shared by the visual backends.
var KeyboardLayout = [][]keymap.Key{
	{
		keymap.KeyEscape,
		keymap.KeyF1, keymap.KeyF2, keymap.KeyF3, keymap.KeyF4,
		keymap.KeyF5, keymap.KeyF6, keymap.KeyF7, keymap.KeyF8,
		keymap.KeyF9, keymap.KeyF10, keymap.KeyF11, keymap.KeyF12,
	},
	{
		keymap.Key1, keymap.Key2, keymap.Key3, keymap.Key4, keymap.Key5,
		keymap.Key6, keymap.Key7, keymap.Key8, keymap.Key9, keymap.Key0,
		keymap.KeyMinus, keymap.KeyEquals, keymap.KeyBackspace,
	},
	{
		keymap.KeyTab,
		keymap.KeyQ, keymap.KeyW, keymap.KeyE, keymap.KeyR, keymap.KeyT,
		keymap.KeyY, keymap.KeyU, keymap.KeyI, keymap.KeyO, keymap.KeyP,
	},
	{
		keymap.KeyA, keymap.KeyS, keymap.KeyD, keymap.KeyF, keymap.KeyG,
		keymap.KeyH, keymap.KeyJ, keymap.KeyK, keymap.KeyL,
		keymap.KeySemicolon, keymap.KeyReturn,
	},
	{
		keymap.KeyLShift,
		keymap.KeyZ, keymap.KeyX, keymap.KeyC, keymap.KeyV, keymap.KeyB,
		keymap.KeyN, keymap.KeyM, keymap.KeyComma, keymap.KeyPeriod,
		keymap.KeySlash, keymap.KeyRShift,
	},
	{
		keymap.KeyLCtrl, keymap.KeyLAlt, keymap.KeySpace,
		keymap.KeyRAlt, keymap.KeyRCtrl,
	},
	{
		keymap.KeyLeft, keymap.KeyUp, keymap.KeyDown, keymap.KeyRight,
	},
}
