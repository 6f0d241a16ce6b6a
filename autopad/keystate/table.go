// Package keystate holds the virtual key state written by scripted playback
// and read by the driver's state queries.
package keystate

import "github.com/valerio/go-autopad/autopad/keymap"

const (
	// MaxPorts is the number of controller ports the table covers.
	MaxPorts = 8

	// KeyboardPort is the synthetic row holding injected keyboard input.
	// It sits past the last real port so scripted keys never collide with
	// per-port state.
	KeyboardPort = MaxPorts
)

// Table is a (port, key symbol) matrix of pressed bits. The zero value is
// ready to use with every key released.
type Table struct {
	state [MaxPorts + 1][keymap.KeyLast]bool
}

// NewTable creates an empty key state table.
func NewTable() *Table {
	return &Table{}
}

// Set records a key as pressed or released. Out-of-range ports or keys are
// ignored.
func (t *Table) Set(port int, key keymap.Key, pressed bool) {
	if port < 0 || port > MaxPorts || key >= keymap.KeyLast {
		return
	}
	t.state[port][key] = pressed
}

// Pressed reports whether a key is currently pressed. Out-of-range ports or
// keys read as released.
func (t *Table) Pressed(port int, key keymap.Key) bool {
	if port < 0 || port > MaxPorts || key >= keymap.KeyLast {
		return false
	}
	return t.state[port][key]
}

// Reset releases every key on every port.
func (t *Table) Reset() {
	t.state = [MaxPorts + 1][keymap.KeyLast]bool{}
}

// PressedKeys returns the keys currently pressed on a port, in symbol order.
func (t *Table) PressedKeys(port int) []keymap.Key {
	if port < 0 || port > MaxPorts {
		return nil
	}
	var keys []keymap.Key
	for k, pressed := range t.state[port] {
		if pressed {
			keys = append(keys, keymap.Key(k))
		}
	}
	return keys
}
