// Package driver exposes the scripted input engine through the host
// frontend's input driver contract: init, per-frame poll, state query,
// capability report and teardown.
package driver

import (
	"errors"
	"log/slog"

	"github.com/valerio/go-autopad/autopad/keymap"
	"github.com/valerio/go-autopad/autopad/keystate"
	"github.com/valerio/go-autopad/autopad/playback"
	"github.com/valerio/go-autopad/autopad/script"
)

// Device classes understood by State, mirroring the host's numbering.
const (
	DeviceJoypad   uint = 1
	DeviceKeyboard uint = 3
)

// JoypadMask queries the whole pad as a bitmask, one bit per BindID.
const JoypadMask uint = 256

// Config carries the host-provided context for a driver instance.
type Config struct {
	// ScriptPath names the step script to load at init. Empty or missing
	// is fine: the driver runs with nothing scheduled.
	ScriptPath string

	// FrameCounter reads the host's current video frame. Required. The
	// driver only ever reads it; the host advances it.
	FrameCounter func() uint64

	// Binds is the keyboard binding table for port 0. Defaults to the
	// stock layout.
	Binds *keymap.BindSet

	// Lut translates bound key codes into key state symbols. Defaults to
	// the identity table.
	Lut *keymap.Lut
}

// Driver is one scripted input driver instance. The host serializes all
// calls: New, then any number of Poll and State, then Close.
type Driver struct {
	frameCounter func() uint64
	binds        *keymap.BindSet
	lut          *keymap.Lut
	keys         *keystate.Table
	engine       *playback.Engine
	loaded       *script.Script
}

// New initializes the driver and loads the script, if any. A malformed
// script is not fatal: the steps parsed before the error stay scheduled and
// the problem is logged.
func New(cfg Config) (*Driver, error) {
	if cfg.FrameCounter == nil {
		return nil, errors.New("driver: a frame counter is required")
	}
	if cfg.Binds == nil {
		cfg.Binds = keymap.DefaultBinds()
	}
	if cfg.Lut == nil {
		cfg.Lut = keymap.IdentityLut()
	}

	loaded, err := script.Load(cfg.ScriptPath)
	if err != nil {
		slog.Warn("continuing with partial schedule",
			"path", cfg.ScriptPath, "steps", loaded.Len(), "error", err)
	}

	keys := keystate.NewTable()
	d := &Driver{
		frameCounter: cfg.FrameCounter,
		binds:        cfg.Binds,
		lut:          cfg.Lut,
		keys:         keys,
		engine:       playback.New(loaded, keys),
		loaded:       loaded,
	}

	slog.Debug("scripted input driver ready",
		"steps", loaded.Len(), "dropped", loaded.Dropped)
	return d, nil
}

// Poll runs the playback engine against the host's current frame. Called
// once per frame tick; never blocks.
func (d *Driver) Poll() {
	d.engine.Poll(d.frameCounter())
}

// State answers an input state query. Only port 0 sees synthetic input;
// every other port, and every device class the driver does not play, reads
// as idle.
func (d *Driver) State(port, device, index, id uint) int16 {
	if port != 0 {
		return 0
	}

	switch device {
	case DeviceJoypad:
		if id == JoypadMask {
			var ret int16
			for i := uint(0); i < uint(keymap.BindCount); i++ {
				if d.bindPressed(i) {
					ret |= 1 << i
				}
			}
			return ret
		}
		if d.bindPressed(id) {
			return 1
		}
	case DeviceKeyboard:
		if d.bindPressed(id) {
			return 1
		}
	}

	return 0
}

// bindPressed reports whether the key bound to a pad input is down on the
// synthetic keyboard row.
func (d *Driver) bindPressed(id uint) bool {
	if id >= uint(keymap.BindCount) {
		return false
	}
	bind := d.binds[id]
	if !bind.Valid {
		return false
	}
	return d.keys.Pressed(keystate.KeyboardPort, d.lut.Translate(bind.Key))
}

// Capabilities reports the device classes this driver can serve.
func (d *Driver) Capabilities() uint64 {
	return 1 << DeviceJoypad
}

// PressedKeys returns the keys currently held on the synthetic keyboard
// row, for monitors and diagnostics.
func (d *Driver) PressedKeys() []keymap.Key {
	return d.keys.PressedKeys(keystate.KeyboardPort)
}

// Schedule returns the loaded steps, including handled flags. Read-only.
func (d *Driver) Schedule() []script.Step {
	return d.engine.Steps()
}

// Remaining counts steps that have not fired yet.
func (d *Driver) Remaining() int {
	return d.engine.Remaining()
}

// Dropped reports how many script steps were discarded at load time because
// the schedule was full.
func (d *Driver) Dropped() int {
	return d.loaded.Dropped
}

// Close releases the driver's state. Every key reads as released
// afterwards. Safe to call more than once.
func (d *Driver) Close() {
	d.keys.Reset()
}
