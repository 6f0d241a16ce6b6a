// Package autopad ties the scripted input driver to a monitor backend and a
// frame pacer, standing in for the host frontend's per-frame loop.
package autopad

import (
	"fmt"

	"github.com/valerio/go-autopad/autopad/backend"
	"github.com/valerio/go-autopad/autopad/driver"
	"github.com/valerio/go-autopad/autopad/keymap"
	"github.com/valerio/go-autopad/autopad/timing"
)

// Config describes one harness run.
type Config struct {
	// ScriptPath names the step script. Optional.
	ScriptPath string

	// Backend displays the run. Required.
	Backend backend.Backend

	// Limiter paces the loop. Defaults to no pacing.
	Limiter timing.Limiter

	// Binds overrides the port 0 keyboard bindings.
	Binds *keymap.BindSet

	// Title labels the monitor window.
	Title string

	// Verbose lowers the monitor log level to debug.
	Verbose bool
}

// Harness owns the frame counter and drives the driver exactly the way a
// host frontend would: advance the frame, poll, then query.
type Harness struct {
	driver  *driver.Driver
	backend backend.Backend
	limiter timing.Limiter
	config  Config

	frame  uint64
	paused bool
}

// New builds a harness and initializes its driver.
func New(config Config) (*Harness, error) {
	if config.Backend == nil {
		return nil, fmt.Errorf("harness: a backend is required")
	}
	if config.Limiter == nil {
		config.Limiter = timing.NewNoOpLimiter()
	}

	h := &Harness{
		backend: config.Backend,
		limiter: config.Limiter,
		config:  config,
	}

	d, err := driver.New(driver.Config{
		ScriptPath:   config.ScriptPath,
		FrameCounter: h.FrameCount,
		Binds:        config.Binds,
	})
	if err != nil {
		return nil, err
	}
	h.driver = d
	return h, nil
}

// FrameCount reads the harness frame counter. It only ever moves forward.
func (h *Harness) FrameCount() uint64 {
	return h.frame
}

// Driver exposes the underlying driver for state queries during and after a
// run.
func (h *Harness) Driver() *driver.Driver {
	return h.driver
}

// Run executes the frame loop until the backend asks to quit.
func (h *Harness) Run() error {
	if err := h.backend.Init(backend.Config{
		Title:   h.config.Title,
		Verbose: h.config.Verbose,
	}); err != nil {
		return fmt.Errorf("initializing backend: %w", err)
	}
	defer h.backend.Cleanup()
	defer h.driver.Close()

	for {
		h.limiter.WaitForNextFrame()

		if !h.paused {
			h.tick()
		}

		events, err := h.backend.Update(h.view())
		if err != nil {
			return fmt.Errorf("updating backend: %w", err)
		}

		for _, evt := range events {
			switch evt.Action {
			case backend.ActionQuit:
				return nil
			case backend.ActionPauseToggle:
				h.paused = !h.paused
				if !h.paused {
					h.limiter.Reset()
				}
			case backend.ActionStepFrame:
				if h.paused {
					h.tick()
				}
			}
		}
	}
}

// tick advances one frame and polls, in that order, so a step scheduled for
// frame F fires on the poll that observes frame F+1.
func (h *Harness) tick() {
	h.frame++
	h.driver.Poll()
}

func (h *Harness) view() *backend.View {
	steps := h.driver.Schedule()
	return &backend.View{
		Frame:   h.frame,
		Pressed: h.driver.PressedKeys(),
		Steps:   steps,
		Handled: len(steps) - h.driver.Remaining(),
		Dropped: h.driver.Dropped(),
		Paused:  h.paused,
	}
}
