//go:build sdl2

// Package sdl2 is an optional windowed monitor. Building it requires SDL2
// development libraries and the sdl2 build tag; default builds get a stub.
package sdl2

import (
	"fmt"
	"log/slog"

	"github.com/valerio/go-autopad/autopad/backend"
	"github.com/valerio/go-autopad/autopad/keymap"
	"github.com/veandco/go-sdl2/sdl"
)

const (
	windowWidth  = 900
	windowHeight = 360

	keyWidth  = 56
	keyHeight = 40
	keyGap    = 6
)

// Backend renders the key grid in an SDL2 window.
type Backend struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	config   backend.Config
	running  bool
}

// New creates an SDL2 backend.
func New() *Backend {
	return &Backend{}
}

func (s *Backend) Init(config backend.Config) error {
	s.config = config

	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return fmt.Errorf("failed to initialize SDL2: %v", err)
	}

	window, err := sdl.CreateWindow(
		config.Title,
		sdl.WINDOWPOS_CENTERED,
		sdl.WINDOWPOS_CENTERED,
		windowWidth,
		windowHeight,
		sdl.WINDOW_SHOWN,
	)
	if err != nil {
		sdl.Quit()
		return fmt.Errorf("failed to create window: %v", err)
	}
	s.window = window

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC)
	if err != nil {
		window.Destroy()
		sdl.Quit()
		return fmt.Errorf("failed to create renderer: %v", err)
	}
	s.renderer = renderer

	s.running = true
	slog.Info("SDL2 monitor initialized")
	return nil
}

// Update renders the key grid and processes window events.
func (s *Backend) Update(view *backend.View) ([]backend.InputEvent, error) {
	if !s.running {
		return nil, nil
	}

	var events []backend.InputEvent
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		events = append(events, s.handleEvent(event)...)
	}

	pressed := make(map[keymap.Key]bool, len(view.Pressed))
	for _, k := range view.Pressed {
		pressed[k] = true
	}

	s.renderer.SetDrawColor(16, 16, 16, 255)
	s.renderer.Clear()

	for row, keys := range backend.KeyboardLayout {
		for col, key := range keys {
			rect := sdl.Rect{
				X: int32(keyGap + col*(keyWidth+keyGap)),
				Y: int32(keyGap + row*(keyHeight+keyGap)),
				W: keyWidth,
				H: keyHeight,
			}
			if pressed[key] {
				s.renderer.SetDrawColor(64, 200, 64, 255)
				s.renderer.FillRect(&rect)
			} else {
				s.renderer.SetDrawColor(90, 90, 90, 255)
				s.renderer.DrawRect(&rect)
			}
		}
	}

	s.renderer.Present()
	return events, nil
}

func (s *Backend) handleEvent(event sdl.Event) []backend.InputEvent {
	switch ev := event.(type) {
	case *sdl.QuitEvent:
		s.running = false
		return []backend.InputEvent{{Action: backend.ActionQuit}}
	case *sdl.KeyboardEvent:
		if ev.Type != sdl.KEYDOWN {
			return nil
		}
		switch ev.Keysym.Sym {
		case sdl.K_ESCAPE, sdl.K_q:
			s.running = false
			return []backend.InputEvent{{Action: backend.ActionQuit}}
		case sdl.K_SPACE:
			return []backend.InputEvent{{Action: backend.ActionPauseToggle}}
		case sdl.K_PERIOD:
			return []backend.InputEvent{{Action: backend.ActionStepFrame}}
		}
	}
	return nil
}

func (s *Backend) Cleanup() error {
	if s.renderer != nil {
		s.renderer.Destroy()
	}
	if s.window != nil {
		s.window.Destroy()
	}
	sdl.Quit()
	return nil
}
