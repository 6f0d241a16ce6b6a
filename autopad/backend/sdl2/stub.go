//go:build !sdl2

package sdl2

import (
	"fmt"

	"github.com/valerio/go-autopad/autopad/backend"
)

// Backend stub for when SDL2 is not available.
type Backend struct{}

func New() *Backend {
	return &Backend{}
}

func (s *Backend) Init(config backend.Config) error {
	return fmt.Errorf("SDL2 monitor not available - compile with -tags sdl2 and install SDL2 development libraries")
}

func (s *Backend) Update(view *backend.View) ([]backend.InputEvent, error) {
	return nil, fmt.Errorf("SDL2 monitor not available")
}

func (s *Backend) Cleanup() error {
	return nil
}
