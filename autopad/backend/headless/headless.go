// Package headless runs the harness flat out with no display, for CI and
// scripted verification.
package headless

import (
	"log/slog"
	"os"
	"strings"

	"github.com/valerio/go-autopad/autopad/backend"
)

// Backend implements the monitor interface without rendering anything.
// It stops the run once the configured frame budget is spent or, with no
// budget, once the schedule has drained.
type Backend struct {
	config     backend.Config
	maxFrames  uint64
	frameCount uint64
}

// New creates a headless backend. maxFrames of 0 means run until every
// scheduled step has been handled.
func New(maxFrames uint64) *Backend {
	return &Backend{maxFrames: maxFrames}
}

func (h *Backend) Init(config backend.Config) error {
	h.config = config

	level := slog.LevelInfo
	if config.Verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))

	slog.Info("running headless", "frames", h.maxFrames)
	return nil
}

// Update logs progress and decides when the run is over.
func (h *Backend) Update(view *backend.View) ([]backend.InputEvent, error) {
	h.frameCount++

	if h.frameCount%600 == 0 {
		slog.Info("frame progress",
			"frame", view.Frame,
			"steps_handled", view.Handled,
			"steps_total", len(view.Steps))
	}

	done := false
	if h.maxFrames > 0 {
		done = h.frameCount >= h.maxFrames
	} else {
		done = view.Handled == len(view.Steps)
	}

	if done {
		slog.Info("headless run complete",
			"frames", view.Frame,
			"steps_handled", view.Handled,
			"steps_total", len(view.Steps),
			"steps_dropped", view.Dropped,
			"keys_down", keyNames(view))
		return []backend.InputEvent{{Action: backend.ActionQuit}}, nil
	}
	return nil, nil
}

func (h *Backend) Cleanup() error {
	return nil
}

func keyNames(view *backend.View) string {
	if len(view.Pressed) == 0 {
		return "none"
	}
	names := make([]string, len(view.Pressed))
	for i, k := range view.Pressed {
		names[i] = k.Name()
	}
	return strings.Join(names, ",")
}
