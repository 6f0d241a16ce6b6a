// Package terminal is a live tcell monitor: a virtual keyboard with
// injected keys highlighted, the step schedule, and recent diagnostics.
package terminal

import (
	"fmt"
	"log/slog"

	"github.com/gdamore/tcell/v2"
	"github.com/valerio/go-autopad/autopad/backend"
	"github.com/valerio/go-autopad/autopad/backend/terminal/render"
	"github.com/valerio/go-autopad/autopad/keymap"
)

const (
	logPaneLines  = 6
	scheduleLines = 8
	minTermWidth  = 60
	minTermHeight = 20
)

// Backend implements the monitor interface on a tcell screen.
type Backend struct {
	screen    tcell.Screen
	config    backend.Config
	logBuffer *render.LogBuffer
}

// New creates a terminal backend.
func New() *Backend {
	return &Backend{}
}

// Init takes over the terminal and redirects logging into the UI.
func (t *Backend) Init(config backend.Config) error {
	t.config = config

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to initialize terminal: %v", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %v", err)
	}
	t.screen = screen

	t.logBuffer = render.NewLogBuffer(100)
	level := slog.LevelInfo
	if config.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(render.NewLogBufferHandler(t.logBuffer, level)))

	t.screen.SetStyle(tcell.StyleDefault.
		Background(tcell.ColorBlack).
		Foreground(tcell.ColorWhite))
	t.screen.Clear()

	slog.Info("terminal monitor ready")
	return nil
}

// Update renders the current view and collects operator key presses.
func (t *Backend) Update(view *backend.View) ([]backend.InputEvent, error) {
	var events []backend.InputEvent

	for t.screen.HasPendingEvent() {
		ev := t.screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventKey:
			if evt, ok := controlEvent(ev); ok {
				events = append(events, evt)
			}
		case *tcell.EventResize:
			t.screen.Sync()
		}
	}

	t.draw(view)
	return events, nil
}

func (t *Backend) Cleanup() error {
	if t.screen != nil {
		t.screen.Fini()
	}
	return nil
}

// controlEvent maps an operator key press to a harness control action.
func controlEvent(ev *tcell.EventKey) (backend.InputEvent, bool) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return backend.InputEvent{Action: backend.ActionQuit}, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return backend.InputEvent{Action: backend.ActionQuit}, true
		case ' ':
			return backend.InputEvent{Action: backend.ActionPauseToggle}, true
		case '.':
			return backend.InputEvent{Action: backend.ActionStepFrame}, true
		}
	}
	return backend.InputEvent{}, false
}

func (t *Backend) draw(view *backend.View) {
	t.screen.Clear()

	width, height := t.screen.Size()
	if width < minTermWidth || height < minTermHeight {
		t.drawText(0, 0, tcell.StyleDefault, "terminal too small")
		t.screen.Show()
		return
	}

	header := fmt.Sprintf("%s  frame %d  steps %d/%d",
		t.config.Title, view.Frame, view.Handled, len(view.Steps))
	if view.Dropped > 0 {
		header += fmt.Sprintf("  dropped %d", view.Dropped)
	}
	if view.Paused {
		header += "  [paused]"
	}
	t.drawText(0, 0, tcell.StyleDefault.Bold(true), header)
	t.drawText(0, 1, tcell.StyleDefault.Dim(true),
		"q quit   space pause   . step one frame")

	row := 3
	row = t.drawKeyboard(row, view)
	row = t.drawSchedule(row+1, view)
	t.drawLog(row + 1)

	t.screen.Show()
}

// drawKeyboard renders the key grid with injected keys highlighted.
func (t *Backend) drawKeyboard(startRow int, view *backend.View) int {
	pressed := make(map[keymap.Key]bool, len(view.Pressed))
	for _, k := range view.Pressed {
		pressed[k] = true
	}

	downStyle := tcell.StyleDefault.
		Background(tcell.ColorGreen).
		Foreground(tcell.ColorBlack)
	upStyle := tcell.StyleDefault.Dim(true)

	row := startRow
	for _, keys := range backend.KeyboardLayout {
		col := 0
		for _, key := range keys {
			label := " " + key.Name() + " "
			style := upStyle
			if pressed[key] {
				style = downStyle
			}
			t.drawText(col, row, style, label)
			col += len(label) + 1
		}
		row++
	}
	return row
}

// drawSchedule lists the next few pending steps and the most recent fired.
func (t *Backend) drawSchedule(startRow int, view *backend.View) int {
	t.drawText(0, startRow, tcell.StyleDefault.Bold(true), "schedule")
	row := startRow + 1

	// Keep the window anchored just behind the first pending step so the
	// interesting part of a long schedule stays on screen.
	first := 0
	for i := range view.Steps {
		if !view.Steps[i].Handled {
			first = i
			break
		}
	}
	if first > 2 {
		first -= 2
	} else {
		first = 0
	}

	shown := 0
	for i := first; i < len(view.Steps); i++ {
		if shown >= scheduleLines {
			break
		}
		step := view.Steps[i]
		marker := " "
		style := tcell.StyleDefault
		if step.Handled {
			marker = "x"
			style = style.Dim(true)
		}
		line := fmt.Sprintf("[%s] step %3d  frame %6d  action %d  key %s",
			marker, i, step.Frame, step.Action, keymap.Key(step.ParamNum).Name())
		t.drawText(0, row, style, line)
		row++
		shown++
	}
	if len(view.Steps) == 0 {
		t.drawText(0, row, tcell.StyleDefault.Dim(true), "nothing scheduled")
		row++
	}
	return row
}

func (t *Backend) drawLog(startRow int) {
	t.drawText(0, startRow, tcell.StyleDefault.Bold(true), "log")
	entries := t.logBuffer.Recent(logPaneLines)
	for i, entry := range entries {
		t.drawText(0, startRow+1+i, tcell.StyleDefault, render.FormatLogEntry(entry))
	}
}

func (t *Backend) drawText(x, y int, style tcell.Style, text string) {
	width, _ := t.screen.Size()
	for i, r := range text {
		if x+i >= width {
			break
		}
		t.screen.SetContent(x+i, y, r, nil, style)
	}
}
