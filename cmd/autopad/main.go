package main

import (
	"log/slog"
	"os"

	"github.com/urfave/cli"
	"github.com/valerio/go-autopad/autopad"
	"github.com/valerio/go-autopad/autopad/backend"
	"github.com/valerio/go-autopad/autopad/backend/headless"
	"github.com/valerio/go-autopad/autopad/backend/sdl2"
	"github.com/valerio/go-autopad/autopad/backend/terminal"
	"github.com/valerio/go-autopad/autopad/keymap"
	"github.com/valerio/go-autopad/autopad/timing"
)

func main() {
	app := cli.NewApp()
	app.Name = "autopad"
	app.Description = "Replays scripted key input against a virtual frontend input driver"
	app.Usage = "autopad [options] <script file>"
	app.Version = "1.0.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "script",
			Usage: "Path to the input step script",
		},
		cli.Uint64Flag{
			Name:  "frames",
			Usage: "Number of frames to run in headless mode (0 = until the schedule drains)",
		},
		cli.BoolFlag{
			Name:  "headless",
			Usage: "Run without a display",
		},
		cli.BoolFlag{
			Name:  "sdl",
			Usage: "Use the SDL2 window monitor (requires a build with -tags sdl2)",
		},
		cli.StringFlag{
			Name:  "binds",
			Usage: "Path to a JSON keybind override file",
		},
		cli.Float64Flag{
			Name:  "fps",
			Usage: "Frame rate for interactive monitors",
			Value: timing.DefaultFPS,
		},
		cli.BoolFlag{
			Name:  "verbose",
			Usage: "Enable debug logging",
		},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		slog.Error("error running autopad", "error", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	scriptPath := c.String("script")
	if scriptPath == "" && c.NArg() > 0 {
		scriptPath = c.Args().Get(0)
	}

	var binds *keymap.BindSet
	if path := c.String("binds"); path != "" {
		b, err := keymap.ParseBinds(path)
		if err != nil {
			return err
		}
		binds = b
	}

	var monitor backend.Backend
	var limiter timing.Limiter
	switch {
	case c.Bool("headless"):
		monitor = headless.New(c.Uint64("frames"))
		limiter = timing.NewNoOpLimiter()
	case c.Bool("sdl"):
		monitor = sdl2.New()
		limiter = timing.NewTickerLimiter(c.Float64("fps"))
	default:
		monitor = terminal.New()
		limiter = timing.NewTickerLimiter(c.Float64("fps"))
	}

	h, err := autopad.New(autopad.Config{
		ScriptPath: scriptPath,
		Backend:    monitor,
		Limiter:    limiter,
		Binds:      binds,
		Title:      "autopad",
		Verbose:    c.Bool("verbose"),
	})
	if err != nil {
		return err
	}

	return h.Run()
}
