package main

import (
	"errors"
	"log/slog"
	"os"

	"github.com/urfave/cli"
	"github.com/valerio/dmgcore/internal/gbcore"
	"github.com/valerio/dmgcore/internal/gberr"
	"github.com/valerio/dmgcore/internal/present"
)

const defaultROMPath = "rom.gb"

func main() {
	// urfave/cli v1 registers a built-in --version, -v flag during
	// App.Setup(); override it so our own -v/--verbose can use that
	// shorthand without a duplicate-flag panic.
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print the version",
	}

	app := cli.NewApp()
	app.Name = "gbcore"
	app.Usage = "gbcore [options] <ROM file>"
	app.Description = "A Game Boy (DMG) emulator core"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: "enable debug logging",
		},
		cli.BoolFlag{
			Name:  "sdl2",
			Usage: "use the SDL2 window renderer instead of the terminal renderer",
		},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		slog.Error("emulator exited with an error", "error", err)
		os.Exit(exitCodeFor(err))
	}
}

func run(c *cli.Context) error {
	if c.Bool("verbose") {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	romPath := c.Args().Get(0)
	if romPath == "" {
		romPath = defaultROMPath
	}

	emu, err := gbcore.NewWithFile(romPath)
	if err != nil {
		return err
	}

	if c.Bool("sdl2") {
		renderer, err := present.NewSDL2Renderer(emu)
		if err != nil {
			return err
		}
		return renderer.Run()
	}

	renderer, err := present.NewTerminalRenderer(emu)
	if err != nil {
		return err
	}
	return renderer.Run()
}

// exitCodeFor distinguishes the fatal error taxonomy of spec.md §7 for the
// process exit status; anything else is an unrecoverable emulator error.
func exitCodeFor(err error) int {
	var loadFailure *gberr.LoadFailure
	var unsupported *gberr.UnsupportedOpcode
	var invalidAccess *gberr.InvalidBusAccess
	switch {
	case errors.As(err, &loadFailure):
		return 2
	case errors.As(err, &unsupported):
		return 3
	case errors.As(err, &invalidAccess):
		return 4
	default:
		return 1
	}
}
