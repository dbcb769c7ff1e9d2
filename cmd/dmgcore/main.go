package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/urfave/cli"

	"github.com/ashcombe/dmgcore/dmgcore"
	"github.com/ashcombe/dmgcore/dmgcore/display"
	"github.com/ashcombe/dmgcore/loader"
)

func main() {
	app := cli.NewApp()
	app.Name = "dmgcore"
	app.Usage = "dmgcore [options] <ROM file>"
	app.Version = "1.0.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "rom",
			Usage: "path to the ROM file (plain, .gz, .zip, or .7z)",
		},
		cli.StringFlag{
			Name:  "backend",
			Usage: "display backend: terminal, sdl2, or null",
			Value: "terminal",
		},
		cli.IntFlag{
			Name:  "frames",
			Usage: "run exactly N frames then exit instead of looping until quit",
		},
		cli.StringFlag{
			Name:  "log-level",
			Usage: "debug, info, warn, or error",
			Value: "info",
		},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		slog.Error("dmgcore exited with an error", "error", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	if err := configureLogging(c.String("log-level")); err != nil {
		return err
	}

	romPath := c.String("rom")
	if romPath == "" {
		if c.NArg() > 0 {
			romPath = c.Args().Get(0)
		} else {
			cli.ShowAppHelp(c)
			return errors.New("no ROM path provided")
		}
	}

	rom, err := loader.LoadROM(romPath)
	if err != nil {
		return fmt.Errorf("loading ROM: %w", err)
	}

	savedRAM, err := loader.LoadSave(romPath)
	if err != nil {
		return fmt.Errorf("loading save RAM: %w", err)
	}

	backend, err := newBackend(c.String("backend"))
	if err != nil {
		return err
	}

	emu := dmgcore.New()
	if err := emu.Load(rom, savedRAM); err != nil {
		return fmt.Errorf("loading cartridge: %w", err)
	}
	defer func() {
		if err := loader.WriteSave(romPath, emu.Unload()); err != nil {
			slog.Error("failed to persist save RAM", "error", err)
		}
	}()

	if err := backend.Init(display.Config{Title: "dmgcore"}); err != nil {
		return fmt.Errorf("initializing display: %w", err)
	}
	defer backend.Close()

	maxFrames := c.Int("frames")
	return runLoop(emu, backend, maxFrames)
}

func runLoop(emu *dmgcore.Emulator, backend display.Backend, maxFrames int) error {
	frame := 0
	for {
		pixels := emu.RenderFrame()
		if err := backend.Render(pixels); err != nil {
			return fmt.Errorf("rendering frame %d: %w", frame, err)
		}

		input, quit := backend.Poll()
		emu.SetButtons(input.Vector())
		frame++

		if quit {
			slog.Info("quit requested", "frames", frame)
			return nil
		}
		if maxFrames > 0 && frame >= maxFrames {
			slog.Info("reached frame limit", "frames", frame)
			return nil
		}
		if frame%60 == 0 {
			slog.Debug("frame progress", "frame", frame, "elapsed", time.Duration(frame/60)*time.Second)
		}
	}
}

func newBackend(name string) (display.Backend, error) {
	switch name {
	case "terminal":
		return display.NewTerminal(), nil
	case "sdl2":
		return display.NewSDL2(), nil
	case "null":
		return display.NewNull(), nil
	default:
		return nil, fmt.Errorf("unknown display backend %q (want terminal, sdl2, or null)", name)
	}
}

func configureLogging(level string) error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
	return nil
}
