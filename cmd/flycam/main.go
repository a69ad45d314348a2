package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Versifine/flycam/internal/config"
	"github.com/Versifine/flycam/internal/debug"
	"github.com/Versifine/flycam/internal/event"
	"github.com/Versifine/flycam/internal/host"
	"github.com/Versifine/flycam/internal/logger"
	"github.com/Versifine/flycam/internal/scene"
)

func main() {
	os.Exit(mainExitCode(os.Args[1:]))
}

// mainExitCode runs flycam and returns the process exit code. Deferred
// cleanup runs before main exits.
func mainExitCode(args []string) int {
	flags := flag.NewFlagSet("flycam", flag.ContinueOnError)
	configPath := flags.String("config", "configs/config.yaml", "path to the YAML or TOML config file")
	if err := flags.Parse(args); err != nil {
		return 2
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "path", *configPath, "error", err)
		return 1
	}
	if err := logger.Init(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		File:   cfg.Logging.File,
	}); err != nil {
		slog.Error("Failed to init logger", "error", err)
		return 1
	}
	defer logger.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, stop, *configPath, cfg); err != nil {
		slog.Error("Flycam stopped with error", "error", err)
		return 1
	}
	return 0
}

func run(ctx context.Context, stop context.CancelFunc, configPath string, cfg *config.Config) error {
	bus := event.NewBus()
	for _, name := range []string{event.EventPause, event.EventRenderToggle, event.EventScreenshot, event.EventOrientation} {
		bus.Subscribe(name, event.LogHandler(name))
	}

	module := scene.NewModule(cfg, bus)
	if err := module.Start(); err != nil {
		return err
	}
	loop := host.NewLoop(module, cfg.Scene.TickRate)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return loop.Run(ctx)
	})
	g.Go(func() error {
		err := config.Watch(ctx, configPath, func(next *config.Config) {
			loop.Do(func(m *scene.Module) {
				if err := m.ApplyConfig(next); err != nil {
					slog.Warn("Failed to apply reloaded config", "error", err)
				}
			})
		})
		if err != nil {
			slog.Warn("Config hot reload disabled", "error", err)
		}
		return nil
	})
	if cfg.Console.Enabled {
		console := debug.NewConsole(loop, debug.Options{
			MovePulse: time.Duration(cfg.Console.MovePulseMS) * time.Millisecond,
			YawStep:   cfg.Console.YawStep,
			PitchStep: cfg.Console.PitchStep,
			Quit:      stop,
		})
		g.Go(func() error {
			return console.Start(ctx)
		})
	}

	slog.Info("Flycam running", "title", scene.WindowTitle, "tick_rate", cfg.Scene.TickRate, "console", cfg.Console.Enabled)
	return g.Wait()
}
