// Package main is the entry point for the cubespin viewer.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Faultbox/cubespin/internal/animation"
	"github.com/Faultbox/cubespin/internal/config"
	"github.com/Faultbox/cubespin/internal/engine/mesh"
	"github.com/Faultbox/cubespin/internal/engine/renderer"
	"github.com/Faultbox/cubespin/internal/engine/viewer"
	"github.com/Faultbox/cubespin/internal/engine/window"
	"github.com/Faultbox/cubespin/internal/logger"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Parse CLI flags first
	fs := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	flags := config.RegisterFlags(fs)
	fs.Parse(os.Args[1:])

	cfg, err := config.Load(flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		return 1
	}

	if *flags.SaveConfig || *flags.WriteConfig != "" {
		path := *flags.WriteConfig
		if path != "" {
			err = cfg.SaveTo(path)
		} else {
			path = config.DefaultPath()
			err = cfg.Save()
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
			return 1
		}
		fmt.Printf("Config written to %s\n", path)
		return 0
	}

	log, err := logger.New(cfg.Logging.Level, cfg.Logging.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		return 1
	}
	log = log.With(zap.String("run_id", uuid.NewString()))
	defer logger.Sync(log)

	log.Info("=== CubeSpin ===")
	log.Debug("config loaded", zap.Any("config", cfg))
	for _, note := range cfg.Adjustments {
		log.Warn("config value replaced by default", zap.String("detail", note))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	open := func() (animation.Viewer, error) {
		v, err := viewer.New(viewer.Config{
			Window: window.Config{
				Width:      cfg.Graphics.Width,
				Height:     cfg.Graphics.Height,
				Fullscreen: cfg.Graphics.Fullscreen,
				VSync:      cfg.Graphics.VSync,
			},
			Renderer: renderer.Config{
				Color:     cfg.Cube.Color,
				ShowEdges: cfg.Cube.ShowEdges,
			},
			ScreenshotDir: cfg.Graphics.ScreenshotDir,
		}, log)
		if err != nil {
			return nil, err
		}
		return v, nil
	}

	err = animation.Run(ctx, cfg, mesh.BuildCube, open, animation.Options{Logger: log})
	return exitStatus(err, os.Stderr, log)
}

// exitStatus logs the outcome of a run and, for failures, prints
// "<stage> error: ..." to stderr. Failures after startup are the viewer's.
func exitStatus(err error, stderr io.Writer, log *zap.Logger) int {
	if err == nil || errors.Is(err, context.Canceled) {
		log.Info("viewer closed normally")
		return 0
	}

	var stageErr *animation.StageError
	if errors.As(err, &stageErr) {
		log.Error("startup failed", zap.String("stage", string(stageErr.Stage)), zap.Error(stageErr.Err))
		fmt.Fprintf(stderr, "%s error: %v\n", stageErr.Stage, stageErr.Err)
		return 1
	}

	log.Error("animation failed", zap.Error(err))
	fmt.Fprintf(stderr, "%s error: %v\n", animation.StageViewer, err)
	return 1
}
