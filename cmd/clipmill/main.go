// Command clipmill batch-processes short video clips: per-frame color
// correction (gray-world equalization or an exposure/contrast/gain/gamma
// pipeline) and fixed-grid mosaic composition, all driven through an
// external ffmpeg toolchain.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/egoengine/clipmill/internal/check"
	"github.com/egoengine/clipmill/internal/config"
	"github.com/egoengine/clipmill/internal/display"
	"github.com/egoengine/clipmill/internal/logging"
	"github.com/egoengine/clipmill/internal/pipeline"
	"github.com/egoengine/clipmill/internal/term"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.Default()
	if err := config.LoadEnv(ctx, &cfg); err != nil {
		fmt.Fprintf(os.Stderr, "clipmill: %v\n", err)
		return 1
	}
	if err := config.ParseArgs(&cfg, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "clipmill: %v\n", err)
		return 1
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "clipmill: %v\n", err)
		return 1
	}

	level := cfg.LogLevel
	if cfg.Verbose {
		level = "debug"
	}
	log, closeLog, err := logging.New(logging.Options{
		Level:     level,
		ColorMode: cfg.ColorMode,
		File:      cfg.LogFile,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "clipmill: %v\n", err)
		return 1
	}
	defer closeLog()

	if term.IsTerminal(os.Stdout) {
		display.PrintBanner()
	}

	if cfg.Command == config.CmdCheck {
		check.Run(cfg.FFmpegBin, cfg.FFprobeBin, log)
		return 0
	}

	if err := check.Deps(cfg.FFmpegBin, cfg.FFprobeBin); err != nil {
		log.Errorf("%v", err)
		return 1
	}

	switch cfg.Command {
	case config.CmdTune:
		if err := pipeline.RunTune(ctx, &cfg, log); err != nil {
			log.Errorf("%v", err)
			return 1
		}
	case config.CmdFix:
		stats := pipeline.RunFix(ctx, &cfg, log)
		if stats.Failed > 0 {
			return 1
		}
	case config.CmdEq:
		stats := pipeline.RunEq(ctx, &cfg, log)
		if stats.Failed > 0 {
			return 1
		}
	case config.CmdMosaic:
		if err := pipeline.RunMosaic(ctx, &cfg, log); err != nil {
			log.Errorf("%v", err)
			return 1
		}
	}
	return 0
}
