package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"

	"github.com/egoengine/clipmill/internal/config"
	"github.com/egoengine/clipmill/internal/ffmpeg"
	"github.com/egoengine/clipmill/internal/probe"
	"github.com/egoengine/clipmill/internal/stream"
	"github.com/egoengine/clipmill/internal/term"
	"github.com/egoengine/clipmill/internal/transform"
)

// RunTune is the single-clip color pipeline job: decode, apply the
// exposure/contrast/gain/gamma transform, encode to the output path.
// Unlike the batch jobs it fails hard -- there is no sibling asset to
// continue with.
func RunTune(ctx context.Context, cfg *config.Config, log *logrus.Logger) error {
	t := cfg.Tune
	adj := transform.Adjust{
		Exposure: t.Exposure,
		Contrast: t.Contrast,
		Gains:    [3]float64{t.GainR, t.GainG, t.GainB},
		Gamma:    t.Gamma,
	}

	pr, err := probe.New(cfg.FFprobeBin).Probe(ctx, t.Input)
	if err != nil {
		return fmt.Errorf("unreadable source: %w", err)
	}
	if !pr.HasDimensions() {
		return fmt.Errorf("unreadable source %q: no usable dimensions", t.Input)
	}

	if dir := filepath.Dir(t.Output); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	fps := pr.FrameRateOr(fallbackFPS)
	log.WithFields(logrus.Fields{
		"size": fmt.Sprintf("%dx%d", pr.Width, pr.Height),
		"fps":  fps,
	}).Infof("Tuning %s", filepath.Base(t.Input))

	reader, err := ffmpeg.StartReader(ctx, cfg.FFmpegBin, t.Input, pr.Width, pr.Height, fps, pr.FrameCount)
	if err != nil {
		return err
	}
	defer reader.Close()

	opts := ffmpeg.EncodeOpts{Preset: cfg.Preset, CRF: cfg.StreamCRF}
	writer, err := ffmpeg.StartWriter(ctx, cfg.FFmpegBin, t.Output, pr.Width, pr.Height, fps, opts)
	if err != nil {
		return err
	}

	frames, copyErr := stream.Copy(ctx, reader, writer, adj, t.Limit, frameProgress(pr, t.Limit, cfg.Verbose))
	closeErr := writer.Close()

	switch {
	case copyErr != nil:
		os.Remove(t.Output)
		return copyErr
	case closeErr != nil:
		os.Remove(t.Output)
		return closeErr
	case frames == 0:
		os.Remove(t.Output)
		return fmt.Errorf("%w: %s", ErrEmptySource, t.Input)
	}

	log.WithField("frames", frames).Infof("Wrote %s", t.Output)
	return nil
}

// frameProgress returns a per-frame progress callback backed by a terminal
// progress bar, or nil when stdout is not a TTY (or verbose ffmpeg output
// would fight with it).
func frameProgress(pr *probe.Result, limit int64, verbose bool) func(int64) {
	if verbose || !term.IsTerminal(os.Stdout) {
		return nil
	}

	total := pr.FrameCount
	if limit > 0 && (total == 0 || limit < total) {
		total = limit
	}
	if total == 0 {
		total = -1 // spinner when the container hides its frame count
	}

	bar := progressbar.NewOptions64(total,
		progressbar.OptionSetDescription("frames"),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionShowCount(),
	)
	return func(int64) { _ = bar.Add(1) }
}
