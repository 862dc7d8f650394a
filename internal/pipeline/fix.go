package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/egoengine/clipmill/internal/config"
	"github.com/egoengine/clipmill/internal/ffmpeg"
	"github.com/egoengine/clipmill/internal/probe"
	"github.com/egoengine/clipmill/internal/stream"
	"github.com/egoengine/clipmill/internal/transform"
)

// ErrEmptySource marks an asset that decoded zero frames. The destination
// is never overwritten in that case.
var ErrEmptySource = errors.New("source decoded zero frames")

// fps assumed when a source reports no frame rate.
const fallbackFPS = 30.0

// RunFix is the batch gray-world job: every discovered clip is decoded
// frame by frame, equalized, re-encoded, and atomically swapped into place,
// followed by a best-effort browser-compatibility transcode. Per-asset
// failures are contained; the batch always runs to completion or interrupt.
func RunFix(ctx context.Context, cfg *config.Config, log *logrus.Logger) RunStats {
	var stats RunStats

	files, err := DiscoverNamed(cfg.Fix.Root, cfg.Fix.Name)
	if err != nil {
		log.Errorf("Discovery failed: %v", err)
		return stats
	}
	if len(files) == 0 {
		log.Infof("No %s files under %s", cfg.Fix.Name, cfg.Fix.Root)
		return stats
	}

	stats.Total = len(files)
	log.Infof("Found %d files", stats.Total)
	log.Infof("Gray-world: power=%g eps=%g", cfg.Fix.Power, cfg.Fix.Epsilon)

	gw := transform.GrayWorld{Power: cfg.Fix.Power, Epsilon: cfg.Fix.Epsilon}
	prober := probe.New(cfg.FFprobeBin)

	for i, path := range files {
		stats.Current = i + 1

		if ctx.Err() != nil {
			log.Warn("Interrupted")
			break
		}

		log.Infof("[%d/%d] %s", stats.Current, stats.Total, path)
		if cfg.DryRun {
			log.Info("  [DRY] would equalize in place")
			stats.Processed++
			continue
		}

		fixOne(ctx, cfg, log, prober, gw, path, &stats)
	}

	stats.LogSummary(log)
	return stats
}

// fixOne processes a single asset: decode/transform/encode to a private
// temp file, atomic backup-swap, best-effort transcode, backup removal.
func fixOne(
	ctx context.Context,
	cfg *config.Config,
	log *logrus.Logger,
	prober *probe.Prober,
	gw transform.GrayWorld,
	path string,
	stats *RunStats,
) {
	pr, err := prober.Probe(ctx, path)
	if err != nil || !pr.HasDimensions() {
		log.Warnf("  Skip (unreadable source): %v", err)
		stats.Skipped++
		return
	}

	inInfo, err := os.Stat(path)
	if err != nil {
		log.Warnf("  Skip (stat failed): %v", err)
		stats.Skipped++
		return
	}

	tmp := tempPath(path, jobTag())
	frames, err := equalizeToTemp(ctx, cfg, gw, pr, path, tmp)
	if err != nil {
		os.Remove(tmp)
		if errors.Is(err, ErrEmptySource) {
			log.Warnf("  0 frames decoded, original left untouched")
		} else {
			log.Errorf("  Encode failed: %v", err)
		}
		stats.Failed++
		return
	}

	backup, err := backupSwap(path, tmp)
	if err != nil {
		os.Remove(tmp)
		log.Errorf("  Replace failed: %v", err)
		stats.Failed++
		return
	}

	// The replacement must probe as a readable video before the backup is
	// considered disposable.
	if chk, err := prober.Probe(ctx, path); err != nil || !chk.HasDimensions() {
		log.Errorf("  Replacement unreadable, restoring original: %v", err)
		if rErr := restoreBackup(path, backup); rErr != nil {
			log.Errorf("  Restore failed: %v", rErr)
		}
		stats.Failed++
		return
	}

	// Browser-compatibility transcode over the swapped-in file. Failure is
	// tolerated: the equalized intermediate already sits at the destination.
	if err := transcodeInPlace(ctx, cfg, pr, path); err != nil {
		log.Warnf("  Transcode failed, keeping intermediate encoding: %v", err)
	}

	if err := os.Remove(backup); err != nil && !os.IsNotExist(err) {
		log.Warnf("  Backup not removed: %v", err)
	}

	if outInfo, err := os.Stat(path); err == nil {
		stats.TotalInputBytes += inInfo.Size()
		stats.TotalOutputBytes += outInfo.Size()
	}
	stats.Processed++

	log.WithFields(logrus.Fields{
		"frames": frames,
		"fps":    pr.FrameRateOr(fallbackFPS),
	}).Infof("  OK %s", filepath.Base(path))
}

// equalizeToTemp runs the decode/transform/encode pipe for one asset and
// returns the frame count. Zero frames is ErrEmptySource; the temp file is
// the caller's to clean up.
func equalizeToTemp(
	ctx context.Context,
	cfg *config.Config,
	gw transform.GrayWorld,
	pr *probe.Result,
	src, tmp string,
) (int64, error) {
	reader, err := ffmpeg.StartReader(ctx, cfg.FFmpegBin, src, pr.Width, pr.Height, pr.FrameRateOr(fallbackFPS), pr.FrameCount)
	if err != nil {
		return 0, err
	}
	defer reader.Close()

	opts := ffmpeg.EncodeOpts{Preset: cfg.Preset, CRF: cfg.StreamCRF}
	writer, err := ffmpeg.StartWriter(ctx, cfg.FFmpegBin, tmp, pr.Width, pr.Height, pr.FrameRateOr(fallbackFPS), opts)
	if err != nil {
		return 0, err
	}

	frames, copyErr := stream.Copy(ctx, reader, writer, gw, 0, nil)
	closeErr := writer.Close()

	switch {
	case copyErr != nil:
		return frames, copyErr
	case closeErr != nil:
		return frames, closeErr
	case frames == 0:
		return 0, ErrEmptySource
	}
	return frames, nil
}

// transcodeInPlace re-encodes path to H.264/yuv420p/faststart via a private
// temp file, truncating odd dimensions to even for the 4:2:0 format.
func transcodeInPlace(ctx context.Context, cfg *config.Config, pr *probe.Result, path string) error {
	evenScale := pr.Width%2 != 0 || pr.Height%2 != 0
	tmp := tempPath(path, jobTag())

	opts := ffmpeg.EncodeOpts{Preset: cfg.Preset, CRF: cfg.TileCRF}
	args := ffmpeg.TranscodeArgs(cfg.FFmpegBin, path, tmp, evenScale, opts)
	if res := ffmpeg.Execute(ctx, args, cfg.Verbose); res.Err != nil {
		os.Remove(tmp)
		return res.Err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
