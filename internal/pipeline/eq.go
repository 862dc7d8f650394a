package pipeline

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/egoengine/clipmill/internal/config"
	"github.com/egoengine/clipmill/internal/ffmpeg"
)

// RunEq is the declarative in-place adjustment batch: brightness/contrast
// through ffmpeg's eq filter, no Go-side frame decoding, audio and metadata
// carried over. Each file is written to a job-private temp path and renamed
// into place, so an interrupt leaves the original intact.
func RunEq(ctx context.Context, cfg *config.Config, log *logrus.Logger) RunStats {
	var stats RunStats

	files, err := DiscoverNamed(cfg.Eq.Root, cfg.Eq.Name)
	if err != nil {
		log.Errorf("Discovery failed: %v", err)
		return stats
	}
	if len(files) == 0 {
		log.Infof("No %s files under %s", cfg.Eq.Name, cfg.Eq.Root)
		return stats
	}

	stats.Total = len(files)
	log.Infof("Found %d files", stats.Total)
	log.Infof("Adjust: brightness=%g contrast=%g", cfg.Eq.Brightness, cfg.Eq.Contrast)

	opts := ffmpeg.EncodeOpts{Preset: cfg.Preset, CRF: cfg.StreamCRF}

	for i, path := range files {
		stats.Current = i + 1

		if ctx.Err() != nil {
			log.Warn("Interrupted")
			break
		}

		log.Infof("[%d/%d] %s", stats.Current, stats.Total, path)
		if cfg.DryRun {
			log.Info("  [DRY] would adjust in place")
			stats.Processed++
			continue
		}

		tmp := tempPath(path, jobTag())
		args := ffmpeg.EqArgs(cfg.FFmpegBin, path, tmp, cfg.Eq.Brightness, cfg.Eq.Contrast, opts)
		if res := ffmpeg.Execute(ctx, args, cfg.Verbose); res.Err != nil {
			os.Remove(tmp)
			log.Errorf("  Adjust failed: %v", res.Err)
			stats.Failed++
			continue
		}

		if err := os.Rename(tmp, path); err != nil {
			os.Remove(tmp)
			log.Errorf("  Replace failed: %v", err)
			stats.Failed++
			continue
		}
		stats.Processed++
	}

	stats.LogSummary(log)
	return stats
}
