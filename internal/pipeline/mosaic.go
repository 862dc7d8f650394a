package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/egoengine/clipmill/internal/config"
	"github.com/egoengine/clipmill/internal/display"
	"github.com/egoengine/clipmill/internal/ffmpeg"
	"github.com/egoengine/clipmill/internal/mosaic"
	"github.com/egoengine/clipmill/internal/probe"
	"github.com/egoengine/clipmill/internal/publish"
)

// RunMosaic is the grid composition job: probe every source, plan the cell
// size, normalize each folder's clip into a job-private temp directory
// (synthesizing fillers for missing sources), compose the grid, and
// optionally publish the result. Planning errors abort before any encoding
// starts; a tile or composition failure aborts the job.
func RunMosaic(ctx context.Context, cfg *config.Config, log *logrus.Logger) error {
	m := cfg.Mosaic
	prober := probe.New(cfg.FFprobeBin)

	// Probe all sources up front; the grid geometry depends on every one.
	sources := make([]mosaic.Source, len(m.Folders))
	for i, folder := range m.Folders {
		path := filepath.Join(m.Root, folder, m.Kind)
		src := mosaic.Source{Path: path}
		if _, err := os.Stat(path); err == nil {
			if pr, err := prober.Probe(ctx, path); err == nil {
				src.Present = true
				src.Width = pr.Width
				src.Height = pr.Height
				src.Duration = pr.Duration
			} else {
				log.Warnf("Unreadable source %s: %v", path, err)
			}
		} else {
			log.Warnf("Missing source %s, will synthesize filler", path)
		}
		sources[i] = src
	}

	grid, err := mosaic.PlanGrid(m.Cols, m.Rows, m.FPS, sources)
	if err != nil {
		return err
	}
	fillerDur := mosaic.FallbackDuration(sources, m.FallbackDur)

	log.WithFields(logrus.Fields{
		"cell":   display.FormatResolution(grid.CellW, grid.CellH),
		"canvas": display.FormatResolution(grid.CanvasW(), grid.CanvasH()),
		"filler": display.FormatDuration(fillerDur),
	}).Infof("Grid %dx%d planned", grid.Cols, grid.Rows)

	tmpDir, err := os.MkdirTemp(cfg.TempDir, "clipmill-mosaic-"+jobTag()+"-")
	if err != nil {
		return fmt.Errorf("create job temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	norm := &mosaic.Normalizer{
		Bin:       cfg.FFmpegBin,
		Border:    "black",
		FillerDur: fillerDur,
		Encode:    ffmpeg.EncodeOpts{Preset: cfg.Preset, CRF: cfg.TileCRF},
		Verbose:   cfg.Verbose,
	}

	tiles := make([]string, len(sources))
	for i, src := range sources {
		dst := filepath.Join(tmpDir, fmt.Sprintf("tile_%02d.mp4", i))
		kind := "pad"
		if !src.Present {
			kind = "filler"
		}
		log.Infof("[%d/%d] normalize (%s): %s", i+1, len(sources), kind, m.Folders[i])

		if err := norm.Normalize(ctx, src, dst, grid); err != nil {
			return err
		}
		tiles[i] = dst
	}

	if dir := filepath.Dir(m.Output); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	comp := &mosaic.Compositor{
		Bin:     cfg.FFmpegBin,
		Encode:  ffmpeg.EncodeOpts{Preset: cfg.Preset, CRF: cfg.TileCRF},
		Verbose: cfg.Verbose,
	}
	log.Infof("Composing %s", m.Output)
	if err := comp.Compose(ctx, grid, tiles, m.Output); err != nil {
		return err
	}
	log.Infof("Wrote %s", m.Output)

	return publishMosaic(ctx, cfg, log)
}

// publishMosaic delivers the composed file when a publish mode is set.
// Publishing is best-effort: failure is a warning and the local output
// survives.
func publishMosaic(ctx context.Context, cfg *config.Config, log *logrus.Logger) error {
	m := cfg.Mosaic
	if m.Publish == config.PublishNone {
		return nil
	}

	key := m.Key
	if key == "" {
		key = filepath.Base(m.Output)
	}

	var (
		pub publish.Publisher
		err error
	)
	switch m.Publish {
	case config.PublishLocal:
		pub, err = publish.NewLocalPublisher(m.PublishDir)
	case config.PublishS3:
		pub, err = publish.NewS3Publisher(ctx, cfg.S3)
	}
	if err != nil {
		log.Warnf("Publish skipped: %v", err)
		return nil
	}

	loc, err := pub.Publish(ctx, m.Output, key)
	if err != nil {
		log.Warnf("Publish failed (local output kept): %v", err)
		return nil
	}
	log.Infof("Published to %s", loc)
	return nil
}
