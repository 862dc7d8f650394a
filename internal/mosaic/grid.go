// Package mosaic composes batches of normalized clips into a fixed-grid
// presentation video. It owns the layout math -- cell sizing, per-tile
// placement, filler synthesis parameters -- and drives the external
// encoding engine for the actual pixels.
package mosaic

import (
	"errors"
	"fmt"
)

// DefaultFallbackDuration is the filler clip length, in seconds, used when
// no present source has a readable duration.
const DefaultFallbackDuration = 10.0

// ErrNoSources is returned when a grid job has no probeable source at all.
var ErrNoSources = errors.New("no readable sources for grid")

// Source is one asset destined for a grid position. Present is false when
// the file is missing and the position needs a synthesized filler; Width,
// Height, and Duration are zero when unknown.
type Source struct {
	Path     string
	Present  bool
	Width    int
	Height   int
	Duration float64
}

// Grid describes the mosaic canvas: Cols x Rows cells of CellW x CellH
// pixels each, multiplexed at FPS. It is computed once per job and
// immutable afterwards.
type Grid struct {
	Cols  int `validate:"gte=1"`
	Rows  int `validate:"gte=1"`
	CellW int `validate:"gt=0"`
	CellH int `validate:"gt=0"`
	FPS   int `validate:"gt=0"`
}

// Capacity returns the number of tiles the grid holds.
func (g Grid) Capacity() int {
	return g.Cols * g.Rows
}

// CanvasW returns the output canvas width in pixels.
func (g Grid) CanvasW() int { return g.Cols * g.CellW }

// CanvasH returns the output canvas height in pixels.
func (g Grid) CanvasH() int { return g.Rows * g.CellH }

// PlanGrid computes the grid for a job: the cell size is the component-wise
// ceiling-to-even of the maximum width and height across all probeable
// sources. Evenness is required by the 4:2:0 chroma subsampling of the
// output format. At least one source must carry dimensions.
func PlanGrid(cols, rows, fps int, sources []Source) (Grid, error) {
	if cols < 1 || rows < 1 {
		return Grid{}, fmt.Errorf("invalid grid shape %dx%d", cols, rows)
	}

	maxW, maxH := 0, 0
	for _, s := range sources {
		if !s.Present || s.Width <= 0 || s.Height <= 0 {
			continue
		}
		if s.Width > maxW {
			maxW = s.Width
		}
		if s.Height > maxH {
			maxH = s.Height
		}
	}
	if maxW == 0 || maxH == 0 {
		return Grid{}, ErrNoSources
	}

	return Grid{
		Cols:  cols,
		Rows:  rows,
		CellW: evenCeil(maxW),
		CellH: evenCeil(maxH),
		FPS:   fps,
	}, nil
}

// FallbackDuration returns the filler length for a job: the maximum
// duration observed across present sources, or def when none reports one.
func FallbackDuration(sources []Source, def float64) float64 {
	max := 0.0
	for _, s := range sources {
		if s.Present && s.Duration > max {
			max = s.Duration
		}
	}
	if max == 0 {
		return def
	}
	return max
}

// evenCeil rounds x up to the nearest even value.
func evenCeil(x int) int {
	return (x + 1) &^ 1
}
