package mosaic

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/egoengine/clipmill/internal/ffmpeg"
)

// Normalizer produces tiles of exactly the grid cell size. Present sources
// are padded -- never rescaled -- onto a centered canvas with a solid
// border; missing sources become solid filler clips of the job's fallback
// duration. Normalizing an already cell-sized tile pads by zero on every
// edge, so the operation is idempotent modulo re-encoding.
type Normalizer struct {
	Bin       string // ffmpeg binary
	Border    string // border and filler color, e.g. "black"
	FillerDur float64
	Encode    ffmpeg.EncodeOpts
	Verbose   bool
}

// Normalize writes the tile for src to dst at the grid's cell size, audio
// stripped. The destination directory is created as needed.
func (n *Normalizer) Normalize(ctx context.Context, src Source, dst string, g Grid) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("create tile directory: %w", err)
	}

	var args []string
	if src.Present {
		args = ffmpeg.PadArgs(n.Bin, src.Path, dst, g.CellW, g.CellH, n.Border, n.Encode)
	} else {
		args = ffmpeg.FillerArgs(n.Bin, dst, g.CellW, g.CellH, g.FPS, n.FillerDur, n.Border, n.Encode)
	}

	if res := ffmpeg.Execute(ctx, args, n.Verbose); res.Err != nil {
		return fmt.Errorf("normalize tile %q: %w", dst, res.Err)
	}
	return nil
}
