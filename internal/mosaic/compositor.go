package mosaic

import (
	"context"
	"fmt"
	"strings"

	"github.com/egoengine/clipmill/internal/ffmpeg"
)

// Compositor arranges normalized tiles on the output canvas in one encoder
// invocation.
type Compositor struct {
	Bin     string
	Encode  ffmpeg.EncodeOpts
	Verbose bool
}

// Layout returns the xstack placement string for a grid: one "x_y" offset
// per tile in row-major order, tile (c,r) at pixel (c*CellW, r*CellH).
func Layout(g Grid) string {
	offsets := make([]string, 0, g.Capacity())
	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Cols; c++ {
			offsets = append(offsets, fmt.Sprintf("%d_%d", c*g.CellW, r*g.CellH))
		}
	}
	return strings.Join(offsets, "|")
}

// FilterGraph returns the full filter_complex for n tiles: every input's
// timestamps reset to start at zero, then stacked with the grid layout into
// the [vout] label. Tiles are already cell-sized, so no scaling appears
// anywhere in the graph.
func FilterGraph(n int, layout string) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "[%d:v]setpts=PTS-STARTPTS[v%d];", i, i)
	}
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "[v%d]", i)
	}
	fmt.Fprintf(&b, "xstack=inputs=%d:layout=%s[vout]", n, layout)
	return b.String()
}

// Compose builds and runs the mosaic encode: len(tiles) must equal the grid
// capacity exactly -- a short or excess tile list is a configuration error
// and nothing is encoded. The output ends when the shortest tile ends.
func (c *Compositor) Compose(ctx context.Context, g Grid, tiles []string, out string) error {
	if len(tiles) != g.Capacity() {
		return fmt.Errorf("grid wants %d tiles (%dx%d), got %d",
			g.Capacity(), g.Cols, g.Rows, len(tiles))
	}

	graph := FilterGraph(len(tiles), Layout(g))
	args := ffmpeg.MosaicArgs(c.Bin, tiles, graph, g.FPS, out, c.Encode)

	if res := ffmpeg.Execute(ctx, args, c.Verbose); res.Err != nil {
		return fmt.Errorf("compose mosaic %q: %w", out, res.Err)
	}
	return nil
}
