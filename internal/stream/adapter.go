// Package stream bridges a pull-based frame source and a push-based frame
// sink: read one frame, transform it, write it, in source order. This is
// the only place the two models meet, and the loop is deliberately
// single-threaded -- output order equals input order by construction.
package stream

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/egoengine/clipmill/internal/frame"
	"github.com/egoengine/clipmill/internal/transform"
)

// Source yields decoded 3-channel frames in presentation order. Next
// returns io.EOF when the stream ends; yielding fewer frames than
// FrameCount reported is a clean stop, not an error.
type Source interface {
	Width() int
	Height() int
	FrameRate() float64
	FrameCount() int64 // 0 when unknown
	Next(buf []byte) error
	Close() error
}

// Sink accepts raw frames of fixed geometry. WriteFrame may block while the
// sink's internal buffer is full; Close finalizes the output and reports
// any deferred encode failure.
type Sink interface {
	WriteFrame(buf []byte) error
	Close() error
}

// Copy runs the decode/transform/encode loop: every frame from src is
// transformed by t and written to sink, 1:1 and in order. Processing stops
// at limit frames when limit > 0, at the source's reported frame count when
// it has one, or at end of stream, whichever comes first. The returned
// count is the number of frames actually written.
//
// Copy closes neither src nor sink; the caller owns both, because sink
// finalization decides whether the output file is kept.
func Copy(ctx context.Context, src Source, sink Sink, t transform.Transform, limit int64, progress func(int64)) (int64, error) {
	buf := frame.Buffer{
		Width:  src.Width(),
		Height: src.Height(),
		Pix:    make([]byte, frame.Size(src.Width(), src.Height())),
	}

	max := src.FrameCount()
	if limit > 0 && (max == 0 || limit < max) {
		max = limit
	}

	var n int64
	for max == 0 || n < max {
		if err := ctx.Err(); err != nil {
			return n, err
		}

		err := src.Next(buf.Pix)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return n, fmt.Errorf("read frame %d: %w", n, err)
		}

		t.Apply(&buf)

		if err := sink.WriteFrame(buf.Pix); err != nil {
			return n, fmt.Errorf("write frame %d: %w", n, err)
		}
		n++
		if progress != nil {
			progress(n)
		}
	}
	return n, nil
}
