package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"

	"github.com/egoengine/clipmill/internal/frame"
)

// FrameReader pulls decoded bgr24 frames from an ffmpeg decode process.
// Frames arrive in presentation order; end of stream is signaled by the
// pipe draining, not by an error.
type FrameReader struct {
	cmd       *exec.Cmd
	out       io.ReadCloser
	stderr    bytes.Buffer
	frameSize int
	width     int
	height    int
	fps       float64
	frames    int64
}

// StartReader launches a decode process for path. Width, height, fps, and
// frame count come from a prior probe; the reader trusts them for frame
// geometry, so they must describe the actual stream.
func StartReader(ctx context.Context, bin, path string, width, height int, fps float64, frames int64) (*FrameReader, error) {
	args := RawDecodeArgs(bin, path)
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)

	r := &FrameReader{
		cmd:       cmd,
		frameSize: frame.Size(width, height),
		width:     width,
		height:    height,
		fps:       fps,
		frames:    frames,
	}
	cmd.Stderr = &r.stderr

	out, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("decode pipe: %w", err)
	}
	r.out = out

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start decoder: %w", err)
	}
	return r, nil
}

// Width returns the frame width in pixels.
func (r *FrameReader) Width() int { return r.width }

// Height returns the frame height in pixels.
func (r *FrameReader) Height() int { return r.height }

// FrameRate returns the source's presentation rate.
func (r *FrameReader) FrameRate() float64 { return r.fps }

// FrameCount returns the reported total frame count, 0 when unknown.
func (r *FrameReader) FrameCount() int64 { return r.frames }

// Next fills buf with the next decoded frame. It returns io.EOF when the
// stream ends cleanly; a trailing partial frame is also treated as end of
// stream since nothing downstream could use it.
func (r *FrameReader) Next(buf []byte) error {
	if len(buf) != r.frameSize {
		return fmt.Errorf("frame buffer is %d bytes, want %d", len(buf), r.frameSize)
	}
	_, err := io.ReadFull(r.out, buf)
	if errors.Is(err, io.ErrUnexpectedEOF) {
		return io.EOF
	}
	return err
}

// Close shuts the decode process down. Exit status is ignored: the reader
// may close before draining the stream (frame caps), which kills ffmpeg
// mid-write and is not a failure.
func (r *FrameReader) Close() error {
	_ = r.out.Close()
	_ = r.cmd.Wait()
	return nil
}

// FrameWriter pushes raw bgr24 frames into an ffmpeg encode process.
// WriteFrame blocks when the encoder's input buffer is full; that
// backpressure is the intended pacing mechanism, not an error.
type FrameWriter struct {
	cmd    *exec.Cmd
	in     io.WriteCloser
	stderr bytes.Buffer
	args   []string
}

// StartWriter launches an encode process writing to output with the given
// frame geometry and rate.
func StartWriter(ctx context.Context, bin, output string, width, height int, fps float64, o EncodeOpts) (*FrameWriter, error) {
	args := RawEncodeArgs(bin, output, width, height, fps, o)
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)

	w := &FrameWriter{cmd: cmd, args: args}
	cmd.Stderr = &w.stderr

	in, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("encode pipe: %w", err)
	}
	w.in = in

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start encoder: %w", err)
	}
	return w, nil
}

// WriteFrame sends one raw frame to the encoder.
func (w *FrameWriter) WriteFrame(buf []byte) error {
	if _, err := w.in.Write(buf); err != nil {
		return &Error{Args: w.args, Stderr: w.stderr.String(), Err: err}
	}
	return nil
}

// Close signals end of input and waits for the encoder to finish the file.
// A non-zero exit surfaces as an *Error carrying the captured stderr.
func (w *FrameWriter) Close() error {
	if err := w.in.Close(); err != nil {
		_ = w.cmd.Wait()
		return &Error{Args: w.args, Stderr: w.stderr.String(), Err: err}
	}
	if err := w.cmd.Wait(); err != nil {
		return &Error{Args: w.args, Stderr: w.stderr.String(), Err: err}
	}
	return nil
}
