package stream

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/egoengine/clipmill/internal/frame"
)

// fakeSource yields frames whose first byte is the frame index, so a test
// can verify both count and order on the other side.
type fakeSource struct {
	w, h    int
	total   int64 // reported FrameCount
	yield   int   // frames actually produced before EOF
	next    int
	readErr error
	closed  bool
}

func (s *fakeSource) Width() int         { return s.w }
func (s *fakeSource) Height() int        { return s.h }
func (s *fakeSource) FrameRate() float64 { return 30 }
func (s *fakeSource) FrameCount() int64  { return s.total }
func (s *fakeSource) Close() error       { s.closed = true; return nil }

func (s *fakeSource) Next(buf []byte) error {
	if s.readErr != nil {
		return s.readErr
	}
	if s.next >= s.yield {
		return io.EOF
	}
	buf[0] = byte(s.next)
	s.next++
	return nil
}

type fakeSink struct {
	frames   []byte // first byte of each written frame
	writeErr error
}

func (k *fakeSink) WriteFrame(buf []byte) error {
	if k.writeErr != nil {
		return k.writeErr
	}
	k.frames = append(k.frames, buf[0])
	return nil
}

func (k *fakeSink) Close() error { return nil }

// markTransform stamps a known byte so tests can tell the transform ran.
type markTransform struct{}

func (markTransform) Apply(b *frame.Buffer) {
	if len(b.Pix) > 1 {
		b.Pix[1] = 0xAB
	}
}

// nop leaves frames untouched.
type nop struct{}

func (nop) Apply(*frame.Buffer) {}

func TestCopyAllFramesInOrder(t *testing.T) {
	src := &fakeSource{w: 2, h: 2, total: 5, yield: 5}
	sink := &fakeSink{}

	n, err := Copy(context.Background(), src, sink, nop{}, 0, nil)
	require.NoError(t, err)

	assert.Equal(t, int64(5), n)
	assert.Equal(t, []byte{0, 1, 2, 3, 4}, sink.frames)
}

func TestCopyAppliesTransform(t *testing.T) {
	src := &fakeSource{w: 2, h: 2, total: 1, yield: 1}

	var lastFrame []byte
	collect := &captureSink{dst: &lastFrame}

	_, err := Copy(context.Background(), src, collect, markTransform{}, 0, nil)
	require.NoError(t, err)

	assert.Equal(t, byte(0xAB), lastFrame[1])
}

type captureSink struct {
	dst *[]byte
}

func (c *captureSink) WriteFrame(buf []byte) error {
	*c.dst = append([]byte(nil), buf...)
	return nil
}

func (c *captureSink) Close() error { return nil }

func TestCopyLimitBoundsFrameCount(t *testing.T) {
	tests := []struct {
		name  string
		total int64
		yield int
		limit int64
		want  int64
	}{
		{"limit below source count", 10, 10, 3, 3},
		{"limit above source count", 4, 4, 100, 4},
		{"limit with unknown count", 0, 7, 5, 5},
		{"no limit, unknown count", 0, 6, 0, 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &fakeSource{w: 1, h: 1, total: tt.total, yield: tt.yield}
			sink := &fakeSink{}

			n, err := Copy(context.Background(), src, sink, nop{}, tt.limit, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, n)
		})
	}
}

func TestCopyEarlyEOFIsClean(t *testing.T) {
	// The container promised 10 frames but the stream ends after 4. That
	// is a short stream, not a failure.
	src := &fakeSource{w: 1, h: 1, total: 10, yield: 4}
	sink := &fakeSink{}

	n, err := Copy(context.Background(), src, sink, nop{}, 0, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
}

func TestCopyReadErrorReported(t *testing.T) {
	readErr := errors.New("pipe broke")
	src := &fakeSource{w: 1, h: 1, total: 3, readErr: readErr}
	sink := &fakeSink{}

	n, err := Copy(context.Background(), src, sink, nop{}, 0, nil)
	assert.ErrorIs(t, err, readErr)
	assert.Zero(t, n)
}

func TestCopyWriteErrorReported(t *testing.T) {
	writeErr := errors.New("encoder gone")
	src := &fakeSource{w: 1, h: 1, total: 3, yield: 3}
	sink := &fakeSink{writeErr: writeErr}

	_, err := Copy(context.Background(), src, sink, nop{}, 0, nil)
	assert.ErrorIs(t, err, writeErr)
}

func TestCopyHonorsContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := &fakeSource{w: 1, h: 1, total: 3, yield: 3}
	n, err := Copy(ctx, src, &fakeSink{}, nop{}, 0, nil)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, n)
}

func TestCopyReportsProgress(t *testing.T) {
	src := &fakeSource{w: 1, h: 1, total: 3, yield: 3}

	var ticks []int64
	_, err := Copy(context.Background(), src, &fakeSink{}, nop{}, 0, func(n int64) {
		ticks = append(ticks, n)
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, ticks)
}

func TestCopyDoesNotCloseEitherSide(t *testing.T) {
	src := &fakeSource{w: 1, h: 1, total: 1, yield: 1}
	_, err := Copy(context.Background(), src, &fakeSink{}, nop{}, 0, nil)
	require.NoError(t, err)
	assert.False(t, src.closed)
}
