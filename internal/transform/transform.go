// Package transform implements the per-frame color transforms: gray-world
// power-mean equalization and the exposure/contrast/gain/gamma pipeline.
//
// Both transforms are pure per-frame operations: no temporal state, no
// dependency between frames, deterministic for a given parameter set. All
// intermediate math runs in float64 and is clipped to [0,255] only at the
// documented points, so values may exceed the byte range between steps
// without loss.
package transform

import "github.com/egoengine/clipmill/internal/frame"

// Transform mutates one decoded frame in place.
//
// Implementations must be safe to apply to every frame of a stream in
// sequence and must not retain references to the buffer.
type Transform interface {
	Apply(b *frame.Buffer)
}

// clip8 clamps v to [0,255] and truncates to an 8-bit sample.
func clip8(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}
