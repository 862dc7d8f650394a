package transform

import (
	"math"

	"github.com/egoengine/clipmill/internal/frame"
)

// Gray-world defaults. Power 6 weights bright regions heavily; epsilon
// bounds the scale when a channel is entirely black.
const (
	DefaultPower   = 6.0
	DefaultEpsilon = 1e-6
)

// GrayWorld equalizes the per-channel generalized power-mean brightness of
// a frame toward a common gray target. There is no gamma step in this
// transform; it is a standalone strategy, not a variant of Adjust.
type GrayWorld struct {
	Power   float64 `validate:"gte=1"`
	Epsilon float64 `validate:"gt=0"`
}

// NewGrayWorld returns a GrayWorld with the default parameters.
func NewGrayWorld() GrayWorld {
	return GrayWorld{Power: DefaultPower, Epsilon: DefaultEpsilon}
}

// Apply rescales each channel of b by target/(m_c+eps), where m_c is the
// channel's power-mean brightness and target is the mean of the three m_c.
// An all-black frame yields m_c ≈ eps^(1/p) in every channel, so the scale
// stays near 1 instead of blowing up.
func (g GrayWorld) Apply(b *frame.Buffer) {
	n := b.Width * b.Height
	if n == 0 {
		return
	}

	// v^p lookup for the 256 possible samples; Pow per pixel is far too slow.
	var pow [256]float64
	for v := range pow {
		pow[v] = math.Pow(float64(v), g.Power)
	}

	var sum [frame.PixelSize]float64
	pix := b.Pix
	for i := 0; i+2 < len(pix); i += frame.PixelSize {
		sum[0] += pow[pix[i]]
		sum[1] += pow[pix[i+1]]
		sum[2] += pow[pix[i+2]]
	}

	var m [frame.PixelSize]float64
	target := 0.0
	for c := range m {
		m[c] = math.Pow(sum[c]/float64(n)+g.Epsilon, 1.0/g.Power)
		target += m[c]
	}
	target /= frame.PixelSize

	// Scales are applied in float32. At that precision a uniform frame's
	// scale quantizes to exactly 1, so equalizing an already-gray frame is
	// a true no-op instead of drifting every sample down by truncation.
	var scale [frame.PixelSize]float32
	for c := range scale {
		scale[c] = float32(target / (m[c] + g.Epsilon))
	}

	for i := 0; i+2 < len(pix); i += frame.PixelSize {
		pix[i] = clip8(float64(float32(pix[i]) * scale[0]))
		pix[i+1] = clip8(float64(float32(pix[i+1]) * scale[1]))
		pix[i+2] = clip8(float64(float32(pix[i+2]) * scale[2]))
	}
}
