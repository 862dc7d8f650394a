package transform

import (
	"math"

	"github.com/egoengine/clipmill/internal/frame"
)

// midGray is the pivot for the contrast step.
const midGray = 128.0

// Adjust is the exposure/contrast/gain/gamma pipeline. Steps run in a fixed
// order -- exposure, per-channel gain, contrast around mid-gray, gamma --
// and the result differs if they are reordered, so the order is part of the
// contract.
//
// Gains are expressed in logical R/G/B order regardless of the buffer's
// physical channel layout; Apply routes them through [frame.Channel.Index].
type Adjust struct {
	Exposure float64    `validate:"gt=0"`
	Contrast float64    `validate:"gt=0"`
	Gains    [3]float64 `validate:"dive,gt=0"` // R, G, B
	Gamma    float64    `validate:"gt=0"`
}

// NewAdjust returns an identity Adjust (all parameters 1.0).
func NewAdjust() Adjust {
	return Adjust{Exposure: 1, Contrast: 1, Gains: [3]float64{1, 1, 1}, Gamma: 1}
}

// IsIdentity reports whether applying a would leave every frame unchanged.
func (a Adjust) IsIdentity() bool {
	return a.Exposure == 1 && a.Contrast == 1 && a.Gamma == 1 &&
		a.Gains[0] == 1 && a.Gains[1] == 1 && a.Gains[2] == 1
}

// Apply runs the four steps over every sample of b:
//
//  1. multiply by Exposure
//  2. multiply by the channel's gain
//  3. v = 128 + (v-128)*Contrast  (skipped when Contrast == 1, a no-op)
//  4. clip to [0,255], v = 255*(v/255)^(1/Gamma)  (skipped when Gamma == 1)
//
// The final value is clipped to [0,255] and truncated to 8 bits. All
// intermediate values stay in float64 so nothing clips between steps.
func (a Adjust) Apply(b *frame.Buffer) {
	if a.IsIdentity() {
		return
	}

	// Fold exposure and gain into one per-physical-channel multiplier,
	// indexed by byte offset within a BGR pixel.
	var mul [frame.PixelSize]float64
	mul[frame.Red.Index()] = a.Exposure * a.Gains[0]
	mul[frame.Green.Index()] = a.Exposure * a.Gains[1]
	mul[frame.Blue.Index()] = a.Exposure * a.Gains[2]

	applyContrast := a.Contrast != 1
	applyGamma := a.Gamma != 1
	invGamma := 1.0
	if applyGamma {
		invGamma = 1.0 / a.Gamma
	}

	pix := b.Pix
	for i := range pix {
		v := float64(pix[i]) * mul[i%frame.PixelSize]
		if applyContrast {
			v = midGray + (v-midGray)*a.Contrast
		}
		if applyGamma {
			v = math.Min(math.Max(v, 0), 255)
			v = math.Pow(v/255.0, invGamma) * 255.0
		}
		pix[i] = clip8(v)
	}
}
