// Package frame defines the raw pixel buffer type shared by the decode,
// transform, and encode stages.
//
// Buffers are packed BGR, 8 bits per sample, row-major with no padding.
// That matches the bgr24 raw format the decode and encode pipes speak, so a
// frame travels through the whole pipeline without conversion. User-facing
// parameters (per-channel gains) are expressed in R/G/B order; the mapping
// between the two conventions lives here and only here.
package frame

// Bytes per pixel for packed BGR buffers.
const PixelSize = 3

// Channel identifies a logical color channel as exposed to callers
// (CLI flags, configs). It is independent of the physical byte order.
type Channel int

const (
	Red Channel = iota
	Green
	Blue
)

// Index returns the byte offset of the channel within one BGR pixel.
// All pixel-level code must go through this mapping rather than assuming
// a layout, so a future change of buffer convention stays in one place.
func (c Channel) Index() int {
	switch c {
	case Blue:
		return 0
	case Green:
		return 1
	default: // Red
		return 2
	}
}

// String returns the single-letter channel name.
func (c Channel) String() string {
	switch c {
	case Red:
		return "R"
	case Green:
		return "G"
	default:
		return "B"
	}
}

// Buffer is one decoded video frame: Width*Height packed BGR pixels.
type Buffer struct {
	Width  int
	Height int
	Pix    []byte // len = Width*Height*PixelSize
}

// New allocates a zeroed (black) frame of the given dimensions.
func New(width, height int) *Buffer {
	return &Buffer{
		Width:  width,
		Height: height,
		Pix:    make([]byte, width*height*PixelSize),
	}
}

// Size returns the byte length of one frame at the given dimensions.
func Size(width, height int) int {
	return width * height * PixelSize
}

// Stride returns the byte length of one pixel row.
func (b *Buffer) Stride() int {
	return b.Width * PixelSize
}

// At returns the sample of the logical channel c at pixel (x, y).
func (b *Buffer) At(x, y int, c Channel) uint8 {
	return b.Pix[(y*b.Width+x)*PixelSize+c.Index()]
}

// Set stores the sample of the logical channel c at pixel (x, y).
func (b *Buffer) Set(x, y int, c Channel, v uint8) {
	b.Pix[(y*b.Width+x)*PixelSize+c.Index()] = v
}

// FromGray expands a single-channel grayscale plane into a 3-channel BGR
// buffer by replicating each sample. Color transforms require 3-channel
// input; sources that decode to grayscale must be upconverted through here
// before entering a transform.
func FromGray(width, height int, gray []byte) *Buffer {
	b := New(width, height)
	for i, v := range gray {
		o := i * PixelSize
		b.Pix[o] = v
		b.Pix[o+1] = v
		b.Pix[o+2] = v
	}
	return b
}
