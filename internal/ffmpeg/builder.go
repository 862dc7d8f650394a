package ffmpeg

import (
	"fmt"
	"strconv"
)

// EncodeOpts carries the H.264 settings shared by every encode command.
type EncodeOpts struct {
	Preset string // libx264 preset, e.g. "veryfast"
	CRF    int    // constant rate factor
}

// codecArgs is the common libx264 tail: browser-safe pixel format and
// faststart container layout so playback can begin before the download ends.
func codecArgs(o EncodeOpts) []string {
	return []string{
		"-c:v", "libx264",
		"-preset", o.Preset,
		"-crf", strconv.Itoa(o.CRF),
		"-pix_fmt", "yuv420p",
		"-movflags", "+faststart",
	}
}

// RawDecodeArgs builds the decode side of a frame pipe: input file in,
// packed bgr24 frames out on stdout, presentation order.
func RawDecodeArgs(bin, input string) []string {
	return []string{
		bin, "-hide_banner", "-nostdin", "-v", "error",
		"-i", input,
		"-f", "rawvideo",
		"-pix_fmt", "bgr24",
		"pipe:1",
	}
}

// RawEncodeArgs builds the encode side of a frame pipe: packed bgr24 frames
// on stdin with declared geometry and rate, H.264 file out.
func RawEncodeArgs(bin, output string, width, height int, fps float64, o EncodeOpts) []string {
	args := []string{
		bin, "-hide_banner", "-y", "-v", "error",
		"-f", "rawvideo",
		"-pix_fmt", "bgr24",
		"-s", fmt.Sprintf("%dx%d", width, height),
		"-r", fmt.Sprintf("%.6f", fps),
		"-i", "pipe:0",
	}
	args = append(args, codecArgs(o)...)
	return append(args, output)
}

// PadArgs builds the tile-normalization command: center src on a width x
// height canvas without rescaling, fill the border with the given color,
// strip audio.
func PadArgs(bin, src, dst string, width, height int, border string, o EncodeOpts) []string {
	vf := fmt.Sprintf("pad=%d:%d:(ow-iw)/2:(oh-ih)/2:%s,setsar=1,format=yuv420p",
		width, height, border)
	args := []string{
		bin, "-hide_banner", "-y", "-v", "error",
		"-i", src,
		"-vf", vf,
	}
	args = append(args, codecArgs(o)...)
	return append(args, "-an", dst)
}

// FillerArgs builds a synthetic solid-color clip of exactly the given
// geometry, rate, and duration, for grid positions whose source is missing.
func FillerArgs(bin, dst string, width, height, fps int, duration float64, color string, o EncodeOpts) []string {
	args := []string{
		bin, "-hide_banner", "-y", "-v", "error",
		"-f", "lavfi",
		"-i", fmt.Sprintf("color=%s:s=%dx%d:r=%d", color, width, height, fps),
		"-t", fmt.Sprintf("%.3f", duration),
	}
	args = append(args, codecArgs(o)...)
	return append(args, "-an", dst)
}

// MosaicArgs builds the composition command: N labeled inputs mapped through
// the supplied filter graph onto one canvas, constant output rate, ending
// when the shortest input ends.
func MosaicArgs(bin string, inputs []string, filterGraph string, fps int, out string, o EncodeOpts) []string {
	args := []string{bin, "-hide_banner", "-y", "-v", "error"}
	for _, in := range inputs {
		args = append(args, "-i", in)
	}
	args = append(args,
		"-filter_complex", filterGraph,
		"-map", "[vout]",
		"-r", strconv.Itoa(fps),
	)
	args = append(args, codecArgs(o)...)
	return append(args, "-an", "-shortest", out)
}

// TranscodeArgs builds the browser-compatibility re-encode used after an
// in-place fix: H.264/yuv420p/faststart at the source resolution. When
// evenScale is set, odd dimensions are truncated to even values, which the
// 4:2:0 pixel format requires.
func TranscodeArgs(bin, src, dst string, evenScale bool, o EncodeOpts) []string {
	args := []string{
		bin, "-hide_banner", "-y", "-v", "error",
		"-i", src,
	}
	if evenScale {
		args = append(args, "-vf", "scale=trunc(iw/2)*2:trunc(ih/2)*2")
	}
	args = append(args, codecArgs(o)...)
	return append(args, "-an", dst)
}

// EqArgs builds the declarative brightness/contrast adjustment: no Go-side
// frame decoding, metadata carried over, audio copied untouched.
func EqArgs(bin, src, dst string, brightness, contrast float64, o EncodeOpts) []string {
	args := []string{
		bin, "-hide_banner", "-y", "-v", "error",
		"-i", src,
		"-map_metadata", "0",
		"-vf", fmt.Sprintf("eq=brightness=%g:contrast=%g", brightness, contrast),
	}
	args = append(args, codecArgs(o)...)
	return append(args, "-c:a", "copy", dst)
}
