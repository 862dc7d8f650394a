package ffmpeg

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testOpts = EncodeOpts{Preset: "veryfast", CRF: 18}

// argValue returns the argument following the first occurrence of flag.
func argValue(t *testing.T, args []string, flag string) string {
	t.Helper()
	for i, a := range args {
		if a == flag {
			require.Less(t, i+1, len(args), "%s has no value", flag)
			return args[i+1]
		}
	}
	t.Fatalf("flag %s not present in %v", flag, args)
	return ""
}

func TestRawDecodeArgs(t *testing.T) {
	args := RawDecodeArgs("ffmpeg", "in.mp4")

	assert.Equal(t, "ffmpeg", args[0])
	assert.Equal(t, "in.mp4", argValue(t, args, "-i"))
	assert.Equal(t, "rawvideo", argValue(t, args, "-f"))
	assert.Equal(t, "bgr24", argValue(t, args, "-pix_fmt"))
	assert.Equal(t, "pipe:1", args[len(args)-1])
	assert.Contains(t, args, "-nostdin")
}

func TestRawEncodeArgs(t *testing.T) {
	args := RawEncodeArgs("ffmpeg", "out.mp4", 1280, 720, 29.97, testOpts)

	assert.Equal(t, "1280x720", argValue(t, args, "-s"))
	assert.Equal(t, "29.970000", argValue(t, args, "-r"))
	assert.Equal(t, "pipe:0", argValue(t, args, "-i"))
	assert.Equal(t, "libx264", argValue(t, args, "-c:v"))
	assert.Equal(t, "veryfast", argValue(t, args, "-preset"))
	assert.Equal(t, "18", argValue(t, args, "-crf"))
	assert.Equal(t, "+faststart", argValue(t, args, "-movflags"))
	assert.Equal(t, "out.mp4", args[len(args)-1])

	// The rawvideo input declaration must precede -i so it applies to the
	// pipe, not the output.
	idxF := indexOf(args, "-f")
	idxI := indexOf(args, "-i")
	assert.Less(t, idxF, idxI)
}

func TestPadArgsFilterString(t *testing.T) {
	args := PadArgs("ffmpeg", "src.mp4", "tile.mp4", 642, 362, "black", testOpts)

	vf := argValue(t, args, "-vf")
	assert.Equal(t, "pad=642:362:(ow-iw)/2:(oh-ih)/2:black,setsar=1,format=yuv420p", vf)
	assert.Contains(t, args, "-an")
	assert.Equal(t, "tile.mp4", args[len(args)-1])
}

func TestFillerArgs(t *testing.T) {
	args := FillerArgs("ffmpeg", "tile.mp4", 640, 360, 30, 12.5, "black", testOpts)

	assert.Equal(t, "lavfi", argValue(t, args, "-f"))
	assert.Equal(t, "color=black:s=640x360:r=30", argValue(t, args, "-i"))
	assert.Equal(t, "12.500", argValue(t, args, "-t"))
	assert.Equal(t, "tile.mp4", args[len(args)-1])
}

func TestMosaicArgs(t *testing.T) {
	inputs := []string{"a.mp4", "b.mp4", "c.mp4"}
	args := MosaicArgs("ffmpeg", inputs, "graph", 30, "out.mp4", testOpts)

	var seen []string
	for i, a := range args {
		if a == "-i" {
			seen = append(seen, args[i+1])
		}
	}
	assert.Equal(t, inputs, seen, "inputs must keep their order; xstack labels are positional")

	assert.Equal(t, "graph", argValue(t, args, "-filter_complex"))
	assert.Equal(t, "[vout]", argValue(t, args, "-map"))
	assert.Equal(t, "30", argValue(t, args, "-r"))
	assert.Contains(t, args, "-shortest")
	assert.Equal(t, "out.mp4", args[len(args)-1])
}

func TestTranscodeArgsEvenScale(t *testing.T) {
	plain := TranscodeArgs("ffmpeg", "a.mp4", "b.mp4", false, testOpts)
	assert.NotContains(t, plain, "-vf")

	scaled := TranscodeArgs("ffmpeg", "a.mp4", "b.mp4", true, testOpts)
	assert.Equal(t, "scale=trunc(iw/2)*2:trunc(ih/2)*2", argValue(t, scaled, "-vf"))
}

func TestEqArgs(t *testing.T) {
	args := EqArgs("ffmpeg", "in.mp4", "out.mp4", -0.05, 1.1, EncodeOpts{Preset: "veryfast", CRF: 20})

	assert.Equal(t, "eq=brightness=-0.05:contrast=1.1", argValue(t, args, "-vf"))
	assert.Equal(t, "0", argValue(t, args, "-map_metadata"))
	assert.Equal(t, "copy", argValue(t, args, "-c:a"))
	assert.Equal(t, "20", argValue(t, args, "-crf"))
}

func TestStderrTail(t *testing.T) {
	tests := []struct {
		name   string
		stderr string
		n      int
		want   string
	}{
		{"empty", "", 3, ""},
		{"whitespace only", "  \n\n  ", 3, ""},
		{"fewer lines than n", "one\ntwo", 5, "one; two"},
		{"keeps the last n", "a\nb\nc\nd", 2, "c; d"},
		{"skips blank lines", "a\n\n\nb\n", 2, "a; b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StderrTail(tt.stderr, tt.n))
		})
	}
}

func TestErrorMessageIncludesStderr(t *testing.T) {
	e := &Error{
		Args:   []string{"ffmpeg", "-i", "x"},
		Stderr: "x: No such file or directory\n",
		Err:    assert.AnError,
	}
	assert.True(t, strings.Contains(e.Error(), "No such file or directory"))
	assert.ErrorIs(t, e, assert.AnError)
}

func indexOf(args []string, s string) int {
	for i, a := range args {
		if a == s {
			return i
		}
	}
	return -1
}
