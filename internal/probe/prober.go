// Package probe extracts video stream metadata (dimensions, duration, frame
// rate, frame count) from media files via a single ffprobe JSON call.
package probe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// ErrNoVideoStream is returned when the file probes cleanly but carries no
// video stream at all.
var ErrNoVideoStream = errors.New("no video stream found")

// Prober runs ffprobe against asset paths. The zero value is not usable;
// construct with [New].
type Prober struct {
	bin string
}

// New returns a Prober using the given ffprobe binary. An empty bin falls
// back to "ffprobe" resolved via PATH.
func New(bin string) *Prober {
	if bin == "" {
		bin = "ffprobe"
	}
	return &Prober{bin: bin}
}

// Probe runs one ffprobe JSON call against path and returns the parsed
// video stream properties. Ffprobe failures (unreadable or missing file)
// surface as errors; absent metadata fields surface as zero values.
func (p *Prober) Probe(ctx context.Context, path string) (*Result, error) {
	cmd := exec.CommandContext(ctx, p.bin,
		"-v", "error",
		"-print_format", "json",
		"-show_format", "-show_streams",
		path,
	)

	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("ffprobe %q: %w", path, err)
	}

	r, err := ParseJSON(out)
	if err != nil {
		return nil, err
	}
	r.Path = path
	return r, nil
}

// ParseJSON converts raw ffprobe JSON output into a Result. Exported so the
// parsing can be tested without a real ffprobe binary.
func ParseJSON(data []byte) (*Result, error) {
	var raw ffprobeOutput
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse ffprobe JSON: %w", err)
	}
	return buildResult(&raw)
}

// --- ffprobe JSON wire types ---

type ffprobeOutput struct {
	Format  ffprobeFormat   `json:"format"`
	Streams []ffprobeStream `json:"streams"`
}

type ffprobeFormat struct {
	Duration string `json:"duration"`
}

type ffprobeStream struct {
	CodecType    string         `json:"codec_type"`
	Width        int            `json:"width"`
	Height       int            `json:"height"`
	Duration     string         `json:"duration"`
	AvgFrameRate string         `json:"avg_frame_rate"`
	RFrameRate   string         `json:"r_frame_rate"`
	NbFrames     string         `json:"nb_frames"`
	Disposition  map[string]int `json:"disposition"`
}

// buildResult picks the first non-attached-pic video stream. Duration comes
// from the format section with the stream value as fallback, matching how
// containers report it.
func buildResult(raw *ffprobeOutput) (*Result, error) {
	var v *ffprobeStream
	for i := range raw.Streams {
		s := &raw.Streams[i]
		if s.CodecType != "video" || s.Disposition["attached_pic"] == 1 {
			continue
		}
		v = s
		break
	}
	if v == nil {
		return nil, ErrNoVideoStream
	}

	dur := parseFloat(raw.Format.Duration)
	if dur == 0 {
		dur = parseFloat(v.Duration)
	}

	fps := parseRational(v.AvgFrameRate)
	if fps == 0 {
		fps = parseRational(v.RFrameRate)
	}

	return &Result{
		Width:      v.Width,
		Height:     v.Height,
		Duration:   dur,
		FrameRate:  fps,
		FrameCount: parseInt64(v.NbFrames),
	}, nil
}

// --- Numeric parsing helpers (ffprobe returns numbers as strings) ---

func parseFloat(s string) float64 {
	f, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f
}

func parseInt64(s string) int64 {
	n, _ := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	return n
}

// parseRational parses ffprobe rate strings like "30000/1001" or "25".
// A zero denominator (ffprobe's "0/0" for unknown) yields 0.
func parseRational(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	num, den, ok := strings.Cut(s, "/")
	n := parseFloat(num)
	if !ok {
		return n
	}
	d := parseFloat(den)
	if d == 0 {
		return 0
	}
	return n / d
}
