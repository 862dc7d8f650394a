package ffmpeg

import (
	"fmt"
	"strings"
)

// Error is a failed ffmpeg invocation: the argv that was run, the captured
// stderr, and the underlying exec error.
type Error struct {
	Args   []string
	Stderr string
	Err    error
}

func (e *Error) Error() string {
	tail := StderrTail(e.Stderr, 5)
	if tail == "" {
		return fmt.Sprintf("ffmpeg: %v", e.Err)
	}
	return fmt.Sprintf("ffmpeg: %v: %s", e.Err, tail)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// StderrTail returns the last n non-empty lines of captured stderr joined
// with "; ". Ffmpeg's final lines carry the actionable message; the rest is
// noise for log output.
func StderrTail(stderr string, n int) string {
	lines := strings.Split(strings.TrimSpace(stderr), "\n")
	var kept []string
	for _, l := range lines {
		if s := strings.TrimSpace(l); s != "" {
			kept = append(kept, s)
		}
	}
	if len(kept) > n {
		kept = kept[len(kept)-n:]
	}
	return strings.Join(kept, "; ")
}
