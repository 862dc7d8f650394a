package display

import (
	"fmt"
)

// FormatBytes returns a human-readable size (B, KiB, MiB, GiB, TiB, PiB).
func FormatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	suffixes := []string{"KiB", "MiB", "GiB", "TiB", "PiB", "EiB"}
	if exp >= len(suffixes) {
		exp = len(suffixes) - 1
		div = 1
		for i := 0; i <= exp; i++ {
			div *= unit
		}
	}
	return fmt.Sprintf("%.1f %s", float64(bytes)/float64(div), suffixes[exp])
}

// FormatDuration renders a clip duration in seconds as "m:ss.d" (e.g.
// "1:07.5"), or "unknown" for non-positive values.
func FormatDuration(seconds float64) string {
	if seconds <= 0 {
		return "unknown"
	}
	m := int(seconds) / 60
	s := seconds - float64(m*60)
	return fmt.Sprintf("%d:%04.1f", m, s)
}

// FormatResolution renders "WxH", or "unknown" when dimensions are absent.
func FormatResolution(w, h int) string {
	if w <= 0 || h <= 0 {
		return "unknown"
	}
	return fmt.Sprintf("%dx%d", w, h)
}
