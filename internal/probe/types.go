package probe

// Result holds the video stream properties of one asset. Zero values mean
// "unknown": a file with no parseable duration probes successfully with
// Duration == 0 rather than returning an error.
type Result struct {
	Path       string
	Width      int
	Height     int
	Duration   float64 // seconds; 0 when the container reports none
	FrameRate  float64 // average fps; 0 when unknown
	FrameCount int64   // 0 when the container does not carry nb_frames
}

// HasDimensions reports whether the probed stream carries usable dimensions.
// Sources failing this are treated as unreadable and skipped by batch jobs.
func (r *Result) HasDimensions() bool {
	return r.Width > 0 && r.Height > 0
}

// FrameRateOr returns the average frame rate, or fallback when unknown.
func (r *Result) FrameRateOr(fallback float64) float64 {
	if r.FrameRate > 0 {
		return r.FrameRate
	}
	return fallback
}
