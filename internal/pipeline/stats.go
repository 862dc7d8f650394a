package pipeline

import (
	"github.com/sirupsen/logrus"

	"github.com/egoengine/clipmill/internal/display"
)

// RunStats tracks aggregate counters and byte totals across a batch run.
type RunStats struct {
	Total            int
	Current          int
	Processed        int
	Skipped          int
	Failed           int
	TotalInputBytes  int64
	TotalOutputBytes int64
}

// LogSummary prints the end-of-batch report. Batch jobs always emit this,
// even after an interrupt.
func (s *RunStats) LogSummary(log *logrus.Logger) {
	log.Info("==============================")
	log.Infof("Done: %d processed, %d skipped, %d failed", s.Processed, s.Skipped, s.Failed)
	if s.TotalInputBytes > 0 {
		log.Infof("  Bytes: in %s -> out %s",
			display.FormatBytes(s.TotalInputBytes),
			display.FormatBytes(s.TotalOutputBytes))
	}
}
