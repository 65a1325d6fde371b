package pipeline

import (
	"time"

	"go.uber.org/zap"
)

// RunStats aggregates batch results.
type RunStats struct {
	Total   int
	Passed  int
	Failed  int
	Started time.Time
	Elapsed time.Duration
}

// LogSummary prints the end-of-batch report.
func (s RunStats) LogSummary(log *zap.SugaredLogger) {
	unprocessed := s.Total - s.Passed - s.Failed
	log.Infof("batch done in %s: %d passed, %d failed, %d untouched of %d",
		s.Elapsed.Round(time.Second), s.Passed, s.Failed, unprocessed, s.Total)
	if s.Failed > 0 {
		log.Warnf("%d item(s) failed, check the log above for stage errors", s.Failed)
	}
}
