// Package pipeline runs the per-item stage sequence over a batch, either
// sequentially or with a bounded worker pool.
package pipeline

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/stagehand/setcutter/internal/config"
	"github.com/stagehand/setcutter/internal/ffmpeg"
	"github.com/stagehand/setcutter/internal/manifest"
	"github.com/stagehand/setcutter/internal/probe"
)

// ProbeFunc matches probe.Probe. Injectable for tests.
type ProbeFunc func(ctx context.Context, path string) (*probe.Result, error)

// Runner holds everything the stage sequence needs.
type Runner struct {
	Cfg   *config.Config
	Log   *zap.SugaredLogger
	Exec  ffmpeg.Executor
	Probe ProbeFunc
}

// NewRunner wires the real executor and prober.
func NewRunner(cfg *config.Config, log *zap.SugaredLogger) *Runner {
	return &Runner{Cfg: cfg, Log: log, Exec: ffmpeg.Exec{}, Probe: probe.Probe}
}

// Run processes every video and returns aggregate stats plus the batch exit
// code. Sequential mode stops at the first failure. Concurrent mode runs all
// items to completion; the code of the most recently finished failing item
// wins, and a later success never clears an earlier failure.
func (r *Runner) Run(ctx context.Context, videos []*manifest.Video) (RunStats, int) {
	stats := RunStats{Total: len(videos), Started: time.Now()}

	if r.Cfg.Sequential {
		code := 0
		for _, v := range videos {
			if ctx.Err() != nil {
				r.Log.Warnf("interrupted, %d of %d items left unprocessed",
					stats.Total-stats.Passed-stats.Failed, stats.Total)
				break
			}
			if c := r.runItem(ctx, v); c != 0 {
				stats.Failed++
				code = c
				break
			}
			stats.Passed++
		}
		stats.Elapsed = time.Since(stats.Started)
		return stats, code
	}

	results := make(chan int, len(videos))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.Cfg.Workers)
	for _, v := range videos {
		v := v
		g.Go(func() error {
			if gctx.Err() != nil {
				results <- -1
				return nil
			}
			results <- r.runItem(gctx, v)
			return nil
		})
	}
	_ = g.Wait() // workers never return errors, item codes travel on the channel
	close(results)

	code := 0
	for c := range results {
		switch {
		case c < 0:
			// skipped by cancellation, counts as neither
		case c == 0:
			stats.Passed++
		default:
			stats.Failed++
			code = c
		}
	}
	stats.Elapsed = time.Since(stats.Started)
	return stats, code
}
