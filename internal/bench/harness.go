// Package bench times the newest-order strategies against a store and
// reports the readings.
package bench

import (
	"context"
	"fmt"
	"time"

	"github.com/dshills/newestbench/internal/log"
	"github.com/dshills/newestbench/internal/model"
	"github.com/dshills/newestbench/internal/strategy"
	"github.com/dshills/newestbench/internal/util/timeutil"
)

// Result holds the measurement of a single strategy.
type Result struct {
	Strategy     string
	Label        string
	Elapsed      time.Duration
	Milliseconds int64
	RowCount     int
	Rows         []model.Row
}

// Harness runs strategies one after another against an executor.
type Harness struct {
	Executor strategy.Executor
	Dialect  model.Dialect
	Range    model.PartnerRange
	// Clock overrides the stopwatch time source; nil uses the monotonic
	// clock.
	Clock func() time.Time
	// Logger receives per-strategy progress; nil uses the default logger.
	Logger log.Logger
}

// Run measures each strategy in order. Plans are built before the stopwatch
// starts, so only execution and materialization are timed. The stopwatch is
// reset before every strategy. The first error aborts the run.
func (h *Harness) Run(ctx context.Context, strategies ...strategy.Strategy) ([]Result, error) {
	logger := h.Logger
	if logger == nil {
		logger = log.Default()
	}

	sw := &timeutil.Stopwatch{Clock: h.Clock}
	results := make([]Result, 0, len(strategies))

	for _, s := range strategies {
		plan, err := s.Build(h.Dialect, h.Range)
		if err != nil {
			return results, err
		}

		sw.Reset()
		sw.Start()
		rows, err := h.Executor.Execute(ctx, plan)
		sw.Stop()
		if err != nil {
			return results, fmt.Errorf("%s: %w", s.Label(), err)
		}

		r := Result{
			Strategy:     s.Name(),
			Label:        s.Label(),
			Elapsed:      sw.Elapsed(),
			Milliseconds: sw.ElapsedMilliseconds(),
			RowCount:     len(rows),
			Rows:         rows,
		}
		logger.Debug("strategy measured",
			log.String("strategy", r.Strategy),
			log.Int("rows", r.RowCount),
			log.Duration("elapsed", r.Elapsed),
		)
		results = append(results, r)
	}
	return results, nil
}
