package main

import (
	"context"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/dshills/newestbench/internal/bench"
	"github.com/dshills/newestbench/internal/config"
	"github.com/dshills/newestbench/internal/log"
	"github.com/dshills/newestbench/internal/metrics"
	"github.com/dshills/newestbench/internal/model"
	"github.com/dshills/newestbench/internal/store"
	"github.com/dshills/newestbench/internal/strategy"
)

func addRunFlags(fs *pflag.FlagSet, defaults *config.Config) {
	fs.Int64("lower", defaults.Range.Lower, "Exclusive lower bound of partner ids")
	fs.Int64("upper", defaults.Range.Upper, "Exclusive upper bound of partner ids")
	fs.String("metrics-file", defaults.Report.MetricsFile, "Write Prometheus textfile metrics to this path")
	fs.Bool("verify", defaults.Report.Verify, "Compare the result sets of both strategies")
}

func newRunCmd(a *app, defaults *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Time both strategies and print the report (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runBenchmark(cmd.Context())
		},
	}
	addRunFlags(cmd.Flags(), defaults)
	return cmd
}

// runBenchmark measures both strategies, releases the store and only then
// reports.
func (a *app) runBenchmark(ctx context.Context) error {
	runID := uuid.NewString()
	ctx = log.ContextWithRunID(ctx, runID)
	logger := a.logger.WithContext(ctx).With(log.String("driver", a.cfg.Store.Driver))

	results, err := a.measure(ctx, logger)
	if err != nil {
		return err
	}

	if err := bench.WriteReport(a.out, results); err != nil {
		return err
	}

	if a.cfg.Report.Verify {
		verify(logger, results)
	}

	if path := a.cfg.Report.MetricsFile; path != "" {
		rec := metrics.New()
		rec.SetRun(runID, a.cfg.Store.Driver)
		rec.Observe(results)
		if err := rec.WriteTextfile(path); err != nil {
			return err
		}
		logger.Debug("metrics written", log.String("path", path))
	}
	return nil
}

func (a *app) measure(ctx context.Context, logger log.Logger) ([]bench.Result, error) {
	tracer := store.NewLogTracer(a.logger, a.cfg.Log.TraceSQL)
	s, err := store.Open(ctx, storeConfig(a.cfg), tracer)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := s.Close(); err != nil {
			logger.Warn("failed to close store", log.Err(err))
		}
	}()

	h := &bench.Harness{
		Executor: s,
		Dialect:  s.Dialect(),
		Range:    model.PartnerRange{Lower: a.cfg.Range.Lower, Upper: a.cfg.Range.Upper},
		Logger:   logger,
	}
	return h.Run(ctx, strategy.All()...)
}

// verify logs where the two strategies disagree. It never fails the run.
func verify(logger log.Logger, results []bench.Result) {
	if len(results) != 2 {
		return
	}
	d := bench.Compare(results[0].Rows, results[1].Rows)
	if d.Empty() {
		logger.Info("strategies agree", log.Int("rows", results[0].RowCount))
		return
	}
	logger.Warn("strategies disagree",
		log.Int("only_"+results[0].Strategy, len(d.OnlyLeft)),
		log.Int("only_"+results[1].Strategy, len(d.OnlyRight)),
		log.Int("mismatched", len(d.Mismatched)),
		log.Any("duplicates", d.Duplicates),
	)
	for _, m := range d.Mismatched {
		logger.Debug("order mismatch",
			log.Int64("partner_id", m.PartnerID),
			log.Int64(results[0].Strategy, m.Left),
			log.Int64(results[1].Strategy, m.Right),
		)
	}
}

func storeConfig(cfg *config.Config) store.Config {
	return store.Config{
		Driver:       cfg.Store.Driver,
		DSN:          cfg.Store.DSN,
		MaxOpenConns: cfg.Store.MaxOpenConns,
	}
}
