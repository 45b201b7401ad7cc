package store

import (
	"context"
	"log/slog"
	"time"

	"github.com/dshills/newestbench/internal/log"
)

// Statement is a statement about to be sent to the store.
type Statement struct {
	Strategy string
	SQL      string
	Args     []any
}

// Outcome describes how a traced statement finished.
type Outcome struct {
	Rows    int
	Elapsed time.Duration
	Err     error
}

// Tracer receives every statement the store issues.
type Tracer interface {
	StatementStarted(ctx context.Context, stmt Statement)
	StatementFinished(ctx context.Context, stmt Statement, out Outcome)
}

// NopTracer discards traces.
type NopTracer struct{}

func (NopTracer) StatementStarted(context.Context, Statement)           {}
func (NopTracer) StatementFinished(context.Context, Statement, Outcome) {}

// LogTracer writes two log lines per statement: the SQL text before it runs
// and the row count and latency afterwards.
type LogTracer struct {
	Logger log.Logger
	Level  slog.Level // slog.LevelInfo or slog.LevelDebug
}

// NewLogTracer traces at info level when verbose, debug otherwise.
func NewLogTracer(logger log.Logger, verbose bool) *LogTracer {
	level := slog.LevelDebug
	if verbose {
		level = slog.LevelInfo
	}
	return &LogTracer{Logger: logger, Level: level}
}

func (t *LogTracer) log(ctx context.Context, msg string, args ...any) {
	logger := t.Logger.WithContext(ctx)
	if t.Level >= slog.LevelInfo {
		logger.Info(msg, args...)
		return
	}
	logger.Debug(msg, args...)
}

func (t *LogTracer) StatementStarted(ctx context.Context, stmt Statement) {
	t.log(ctx, "executing statement",
		log.String("strategy", stmt.Strategy),
		log.String("sql", stmt.SQL),
		log.Any("args", stmt.Args),
	)
}

func (t *LogTracer) StatementFinished(ctx context.Context, stmt Statement, out Outcome) {
	if out.Err != nil {
		t.Logger.WithContext(ctx).Error("statement failed",
			log.String("strategy", stmt.Strategy),
			log.Duration("elapsed", out.Elapsed),
			log.Err(out.Err),
		)
		return
	}
	t.log(ctx, "executed statement",
		log.String("strategy", stmt.Strategy),
		log.Int("rows", out.Rows),
		log.Duration("elapsed", out.Elapsed),
	)
}
