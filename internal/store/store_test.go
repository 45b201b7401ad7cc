package store_test

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/newestbench/internal/errors"
	"github.com/dshills/newestbench/internal/log"
	"github.com/dshills/newestbench/internal/model"
	"github.com/dshills/newestbench/internal/seed"
	"github.com/dshills/newestbench/internal/store"
	"github.com/dshills/newestbench/internal/store/storetest"
	"github.com/dshills/newestbench/internal/strategy"
)

type recordingTracer struct {
	started  []store.Statement
	finished []store.Outcome
}

func (r *recordingTracer) StatementStarted(_ context.Context, stmt store.Statement) {
	r.started = append(r.started, stmt)
}

func (r *recordingTracer) StatementFinished(_ context.Context, _ store.Statement, out store.Outcome) {
	r.finished = append(r.finished, out)
}

func TestExecuteBothStrategies(t *testing.T) {
	ds := seed.Scenario()
	s := storetest.Open(t, ds, nil)
	want := ds.Expected(model.DefaultPartnerRange)

	for _, st := range strategy.All() {
		t.Run(st.Label(), func(t *testing.T) {
			rows, err := strategy.Fetch(context.Background(), s, s.Dialect(), st, model.DefaultPartnerRange)
			require.NoError(t, err)
			assert.ElementsMatch(t, want, rows)
		})
	}
}

func TestExecuteEmptyResult(t *testing.T) {
	s := storetest.Open(t, seed.Scenario(), nil)

	plan, err := strategy.Window{}.Build(s.Dialect(), model.PartnerRange{Lower: 1, Upper: 2})
	require.NoError(t, err)

	rows, err := s.Execute(context.Background(), plan)
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestTracerSeesEveryStatement(t *testing.T) {
	tracer := &recordingTracer{}
	s := storetest.Open(t, seed.Scenario(), tracer)

	plan, err := strategy.Function{}.Build(s.Dialect(), model.DefaultPartnerRange)
	require.NoError(t, err)
	_, err = s.Execute(context.Background(), plan)
	require.NoError(t, err)

	require.Len(t, tracer.started, 1)
	require.Len(t, tracer.finished, 1)
	assert.Equal(t, plan.SQL, tracer.started[0].SQL)
	assert.Equal(t, "function", tracer.started[0].Strategy)
	assert.Equal(t, 2, tracer.finished[0].Rows)
	assert.NoError(t, tracer.finished[0].Err)
}

func TestLogTracer(t *testing.T) {
	var buf bytes.Buffer
	tracer := store.NewLogTracer(log.NewTextLogger(&buf, slog.LevelInfo), true)
	s := storetest.Open(t, seed.Scenario(), tracer)

	plan, err := strategy.Window{}.Build(s.Dialect(), model.DefaultPartnerRange)
	require.NoError(t, err)
	_, err = s.Execute(log.ContextWithRunID(context.Background(), "r1"), plan)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	for _, line := range lines {
		assert.Contains(t, line, "run_id=r1")
	}
	assert.Contains(t, lines[0], "executing statement")
	assert.Contains(t, lines[0], "ROW_NUMBER")
	assert.Contains(t, lines[1], "executed statement")
	assert.Contains(t, lines[1], "rows=2")
}

func TestLogTracerQuietAtInfo(t *testing.T) {
	var buf bytes.Buffer
	tracer := store.NewLogTracer(log.NewTextLogger(&buf, slog.LevelInfo), false)
	s := storetest.Open(t, seed.Scenario(), tracer)

	plan, err := strategy.Window{}.Build(s.Dialect(), model.DefaultPartnerRange)
	require.NoError(t, err)
	_, err = s.Execute(context.Background(), plan)
	require.NoError(t, err)
	assert.Empty(t, buf.String(), "traces go to debug unless verbose")
}

func TestNewestOrder(t *testing.T) {
	s := storetest.Open(t, seed.Scenario(), nil)
	ctx := context.Background()

	res, ok, err := s.NewestOrder(ctx, 270001)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(3), res.ID)
	assert.True(t, res.CreatedOn.Equal(seed.At(2024, 3, 1, 0)))

	res, ok, err = s.NewestOrder(ctx, 270003)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(5), res.ID)

	_, ok, err = s.NewestOrder(ctx, 270002)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMissingFunction(t *testing.T) {
	s := storetest.Open(t, seed.Scenario(), nil)
	_, err := s.DB().Exec("DROP VIEW fn_GetNewestOrders")
	require.NoError(t, err)

	plan, err := strategy.Function{}.Build(s.Dialect(), model.DefaultPartnerRange)
	require.NoError(t, err)

	_, err = s.Execute(context.Background(), plan)
	require.Error(t, err)
	qErr := errors.AsError(err)
	require.NotNil(t, qErr)
	assert.Equal(t, errors.CategoryExecution, qErr.Category)
	assert.Equal(t, errors.UndefinedTable, qErr.Code)
	assert.Equal(t, "function", qErr.Strategy)
	assert.Equal(t, plan.SQL, qErr.Query)
}

func TestCanceledContext(t *testing.T) {
	s := storetest.Open(t, seed.Scenario(), nil)
	plan, err := strategy.Window{}.Build(s.Dialect(), model.DefaultPartnerRange)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = s.Execute(ctx, plan)
	require.Error(t, err)
	assert.True(t, errors.IsError(err, errors.QueryCanceled))
}

func TestDialectMismatch(t *testing.T) {
	s := storetest.Open(t, seed.Scenario(), nil)
	plan, err := strategy.Window{}.Build(model.DialectPostgres, model.DefaultPartnerRange)
	require.NoError(t, err)

	_, err = s.Execute(context.Background(), plan)
	require.Error(t, err)
	assert.Equal(t, errors.CategoryTranslation, errors.CategoryOf(err))
}

func TestOpenFailures(t *testing.T) {
	_, err := store.Open(context.Background(), store.Config{Driver: "oracle"}, nil)
	require.Error(t, err)
	assert.Equal(t, errors.CategoryConnection, errors.CategoryOf(err))

	_, err = store.Open(context.Background(), store.Config{
		Driver: "sqlite",
		DSN:    "file:/nonexistent-dir/newestbench.db?mode=ro",
	}, nil)
	require.Error(t, err)
	assert.Equal(t, errors.CategoryConnection, errors.CategoryOf(err))
}

func TestAccessors(t *testing.T) {
	s := storetest.Open(t, seed.Scenario(), nil)
	assert.Equal(t, "sqlite", s.Driver())
	assert.Equal(t, model.DialectSQLite, s.Dialect())
	assert.NotNil(t, s.DB())
}
