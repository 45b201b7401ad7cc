package bench

import (
	"bytes"
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/newestbench/internal/errors"
	"github.com/dshills/newestbench/internal/log"
	"github.com/dshills/newestbench/internal/model"
	"github.com/dshills/newestbench/internal/strategy"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

// slowExecutor advances the clock by a per-strategy cost while executing.
type slowExecutor struct {
	clock *fakeClock
	cost  map[string]time.Duration
	rows  []model.Row
	fail  map[string]error
	calls []string
}

func (e *slowExecutor) Execute(_ context.Context, plan strategy.Plan) ([]model.Row, error) {
	e.calls = append(e.calls, plan.Strategy)
	e.clock.now = e.clock.now.Add(e.cost[plan.Strategy])
	if err := e.fail[plan.Strategy]; err != nil {
		return nil, err
	}
	return e.rows, nil
}

func newHarness(ex *slowExecutor) *Harness {
	return &Harness{
		Executor: ex,
		Dialect:  model.DialectSQLite,
		Range:    model.DefaultPartnerRange,
		Clock:    ex.clock.Now,
		Logger:   log.Discard(),
	}
}

func TestRunResetsBetweenStrategies(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	ex := &slowExecutor{
		clock: clock,
		cost: map[string]time.Duration{
			"function": 1500 * time.Millisecond,
			"window":   40 * time.Millisecond,
		},
		rows: []model.Row{{PartnerID: 270001, OrderID: 3}},
	}

	results, err := newHarness(ex).Run(context.Background(), strategy.All()...)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, []string{"function", "window"}, ex.calls)
	assert.Equal(t, "functionQuery", results[0].Label)
	assert.Equal(t, int64(1500), results[0].Milliseconds)
	assert.Equal(t, "windowQuery", results[1].Label)
	assert.Equal(t, int64(40), results[1].Milliseconds, "second reading must not include the first")
	assert.Equal(t, 40*time.Millisecond, results[1].Elapsed)

	for _, r := range results {
		assert.GreaterOrEqual(t, r.Milliseconds, int64(0))
		assert.Equal(t, 1, r.RowCount)
	}
}

func TestRunTruncatesToWholeMilliseconds(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	ex := &slowExecutor{
		clock: clock,
		cost:  map[string]time.Duration{"window": 999 * time.Microsecond},
	}

	results, err := newHarness(ex).Run(context.Background(), strategy.Window{})
	require.NoError(t, err)
	assert.Equal(t, int64(0), results[0].Milliseconds)
	assert.Empty(t, results[0].Rows)
}

func TestRunWithMonotonicClock(t *testing.T) {
	ex := &slowExecutor{clock: &fakeClock{}}
	h := &Harness{Executor: ex, Dialect: model.DialectSQLite, Range: model.DefaultPartnerRange, Logger: log.Discard()}

	results, err := h.Run(context.Background(), strategy.All()...)
	require.NoError(t, err)
	for _, r := range results {
		assert.GreaterOrEqual(t, r.Elapsed, time.Duration(0))
	}
}

func TestRunAbortsOnExecutionError(t *testing.T) {
	boom := stderrors.New("function missing")
	ex := &slowExecutor{
		clock: &fakeClock{},
		fail:  map[string]error{"function": boom},
	}

	results, err := newHarness(ex).Run(context.Background(), strategy.All()...)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "functionQuery")
	assert.Empty(t, results)
	assert.Equal(t, []string{"function"}, ex.calls, "window must not run after a failure")
}

func TestRunAbortsOnBuildError(t *testing.T) {
	ex := &slowExecutor{clock: &fakeClock{}}
	h := newHarness(ex)
	h.Range = model.PartnerRange{Lower: 10, Upper: 10}

	_, err := h.Run(context.Background(), strategy.All()...)
	require.Error(t, err)
	assert.Equal(t, errors.CategoryTranslation, errors.CategoryOf(err))
	assert.Empty(t, ex.calls)
}

func TestWriteReport(t *testing.T) {
	var buf bytes.Buffer
	err := WriteReport(&buf, []Result{
		{Label: "functionQuery", Milliseconds: 1234},
		{Label: "windowQuery", Milliseconds: 0},
	})
	require.NoError(t, err)
	assert.Equal(t, "______________________\nfunctionQuery: 1234ms\nwindowQuery: 0ms\n", buf.String())
}

func TestCompare(t *testing.T) {
	t.Run("Agree", func(t *testing.T) {
		rows := []model.Row{{PartnerID: 1, OrderID: 10}, {PartnerID: 2, OrderID: 20}}
		reversed := []model.Row{rows[1], rows[0]}
		assert.True(t, Compare(rows, reversed).Empty())
	})

	t.Run("Disagree", func(t *testing.T) {
		left := []model.Row{{PartnerID: 3, OrderID: 30}, {PartnerID: 1, OrderID: 10}, {PartnerID: 2, OrderID: 20}}
		right := []model.Row{{PartnerID: 2, OrderID: 21}, {PartnerID: 4, OrderID: 40}, {PartnerID: 1, OrderID: 10}}

		d := Compare(left, right)
		assert.False(t, d.Empty())
		assert.Equal(t, []model.Row{{PartnerID: 3, OrderID: 30}}, d.OnlyLeft)
		assert.Equal(t, []model.Row{{PartnerID: 4, OrderID: 40}}, d.OnlyRight)
		assert.Equal(t, []Mismatch{{PartnerID: 2, Left: 20, Right: 21}}, d.Mismatched)
		assert.Empty(t, d.Duplicates)
	})

	t.Run("Duplicates", func(t *testing.T) {
		left := []model.Row{{PartnerID: 1, OrderID: 10}, {PartnerID: 1, OrderID: 11}}
		d := Compare(left, []model.Row{{PartnerID: 1, OrderID: 11}})
		assert.Equal(t, []int64{1}, d.Duplicates)
		assert.False(t, d.Empty())
	})
}
