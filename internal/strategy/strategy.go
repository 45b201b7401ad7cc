// Package strategy renders the two "newest order per partner" query shapes
// into executable plans. Building a plan performs no I/O; the work happens
// when an Executor runs it.
package strategy

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/dshills/newestbench/internal/errors"
	"github.com/dshills/newestbench/internal/model"
)

// Strategy is one way of fetching the newest order of every partner in a
// range.
type Strategy interface {
	// Name identifies the strategy in logs, metrics and errors.
	Name() string
	// Label is printed in the timing report.
	Label() string
	// Build renders the query for a dialect without touching the store.
	Build(d model.Dialect, r model.PartnerRange) (Plan, error)
}

// Plan is a fully rendered statement ready to be executed.
type Plan struct {
	Strategy string
	Dialect  model.Dialect
	SQL      string
	Args     []any
}

// String renders the plan for diagnostics.
func (p Plan) String() string {
	return fmt.Sprintf("%s[%s] %s %v", p.Strategy, p.Dialect, p.SQL, p.Args)
}

// Executor materializes plans.
type Executor interface {
	Execute(ctx context.Context, plan Plan) ([]model.Row, error)
}

// Fetch builds and executes s in one step.
func Fetch(ctx context.Context, ex Executor, d model.Dialect, s Strategy, r model.PartnerRange) ([]model.Row, error) {
	plan, err := s.Build(d, r)
	if err != nil {
		return nil, err
	}
	return ex.Execute(ctx, plan)
}

// All returns both strategies in report order.
func All() []Strategy {
	return []Strategy{Function{}, Window{}}
}

// ByName looks a strategy up by Name or Label.
func ByName(name string) (Strategy, bool) {
	for _, s := range All() {
		if s.Name() == name || s.Label() == name {
			return s, true
		}
	}
	return nil, false
}

// bind rewrites ? placeholders into the dialect's bind variables.
func bind(d model.Dialect, query string) string {
	switch d {
	case model.DialectSQLServer:
		return sqlx.Rebind(sqlx.AT, query)
	case model.DialectPostgres:
		return sqlx.Rebind(sqlx.DOLLAR, query)
	default:
		return sqlx.Rebind(sqlx.QUESTION, query)
	}
}

// newPlan validates the range and renders the statement for d.
func newPlan(name string, d model.Dialect, r model.PartnerRange, query string) (Plan, error) {
	if err := r.Validate(); err != nil {
		if qErr := errors.AsError(err); qErr != nil {
			qErr.WithStrategy(name)
		}
		return Plan{}, err
	}
	return Plan{
		Strategy: name,
		Dialect:  d,
		SQL:      bind(d, query),
		Args:     []any{r.Lower, r.Upper},
	}, nil
}
