// Package store opens the relational store and executes strategy plans
// against it. Every statement goes through an injected Tracer.
package store

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"github.com/jmoiron/sqlx"

	// Register the database/sql drivers behind each dialect.
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
	_ "github.com/microsoft/go-mssqldb"
	_ "modernc.org/sqlite"

	"github.com/dshills/newestbench/internal/errors"
	"github.com/dshills/newestbench/internal/model"
	"github.com/dshills/newestbench/internal/strategy"
)

// Config identifies the store to connect to.
type Config struct {
	Driver       string // sqlserver, postgres, pgx or sqlite
	DSN          string
	MaxOpenConns int // 0 keeps the driver default
}

// Store is a ready-to-query handle on the relational store.
type Store struct {
	db      *sqlx.DB
	driver  string
	dialect model.Dialect
	tracer  Tracer
}

// Open connects to the store and verifies it answers. A nil tracer discards
// traces.
func Open(ctx context.Context, cfg Config, tracer Tracer) (*Store, error) {
	dialect, err := model.DialectForDriver(cfg.Driver)
	if err != nil {
		return nil, err
	}
	if tracer == nil {
		tracer = NopTracer{}
	}

	db, err := sqlx.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, errors.ConnectionError(cfg.Driver, err)
	}

	switch {
	case dialect == model.DialectSQLite:
		// In-memory databases live per connection and writers serialize anyway.
		db.SetMaxOpenConns(1)
	case cfg.MaxOpenConns > 0:
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, errors.ConnectionError(cfg.Driver, err)
	}

	return &Store{
		db:      db,
		driver:  cfg.Driver,
		dialect: dialect,
		tracer:  tracer,
	}, nil
}

// Close releases the handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB exposes the underlying handle for schema and seeding work.
func (s *Store) DB() *sqlx.DB {
	return s.db
}

// Driver returns the database/sql driver name.
func (s *Store) Driver() string {
	return s.driver
}

// Dialect returns the SQL flavour of the store.
func (s *Store) Dialect() model.Dialect {
	return s.dialect
}

// Execute runs plan and materializes every row into a finite slice.
func (s *Store) Execute(ctx context.Context, plan strategy.Plan) ([]model.Row, error) {
	rows := []model.Row{}
	if err := s.Select(ctx, &rows, plan); err != nil {
		return nil, err
	}
	return rows, nil
}

// Select runs plan and scans all rows into dest, a pointer to a slice.
func (s *Store) Select(ctx context.Context, dest any, plan strategy.Plan) error {
	if plan.Dialect != "" && plan.Dialect != s.dialect {
		return errors.UnsupportedDialectError(plan.Strategy, string(s.dialect)).
			WithDetailf("plan was built for %s", plan.Dialect)
	}

	stmt := Statement{Strategy: plan.Strategy, SQL: plan.SQL, Args: plan.Args}
	s.tracer.StatementStarted(ctx, stmt)

	start := time.Now()
	err := s.db.SelectContext(ctx, dest, plan.SQL, plan.Args...)
	out := Outcome{Rows: sliceLen(dest), Elapsed: time.Since(start), Err: err}
	s.tracer.StatementFinished(ctx, stmt, out)

	if err != nil {
		return classify(plan, err)
	}
	return nil
}

// NewestOrder calls fn_GetNewestOrders for one partner. ok is false when the
// partner has no orders.
func (s *Store) NewestOrder(ctx context.Context, partnerID int64) (result model.NewestOrderFunctionResult, ok bool, err error) {
	plan, err := strategy.NewestOrderPlan(s.dialect, partnerID)
	if err != nil {
		return result, false, err
	}

	var results []model.NewestOrderFunctionResult
	if err := s.Select(ctx, &results, plan); err != nil {
		return result, false, err
	}

	switch len(results) {
	case 0:
		return result, false, nil
	case 1:
		return results[0], true, nil
	default:
		return result, false, fmt.Errorf("%s returned %d rows for partner %d", strategy.FunctionName, len(results), partnerID)
	}
}

func sliceLen(dest any) int {
	v := reflect.ValueOf(dest)
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	if v.Kind() != reflect.Slice {
		return 0
	}
	return v.Len()
}
