package store

import (
	"context"
	"database/sql/driver"
	stderrors "errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	mssql "github.com/microsoft/go-mssqldb"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/dshills/newestbench/internal/errors"
	"github.com/dshills/newestbench/internal/strategy"
)

// SQL Server error numbers with a SQLSTATE equivalent.
var mssqlCodes = map[int32]string{
	208:   errors.UndefinedTable,    // Invalid object name
	2812:  errors.UndefinedFunction, // Could not find stored procedure
	4121:  errors.UndefinedFunction, // Cannot find column or user-defined function
	102:   errors.SyntaxErrorOrAccessRuleViolation,
	4060:  errors.SQLClientUnableToEstablishConnection, // Cannot open database
	18456: errors.SQLClientUnableToEstablishConnection, // Login failed
}

// classify turns a driver error raised while executing plan into an
// execution Error carrying the store's code when one is available.
func classify(plan strategy.Plan, err error) error {
	code, detail := storeCode(err)
	qErr := errors.ExecutionError(plan.Strategy, plan.SQL, code, err)
	if detail != "" {
		qErr.WithDetail(detail)
	}
	return qErr
}

// storeCode extracts a SQLSTATE code and detail from driver errors.
func storeCode(err error) (code, detail string) {
	var pqErr *pq.Error
	if stderrors.As(err, &pqErr) {
		return string(pqErr.Code), pqErr.Detail
	}

	var pgErr *pgconn.PgError
	if stderrors.As(err, &pgErr) {
		return pgErr.Code, pgErr.Detail
	}

	var msErr mssql.Error
	if stderrors.As(err, &msErr) {
		return mssqlCodes[msErr.Number], msErr.Message
	}

	var liteErr *sqlite.Error
	if stderrors.As(err, &liteErr) {
		return sqliteCode(liteErr), ""
	}

	switch {
	case stderrors.Is(err, context.Canceled), stderrors.Is(err, context.DeadlineExceeded):
		return errors.QueryCanceled, ""
	case stderrors.Is(err, driver.ErrBadConn):
		return errors.ConnectionFailure, ""
	}
	return "", ""
}

func sqliteCode(err *sqlite.Error) string {
	switch err.Code() & 0xff {
	case sqlite3.SQLITE_CANTOPEN, sqlite3.SQLITE_NOTADB:
		return errors.ConnectionFailure
	case sqlite3.SQLITE_INTERRUPT:
		return errors.QueryCanceled
	case sqlite3.SQLITE_ERROR:
		msg := err.Error()
		switch {
		case strings.Contains(msg, "no such table"):
			return errors.UndefinedTable
		case strings.Contains(msg, "no such function"):
			return errors.UndefinedFunction
		case strings.Contains(msg, "syntax error"):
			return errors.SyntaxErrorOrAccessRuleViolation
		}
	}
	return ""
}
