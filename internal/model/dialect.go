package model

import "github.com/dshills/newestbench/internal/errors"

// Dialect is the SQL flavour spoken by a store.
type Dialect string

const (
	DialectSQLServer Dialect = "sqlserver"
	DialectPostgres  Dialect = "postgres"
	DialectSQLite    Dialect = "sqlite"
)

// driverDialects maps database/sql driver names to dialects.
var driverDialects = map[string]Dialect{
	"sqlserver": DialectSQLServer,
	"postgres":  DialectPostgres,
	"pgx":       DialectPostgres,
	"sqlite":    DialectSQLite,
}

// DialectForDriver resolves the dialect of a registered driver name.
func DialectForDriver(driver string) (Dialect, error) {
	d, ok := driverDialects[driver]
	if !ok {
		return "", errors.UnknownDriverError(driver)
	}
	return d, nil
}

// Drivers lists the supported driver names.
func Drivers() []string {
	return []string{"sqlserver", "postgres", "pgx", "sqlite"}
}
