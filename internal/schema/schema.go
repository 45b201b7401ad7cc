// Package schema creates the BusinessPartners and Orders tables and the
// fn_GetNewestOrders function for every supported dialect. Migrations are
// embedded and applied with golang-migrate.
package schema

import (
	"database/sql"
	"embed"
	stderrors "errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/database/sqlserver"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/dshills/newestbench/internal/errors"
	"github.com/dshills/newestbench/internal/log"
	"github.com/dshills/newestbench/internal/model"
)

//go:embed migrations
var migrations embed.FS

// Latest is the version reached after every migration has been applied.
const Latest uint = 2

// Up applies all pending migrations. The migrator takes ownership of db and
// closes it before returning.
func Up(db *sql.DB, driver string) error {
	m, err := newMigrator(db, driver)
	if err != nil {
		return err
	}
	defer closeMigrator(m)

	if err := m.Up(); err != nil && !stderrors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate up: %w", err)
	}
	return nil
}

// Down reverts every migration. Like Up it closes db.
func Down(db *sql.DB, driver string) error {
	m, err := newMigrator(db, driver)
	if err != nil {
		return err
	}
	defer closeMigrator(m)

	if err := m.Down(); err != nil && !stderrors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate down: %w", err)
	}
	return nil
}

// Version reports the applied version. ok is false on an empty database.
// db is closed before returning.
func Version(db *sql.DB, driver string) (version uint, ok bool, err error) {
	m, err := newMigrator(db, driver)
	if err != nil {
		return 0, false, err
	}
	defer closeMigrator(m)

	version, dirty, err := m.Version()
	switch {
	case stderrors.Is(err, migrate.ErrNilVersion):
		return 0, false, nil
	case err != nil:
		return 0, false, fmt.Errorf("migrate version: %w", err)
	case dirty:
		return version, true, fmt.Errorf("schema version %d is dirty", version)
	}
	return version, true, nil
}

func newMigrator(db *sql.DB, driver string) (*migrate.Migrate, error) {
	dialect, err := model.DialectForDriver(driver)
	if err != nil {
		db.Close()
		return nil, err
	}

	src, err := iofs.New(migrations, "migrations/"+string(dialect))
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("load %s migrations: %w", dialect, err)
	}

	target, err := databaseDriver(db, dialect)
	if err != nil {
		src.Close()
		db.Close()
		return nil, errors.ConnectionError(driver, err)
	}

	m, err := migrate.NewWithInstance("iofs", src, string(dialect), target)
	if err != nil {
		return nil, fmt.Errorf("create migrator: %w", err)
	}
	return m, nil
}

func databaseDriver(db *sql.DB, dialect model.Dialect) (database.Driver, error) {
	switch dialect {
	case model.DialectSQLServer:
		return sqlserver.WithInstance(db, &sqlserver.Config{})
	case model.DialectPostgres:
		return postgres.WithInstance(db, &postgres.Config{})
	case model.DialectSQLite:
		return sqlite.WithInstance(db, &sqlite.Config{})
	default:
		return nil, fmt.Errorf("no migration driver for %s", dialect)
	}
}

func closeMigrator(m *migrate.Migrate) {
	srcErr, dbErr := m.Close()
	if srcErr != nil {
		log.Warn("failed to close migration source", log.Err(srcErr))
	}
	if dbErr != nil {
		log.Warn("failed to close migration database", log.Err(dbErr))
	}
}
