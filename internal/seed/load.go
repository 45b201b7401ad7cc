package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/dshills/newestbench/internal/log"
	"github.com/dshills/newestbench/internal/model"
)

// rowsPerStatement keeps multi-row inserts under the SQL Server limits of
// 1000 rows and 2100 parameters per statement.
const rowsPerStatement = 500

const insertPartnerSQL = `INSERT INTO BusinessPartners (Id) VALUES (:Id)`

const insertOrderSQL = `INSERT INTO Orders (Id, BusinessPartnerId, CreatedOn) VALUES (:Id, :BusinessPartnerId, :CreatedOn)`

// Stats summarizes a load.
type Stats struct {
	Partners int
	Orders   int
	Elapsed  time.Duration
}

// Clear removes every order and partner.
func Clear(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range []string{"DELETE FROM Orders", "DELETE FROM BusinessPartners"} {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("%s: %w", stmt, err)
		}
	}
	return nil
}

// Load inserts ds, committing every batchSize rows. Partners are written
// before orders so foreign keys always resolve.
func Load(ctx context.Context, db *sqlx.DB, ds Dataset, batchSize int) (Stats, error) {
	if batchSize < 1 {
		return Stats{}, fmt.Errorf("batch size must be at least 1, got %d", batchSize)
	}
	start := time.Now()

	partners := ds.Partners
	for len(partners) > 0 {
		n := min(batchSize, len(partners))
		if err := inTx(ctx, db, func(tx *sqlx.Tx) error {
			return insertChunked(ctx, tx, insertPartnerSQL, partners[:n])
		}); err != nil {
			return Stats{}, fmt.Errorf("insert partners: %w", err)
		}
		partners = partners[n:]
	}

	orders := ds.Orders()
	for len(orders) > 0 {
		n := min(batchSize, len(orders))
		if err := inTx(ctx, db, func(tx *sqlx.Tx) error {
			return insertChunked(ctx, tx, insertOrderSQL, orders[:n])
		}); err != nil {
			return Stats{}, fmt.Errorf("insert orders: %w", err)
		}
		orders = orders[n:]
	}

	stats := Stats{Partners: len(ds.Partners), Orders: ds.OrderCount(), Elapsed: time.Since(start)}
	log.Info("dataset loaded",
		log.Int("partners", stats.Partners),
		log.Int("orders", stats.Orders),
		log.Duration("elapsed", stats.Elapsed),
	)
	return stats, nil
}

func insertChunked[T model.BusinessPartner | model.Order](ctx context.Context, tx *sqlx.Tx, query string, rows []T) error {
	for len(rows) > 0 {
		n := min(rowsPerStatement, len(rows))
		if _, err := tx.NamedExecContext(ctx, query, rows[:n]); err != nil {
			return err
		}
		rows = rows[n:]
	}
	return nil
}

func inTx(ctx context.Context, db *sqlx.DB, fn func(tx *sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Warn("rollback failed", log.Err(rbErr))
		}
		return err
	}
	return tx.Commit()
}
