package main

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dshills/newestbench/internal/errors"
	"github.com/dshills/newestbench/internal/log"
	"github.com/dshills/newestbench/internal/schema"
)

func newMigrateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|down]",
		Short:     "Create or drop the tables and fn_GetNewestOrders",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"up", "down"},
		RunE: func(_ *cobra.Command, args []string) error {
			direction := "up"
			if len(args) == 1 {
				direction = args[0]
			}
			return a.migrate(direction)
		},
	}
}

func (a *app) migrate(direction string) error {
	start := time.Now()
	defer log.Latency(start, "migrate "+direction)

	// The migrator closes db when done.
	db, err := sql.Open(a.cfg.Store.Driver, a.cfg.Store.DSN)
	if err != nil {
		return errors.ConnectionError(a.cfg.Store.Driver, err)
	}

	switch direction {
	case "up":
		err = schema.Up(db, a.cfg.Store.Driver)
	case "down":
		err = schema.Down(db, a.cfg.Store.Driver)
	default:
		db.Close()
		return fmt.Errorf("unknown migration direction %q", direction)
	}
	if err != nil {
		return err
	}

	a.logger.Info("schema migrated",
		log.String("direction", direction),
		log.String("driver", a.cfg.Store.Driver),
	)
	return nil
}
