package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/dshills/newestbench/internal/config"
	"github.com/dshills/newestbench/internal/log"
	"github.com/dshills/newestbench/internal/seed"
	"github.com/dshills/newestbench/internal/store"
)

func newSeedCmd(a *app, defaults *config.Config) *cobra.Command {
	var reset bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Generate and load business partners and orders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.seed(cmd.Context(), reset)
		},
	}

	fs := cmd.Flags()
	fs.Int("partners", defaults.Seed.Partners, "Number of business partners")
	fs.Int64("first-id", defaults.Seed.FirstPartnerID, "Id of the first partner")
	fs.Int("max-orders", defaults.Seed.MaxOrdersPerPartner, "Maximum orders per partner")
	fs.Int("empty-every", defaults.Seed.EmptyEvery, "Every Nth partner has no orders (0 disables)")
	fs.Int64("seed", defaults.Seed.Seed, "Random seed")
	fs.Int("batch-size", defaults.Seed.BatchSize, "Rows per transaction")
	fs.BoolVar(&reset, "reset", false, "Delete existing orders and partners first")
	return cmd
}

func (a *app) seed(ctx context.Context, reset bool) error {
	g, err := seed.NewGenerator(a.cfg.Seed)
	if err != nil {
		return err
	}

	s, err := store.Open(ctx, storeConfig(a.cfg), store.NopTracer{})
	if err != nil {
		return err
	}
	defer s.Close()

	if reset {
		if err := seed.Clear(ctx, s.DB()); err != nil {
			return err
		}
		a.logger.Info("existing data removed")
	}

	ds := g.Generate()
	stats, err := seed.Load(ctx, s.DB(), ds, a.cfg.Seed.BatchSize)
	if err != nil {
		return err
	}
	a.logger.Info("seed complete",
		log.Int("partners", stats.Partners),
		log.Int("orders", stats.Orders),
		log.Duration("elapsed", stats.Elapsed),
	)
	return nil
}
