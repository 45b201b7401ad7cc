package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/dshills/newestbench/internal/config"
	"github.com/dshills/newestbench/internal/log"
	"github.com/dshills/newestbench/internal/model"
)

// app is the state shared by every subcommand once configuration is loaded.
type app struct {
	out        io.Writer
	configFile string
	cfg        *config.Config
	logger     log.Logger
}

func newRootCmd(out io.Writer) *cobra.Command {
	a := &app{out: out}
	defaults := config.DefaultConfig()

	root := &cobra.Command{
		Use:           "newestbench",
		Short:         "Compare function and window strategies for newest order per partner",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd.Flags())
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runBenchmark(cmd.Context())
		},
	}
	root.SetOut(out)

	pf := root.PersistentFlags()
	pf.StringVar(&a.configFile, "config", "", "Path to configuration file (JSON, YAML or TOML)")
	pf.String("driver", defaults.Store.Driver, fmt.Sprintf("Store driver %v", model.Drivers()))
	pf.String("dsn", defaults.Store.DSN, "Store connection string")
	pf.String("log-level", defaults.Log.Level, "Log level (debug, info, warn, error)")
	pf.String("log-format", defaults.Log.Format, "Log format (text, json)")
	pf.Bool("trace-sql", defaults.Log.TraceSQL, "Log every statement at info level")

	addRunFlags(root.Flags(), defaults)

	root.AddCommand(
		newRunCmd(a, defaults),
		newMigrateCmd(a),
		newSeedCmd(a, defaults),
		newVersionCmd(),
	)
	return root
}

func (a *app) load(flags *pflag.FlagSet) error {
	cfg, err := config.Load(a.configFile, flags)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = log.Configure(cfg.Log, a.out)
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		// Skip configuration loading.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "newestbench v%s (commit: %s)\n", version, commit)
		},
	}
}
