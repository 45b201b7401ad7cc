package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/dshills/newestbench/internal/errors"
	"github.com/dshills/newestbench/internal/log"
)

// EnvPrefix prefixes environment overrides, e.g. NEWESTBENCH_STORE_DSN.
const EnvPrefix = "NEWESTBENCH"

// DefaultDSN targets a local SQL Server TestDb with integrated security.
const DefaultDSN = "Server=.;Database=TestDb;Integrated Security=true;TrustServerCertificate=true;"

// Config represents the complete benchmark configuration.
type Config struct {
	// Store connection
	Store StoreConfig `json:"store" mapstructure:"store"`

	// Partner id window, exclusive on both ends
	Range RangeConfig `json:"range" mapstructure:"range"`

	// Logging and statement tracing
	Log log.Config `json:"log" mapstructure:"log"`

	// Output options
	Report ReportConfig `json:"report" mapstructure:"report"`

	// Data generation for the seed command
	Seed SeedConfig `json:"seed" mapstructure:"seed"`
}

// StoreConfig represents store-specific configuration.
type StoreConfig struct {
	Driver       string `json:"driver" mapstructure:"driver"` // sqlserver, postgres, pgx, sqlite
	DSN          string `json:"dsn" mapstructure:"dsn"`
	MaxOpenConns int    `json:"max_open_conns" mapstructure:"max_open_conns"` // 0 means driver default
}

// RangeConfig bounds the partner ids considered by both strategies.
type RangeConfig struct {
	Lower int64 `json:"lower" mapstructure:"lower"`
	Upper int64 `json:"upper" mapstructure:"upper"`
}

// ReportConfig represents report-specific configuration.
type ReportConfig struct {
	MetricsFile string `json:"metrics_file" mapstructure:"metrics_file"` // Prometheus textfile output
	Verify      bool   `json:"verify" mapstructure:"verify"`             // compare both result sets
}

// DefaultConfig returns the built-in configuration: local SQL Server, partners
// 270000 to 280000.
func DefaultConfig() *Config {
	return &Config{
		Store: StoreConfig{
			Driver: "sqlserver",
			DSN:    DefaultDSN,
		},
		Range: RangeConfig{
			Lower: 270000,
			Upper: 280000,
		},
		Log:  log.DefaultConfig(),
		Seed: DefaultSeedConfig(),
	}
}

// flagKeys maps command-line flag names to configuration keys.
var flagKeys = map[string]string{
	"driver":       "store.driver",
	"dsn":          "store.dsn",
	"log-level":    "log.level",
	"log-format":   "log.format",
	"trace-sql":    "log.trace_sql",
	"lower":        "range.lower",
	"upper":        "range.upper",
	"metrics-file": "report.metrics_file",
	"verify":       "report.verify",
	"partners":     "seed.partners",
	"first-id":     "seed.first_partner_id",
	"max-orders":   "seed.max_orders_per_partner",
	"empty-every":  "seed.empty_every",
	"seed":         "seed.seed",
	"batch-size":   "seed.batch_size",
}

// Load builds the configuration from defaults, an optional config file
// (JSON, YAML or TOML), NEWESTBENCH_* environment variables and flags, in
// increasing order of precedence. Only flags that were set override.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v, DefaultConfig())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.InvalidConfigError("failed to read config file %s", path).WithCause(err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.InvalidConfigError("failed to parse configuration").WithCause(err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.InvalidConfigError("invalid configuration").WithCause(err)
	}

	return cfg, nil
}

// setDefaults registers every key so environment variables resolve during
// Unmarshal even when no config file is present.
func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("store.driver", d.Store.Driver)
	v.SetDefault("store.dsn", d.Store.DSN)
	v.SetDefault("store.max_open_conns", d.Store.MaxOpenConns)

	v.SetDefault("range.lower", d.Range.Lower)
	v.SetDefault("range.upper", d.Range.Upper)

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("log.trace_sql", d.Log.TraceSQL)

	v.SetDefault("report.metrics_file", d.Report.MetricsFile)
	v.SetDefault("report.verify", d.Report.Verify)

	v.SetDefault("seed.partners", d.Seed.Partners)
	v.SetDefault("seed.first_partner_id", d.Seed.FirstPartnerID)
	v.SetDefault("seed.first_order_id", d.Seed.FirstOrderID)
	v.SetDefault("seed.max_orders_per_partner", d.Seed.MaxOrdersPerPartner)
	v.SetDefault("seed.empty_every", d.Seed.EmptyEvery)
	v.SetDefault("seed.seed", d.Seed.Seed)
	v.SetDefault("seed.batch_size", d.Seed.BatchSize)
	v.SetDefault("seed.base_time", d.Seed.BaseTime)
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case "sqlserver", "postgres", "pgx", "sqlite":
		// Valid
	default:
		return fmt.Errorf("invalid store driver: %q", c.Store.Driver)
	}
	if strings.TrimSpace(c.Store.DSN) == "" {
		return fmt.Errorf("store dsn is required")
	}
	if c.Store.MaxOpenConns < 0 {
		return fmt.Errorf("max open connections cannot be negative")
	}

	if c.Range.Lower >= c.Range.Upper {
		return fmt.Errorf("range lower bound %d must be below upper bound %d", c.Range.Lower, c.Range.Upper)
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
		// Valid
	default:
		return fmt.Errorf("invalid log level: %s", c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
		// Valid
	default:
		return fmt.Errorf("invalid log format: %s", c.Log.Format)
	}

	if err := c.Seed.Validate(); err != nil {
		return fmt.Errorf("invalid seed configuration: %w", err)
	}

	return nil
}
