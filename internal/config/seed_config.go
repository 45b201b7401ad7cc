package config

import (
	"fmt"

	"github.com/dshills/newestbench/internal/util/timeutil"
)

// SeedConfig controls the synthetic data written by the seed command.
type SeedConfig struct {
	Partners            int    `json:"partners" mapstructure:"partners"`
	FirstPartnerID      int64  `json:"first_partner_id" mapstructure:"first_partner_id"`
	FirstOrderID        int64  `json:"first_order_id" mapstructure:"first_order_id"`
	MaxOrdersPerPartner int    `json:"max_orders_per_partner" mapstructure:"max_orders_per_partner"`
	EmptyEvery          int    `json:"empty_every" mapstructure:"empty_every"` // every Nth partner has no orders, 0 disables
	Seed                int64  `json:"seed" mapstructure:"seed"`
	BatchSize           int    `json:"batch_size" mapstructure:"batch_size"` // rows per transaction
	BaseTime            string `json:"base_time" mapstructure:"base_time"`   // timestamp of the oldest order
}

// DefaultSeedConfig covers the default partner range with a few ids of
// margin on each side.
func DefaultSeedConfig() SeedConfig {
	return SeedConfig{
		Partners:            10010,
		FirstPartnerID:      269995,
		FirstOrderID:        1,
		MaxOrdersPerPartner: 20,
		EmptyEvery:          10,
		Seed:                42,
		BatchSize:           1000,
		BaseTime:            "2020-01-01T00:00:00Z",
	}
}

// Validate checks the seed settings.
func (s SeedConfig) Validate() error {
	if s.Partners < 0 {
		return fmt.Errorf("partners cannot be negative")
	}
	if s.FirstPartnerID < 1 || s.FirstOrderID < 1 {
		return fmt.Errorf("ids must start at 1 or above")
	}
	if s.MaxOrdersPerPartner < 0 {
		return fmt.Errorf("max orders per partner cannot be negative")
	}
	if s.EmptyEvery < 0 {
		return fmt.Errorf("empty every cannot be negative")
	}
	if s.BatchSize < 1 {
		return fmt.Errorf("batch size must be at least 1")
	}
	if _, err := timeutil.ParseTimestamp(s.BaseTime); err != nil {
		return fmt.Errorf("invalid base time: %w", err)
	}
	return nil
}
