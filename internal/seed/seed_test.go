package seed_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/newestbench/internal/config"
	"github.com/dshills/newestbench/internal/model"
	"github.com/dshills/newestbench/internal/seed"
	"github.com/dshills/newestbench/internal/store/storetest"
)

func smallConfig() config.SeedConfig {
	cfg := config.DefaultSeedConfig()
	cfg.Partners = 50
	cfg.FirstPartnerID = 270000
	cfg.MaxOrdersPerPartner = 5
	cfg.EmptyEvery = 5
	return cfg
}

func TestGeneratorIsDeterministic(t *testing.T) {
	g1, err := seed.NewGenerator(smallConfig())
	require.NoError(t, err)
	g2, err := seed.NewGenerator(smallConfig())
	require.NoError(t, err)

	assert.Equal(t, g1.Generate(), g2.Generate())
}

func TestGeneratorShape(t *testing.T) {
	cfg := smallConfig()
	g, err := seed.NewGenerator(cfg)
	require.NoError(t, err)
	ds := g.Generate()

	require.Len(t, ds.Partners, cfg.Partners)
	base, _ := time.Parse(time.RFC3339, cfg.BaseTime)

	seen := map[int64]bool{}
	for i, p := range ds.Partners {
		assert.Equal(t, cfg.FirstPartnerID+int64(i), p.ID)
		if (i+1)%cfg.EmptyEvery == 0 {
			assert.Empty(t, p.Orders, "partner %d should be empty", p.ID)
		} else {
			assert.NotEmpty(t, p.Orders)
			assert.LessOrEqual(t, len(p.Orders), cfg.MaxOrdersPerPartner)
		}
		for _, o := range p.Orders {
			assert.Equal(t, p.ID, o.BusinessPartnerID)
			assert.False(t, o.CreatedOn.Before(base))
			assert.False(t, seen[o.ID], "order id %d reused", o.ID)
			seen[o.ID] = true
		}
	}
	assert.Len(t, ds.Orders(), ds.OrderCount())
}

func TestNewGeneratorRejectsInvalidConfig(t *testing.T) {
	cfg := smallConfig()
	cfg.BatchSize = 0
	_, err := seed.NewGenerator(cfg)
	assert.Error(t, err)
}

func TestScenarioExpected(t *testing.T) {
	rows := seed.Scenario().Expected(model.DefaultPartnerRange)
	assert.Equal(t, []model.Row{
		{PartnerID: 270001, OrderID: 3},
		{PartnerID: 270003, OrderID: 5},
	}, rows)

	assert.Empty(t, seed.Scenario().Expected(model.PartnerRange{Lower: 270001, Upper: 270002}))
}

func TestLoad(t *testing.T) {
	ctx := context.Background()
	s := storetest.OpenDSN(t, storetest.Migrated(t), nil)

	g, err := seed.NewGenerator(smallConfig())
	require.NoError(t, err)
	ds := g.Generate()

	stats, err := seed.Load(ctx, s.DB(), ds, 7)
	require.NoError(t, err)
	assert.Equal(t, len(ds.Partners), stats.Partners)
	assert.Equal(t, ds.OrderCount(), stats.Orders)

	var partners, orders int
	require.NoError(t, s.DB().GetContext(ctx, &partners, "SELECT COUNT(*) FROM BusinessPartners"))
	require.NoError(t, s.DB().GetContext(ctx, &orders, "SELECT COUNT(*) FROM Orders"))
	assert.Equal(t, stats.Partners, partners)
	assert.Equal(t, stats.Orders, orders)

	var stored []model.Order
	require.NoError(t, s.DB().SelectContext(ctx, &stored,
		"SELECT Id, BusinessPartnerId, CreatedOn FROM Orders ORDER BY Id"))
	require.Len(t, stored, ds.OrderCount())
	want := ds.Orders()
	for i := range want {
		assert.Equal(t, want[i].ID, stored[i].ID)
		assert.True(t, want[i].CreatedOn.Equal(stored[i].CreatedOn), "order %d timestamp", want[i].ID)
	}

	require.NoError(t, seed.Clear(ctx, s.DB()))
	require.NoError(t, s.DB().GetContext(ctx, &orders, "SELECT COUNT(*) FROM Orders"))
	assert.Zero(t, orders)
}

func TestLoadRejectsDuplicates(t *testing.T) {
	ctx := context.Background()
	s := storetest.Open(t, seed.Scenario(), nil)

	_, err := seed.Load(ctx, s.DB(), seed.Scenario(), 10)
	assert.Error(t, err)

	var partners int
	require.NoError(t, s.DB().GetContext(ctx, &partners, "SELECT COUNT(*) FROM BusinessPartners"))
	assert.Equal(t, len(seed.Scenario().Partners), partners, "failed batch is rolled back")
}

func TestLoadRejectsBatchSize(t *testing.T) {
	s := storetest.OpenDSN(t, storetest.Migrated(t), nil)
	_, err := seed.Load(context.Background(), s.DB(), seed.Scenario(), 0)
	assert.Error(t, err)
}
