// Package seed generates and loads synthetic business partners and orders.
package seed

import (
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/dshills/newestbench/internal/config"
	"github.com/dshills/newestbench/internal/model"
	"github.com/dshills/newestbench/internal/util/timeutil"
)

// Dataset is a set of partners, each carrying its orders.
type Dataset struct {
	Partners []model.BusinessPartner
}

// Orders flattens every partner's orders.
func (d Dataset) Orders() []model.Order {
	var orders []model.Order
	for _, p := range d.Partners {
		orders = append(orders, p.Orders...)
	}
	return orders
}

// OrderCount is the total number of orders.
func (d Dataset) OrderCount() int {
	n := 0
	for _, p := range d.Partners {
		n += len(p.Orders)
	}
	return n
}

// Expected computes the rows either strategy must return for r, ordered by
// partner id.
func (d Dataset) Expected(r model.PartnerRange) []model.Row {
	rows := []model.Row{}
	for _, p := range d.Partners {
		if !r.Contains(p.ID) {
			continue
		}
		if o, ok := model.NewestOrder(p.Orders); ok {
			rows = append(rows, model.Row{PartnerID: p.ID, OrderID: o.ID})
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].PartnerID < rows[j].PartnerID })
	return rows
}

// Generator produces reproducible datasets.
type Generator struct {
	cfg  config.SeedConfig
	base time.Time
	rng  *rand.Rand
}

// NewGenerator creates a generator for cfg. The same seed always yields the
// same dataset.
func NewGenerator(cfg config.SeedConfig) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid seed config: %w", err)
	}
	base, err := timeutil.ParseTimestamp(cfg.BaseTime)
	if err != nil {
		return nil, err
	}
	return &Generator{
		cfg:  cfg,
		base: base.UTC(),
		rng:  rand.New(rand.NewSource(cfg.Seed)),
	}, nil
}

// Generate builds cfg.Partners consecutive partners. Every EmptyEvery-th
// partner gets no orders; the others get between 1 and MaxOrdersPerPartner.
func (g *Generator) Generate() Dataset {
	ds := Dataset{Partners: make([]model.BusinessPartner, 0, g.cfg.Partners)}
	orderID := g.cfg.FirstOrderID

	for i := 0; i < g.cfg.Partners; i++ {
		p := model.BusinessPartner{ID: g.cfg.FirstPartnerID + int64(i)}

		count := 0
		if g.cfg.MaxOrdersPerPartner > 0 && !g.empty(i) {
			count = g.rng.Intn(g.cfg.MaxOrdersPerPartner) + 1
		}
		for j := 0; j < count; j++ {
			p.Orders = append(p.Orders, model.Order{
				ID:                orderID,
				BusinessPartnerID: p.ID,
				CreatedOn:         g.randomTime(),
			})
			orderID++
		}
		ds.Partners = append(ds.Partners, p)
	}
	return ds
}

func (g *Generator) empty(i int) bool {
	return g.cfg.EmptyEvery > 0 && (i+1)%g.cfg.EmptyEvery == 0
}

// randomTime picks a whole second within three years of the base time.
// Collisions are possible and exercise the tie-break.
func (g *Generator) randomTime() time.Time {
	const span = 3 * 365 * 24 * 60 * 60
	return g.base.Add(time.Duration(g.rng.Int63n(span)) * time.Second)
}
