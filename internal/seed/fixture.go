package seed

import (
	"time"

	"github.com/dshills/newestbench/internal/model"
)

// Fixture builds small hand-written datasets.
type Fixture struct {
	ds          Dataset
	nextOrderID int64
}

// NewFixture starts an empty fixture whose order ids begin at 1.
func NewFixture() *Fixture {
	return &Fixture{nextOrderID: 1}
}

// Partner adds a partner with one order per timestamp, in the given order.
func (f *Fixture) Partner(id int64, createdOn ...time.Time) *Fixture {
	p := model.BusinessPartner{ID: id}
	for _, ts := range createdOn {
		p.Orders = append(p.Orders, model.Order{
			ID:                f.nextOrderID,
			BusinessPartnerID: id,
			CreatedOn:         ts.UTC(),
		})
		f.nextOrderID++
	}
	f.ds.Partners = append(f.ds.Partners, p)
	return f
}

// Dataset returns what has been built so far.
func (f *Fixture) Dataset() Dataset {
	return f.ds
}

// At is a convenience for fixture timestamps.
func At(year int, month time.Month, day, hour int) time.Time {
	return time.Date(year, month, day, hour, 0, 0, 0, time.UTC)
}

// Scenario is the reference dataset for the default range: partner 270001
// has three orders whose newest is order 3, partner 270002 has none, partner
// 270003 has two orders sharing a timestamp, and the boundary partners
// 270000 and 280000 have orders but fall outside the range.
func Scenario() Dataset {
	return NewFixture().
		Partner(270000, At(2024, time.June, 1, 0)).
		Partner(270001,
			At(2024, time.January, 1, 0),
			At(2024, time.March, 1, 0),
			At(2024, time.February, 1, 0),
		).
		Partner(270002).
		Partner(270003,
			At(2024, time.April, 1, 12),
			At(2024, time.April, 1, 12),
		).
		Partner(280000, At(2024, time.June, 1, 0)).
		Dataset()
}
