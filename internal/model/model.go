// Package model holds the entities read by the benchmark and the transient
// rows both strategies produce.
package model

import "time"

// BusinessPartner places orders.
type BusinessPartner struct {
	ID     int64   `db:"Id"`
	Orders []Order `db:"-"`
}

// Order belongs to exactly one business partner.
type Order struct {
	ID                int64     `db:"Id"`
	BusinessPartnerID int64     `db:"BusinessPartnerId"`
	CreatedOn         time.Time `db:"CreatedOn"`
}

// NewestOrderFunctionResult is the shape of one row returned by the
// store-side fn_GetNewestOrders function. It is never persisted.
type NewestOrderFunctionResult struct {
	ID        int64     `db:"id"`
	CreatedOn time.Time `db:"created_on"`
}

// Row pairs a partner with its newest order.
type Row struct {
	PartnerID int64 `db:"partner_id"`
	OrderID   int64 `db:"order_id"`
}

// NewestOrder returns the order with the latest CreatedOn, breaking ties by
// the lowest order id. ok is false when orders is empty.
func NewestOrder(orders []Order) (newest Order, ok bool) {
	for i, o := range orders {
		if i == 0 || o.CreatedOn.After(newest.CreatedOn) ||
			(o.CreatedOn.Equal(newest.CreatedOn) && o.ID < newest.ID) {
			newest = o
		}
	}
	return newest, len(orders) > 0
}
