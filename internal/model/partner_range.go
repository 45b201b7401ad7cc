package model

import "github.com/dshills/newestbench/internal/errors"

// PartnerRange selects partners with Lower < Id < Upper.
type PartnerRange struct {
	Lower int64
	Upper int64
}

// DefaultPartnerRange is the partner window benchmarked when none is configured.
var DefaultPartnerRange = PartnerRange{Lower: 270000, Upper: 280000}

// Contains reports whether id lies strictly inside the range.
func (r PartnerRange) Contains(id int64) bool {
	return id > r.Lower && id < r.Upper
}

// Validate rejects ranges whose lower bound is not below the upper bound.
// A range such as (5, 6) is valid and simply selects nothing.
func (r PartnerRange) Validate() error {
	if r.Lower >= r.Upper {
		return errors.InvalidRangeError(r.Lower, r.Upper)
	}
	return nil
}
