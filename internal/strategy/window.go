package strategy

import (
	"github.com/dshills/newestbench/internal/errors"
	"github.com/dshills/newestbench/internal/model"
)

// ROW_NUMBER is available in every supported dialect, so one statement
// serves all of them.
const windowSQL = `SELECT p.Id AS partner_id, t.Id AS order_id
FROM BusinessPartners AS p
INNER JOIN (
    SELECT o.Id, o.BusinessPartnerId,
           ROW_NUMBER() OVER (PARTITION BY o.BusinessPartnerId ORDER BY o.CreatedOn DESC, o.Id ASC) AS rn
    FROM Orders AS o
) AS t ON t.BusinessPartnerId = p.Id AND t.rn = 1
WHERE p.Id > ? AND p.Id < ?`

// Window orders each partner's orders by CreatedOn descending and keeps the
// first one. Ties go to the lowest order id.
type Window struct{}

func (Window) Name() string  { return "window" }
func (Window) Label() string { return "windowQuery" }

func (w Window) Build(d model.Dialect, r model.PartnerRange) (Plan, error) {
	switch d {
	case model.DialectSQLServer, model.DialectPostgres, model.DialectSQLite:
		return newPlan(w.Name(), d, r, windowSQL)
	default:
		return Plan{}, errors.UnsupportedDialectError(w.Name(), string(d))
	}
}
