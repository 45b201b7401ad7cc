package strategy

import (
	"github.com/dshills/newestbench/internal/errors"
	"github.com/dshills/newestbench/internal/model"
)

// FunctionName is the store-side table-valued function queried per partner.
const FunctionName = "fn_GetNewestOrders"

const functionSQLServer = `SELECT p.Id AS partner_id, f.Id AS order_id
FROM BusinessPartners AS p
CROSS APPLY dbo.fn_GetNewestOrders(p.Id) AS f
WHERE p.Id > ? AND p.Id < ?`

const functionPostgres = `SELECT p.Id AS partner_id, f.Id AS order_id
FROM BusinessPartners AS p
CROSS JOIN LATERAL fn_GetNewestOrders(p.Id) AS f
WHERE p.Id > ? AND p.Id < ?`

// SQLite cannot define table-valued functions in SQL; the schema ships
// fn_GetNewestOrders as a view keyed by partner.
const functionSQLite = `SELECT p.Id AS partner_id, f.Id AS order_id
FROM BusinessPartners AS p
INNER JOIN fn_GetNewestOrders AS f ON f.BusinessPartnerId = p.Id
WHERE p.Id > ? AND p.Id < ?`

// Function invokes fn_GetNewestOrders once per partner and inner-joins the
// result, so partners without orders produce no row.
type Function struct{}

func (Function) Name() string  { return "function" }
func (Function) Label() string { return "functionQuery" }

func (f Function) Build(d model.Dialect, r model.PartnerRange) (Plan, error) {
	var query string
	switch d {
	case model.DialectSQLServer:
		query = functionSQLServer
	case model.DialectPostgres:
		query = functionPostgres
	case model.DialectSQLite:
		query = functionSQLite
	default:
		return Plan{}, errors.UnsupportedDialectError(f.Name(), string(d))
	}
	return newPlan(f.Name(), d, r, query)
}

const probeSQLServer = `SELECT Id AS id, CreatedOn AS created_on FROM dbo.fn_GetNewestOrders(?)`

const probePostgres = `SELECT Id AS id, CreatedOn AS created_on FROM fn_GetNewestOrders(?)`

const probeSQLite = `SELECT Id AS id, CreatedOn AS created_on FROM fn_GetNewestOrders WHERE BusinessPartnerId = ?`

// NewestOrderPlan calls fn_GetNewestOrders for a single partner. The result
// scans into model.NewestOrderFunctionResult.
func NewestOrderPlan(d model.Dialect, partnerID int64) (Plan, error) {
	var query string
	switch d {
	case model.DialectSQLServer:
		query = probeSQLServer
	case model.DialectPostgres:
		query = probePostgres
	case model.DialectSQLite:
		query = probeSQLite
	default:
		return Plan{}, errors.UnsupportedDialectError("function probe", string(d))
	}
	return Plan{
		Strategy: "function probe",
		Dialect:  d,
		SQL:      bind(d, query),
		Args:     []any{partnerID},
	}, nil
}
