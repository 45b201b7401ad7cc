package errors

// SQLSTATE codes used by newestbench.
// Based on PostgreSQL error codes: https://www.postgresql.org/docs/current/errcodes-appendix.html

// Class 08 - Connection Exception
const (
	ConnectionException                  = "08000"
	ConnectionDoesNotExist               = "08003"
	ConnectionFailure                    = "08006"
	SQLClientUnableToEstablishConnection = "08001"
)

// Class 0A - Feature Not Supported
const (
	FeatureNotSupported = "0A000"
)

// Class 22 - Data Exception
const (
	DataException         = "22000"
	InvalidParameterValue = "22023"
)

// Class 42 - Syntax Error or Access Rule Violation
const (
	SyntaxErrorOrAccessRuleViolation = "42000"
	UndefinedFunction                = "42883"
	UndefinedTable                   = "42P01"
)

// Class 57 - Operator Intervention
const (
	QueryCanceled = "57014"
)

// Class XX - Internal Error
const (
	InternalError = "XX000"
)

// codeClass returns the two-character class of a SQLSTATE code.
func codeClass(code string) string {
	if len(code) < 2 {
		return ""
	}
	return code[:2]
}
