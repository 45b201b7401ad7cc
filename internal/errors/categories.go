package errors

// Category identifies the pipeline stage an Error came from.
type Category string

const (
	// CategoryConnection covers unreachable stores, bad credentials and bad
	// connection strings.
	CategoryConnection Category = "connection"
	// CategoryTranslation covers query shapes that cannot be rendered for the
	// target store.
	CategoryTranslation Category = "translation"
	// CategoryExecution covers failures reported by the store while running a
	// statement (missing function, constraint violation, ...).
	CategoryExecution Category = "execution"
	// CategoryConfig covers invalid configuration.
	CategoryConfig Category = "config"
	// CategoryInternal covers everything else.
	CategoryInternal Category = "internal"
)

// CategoryOf reports the category of err, or CategoryInternal when err is
// not a classified Error.
func CategoryOf(err error) Category {
	if qErr := AsError(err); qErr != nil {
		return qErr.Category
	}
	return CategoryInternal
}

// Connection errors

func UnknownDriverError(driver string) *Error {
	return Newf(CategoryConnection, SQLClientUnableToEstablishConnection, "unknown driver %q", driver).
		WithHint("Use one of sqlserver, postgres, pgx or sqlite.")
}

func ConnectionError(driver string, cause error) *Error {
	return Newf(CategoryConnection, SQLClientUnableToEstablishConnection, "cannot connect using driver %q", driver).
		WithCause(cause)
}

// Translation errors

func UnsupportedDialectError(strategy, dialect string) *Error {
	return Newf(CategoryTranslation, FeatureNotSupported, "strategy %s cannot be translated for dialect %s", strategy, dialect).
		WithStrategy(strategy)
}

func InvalidRangeError(lower, upper int64) *Error {
	return Newf(CategoryTranslation, InvalidParameterValue, "invalid partner id range (%d, %d)", lower, upper).
		WithHint("The lower bound must be smaller than the upper bound.")
}

// Execution errors

// ExecutionError classifies a store failure. A store code in class 08 means
// the connection went away mid-statement and is reported as a connection error.
func ExecutionError(strategy, query, code string, cause error) *Error {
	category := CategoryExecution
	if code == "" {
		code = InternalError
	} else if codeClass(code) == "08" {
		category = CategoryConnection
	}
	return Newf(category, code, "executing %s failed", strategy).
		WithStrategy(strategy).
		WithQuery(query).
		WithCause(cause)
}

// Config errors

func InvalidConfigError(format string, args ...interface{}) *Error {
	return Newf(CategoryConfig, InvalidParameterValue, format, args...)
}
