package errors

import (
	stderrors "errors"
	"fmt"
)

// Error is a classified benchmark failure carrying a SQLSTATE-style code.
type Error struct {
	Category Category // Which stage of the pipeline failed
	Code     string   // SQLSTATE code, taken from the store when it reports one
	Message  string   // Primary error message
	Detail   string   // Optional detailed error message
	Hint     string   // Optional hint message
	Strategy string   // Strategy being built or executed, if any
	Query    string   // Statement text, if any
	Cause    error    // Underlying driver or library error
}

// Error implements the error interface
func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s (SQLSTATE %s)", e.Category, e.Message, e.Code)
	if e.Detail != "" {
		msg += " DETAIL: " + e.Detail
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap exposes the underlying cause to errors.Is and errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and message
func New(category Category, code string, message string) *Error {
	return &Error{
		Category: category,
		Code:     code,
		Message:  message,
	}
}

// Newf creates a new Error with a formatted message
func Newf(category Category, code string, format string, args ...interface{}) *Error {
	return &Error{
		Category: category,
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
	}
}

// WithDetail adds detail to the error
func (e *Error) WithDetail(detail string) *Error {
	e.Detail = detail
	return e
}

// WithDetailf adds formatted detail to the error
func (e *Error) WithDetailf(format string, args ...interface{}) *Error {
	e.Detail = fmt.Sprintf(format, args...)
	return e
}

// WithHint adds a hint to the error
func (e *Error) WithHint(hint string) *Error {
	e.Hint = hint
	return e
}

// WithStrategy records the strategy involved.
func (e *Error) WithStrategy(name string) *Error {
	e.Strategy = name
	return e
}

// WithQuery records the statement involved.
func (e *Error) WithQuery(query string) *Error {
	e.Query = query
	return e
}

// WithCause attaches the underlying error.
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// IsError checks if err wraps an Error with a specific code
func IsError(err error, code string) bool {
	qErr := AsError(err)
	return qErr != nil && qErr.Code == code
}

// AsError extracts an Error from err's chain, or returns nil.
func AsError(err error) *Error {
	if err == nil {
		return nil
	}
	var qErr *Error
	if stderrors.As(err, &qErr) {
		return qErr
	}
	return nil
}

// GetError attempts to extract an Error from any error
func GetError(err error) *Error {
	if err == nil {
		return nil
	}
	if qErr := AsError(err); qErr != nil {
		return qErr
	}
	// Wrap generic errors as internal errors
	return Newf(CategoryInternal, InternalError, "%v", err).WithCause(err)
}
