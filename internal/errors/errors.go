package errors

import (
	"errors"
	"fmt"
)

// QueryError is the structured error type for the query builder.
// It provides rich context for error handling, logging, and user presentation.
type QueryError struct {
	// Code is the unique error code (e.g., "ERR_401_INVALID_ARGUMENT").
	Code string

	// Message is the human-readable error message.
	Message string

	// Category is the error category (Validation, Internal).
	Category Category

	// Severity is the error severity level.
	Severity Severity

	// Details contains additional context as key-value pairs.
	Details map[string]string

	// Cause is the underlying error that caused this error.
	Cause error
}

// Error implements the error interface.
func (e *QueryError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for error chain support.
func (e *QueryError) Unwrap() error {
	return e.Cause
}

// Is checks if this error matches the target error by code.
// This enables errors.Is() to work with QueryError.
func (e *QueryError) Is(target error) bool {
	if t, ok := target.(*QueryError); ok {
		return e.Code == t.Code
	}
	return false
}

// WithDetail adds a key-value detail to the error.
// Returns the error for method chaining.
func (e *QueryError) WithDetail(key, value string) *QueryError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// New creates a new QueryError with the given code and message.
// Category and severity are derived from the code.
func New(code string, message string, cause error) *QueryError {
	return &QueryError{
		Code:     code,
		Message:  message,
		Category: categoryFromCode(code),
		Severity: severityFromCode(code),
		Cause:    cause,
	}
}

// InvalidArgumentError reports a caller contract violation: an argument
// that must be a non-empty string was not. The offending value is carried
// in the error details.
func InvalidArgumentError(argument string, value any) *QueryError {
	return New(ErrCodeInvalidArgument,
		fmt.Sprintf("%s must be a non-empty string", argument), nil).
		WithDetail("argument", argument).
		WithDetail("value", fmt.Sprintf("%v", value))
}

// IllegalStateError reports a continuation call made before its
// corresponding initiating call.
func IllegalStateError(message string) *QueryError {
	return New(ErrCodeIllegalState, message, nil)
}

// QueryFileError reports a declarative query file that failed validation.
func QueryFileError(message string, cause error) *QueryError {
	return New(ErrCodeQueryFileInvalid, message, cause)
}

// GetCode extracts the error code from a QueryError anywhere in the chain.
// Returns empty string otherwise.
func GetCode(err error) string {
	var qe *QueryError
	if errors.As(err, &qe) {
		return qe.Code
	}
	return ""
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code string) bool {
	return GetCode(err) == code
}
