// Package errors provides structured error handling for the query builder.
//
// Error codes follow the pattern ERR_XXX_DESCRIPTION where:
//   - 4XX: Validation errors (caller contract violations)
//   - 5XX: Internal errors
package errors

// Category defines error categories for classification.
type Category string

const (
	// CategoryValidation indicates caller contract violations.
	CategoryValidation Category = "VALIDATION"
	// CategoryInternal indicates unexpected internal errors.
	CategoryInternal Category = "INTERNAL"
)

// Severity defines error severity levels.
type Severity string

const (
	// SeverityError indicates the operation failed but the process can continue.
	SeverityError Severity = "ERROR"
	// SeverityFatal indicates an unrecoverable error.
	SeverityFatal Severity = "FATAL"
)

// Error codes organized by category.
const (
	// Validation errors (400-499)
	ErrCodeInvalidArgument  = "ERR_401_INVALID_ARGUMENT"
	ErrCodeIllegalState     = "ERR_402_ILLEGAL_STATE"
	ErrCodeQueryFileInvalid = "ERR_403_QUERYFILE_INVALID"

	// Internal errors (500-599)
	ErrCodeInternal = "ERR_501_INTERNAL"
)

func categoryFromCode(code string) Category {
	if len(code) > 4 && code[4] == '4' {
		return CategoryValidation
	}
	return CategoryInternal
}

func severityFromCode(code string) Severity {
	if categoryFromCode(code) == CategoryInternal {
		return SeverityFatal
	}
	return SeverityError
}
