package errors

import (
	"fmt"
)

// ErrorType represents the category of error
type ErrorType int

const (
	// Input validation failures from the tracking core. These form a
	// closed set; every malformed input maps to exactly one of them.
	ErrorTypeInvalidDuration ErrorType = iota
	ErrorTypeInvalidRange
	ErrorTypeInconsistentSpan
	ErrorTypeNonPositiveSpan

	// Malformed command arguments and flags.
	ErrorTypeInvalidInput

	// Failures from the surrounding I/O layers.
	ErrorTypeNotFound
	ErrorTypeAPI
	ErrorTypeConfig
	ErrorTypeDatabase
)

// String returns the string representation of the error type
func (et ErrorType) String() string {
	switch et {
	case ErrorTypeInvalidDuration:
		return "invalid_duration"
	case ErrorTypeInvalidRange:
		return "invalid_range"
	case ErrorTypeInconsistentSpan:
		return "inconsistent_span"
	case ErrorTypeNonPositiveSpan:
		return "non_positive_span"
	case ErrorTypeInvalidInput:
		return "invalid_input"
	case ErrorTypeNotFound:
		return "not_found"
	case ErrorTypeAPI:
		return "api"
	case ErrorTypeConfig:
		return "config"
	case ErrorTypeDatabase:
		return "database"
	default:
		return "unknown"
	}
}

// IsValidation reports whether the type is one of the recoverable input
// validation categories produced by the tracking core.
func (et ErrorType) IsValidation() bool {
	switch et {
	case ErrorTypeInvalidDuration, ErrorTypeInvalidRange, ErrorTypeInconsistentSpan, ErrorTypeNonPositiveSpan, ErrorTypeInvalidInput:
		return true
	default:
		return false
	}
}

// AppError represents a structured application error
type AppError struct {
	Type    ErrorType
	Message string
	Input   string // the offending user input, echoed back when present
	Cause   error
}

// Error implements the error interface
func (e *AppError) Error() string {
	msg := e.Message
	if e.Input != "" {
		msg = fmt.Sprintf("%s: %q", e.Message, e.Input)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type.String(), msg, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type.String(), msg)
}

// Unwrap returns the underlying error for error unwrapping
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is checks if this error matches the target error type
func (e *AppError) Is(target error) bool {
	if appErr, ok := target.(*AppError); ok {
		return e.Type == appErr.Type
	}
	return false
}

// IsType checks if this error is of the specified type
func (e *AppError) IsType(errorType ErrorType) bool {
	return e.Type == errorType
}
