package errors

import (
	"errors"
	"fmt"
)

// NewInvalidDurationError reports a duration string the parser could not understand
func NewInvalidDurationError(input string) *AppError {
	return &AppError{
		Type:    ErrorTypeInvalidDuration,
		Message: "invalid duration",
		Input:   input,
	}
}

// NewInvalidRangeError reports a range token that is neither a known keyword nor a valid date expression
func NewInvalidRangeError(input string) *AppError {
	return &AppError{
		Type:    ErrorTypeInvalidRange,
		Message: "invalid range",
		Input:   input,
	}
}

// NewInconsistentSpanError reports an entry spec whose end and duration disagree, or where neither is given
func NewInconsistentSpanError(detail string) *AppError {
	return &AppError{
		Type:    ErrorTypeInconsistentSpan,
		Message: detail,
	}
}

// NewNonPositiveSpanError reports an entry spec that resolves to a zero or negative span
func NewNonPositiveSpanError(detail string) *AppError {
	return &AppError{
		Type:    ErrorTypeNonPositiveSpan,
		Message: detail,
	}
}

// NewInvalidInputError reports a malformed command argument or flag
func NewInvalidInputError(field string, input string, message string) *AppError {
	return &AppError{
		Type:    ErrorTypeInvalidInput,
		Message: fmt.Sprintf("invalid %s: %s", field, message),
		Input:   input,
	}
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(resource string, identifier string) *AppError {
	return &AppError{
		Type:    ErrorTypeNotFound,
		Message: fmt.Sprintf("%s not found", resource),
		Input:   identifier,
	}
}

// NewAPIError reports a failed call against the remote service
func NewAPIError(status int, body string) *AppError {
	return &AppError{
		Type:    ErrorTypeAPI,
		Message: fmt.Sprintf("unexpected status %d: %s", status, body),
	}
}

// NewConfigError reports an invalid configuration value
func NewConfigError(field string, message string) *AppError {
	return &AppError{
		Type:    ErrorTypeConfig,
		Message: fmt.Sprintf("%s: %s", field, message),
	}
}

// NewDatabaseError creates a new database error
func NewDatabaseError(operation string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeDatabase,
		Message: fmt.Sprintf("database operation failed: %s", operation),
		Cause:   cause,
	}
}

// WrapError wraps an existing error with additional context
func WrapError(err error, errorType ErrorType, message string) *AppError {
	return &AppError{
		Type:    errorType,
		Message: message,
		Cause:   err,
	}
}

// IsAppError checks if the error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsErrorType checks if the error is of the specified type
func IsErrorType(err error, errorType ErrorType) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.IsType(errorType)
	}
	return false
}

// GetUserMessage returns a user-friendly error message
func GetUserMessage(err error) string {
	if appErr, ok := AsAppError(err); ok {
		switch appErr.Type {
		case ErrorTypeDatabase:
			return "A local cache error occurred. Please try again."
		case ErrorTypeAPI:
			if appErr.Cause != nil {
				return fmt.Sprintf("The Toggl API request failed: %v", appErr.Cause)
			}
			return "The Toggl API request failed: " + appErr.Message
		default:
			if appErr.Input != "" {
				return fmt.Sprintf("%s: %q", appErr.Message, appErr.Input)
			}
			return appErr.Message
		}
	}
	return err.Error()
}

// ShouldLogError determines if an error should be logged based on its type
func ShouldLogError(err error) bool {
	if appErr, ok := AsAppError(err); ok {
		// User input errors are reported, not logged.
		return !appErr.Type.IsValidation() && appErr.Type != ErrorTypeNotFound
	}
	return true
}
