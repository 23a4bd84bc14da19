package cli

import (
	"fmt"

	"toggl-cli/internal/errors"
	"toggl-cli/internal/logging"
)

// ErrorHandler provides centralized error handling for command handlers
type ErrorHandler struct{}

// NewErrorHandler creates a new error handler
func NewErrorHandler() *ErrorHandler {
	return &ErrorHandler{}
}

// Handle provides user-friendly error messages with operation context
func (eh *ErrorHandler) Handle(operation string, err error) error {
	if appErr, ok := errors.AsAppError(err); ok {
		if errors.ShouldLogError(err) {
			logging.Debugf("internal error during %s: %v\n", operation, appErr)
		}
		return fmt.Errorf("failed to %s: %s", operation, errors.GetUserMessage(err))
	}

	return fmt.Errorf("failed to %s: %w", operation, err)
}

// HandleSimple provides user-friendly error messages without operation context
func (eh *ErrorHandler) HandleSimple(err error) error {
	if _, ok := errors.AsAppError(err); ok {
		return fmt.Errorf("%s", errors.GetUserMessage(err))
	}
	return err
}

// IsValidationError checks if an error stems from bad user input
func (eh *ErrorHandler) IsValidationError(err error) bool {
	if appErr, ok := errors.AsAppError(err); ok {
		return appErr.Type.IsValidation()
	}
	return false
}

// IsNotFoundError checks if an error is a not found error
func (eh *ErrorHandler) IsNotFoundError(err error) bool {
	return errors.IsErrorType(err, errors.ErrorTypeNotFound)
}
