package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNewInvalidDurationError(t *testing.T) {
	err := NewInvalidDurationError("2x30")

	if err.Type != ErrorTypeInvalidDuration {
		t.Errorf("NewInvalidDurationError type = %v, want %v", err.Type, ErrorTypeInvalidDuration)
	}
	if err.Input != "2x30" {
		t.Errorf("NewInvalidDurationError input = %v, want %v", err.Input, "2x30")
	}
	if err.Error() != `invalid_duration: invalid duration: "2x30"` {
		t.Errorf("NewInvalidDurationError Error() = %v", err.Error())
	}
}

func TestNewNotFoundError(t *testing.T) {
	err := NewNotFoundError("project", "website")

	if err.Type != ErrorTypeNotFound {
		t.Errorf("NewNotFoundError type = %v, want %v", err.Type, ErrorTypeNotFound)
	}
	if err.Message != "project not found" {
		t.Errorf("NewNotFoundError message = %v, want %v", err.Message, "project not found")
	}
	if err.Input != "website" {
		t.Errorf("NewNotFoundError input = %v, want %v", err.Input, "website")
	}
}

func TestNewDatabaseError(t *testing.T) {
	cause := errors.New("connection timeout")
	err := NewDatabaseError("upsert time entries", cause)

	if err.Type != ErrorTypeDatabase {
		t.Errorf("NewDatabaseError type = %v, want %v", err.Type, ErrorTypeDatabase)
	}
	if err.Message != "database operation failed: upsert time entries" {
		t.Errorf("NewDatabaseError message = %v", err.Message)
	}
	if err.Unwrap() != cause {
		t.Errorf("NewDatabaseError should carry the cause")
	}
}

func TestWrapError(t *testing.T) {
	cause := errors.New("disk full")
	err := WrapError(cause, ErrorTypeDatabase, "cache write failed")

	if err.Type != ErrorTypeDatabase {
		t.Errorf("WrapError type = %v, want %v", err.Type, ErrorTypeDatabase)
	}
	if !errors.Is(err, cause) {
		t.Errorf("WrapError should unwrap to the cause")
	}
}

func TestIsErrorType(t *testing.T) {
	err := NewInvalidRangeError("next-decade")

	if !IsErrorType(err, ErrorTypeInvalidRange) {
		t.Errorf("IsErrorType should match the error's own type")
	}
	if IsErrorType(err, ErrorTypeNotFound) {
		t.Errorf("IsErrorType should not match a different type")
	}
	if IsErrorType(errors.New("plain"), ErrorTypeInvalidRange) {
		t.Errorf("IsErrorType should be false for non-app errors")
	}
}

func TestIsErrorTypeThroughWrapping(t *testing.T) {
	err := fmt.Errorf("resolving range: %w", NewInvalidRangeError("nope"))

	if !IsErrorType(err, ErrorTypeInvalidRange) {
		t.Errorf("IsErrorType should see through fmt.Errorf wrapping")
	}
}

func TestGetUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "should echo offending input for validation errors",
			err:  NewInvalidDurationError("abc"),
			want: `invalid duration: "abc"`,
		},
		{
			name: "should hide database internals",
			err:  NewDatabaseError("query", errors.New("SQLITE_BUSY")),
			want: "A local cache error occurred. Please try again.",
		},
		{
			name: "should surface API failures",
			err:  NewAPIError(403, "Incorrect username and/or password"),
			want: "The Toggl API request failed: unexpected status 403: Incorrect username and/or password",
		},
		{
			name: "should pass through plain errors",
			err:  errors.New("something else"),
			want: "something else",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetUserMessage(tt.err); got != tt.want {
				t.Errorf("GetUserMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestShouldLogError(t *testing.T) {
	if ShouldLogError(NewInvalidDurationError("abc")) {
		t.Errorf("validation errors should not be logged")
	}
	if ShouldLogError(NewNotFoundError("project", "x")) {
		t.Errorf("not found errors should not be logged")
	}
	if !ShouldLogError(NewDatabaseError("query", errors.New("boom"))) {
		t.Errorf("database errors should be logged")
	}
	if !ShouldLogError(errors.New("plain")) {
		t.Errorf("unknown errors should be logged")
	}
}
