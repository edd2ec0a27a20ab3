package errors

import (
	"errors"
	"fmt"
)

// Common error types used across the menuflow library

var (
	// ErrIllegalState indicates that an operation was invoked at a point where
	// the receiver can no longer honor it, such as a second terminal operation
	// on a single-use stream
	ErrIllegalState = errors.New("illegal state")

	// ErrInvalidConfiguration indicates invalid configuration parameters
	ErrInvalidConfiguration = errors.New("invalid configuration")
)

// ValidationError describes an argument or configuration value that failed
// validation.
type ValidationError struct {
	Module string
	Field  string
	Value  interface{}
	Reason string
	Hint   string
}

// NewValidationError creates a ValidationError without a hint.
func NewValidationError(module, field string, value interface{}, reason string) *ValidationError {
	return &ValidationError{
		Module: module,
		Field:  field,
		Value:  value,
		Reason: reason,
	}
}

// WithHint attaches a remediation hint and returns the same instance.
func (e *ValidationError) WithHint(hint string) *ValidationError {
	e.Hint = hint
	return e
}

func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("%s: invalid %s=%v (%s)", e.Module, e.Field, e.Value, e.Reason)
	if e.Hint != "" {
		msg += " - " + e.Hint
	}
	return msg
}

// Unwrap returns ErrInvalidConfiguration.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidConfiguration
}

// OperationError wraps a failure raised while an operation was running.
type OperationError struct {
	Module    string
	Operation string
	Cause     error
	Context   string
}

// NewOperationError creates an OperationError for module.operation.
func NewOperationError(module, operation string, cause error) *OperationError {
	return &OperationError{
		Module:    module,
		Operation: operation,
		Cause:     cause,
	}
}

// WithContext attaches additional context and returns the same instance.
func (e *OperationError) WithContext(context string) *OperationError {
	e.Context = context
	return e
}

func (e *OperationError) Error() string {
	msg := fmt.Sprintf("%s.%s failed: %v", e.Module, e.Operation, e.Cause)
	if e.Context != "" {
		msg += " (" + e.Context + ")"
	}
	return msg
}

func (e *OperationError) Unwrap() error {
	return e.Cause
}

// ReuseError is returned when a terminal operation is invoked on a stream
// lineage that has already been consumed or closed. The computation can only
// be retried on a freshly constructed stream.
type ReuseError struct {
	// StreamID identifies the lineage root that was already consumed.
	StreamID string
	// Operation is the terminal operation that was attempted.
	Operation string
}

func (e *ReuseError) Error() string {
	return fmt.Sprintf("stream %s: %s: stream has already been operated upon or closed", e.StreamID, e.Operation)
}

// Unwrap returns ErrIllegalState.
func (e *ReuseError) Unwrap() error {
	return ErrIllegalState
}

// IsValidationError reports whether err is or wraps a ValidationError.
func IsValidationError(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}

// IsReuse reports whether err is or wraps a ReuseError.
func IsReuse(err error) bool {
	var rerr *ReuseError
	return errors.As(err, &rerr)
}
