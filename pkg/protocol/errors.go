// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 The Swarmlight Authors

// Package protocol defines the error taxonomy and parameter validation shared
// by the Lightswarm binary protocol, the SK6812 envelope protocol, and the
// serial transport that delivers both.
//
// Every failure surfaced by the protocol packages is a *CommandError carrying
// an ErrorType; callers dispatch on the type via the IsXxxError predicates
// rather than matching message strings.
package protocol

import "fmt"

// ErrorType represents the category of error that occurred
type ErrorType int

const (
	// ErrTypeUnknownAction indicates an action or colour name not present in the catalog
	ErrTypeUnknownAction ErrorType = iota
	// ErrTypeMissingValue indicates a required parameter was absent
	ErrTypeMissingValue
	// ErrTypeTypeMismatch indicates a parameter was not an integer where one is required
	ErrTypeTypeMismatch
	// ErrTypeOutOfRange indicates a parameter fell outside its declared range
	ErrTypeOutOfRange
	// ErrTypeInvalidRange indicates a malformed range declaration (not exactly two bounds)
	ErrTypeInvalidRange
	// ErrTypeByteOutOfRange indicates a frame input value outside 0-255
	ErrTypeByteOutOfRange
	// ErrTypeTransport indicates the connection was absent or lost; the command was not delivered
	ErrTypeTransport
	// ErrTypeFatal indicates an unexpected failure that is recorded and propagated
	ErrTypeFatal
)

// String returns a human-readable name for the error type
func (et ErrorType) String() string {
	switch et {
	case ErrTypeUnknownAction:
		return "Unknown Action"
	case ErrTypeMissingValue:
		return "Missing Value"
	case ErrTypeTypeMismatch:
		return "Type Mismatch"
	case ErrTypeOutOfRange:
		return "Out of Range"
	case ErrTypeInvalidRange:
		return "Invalid Range"
	case ErrTypeByteOutOfRange:
		return "Byte Out of Range"
	case ErrTypeTransport:
		return "Transport Error"
	case ErrTypeFatal:
		return "Fatal Error"
	default:
		return fmt.Sprintf("ErrorType(%d)", int(et))
	}
}

// CommandError represents a failure while validating, encoding, or delivering
// a lighting command.
type CommandError struct {
	Type      ErrorType // Category of error
	Message   string    // Human-readable error message
	Device    string    // Device name (transport errors only)
	Err       error     // Underlying error (if any)
	Retryable bool      // Whether a later attempt may succeed
}

// Error implements the error interface
func (e *CommandError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error for error chain inspection
func (e *CommandError) Unwrap() error {
	return e.Err
}

// NewUnknownActionError creates a catalog lookup failure
func NewUnknownActionError(message string) *CommandError {
	return &CommandError{
		Type:    ErrTypeUnknownAction,
		Message: message,
	}
}

// NewMissingValueError creates a missing-parameter validation error
func NewMissingValueError(message string) *CommandError {
	return &CommandError{
		Type:    ErrTypeMissingValue,
		Message: message,
	}
}

// NewTypeMismatchError creates a non-integer-parameter validation error
func NewTypeMismatchError(message string) *CommandError {
	return &CommandError{
		Type:    ErrTypeTypeMismatch,
		Message: message,
	}
}

// NewOutOfRangeError creates a range validation error
func NewOutOfRangeError(message string) *CommandError {
	return &CommandError{
		Type:    ErrTypeOutOfRange,
		Message: message,
	}
}

// NewInvalidRangeError creates a malformed-range configuration error
func NewInvalidRangeError(message string) *CommandError {
	return &CommandError{
		Type:    ErrTypeInvalidRange,
		Message: message,
	}
}

// NewByteOutOfRangeError creates a frame input error
func NewByteOutOfRangeError(message string) *CommandError {
	return &CommandError{
		Type:    ErrTypeByteOutOfRange,
		Message: message,
	}
}

// NewTransportError creates a recoverable delivery error. The connection state
// has been reset; the next send will attempt to reconnect.
func NewTransportError(device, message string, err error) *CommandError {
	return &CommandError{
		Type:      ErrTypeTransport,
		Message:   message,
		Device:    device,
		Err:       err,
		Retryable: true,
	}
}

// NewFatalError creates an unexpected, non-retryable failure
func NewFatalError(device, message string, err error) *CommandError {
	return &CommandError{
		Type:    ErrTypeFatal,
		Message: message,
		Device:  device,
		Err:     err,
	}
}

// IsUnknownActionError checks if an error is a catalog lookup failure
func IsUnknownActionError(err error) bool {
	if cmdErr, ok := err.(*CommandError); ok {
		return cmdErr.Type == ErrTypeUnknownAction
	}
	return false
}

// IsMissingValueError checks if an error is a missing-parameter failure
func IsMissingValueError(err error) bool {
	if cmdErr, ok := err.(*CommandError); ok {
		return cmdErr.Type == ErrTypeMissingValue
	}
	return false
}

// IsTypeMismatchError checks if an error is a non-integer-parameter failure
func IsTypeMismatchError(err error) bool {
	if cmdErr, ok := err.(*CommandError); ok {
		return cmdErr.Type == ErrTypeTypeMismatch
	}
	return false
}

// IsOutOfRangeError checks if an error is a range failure
func IsOutOfRangeError(err error) bool {
	if cmdErr, ok := err.(*CommandError); ok {
		return cmdErr.Type == ErrTypeOutOfRange
	}
	return false
}

// IsInvalidRangeError checks if an error is a malformed-range failure
func IsInvalidRangeError(err error) bool {
	if cmdErr, ok := err.(*CommandError); ok {
		return cmdErr.Type == ErrTypeInvalidRange
	}
	return false
}

// IsByteOutOfRangeError checks if an error is a frame input failure
func IsByteOutOfRangeError(err error) bool {
	if cmdErr, ok := err.(*CommandError); ok {
		return cmdErr.Type == ErrTypeByteOutOfRange
	}
	return false
}

// IsTransportError checks if an error is a recoverable delivery failure
func IsTransportError(err error) bool {
	if cmdErr, ok := err.(*CommandError); ok {
		return cmdErr.Type == ErrTypeTransport
	}
	return false
}

// IsFatalError checks if an error is an unexpected, propagated failure
func IsFatalError(err error) bool {
	if cmdErr, ok := err.(*CommandError); ok {
		return cmdErr.Type == ErrTypeFatal
	}
	return false
}

// IsValidationError checks if an error is any of the pre-encoding input
// failures (missing value, type mismatch, out of range, invalid range)
func IsValidationError(err error) bool {
	if cmdErr, ok := err.(*CommandError); ok {
		return cmdErr.Type == ErrTypeMissingValue ||
			cmdErr.Type == ErrTypeTypeMismatch ||
			cmdErr.Type == ErrTypeOutOfRange ||
			cmdErr.Type == ErrTypeInvalidRange
	}
	return false
}

// IsRetryable checks if a later attempt at the same command may succeed
func IsRetryable(err error) bool {
	if cmdErr, ok := err.(*CommandError); ok {
		return cmdErr.Retryable
	}
	// Unknown errors are not retryable by default
	return false
}
