package contracts

import (
	"errors"
	"fmt"
)

// ErrNoResult signals that a provider produced no value. In a composite
// provider it causes fallthrough to the next provider; it is not a failure.
var ErrNoResult = errors.New("no result")

// ConfigurationError marks a state-machine configuration that can never
// produce a valid transformation, such as equal source and target states or
// a missing container provider. Fatal to the transformation attempt.
type ConfigurationError struct {
	Reason string
}

// NewConfigurationError creates a configuration error.
func NewConfigurationError(format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Reason: fmt.Sprintf(format, args...)}
}

// Error implements error.
func (e *ConfigurationError) Error() string {
	return "invalid transformation configuration: " + e.Reason
}

// GuardValidationError is raised when a guard denies a transformation. It
// carries the guard's name, the structured denial code, the container's
// source and target states, and the optional cause.
type GuardValidationError struct {
	Guard     string
	ErrorCode string
	Source    *State
	Target    *State
	Cause     error
}

// Error implements error.
func (e *GuardValidationError) Error() string {
	msg := fmt.Sprintf("guard %s denied transformation from %s to %s with code %s",
		e.Guard, stateLabel(e.Source), stateLabel(e.Target), e.ErrorCode)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the denial cause, if any.
func (e *GuardValidationError) Unwrap() error {
	return e.Cause
}

func stateLabel(s *State) string {
	if s == nil {
		return "<nil>"
	}
	return s.String()
}

// DispatchErrorKind classifies transformer dispatch failures.
type DispatchErrorKind string

const (
	// DispatchNoTransformer means no transformer was registered for the
	// identifier at all. A configuration gap, fatal to the attempt.
	DispatchNoTransformer DispatchErrorKind = "no_transformer_registered"

	// DispatchUnsupportedRequest means transformers were registered but
	// none passed its capability check for this request.
	DispatchUnsupportedRequest DispatchErrorKind = "unsupported_request"
)

// DispatchError is raised when transformer resolution fails. For
// DispatchUnsupportedRequest the Cause is the first registered candidate's
// own capability failure, preserved as the representative diagnostic.
type DispatchError struct {
	Kind       DispatchErrorKind
	Identifier string
	Cause      error
}

// Error implements error.
func (e *DispatchError) Error() string {
	switch e.Kind {
	case DispatchNoTransformer:
		return fmt.Sprintf("no transformer registered for %s", e.Identifier)
	case DispatchUnsupportedRequest:
		return fmt.Sprintf("no transformer supports request for %s: %v", e.Identifier, e.Cause)
	default:
		return fmt.Sprintf("transformer dispatch failed for %s: %v", e.Identifier, e.Cause)
	}
}

// Unwrap returns the underlying cause, if any.
func (e *DispatchError) Unwrap() error {
	return e.Cause
}
