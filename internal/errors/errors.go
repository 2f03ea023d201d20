// Package errors defines custom error types for better error handling and debugging.
// StreamError provides context-aware error reporting with type classification.
package errors

import (
	"errors"
	"fmt"
)

// As delegates to the standard library so callers only import this package.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// StreamError represents errors that occur during stream resolution
type StreamError struct {
	Type    string
	Message string
	Cause   error
}

func (e *StreamError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *StreamError) Unwrap() error {
	return e.Cause
}

// Error type constants
const (
	ErrorTypeProviderUnavailable  = "PROVIDER_UNAVAILABLE"
	ErrorTypeNoStreamsFound       = "NO_STREAMS_FOUND"
	ErrorTypeRelayTransformFailed = "RELAY_TRANSFORM_FAILED"
	ErrorTypeMalformedConfigToken = "MALFORMED_CONFIG_TOKEN"
	ErrorTypeUnknownContentType   = "UNKNOWN_CONTENT_TYPE"
	ErrorTypeTimeout              = "TIMEOUT"
)

// NewStreamError creates a new StreamError
func NewStreamError(errorType, message string, cause error) *StreamError {
	return &StreamError{
		Type:    errorType,
		Message: message,
		Cause:   cause,
	}
}

// NewProviderUnavailableError marks a single provider failure; recovered
// locally and never surfaced to the caller.
func NewProviderUnavailableError(provider string, cause error) *StreamError {
	return NewStreamError(ErrorTypeProviderUnavailable, fmt.Sprintf("provider %s unavailable", provider), cause)
}

// NewNoStreamsFoundError indicates the merged result for an identifier is empty.
func NewNoStreamsFoundError(id string) *StreamError {
	return NewStreamError(ErrorTypeNoStreamsFound, fmt.Sprintf("no streams found for %s", id), nil)
}

// NewUnknownContentTypeError indicates an identifier outside the supported set.
func NewUnknownContentTypeError(id string) *StreamError {
	return NewStreamError(ErrorTypeUnknownContentType, fmt.Sprintf("unsupported content id: %s", id), nil)
}

// NewRelayTransformError indicates the MFP relay call could not be completed
// or parsed; the candidate stream is dropped.
func NewRelayTransformError(message string, cause error) *StreamError {
	return NewStreamError(ErrorTypeRelayTransformFailed, message, cause)
}

// NewTimeoutError creates a timeout error
func NewTimeoutError(operation string) *StreamError {
	return NewStreamError(ErrorTypeTimeout, fmt.Sprintf("operation timeout: %s", operation), nil)
}
