package services

import (
	"fmt"
	"strings"
)

// ValidationError carries the ordered, field-scoped messages produced by
// a validation schema. It maps to HTTP 400 and is never a server fault.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, "; ")
}

// PersistenceError wraps an unexpected store failure. Handlers log it
// with full detail and surface only a generic message to the caller.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure: %v", e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// UpstreamError wraps a remote fetch failure after retries exhausted.
// Its underlying message is surfaced to the caller as-is.
type UpstreamError struct {
	Err error
}

func (e *UpstreamError) Error() string { return e.Err.Error() }

func (e *UpstreamError) Unwrap() error { return e.Err }

// EventPublisher publishes catalog events to the message broker.
// Implementations must be safe for concurrent use; a nil publisher
// disables event publishing.
type EventPublisher interface {
	Publish(event string, payload map[string]interface{}) error
}
