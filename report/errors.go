package report

import (
	"errors"
	"fmt"
)

// IngestKind classifies a response that violates the expected report shape.
type IngestKind int

const (
	MissingDocumentation IngestKind = iota + 1
	MalformedEntry
	UndecodablePayload
)

var (
	ErrMissingDocumentation = errors.New("response has no documentation field")
	ErrMalformedEntry       = errors.New("response entry has no file name")
	ErrUndecodablePayload   = errors.New("response is not a valid documentation payload")
)

func (k IngestKind) String() string {
	switch k {
	case MissingDocumentation:
		return "missing_documentation"
	case MalformedEntry:
		return "malformed_entry"
	case UndecodablePayload:
		return "undecodable_payload"
	default:
		return "unknown"
	}
}

func (k IngestKind) sentinel() error {
	switch k {
	case MissingDocumentation:
		return ErrMissingDocumentation
	case MalformedEntry:
		return ErrMalformedEntry
	case UndecodablePayload:
		return ErrUndecodablePayload
	default:
		return nil
	}
}

// IngestError reports a reachable service that returned an unusable payload.
type IngestError struct {
	Kind    IngestKind
	Message string
	Err     error
}

// NewIngestError builds an IngestError of the given kind wrapping cause.
func NewIngestError(kind IngestKind, message string, cause error) *IngestError {
	return &IngestError{Kind: kind, Message: message, Err: cause}
}

func (e *IngestError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Kind.sentinel().Error()
	}
	if e.Err != nil {
		return fmt.Sprintf("invalid service response: %s: %v", msg, e.Err)
	}
	return fmt.Sprintf("invalid service response: %s", msg)
}

func (e *IngestError) Unwrap() error { return e.Err }

// Is matches the package sentinel for the error kind.
func (e *IngestError) Is(target error) bool {
	return target != nil && target == e.Kind.sentinel()
}
