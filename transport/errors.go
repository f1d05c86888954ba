package transport

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/meysamhadeli/zendocs/report"
)

// ErrorKind classifies a failed transport call.
type ErrorKind int

const (
	Timeout ErrorKind = iota + 1
	NetworkUnreachable
	ServerRejected
)

var (
	ErrTimeout            = errors.New("request timed out")
	ErrNetworkUnreachable = errors.New("service unreachable")
	ErrServerRejected     = errors.New("service rejected the request")
)

func (k ErrorKind) String() string {
	switch k {
	case Timeout:
		return "timeout"
	case NetworkUnreachable:
		return "network_unreachable"
	case ServerRejected:
		return "server_rejected"
	default:
		return "unknown"
	}
}

func (k ErrorKind) sentinel() error {
	switch k {
	case Timeout:
		return ErrTimeout
	case NetworkUnreachable:
		return ErrNetworkUnreachable
	case ServerRejected:
		return ErrServerRejected
	default:
		return nil
	}
}

// TransportError is a failure to obtain a response from the service.
// StatusCode is only set for ServerRejected.
type TransportError struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
	Err        error
}

func (e *TransportError) Error() string {
	switch {
	case e.Kind == ServerRejected && e.Message != "":
		return fmt.Sprintf("%v (status %d): %s", e.Kind.sentinel(), e.StatusCode, e.Message)
	case e.Kind == ServerRejected:
		return fmt.Sprintf("%v (status %d)", e.Kind.sentinel(), e.StatusCode)
	case e.Message != "":
		return fmt.Sprintf("%v: %s", e.Kind.sentinel(), e.Message)
	case e.Err != nil:
		return fmt.Sprintf("%v: %v", e.Kind.sentinel(), e.Err)
	default:
		return e.Kind.sentinel().Error()
	}
}

func (e *TransportError) Unwrap() error { return e.Err }

// Is matches the package sentinel for the error kind.
func (e *TransportError) Is(target error) bool {
	return target != nil && target == e.Kind.sentinel()
}

// Classify maps an arbitrary transport failure onto the error taxonomy.
// TransportError and report.IngestError values are returned unchanged.
func Classify(err error) error {
	if err == nil {
		return nil
	}

	var transportErr *TransportError
	if errors.As(err, &transportErr) {
		return transportErr
	}
	var ingestErr *report.IngestError
	if errors.As(err, &ingestErr) {
		return ingestErr
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &TransportError{Kind: Timeout, Err: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &TransportError{Kind: Timeout, Err: err}
	}
	if errors.Is(err, context.Canceled) {
		return &TransportError{Kind: NetworkUnreachable, Message: "request canceled", Err: err}
	}

	return &TransportError{Kind: NetworkUnreachable, Err: err}
}
