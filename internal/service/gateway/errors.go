package gateway

import (
	"errors"
	"fmt"
)

// ErrorKind classifies gateway failures at the HTTP boundary.
type ErrorKind string

const (
	KindNone           ErrorKind = ""
	KindInvalidInput   ErrorKind = "InvalidInput"
	KindUpstreamError  ErrorKind = "UpstreamError"
	KindTransportError ErrorKind = "TransportError"
)

// ErrInvalidInput reports a missing or non-text turn message.
var ErrInvalidInput = errors.New("message is required")

// ErrResponseTooLarge reports a backend body over the relay size limit.
var ErrResponseTooLarge = errors.New("backend response too large")

// UpstreamError carries a non-success backend response for diagnostics.
type UpstreamError struct {
	Status int
	Body   string
	// Err is an optional cause, e.g. ErrResponseTooLarge.
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("backend error: %d - %s", e.Status, e.Body)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// TransportError wraps a failure to reach the backend at all.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("backend unreachable: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Kind maps err onto the gateway error taxonomy. Unknown errors are treated
// as transport failures.
func Kind(err error) ErrorKind {
	if err == nil {
		return KindNone
	}
	if errors.Is(err, ErrInvalidInput) {
		return KindInvalidInput
	}
	var upstream *UpstreamError
	if errors.As(err, &upstream) {
		return KindUpstreamError
	}
	return KindTransportError
}
