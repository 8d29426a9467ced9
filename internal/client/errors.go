package client

import (
	"errors"
	"fmt"
)

// HTTPError means the backend answered, but with a non-2xx status or an
// error field in the body. Message is the backend's text and may be empty.
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend returned %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("backend returned %d", e.Status)
}

// TransportError means the exchange never completed: dial, timeout, body
// read, or a success body that could not be decoded.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string { return e.Op + ": " + e.Err.Error() }

func (e *TransportError) Unwrap() error { return e.Err }

// IsTransport reports whether err is a transport fault.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// ServerMessage returns the backend-provided message of an HTTP error. ok is
// false for transport faults and for HTTP errors without a message.
func ServerMessage(err error) (msg string, ok bool) {
	var he *HTTPError
	if !errors.As(err, &he) || he.Message == "" {
		return "", false
	}
	return he.Message, true
}
