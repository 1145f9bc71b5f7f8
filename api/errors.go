package api

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// AuthError reports a rejected login or an expired session token. The router
// signals this either with a 401/403 status or with a 200 carrying a non-zero
// error code in the body.
type AuthError struct {
	Code    int
	Message string
}

func (e *AuthError) Error() string {
	switch {
	case e.Code != 0:
		return fmt.Sprintf("authentication rejected (code %d): %s", e.Code, e.Message)
	case e.Message != "":
		return "authentication rejected: " + e.Message
	default:
		return "authentication rejected"
	}
}

// TransportError wraps a network-level failure reaching the router.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return "router unreachable: " + e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Timeout reports whether the failure was a timeout rather than, say, a
// refused connection. Timeouts must not invalidate the session.
func (e *TransportError) Timeout() bool {
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return true
	}
	var nerr net.Error
	if errors.As(e.Err, &nerr) {
		return nerr.Timeout()
	}
	return false
}

// ProtocolError reports an unexpected status code or an unparseable body.
type ProtocolError struct {
	StatusCode int
	Err        error
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("protocol error (status %d): %s", e.StatusCode, e.Err)
}

func (e *ProtocolError) Unwrap() error {
	return e.Err
}
