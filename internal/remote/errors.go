package remote

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

var (
	// ErrNotFound is returned for a 404 from the store
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized is returned for a 401 or 403 from the store
	ErrUnauthorized = errors.New("unauthorized")
)

// StatusError is a non-success HTTP response
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("remote store returned %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("remote store returned %d", e.StatusCode)
}

// Unwrap maps well-known statuses onto the sentinel errors
func (e *StatusError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	}
	return nil
}

// ErrorCode represents remote-store failure categories.
type ErrorCode int

const (
	ErrUnreachable ErrorCode = iota
	ErrAuth
	ErrMissing
	ErrRejected
	ErrTimeout
	ErrServer
)

// RemoteError is a structured remote-store error with a user-facing hint.
type RemoteError struct {
	Code    ErrorCode
	Message string
	Hint    string
}

// Error implements the error interface.
func (e *RemoteError) Error() string {
	if e.Hint != "" {
		return e.Message + ". " + e.Hint
	}
	return e.Message
}

// Classify maps transport and status errors to a RemoteError.
func Classify(err error) *RemoteError {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &RemoteError{
			Code:    ErrTimeout,
			Message: "Request timed out",
			Hint:    "Raise remote.timeout in config.yaml or check the store",
		}
	}

	if errors.Is(err, ErrUnauthorized) {
		return &RemoteError{
			Code:    ErrAuth,
			Message: "Not authorized",
			Hint:    "Set DEALBOARD_TOKEN or remote.token in config.yaml",
		}
	}

	if errors.Is(err, ErrNotFound) {
		return &RemoteError{
			Code:    ErrMissing,
			Message: "Not found",
			Hint:    "It may have been deleted; refresh the board",
		}
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		if statusErr.StatusCode >= 400 && statusErr.StatusCode < 500 {
			return &RemoteError{
				Code:    ErrRejected,
				Message: "Rejected by store: " + statusErr.Message,
			}
		}
		return &RemoteError{
			Code:    ErrServer,
			Message: "Store error",
			Hint:    "Retry shortly",
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &RemoteError{
			Code:    ErrTimeout,
			Message: "Request timed out",
			Hint:    "Raise remote.timeout in config.yaml or check the store",
		}
	}

	return &RemoteError{
		Code:    ErrUnreachable,
		Message: "Store unreachable",
		Hint:    "Start it: dealboard-daemon, or check remote.base_url",
	}
}
