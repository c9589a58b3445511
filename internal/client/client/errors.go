package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/eatsbalance/internal/client/models"
)

var (
	ErrUnavailable       = errors.New("server unavailable")
	ErrRejected          = errors.New("server rejected request")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrMalformedResponse = errors.New("malformed response")
)

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Op         string
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: %s: %d %s", e.Op, ErrRejected, e.StatusCode, e.Message)
}

func (e *StatusError) Is(target error) bool {
	switch target {
	case ErrRejected:
		return true
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
	}
	return false
}

// ErrorKind is the coarse failure class shown to tests and metrics.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindNetworkUnreachable
	KindServerRejected
	KindMalformedResponse
	KindValidationFailed
)

func (k ErrorKind) String() string {
	switch k {
	case KindNetworkUnreachable:
		return "NetworkUnreachable"
	case KindServerRejected:
		return "ServerRejected"
	case KindMalformedResponse:
		return "MalformedResponse"
	case KindValidationFailed:
		return "ValidationFailed"
	default:
		return "Unknown"
	}
}

// KindOf classifies err. A caller deadline counts as a network failure, a
// plain cancellation does not.
func KindOf(err error) ErrorKind {
	var se *StatusError
	switch {
	case err == nil:
		return KindUnknown
	case errors.Is(err, models.ErrValidation):
		return KindValidationFailed
	case errors.As(err, &se):
		return KindServerRejected
	case errors.Is(err, ErrMalformedResponse):
		return KindMalformedResponse
	case errors.Is(err, ErrUnavailable), errors.Is(err, context.DeadlineExceeded):
		return KindNetworkUnreachable
	default:
		return KindUnknown
	}
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode
	}
	return 0
}

// outcome is the metrics label for a finished request.
func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	}
	switch KindOf(err) {
	case KindNetworkUnreachable:
		return "unavailable"
	case KindServerRejected:
		return "rejected"
	case KindMalformedResponse:
		return "malformed"
	default:
		return "error"
	}
}
