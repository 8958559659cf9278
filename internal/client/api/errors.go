package api

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable means the request never produced an HTTP response
	// (connection refused, DNS failure, timeout).
	ErrUnavailable = errors.New("server unavailable")

	// ErrUnauthorized means the backend rejected the credential token.
	ErrUnauthorized = errors.New("unauthorized")
)

// Kind classifies a failed backend call.
type Kind int

const (
	// KindNetwork is a transport-level failure with no HTTP response.
	KindNetwork Kind = iota + 1
	// KindValidation is a 4xx other than 401; the backend message is
	// user-facing.
	KindValidation
	// KindUnauthorized is a 401; handled globally, but still reported to
	// the caller of the rejected request.
	KindUnauthorized
	// KindServer is a 5xx; the backend message is not trusted to be
	// user-facing.
	KindServer
)

// Error is a failed backend call. StatusCode is zero for network failures.
// Message holds the backend-supplied "message" field when one was present.
type Error struct {
	Kind       Kind
	StatusCode int
	Message    string
	Err        error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindNetwork:
		return fmt.Sprintf("network failure: %v", e.Err)
	case KindUnauthorized:
		return fmt.Sprintf("unauthorized (status %d)", e.StatusCode)
	default:
		if e.Message != "" {
			return fmt.Sprintf("backend error (status %d): %s", e.StatusCode, e.Message)
		}
		return fmt.Sprintf("backend error (status %d)", e.StatusCode)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Is lets callers match the taxonomy with errors.Is against the sentinels.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrUnavailable:
		return e.Kind == KindNetwork
	case ErrUnauthorized:
		return e.Kind == KindUnauthorized
	}
	return false
}

// UserMessage extracts a message safe to show to the user from err. Only
// backend messages attached to validation and authorization failures are
// trusted; everything else yields the empty string so callers fall back to
// their own wording.
func UserMessage(err error) string {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return ""
	}
	if apiErr.Kind == KindValidation || apiErr.Kind == KindUnauthorized {
		return apiErr.Message
	}
	return ""
}
