package fault

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind categorizes a request failure. Every kind maps to exactly one HTTP
// status; anything that does not fit a narrower kind is Internal.
type Kind string

const (
	BadRequest         Kind = "bad_request"
	NotFound           Kind = "not_found"
	ServiceUnavailable Kind = "service_unavailable"
	RateLimited        Kind = "rate_limited"
	Internal           Kind = "internal"
)

// Error is the failure value returned by services. Handlers switch on Kind
// to choose a status and send Detail to the caller as-is.
type Error struct {
	Kind   Kind
	Detail string
	cause  error
}

func New(kind Kind, detail string) *Error {
	return &Error{Kind: kind, Detail: detail}
}

func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

// Wrap keeps the cause reachable via errors.Is/As while exposing detail
// text that embeds the cause's message.
func Wrap(kind Kind, err error, detail string) *Error {
	return &Error{Kind: kind, Detail: detail, cause: err}
}

func (e *Error) Error() string {
	if e.cause != nil {
		return string(e.Kind) + ": " + e.Detail + ": " + e.cause.Error()
	}
	return string(e.Kind) + ": " + e.Detail
}

func (e *Error) Unwrap() error { return e.cause }

// KindOf extracts the Kind from err, defaulting to Internal.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return Internal
}

// DetailOf extracts the caller-facing detail string from err.
func DetailOf(err error) string {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Detail
	}
	return err.Error()
}

// Status maps a Kind to its HTTP status code.
func (k Kind) Status() int {
	switch k {
	case BadRequest:
		return http.StatusBadRequest
	case NotFound:
		return http.StatusNotFound
	case ServiceUnavailable:
		return http.StatusServiceUnavailable
	case RateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
