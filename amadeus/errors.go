package amadeus

import (
	"errors"
	"fmt"
)

// Kind classifies a failure so callers can match on it without
// depending on any concrete upstream error type.
type Kind int

const (
	// KindInternal is any unexpected failure not covered below.
	KindInternal Kind = iota
	// KindInvalidParams is a malformed or missing caller-supplied argument,
	// detected before any network call.
	KindInvalidParams
	// KindUpstreamUnavailable is a network/transport failure or timeout
	// reaching the upstream API.
	KindUpstreamUnavailable
	// KindUpstreamRejected means the upstream returned a non-success status.
	KindUpstreamRejected
	// KindUpstreamEmpty means the upstream returned an empty body.
	KindUpstreamEmpty
)

func (k Kind) String() string {
	switch k {
	case KindInvalidParams:
		return "invalid_params"
	case KindUpstreamUnavailable:
		return "upstream_unavailable"
	case KindUpstreamRejected:
		return "upstream_rejected"
	case KindUpstreamEmpty:
		return "upstream_empty"
	default:
		return "internal_error"
	}
}

// Error is the only error type that leaves this package.
type Error struct {
	Kind       Kind
	Message    string
	StatusCode int
	Body       string
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: %s (status %d)", e.Kind, e.Message, e.StatusCode)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// InvalidParamsf builds a validation error naming the offending field.
func InvalidParamsf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindInvalidParams, Message: fmt.Sprintf(format, args...)}
}

// Internalf wraps an unexpected failure. The message is carried forward,
// never a stack trace.
func Internalf(err error, format string, args ...interface{}) *Error {
	return &Error{Kind: KindInternal, Message: fmt.Sprintf(format, args...), Err: err}
}

// KindOf extracts the Kind from err, defaulting to KindInternal.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindInternal
}
