// Package apperr classifies failures of external calls so every call site
// can decide what to show the user instead of surfacing a generic crash.
package apperr

import (
	"errors"
	"fmt"
)

// Kind is the class of a failure.
type Kind string

const (
	// Network covers transport failures, timeouts, rate limits and 5xx responses.
	Network Kind = "NETWORK"
	// Auth covers rejected or missing credentials (401/403, missing API key).
	Auth Kind = "AUTH"
	// Malformed covers upstream bodies that cannot be decoded or lack expected fields.
	Malformed Kind = "MALFORMED"
	// Input covers invalid user input detected locally.
	Input Kind = "INPUT"
)

// Error is a classified error. Op names the failing operation, e.g. "news.newsapi".
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s error", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error with the same Kind, so errors.Is(err, &Error{Kind: Auth}) works.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Op == "" || t.Op == e.Op)
}

// New builds a classified error.
func New(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// Newf builds a classified error from a format string.
func Newf(kind Kind, op, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: op, Err: fmt.Errorf(format, args...)}
}

// KindOf returns the Kind of the first classified error in err's chain.
// Unclassified errors are reported as Network: they come from the transport.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Network
}

// FromStatus maps an HTTP status code to a Kind.
func FromStatus(status int) Kind {
	switch {
	case status == 401 || status == 403:
		return Auth
	case status == 400 || status == 404 || status == 422:
		return Input
	default:
		return Network
	}
}

// UserMessage is the inline message shown in the UI for a failed interaction.
func UserMessage(err error) string {
	switch KindOf(err) {
	case Auth:
		return "The upstream service rejected our credentials. Check the configured API keys."
	case Malformed:
		return "The upstream service returned an unexpected response. Please try again later."
	case Input:
		return "The request could not be processed: " + rootMessage(err)
	default:
		return "The upstream service could not be reached. Please try again later."
	}
}

func rootMessage(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Err != nil {
		return e.Err.Error()
	}
	return err.Error()
}
