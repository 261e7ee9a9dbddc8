// Package apperr is the error taxonomy shared by the service layer and the
// HTTP handlers.  Services return *Error values; handlers turn them into a
// status code and a JSON body with an "error" field.
package apperr

import (
	"errors"
	"net/http"
)

// Kind classifies a failure by how it should be reported to a client.
type Kind int

const (
	KindValidation      Kind = iota + 1 // malformed or missing input
	KindConflict                        // uniqueness violation
	KindAuth                            // bad credentials or token
	KindNotFound                        // missing entity
	KindStorage                         // persistence failure
	KindUpstreamAuth                    // upstream token exchange failed
	KindUpstreamRequest                 // upstream rejected the request
	KindUpstream                        // upstream unreachable or failing
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindAuth:
		return "auth"
	case KindNotFound:
		return "not_found"
	case KindStorage:
		return "storage"
	case KindUpstreamAuth:
		return "upstream_auth"
	case KindUpstreamRequest:
		return "upstream_request"
	case KindUpstream:
		return "upstream"
	}
	return "unknown"
}

// Error is a classified failure.  Msg is safe to show to clients; Err keeps
// the underlying cause for logs and errors.Is.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

func Validation(msg string) *Error { return &Error{Kind: KindValidation, Msg: msg} }
func Conflict(msg string) *Error   { return &Error{Kind: KindConflict, Msg: msg} }
func Auth(msg string) *Error       { return &Error{Kind: KindAuth, Msg: msg} }
func NotFound(msg string) *Error   { return &Error{Kind: KindNotFound, Msg: msg} }

func Storage(msg string, err error) *Error {
	return &Error{Kind: KindStorage, Msg: msg, Err: err}
}

func UpstreamAuth(msg string, err error) *Error {
	return &Error{Kind: KindUpstreamAuth, Msg: msg, Err: err}
}

func UpstreamRequest(msg string) *Error {
	return &Error{Kind: KindUpstreamRequest, Msg: msg}
}

func Upstream(msg string, err error) *Error {
	return &Error{Kind: KindUpstream, Msg: msg, Err: err}
}

// KindOf returns the Kind of the first *Error in err's chain, or 0.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// Is reports whether err carries the given Kind.
func Is(err error, k Kind) bool { return KindOf(err) == k }

// Status maps err to an HTTP status code.  Unclassified errors are 500.
func Status(err error) int {
	switch KindOf(err) {
	case KindValidation, KindConflict, KindUpstreamRequest:
		return http.StatusBadRequest
	case KindAuth:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// Message returns the client-safe message for err.  Unclassified errors get
// a generic message so driver or transport text never leaks.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Msg
	}
	return "internal server error"
}
