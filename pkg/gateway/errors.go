package gateway

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a gateway failure.
type Kind int

// Failure kinds. The zero Kind means success.
const (
	KindValidation Kind = iota + 1
	KindConfiguration
	KindClientConstruction
	KindActionNotFound
	KindActionInvocation
	KindTimeout
)

var kindNames = map[Kind]string{
	KindValidation:         "validation",
	KindConfiguration:      "configuration",
	KindClientConstruction: "client_construction",
	KindActionNotFound:     "action_not_found",
	KindActionInvocation:   "action_invocation",
	KindTimeout:            "timeout",
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return "none"
}

// HTTPStatus maps a kind onto the status code returned by the HTTP boundary.
func (k Kind) HTTPStatus() int {
	switch k {
	case 0:
		return http.StatusOK
	case KindValidation:
		return http.StatusBadRequest
	case KindActionNotFound:
		return http.StatusNotFound
	case KindTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// Error is a classified failure. Message is what callers see.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the Kind of err, or KindActionInvocation when err is not a
// gateway error.
func KindOf(err error) Kind {
	if err == nil {
		return 0
	}
	var ge *Error
	if errors.As(err, &ge) {
		return ge.Kind
	}
	return KindActionInvocation
}

func newError(kind Kind, err error, format string, a ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, a...), Err: err}
}

type reasoner interface {
	Reason() string
}

// panicError carries a value recovered from a panicking action.
type panicError struct {
	value any
}

func (p *panicError) Error() string { return fmt.Sprintf("%v", p.value) }

// errorDetails picks the most specific message for err: a structured reason
// when one is present, else the error text, else a Go-syntax rendering.
func errorDetails(err error) string {
	var r reasoner
	if errors.As(err, &r) {
		if reason := r.Reason(); reason != "" {
			return reason
		}
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return fmt.Sprintf("%#v", err)
}
