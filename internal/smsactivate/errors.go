package smsactivate

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failed upstream call.
type ErrorKind int

const (
	// KindUpstream covers ERROR_ sentinels and non-2xx responses.
	KindUpstream ErrorKind = iota
	KindBadParameter
	KindNoActivations
	KindTransport
	KindMalformed
)

func (k ErrorKind) String() string {
	switch k {
	case KindBadParameter:
		return "bad_parameter"
	case KindNoActivations:
		return "no_activations"
	case KindTransport:
		return "transport"
	case KindMalformed:
		return "malformed_response"
	default:
		return "upstream"
	}
}

// ErrInvalidBalance is returned when getBalance does not answer ACCESS_BALANCE:<number>.
var ErrInvalidBalance = errors.New("invalid balance response")

// Error is a classified vendor or transport failure.
type Error struct {
	Kind    ErrorKind
	Message string
	Status  int
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil && e.Message == "" {
		return e.Err.Error()
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
