package schedule

import (
	"errors"
	"fmt"
)

// Kind classifies a failure.
type Kind int

const (
	KindUnknown Kind = iota
	// KindPrecondition: missing auth, target calendar or identity.
	KindPrecondition
	// KindTransport: network failure or a status above 399.
	KindTransport
	// KindItem: one remote item could not be reconciled.
	KindItem
	// KindNormalization: a field value could not be normalized.
	KindNormalization
)

func (k Kind) String() string {
	switch k {
	case KindPrecondition:
		return "precondition"
	case KindTransport:
		return "transport"
	case KindItem:
		return "item"
	case KindNormalization:
		return "normalization"
	default:
		return "unknown"
	}
}

// Error is the error type returned by the use case.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s failure: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Domain-specific errors for the schedule package.
var (
	ErrUnauthenticated  = errors.New("no valid authentication and no fallback credential")
	ErrNoCalendar       = errors.New("no target calendar")
	ErrNoIdentity       = errors.New("event has no identity")
	ErrDeleted          = errors.New("event is deleted")
	ErrNilEvent         = errors.New("event is nil")
	ErrCalendarNotFound = errors.New("calendar not found")
	ErrEventNotFound    = errors.New("event not found")
)
