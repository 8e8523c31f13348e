package outlook

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthenticated = errors.New("no usable authentication")
	ErrUnknownAuthMode = errors.New("unknown authentication mode")
	ErrNoEmailAddress  = errors.New("contact has no email address")
	ErrMissingIdentity = errors.New("payload has no identity")
)

// StatusError reports a response with a client or server error status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("outlook API error %d: %s", e.StatusCode, e.Body)
}
