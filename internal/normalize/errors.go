package normalize

import "errors"

var (
	ErrUnsupportedTime     = errors.New("unsupported time input")
	ErrUnsupportedAttendee = errors.New("unsupported attendee input")
	ErrInvalidAddress      = errors.New("email address has no @")
	ErrNoDirectory         = errors.New("no directory to resolve contact or group")
)
