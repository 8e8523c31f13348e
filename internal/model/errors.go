package model

import "errors"

var (
	ErrMissingName    = errors.New("calendar payload has no name")
	ErrMissingSubject = errors.New("event payload has no subject")
	ErrTimeNotSet     = errors.New("time value not set")
	ErrBadTime        = errors.New("unrecognized time value")
)
