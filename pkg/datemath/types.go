package datemath

import (
	"errors"
	"time"
)

// Range is a half-open time window [Start, End).
type Range struct {
	Start time.Time
	End   time.Time
}

var (
	ErrUnrecognized = errors.New("unrecognized date expression")
	ErrEmptyRange   = errors.New("range end is not after its start")
)
