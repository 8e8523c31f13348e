package http

import (
	"time"

	"o365-calendar/internal/schedule"
	"o365-calendar/pkg/datemath"
	"o365-calendar/pkg/log"
)

type handler struct {
	l        log.Logger
	uc       schedule.UseCase
	store    *schedule.Store
	dateMath *datemath.Parser
	now      func() time.Time
}

// New creates a new HTTP handler for the schedule domain. dateMath resolves
// window and time expressions; it falls back to UTC when nil.
func New(l log.Logger, uc schedule.UseCase, store *schedule.Store, dateMath *datemath.Parser) *handler {
	if dateMath == nil {
		dateMath, _ = datemath.NewParser("UTC")
	}
	return &handler{
		l:        l,
		uc:       uc,
		store:    store,
		dateMath: dateMath,
		now:      time.Now,
	}
}
