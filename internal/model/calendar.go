package model

import (
	"o365-calendar/pkg/outlook"
)

// Calendar is one remote calendar plus its locally cached events. The
// event list is a cache, not the source of truth.
type Calendar struct {
	payload outlook.Payload
	Events  []*Event
}

// NewCalendar wraps a server payload. Both identity and name are required.
func NewCalendar(p outlook.Payload) (*Calendar, error) {
	if _, ok := p.ID(); !ok {
		return nil, outlook.ErrMissingIdentity
	}
	if p.String("name", "Name") == "" {
		return nil, ErrMissingName
	}
	return &Calendar{payload: p}, nil
}

func (c *Calendar) ID() string {
	id, _ := c.payload.ID()
	return id
}

func (c *Calendar) Name() string {
	return c.payload.String("name", "Name")
}

// Payload returns the raw server object.
func (c *Calendar) Payload() outlook.Payload {
	return c.payload
}

// Event finds a cached event by identity.
func (c *Calendar) Event(id string) (*Event, bool) {
	if id == "" {
		return nil, false
	}
	for _, e := range c.Events {
		if e.ID() == id {
			return e, true
		}
	}
	return nil, false
}

// NewEvent starts an unsaved event associated with this calendar.
func (c *Calendar) NewEvent() *Event {
	return NewLocalEvent(c.ID())
}
