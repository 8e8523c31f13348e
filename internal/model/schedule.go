package model

// Schedule is the root container: the calendars of one mailbox.
type Schedule struct {
	Calendars []*Calendar
}

// NewSchedule returns an empty schedule, before the first fetch.
func NewSchedule() *Schedule {
	return &Schedule{}
}

// Calendar finds a cached calendar by identity.
func (s *Schedule) Calendar(id string) (*Calendar, bool) {
	for _, c := range s.Calendars {
		if c.ID() == id {
			return c, true
		}
	}
	return nil, false
}

// Event finds a cached event by identity across every calendar.
func (s *Schedule) Event(id string) (*Event, bool) {
	for _, c := range s.Calendars {
		if e, ok := c.Event(id); ok {
			return e, true
		}
	}
	return nil, false
}
