package http

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"o365-calendar/internal/model"
	"o365-calendar/internal/normalize"
	"o365-calendar/internal/schedule"
	"o365-calendar/pkg/datemath"
	"o365-calendar/pkg/outlook"
	"o365-calendar/pkg/response"
)

// --- Request DTOs ---

// eventReq carries optional event fields. start and end accept a number
// (seconds since the epoch, UTC), a date expression ("tomorrow",
// "2024-06-01T09:00:00") read in the matching time zone, or a ready
// {dateTime, timeZone} object. attendees accepts a list of entries, a
// single entry, or an email address.
type eventReq struct {
	Subject       *string  `json:"subject"`
	Body          *string  `json:"body"`
	BodyType      string   `json:"body_type" binding:"omitempty,oneof=Text HTML"`
	Start         any      `json:"start"`
	End           any      `json:"end"`
	StartTimeZone string   `json:"start_time_zone"`
	EndTimeZone   string   `json:"end_time_zone"`
	Attendees     any      `json:"attendees"`
	ContactID     string   `json:"contact_id"`
	GroupID       string   `json:"group_id"`
	Location      any      `json:"location"`
	Reminder      *bool    `json:"reminder"`
	Categories    []string `json:"categories"`
}

var (
	errAttendeeSources = errors.New("use only one of attendees, contact_id, group_id")
	errBadTime         = errors.New("start and end must be a number, a date expression or a {dateTime, timeZone} object")
)

func (r eventReq) validate() error {
	sources := 0
	for _, set := range []bool{r.Attendees != nil, r.ContactID != "", r.GroupID != ""} {
		if set {
			sources++
		}
	}
	if sources > 1 {
		return errAttendeeSources
	}
	return nil
}

func (r eventReq) validateCreate() error {
	if r.Subject == nil || strings.TrimSpace(*r.Subject) == "" {
		return errors.New("subject is required")
	}
	if r.Start == nil || r.End == nil {
		return errors.New("start and end are required")
	}
	return r.validate()
}

func (r eventReq) toInput(now time.Time) (schedule.EventInput, error) {
	in := schedule.EventInput{
		Subject:       r.Subject,
		Body:          r.Body,
		BodyType:      r.BodyType,
		StartTimeZone: r.StartTimeZone,
		EndTimeZone:   r.EndTimeZone,
		Location:      r.Location,
		Reminder:      r.Reminder,
		Categories:    r.Categories,
	}

	var err error
	if in.Start, in.StartTimeZone, err = toTimeInput(r.Start, r.StartTimeZone, now); err != nil {
		return in, fmt.Errorf("start: %w", err)
	}
	if in.End, in.EndTimeZone, err = toTimeInput(r.End, r.EndTimeZone, now); err != nil {
		return in, fmt.Errorf("end: %w", err)
	}

	switch {
	case r.ContactID != "":
		in.Attendees = normalize.ContactRef{ID: r.ContactID}
	case r.GroupID != "":
		in.Attendees = normalize.GroupRef{ID: r.GroupID}
	case r.Attendees != nil:
		if in.Attendees, err = normalize.AttendeeFromValue(r.Attendees); err != nil {
			return in, err
		}
	}
	return in, nil
}

// toTimeInput maps a decoded JSON time onto a TimeInput and the zone it is
// expressed in. Epoch values are UTC wall clock.
func toTimeInput(v any, tz string, now time.Time) (normalize.TimeInput, string, error) {
	switch t := v.(type) {
	case nil:
		return nil, tz, nil
	case float64:
		if tz == "" {
			tz = "UTC"
		}
		return normalize.Epoch(t), tz, nil
	case string:
		zone := tz
		if zone == "" {
			zone = "UTC"
		}
		p, err := datemath.NewParser(zone)
		if err != nil {
			// Windows zone names: wall clock is kept, relative forms use UTC.
			p, _ = datemath.NewParser("UTC")
		}
		parsed, err := p.Parse(t, now)
		if err != nil {
			return nil, tz, err
		}
		return normalize.At(parsed), zone, nil
	case map[string]any:
		return normalize.Preformatted{Value: t}, tz, nil
	default:
		return nil, tz, errBadTime
	}
}

type windowReq struct {
	From string `form:"from"`
	To   string `form:"to"`
	Top  int    `form:"top" binding:"omitempty,min=1,max=1000"`
}

func (r windowReq) toWindow(p *datemath.Parser, now time.Time) (schedule.EventWindow, error) {
	rng, err := p.ParseRange(r.From, r.To, now, outlook.DefaultEventWindow*time.Hour)
	if err != nil {
		return schedule.EventWindow{}, err
	}
	return schedule.EventWindow{Start: rng.Start, End: rng.End, Count: r.Top}, nil
}

// --- Response DTOs ---

type calendarResp struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	EventCount int    `json:"event_count"`
}

func newCalendarResp(c *model.Calendar) calendarResp {
	return calendarResp{ID: c.ID(), Name: c.Name(), EventCount: len(c.Events)}
}

type listCalendarsResp struct {
	Calendars []calendarResp `json:"calendars"`
	Count     int            `json:"count"`
}

func newListCalendarsResp(cals []*model.Calendar) listCalendarsResp {
	out := listCalendarsResp{Calendars: make([]calendarResp, 0, len(cals)), Count: len(cals)}
	for _, c := range cals {
		out.Calendars = append(out.Calendars, newCalendarResp(c))
	}
	return out
}

type attendeeResp struct {
	Address string `json:"address"`
	Name    string `json:"name"`
}

type eventResp struct {
	ID            string            `json:"id,omitempty"`
	CalendarID    string            `json:"calendar_id,omitempty"`
	State         string            `json:"state"`
	Subject       string            `json:"subject"`
	Body          string            `json:"body,omitempty"`
	Start         response.DateTime `json:"start"`
	End           response.DateTime `json:"end"`
	StartTimeZone string            `json:"start_time_zone,omitempty"`
	EndTimeZone   string            `json:"end_time_zone,omitempty"`
	Location      string            `json:"location,omitempty"`
	Reminder      bool              `json:"reminder"`
	Categories    []string          `json:"categories"`
	Attendees     []attendeeResp    `json:"attendees"`
}

func newEventResp(e *model.Event) eventResp {
	start, _ := e.Start()
	end, _ := e.End()
	out := eventResp{
		ID:         e.ID(),
		CalendarID: e.CalendarID(),
		State:      e.State().String(),
		Subject:    e.Subject(),
		Body:       e.Body(),
		Start:      response.DateTime(start),
		End:        response.DateTime(end),
		Location:   e.Location(),
		Reminder:   e.Reminder(),
		Categories: e.Categories(),
	}
	if m, ok := e.Payload().Object("start"); ok {
		out.StartTimeZone, _ = m["timeZone"].(string)
	}
	if m, ok := e.Payload().Object("end"); ok {
		out.EndTimeZone, _ = m["timeZone"].(string)
	}
	for _, a := range e.Attendees() {
		out.Attendees = append(out.Attendees, attendeeResp{Address: a.Address, Name: a.Name})
	}
	if out.Attendees == nil {
		out.Attendees = []attendeeResp{}
	}
	return out
}

type listEventsResp struct {
	Events []eventResp `json:"events"`
	Count  int         `json:"count"`
}

func newListEventsResp(events []*model.Event) listEventsResp {
	out := listEventsResp{Events: make([]eventResp, 0, len(events)), Count: len(events)}
	for _, e := range events {
		out.Events = append(out.Events, newEventResp(e))
	}
	return out
}

type skippedResp struct {
	Index  int    `json:"index"`
	ID     string `json:"id,omitempty"`
	Reason string `json:"reason"`
}

type refreshResp struct {
	Replaced int           `json:"replaced"`
	Appended int           `json:"appended"`
	Skipped  []skippedResp `json:"skipped"`
}

func newRefreshResp(o schedule.RefreshOutput) refreshResp {
	out := refreshResp{Replaced: o.Replaced, Appended: o.Appended, Skipped: make([]skippedResp, 0, len(o.Skipped))}
	for _, s := range o.Skipped {
		out.Skipped = append(out.Skipped, skippedResp{Index: s.Index, ID: s.ID, Reason: s.Err.Error()})
	}
	return out
}

type deleteResp struct {
	ID         string `json:"id"`
	StatusCode int    `json:"status_code"`
}

func newDeleteResp(id string, resp *outlook.Response) deleteResp {
	return deleteResp{ID: id, StatusCode: resp.StatusCode}
}
