package model

import (
	"context"
	"fmt"
	"strings"
	"time"

	"o365-calendar/internal/normalize"
	"o365-calendar/pkg/outlook"
)

// EventState tracks where an event handle is in its lifecycle.
type EventState int

const (
	// EventUnsaved is a locally built event with no identity yet.
	EventUnsaved EventState = iota
	// EventCreated is a persisted event: returned by create, or fetched.
	EventCreated
	EventUpdated
	// EventDeleted is terminal. The handle stays readable and can be created
	// again elsewhere, but is never sent as an update or delete.
	EventDeleted
)

func (s EventState) String() string {
	switch s {
	case EventUnsaved:
		return "unsaved"
	case EventCreated:
		return "created"
	case EventUpdated:
		return "updated"
	case EventDeleted:
		return "deleted"
	default:
		return fmt.Sprintf("EventState(%d)", int(s))
	}
}

// Event wraps a raw event payload. Setters normalize their input and write
// into the payload immediately. The calendar reference is a lookup key only.
type Event struct {
	payload       outlook.Payload
	calendarID    string
	startTimeZone string
	endTimeZone   string
	state         EventState
}

// NewLocalEvent starts an unsaved event. calendarID may be empty, in which
// case create needs an explicit target.
func NewLocalEvent(calendarID string) *Event {
	zone := normalize.LocalZone()
	return &Event{
		payload:       outlook.Payload{},
		calendarID:    calendarID,
		startTimeZone: zone,
		endTimeZone:   zone,
		state:         EventUnsaved,
	}
}

// NewEvent wraps a persisted server payload, which must carry an identity
// and a subject.
func NewEvent(p outlook.Payload, calendarID string) (*Event, error) {
	if _, ok := p.ID(); !ok {
		return nil, outlook.ErrMissingIdentity
	}
	if p.String("subject", "Subject") == "" {
		return nil, ErrMissingSubject
	}
	e := NewLocalEvent(calendarID)
	e.payload = p
	e.state = EventCreated
	return e, nil
}

// WrapEvent wraps a service response to a create or update. Only the
// identity is required.
func WrapEvent(p outlook.Payload, calendarID string) (*Event, error) {
	if _, ok := p.ID(); !ok {
		return nil, outlook.ErrMissingIdentity
	}
	e := NewLocalEvent(calendarID)
	e.payload = p
	e.state = EventCreated
	return e, nil
}

// ID is empty until the event has been created on the service.
func (e *Event) ID() string {
	id, _ := e.payload.ID()
	return id
}

func (e *Event) CalendarID() string { return e.calendarID }
func (e *Event) State() EventState  { return e.state }
func (e *Event) Deleted() bool      { return e.state == EventDeleted }

// Payload returns the live payload. Mutating it bypasses normalization.
func (e *Event) Payload() outlook.Payload { return e.payload }

// Clone returns an independent copy of the handle, payload included.
func (e *Event) Clone() *Event {
	c := *e
	c.payload = e.payload.Clone()
	return &c
}

func (e *Event) MarkUpdated() { e.state = EventUpdated }
func (e *Event) MarkDeleted() { e.state = EventDeleted }

func (e *Event) Subject() string {
	return e.payload.String("subject", "Subject")
}

func (e *Event) SetSubject(subject string) {
	e.payload["subject"] = subject
}

func (e *Event) Body() string {
	for _, key := range []string{"body", "Body"} {
		if m, ok := e.payload.Object(key); ok {
			return outlook.Payload(m).String("content", "Content")
		}
	}
	return ""
}

// SetBody sets the body content. An empty contentType means plain text.
func (e *Event) SetBody(content, contentType string) {
	normalize.Body(e.payload, content, contentType)
}

func (e *Event) StartTimeZone() string { return e.startTimeZone }
func (e *Event) EndTimeZone() string   { return e.endTimeZone }

// SetStart normalizes in under the current start time zone.
func (e *Event) SetStart(in normalize.TimeInput) error {
	v, err := normalize.Time(in, e.startTimeZone)
	if err != nil {
		return err
	}
	e.payload["start"] = v
	return nil
}

// SetEnd normalizes in under the current end time zone.
func (e *Event) SetEnd(in normalize.TimeInput) error {
	v, err := normalize.Time(in, e.endTimeZone)
	if err != nil {
		return err
	}
	e.payload["end"] = v
	return nil
}

// SetStartTimeZone changes the start zone and rewrites it on the existing
// start value. The start time must already be set as a structure.
func (e *Event) SetStartTimeZone(tz string) error {
	e.startTimeZone = tz
	return e.retagZone(tz, "start", "Start")
}

// SetEndTimeZone is SetStartTimeZone for the end time.
func (e *Event) SetEndTimeZone(tz string) error {
	e.endTimeZone = tz
	return e.retagZone(tz, "end", "End")
}

func (e *Event) retagZone(tz, key, legacyKey string) error {
	m, ok := e.payload.Object(key)
	if !ok {
		if _, set := e.payload.Value(key, legacyKey); set {
			return fmt.Errorf("%s: %w: time zone needs a dateTime/timeZone structure", key, ErrBadTime)
		}
		return fmt.Errorf("%s: %w", key, ErrTimeNotSet)
	}
	m["timeZone"] = tz
	return nil
}

// Start reads the start time. Both the {dateTime, timeZone} structure and
// the UTC "...Z" string are accepted.
func (e *Event) Start() (time.Time, error) {
	return parseTime(e.payload, "start", "Start")
}

func (e *Event) End() (time.Time, error) {
	return parseTime(e.payload, "end", "End")
}

// SetAttendees replaces the attendee list. On failure the list is left
// empty rather than partially populated.
func (e *Event) SetAttendees(ctx context.Context, dir normalize.Directory, in normalize.AttendeeInput) error {
	list, err := normalize.Attendees(ctx, dir, in)
	if err != nil {
		e.payload["attendees"] = []any{}
		return err
	}
	e.payload["attendees"] = list
	return nil
}

// Attendees returns the mailboxes on the attendee list, skipping entries
// without an emailAddress structure.
func (e *Event) Attendees() []outlook.EmailAddress {
	v, _ := e.payload.Value("attendees", "Attendees")
	list, _ := v.([]any)
	out := make([]outlook.EmailAddress, 0, len(list))
	for _, item := range list {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		addr := outlook.Payload(entry)
		box, ok := addr.Object("emailAddress")
		if !ok {
			if box, ok = addr.Object("EmailAddress"); !ok {
				continue
			}
		}
		mb := outlook.Payload(box)
		out = append(out, outlook.EmailAddress{
			Address: mb.String("address", "Address"),
			Name:    mb.String("name", "Name"),
		})
	}
	return out
}

// Location returns the location display name.
func (e *Event) Location() string {
	for _, key := range []string{"location", "Location"} {
		if m, ok := e.payload.Object(key); ok {
			return outlook.Payload(m).String("displayName", "DisplayName")
		}
	}
	return ""
}

// SetLocation stores a mapping verbatim, anything else as the display name.
func (e *Event) SetLocation(loc any) {
	normalize.Location(e.payload, loc)
}

func (e *Event) Reminder() bool {
	v, _ := e.payload.Value("isReminderOn", "IsReminderOn")
	on, _ := v.(bool)
	return on
}

func (e *Event) SetReminder(on bool) {
	e.payload["isReminderOn"] = on
}

func (e *Event) Categories() []string {
	v, _ := e.payload.Value("categories", "Categories")
	list, _ := v.([]any)
	out := make([]string, 0, len(list))
	for _, c := range list {
		if s, ok := c.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func (e *Event) SetCategories(cats []string) {
	e.payload["categories"] = normalize.Categories(cats)
}

func parseTime(p outlook.Payload, keys ...string) (time.Time, error) {
	v, ok := p.Value(keys...)
	if !ok || v == nil {
		return time.Time{}, ErrTimeNotSet
	}
	switch t := v.(type) {
	case string:
		s := dropFraction(strings.TrimSuffix(t, "Z"))
		parsed, err := time.ParseInLocation(outlook.TimeFormat, s, time.UTC)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %v", ErrBadTime, err)
		}
		return parsed, nil
	case map[string]any:
		dt, _ := t["dateTime"].(string)
		tz, _ := t["timeZone"].(string)
		parsed, err := time.ParseInLocation(outlook.TimeFormat, dropFraction(dt), zone(tz))
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %v", ErrBadTime, err)
		}
		return parsed, nil
	default:
		return time.Time{}, fmt.Errorf("%w: %T", ErrBadTime, v)
	}
}

// dropFraction strips a fractional-second suffix such as ".0000000".
func dropFraction(s string) string {
	if i := strings.IndexByte(s, '.'); i >= 0 {
		return s[:i]
	}
	return s
}

// zone loads tz as an IANA name. Names the local tz database does not know
// (Windows zone names, most abbreviations) read as UTC.
func zone(tz string) *time.Location {
	if tz == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return time.UTC
	}
	return loc
}
