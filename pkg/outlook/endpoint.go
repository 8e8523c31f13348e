package outlook

import (
	"fmt"
	"strings"
)

// Operation is a logical service call with one canonical legacy URL template.
type Operation int

const (
	OpListCalendars Operation = iota + 1
	OpListEvents
	OpCreateEvent
	OpUpdateEvent
	OpDeleteEvent
	OpGetContact
	OpListGroupContacts
)

// Placeholders are positional fmt verbs. Identifiers must already be path-escaped.
var templates = map[Operation]string{
	OpListCalendars:     legacyBase + "/calendars",
	OpListEvents:        legacyBase + "/calendars/%s/calendarView?startDateTime=%s&endDateTime=%s&$top=%d",
	OpCreateEvent:       legacyBase + "/calendars/%s/events",
	OpUpdateEvent:       legacyBase + "/events/%s",
	OpDeleteEvent:       legacyBase + "/events/%s",
	OpGetContact:        legacyBase + "/contacts/%s",
	OpListGroupContacts: legacyBase + "/contactfolders/%s/contacts",
}

func (op Operation) String() string {
	switch op {
	case OpListCalendars:
		return "list-calendars"
	case OpListEvents:
		return "list-events"
	case OpCreateEvent:
		return "create-event"
	case OpUpdateEvent:
		return "update-event"
	case OpDeleteEvent:
		return "delete-event"
	case OpGetContact:
		return "get-contact"
	case OpListGroupContacts:
		return "list-group-contacts"
	default:
		return fmt.Sprintf("operation(%d)", int(op))
	}
}

// Template returns the legacy-form URL template, or "" for an unknown operation.
func (op Operation) Template() string {
	return templates[op]
}

// AuthContext is the read-only view of a connection the resolver needs.
type AuthContext interface {
	IsAuthValid() bool
	ActiveMode() (AuthMode, bool)
}

// Resolve returns the URL template for op under the given auth context.
// The token family is used only when the context is valid and OAuth is the
// active mode; everything else, including a nil context, gets the legacy form.
// Missing auth is caught at authorization time, not here.
func Resolve(op Operation, ac AuthContext) string {
	tmpl := op.Template()
	if ac == nil || !ac.IsAuthValid() {
		return tmpl
	}
	if mode, ok := ac.ActiveMode(); ok && mode == ModeOAuthToken {
		return Rewrite(tmpl)
	}
	return tmpl
}

// Rewrite substitutes the legacy host-and-path prefix with the graph one.
// It is a literal substring replacement and is idempotent.
func Rewrite(tmpl string) string {
	return strings.ReplaceAll(tmpl, legacyHostPath, graphHostPath)
}

// URL resolves op and fills its placeholders.
func URL(op Operation, ac AuthContext, args ...any) string {
	return fmt.Sprintf(Resolve(op, ac), args...)
}
