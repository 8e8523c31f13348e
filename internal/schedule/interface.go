package schedule

import (
	"context"
	"net/http"

	"o365-calendar/internal/model"
	"o365-calendar/pkg/outlook"
)

// UseCase drives the calendar model against the remote service. Callers own
// the Schedule and must serialize calls that touch it.
type UseCase interface {
	// RefreshCalendars fetches the calendar list and reconciles it into s.
	RefreshCalendars(ctx context.Context, s *model.Schedule) (RefreshOutput, error)
	// RefreshEvents fetches the events of cal inside w and reconciles them
	// into cal.Events.
	RefreshEvents(ctx context.Context, cal *model.Calendar, w EventWindow) (RefreshOutput, error)
	// RefreshAll refreshes the calendars, then the events of each one.
	RefreshAll(ctx context.Context, s *model.Schedule, w EventWindow) (RefreshOutput, error)

	// ApplyInput runs every field set on in through the event's setters.
	ApplyInput(ctx context.Context, ev *model.Event, in EventInput) error

	// CreateEvent persists ev in calendarID, or in ev's own calendar when
	// calendarID is empty. The returned event replaces ev.
	CreateEvent(ctx context.Context, ev *model.Event, calendarID string) (*model.Event, error)
	// UpdateEvent sends ev's payload and returns the updated event.
	UpdateEvent(ctx context.Context, ev *model.Event) (*model.Event, error)
	// DeleteEvent deletes ev on the service and marks the handle deleted.
	DeleteEvent(ctx context.Context, ev *model.Event) (*outlook.Response, error)
}

// Transport is the HTTP collaborator, carrying its own auth and TLS settings.
type Transport interface {
	outlook.AuthContext
	HasCredential() bool
	Get(ctx context.Context, url string) ([]outlook.Payload, error)
	Post(ctx context.Context, url string, body []byte, headers http.Header) (*outlook.Response, error)
	Patch(ctx context.Context, url string, body []byte, headers http.Header) (*outlook.Response, error)
	Delete(ctx context.Context, url string, headers http.Header) (*outlook.Response, error)
}
