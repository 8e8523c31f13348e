package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"o365-calendar/internal/model"
	"o365-calendar/internal/schedule"
	"o365-calendar/pkg/outlook"
)

func persisted(t *testing.T, id, calendarID string) *model.Event {
	t.Helper()
	ev, err := model.NewEvent(outlook.Payload{"id": id, "subject": "Standup"}, calendarID)
	if err != nil {
		t.Fatalf("NewEvent: %v", err)
	}
	return ev
}

func TestCreateEvent(t *testing.T) {
	ctx := context.Background()

	t.Run("posts to the event's own calendar", func(t *testing.T) {
		transport := &fakeTransport{
			valid: true, mode: outlook.ModeOAuthToken,
			resp: jsonResponse(201, `{"id":"NEW","subject":"Planning"}`),
		}
		uc := newTestUseCase(transport)
		ev := model.NewLocalEvent("C1")
		ev.SetSubject("Planning")

		created, err := uc.CreateEvent(ctx, ev, "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if created == ev || created.ID() != "NEW" || created.CalendarID() != "C1" {
			t.Errorf("expected a new handle in C1, got %s in %s", created.ID(), created.CalendarID())
		}
		if created.State() != model.EventCreated || ev.State() != model.EventUnsaved {
			t.Errorf("unexpected states: created=%s original=%s", created.State(), ev.State())
		}

		c := transport.lastCall()
		if c.url != "https://graph.microsoft.com/v1.0/me/calendars/C1/events" {
			t.Errorf("unexpected URL: %s", c.url)
		}
		if !strings.Contains(c.body, `"subject":"Planning"`) {
			t.Errorf("unexpected body: %s", c.body)
		}
		if c.header.Get("Content-Type") != outlook.ContentTypeJSON {
			t.Errorf("missing JSON content type: %v", c.header)
		}
	})

	t.Run("explicit target wins and identity is not sent", func(t *testing.T) {
		transport := &fakeTransport{
			credential: true, mode: outlook.ModeLegacyBasic,
			resp: jsonResponse(201, `{"Id":"NEW2","Subject":"Copy"}`),
		}
		uc := newTestUseCase(transport)
		ev := persisted(t, "OLD", "C1")

		created, err := uc.CreateEvent(ctx, ev, "C2")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if created.CalendarID() != "C2" {
			t.Errorf("expected C2, got %s", created.CalendarID())
		}
		c := transport.lastCall()
		if c.url != "https://outlook.office365.com/api/v1.0/me/calendars/C2/events" {
			t.Errorf("unexpected URL: %s", c.url)
		}
		if strings.Contains(c.body, "OLD") {
			t.Errorf("identity leaked into body: %s", c.body)
		}
	})

	failures := []struct {
		name      string
		transport *fakeTransport
		event     *model.Event
		target    string
		wantKind  schedule.Kind
		wantErr   error
	}{
		{"nil event", &fakeTransport{valid: true}, nil, "C1", schedule.KindPrecondition, schedule.ErrNilEvent},
		{"no calendar", &fakeTransport{valid: true}, model.NewLocalEvent(""), "", schedule.KindPrecondition, schedule.ErrNoCalendar},
		{"no auth", &fakeTransport{}, model.NewLocalEvent("C1"), "", schedule.KindPrecondition, schedule.ErrUnauthenticated},
		{"status 400", &fakeTransport{valid: true, resp: jsonResponse(400, `{"error":"bad"}`)}, model.NewLocalEvent("C1"), "", schedule.KindTransport, nil},
		{"network", &fakeTransport{valid: true, respErr: errors.New("connection refused")}, model.NewLocalEvent("C1"), "", schedule.KindTransport, nil},
		{"response without identity", &fakeTransport{valid: true, resp: jsonResponse(201, `{"subject":"x"}`)}, model.NewLocalEvent("C1"), "", schedule.KindItem, outlook.ErrMissingIdentity},
	}
	for _, tt := range failures {
		t.Run(tt.name, func(t *testing.T) {
			uc := newTestUseCase(tt.transport)
			created, err := uc.CreateEvent(ctx, tt.event, tt.target)
			if created != nil {
				t.Errorf("expected no event, got %v", created.ID())
			}
			if schedule.KindOf(err) != tt.wantKind {
				t.Fatalf("expected %s, got %v", tt.wantKind, err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestCreateEventStatusErrorDetail(t *testing.T) {
	uc := newTestUseCase(&fakeTransport{valid: true, resp: jsonResponse(503, "unavailable")})
	_, err := uc.CreateEvent(context.Background(), model.NewLocalEvent("C1"), "")

	var se *outlook.StatusError
	if !errors.As(err, &se) || se.StatusCode != 503 || se.Body != "unavailable" {
		t.Errorf("expected status detail to survive, got %v", err)
	}
}

func TestUpdateEvent(t *testing.T) {
	ctx := context.Background()

	transport := &fakeTransport{
		valid: true, mode: outlook.ModeOAuthToken,
		resp: jsonResponse(200, `{"id":"E1","subject":"Renamed"}`),
	}
	uc := newTestUseCase(transport)
	ev := persisted(t, "E1", "C1")
	ev.SetSubject("Renamed")

	updated, err := uc.UpdateEvent(ctx, ev)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.ID() != "E1" || updated.Subject() != "Renamed" || updated.State() != model.EventUpdated {
		t.Errorf("unexpected update result: %s %s %s", updated.ID(), updated.Subject(), updated.State())
	}
	c := transport.lastCall()
	if c.method != "PATCH" || c.url != "https://graph.microsoft.com/v1.0/me/events/E1" {
		t.Errorf("unexpected call: %s %s", c.method, c.url)
	}

	deleted := persisted(t, "E2", "C1")
	deleted.MarkDeleted()

	failures := []struct {
		name      string
		transport *fakeTransport
		event     *model.Event
		wantErr   error
		wantKind  schedule.Kind
	}{
		{"unsaved", &fakeTransport{valid: true}, model.NewLocalEvent("C1"), schedule.ErrNoIdentity, schedule.KindPrecondition},
		{"no calendar", &fakeTransport{valid: true}, persisted(t, "E1", ""), schedule.ErrNoCalendar, schedule.KindPrecondition},
		{"deleted", &fakeTransport{valid: true}, deleted, schedule.ErrDeleted, schedule.KindPrecondition},
		{"no auth", &fakeTransport{}, persisted(t, "E1", "C1"), schedule.ErrUnauthenticated, schedule.KindPrecondition},
		{"unauthorized at transport", &fakeTransport{credential: true, respErr: outlook.ErrUnauthenticated}, persisted(t, "E1", "C1"), schedule.ErrUnauthenticated, schedule.KindPrecondition},
	}
	for _, tt := range failures {
		t.Run(tt.name, func(t *testing.T) {
			uc := newTestUseCase(tt.transport)
			_, err := uc.UpdateEvent(ctx, tt.event)
			if !errors.Is(err, tt.wantErr) || schedule.KindOf(err) != tt.wantKind {
				t.Errorf("expected %s %v, got %v", tt.wantKind, tt.wantErr, err)
			}
		})
	}
}

func TestDeleteEvent(t *testing.T) {
	ctx := context.Background()

	transport := &fakeTransport{credential: true, mode: outlook.ModeLegacyBasic, resp: jsonResponse(204, "")}
	uc := newTestUseCase(transport)
	ev := persisted(t, "E1", "C1")

	resp, err := uc.DeleteEvent(ctx, ev)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != 204 {
		t.Errorf("expected raw 204 response, got %d", resp.StatusCode)
	}
	if !ev.Deleted() || ev.Subject() != "Standup" {
		t.Errorf("handle should be deleted but readable")
	}
	c := transport.lastCall()
	if c.method != "DELETE" || c.url != "https://outlook.office365.com/api/v1.0/me/events/E1" {
		t.Errorf("unexpected call: %s %s", c.method, c.url)
	}
	if c.header.Get("Accept") != outlook.ContentTypeText {
		t.Errorf("unexpected headers: %v", c.header)
	}

	if _, err := uc.DeleteEvent(ctx, ev); !errors.Is(err, schedule.ErrDeleted) {
		t.Errorf("expected ErrDeleted on second delete, got %v", err)
	}

	failing := persisted(t, "E9", "C1")
	uc = newTestUseCase(&fakeTransport{valid: true, resp: jsonResponse(404, "missing")})
	resp, err = uc.DeleteEvent(ctx, failing)
	if schedule.KindOf(err) != schedule.KindTransport || resp == nil || resp.StatusCode != 404 {
		t.Errorf("expected transport failure with raw response, got %v %v", resp, err)
	}
	if failing.Deleted() {
		t.Errorf("failed delete must not mark the handle")
	}

	uc = newTestUseCase(&fakeTransport{})
	if _, err := uc.DeleteEvent(ctx, persisted(t, "E1", "")); !errors.Is(err, schedule.ErrUnauthenticated) {
		t.Errorf("expected ErrUnauthenticated, got %v", err)
	}
}
