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

func TestRefreshCalendars(t *testing.T) {
	tests := []struct {
		name      string
		transport *fakeTransport
		wantURL   string
		wantKind  schedule.Kind
		wantCount int
		wantSkips int
	}{
		{
			name: "legacy family with basic auth",
			transport: &fakeTransport{
				valid: true, mode: outlook.ModeLegacyBasic, credential: true,
				lists: map[string][]outlook.Payload{"/calendars": {
					{"Id": "C1", "Name": "Work"},
					{"Id": "C2", "Name": "Home"},
				}},
			},
			wantURL:   "https://outlook.office365.com/api/v1.0/me/calendars",
			wantCount: 2,
		},
		{
			name: "graph family with valid token",
			transport: &fakeTransport{
				valid: true, mode: outlook.ModeOAuthToken,
				lists: map[string][]outlook.Payload{"/calendars": {
					{"id": "C1", "name": "Work"},
					{"name": "no identity"},
				}},
			},
			wantURL:   "https://graph.microsoft.com/v1.0/me/calendars",
			wantCount: 1,
			wantSkips: 1,
		},
		{
			name:      "unauthenticated transport",
			transport: &fakeTransport{getErr: outlook.ErrUnauthenticated},
			wantURL:   "https://outlook.office365.com/api/v1.0/me/calendars",
			wantKind:  schedule.KindPrecondition,
		},
		{
			name:      "status error",
			transport: &fakeTransport{getErr: &outlook.StatusError{StatusCode: 500, Body: "boom"}},
			wantURL:   "https://outlook.office365.com/api/v1.0/me/calendars",
			wantKind:  schedule.KindTransport,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := newTestUseCase(tt.transport)
			s := model.NewSchedule()

			out, err := uc.RefreshCalendars(context.Background(), s)
			if got := tt.transport.lastCall().url; got != tt.wantURL {
				t.Errorf("expected URL %s, got %s", tt.wantURL, got)
			}
			if tt.wantKind != schedule.KindUnknown {
				if schedule.KindOf(err) != tt.wantKind {
					t.Fatalf("expected %s error, got %v", tt.wantKind, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(s.Calendars) != tt.wantCount || out.Appended != tt.wantCount {
				t.Errorf("expected %d calendars, got %d (out %+v)", tt.wantCount, len(s.Calendars), out)
			}
			if len(out.Skipped) != tt.wantSkips {
				t.Errorf("expected %d skipped, got %d", tt.wantSkips, len(out.Skipped))
			}
		})
	}
}

func TestRefreshCalendarsKeepsCachedEvents(t *testing.T) {
	transport := &fakeTransport{
		valid: true, mode: outlook.ModeOAuthToken,
		lists: map[string][]outlook.Payload{"/calendars": {
			{"id": "C1", "name": "Work"},
		}},
	}
	uc := newTestUseCase(transport)
	s := model.NewSchedule()
	if _, err := uc.RefreshCalendars(context.Background(), s); err != nil {
		t.Fatalf("first refresh: %v", err)
	}

	cal := s.Calendars[0]
	local := cal.NewEvent()
	fetched, _ := model.NewEvent(outlook.Payload{"id": "E1", "subject": "one"}, "C1")
	cal.Events = append(cal.Events, local, fetched)

	transport.lists = map[string][]outlook.Payload{"/calendars": {
		{"id": "C1", "name": "Work renamed"},
	}}
	out, err := uc.RefreshCalendars(context.Background(), s)
	if err != nil {
		t.Fatalf("second refresh: %v", err)
	}
	if out.Replaced != 1 {
		t.Errorf("expected 1 replaced, got %+v", out)
	}

	got := s.Calendars[0]
	if got.Name() != "Work renamed" {
		t.Errorf("payload not replaced: %s", got.Name())
	}
	if len(got.Events) != 2 || got.Events[0] != local || got.Events[1] != fetched {
		t.Errorf("cached events lost: %d left", len(got.Events))
	}
}

func TestRefreshEventsEndToEnd(t *testing.T) {
	transport := &fakeTransport{valid: true, mode: outlook.ModeOAuthToken}
	uc := newTestUseCase(transport)
	cal, _ := model.NewCalendar(outlook.Payload{"id": "C/1", "name": "Work"})

	transport.lists = map[string][]outlook.Payload{"calendarView": {
		{"id": "E1", "subject": "one"},
		{"id": "E2", "subject": "two"},
	}}
	out, err := uc.RefreshEvents(context.Background(), cal, schedule.EventWindow{})
	if err != nil {
		t.Fatalf("first refresh: %v", err)
	}
	if out.Appended != 2 || len(cal.Events) != 2 {
		t.Fatalf("unexpected first pass: %+v", out)
	}

	wantURL := "https://graph.microsoft.com/v1.0/me/calendars/C%2F1/calendarView?startDateTime=2024-03-01T09:30:00Z&endDateTime=2025-03-01T09:30:00Z&$top=10"
	if got := transport.lastCall().url; got != wantURL {
		t.Errorf("unexpected URL:\n got %s\nwant %s", got, wantURL)
	}

	e2 := cal.Events[1]
	transport.lists = map[string][]outlook.Payload{"calendarView": {
		{"id": "E1", "subject": "one updated"},
		{"id": "E3", "subject": "three"},
	}}
	out, err = uc.RefreshEvents(context.Background(), cal, schedule.EventWindow{})
	if err != nil {
		t.Fatalf("second refresh: %v", err)
	}
	if len(cal.Events) != 3 || out.Replaced != 1 || out.Appended != 1 {
		t.Fatalf("unexpected second pass: %d events, %+v", len(cal.Events), out)
	}
	if cal.Events[0].ID() != "E1" || cal.Events[0].Subject() != "one updated" {
		t.Errorf("E1 not replaced in place: %s %s", cal.Events[0].ID(), cal.Events[0].Subject())
	}
	if cal.Events[1] != e2 {
		t.Errorf("E2 should be untouched")
	}
	if cal.Events[2].ID() != "E3" || cal.Events[2].CalendarID() != "C/1" {
		t.Errorf("E3 not appended: %s", cal.Events[2].ID())
	}
}

func TestRefreshEventsSkipsBadItems(t *testing.T) {
	transport := &fakeTransport{
		valid: true, mode: outlook.ModeLegacyBasic, credential: true,
		lists: map[string][]outlook.Payload{"calendarView": {
			{"Id": "E1"},
			{"Subject": "no id"},
			{"Id": "E2", "Subject": "ok"},
		}},
	}
	uc := newTestUseCase(transport)
	cal, _ := model.NewCalendar(outlook.Payload{"Id": "C1", "Name": "Work"})
	local := cal.NewEvent()
	cal.Events = append(cal.Events, local)

	out, err := uc.RefreshEvents(context.Background(), cal, schedule.EventWindow{Count: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Skipped) != 2 {
		t.Errorf("expected 2 skipped, got %+v", out.Skipped)
	}
	if !errors.Is(out.Skipped[0].Err, model.ErrMissingSubject) {
		t.Errorf("unexpected skip reason: %v", out.Skipped[0].Err)
	}
	if len(cal.Events) != 2 || cal.Events[0] != local || cal.Events[1].ID() != "E2" {
		t.Errorf("unexpected events after refresh")
	}
	if !strings.HasSuffix(transport.lastCall().url, "$top=3") {
		t.Errorf("window count not used: %s", transport.lastCall().url)
	}
}

func TestRefreshEventsWithoutCalendar(t *testing.T) {
	uc := newTestUseCase(&fakeTransport{})
	_, err := uc.RefreshEvents(context.Background(), nil, schedule.EventWindow{})
	if !errors.Is(err, schedule.ErrNoCalendar) || schedule.KindOf(err) != schedule.KindPrecondition {
		t.Errorf("expected precondition ErrNoCalendar, got %v", err)
	}
}

func TestRefreshAll(t *testing.T) {
	transport := &fakeTransport{
		valid: true, mode: outlook.ModeOAuthToken,
		lists: map[string][]outlook.Payload{
			"calendars/C1/calendarView": {{"id": "E1", "subject": "one"}},
			"calendars/C2/calendarView": {{"id": "E2", "subject": "two"}, {"id": "E3", "subject": "three"}},
			"/calendars":                {{"id": "C1", "name": "Work"}, {"id": "C2", "name": "Home"}},
		},
	}
	uc := newTestUseCase(transport)
	s := model.NewSchedule()

	out, err := uc.RefreshAll(context.Background(), s, schedule.EventWindow{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Appended != 5 {
		t.Errorf("expected 5 appended, got %+v", out)
	}
	if len(s.Calendars) != 2 || len(s.Calendars[0].Events) != 1 || len(s.Calendars[1].Events) != 2 {
		t.Errorf("unexpected schedule shape")
	}
	if _, ok := s.Event("E3"); !ok {
		t.Errorf("E3 not reachable from schedule")
	}
}
