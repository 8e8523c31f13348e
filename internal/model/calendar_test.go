package model

import (
	"errors"
	"testing"

	"o365-calendar/pkg/outlook"
)

func TestNewCalendar(t *testing.T) {
	tests := []struct {
		name    string
		payload outlook.Payload
		wantErr error
	}{
		{"graph", outlook.Payload{"id": "C1", "name": "Work"}, nil},
		{"legacy", outlook.Payload{"Id": "C1", "Name": "Work"}, nil},
		{"no identity", outlook.Payload{"name": "Work"}, outlook.ErrMissingIdentity},
		{"no name", outlook.Payload{"id": "C1"}, ErrMissingName},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewCalendar(tt.payload)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if err == nil && (c.ID() != "C1" || c.Name() != "Work") {
				t.Errorf("unexpected calendar: %s %s", c.ID(), c.Name())
			}
		})
	}
}

func TestScheduleLookup(t *testing.T) {
	work, _ := NewCalendar(outlook.Payload{"id": "C1", "name": "Work"})
	home, _ := NewCalendar(outlook.Payload{"id": "C2", "name": "Home"})
	e, _ := NewEvent(outlook.Payload{"id": "E1", "subject": "s"}, "C2")
	home.Events = append(home.Events, home.NewEvent(), e)

	s := &Schedule{Calendars: []*Calendar{work, home}}

	if c, ok := s.Calendar("C2"); !ok || c != home {
		t.Errorf("calendar lookup failed")
	}
	if _, ok := s.Calendar("C3"); ok {
		t.Errorf("unexpected calendar match")
	}
	if got, ok := s.Event("E1"); !ok || got != e {
		t.Errorf("event lookup failed")
	}
	if _, ok := s.Event(""); ok {
		t.Errorf("unsaved events must not match an empty identity")
	}
	if home.Events[0].CalendarID() != "C2" {
		t.Errorf("local event not associated with its calendar")
	}
}
