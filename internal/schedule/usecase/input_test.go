package usecase

import (
	"context"
	"errors"
	"testing"

	"o365-calendar/internal/model"
	"o365-calendar/internal/normalize"
	"o365-calendar/internal/schedule"
	"o365-calendar/pkg/outlook"
)

type fakeDirectory struct {
	contacts map[string]outlook.Contact
}

func (d *fakeDirectory) Contact(ctx context.Context, id string) (outlook.Contact, error) {
	c, ok := d.contacts[id]
	if !ok {
		return outlook.Contact{}, errors.New("not found")
	}
	return c, nil
}

func (d *fakeDirectory) Group(ctx context.Context, id string) (outlook.Group, error) {
	return outlook.Group{}, errors.New("not found")
}

func TestApplyInput(t *testing.T) {
	ctx := context.Background()
	uc := newTestUseCase(&fakeTransport{})
	uc.directory = &fakeDirectory{contacts: map[string]outlook.Contact{
		"c1": {ID: "c1", DisplayName: "Carol", EmailAddresses: []outlook.EmailAddress{{Address: "carol@example.com"}}},
	}}

	subject := "Review"
	body := "agenda"
	reminder := true
	ev := model.NewLocalEvent("C1")
	err := uc.ApplyInput(ctx, ev, schedule.EventInput{
		Subject:       &subject,
		Body:          &body,
		Start:         normalize.Epoch(1700000000),
		End:           normalize.Epoch(1700003600),
		StartTimeZone: "UTC",
		EndTimeZone:   "UTC",
		Attendees:     normalize.ContactRef{ID: "c1"},
		Location:      "Room 1",
		Reminder:      &reminder,
		Categories:    []string{"work"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	start, _ := ev.Payload().Object("start")
	end, _ := ev.Payload().Object("end")
	if start["dateTime"] != "2023-11-14T22:13:20" || start["timeZone"] != "UTC" {
		t.Errorf("unexpected start: %v", start)
	}
	if end["dateTime"] != "2023-11-14T23:13:20" || end["timeZone"] != "UTC" {
		t.Errorf("unexpected end: %v", end)
	}
	if a := ev.Attendees(); len(a) != 1 || a[0].Name != "Carol" {
		t.Errorf("unexpected attendees: %+v", a)
	}
	if ev.Subject() != "Review" || ev.Body() != "agenda" || ev.Location() != "Room 1" || !ev.Reminder() {
		t.Errorf("unexpected payload: %v", ev.Payload())
	}
}

func TestApplyInputFailures(t *testing.T) {
	ctx := context.Background()
	uc := newTestUseCase(&fakeTransport{})

	tests := []struct {
		name     string
		in       schedule.EventInput
		wantKind schedule.Kind
	}{
		{"zone before time", schedule.EventInput{StartTimeZone: "UTC"}, schedule.KindPrecondition},
		{"zone on string time", schedule.EventInput{
			Start:         normalize.Preformatted{Value: "2023-11-14T22:13:20Z"},
			StartTimeZone: "UTC",
		}, schedule.KindPrecondition},
		{"unknown contact without directory", schedule.EventInput{Attendees: normalize.ContactRef{ID: "x"}}, schedule.KindNormalization},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := uc.ApplyInput(ctx, model.NewLocalEvent("C1"), tt.in)
			if schedule.KindOf(err) != tt.wantKind {
				t.Errorf("expected %s, got %v", tt.wantKind, err)
			}
		})
	}

	if err := uc.ApplyInput(ctx, nil, schedule.EventInput{}); !errors.Is(err, schedule.ErrNilEvent) {
		t.Errorf("expected ErrNilEvent, got %v", err)
	}
}
