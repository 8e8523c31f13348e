package schedule

import (
	"time"

	"o365-calendar/internal/normalize"
	"o365-calendar/internal/reconcile"
	"o365-calendar/pkg/outlook"
)

// EventWindow bounds an event listing.
type EventWindow struct {
	Start time.Time
	End   time.Time
	Count int // $top
}

// DefaultEventWindow starts at now, spans a year and returns ten events.
func DefaultEventWindow(now time.Time) EventWindow {
	start := now.UTC().Truncate(time.Second)
	return EventWindow{
		Start: start,
		End:   start.Add(outlook.DefaultEventWindow * time.Hour),
		Count: outlook.DefaultEventCount,
	}
}

// WithDefaults fills zero fields from DefaultEventWindow(now).
func (w EventWindow) WithDefaults(now time.Time) EventWindow {
	def := DefaultEventWindow(now)
	if w.Start.IsZero() {
		w.Start = def.Start
	}
	if w.End.IsZero() {
		w.End = w.Start.Add(outlook.DefaultEventWindow * time.Hour)
	}
	if w.Count <= 0 {
		w.Count = def.Count
	}
	return w
}

// RefreshOutput summarizes one or more reconciliation passes.
type RefreshOutput struct {
	Replaced int
	Appended int
	Skipped  []reconcile.Skipped
}

func (o *RefreshOutput) add(replaced, appended int, skipped []reconcile.Skipped) {
	o.Replaced += replaced
	o.Appended += appended
	o.Skipped = append(o.Skipped, skipped...)
}

// Merge folds a reconciliation result into o.
func Merge[T reconcile.Entity](o *RefreshOutput, r reconcile.Result[T]) {
	o.add(r.Replaced, r.Appended, r.Skipped)
}

// Combine folds another output into o.
func (o *RefreshOutput) Combine(other RefreshOutput) {
	o.add(other.Replaced, other.Appended, other.Skipped)
}

// EventInput carries optional field values for an event. Nil or zero fields
// are left untouched.
type EventInput struct {
	Subject       *string
	Body          *string
	BodyType      string
	Start         normalize.TimeInput
	End           normalize.TimeInput
	StartTimeZone string
	EndTimeZone   string
	Attendees     normalize.AttendeeInput
	Location      any
	Reminder      *bool
	Categories    []string
}
