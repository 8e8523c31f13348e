package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"o365-calendar/internal/model"
	"o365-calendar/internal/reconcile"
	"o365-calendar/internal/schedule"
	"o365-calendar/pkg/outlook"
)

// RefreshCalendars fetches the calendar list and reconciles it into s.
func (uc *implUseCase) RefreshCalendars(ctx context.Context, s *model.Schedule) (schedule.RefreshOutput, error) {
	const op = "RefreshCalendars"
	if s == nil {
		return schedule.RefreshOutput{}, uc.fail(ctx, op, schedule.KindPrecondition, errors.New("schedule is nil"))
	}

	target := outlook.URL(outlook.OpListCalendars, uc.transport)
	items, err := uc.transport.Get(ctx, target)
	if err != nil {
		return schedule.RefreshOutput{}, uc.transportFailure(ctx, op, err)
	}

	res := reconcile.Reconcile(s.Calendars, items, func(p outlook.Payload) (*model.Calendar, error) {
		cal, err := model.NewCalendar(p)
		if err != nil {
			return nil, err
		}
		// The payload is replaced; the cached events stay with the calendar.
		if prev, ok := s.Calendar(cal.ID()); ok {
			cal.Events = prev.Events
		}
		return cal, nil
	})
	s.Calendars = res.Items
	uc.logSkipped(ctx, op, res.Skipped)

	var out schedule.RefreshOutput
	schedule.Merge(&out, res)
	uc.l.Infof(ctx, "%s: remote=%d replaced=%d appended=%d skipped=%d",
		op, len(items), out.Replaced, out.Appended, len(out.Skipped))
	return out, nil
}

// RefreshEvents fetches the events of cal inside w and reconciles them into
// cal.Events. Zero fields of w take their defaults.
func (uc *implUseCase) RefreshEvents(ctx context.Context, cal *model.Calendar, w schedule.EventWindow) (schedule.RefreshOutput, error) {
	const op = "RefreshEvents"
	if cal == nil || cal.ID() == "" {
		return schedule.RefreshOutput{}, uc.fail(ctx, op, schedule.KindPrecondition, schedule.ErrNoCalendar)
	}

	w = w.WithDefaults(uc.now())
	target := outlook.URL(outlook.OpListEvents, uc.transport,
		url.PathEscape(cal.ID()),
		w.Start.UTC().Format(outlook.UTCTimeFormat),
		w.End.UTC().Format(outlook.UTCTimeFormat),
		w.Count,
	)
	items, err := uc.transport.Get(ctx, target)
	if err != nil {
		return schedule.RefreshOutput{}, uc.transportFailure(ctx, op, err)
	}

	calendarID := cal.ID()
	res := reconcile.Reconcile(cal.Events, items, func(p outlook.Payload) (*model.Event, error) {
		return model.NewEvent(p, calendarID)
	})
	cal.Events = res.Items
	uc.logSkipped(ctx, op, res.Skipped)

	var out schedule.RefreshOutput
	schedule.Merge(&out, res)
	uc.l.Infof(ctx, "%s: calendar=%s remote=%d replaced=%d appended=%d skipped=%d",
		op, calendarID, len(items), out.Replaced, out.Appended, len(out.Skipped))
	return out, nil
}

// RefreshAll refreshes the calendar list, then every calendar's events. A
// failing calendar does not stop the others; their errors are joined.
func (uc *implUseCase) RefreshAll(ctx context.Context, s *model.Schedule, w schedule.EventWindow) (schedule.RefreshOutput, error) {
	out, err := uc.RefreshCalendars(ctx, s)
	if err != nil {
		return out, err
	}

	var errs []error
	for _, cal := range s.Calendars {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		res, err := uc.RefreshEvents(ctx, cal, w)
		if err != nil {
			errs = append(errs, fmt.Errorf("calendar %s: %w", cal.ID(), err))
			continue
		}
		out.Combine(res)
	}
	return out, errors.Join(errs...)
}
