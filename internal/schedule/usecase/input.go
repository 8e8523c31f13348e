package usecase

import (
	"context"
	"errors"

	"o365-calendar/internal/model"
	"o365-calendar/internal/schedule"
)

// ApplyInput runs the fields of in through ev's setters. Time zones are
// applied after the times they retag.
func (uc *implUseCase) ApplyInput(ctx context.Context, ev *model.Event, in schedule.EventInput) error {
	const op = "ApplyInput"
	if ev == nil {
		return uc.fail(ctx, op, schedule.KindPrecondition, schedule.ErrNilEvent)
	}

	if in.Subject != nil {
		ev.SetSubject(*in.Subject)
	}
	if in.Body != nil {
		ev.SetBody(*in.Body, in.BodyType)
	}
	if in.Start != nil {
		if err := ev.SetStart(in.Start); err != nil {
			return uc.fail(ctx, op, schedule.KindNormalization, err)
		}
	}
	if in.End != nil {
		if err := ev.SetEnd(in.End); err != nil {
			return uc.fail(ctx, op, schedule.KindNormalization, err)
		}
	}
	if in.StartTimeZone != "" {
		if err := ev.SetStartTimeZone(in.StartTimeZone); err != nil {
			return uc.fail(ctx, op, zoneKind(err), err)
		}
	}
	if in.EndTimeZone != "" {
		if err := ev.SetEndTimeZone(in.EndTimeZone); err != nil {
			return uc.fail(ctx, op, zoneKind(err), err)
		}
	}
	if in.Attendees != nil {
		if err := ev.SetAttendees(ctx, uc.directory, in.Attendees); err != nil {
			return uc.fail(ctx, op, schedule.KindNormalization, err)
		}
	}
	if in.Location != nil {
		ev.SetLocation(in.Location)
	}
	if in.Reminder != nil {
		ev.SetReminder(*in.Reminder)
	}
	if in.Categories != nil {
		ev.SetCategories(in.Categories)
	}
	return nil
}

func zoneKind(err error) schedule.Kind {
	if errors.Is(err, model.ErrTimeNotSet) || errors.Is(err, model.ErrBadTime) {
		return schedule.KindPrecondition
	}
	return schedule.KindNormalization
}
