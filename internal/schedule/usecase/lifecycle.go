package usecase

import (
	"context"
	"net/url"

	"o365-calendar/internal/model"
	"o365-calendar/internal/schedule"
	"o365-calendar/pkg/outlook"
)

// CreateEvent posts ev to calendarID, or to ev's calendar when calendarID is
// empty. ev itself is left as it was; callers switch to the returned event.
func (uc *implUseCase) CreateEvent(ctx context.Context, ev *model.Event, calendarID string) (*model.Event, error) {
	const op = "CreateEvent"
	if ev == nil {
		return nil, uc.fail(ctx, op, schedule.KindPrecondition, schedule.ErrNilEvent)
	}
	if calendarID == "" {
		calendarID = ev.CalendarID()
	}
	if calendarID == "" {
		return nil, uc.fail(ctx, op, schedule.KindPrecondition, schedule.ErrNoCalendar)
	}
	if !uc.authUsable() {
		return nil, uc.fail(ctx, op, schedule.KindPrecondition, schedule.ErrUnauthenticated)
	}

	body, err := requestBody(ev.Payload())
	if err != nil {
		return nil, uc.fail(ctx, op, schedule.KindNormalization, err)
	}

	target := outlook.URL(outlook.OpCreateEvent, uc.transport, url.PathEscape(calendarID))
	resp, err := uc.transport.Post(ctx, target, body, outlook.JSONHeaders())
	if err != nil {
		return nil, uc.transportFailure(ctx, op, err)
	}
	p, err := decodeResponse(resp)
	if err != nil {
		return nil, uc.fail(ctx, op, schedule.KindTransport, err)
	}

	created, err := model.WrapEvent(p, calendarID)
	if err != nil {
		return nil, uc.fail(ctx, op, schedule.KindItem, err)
	}
	uc.l.Infof(ctx, "%s: created event=%s calendar=%s", op, created.ID(), calendarID)
	return created, nil
}

// UpdateEvent patches ev on the service with its current payload.
func (uc *implUseCase) UpdateEvent(ctx context.Context, ev *model.Event) (*model.Event, error) {
	const op = "UpdateEvent"
	if err := uc.checkPersisted(ctx, op, ev); err != nil {
		return nil, err
	}
	if ev.CalendarID() == "" {
		return nil, uc.fail(ctx, op, schedule.KindPrecondition, schedule.ErrNoCalendar)
	}

	body, err := requestBody(ev.Payload())
	if err != nil {
		return nil, uc.fail(ctx, op, schedule.KindNormalization, err)
	}

	target := outlook.URL(outlook.OpUpdateEvent, uc.transport, url.PathEscape(ev.ID()))
	resp, err := uc.transport.Patch(ctx, target, body, outlook.JSONHeaders())
	if err != nil {
		return nil, uc.transportFailure(ctx, op, err)
	}
	p, err := decodeResponse(resp)
	if err != nil {
		return nil, uc.fail(ctx, op, schedule.KindTransport, err)
	}

	updated, err := model.WrapEvent(p, ev.CalendarID())
	if err != nil {
		return nil, uc.fail(ctx, op, schedule.KindItem, err)
	}
	updated.MarkUpdated()
	uc.l.Infof(ctx, "%s: updated event=%s", op, updated.ID())
	return updated, nil
}

// DeleteEvent deletes ev and returns the raw response. The handle is marked
// deleted only when the service accepted the call.
func (uc *implUseCase) DeleteEvent(ctx context.Context, ev *model.Event) (*outlook.Response, error) {
	const op = "DeleteEvent"
	if err := uc.checkPersisted(ctx, op, ev); err != nil {
		return nil, err
	}

	target := outlook.URL(outlook.OpDeleteEvent, uc.transport, url.PathEscape(ev.ID()))
	resp, err := uc.transport.Delete(ctx, target, outlook.DeleteHeaders())
	if err != nil {
		return nil, uc.transportFailure(ctx, op, err)
	}
	if resp.Failed() {
		return resp, uc.fail(ctx, op, schedule.KindTransport,
			&outlook.StatusError{StatusCode: resp.StatusCode, Body: resp.Text()})
	}

	ev.MarkDeleted()
	uc.l.Infof(ctx, "%s: deleted event=%s status=%d", op, ev.ID(), resp.StatusCode)
	return resp, nil
}

// checkPersisted holds the preconditions shared by update and delete.
func (uc *implUseCase) checkPersisted(ctx context.Context, op string, ev *model.Event) error {
	switch {
	case ev == nil:
		return uc.fail(ctx, op, schedule.KindPrecondition, schedule.ErrNilEvent)
	case ev.Deleted():
		return uc.fail(ctx, op, schedule.KindPrecondition, schedule.ErrDeleted)
	case ev.ID() == "":
		return uc.fail(ctx, op, schedule.KindPrecondition, schedule.ErrNoIdentity)
	case !uc.authUsable():
		return uc.fail(ctx, op, schedule.KindPrecondition, schedule.ErrUnauthenticated)
	}
	return nil
}
